package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultMongoURL   = "mongodb://localhost:27017/voucherhub"
	defaultRedisAddr  = "localhost:6379"
	defaultJWTSecret  = "change-me-in-production"
	defaultAppPort    = "8080"
	defaultAppEnv     = "local"
	defaultAIProvider = "openai"
	defaultAIBaseURL  = "https://api.groq.com/openai/v1"
	defaultAIModel    = "deepseek-r1-distill-llama-70b"
)

var (
	loadOnce sync.Once
	loadErr  error

	mu        sync.RWMutex
	values    = defaultValues()
	overrides = map[string]string{}
)

// Load reads config/app.json (or config/app.yaml) and .env once.
// Real environment variables always win over file values.
func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", "config/app.yaml", ".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"MONGODB_URL":     defaultMongoURL,
		"REDIS_ADDR":      defaultRedisAddr,
		"REDIS_PASSWORD":  "",
		"JWT_SECRET":      defaultJWTSecret,
		"APP_PORT":        defaultAppPort,
		"APP_ENV":         defaultAppEnv,
		"AI_PROVIDER":     defaultAIProvider,
		"AI_BASE_URL":     defaultAIBaseURL,
		"AI_MODEL":        defaultAIModel,
		"AI_RATE_PER_MIN": "30",
	}
}

// MongoURL is the document-store connection string.
func MongoURL() string {
	_ = Load()
	return get("MONGODB_URL", defaultMongoURL)
}

// MongoDatabase returns the database name embedded in the connection string
// path, falling back to "voucherhub" when the URL has none.
func MongoDatabase() string {
	return databaseFromURL(MongoURL())
}

func databaseFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "voucherhub"
	}
	name := strings.Trim(u.Path, "/")
	if name == "" {
		return "voucherhub"
	}
	return name
}

func RedisAddr() string {
	_ = Load()
	return get("REDIS_ADDR", defaultRedisAddr)
}

func RedisPassword() string {
	_ = Load()
	return get("REDIS_PASSWORD", "")
}

func JWTSecret() string {
	_ = Load()
	return get("JWT_SECRET", defaultJWTSecret)
}

func AppPort() string {
	_ = Load()
	return get("APP_PORT", defaultAppPort)
}

func AppEnv() string {
	_ = Load()
	return get("APP_ENV", defaultAppEnv)
}

// IsProduction reports whether APP_ENV names a production deployment.
func IsProduction() bool {
	switch strings.ToLower(AppEnv()) {
	case "production", "prod":
		return true
	}
	return false
}

// ── AI chat ──────────────────────────────────────────────────────────────────

func AIProvider() string {
	_ = Load()
	return strings.ToLower(get("AI_PROVIDER", defaultAIProvider))
}

// AIAPIKey is empty when chat is not configured.
func AIAPIKey() string {
	_ = Load()
	return get("AI_API_KEY", "")
}

func AIBaseURL() string {
	_ = Load()
	return strings.TrimRight(get("AI_BASE_URL", defaultAIBaseURL), "/")
}

func AIModel() string {
	_ = Load()
	return get("AI_MODEL", defaultAIModel)
}

// AIRatePerMinute is the outbound request budget for the inference provider.
func AIRatePerMinute() int {
	return Int("AI_RATE_PER_MIN", 30)
}

// ── Helpers ──────────────────────────────────────────────────────────────────

// Get reads any config key by name with an optional fallback.
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}

// Int reads key as an integer; malformed or non-positive values yield fallback.
func Int(key string, fallback int) int {
	n, err := strconv.Atoi(Get(key, ""))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// Bool reads key as a boolean ("1", "true", "yes").
func Bool(key string) bool {
	switch strings.ToLower(Get(key, "")) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// Set overrides a value at runtime, ahead of files but behind the real
// environment. Setting "" restores the fallback.
func Set(key, value string) {
	mu.Lock()
	defer mu.Unlock()
	overrides[strings.ToUpper(key)] = value
}

func get(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}

	mu.RLock()
	defer mu.RUnlock()

	if value, ok := overrides[key]; ok {
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
		return fallback
	}
	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}
	return fallback
}

// ── File loading ─────────────────────────────────────────────────────────────

func loadFromFiles(jsonPath, yamlPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(jsonPath, loaded); err != nil && !os.IsNotExist(err) {
		return err
	}
	if err := mergeYAMLConfig(yamlPath, loaded); err != nil && !os.IsNotExist(err) {
		return err
	}
	if err := mergeDotEnv(envPath, loaded); err != nil && !os.IsNotExist(err) {
		return err
	}

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	mergeRaw(raw, out)
	return nil
}

func mergeYAMLConfig(path string, out map[string]string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	mergeRaw(raw, out)
	return nil
}

// mergeRaw copies scalar values into out under upper-cased keys.
func mergeRaw(raw map[string]interface{}, out map[string]string) {
	for key, val := range raw {
		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		switch v := val.(type) {
		case string:
			out[k] = strings.TrimSpace(v)
		case bool, int, int64, float64:
			out[k] = fmt.Sprint(v)
		}
	}
}

func mergeDotEnv(path string, out map[string]string) error {
	env, err := godotenv.Read(path)
	if err != nil {
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			return statErr
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	for k, v := range env {
		key := strings.ToUpper(strings.TrimSpace(k))
		if key == "" {
			continue
		}
		out[key] = strings.TrimSpace(v)
	}
	return nil
}
