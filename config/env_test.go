package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseFromURL(t *testing.T) {
	assert.Equal(t, "voucherhub", databaseFromURL("mongodb://localhost:27017/voucherhub"))
	assert.Equal(t, "shop", databaseFromURL("mongodb://user:pw@db:27017/shop?authSource=admin"))
	assert.Equal(t, "voucherhub", databaseFromURL("mongodb://localhost:27017"))
	assert.Equal(t, "voucherhub", databaseFromURL("::not a url"))
}

func TestLoadFromFilesPrecedence(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "app.json")
	yamlPath := filepath.Join(dir, "app.yaml")
	envPath := filepath.Join(dir, ".env")

	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"app_port":"9000","ai_model":"from-json","debug":true}`), 0o644))
	require.NoError(t, os.WriteFile(yamlPath, []byte("ai_model: from-yaml\nai_rate_per_min: 12\n"), 0o644))
	require.NoError(t, os.WriteFile(envPath, []byte("MONGODB_URL=\"mongodb://db:27017/shop\"\n# comment\n"), 0o644))

	require.NoError(t, loadFromFiles(jsonPath, yamlPath, envPath))
	t.Cleanup(func() { _ = loadFromFiles("", "", "") })

	assert.Equal(t, "9000", get("APP_PORT", ""))
	assert.Equal(t, "from-yaml", get("AI_MODEL", ""))
	assert.Equal(t, "12", get("AI_RATE_PER_MIN", ""))
	assert.Equal(t, "true", get("DEBUG", ""))
	assert.Equal(t, "mongodb://db:27017/shop", get("MONGODB_URL", ""))
}

func TestMissingFilesAreIgnored(t *testing.T) {
	dir := t.TempDir()
	err := loadFromFiles(filepath.Join(dir, "nope.json"), filepath.Join(dir, "nope.yaml"), filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, defaultMongoURL, get("MONGODB_URL", ""))
}

func TestEnvironmentWins(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	Set("JWT_SECRET", "from-set")
	t.Cleanup(func() { Set("JWT_SECRET", "") })

	assert.Equal(t, "from-env", JWTSecret())
}

func TestSetAndInt(t *testing.T) {
	Set("AI_RATE_PER_MIN", "abc")
	assert.Equal(t, 30, AIRatePerMinute())

	Set("AI_RATE_PER_MIN", "5")
	assert.Equal(t, 5, AIRatePerMinute())

	Set("AI_RATE_PER_MIN", "")
	assert.Equal(t, 30, AIRatePerMinute())
}
