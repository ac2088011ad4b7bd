// Package cache is a small JSON cache over Redis. When Redis is not
// configured or unreachable every operation is a no-op, so callers always
// fall through to MongoDB.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/voucherhub/config"
	"github.com/shashiranjanraj/voucherhub/pkg/metrics"
)

var RDB *redis.Client

// Connect dials REDIS_ADDR and pings it. On failure RDB stays nil and the
// error is returned for the caller to log.
func Connect(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("cache: ping %s: %w", config.RedisAddr(), err)
	}

	RDB = client
	return nil
}

// Close releases the connection pool.
func Close() error {
	if RDB == nil {
		return nil
	}
	err := RDB.Close()
	RDB = nil
	return err
}

// Store is a JSON cache bound to one client. The zero value is a no-op store.
type Store struct {
	rdb *redis.Client
}

// New wraps client. A nil client yields a no-op store.
func New(client *redis.Client) *Store {
	return &Store{rdb: client}
}

// Default returns a store over the process-wide connection.
func Default() *Store {
	return New(RDB)
}

// Get decodes the value at key into dest and reports whether it was found.
func (s *Store) Get(ctx context.Context, key string, dest interface{}) bool {
	if s == nil || s.rdb == nil {
		return false
	}

	val, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			return false
		}
		metrics.CacheMisses.WithLabelValues(key).Inc()
		return false
	}

	if err := json.Unmarshal(val, dest); err != nil {
		return false
	}
	metrics.CacheHits.WithLabelValues(key).Inc()
	return true
}

// Set stores value as JSON with the given ttl.
func (s *Store) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if s == nil || s.rdb == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, data, ttl).Err()
}

// Del removes keys.
func (s *Store) Del(ctx context.Context, keys ...string) error {
	if s == nil || s.rdb == nil || len(keys) == 0 {
		return nil
	}
	return s.rdb.Del(ctx, keys...).Err()
}
