package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNilStoreIsNoop(t *testing.T) {
	ctx := context.Background()
	for _, s := range []*Store{nil, New(nil)} {
		var out []string
		assert.False(t, s.Get(ctx, "roles:list", &out))
		assert.NoError(t, s.Set(ctx, "roles:list", []string{"admin"}, time.Minute))
		assert.NoError(t, s.Del(ctx, "roles:list"))
		assert.Nil(t, out)
	}
}

func TestCloseWithoutConnect(t *testing.T) {
	RDB = nil
	assert.NoError(t, Close())
}
