package logger

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/goleak"
)

type fakeInserter struct {
	mu   sync.Mutex
	docs []LogDocument
}

func (f *fakeInserter) InsertMany(_ context.Context, documents []interface{}, _ ...*options.InsertManyOptions) (*mongo.InsertManyResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range documents {
		f.docs = append(f.docs, d.(LogDocument))
	}
	return &mongo.InsertManyResult{}, nil
}

func TestMongoHandlerFlushesOnClose(t *testing.T) {
	defer goleak.VerifyNone(t)

	sink := &fakeInserter{}
	h := NewMongoHandler(sink, slog.LevelInfo)
	log := slog.New(h).With("request_id", "abc123")

	log.Debug("below threshold")
	log.Info("backfill finished", "updated", 3)
	log.WithGroup("repair").Warn("user skipped", "email", "bob@x.com")
	h.Close()
	h.Close()

	require.Len(t, sink.docs, 2)
	assert.Equal(t, "backfill finished", sink.docs[0].Msg)
	assert.Equal(t, "abc123", sink.docs[0].RequestID)
	assert.EqualValues(t, 3, sink.docs[0].Attrs["updated"])
	assert.Equal(t, "WARN", sink.docs[1].Level)
	assert.Equal(t, "bob@x.com", sink.docs[1].Attrs["repair.email"])
}

func TestWithCtxFallsBackToBase(t *testing.T) {
	assert.Same(t, L, WithCtx(context.Background()))

	tagged := L.With("request_id", "r1")
	ctx := InjectLogger(context.Background(), tagged)
	assert.Same(t, tagged, WithCtx(ctx))
}
