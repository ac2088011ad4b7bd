package http

import (
	"context"
	"errors"
	"io"
	gohttp "net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostJSONWithBearer(t *testing.T) {
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, r *gohttp.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"model":"m"}`, string(body))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL + "/v1/").WithHTTPClient(srv.Client()).
		Post("chat/completions").Bearer("k").Body(map[string]string{"model": "m"}).Send()
	require.NoError(t, err)
	require.NoError(t, resp.Throw())

	var out struct{ OK bool }
	require.NoError(t, resp.JSON(&out))
	assert.True(t, out.OK)
}

func TestRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, _ *gohttp.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(gohttp.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte("fine"))
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL).WithHTTPClient(srv.Client()).Get("/").Retry(3, time.Millisecond).Send()
	require.NoError(t, err)
	assert.Equal(t, "fine", resp.Text())
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestClientErrorIsNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, _ *gohttp.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(gohttp.StatusUnauthorized)
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL).WithHTTPClient(srv.Client()).Get("/").Retry(3, time.Millisecond).Send()
	require.NoError(t, err)

	var se *StatusError
	require.True(t, errors.As(resp.Throw(), &se))
	assert.Equal(t, gohttp.StatusUnauthorized, se.Code)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestRetryStopsOnCancelledContext(t *testing.T) {
	srv := httptest.NewServer(gohttp.HandlerFunc(func(w gohttp.ResponseWriter, _ *gohttp.Request) {
		w.WriteHeader(gohttp.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(srv.URL).WithHTTPClient(srv.Client()).Get("/").
		WithContext(ctx).Retry(5, time.Hour).Send()
	assert.ErrorIs(t, err, context.Canceled)
}
