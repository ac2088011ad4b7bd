package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/shashiranjanraj/voucherhub/pkg/http"
)

func TestStripThinking(t *testing.T) {
	cases := map[string]struct{ in, want string }{
		"plain":           {"  Your voucher is ready.  ", "Your voucher is ready."},
		"think block":     {"<think>user wants help</think>\nHello!", "Hello!"},
		"thinking block":  {"<Thinking>\nplan\n</THINKING>Answer", "Answer"},
		"several blocks":  {"<think>a</think>One <thinking>b</thinking>Two", "One Two"},
		"dangling open":   {"Answer first <think>then rambling without end", "Answer first"},
		"stray close":     {"leaked reasoning</think>\n\nFinal answer", "Final answer"},
		"only reasoning":  {"<think>nothing else</think>", ""},
		"stray then open": {"junk</thinking> keep <think>drop", "keep"},
		"multiline":       {"<think>line1\nline2\n</think>\n\n**Points**: 120", "**Points**: 120"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, StripThinking(tc.in))
		})
	}
}

func TestOpenAIComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "how many points?", req.Messages[1].Content)

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"<think>x</think>42"}}]}`))
	}))
	defer srv.Close()

	o := NewOpenAI(Config{APIKey: "sk-test", Model: "test-model"}).
		WithClient(apphttp.NewClient(srv.URL).WithHTTPClient(srv.Client()))

	out, err := o.Complete(context.Background(), "be brief", "how many points?")
	require.NoError(t, err)
	assert.Equal(t, "<think>x</think>42", out)
	assert.Equal(t, "42", StripThinking(out))
}

func TestOpenAIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/empty/chat/completions" {
			_, _ = w.Write([]byte(`{"choices":[]}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key"}}`))
	}))
	defer srv.Close()

	o := NewOpenAI(Config{APIKey: "k"}).WithClient(apphttp.NewClient(srv.URL).WithHTTPClient(srv.Client()))
	_, err := o.Complete(context.Background(), "", "hi")
	assert.ErrorContains(t, err, "status 401")

	o = NewOpenAI(Config{APIKey: "k"}).WithClient(apphttp.NewClient(srv.URL + "/empty").WithHTTPClient(srv.Client()))
	_, err = o.Complete(context.Background(), "", "hi")
	assert.Error(t, err)
}

func TestNewRequiresKey(t *testing.T) {
	_, err := New(context.Background(), Config{Provider: "openai"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = New(context.Background(), Config{Provider: "mystery", APIKey: "k"})
	assert.ErrorContains(t, err, "unknown provider")

	c, err := New(context.Background(), Config{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "openai", c.Provider())
}

type countingCompleter struct{ calls int }

func (c *countingCompleter) Provider() string { return "fake" }
func (c *countingCompleter) Complete(context.Context, string, string) (string, error) {
	c.calls++
	return "ok", nil
}

func TestThrottleRespectsContext(t *testing.T) {
	inner := &countingCompleter{}
	th := Throttle(inner, 1)

	_, err := th.Complete(context.Background(), "", "first")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = th.Complete(ctx, "", "second")
	assert.Error(t, err)
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, "fake", th.Provider())
}
