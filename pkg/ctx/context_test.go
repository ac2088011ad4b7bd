package ctx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "github.com/shashiranjanraj/voucherhub/pkg/ctx"
	"github.com/shashiranjanraj/voucherhub/pkg/response"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	appctx.Wrap(func(c *appctx.Context) {
		c.Success(map[string]any{"status": "ok"})
		assert.Equal(t, http.StatusOK, c.WrittenStatus())
	})(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"data":{"status":"ok"}}`, rec.Body.String())
}

func TestBindJSONValidationIs400(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":""}`))

	appctx.Wrap(func(c *appctx.Context) {
		var input struct {
			Name string `json:"name" validate:"required"`
		}
		assert.False(t, c.BindJSON(&input))
	})(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "Validation failed", env.Error)
	assert.Contains(t, env.Errors, "name")
}

func TestBindJSONValid(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"john@example.com"}`))

	appctx.Wrap(func(c *appctx.Context) {
		var input struct {
			Email string `json:"email" validate:"required,email"`
		}
		require.True(t, c.BindJSON(&input))
		assert.Equal(t, "john@example.com", input.Email)
		c.Created(input)
	})(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestStoreAndClientIP(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.7:5555"
	req.Header.Set("X-Forwarded-For", "1.2.3.4, 10.0.0.1")

	appctx.Wrap(func(c *appctx.Context) {
		c.Set("user_id", "64b7f0c2a1b2c3d4e5f60718")
		assert.Equal(t, "64b7f0c2a1b2c3d4e5f60718", c.GetString("user_id"))
		assert.Equal(t, "", c.GetString("missing"))
		assert.Equal(t, "192.0.2.7", c.ClientIP())
		c.Success(nil)
	})(rec, req)
}

func TestClientIPTrustsProxyOnlyWhenEnabled(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.9:443"
	req.Header.Set("X-Forwarded-For", "1.2.3.4, 10.0.0.1")
	assert.Equal(t, "10.0.0.9", appctx.ClientIP(req))

	appctx.TrustProxyHeaders(true)
	t.Cleanup(func() { appctx.TrustProxyHeaders(false) })
	assert.Equal(t, "1.2.3.4", appctx.ClientIP(req))

	proxied := httptest.NewRequest(http.MethodGet, "/", nil)
	proxied.Header.Set("X-Real-Ip", "5.6.7.8")
	assert.Equal(t, "5.6.7.8", appctx.ClientIP(proxied))
}

func TestErrorHelpers(t *testing.T) {
	rec := httptest.NewRecorder()
	appctx.Wrap(func(c *appctx.Context) {
		c.NotFound("Role not found")
	})(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Role not found", decode(t, rec).Error)
}
