// Package ctx provides the request context passed to voucherhub handlers.
//
// Instead of accepting (http.ResponseWriter, *http.Request), a handler
// receives a single *Context:
//
//	func (rc *RoleController) Show(c *ctx.Context) {
//	    role, err := rc.roles.Find(c.Context(), c.Param("id"))
//	    ...
//	    c.Success(role)
//	}
//
//	router.Get("/roles/{id}", "roles.show", ctx.Wrap(rc.Show))
package ctx

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/voucherhub/pkg/bind"
	"github.com/shashiranjanraj/voucherhub/pkg/response"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// Context wraps a request/response pair.
type Context struct {
	W      http.ResponseWriter
	R      *http.Request
	mu     sync.RWMutex
	store  map[string]any
	status int // 0 until a response is written
}

var pool = sync.Pool{
	New: func() any { return &Context{store: make(map[string]any)} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	c.status = 0
	for k := range c.store {
		delete(c.store, k)
	}
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// ─── Request helpers ──────────────────────────────────────────────────────────

// Param returns a URL path parameter.
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// Query returns a query-string value, or "" if absent.
func (c *Context) Query(key string) string {
	return c.R.URL.Query().Get(key)
}

func (c *Context) Header(key string) string {
	return c.R.Header.Get(key)
}

// ClientIP returns the caller address. See the package-level ClientIP.
func (c *Context) ClientIP() string {
	return ClientIP(c.R)
}

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

var trustProxy atomic.Bool

// TrustProxyHeaders makes ClientIP honour X-Forwarded-For and X-Real-Ip.
// Enable it only behind a reverse proxy that overwrites those headers.
func TrustProxyHeaders(on bool) { trustProxy.Store(on) }

// ClientIP extracts the caller address from r. Shared with the rate limiter.
// Forwarding headers are ignored unless TrustProxyHeaders is on.
func ClientIP(r *http.Request) string {
	if trustProxy.Load() {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			first, _, _ := strings.Cut(fwd, ",")
			return strings.TrimSpace(first)
		}
		if real := r.Header.Get("X-Real-Ip"); real != "" {
			return real
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// ─── Per-request store ────────────────────────────────────────────────────────

func (c *Context) Set(key string, val any) {
	c.mu.Lock()
	c.store[key] = val
	c.mu.Unlock()
}

func (c *Context) Get(key string) (any, bool) {
	c.mu.RLock()
	v, ok := c.store[key]
	c.mu.RUnlock()
	return v, ok
}

// GetString returns a string value from the store, or "" if absent.
func (c *Context) GetString(key string) string {
	v, _ := c.Get(key)
	s, _ := v.(string)
	return s
}

// ─── Binding ──────────────────────────────────────────────────────────────────

// BindJSON decodes the JSON body into dest and runs validation.
// On any failure it writes a 400 and returns false.
//
//	var input CreateRoleInput
//	if !c.BindJSON(&input) {
//	    return // response already sent
//	}
func (c *Context) BindJSON(dest any) bool {
	errs, err := bind.JSON(c.R, dest)
	if err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return false
	}
	if len(errs) > 0 {
		c.ValidationError(errs)
		return false
	}
	return true
}

// ─── Response helpers ─────────────────────────────────────────────────────────

func (c *Context) write(code int, body response.Envelope) {
	c.status = code
	response.Write(c.W, code, body)
}

// Success sends a 200 envelope.
func (c *Context) Success(data any) {
	c.write(http.StatusOK, response.Envelope{Success: true, Data: data})
}

// Created sends a 201 envelope.
func (c *Context) Created(data any) {
	c.write(http.StatusCreated, response.Envelope{Success: true, Data: data})
}

// Error sends an error envelope with the given status and message.
func (c *Context) Error(code int, message string) {
	c.write(code, response.Envelope{Error: message})
}

// ValidationError sends a 400 with field-level errors.
func (c *Context) ValidationError(errs map[string]string) {
	c.write(http.StatusBadRequest, response.Envelope{Error: "Validation failed", Errors: errs})
}

func (c *Context) BadRequest(message string) { c.Error(http.StatusBadRequest, message) }

func (c *Context) Unauthorized(message ...string) {
	c.Error(http.StatusUnauthorized, first(message, "Unauthorized"))
}

func (c *Context) Forbidden(message ...string) {
	c.Error(http.StatusForbidden, first(message, "Forbidden"))
}

func (c *Context) NotFound(message ...string) {
	c.Error(http.StatusNotFound, first(message, "Not found"))
}

// WrittenStatus returns the status written so far, or 0.
func (c *Context) WrittenStatus() int { return c.status }

func first(msgs []string, def string) string {
	if len(msgs) > 0 {
		return msgs[0]
	}
	return def
}
