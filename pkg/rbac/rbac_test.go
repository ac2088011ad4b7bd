package rbac

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/voucherhub/pkg/middleware"
)

func TestHasRole(t *testing.T) {
	h := HasRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	cases := []struct {
		name string
		role string
		want int
	}{
		{"anonymous", "", http.StatusUnauthorized},
		{"customer", "customer", http.StatusForbidden},
		{"admin", "admin", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/roles/list", nil)
			if tc.role != "" {
				req = req.WithContext(middleware.WithIdentity(req.Context(), "u1", tc.role))
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
