package controllers

import (
	"context"
	"time"

	"github.com/shashiranjanraj/voucherhub/pkg/ctx"
)

// Pinger reports whether a backing service is reachable.
type Pinger func(ctx context.Context) error

type HealthController struct {
	mongo Pinger
}

func NewHealthController(mongo Pinger) *HealthController {
	return &HealthController{mongo: mongo}
}

// Show answers 200 while the process is up. The Mongo result is reported
// but does not change the status code.
func (hc *HealthController) Show(c *ctx.Context) {
	body := map[string]string{"status": "ok", "mongo": "ok"}

	pingCtx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()
	if hc.mongo == nil {
		body["mongo"] = "not configured"
	} else if err := hc.mongo(pingCtx); err != nil {
		body["mongo"] = err.Error()
	}

	c.Success(body)
}
