package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/voucherhub/app/repositories"
	"github.com/shashiranjanraj/voucherhub/app/services"
	"github.com/shashiranjanraj/voucherhub/pkg/ctx"
	"github.com/shashiranjanraj/voucherhub/pkg/llm"
	"github.com/shashiranjanraj/voucherhub/pkg/logger"
)

// fail maps a service error onto the response envelope.
func fail(c *ctx.Context, err error) {
	var verr *services.ValidationError

	switch {
	case errors.As(err, &verr):
		c.ValidationError(verr.Fields)
	case errors.Is(err, repositories.ErrInvalidID):
		c.BadRequest("Invalid id")
	case errors.Is(err, repositories.ErrDuplicate):
		c.BadRequest("Record already exists")
	case errors.Is(err, repositories.ErrInUse):
		c.BadRequest(err.Error())
	case errors.Is(err, repositories.ErrNotFound):
		c.NotFound()
	case errors.Is(err, services.ErrInvalidCredentials):
		c.Unauthorized("Invalid credentials")
	case errors.Is(err, services.ErrInactive):
		c.Unauthorized("Account is inactive")
	case errors.Is(err, llm.ErrNotConfigured):
		c.Error(http.StatusInternalServerError, "AI service not configured")
	case errors.Is(err, services.ErrUpstream):
		c.Error(http.StatusBadGateway, "AI service unavailable")
	default:
		logger.WithCtx(c.Context()).Error("request failed", "path", c.R.URL.Path, "error", err)
		c.Error(http.StatusInternalServerError, "Internal server error")
	}
}
