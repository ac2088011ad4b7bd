package routes

import (
	"github.com/shashiranjanraj/voucherhub/app/controllers"
	"github.com/shashiranjanraj/voucherhub/app/models"
	"github.com/shashiranjanraj/voucherhub/pkg/ctx"
	"github.com/shashiranjanraj/voucherhub/pkg/metrics"
	"github.com/shashiranjanraj/voucherhub/pkg/middleware"
	"github.com/shashiranjanraj/voucherhub/pkg/rbac"
	"github.com/shashiranjanraj/voucherhub/pkg/router"
)

// Controllers is everything RegisterAPI mounts.
type Controllers struct {
	Auth      *controllers.AuthController
	Roles     *controllers.RoleController
	DynaField *controllers.DynaFieldController
	Chat      *controllers.ChatController
	Health    *controllers.HealthController
}

func RegisterAPI(r *router.Router, c Controllers) {
	admin := rbac.HasRole(models.RoleAdmin)

	r.Get("/health", "health", ctx.Wrap(c.Health.Show))
	r.Handle("/metrics", "metrics", metrics.Handler())

	authn := r.Group("/authentication")
	authn.Post("", "auth.login", ctx.Wrap(c.Auth.Login))
	authn.Post("/refresh", "auth.refresh", ctx.Wrap(c.Auth.Refresh))
	authn.Get("/me", "auth.me", ctx.Wrap(c.Auth.Me), middleware.AuthMiddleware)

	r.Post("/users", "users.register", ctx.Wrap(c.Auth.Register))

	roles := r.Group("/roles", middleware.AuthMiddleware, admin)
	roles.Get("/list", "roles.list", ctx.Wrap(c.Roles.List))
	roles.Post("/create", "roles.create", ctx.Wrap(c.Roles.Create))
	roles.Put("/update/{id}", "roles.update", ctx.Wrap(c.Roles.Update))
	roles.Delete("/delete/{id}", "roles.delete", ctx.Wrap(c.Roles.Delete))
	roles.Get("/{id}", "roles.show", ctx.Wrap(c.Roles.Show))

	fields := r.Group("/dynafields", middleware.AuthMiddleware)
	fields.Get("", "dynafields.index", ctx.Wrap(c.DynaField.Index))
	fields.Post("", "dynafields.store", ctx.Wrap(c.DynaField.Store), admin)
	fields.Get("/{id}", "dynafields.show", ctx.Wrap(c.DynaField.Show))
	fields.Patch("/{id}", "dynafields.patch", ctx.Wrap(c.DynaField.Patch), admin)
	fields.Delete("/{id}", "dynafields.destroy", ctx.Wrap(c.DynaField.Destroy), admin)

	r.Post("/ai/chat", "ai.chat", ctx.Wrap(c.Chat.Chat), middleware.AuthMiddleware)
}
