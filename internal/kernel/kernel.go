// Package kernel assembles the HTTP handler: global middleware, services,
// controllers and routes.
package kernel

import (
	"context"
	"net/http"
	"time"

	"github.com/shashiranjanraj/voucherhub/app/controllers"
	"github.com/shashiranjanraj/voucherhub/app/repositories"
	"github.com/shashiranjanraj/voucherhub/app/routes"
	"github.com/shashiranjanraj/voucherhub/app/services"
	"github.com/shashiranjanraj/voucherhub/config"
	appctx "github.com/shashiranjanraj/voucherhub/pkg/ctx"
	"github.com/shashiranjanraj/voucherhub/pkg/llm"
	"github.com/shashiranjanraj/voucherhub/pkg/mail"
	"github.com/shashiranjanraj/voucherhub/pkg/metrics"
	"github.com/shashiranjanraj/voucherhub/pkg/middleware"
	"github.com/shashiranjanraj/voucherhub/pkg/reqid"
	"github.com/shashiranjanraj/voucherhub/pkg/response"
	"github.com/shashiranjanraj/voucherhub/pkg/router"
	"github.com/shashiranjanraj/voucherhub/pkg/workerpool"
)

// Deps are the collaborators the kernel does not create itself.
type Deps struct {
	Stores repositories.Stores
	// Cache backs the role list. Nil disables caching.
	Cache services.Cache
	// Mailer sends welcome mail. Nil disables it.
	Mailer mail.Sender
	// Completer answers /ai/chat. Nil makes the endpoint report 500.
	Completer llm.Completer
	// Ping checks the document store for /health.
	Ping controllers.Pinger
}

type HTTPKernel struct {
	handler http.Handler
	mail    *workerpool.Pool
	cancel  context.CancelFunc
}

// NewHTTPKernel builds the full handler. Close releases the mail pool and
// the rate limiter janitor.
func NewHTTPKernel(deps Deps) *HTTPKernel {
	ctx, cancel := context.WithCancel(context.Background())
	k := &HTTPKernel{
		mail:   workerpool.New("mail", config.Int("MAIL_WORKERS", 4)),
		cancel: cancel,
	}

	appctx.TrustProxyHeaders(config.Bool("TRUST_PROXY"))
	limiter := middleware.NewRateLimiter(ctx, config.Int("RATE_LIMIT_PER_MIN", 200), time.Minute)

	r := router.New()

	// Outermost first. Metrics sees total latency, recovery runs before a
	// panic can escape, and the request id exists before anything logs.
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.CORSFromConfig()))
	r.Use(limiter.Middleware)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w)
	})

	routes.RegisterAPI(r, Controllers(deps, k.mail))
	k.handler = r.Handler()
	return k
}

// Controllers wires services and controllers over deps.
func Controllers(deps Deps, mailPool *workerpool.Pool) routes.Controllers {
	s := deps.Stores
	return routes.Controllers{
		Auth: controllers.NewAuthController(
			services.NewAuthService(s.Users),
			services.NewUserService(s.Users, deps.Mailer, mailPool),
		),
		Roles:     controllers.NewRoleController(services.NewRoleService(s.Roles, s.Profiles, deps.Cache)),
		DynaField: controllers.NewDynaFieldController(services.NewDynaFieldService(s.DynaFields)),
		Chat:      controllers.NewChatController(services.NewChatService(deps.Completer, "")),
		Health:    controllers.NewHealthController(deps.Ping),
	}
}

func (k *HTTPKernel) Handler() http.Handler { return k.handler }

// Close drains queued mail and stops background goroutines.
func (k *HTTPKernel) Close() {
	k.cancel()
	k.mail.Shutdown()
}
