package router

import (
	"github.com/go-chi/chi/v5"

	ctrl "github.com/dropDatabas3/vetboard/internal/http/v2/controllers/social"
	mw "github.com/dropDatabas3/vetboard/internal/http/v2/middlewares"
	"github.com/dropDatabas3/vetboard/internal/rate"
)

// SocialRouterDeps contiene las dependencias para las rutas de login social.
type SocialRouterDeps struct {
	Controllers *ctrl.Controllers
	// StartLimiter limita /start por IP (opcional).
	StartLimiter rate.Limiter
}

// RegisterSocialRoutes registra:
//
//	GET /v2/auth/social/{provider}/start
//	GET /v2/auth/social/{provider}/callback
func RegisterSocialRoutes(r chi.Router, deps SocialRouterDeps) {
	c := deps.Controllers
	r.Route("/v2/auth/social/{provider}", func(r chi.Router) {
		r.Use(
			mw.WithLogging(),
			mw.WithSecurityHeaders(),
			mw.WithNoStore(),
		)
		r.With(mw.WithRateLimit(mw.RateLimitConfig{Limiter: deps.StartLimiter})).
			Get("/start", c.Start.Start)
		r.Get("/callback", c.Callback.Callback)
	})
}
