// Package router arma el árbol de rutas v2 sobre chi.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/vetboard/internal/http/v2/controllers"
	httperrors "github.com/dropDatabas3/vetboard/internal/http/v2/errors"
	mw "github.com/dropDatabas3/vetboard/internal/http/v2/middlewares"
	"github.com/dropDatabas3/vetboard/internal/rate"
)

// Deps contiene todo lo necesario para registrar las rutas.
type Deps struct {
	Controllers *controllers.Controllers

	// Opcionales
	Metrics     http.Handler // /metrics
	MetricsPath string
	WithMetrics mw.Middleware // instrumentación HTTP
	JWKS        []byte        // /.well-known/jwks.json
	RateLimiter rate.Limiter  // cupo de /start
}

// New crea el router con los middlewares globales y todas las rutas.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.WithRecover(), mw.WithRequestID())
	if d.WithMetrics != nil {
		r.Use(d.WithMetrics)
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		httperrors.WriteError(w, req, httperrors.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		httperrors.WriteError(w, req, httperrors.ErrMethodNotAllowed)
	})

	RegisterHealthRoutes(r, HealthRouterDeps{Controllers: d.Controllers.Health})
	RegisterSocialRoutes(r, SocialRouterDeps{
		Controllers:  d.Controllers.Social,
		StartLimiter: d.RateLimiter,
	})

	if d.Metrics != nil {
		path := d.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Method(http.MethodGet, path, d.Metrics)
	}
	if len(d.JWKS) > 0 {
		jwks := d.JWKS
		r.Get("/.well-known/jwks.json", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Cache-Control", "public, max-age=300")
			_, _ = w.Write(jwks)
		})
	}
	return r
}
