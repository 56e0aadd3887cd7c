package router

import (
	"github.com/go-chi/chi/v5"

	ctrl "github.com/dropDatabas3/vetboard/internal/http/v2/controllers/health"
)

// HealthRouterDeps contiene las dependencias para el router de health.
type HealthRouterDeps struct {
	Controllers *ctrl.Controllers
}

// RegisterHealthRoutes registra /livez y /readyz. Sin logging (muy frecuentes).
func RegisterHealthRoutes(r chi.Router, deps HealthRouterDeps) {
	c := deps.Controllers.Health
	r.Get("/livez", c.Livez)
	r.Get("/readyz", c.Readyz)
}
