// Package controllers agrupa los controllers HTTP v2 por dominio.
//
// Flujo de inicialización:
//
//	svcs := services.New(deps)              // services por dominio
//	ctrls := controllers.New(svcs, renderer) // controllers con services inyectados
//	router.New(router.Deps{Controllers: ctrls, ...})
package controllers

import (
	"github.com/dropDatabas3/vetboard/internal/http/v2/controllers/health"
	"github.com/dropDatabas3/vetboard/internal/http/v2/controllers/social"
	"github.com/dropDatabas3/vetboard/internal/http/v2/render"
	"github.com/dropDatabas3/vetboard/internal/http/v2/services"
)

// Controllers agrupa todos los sub-controllers por dominio.
type Controllers struct {
	Health *health.Controllers
	Social *social.Controllers
}

// New crea el agregador de controllers. Es el único lugar donde se instancian.
func New(svc *services.Services, renderer *render.Renderer) *Controllers {
	return &Controllers{
		Health: health.NewControllers(svc.Health),
		Social: social.NewControllers(svc.Social, renderer),
	}
}
