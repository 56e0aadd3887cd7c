// Package services agrupa los services HTTP v2. Es el composition root:
// cada dominio expone Deps + NewServices en su sub-paquete y acá se
// instancian todos.
//
//	svcs := services.New(services.Deps{
//	    Social: social.Deps{...},
//	    Health: health.Deps{...},
//	})
package services

import (
	"github.com/dropDatabas3/vetboard/internal/http/v2/services/health"
	"github.com/dropDatabas3/vetboard/internal/http/v2/services/social"
)

// Deps contiene las dependencias de cada dominio.
type Deps struct {
	Social social.Deps
	Health health.Deps
}

// Services agrupa todos los sub-services por dominio.
type Services struct {
	Social social.Services // login social (start, callback)
	Health health.Services // health checks (readyz)
}

// New crea el agregador de services. Es el único lugar donde se instancian.
func New(d Deps) *Services {
	return &Services{
		Social: social.NewServices(d.Social),
		Health: health.NewServices(d.Health),
	}
}
