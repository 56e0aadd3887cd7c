// Package social contiene los services del login social: reconciliación de
// identidad, emisión de sesión y planificación del destino.
package social

import (
	"time"

	"github.com/dropDatabas3/vetboard/internal/cache"
	"github.com/dropDatabas3/vetboard/internal/domain/repository"
	"github.com/dropDatabas3/vetboard/internal/http/v2/providers"
	"github.com/dropDatabas3/vetboard/internal/jwt"
)

// Observer recibe eventos para métricas. Puede ser nil.
type Observer interface {
	ProviderCall(provider, op string, d time.Duration, err error)
	Outcome(provider, outcome string)
}

type nopObserver struct{}

func (nopObserver) ProviderCall(string, string, time.Duration, error) {}
func (nopObserver) Outcome(string, string)                            {}

// Deps contiene las dependencias para crear los services social.
type Deps struct {
	Store           repository.Store
	Providers       *providers.Registry
	Issuer          *jwt.Issuer
	StateGuard      cache.Client // consumo de states (single-use)
	StateTTL        time.Duration
	ProviderTimeout time.Duration
	Routes          *RouteTable
	Observer        Observer
}

// Services agrupa todos los services del dominio social.
type Services struct {
	Start        StartService
	Callback     CallbackService
	Resolver     IdentityResolver
	Completeness CompletenessEvaluator
	Sessions     SessionIssuer
	State        StateCodec
}

// NewServices crea el agregador de services social.
func NewServices(d Deps) Services {
	state := NewStateCodec(d.Issuer, d.StateTTL, d.StateGuard)
	resolver := NewIdentityResolver(d.Store.Accounts(), d.Store.SocialLinks())
	completeness := NewCompletenessEvaluator(d.Store.Accounts())
	sessions := NewSessionIssuer(SessionDeps{Issuer: d.Issuer, Accounts: d.Store.Accounts()})

	return Services{
		Start: NewStartService(StartDeps{
			Providers: d.Providers,
			State:     state,
		}),
		Callback: NewCallbackService(CallbackDeps{
			Providers:       d.Providers,
			State:           state,
			Resolver:        resolver,
			Completeness:    completeness,
			Sessions:        sessions,
			Routes:          d.Routes,
			ProviderTimeout: d.ProviderTimeout,
			Observer:        d.Observer,
		}),
		Resolver:     resolver,
		Completeness: completeness,
		Sessions:     sessions,
		State:        state,
	}
}
