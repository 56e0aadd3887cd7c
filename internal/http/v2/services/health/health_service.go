// Package health contiene el service para health checks.
package health

import (
	"context"
	"fmt"
	"time"

	dto "github.com/dropDatabas3/vetboard/internal/http/v2/dto/health"
	jwtx "github.com/dropDatabas3/vetboard/internal/jwt"
	"github.com/dropDatabas3/vetboard/internal/observability/logger"
)

// HealthService define las operaciones de health check.
type HealthService interface {
	Check(ctx context.Context) dto.HealthResponse
}

// Deps contiene las dependencias inyectables para el health service.
type Deps struct {
	Version    string
	Issuer     *jwtx.Issuer
	StoreCheck func(ctx context.Context) error // crítico
	CacheCheck func(ctx context.Context) error // crítico: guarda de states
	Providers  func() []string
	Timeout    time.Duration // por chequeo; default 2s
}

type healthService struct {
	deps Deps
}

func NewHealthService(deps Deps) HealthService {
	if deps.Timeout <= 0 {
		deps.Timeout = 2 * time.Second
	}
	return &healthService{deps: deps}
}

const componentHealth = "health"

func (s *healthService) Check(ctx context.Context) dto.HealthResponse {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentHealth),
		logger.Op("Check"),
	)

	resp := dto.HealthResponse{
		Version:    s.deps.Version,
		Components: make(map[string]dto.HealthStatus),
		Timestamp:  time.Now().UTC(),
	}
	if s.deps.Providers != nil {
		resp.Providers = s.deps.Providers()
	}
	if resp.Providers == nil {
		resp.Providers = []string{}
	}

	critical := false
	check := func(name string, fn func(ctx context.Context) error) {
		if fn == nil {
			resp.Components[name] = dto.HealthStatus{Status: "disabled"}
			return
		}
		cctx, cancel := context.WithTimeout(ctx, s.deps.Timeout)
		defer cancel()
		if err := fn(cctx); err != nil {
			resp.Components[name] = dto.HealthStatus{Status: "error", Message: fmt.Sprintf("unavailable: %v", err)}
			critical = true
			log.Error(name+" unavailable", logger.Err(err))
			return
		}
		resp.Components[name] = dto.HealthStatus{Status: "ok"}
	}

	check("store", s.deps.StoreCheck)
	check("cache", s.deps.CacheCheck)

	if s.deps.Issuer != nil {
		resp.ActiveKeyID = s.deps.Issuer.Keys.KID
		check("keystore", s.checkKeystore)
	} else {
		resp.Components["keystore"] = dto.HealthStatus{Status: "error", Message: "issuer not initialized"}
		critical = true
	}

	switch {
	case critical:
		resp.Status = "unavailable"
	case len(resp.Providers) == 0:
		resp.Status = "degraded"
	default:
		resp.Status = "ready"
	}
	return resp
}

// checkKeystore firma y verifica un token de prueba.
func (s *healthService) checkKeystore(ctx context.Context) error {
	signed, err := s.deps.Issuer.Issue("health", "healthcheck", time.Minute, nil)
	if err != nil {
		return fmt.Errorf("sign: %w", err)
	}
	if _, err := s.deps.Issuer.Parse(signed.Token, "health"); err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	return nil
}
