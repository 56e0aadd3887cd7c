// Package server arma el handler HTTP v2 con todas sus dependencias a partir
// de la configuración. Es el único lugar que conoce implementaciones concretas.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dropDatabas3/vetboard/internal/cache"
	"github.com/dropDatabas3/vetboard/internal/config"
	"github.com/dropDatabas3/vetboard/internal/domain/category"
	"github.com/dropDatabas3/vetboard/internal/domain/repository"
	"github.com/dropDatabas3/vetboard/internal/http/v2/controllers"
	"github.com/dropDatabas3/vetboard/internal/http/v2/providers"
	"github.com/dropDatabas3/vetboard/internal/http/v2/providers/google"
	"github.com/dropDatabas3/vetboard/internal/http/v2/providers/kakao"
	"github.com/dropDatabas3/vetboard/internal/http/v2/providers/naver"
	"github.com/dropDatabas3/vetboard/internal/http/v2/render"
	"github.com/dropDatabas3/vetboard/internal/http/v2/router"
	"github.com/dropDatabas3/vetboard/internal/http/v2/services"
	"github.com/dropDatabas3/vetboard/internal/http/v2/services/health"
	"github.com/dropDatabas3/vetboard/internal/http/v2/services/social"
	jwtx "github.com/dropDatabas3/vetboard/internal/jwt"
	"github.com/dropDatabas3/vetboard/internal/metrics"
	"github.com/dropDatabas3/vetboard/internal/observability/logger"
	"github.com/dropDatabas3/vetboard/internal/rate"
	"github.com/dropDatabas3/vetboard/internal/store"
)

// App es el resultado del wiring.
type App struct {
	Handler   http.Handler
	Store     repository.Store
	Cache     cache.Client
	Issuer    *jwtx.Issuer
	Providers *providers.Registry
	Metrics   *metrics.Metrics

	closers []func() error
}

// Close libera store y cache. Es seguro llamarlo una sola vez al apagar.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// factories son los providers que el binario sabe construir.
var factories = map[string]providers.Factory{
	google.ProviderName: google.Factory,
	kakao.ProviderName:  kakao.Factory,
	naver.ProviderName:  naver.Factory,
}

// CallbackPath es la ruta de retorno registrada en cada provider.
func CallbackPath(provider string) string {
	return "/v2/auth/social/" + provider + "/callback"
}

// StartPath es la ruta que inicia el flujo con un provider.
func StartPath(provider string) string {
	return "/v2/auth/social/" + provider + "/start"
}

// RetryPath vuelve a /start con la categoría y el modo popup del intento fallido.
func RetryPath(provider string, cat category.Category, popup bool) string {
	q := url.Values{}
	if cat.Valid() {
		q.Set("category", cat.String())
	}
	if popup {
		q.Set("popup", "1")
	}
	if len(q) == 0 {
		return StartPath(provider)
	}
	return StartPath(provider) + "?" + q.Encode()
}

// Build construye la aplicación. Si falla a mitad de camino cierra lo ya abierto.
func Build(ctx context.Context, cfg *config.Config, version string) (app *App, err error) {
	log := logger.From(ctx).With(logger.Component("wiring"))
	app = &App{}
	defer func() {
		if err != nil {
			_ = app.Close()
			app = nil
		}
	}()

	// 1. Store
	st, err := store.Open(ctx, store.Config{
		Driver:          cfg.Storage.Driver,
		DSN:             cfg.Storage.DSN,
		MaxOpenConns:    cfg.Storage.MaxOpenConns,
		MaxIdleConns:    cfg.Storage.MaxIdleConns,
		ConnMaxLifetime: cfg.Storage.ConnMaxLifetime,
		Migrate:         cfg.Storage.Migrate,
		FixturesPath:    cfg.Storage.FixturesPath,
	})
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	app.Store = st
	app.closers = append(app.closers, st.Close)

	// 2. Cache (guarda de states single-use)
	prefix := cfg.Cache.Redis.Prefix
	if prefix == "" {
		prefix = "vetboard:"
	}
	cc, err := cache.New(ctx, cache.Config{
		Kind:     cfg.Cache.Kind,
		Addr:     cfg.Cache.Redis.Addr,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
		Prefix:   prefix,
	})
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	app.Cache = cc
	app.closers = append(app.closers, cc.Close)

	// 3. Claves e issuer
	var ks *jwtx.KeySet
	if strings.TrimSpace(cfg.JWT.SigningKeySeed) != "" {
		ks, err = jwtx.NewKeySetFromSeed(cfg.JWT.SigningKeySeed, cfg.JWT.KID)
	} else {
		if !cfg.IsDev() {
			return nil, errors.New("jwt: signing_key_seed required outside dev")
		}
		log.Warn("using ephemeral signing key; sessions will not survive a restart")
		ks, err = jwtx.NewEphemeral(cfg.JWT.KID)
	}
	if err != nil {
		return nil, fmt.Errorf("keys: %w", err)
	}
	issuer := jwtx.NewIssuer(cfg.JWT.Issuer, ks)
	issuer.AccessTTL = cfg.JWT.AccessTTL
	issuer.RefreshTTL = cfg.JWT.RefreshTTL
	app.Issuer = issuer

	// 4. Providers
	reg, err := buildProviders(cfg)
	if err != nil {
		return nil, err
	}
	app.Providers = reg
	if enabled := reg.Enabled(); len(enabled) > 0 {
		log.Info("social providers enabled", logger.Any("providers", enabled))
	} else {
		log.Warn("no social provider enabled")
	}

	// 5. Tabla de destinos
	routes := make(map[string]social.Route, len(cfg.Routes))
	for k, r := range cfg.Routes {
		routes[k] = social.Route{Dashboard: r.Dashboard, Completion: r.Completion}
	}
	table, err := social.NewRouteTable(routes)
	if err != nil {
		return nil, err
	}

	// 6. Métricas
	m, err := metrics.New()
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	app.Metrics = m

	// 7. Documentos de entrega
	renderer, err := render.New(render.Options{
		AppName:              cfg.App.Name,
		GraceDelay:           cfg.Delivery.GraceDelay,
		DismissAfter:         cfg.Delivery.DismissAfter,
		AccountSelectionPath: cfg.Delivery.AccountSelectionPath,
		LandingPath:          cfg.Delivery.LandingPath,
		CookieName:           cfg.Delivery.CookieName,
		CookieMaxAge:         cfg.Delivery.CookieMaxAge,
		SecureCookie:         !cfg.IsDev(),
		RetryURL:             RetryPath,
	})
	if err != nil {
		return nil, err
	}

	// 8. Services, controllers, router
	svcs := services.New(services.Deps{
		Social: social.Deps{
			Store:           st,
			Providers:       reg,
			Issuer:          issuer,
			StateGuard:      cc,
			StateTTL:        cfg.Social.StateTTL,
			ProviderTimeout: cfg.Social.ProviderTimeout,
			Routes:          table,
			Observer:        m,
		},
		Health: health.Deps{
			Version:    version,
			Issuer:     issuer,
			StoreCheck: st.Ping,
			CacheCheck: cc.Ping,
			Providers:  reg.Enabled,
		},
	})

	app.Handler = router.New(router.Deps{
		Controllers: controllers.New(svcs, renderer),
		Metrics:     m.Handler(),
		MetricsPath: cfg.Server.MetricsPath,
		WithMetrics: m.WithMetrics(),
		JWKS:        ks.JWKSJSON(),
		RateLimiter: newLimiter(cfg, cc, prefix),
	})
	return app, nil
}

// newLimiter usa Redis si la cache es Redis (cupo compartido entre réplicas);
// si no, memoria del proceso.
func newLimiter(cfg *config.Config, cc cache.Client, prefix string) rate.Limiter {
	if !cfg.RateLimit.Enabled || cfg.RateLimit.Max <= 0 {
		return nil
	}
	window := cfg.RateLimit.Window
	if window <= 0 {
		window = time.Minute
	}
	if r, ok := cc.(*cache.Redis); ok {
		return rate.NewRedisLimiter(r.Client(), prefix+"rl:", cfg.RateLimit.Max, window)
	}
	return rate.NewMemoryLimiter(cfg.RateLimit.Max, window)
}

// buildProviders habilita cada provider con enabled=true en la configuración.
func buildProviders(cfg *config.Config) (*providers.Registry, error) {
	reg := providers.NewRegistry()
	for name, f := range factories {
		reg.RegisterFactory(name, f)
	}

	base := strings.TrimRight(cfg.App.BaseURL, "/")
	for _, name := range ProviderNames() {
		pc, _ := cfg.Provider(name)
		if !pc.Enabled {
			continue
		}
		err := reg.Enable(name, providers.Config{
			ClientID:     pc.ClientID,
			ClientSecret: pc.ClientSecret,
			RedirectURI:  base + CallbackPath(name),
			Scopes:       pc.Scopes,
			AuthURL:      pc.AuthURL,
			TokenURL:     pc.TokenURL,
			ProfileURL:   pc.ProfileURL,
		})
		if err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// ProviderNames retorna los providers conocidos en orden estable.
func ProviderNames() []string {
	return []string{google.ProviderName, kakao.ProviderName, naver.ProviderName}
}
