package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		// dev | staging | prod
		Env string `yaml:"env" env:"APP_ENV" validate:"oneof=dev staging prod"`
		// URL pública del servicio; se usa para armar redirect_uri y el origin de postMessage.
		BaseURL string `yaml:"base_url" env:"APP_BASE_URL" validate:"required,url"`
		Name    string `yaml:"name" env:"APP_NAME"`
	} `yaml:"app"`

	Server struct {
		Addr         string        `yaml:"addr" env:"SERVER_ADDR" validate:"required"`
		ReadTimeout  time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
		MetricsPath  string        `yaml:"metrics_path" env:"SERVER_METRICS_PATH"`
	} `yaml:"server"`

	Log struct {
		Level string `yaml:"level" env:"LOG_LEVEL" validate:"omitempty,oneof=debug info warn error"`
	} `yaml:"log"`

	Storage struct {
		// memory | postgres
		Driver          string        `yaml:"driver" env:"STORAGE_DRIVER" validate:"oneof=memory postgres"`
		DSN             string        `yaml:"dsn" env:"STORAGE_DSN" validate:"required_if=Driver postgres"`
		MaxOpenConns    int           `yaml:"max_open_conns" env:"STORAGE_MAX_OPEN_CONNS"`
		MaxIdleConns    int           `yaml:"max_idle_conns" env:"STORAGE_MAX_IDLE_CONNS"`
		ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"STORAGE_CONN_MAX_LIFETIME"`
		Migrate         bool          `yaml:"migrate" env:"STORAGE_MIGRATE"`
		// Fixtures YAML para driver memory (opcional).
		FixturesPath string `yaml:"fixtures_path" env:"STORAGE_FIXTURES_PATH"`
	} `yaml:"storage"`

	Cache struct {
		// memory | redis
		Kind  string `yaml:"kind" env:"CACHE_KIND" validate:"oneof=memory redis"`
		Redis struct {
			Addr     string `yaml:"addr" env:"REDIS_ADDR" validate:"required_if=Kind redis"`
			Password string `yaml:"password" env:"REDIS_PASSWORD"`
			DB       int    `yaml:"db" env:"REDIS_DB"`
			Prefix   string `yaml:"prefix" env:"REDIS_PREFIX"`
		} `yaml:"redis"`
	} `yaml:"cache"`

	RateLimit struct {
		Enabled bool          `yaml:"enabled" env:"RATE_LIMIT_ENABLED"`
		Max     int           `yaml:"max" env:"RATE_LIMIT_MAX" validate:"required_if=Enabled true,gte=0"`
		Window  time.Duration `yaml:"window" env:"RATE_LIMIT_WINDOW" validate:"gte=0"`
	} `yaml:"rate_limit"`

	JWT struct {
		Issuer     string        `yaml:"issuer" env:"JWT_ISSUER"`
		AccessTTL  time.Duration `yaml:"access_ttl" env:"JWT_ACCESS_TTL" validate:"gt=0"`
		RefreshTTL time.Duration `yaml:"refresh_ttl" env:"JWT_REFRESH_TTL" validate:"gt=0,gtfield=AccessTTL"`
		// Seed Ed25519 en base64 (32 bytes). Vacío = clave efímera (sólo dev).
		SigningKeySeed string `yaml:"signing_key_seed" env:"JWT_SIGNING_KEY_SEED"`
		KID            string `yaml:"kid" env:"JWT_KID"`
	} `yaml:"jwt"`

	Social struct {
		StateTTL time.Duration `yaml:"state_ttl" env:"SOCIAL_STATE_TTL" validate:"gt=0"`
		// Timeout por llamada saliente al provider (token y perfil).
		ProviderTimeout time.Duration `yaml:"provider_timeout" env:"SOCIAL_PROVIDER_TIMEOUT" validate:"gt=0"`

		Google ProviderConfig `yaml:"google" envPrefix:"GOOGLE_"`
		Kakao  ProviderConfig `yaml:"kakao" envPrefix:"KAKAO_"`
		Naver  ProviderConfig `yaml:"naver" envPrefix:"NAVER_"`
	} `yaml:"social"`

	Delivery struct {
		// Espera entre postMessage y window.close().
		GraceDelay time.Duration `yaml:"grace_delay" env:"DELIVERY_GRACE_DELAY" validate:"gte=0"`
		// Cuenta regresiva de auto-cierre de los documentos de conflicto y error.
		DismissAfter         time.Duration `yaml:"dismiss_after" env:"DELIVERY_DISMISS_AFTER" validate:"gt=0"`
		AccountSelectionPath string        `yaml:"account_selection_path" env:"DELIVERY_ACCOUNT_SELECTION_PATH" validate:"required,startswith=/"`
		LandingPath          string        `yaml:"landing_path" env:"DELIVERY_LANDING_PATH" validate:"required,startswith=/"`
		CookieName           string        `yaml:"cookie_name" env:"DELIVERY_COOKIE_NAME" validate:"required"`
		CookieMaxAge         time.Duration `yaml:"cookie_max_age" env:"DELIVERY_COOKIE_MAX_AGE" validate:"gt=0"`
	} `yaml:"delivery"`

	// Routes mapea categoría -> destinos. Se valida contra el enum en social.NewRouteTable.
	Routes map[string]RouteConfig `yaml:"routes" validate:"required,dive"`
}

// ProviderConfig configura un identity provider.
type ProviderConfig struct {
	Enabled      bool     `yaml:"enabled" env:"ENABLED"`
	ClientID     string   `yaml:"client_id" env:"CLIENT_ID" validate:"required_if=Enabled true"`
	ClientSecret string   `yaml:"client_secret" env:"CLIENT_SECRET"`
	Scopes       []string `yaml:"scopes" env:"SCOPES" envSeparator:","`

	// Overrides de endpoints (tests / entornos de staging del provider).
	AuthURL    string `yaml:"auth_url" env:"AUTH_URL" validate:"omitempty,url"`
	TokenURL   string `yaml:"token_url" env:"TOKEN_URL" validate:"omitempty,url"`
	ProfileURL string `yaml:"profile_url" env:"PROFILE_URL" validate:"omitempty,url"`
}

// RouteConfig son los destinos de una categoría.
type RouteConfig struct {
	Dashboard  string `yaml:"dashboard" validate:"required,startswith=/"`
	Completion string `yaml:"completion" validate:"required,startswith=/"`
}

// Default retorna la configuración por defecto (dev).
func Default() *Config {
	var c Config
	c.App.Env = "dev"
	c.App.BaseURL = "http://localhost:8080"
	c.App.Name = "vetboard"
	c.Server.Addr = ":8080"
	c.Server.ReadTimeout = 10 * time.Second
	c.Server.WriteTimeout = 30 * time.Second
	c.Server.MetricsPath = "/metrics"
	c.Log.Level = "info"
	c.Storage.Driver = "memory"
	c.Cache.Kind = "memory"
	c.RateLimit.Enabled = true
	c.RateLimit.Max = 30
	c.RateLimit.Window = time.Minute
	c.JWT.AccessTTL = 15 * time.Minute
	c.JWT.RefreshTTL = 30 * 24 * time.Hour
	c.JWT.KID = "vetboard-1"
	c.Social.StateTTL = 10 * time.Minute
	c.Social.ProviderTimeout = 10 * time.Second
	c.Social.Google.Scopes = []string{"openid", "email", "profile"}
	c.Social.Kakao.Scopes = []string{"account_email", "profile_nickname", "profile_image"}
	c.Social.Naver.Scopes = []string{"email", "name", "profile_image", "mobile", "birthday", "birthyear"}
	c.Delivery.GraceDelay = 300 * time.Millisecond
	c.Delivery.DismissAfter = 5 * time.Second
	c.Delivery.AccountSelectionPath = "/login"
	c.Delivery.LandingPath = "/"
	c.Delivery.CookieName = "accessToken"
	c.Delivery.CookieMaxAge = 7 * 24 * time.Hour
	c.Routes = map[string]RouteConfig{
		"veterinarian": {Dashboard: "/dashboard/veterinarian", Completion: "/register/veterinarian"},
		"student":      {Dashboard: "/dashboard/veterinary-student", Completion: "/register/veterinary-student"},
		"hospital":     {Dashboard: "/dashboard/hospital", Completion: "/register/hospital"},
	}
	return &c
}

// Load lee el YAML (si path != "" y existe), aplica overrides de entorno y valida.
func Load(path string) (*Config, error) {
	c := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, c); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
			// sin archivo: defaults + env
		default:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("config: env: %w", err)
	}

	if c.JWT.Issuer == "" {
		c.JWT.Issuer = strings.TrimRight(c.App.BaseURL, "/")
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate chequea tags de validación y las relaciones entre timeouts.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	// El callback hace hasta dos llamadas al provider y después escribe el
	// documento; write_timeout 0 significa sin límite.
	if wt := c.Server.WriteTimeout; wt > 0 && wt <= 2*c.Social.ProviderTimeout {
		return fmt.Errorf("config: invalid: server.write_timeout (%s) must exceed twice social.provider_timeout (%s)",
			wt, c.Social.ProviderTimeout)
	}
	return nil
}

// IsDev indica si corremos en entorno de desarrollo local.
func (c *Config) IsDev() bool {
	return strings.EqualFold(c.App.Env, "dev")
}

// Provider retorna la configuración de un provider por nombre.
func (c *Config) Provider(name string) (ProviderConfig, bool) {
	switch strings.ToLower(name) {
	case "google":
		return c.Social.Google, true
	case "kakao":
		return c.Social.Kakao, true
	case "naver":
		return c.Social.Naver, true
	}
	return ProviderConfig{}, false
}
