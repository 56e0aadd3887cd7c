// Package providers define los adapters de identity providers para login social.
//
// Cada provider vive en su subpaquete (google, kakao, naver) y sólo devuelve
// hechos: intercambia el code por un access token (POST form-encoded) y trae
// el perfil normalizado. No decide vínculos, no crea usuarios, no emite sesiones.
package providers

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// Provider es el contrato de un identity provider.
type Provider interface {
	// Name retorna el identificador ("google", "kakao", "naver").
	Name() string

	// AuthorizeURL arma la URL de consentimiento con el state dado.
	AuthorizeURL(state string) string

	// Exchange intercambia el authorization code por tokens.
	Exchange(ctx context.Context, code string) (*TokenSet, error)

	// UserInfo trae el perfil con el access token y lo normaliza.
	UserInfo(ctx context.Context, accessToken string) (*UserProfile, error)
}

// Config configura una instancia de provider.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scopes       []string

	// Overrides de endpoints; vacío = endpoints públicos del provider.
	AuthURL    string
	TokenURL   string
	ProfileURL string

	// HTTPClient opcional (tests).
	HTTPClient *http.Client
}

// TokenSet son los tokens recibidos del provider.
type TokenSet struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	Expiry       time.Time
}

// UserProfile es el perfil normalizado de cualquier provider.
// Los opcionales quedan en "" cuando el provider no los entrega.
type UserProfile struct {
	ProviderID    string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
	Phone         string // formato local, ej. 010-1234-5678
	BirthDate     string // YYYY-MM-DD o MM-DD si el provider no da el año

	Raw map[string]any
}

var (
	// ErrNotConfigured indica que falta client_id.
	ErrNotConfigured = errors.New("providers: client_id required")
	// ErrMissingField indica un perfil sin un campo obligatorio (id).
	ErrMissingField = errors.New("providers: profile missing required field")
)
