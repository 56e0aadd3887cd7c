// Package google implementa el provider Google.
//
// El perfil se obtiene con google.golang.org/api/oauth2/v2 (Userinfo.Get)
// usando el access token recibido en el intercambio.
package google

import (
	"context"
	"fmt"
	"strings"

	googleoauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/dropDatabas3/vetboard/internal/http/v2/providers"
)

const ProviderName = "google"

const (
	authURL  = "https://accounts.google.com/o/oauth2/v2/auth"
	tokenURL = "https://oauth2.googleapis.com/token"
)

type Provider struct {
	*providers.OAuth2
	endpoint string // base de la API; "" = googleapis.com
}

// Factory crea el provider Google.
func Factory(cfg providers.Config) (providers.Provider, error) {
	base, err := providers.NewOAuth2(cfg, authURL, tokenURL)
	if err != nil {
		return nil, fmt.Errorf("google: %w", err)
	}
	endpoint := cfg.ProfileURL
	if endpoint != "" && !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}
	return &Provider{OAuth2: base, endpoint: endpoint}, nil
}

func (p *Provider) Name() string { return ProviderName }

func (p *Provider) UserInfo(ctx context.Context, accessToken string) (*providers.UserProfile, error) {
	opts := []option.ClientOption{option.WithHTTPClient(p.Client(ctx, accessToken))}
	if p.endpoint != "" {
		opts = append(opts, option.WithEndpoint(p.endpoint))
	}
	svc, err := googleoauth2.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("google: userinfo client: %w", err)
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("google: userinfo: %w", err)
	}

	verified := info.VerifiedEmail != nil && *info.VerifiedEmail
	return &providers.UserProfile{
		ProviderID:    info.Id,
		Email:         info.Email,
		EmailVerified: verified,
		Name:          info.Name,
		Picture:       info.Picture,
		Raw: map[string]any{
			"id":             info.Id,
			"email":          info.Email,
			"verified_email": verified,
			"name":           info.Name,
			"picture":        info.Picture,
			"locale":         info.Locale,
		},
	}, nil
}
