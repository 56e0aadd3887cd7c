package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

// OAuth2 resuelve AuthorizeURL y Exchange con golang.org/x/oauth2.
// Los providers lo embeben y sólo implementan UserInfo.
type OAuth2 struct {
	cfg    oauth2.Config
	client *http.Client
}

// NewOAuth2 arma el cliente con los endpoints por defecto del provider,
// salvo override en c.
func NewOAuth2(c Config, authURL, tokenURL string) (*OAuth2, error) {
	if c.ClientID == "" {
		return nil, ErrNotConfigured
	}
	if c.AuthURL != "" {
		authURL = c.AuthURL
	}
	if c.TokenURL != "" {
		tokenURL = c.TokenURL
	}
	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	return &OAuth2{
		cfg: oauth2.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			RedirectURL:  c.RedirectURI,
			Scopes:       c.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  authURL,
				TokenURL: tokenURL,
				// client_id/client_secret en el body form-encoded
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		client: client,
	}, nil
}

func (o *OAuth2) AuthorizeURL(state string) string {
	return o.cfg.AuthCodeURL(state)
}

func (o *OAuth2) Exchange(ctx context.Context, code string) (*TokenSet, error) {
	tok, err := o.cfg.Exchange(o.Context(ctx), code)
	if err != nil {
		return nil, fmt.Errorf("token exchange: %w", err)
	}
	return &TokenSet{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		Expiry:       tok.Expiry,
	}, nil
}

// Context inyecta el http.Client del provider para x/oauth2.
func (o *OAuth2) Context(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, o.client)
}

// Client retorna un http.Client que agrega el bearer token.
func (o *OAuth2) Client(ctx context.Context, accessToken string) *http.Client {
	return oauth2.NewClient(o.Context(ctx), oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))
}

// GetJSON hace un GET autenticado y decodifica la respuesta en out.
// Retorna también el payload crudo para UserProfile.Raw.
func (o *OAuth2) GetJSON(ctx context.Context, endpoint, accessToken string, out any) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := o.Client(ctx, accessToken).Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("profile endpoint status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	var raw map[string]any
	_ = json.Unmarshal(body, &raw)
	return raw, nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
