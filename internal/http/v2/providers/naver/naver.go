// Package naver implementa el provider Naver.
package naver

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/vetboard/internal/http/v2/providers"
)

const ProviderName = "naver"

const (
	authURL    = "https://nid.naver.com/oauth2.0/authorize"
	tokenURL   = "https://nid.naver.com/oauth2.0/token"
	profileURL = "https://openapi.naver.com/v1/nid/me"
)

type Provider struct {
	*providers.OAuth2
	profileURL string
}

// Factory crea el provider Naver.
func Factory(cfg providers.Config) (providers.Provider, error) {
	base, err := providers.NewOAuth2(cfg, authURL, tokenURL)
	if err != nil {
		return nil, fmt.Errorf("naver: %w", err)
	}
	p := &Provider{OAuth2: base, profileURL: profileURL}
	if cfg.ProfileURL != "" {
		p.profileURL = cfg.ProfileURL
	}
	return p, nil
}

func (p *Provider) Name() string { return ProviderName }

// nidMe es la respuesta de /v1/nid/me. resultcode "00" = éxito.
type nidMe struct {
	ResultCode string `json:"resultcode"`
	Message    string `json:"message"`
	Response   struct {
		ID           string `json:"id"`
		Email        string `json:"email"`
		Name         string `json:"name"`
		Nickname     string `json:"nickname"`
		ProfileImage string `json:"profile_image"`
		Mobile       string `json:"mobile"`
		BirthYear    string `json:"birthyear"`
		Birthday     string `json:"birthday"` // MM-DD
	} `json:"response"`
}

func (p *Provider) UserInfo(ctx context.Context, accessToken string) (*providers.UserProfile, error) {
	var me nidMe
	raw, err := p.GetJSON(ctx, p.profileURL, accessToken, &me)
	if err != nil {
		return nil, fmt.Errorf("naver: %w", err)
	}
	if me.ResultCode != "00" {
		return nil, fmt.Errorf("naver: resultcode %s: %s", me.ResultCode, me.Message)
	}
	if me.Response.ID == "" {
		return nil, fmt.Errorf("naver: %w: id", providers.ErrMissingField)
	}

	r := me.Response
	name := r.Name
	if name == "" {
		name = r.Nickname
	}
	return &providers.UserProfile{
		ProviderID: r.ID,
		Email:      r.Email,
		// Naver sólo entrega emails verificados de la cuenta
		EmailVerified: r.Email != "",
		Name:          name,
		Picture:       r.ProfileImage,
		Phone:         providers.LocalPhone(r.Mobile),
		BirthDate:     providers.BirthDate(r.BirthYear, r.Birthday),
		Raw:           raw,
	}, nil
}
