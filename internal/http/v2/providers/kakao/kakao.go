// Package kakao implementa el provider Kakao.
package kakao

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dropDatabas3/vetboard/internal/http/v2/providers"
)

const ProviderName = "kakao"

const (
	authURL    = "https://kauth.kakao.com/oauth/authorize"
	tokenURL   = "https://kauth.kakao.com/oauth/token"
	profileURL = "https://kapi.kakao.com/v2/user/me"
)

type Provider struct {
	*providers.OAuth2
	profileURL string
}

// Factory crea el provider Kakao.
func Factory(cfg providers.Config) (providers.Provider, error) {
	base, err := providers.NewOAuth2(cfg, authURL, tokenURL)
	if err != nil {
		return nil, fmt.Errorf("kakao: %w", err)
	}
	p := &Provider{OAuth2: base, profileURL: profileURL}
	if cfg.ProfileURL != "" {
		p.profileURL = cfg.ProfileURL
	}
	return p, nil
}

func (p *Provider) Name() string { return ProviderName }

// userMe es la respuesta de /v2/user/me.
type userMe struct {
	ID      int64 `json:"id"`
	Account struct {
		Email           string `json:"email"`
		IsEmailVerified bool   `json:"is_email_verified"`
		Name            string `json:"name"`
		PhoneNumber     string `json:"phone_number"`
		BirthYear       string `json:"birthyear"`
		Birthday        string `json:"birthday"` // MMDD
		Profile         struct {
			Nickname        string `json:"nickname"`
			ProfileImageURL string `json:"profile_image_url"`
		} `json:"profile"`
	} `json:"kakao_account"`
}

func (p *Provider) UserInfo(ctx context.Context, accessToken string) (*providers.UserProfile, error) {
	var me userMe
	raw, err := p.GetJSON(ctx, p.profileURL, accessToken, &me)
	if err != nil {
		return nil, fmt.Errorf("kakao: %w", err)
	}
	if me.ID == 0 {
		return nil, fmt.Errorf("kakao: %w: id", providers.ErrMissingField)
	}

	name := me.Account.Name
	if name == "" {
		name = me.Account.Profile.Nickname
	}
	return &providers.UserProfile{
		ProviderID:    strconv.FormatInt(me.ID, 10),
		Email:         me.Account.Email,
		EmailVerified: me.Account.IsEmailVerified,
		Name:          name,
		Picture:       me.Account.Profile.ProfileImageURL,
		Phone:         providers.LocalPhone(me.Account.PhoneNumber),
		BirthDate:     providers.BirthDate(me.Account.BirthYear, me.Account.Birthday),
		Raw:           raw,
	}, nil
}
