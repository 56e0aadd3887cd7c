package social

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dropDatabas3/vetboard/internal/domain/repository"
	"github.com/dropDatabas3/vetboard/internal/http/v2/providers"
)

// Outcome es el resultado de reconciliar una identidad externa.
type Outcome uint8

const (
	OutcomeLinkedLogin Outcome = iota + 1
	OutcomeAccountConflict
	OutcomeNewUser
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLinkedLogin:
		return "LINKED_LOGIN"
	case OutcomeAccountConflict:
		return "ACCOUNT_CONFLICT"
	case OutcomeNewUser:
		return "NEW_USER"
	}
	return "UNKNOWN"
}

// Identity es el perfil normalizado de un callback. Vive sólo durante el request.
type Identity struct {
	Provider    string
	ProviderID  string
	Email       string
	// EmailVerified lo informa el provider; no cambia la reconciliación.
	EmailVerified bool
	DisplayName   string
	AvatarURL     string
	Phone         string
	BirthDate     string
	RawProfile    map[string]any
}

// IdentityFromProfile normaliza el perfil del provider. El email se pasa a minúsculas.
func IdentityFromProfile(provider string, p *providers.UserProfile) Identity {
	return Identity{
		Provider:      provider,
		ProviderID:    strings.TrimSpace(p.ProviderID),
		Email:         repository.NormalizeEmail(p.Email),
		EmailVerified: p.EmailVerified,
		DisplayName:   strings.TrimSpace(p.Name),
		AvatarURL:     strings.TrimSpace(p.Picture),
		Phone:         strings.TrimSpace(p.Phone),
		BirthDate:     strings.TrimSpace(p.BirthDate),
		RawProfile:    p.Raw,
	}
}

// Conflict describe lo que se puede revelar de la cuenta existente:
// sólo qué métodos de login tiene, nunca sus datos.
type Conflict struct {
	HasPassword       bool
	LinkedProviders   []string
	AttemptedProvider string
}

// Resolution es la salida del resolver.
type Resolution struct {
	Outcome  Outcome
	Account  *repository.Account // LINKED_LOGIN
	Conflict *Conflict           // ACCOUNT_CONFLICT
	Identity Identity
}

var (
	// ErrIdentityIncomplete: identidad sin provider id o email.
	ErrIdentityIncomplete = errors.New("social: identity missing provider id or email")
	// ErrAccountInactive: el vínculo apunta a una cuenta deshabilitada.
	ErrAccountInactive = errors.New("social: linked account is inactive")
)

// IdentityResolver decide LINKED_LOGIN / ACCOUNT_CONFLICT / NEW_USER.
// Sólo lee: nunca crea cuentas ni vínculos.
type IdentityResolver interface {
	Resolve(ctx context.Context, id Identity) (*Resolution, error)
}

type identityResolver struct {
	accounts repository.AccountRepository
	links    repository.SocialLinkRepository
}

func NewIdentityResolver(accounts repository.AccountRepository, links repository.SocialLinkRepository) IdentityResolver {
	return &identityResolver{accounts: accounts, links: links}
}

func (r *identityResolver) Resolve(ctx context.Context, id Identity) (*Resolution, error) {
	if id.ProviderID == "" || id.Email == "" {
		return nil, ErrIdentityIncomplete
	}

	// 1. vínculo existente (provider, provider_user_id)
	acc, err := r.links.FindAccountBySocialLink(ctx, id.Provider, id.ProviderID)
	switch {
	case err == nil:
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: user %s", ErrAccountInactive, acc.ID)
		}
		return &Resolution{Outcome: OutcomeLinkedLogin, Account: acc, Identity: id}, nil
	case !repository.IsNotFound(err):
		return nil, fmt.Errorf("find social link: %w", err)
	}

	// 2. mismo email sin vínculo: conflicto, jamás auto-link
	acc, err = r.accounts.FindByEmail(ctx, id.Email)
	switch {
	case err == nil:
		links, err := r.links.ListByUserID(ctx, acc.ID)
		if err != nil {
			return nil, fmt.Errorf("list social links: %w", err)
		}
		linked := make([]string, 0, len(links))
		seen := make(map[string]bool, len(links))
		for _, l := range links {
			if !seen[l.Provider] {
				seen[l.Provider] = true
				linked = append(linked, l.Provider)
			}
		}
		return &Resolution{
			Outcome: OutcomeAccountConflict,
			Conflict: &Conflict{
				HasPassword:       acc.HasPassword(),
				LinkedProviders:   linked,
				AttemptedProvider: id.Provider,
			},
			Identity: id,
		}, nil
	case !repository.IsNotFound(err):
		return nil, fmt.Errorf("find account by email: %w", err)
	}

	// 3. usuario nuevo: no se persiste nada
	return &Resolution{Outcome: OutcomeNewUser, Identity: id}, nil
}
