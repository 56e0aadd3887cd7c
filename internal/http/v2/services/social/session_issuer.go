package social

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/vetboard/internal/domain/category"
	"github.com/dropDatabas3/vetboard/internal/domain/repository"
	"github.com/dropDatabas3/vetboard/internal/jwt"
)

// TokenPair es la sesión emitida. No se persiste: se verifica por firma.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	TokenType        string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
	SessionID        string
}

// SessionIssuer emite sesiones tras un LINKED_LOGIN.
//
// Cada llamada produce un par nuevo e independiente; las sesiones previas del
// usuario siguen siendo válidas hasta expirar (login multi-dispositivo).
// Revocar en re-autenticación es una decisión de producto pendiente.
type SessionIssuer interface {
	MintTokenPair(userID string, cat category.Category) (*TokenPair, error)
	// IssueSession emite el par y avanza last_login_at.
	IssueSession(ctx context.Context, acc *repository.Account) (*TokenPair, error)
}

type sessionIssuer struct {
	issuer   *jwt.Issuer
	accounts repository.AccountRepository
	now      func() time.Time
}

// SessionDeps contiene las dependencias del SessionIssuer.
type SessionDeps struct {
	Issuer   *jwt.Issuer
	Accounts repository.AccountRepository
	Now      func() time.Time // opcional (tests)
}

func NewSessionIssuer(d SessionDeps) SessionIssuer {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	return &sessionIssuer{issuer: d.Issuer, accounts: d.Accounts, now: now}
}

func (s *sessionIssuer) MintTokenPair(userID string, cat category.Category) (*TokenPair, error) {
	if !cat.Valid() {
		return nil, fmt.Errorf("mint: invalid category %s", cat)
	}
	sid := uuid.NewString()
	claims := map[string]any{"cat": cat.String(), "sid": sid}

	access, err := s.issuer.Issue(jwt.TypeAccess, userID, s.issuer.AccessTTL, claims)
	if err != nil {
		return nil, fmt.Errorf("mint access: %w", err)
	}
	refresh, err := s.issuer.Issue(jwt.TypeRefresh, userID, s.issuer.RefreshTTL, claims)
	if err != nil {
		return nil, fmt.Errorf("mint refresh: %w", err)
	}
	return &TokenPair{
		AccessToken:      access.Token,
		RefreshToken:     refresh.Token,
		TokenType:        "Bearer",
		AccessExpiresAt:  access.ExpiresAt,
		RefreshExpiresAt: refresh.ExpiresAt,
		SessionID:        sid,
	}, nil
}

func (s *sessionIssuer) IssueSession(ctx context.Context, acc *repository.Account) (*TokenPair, error) {
	pair, err := s.MintTokenPair(acc.ID, acc.Category)
	if err != nil {
		return nil, err
	}
	if err := s.accounts.AdvanceLastLogin(ctx, acc.ID, s.now()); err != nil {
		return nil, fmt.Errorf("advance last login: %w", err)
	}
	return pair, nil
}
