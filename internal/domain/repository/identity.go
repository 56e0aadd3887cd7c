package repository

import (
	"context"
	"time"
)

// SocialLink vincula un par (provider, provider_user_id) con exactamente una cuenta.
// (Provider, ProviderUserID) es único en toda la tabla.
type SocialLink struct {
	UserID         string
	Provider       string // "google", "kakao", "naver"
	ProviderUserID string // ID estable del usuario en el provider
	LinkedAt       time.Time
}

// SocialLinkRepository define las lecturas sobre vínculos sociales.
// La creación de vínculos ocurre en el flujo de registro, fuera de este módulo.
type SocialLinkRepository interface {
	// FindAccountBySocialLink retorna la cuenta dueña del vínculo.
	// Retorna ErrNotFound si el par no está vinculado.
	FindAccountBySocialLink(ctx context.Context, provider, providerUserID string) (*Account, error)

	// ListByUserID lista los vínculos de una cuenta, ordenados por LinkedAt.
	ListByUserID(ctx context.Context, userID string) ([]SocialLink, error)
}

// Store agrupa los repositorios que consume el social login.
type Store interface {
	Accounts() AccountRepository
	SocialLinks() SocialLinkRepository
	Ping(ctx context.Context) error
	Close() error
}
