// Package memory implementa repository.Store en memoria.
//
// Se usa en desarrollo (store.driver=memory, sembrado desde un YAML de
// fixtures) y en tests. Respeta los mismos invariantes que el esquema
// Postgres: email único (case-insensitive) y (provider, provider_user_id) único.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/vetboard/internal/domain/repository"
)

type linkKey struct {
	provider string
	subject  string
}

type record struct {
	account repository.Account
	profile repository.Profile
}

// Store es un repository.Store thread-safe en memoria.
type Store struct {
	mu      sync.RWMutex
	byID    map[string]*record
	byEmail map[string]string // email normalizado -> id
	links   map[linkKey]repository.SocialLink
}

// New crea un Store vacío.
func New() *Store {
	return &Store{
		byID:    make(map[string]*record),
		byEmail: make(map[string]string),
		links:   make(map[linkKey]repository.SocialLink),
	}
}

var _ repository.Store = (*Store)(nil)

func (s *Store) Accounts() repository.AccountRepository       { return (*accountRepo)(s) }
func (s *Store) SocialLinks() repository.SocialLinkRepository { return (*linkRepo)(s) }
func (s *Store) Ping(ctx context.Context) error                { return nil }
func (s *Store) Close() error                                  { return nil }

// PutAccount inserta una cuenta con su perfil. Si a.ID está vacío se genera uno.
// Retorna repository.ErrConflict si el email ya existe.
func (s *Store) PutAccount(a repository.Account, p repository.Profile) (string, error) {
	if !a.Category.Valid() {
		return "", fmt.Errorf("%w: category %s", repository.ErrInvalidInput, a.Category)
	}
	email := repository.NormalizeEmail(a.Email)
	if email == "" {
		return "", fmt.Errorf("%w: email required", repository.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.byEmail[email]; dup {
		return "", fmt.Errorf("%w: email %s", repository.ErrConflict, email)
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if _, dup := s.byID[a.ID]; dup {
		return "", fmt.Errorf("%w: id %s", repository.ErrConflict, a.ID)
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	a.Email = email
	p.UserID = a.ID
	if p.Name == "" {
		p.Name = a.Name
	}

	s.byID[a.ID] = &record{account: a, profile: p}
	s.byEmail[email] = a.ID
	return a.ID, nil
}

// Link vincula (provider, providerUserID) a la cuenta.
// Retorna repository.ErrConflict si el par ya pertenece a alguna cuenta.
func (s *Store) Link(userID, provider, providerUserID string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[userID]; !ok {
		return repository.ErrNotFound
	}
	k := linkKey{provider: provider, subject: providerUserID}
	if _, dup := s.links[k]; dup {
		return fmt.Errorf("%w: %s/%s already linked", repository.ErrConflict, provider, providerUserID)
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}
	s.links[k] = repository.SocialLink{
		UserID:         userID,
		Provider:       provider,
		ProviderUserID: providerUserID,
		LinkedAt:       at,
	}
	return nil
}

// Counts retorna la cantidad de cuentas y vínculos almacenados.
func (s *Store) Counts() (accounts, links int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID), len(s.links)
}

// ─── AccountRepository ───

type accountRepo Store

func (r *accountRepo) FindByEmail(ctx context.Context, email string) (*repository.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[repository.NormalizeEmail(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := r.byID[id].account
	return &cp, nil
}

func (r *accountRepo) FindByID(ctx context.Context, id string) (*repository.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := rec.account
	return &cp, nil
}

func (r *accountRepo) GetProfile(ctx context.Context, userID string) (*repository.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byID[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := rec.profile
	return &cp, nil
}

func (r *accountRepo) AdvanceLastLogin(ctx context.Context, userID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.byID[userID]
	if !ok {
		return repository.ErrNotFound
	}
	at = at.UTC()
	if rec.account.LastLoginAt == nil || at.After(*rec.account.LastLoginAt) {
		rec.account.LastLoginAt = &at
	}
	return nil
}

// ─── SocialLinkRepository ───

type linkRepo Store

func (r *linkRepo) FindAccountBySocialLink(ctx context.Context, provider, providerUserID string) (*repository.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.links[linkKey{provider: provider, subject: providerUserID}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	rec, ok := r.byID[l.UserID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := rec.account
	return &cp, nil
}

func (r *linkRepo) ListByUserID(ctx context.Context, userID string) ([]repository.SocialLink, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []repository.SocialLink
	for _, l := range r.links {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LinkedAt.Equal(out[j].LinkedAt) {
			return out[i].Provider < out[j].Provider
		}
		return out[i].LinkedAt.Before(out[j].LinkedAt)
	})
	return out, nil
}

