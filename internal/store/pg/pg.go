// Package pg implementa repository.Store sobre PostgreSQL usando pgxpool.
package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/vetboard/internal/domain/category"
	"github.com/dropDatabas3/vetboard/internal/domain/repository"
)

// Config configura el pool de conexiones.
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Store es la conexión activa a PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// Open crea el pool y verifica la conexión.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("pg: parse DSN: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	} else {
		poolCfg.MaxConns = 10
	}
	if cfg.MaxIdleConns > 0 {
		poolCfg.MinConns = int32(cfg.MaxIdleConns)
	} else {
		poolCfg.MinConns = 2
	}
	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("pg: create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg: ping failed: %w", err)
	}

	return &Store{pool: pool}, nil
}

func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// ─── Repositorios ───

func (s *Store) Accounts() repository.AccountRepository       { return &accountRepo{pool: s.pool} }
func (s *Store) SocialLinks() repository.SocialLinkRepository { return &socialLinkRepo{pool: s.pool} }

// ─── AccountRepository ───

type accountRepo struct{ pool *pgxpool.Pool }

const accountColumns = `id, email, password_hash, category, name, is_active, created_at, last_login_at`

func scanAccount(row pgx.Row) (*repository.Account, error) {
	var (
		a      repository.Account
		catStr string
	)
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &catStr, &a.Name, &a.IsActive, &a.CreatedAt, &a.LastLoginAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	cat, err := category.Parse(catStr)
	if err != nil {
		return nil, fmt.Errorf("pg: account %s: %w", a.ID, err)
	}
	a.Category = cat
	return &a, nil
}

func (r *accountRepo) FindByEmail(ctx context.Context, email string) (*repository.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM app_user WHERE lower(email) = $1 LIMIT 1`
	return scanAccount(r.pool.QueryRow(ctx, query, repository.NormalizeEmail(email)))
}

func (r *accountRepo) FindByID(ctx context.Context, id string) (*repository.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM app_user WHERE id = $1`
	return scanAccount(r.pool.QueryRow(ctx, query, id))
}

func (r *accountRepo) GetProfile(ctx context.Context, userID string) (*repository.Profile, error) {
	const query = `
		SELECT id, name, phone, birth_date, license_document_ref, license_approved,
		       institution_email, institution_email_verified
		FROM app_user WHERE id = $1`
	var p repository.Profile
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.Name, &p.Phone, &p.BirthDate,
		&p.LicenseDocumentRef, &p.LicenseApproved,
		&p.InstitutionEmail, &p.InstitutionEmailVerified,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *accountRepo) AdvanceLastLogin(ctx context.Context, userID string, at time.Time) error {
	// monotónico: nunca retrocede
	tag, err := r.pool.Exec(ctx, `
		UPDATE app_user
		SET last_login_at = GREATEST(COALESCE(last_login_at, $2), $2)
		WHERE id = $1`, userID, at.UTC())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ─── SocialLinkRepository ───

type socialLinkRepo struct{ pool *pgxpool.Pool }

func (r *socialLinkRepo) FindAccountBySocialLink(ctx context.Context, provider, providerUserID string) (*repository.Account, error) {
	const query = `
		SELECT u.id, u.email, u.password_hash, u.category, u.name, u.is_active, u.created_at, u.last_login_at
		FROM social_link l
		JOIN app_user u ON u.id = l.user_id
		WHERE l.provider = $1 AND l.provider_user_id = $2`
	return scanAccount(r.pool.QueryRow(ctx, query, provider, providerUserID))
}

func (r *socialLinkRepo) ListByUserID(ctx context.Context, userID string) ([]repository.SocialLink, error) {
	const query = `
		SELECT user_id, provider, provider_user_id, linked_at
		FROM social_link WHERE user_id = $1 ORDER BY linked_at`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []repository.SocialLink
	for rows.Next() {
		var l repository.SocialLink
		if err := rows.Scan(&l.UserID, &l.Provider, &l.ProviderUserID, &l.LinkedAt); err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}
