package repository

import (
	"context"
	"strings"
	"time"

	"github.com/dropDatabas3/vetboard/internal/domain/category"
)

// Account representa una cuenta de usuario persistida.
// Es propiedad de la aplicación principal; este módulo sólo la lee y actualiza
// LastLoginAt.
type Account struct {
	ID           string
	Email        string // único global, normalizado con NormalizeEmail
	PasswordHash *string
	Category     category.Category
	Name         string
	IsActive     bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// HasPassword indica si la cuenta tiene contraseña local.
func (a *Account) HasPassword() bool {
	return a != nil && a.PasswordHash != nil && *a.PasswordHash != ""
}

// Profile son los campos de perfil específicos de categoría que evalúa
// el chequeo de completitud.
type Profile struct {
	UserID                   string
	Name                     string
	Phone                    string
	BirthDate                string
	LicenseDocumentRef       string // hospital: referencia al documento de licencia comercial
	LicenseApproved          bool
	InstitutionEmail         string // student: email institucional
	InstitutionEmailVerified bool
}

// AccountRepository define las operaciones sobre cuentas que usa el social login.
type AccountRepository interface {
	// FindByEmail busca una cuenta por email normalizado.
	// Retorna ErrNotFound si no existe.
	FindByEmail(ctx context.Context, email string) (*Account, error)

	// FindByID busca una cuenta por ID.
	// Retorna ErrNotFound si no existe.
	FindByID(ctx context.Context, id string) (*Account, error)

	// GetProfile retorna los campos de perfil de la cuenta.
	// Retorna ErrNotFound si la cuenta no existe.
	GetProfile(ctx context.Context, userID string) (*Profile, error)

	// AdvanceLastLogin fija last_login_at = at. Es idempotente.
	AdvanceLastLogin(ctx context.Context, userID string, at time.Time) error
}

// NormalizeEmail aplica trim + lowercase. Todas las búsquedas por email pasan por acá.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
