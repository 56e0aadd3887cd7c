package social

import (
	"context"
	"fmt"
	"strings"

	"github.com/dropDatabas3/vetboard/internal/domain/category"
	"github.com/dropDatabas3/vetboard/internal/domain/repository"
)

// CompletenessEvaluator decide si el perfil guardado cumple los campos
// obligatorios de la categoría.
type CompletenessEvaluator interface {
	IsProfileComplete(ctx context.Context, userID string, cat category.Category) (bool, error)
}

type completenessEvaluator struct {
	accounts repository.AccountRepository
}

func NewCompletenessEvaluator(accounts repository.AccountRepository) CompletenessEvaluator {
	return &completenessEvaluator{accounts: accounts}
}

func (e *completenessEvaluator) IsProfileComplete(ctx context.Context, userID string, cat category.Category) (bool, error) {
	p, err := e.accounts.GetProfile(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("get profile: %w", err)
	}
	return ProfileComplete(cat, p)
}

// ProfileComplete aplica las reglas por categoría:
//
//	veterinarian: nombre + teléfono
//	hospital:     base + documento de licencia aprobado
//	student:      base + email institucional verificado
func ProfileComplete(cat category.Category, p *repository.Profile) (bool, error) {
	base := present(p.Name) && present(p.Phone)

	switch cat {
	case category.Veterinarian:
		return base, nil
	case category.Hospital:
		return base && present(p.LicenseDocumentRef) && p.LicenseApproved, nil
	case category.Student:
		return base && present(p.InstitutionEmail) && p.InstitutionEmailVerified, nil
	case category.Unknown:
	}
	return false, fmt.Errorf("completeness: unsupported category %s", cat)
}

func present(s string) bool { return strings.TrimSpace(s) != "" }
