package memory

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/dropDatabas3/vetboard/internal/domain/category"
	"github.com/dropDatabas3/vetboard/internal/domain/repository"
)

// Fixtures es el formato YAML de semillas para desarrollo.
//
//	accounts:
//	  - email: vet@example.com
//	    password: dev-only
//	    category: veterinarian
//	    name: Kim Vet
//	    phone: "010-0000-0000"
//	    links:
//	      - provider: kakao
//	        provider_user_id: "1234567"
type Fixtures struct {
	Accounts []AccountFixture `yaml:"accounts"`
}

// AccountFixture describe una cuenta sembrada.
type AccountFixture struct {
	ID                       string            `yaml:"id"`
	Email                    string            `yaml:"email"`
	Password                 string            `yaml:"password"` // texto plano, se hashea con bcrypt al cargar
	Category                 category.Category `yaml:"category"`
	Name                     string            `yaml:"name"`
	Phone                    string            `yaml:"phone"`
	BirthDate                string            `yaml:"birth_date"`
	LicenseDocumentRef       string            `yaml:"license_document_ref"`
	LicenseApproved          bool              `yaml:"license_approved"`
	InstitutionEmail         string            `yaml:"institution_email"`
	InstitutionEmailVerified bool              `yaml:"institution_email_verified"`
	Inactive                 bool              `yaml:"inactive"`
	Links                    []LinkFixture     `yaml:"links"`
}

// LinkFixture describe un vínculo social sembrado.
type LinkFixture struct {
	Provider       string `yaml:"provider"`
	ProviderUserID string `yaml:"provider_user_id"`
}

// LoadFile lee fixtures desde un archivo YAML.
func (s *Store) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("memory: open fixtures: %w", err)
	}
	defer f.Close()
	return s.Load(f)
}

// Load lee fixtures YAML y los inserta en el store.
func (s *Store) Load(r io.Reader) error {
	var fx Fixtures
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&fx); err != nil && err != io.EOF {
		return fmt.Errorf("memory: decode fixtures: %w", err)
	}
	for i, a := range fx.Accounts {
		if err := s.Seed(a); err != nil {
			return fmt.Errorf("memory: fixture #%d (%s): %w", i, a.Email, err)
		}
	}
	return nil
}

// Seed inserta una cuenta de fixture con sus vínculos.
func (s *Store) Seed(a AccountFixture) error {
	acc := repository.Account{
		ID:       a.ID,
		Email:    a.Email,
		Category: a.Category,
		Name:     a.Name,
		IsActive: !a.Inactive,
	}
	if a.Password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		hs := string(h)
		acc.PasswordHash = &hs
	}
	id, err := s.PutAccount(acc, repository.Profile{
		Name:                     a.Name,
		Phone:                    a.Phone,
		BirthDate:                a.BirthDate,
		LicenseDocumentRef:       a.LicenseDocumentRef,
		LicenseApproved:          a.LicenseApproved,
		InstitutionEmail:         a.InstitutionEmail,
		InstitutionEmailVerified: a.InstitutionEmailVerified,
	})
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	for i, l := range a.Links {
		// linked_at escalonado para que ListByUserID respete el orden del YAML
		if err := s.Link(id, l.Provider, l.ProviderUserID, now.Add(time.Duration(i)*time.Millisecond)); err != nil {
			return err
		}
	}
	return nil
}
