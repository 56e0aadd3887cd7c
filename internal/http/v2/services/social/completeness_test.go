package social

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/vetboard/internal/domain/category"
	"github.com/dropDatabas3/vetboard/internal/domain/repository"
	"github.com/dropDatabas3/vetboard/internal/store/memory"
)

func TestProfileCompleteRules(t *testing.T) {
	base := repository.Profile{Name: "Kim", Phone: "010-0000-0000"}
	full := base
	full.LicenseDocumentRef = "doc"
	full.LicenseApproved = true
	full.InstitutionEmail = "kim@snu.ac.kr"
	full.InstitutionEmailVerified = true

	cases := []struct {
		name string
		cat  category.Category
		mut  func(p *repository.Profile)
		want bool
	}{
		{"vet baseline", category.Veterinarian, func(p *repository.Profile) {}, true},
		{"vet without phone", category.Veterinarian, func(p *repository.Profile) { p.Phone = " " }, false},
		{"hospital approved", category.Hospital, func(p *repository.Profile) {}, true},
		{"hospital pending approval", category.Hospital, func(p *repository.Profile) { p.LicenseApproved = false }, false},
		{"hospital approved without document", category.Hospital, func(p *repository.Profile) { p.LicenseDocumentRef = "" }, false},
		{"student verified", category.Student, func(p *repository.Profile) {}, true},
		{"student unverified", category.Student, func(p *repository.Profile) { p.InstitutionEmailVerified = false }, false},
		{"student without name", category.Student, func(p *repository.Profile) { p.Name = "" }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := full
			tc.mut(&p)
			got, err := ProfileComplete(tc.cat, &p)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestProfileCompleteCoversEveryCategory(t *testing.T) {
	for _, cat := range category.All() {
		_, err := ProfileComplete(cat, &repository.Profile{})
		assert.NoError(t, err, cat.String())
	}
	_, err := ProfileComplete(category.Unknown, &repository.Profile{})
	assert.Error(t, err)
}

func TestCompletenessEvaluatorReadsStoredProfile(t *testing.T) {
	s := memory.New()
	id, err := s.PutAccount(repository.Account{Email: "h@example.com", Category: category.Hospital},
		repository.Profile{Name: "Clinic", Phone: "02", LicenseDocumentRef: "doc", LicenseApproved: true})
	require.NoError(t, err)

	e := NewCompletenessEvaluator(s.Accounts())
	ok, err := e.IsProfileComplete(context.Background(), id, category.Hospital)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = e.IsProfileComplete(context.Background(), "missing", category.Hospital)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
