package social

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/vetboard/internal/domain/category"
	"github.com/dropDatabas3/vetboard/internal/domain/repository"
	"github.com/dropDatabas3/vetboard/internal/store/memory"
)

func TestResolveLinkedIsDeterministic(t *testing.T) {
	s := memory.New()
	id, err := s.PutAccount(repository.Account{Email: "a@example.com", Category: category.Veterinarian, IsActive: true}, repository.Profile{})
	require.NoError(t, err)
	require.NoError(t, s.Link(id, "kakao", "k-1", time.Time{}))
	// otra cuenta con otro vínculo no interfiere
	other, err := s.PutAccount(repository.Account{Email: "b@example.com", Category: category.Student, IsActive: true}, repository.Profile{})
	require.NoError(t, err)
	require.NoError(t, s.Link(other, "kakao", "k-2", time.Time{}))

	r := NewIdentityResolver(s.Accounts(), s.SocialLinks())
	for i := 0; i < 5; i++ {
		// el email del provider puede cambiar; el vínculo manda
		res, err := r.Resolve(context.Background(), Identity{Provider: "kakao", ProviderID: "k-1", Email: "changed@example.com"})
		require.NoError(t, err)
		assert.Equal(t, OutcomeLinkedLogin, res.Outcome)
		assert.Equal(t, id, res.Account.ID)
	}
}

func TestResolvePasswordOnlyEmailIsConflict(t *testing.T) {
	s := memory.New()
	require.NoError(t, s.Seed(memory.AccountFixture{
		Email:    "owner@example.com",
		Password: "pw",
		Category: category.Veterinarian,
	}))
	r := NewIdentityResolver(s.Accounts(), s.SocialLinks())

	for i := 0; i < 3; i++ {
		res, err := r.Resolve(context.Background(), Identity{Provider: "google", ProviderID: "g-1", Email: "owner@example.com"})
		require.NoError(t, err)
		assert.Equal(t, OutcomeAccountConflict, res.Outcome)
		assert.Nil(t, res.Account)
		require.NotNil(t, res.Conflict)
		assert.True(t, res.Conflict.HasPassword)
		assert.Empty(t, res.Conflict.LinkedProviders)
		assert.Equal(t, "google", res.Conflict.AttemptedProvider)
	}

	accounts, links := s.Counts()
	assert.Equal(t, 1, accounts, "never creates a second account")
	assert.Zero(t, links, "never creates a social link")
}

func TestResolveConflictListsLinkedProviders(t *testing.T) {
	s := memory.New()
	require.NoError(t, s.Seed(memory.AccountFixture{
		Email:    "kim@example.com",
		Category: category.Hospital,
		Links: []memory.LinkFixture{
			{Provider: "kakao", ProviderUserID: "k"},
			{Provider: "naver", ProviderUserID: "n"},
		},
	}))
	r := NewIdentityResolver(s.Accounts(), s.SocialLinks())

	res, err := r.Resolve(context.Background(), Identity{Provider: "google", ProviderID: "g", Email: "kim@example.com"})
	require.NoError(t, err)
	require.Equal(t, OutcomeAccountConflict, res.Outcome)
	assert.False(t, res.Conflict.HasPassword)
	assert.Equal(t, []string{"kakao", "naver"}, res.Conflict.LinkedProviders)
}

func TestResolveNewUser(t *testing.T) {
	s := memory.New()
	r := NewIdentityResolver(s.Accounts(), s.SocialLinks())
	id := Identity{Provider: "google", ProviderID: "g", Email: "fresh@example.com", DisplayName: "Fresh"}

	res, err := r.Resolve(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNewUser, res.Outcome)
	assert.Equal(t, id, res.Identity)
}

func TestResolveRejectsIncompleteIdentity(t *testing.T) {
	r := NewIdentityResolver(memory.New().Accounts(), memory.New().SocialLinks())
	_, err := r.Resolve(context.Background(), Identity{Provider: "kakao", ProviderID: "k"})
	assert.ErrorIs(t, err, ErrIdentityIncomplete)
}

func TestOutcomeStrings(t *testing.T) {
	assert.Equal(t, "LINKED_LOGIN", OutcomeLinkedLogin.String())
	assert.Equal(t, "ACCOUNT_CONFLICT", OutcomeAccountConflict.String())
	assert.Equal(t, "NEW_USER", OutcomeNewUser.String())
}
