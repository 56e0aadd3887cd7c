package social

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/vetboard/internal/domain/category"
	"github.com/dropDatabas3/vetboard/internal/domain/repository"
	"github.com/dropDatabas3/vetboard/internal/jwt"
	"github.com/dropDatabas3/vetboard/internal/store/memory"
)

func TestMintTokenPairIndependentSessions(t *testing.T) {
	iss := testIssuer(t)
	s := NewSessionIssuer(SessionDeps{Issuer: iss, Accounts: memory.New().Accounts()})

	a, err := s.MintTokenPair("u-1", category.Hospital)
	require.NoError(t, err)
	b, err := s.MintTokenPair("u-1", category.Hospital)
	require.NoError(t, err)

	assert.NotEqual(t, a.SessionID, b.SessionID)
	assert.NotEqual(t, a.AccessToken, b.AccessToken)
	assert.Equal(t, "Bearer", a.TokenType)

	// ambas sesiones siguen siendo válidas
	for _, p := range []*TokenPair{a, b} {
		claims, err := iss.Parse(p.AccessToken, jwt.TypeAccess)
		require.NoError(t, err)
		assert.Equal(t, "u-1", claims["sub"])
		assert.Equal(t, "hospital", claims["cat"])
		assert.Equal(t, p.SessionID, claims["sid"])

		rc, err := iss.Parse(p.RefreshToken, jwt.TypeRefresh)
		require.NoError(t, err)
		assert.Equal(t, p.SessionID, rc["sid"])
		assert.True(t, p.RefreshExpiresAt.After(p.AccessExpiresAt))
	}

	// el access no sirve como refresh
	_, err = iss.Parse(a.AccessToken, jwt.TypeRefresh)
	assert.ErrorIs(t, err, jwt.ErrWrongType)
}

func TestIssueSessionAdvancesLastLogin(t *testing.T) {
	st := memory.New()
	id, err := st.PutAccount(repository.Account{Email: "v@example.com", Category: category.Veterinarian, IsActive: true}, repository.Profile{})
	require.NoError(t, err)

	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := NewSessionIssuer(SessionDeps{Issuer: testIssuer(t), Accounts: st.Accounts(), Now: func() time.Time { return at }})

	acc, err := st.Accounts().FindByID(context.Background(), id)
	require.NoError(t, err)
	_, err = s.IssueSession(context.Background(), acc)
	require.NoError(t, err)

	acc, err = st.Accounts().FindByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, acc.LastLoginAt)
	assert.True(t, acc.LastLoginAt.Equal(at))
}

func TestMintRejectsUnknownCategory(t *testing.T) {
	s := NewSessionIssuer(SessionDeps{Issuer: testIssuer(t), Accounts: memory.New().Accounts()})
	_, err := s.MintTokenPair("u-1", category.Unknown)
	assert.Error(t, err)
}
