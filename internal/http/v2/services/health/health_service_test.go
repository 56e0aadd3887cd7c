package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jwtx "github.com/dropDatabas3/vetboard/internal/jwt"
)

func issuer(t *testing.T) *jwtx.Issuer {
	t.Helper()
	ks, err := jwtx.NewEphemeral("k1")
	require.NoError(t, err)
	return jwtx.NewIssuer("https://vetboard.test", ks)
}

func ok(context.Context) error { return nil }

func TestCheckReady(t *testing.T) {
	s := NewHealthService(Deps{
		Issuer:     issuer(t),
		StoreCheck: ok,
		CacheCheck: ok,
		Providers:  func() []string { return []string{"kakao"} },
	})
	resp := s.Check(context.Background())
	assert.Equal(t, "ready", resp.Status)
	assert.Equal(t, "k1", resp.ActiveKeyID)
	assert.Equal(t, "ok", resp.Components["keystore"].Status)
}

func TestCheckDegradedWithoutProviders(t *testing.T) {
	s := NewHealthService(Deps{Issuer: issuer(t), StoreCheck: ok, CacheCheck: ok})
	resp := s.Check(context.Background())
	assert.Equal(t, "degraded", resp.Status)
	assert.Empty(t, resp.Providers)
}

func TestCheckUnavailableOnStoreFailure(t *testing.T) {
	s := NewHealthService(Deps{
		Issuer:     issuer(t),
		StoreCheck: func(context.Context) error { return errors.New("conn refused") },
		CacheCheck: ok,
		Providers:  func() []string { return []string{"google"} },
	})
	resp := s.Check(context.Background())
	assert.Equal(t, "unavailable", resp.Status)
	assert.Equal(t, "error", resp.Components["store"].Status)
	assert.Contains(t, resp.Components["store"].Message, "conn refused")
}
