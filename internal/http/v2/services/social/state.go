package social

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/dropDatabas3/vetboard/internal/cache"
	"github.com/dropDatabas3/vetboard/internal/domain/category"
	"github.com/dropDatabas3/vetboard/internal/jwt"
)

// State es el contenido del parámetro state: firmado, con expiración y de un solo uso.
type State struct {
	Provider  string
	Category  category.Category
	Popup     bool
	Nonce     string
	JTI       string
	ExpiresAt time.Time
}

// StateCodec firma y verifica states.
type StateCodec interface {
	Sign(provider string, cat category.Category, popup bool) (string, *State, error)
	// Verify valida firma, expiración, provider y consume el jti.
	// Un segundo Verify del mismo token falla con ErrStateReplayed.
	Verify(ctx context.Context, token, provider string) (*State, error)
}

var (
	ErrStateMissing  = errors.New("state missing")
	ErrStateInvalid  = errors.New("state invalid")
	ErrStateProvider = errors.New("state provider mismatch")
	ErrStateReplayed = errors.New("state already used")
	// ErrStateGuard: el store de jtis no respondió; el state puede ser válido.
	ErrStateGuard = errors.New("state replay guard unavailable")
)

const stateKeyPrefix = "social:state:"

type stateCodec struct {
	issuer *jwt.Issuer
	ttl    time.Duration
	guard  cache.Client
}

func NewStateCodec(issuer *jwt.Issuer, ttl time.Duration, guard cache.Client) StateCodec {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &stateCodec{issuer: issuer, ttl: ttl, guard: guard}
}

func (c *stateCodec) Sign(provider string, cat category.Category, popup bool) (string, *State, error) {
	if !cat.Valid() {
		return "", nil, fmt.Errorf("state: invalid category %s", cat)
	}
	nonce, err := randomToken(16)
	if err != nil {
		return "", nil, err
	}
	s, err := c.issuer.Issue(jwt.TypeState, provider, c.ttl, map[string]any{
		"cat":   cat.String(),
		"popup": popup,
		"nonce": nonce,
	})
	if err != nil {
		return "", nil, fmt.Errorf("state: sign: %w", err)
	}
	return s.Token, &State{
		Provider:  provider,
		Category:  cat,
		Popup:     popup,
		Nonce:     nonce,
		JTI:       s.JTI,
		ExpiresAt: s.ExpiresAt,
	}, nil
}

func (c *stateCodec) Verify(ctx context.Context, token, provider string) (*State, error) {
	if token == "" {
		return nil, ErrStateMissing
	}
	claims, err := c.issuer.Parse(token, jwt.TypeState)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStateInvalid, err)
	}
	st, err := stateFromClaims(claims)
	if err != nil {
		return nil, err
	}
	if st.Provider != provider {
		return nil, ErrStateProvider
	}

	if c.guard != nil {
		ttl := time.Until(st.ExpiresAt) + time.Minute
		fresh, err := c.guard.SetIfAbsent(ctx, stateKeyPrefix+st.JTI, "1", ttl)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStateGuard, err)
		}
		if !fresh {
			return nil, ErrStateReplayed
		}
	}
	return st, nil
}

func stateFromClaims(claims jwtv5.MapClaims) (*State, error) {
	sub, _ := claims["sub"].(string)
	jti, _ := claims["jti"].(string)
	nonce, _ := claims["nonce"].(string)
	catStr, _ := claims["cat"].(string)
	popup, _ := claims["popup"].(bool)
	if sub == "" || jti == "" || nonce == "" {
		return nil, fmt.Errorf("%w: missing claims", ErrStateInvalid)
	}
	cat, err := category.Parse(catStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStateInvalid, err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, fmt.Errorf("%w: exp", ErrStateInvalid)
	}
	return &State{
		Provider:  sub,
		Category:  cat,
		Popup:     popup,
		Nonce:     nonce,
		JTI:       jti,
		ExpiresAt: exp.Time,
	}, nil
}

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
