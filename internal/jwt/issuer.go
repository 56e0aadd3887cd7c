package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Tipos de token (claim "typ").
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
	TypeState   = "social_state"
)

// Issuer firma tokens EdDSA con la clave del KeySet.
type Issuer struct {
	Iss        string
	Keys       *KeySet
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	now func() time.Time
}

func NewIssuer(iss string, ks *KeySet) *Issuer {
	return &Issuer{
		Iss:        iss,
		Keys:       ks,
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 30 * 24 * time.Hour,
		now:        time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	cp := *i
	cp.now = now
	return &cp
}

func (i *Issuer) clock() time.Time {
	if i.now == nil {
		return time.Now().UTC()
	}
	return i.now().UTC()
}

// Keyfunc resuelve la pubkey por 'kid'. Un kid desconocido invalida el token.
func (i *Issuer) Keyfunc() jwtv5.Keyfunc {
	return func(t *jwtv5.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid != "" && kid != i.Keys.KID {
			return nil, ErrUnknownKID
		}
		return i.Keys.Pub, nil
	}
}

// SignRaw firma un MapClaims arbitrario, setea header kid/typ y devuelve el JWT firmado.
func (i *Issuer) SignRaw(claims jwtv5.MapClaims) (string, error) {
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodEdDSA, claims)
	tk.Header["kid"] = i.Keys.KID
	tk.Header["typ"] = "JWT"
	return tk.SignedString(i.Keys.Priv)
}

// Signed es un token firmado con sus metadatos.
type Signed struct {
	Token     string
	JTI       string
	ExpiresAt time.Time
}

// Issue firma un token de tipo typ para sub con TTL y claims extra.
// Cada llamada genera un jti nuevo.
func (i *Issuer) Issue(typ, sub string, ttl time.Duration, extra map[string]any) (Signed, error) {
	now := i.clock()
	exp := now.Add(ttl)
	jti := uuid.NewString()

	claims := jwtv5.MapClaims{
		"iss": i.Iss,
		"sub": sub,
		"typ": typ,
		"jti": jti,
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"exp": exp.Unix(),
	}
	for k, v := range extra {
		claims[k] = v
	}
	signed, err := i.SignRaw(claims)
	if err != nil {
		return Signed{}, err
	}
	return Signed{Token: signed, JTI: jti, ExpiresAt: exp}, nil
}

var (
	ErrInvalidToken  = errors.New("invalid_jwt")
	ErrInvalidIssuer = errors.New("invalid_issuer")
	ErrWrongType     = errors.New("wrong_token_type")
	ErrUnknownKID    = errors.New("unknown_kid")
)
