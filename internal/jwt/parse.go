package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// Parse valida firma EdDSA, iss, exp/nbf (30s de tolerancia) y el claim typ.
// Devuelve las claims como map.
func (i *Issuer) Parse(token, expectedTyp string) (jwtv5.MapClaims, error) {
	tok, err := jwtv5.Parse(token, i.Keyfunc(),
		jwtv5.WithValidMethods([]string{"EdDSA"}),
		jwtv5.WithIssuer(i.Iss),
		jwtv5.WithLeeway(30*time.Second),
		jwtv5.WithTimeFunc(i.clock),
		jwtv5.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenInvalidIssuer) {
			return nil, ErrInvalidIssuer
		}
		return nil, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwtv5.MapClaims)
	if !ok || !tok.Valid {
		return nil, ErrInvalidToken
	}
	if expectedTyp != "" {
		if typ, _ := claims["typ"].(string); typ != expectedTyp {
			return nil, ErrWrongType
		}
	}
	return claims, nil
}
