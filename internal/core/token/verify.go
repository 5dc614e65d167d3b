package token

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/homeservice/marketplace/internal/core/domain"
)

var ErrInvalidSignature = errors.New("token signature is invalid")

// Verify checks an HS256 credential against secret and returns its claims.
// Unlike Decode, an expired or unsigned credential is an error.
func Verify(raw, secret string) (domain.Claims, error) {
	bare := strip(raw)
	if bare == "" {
		return domain.Claims{}, domain.ErrUnauthenticated
	}

	mc := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(bare, mc, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, ErrInvalidSignature
		}
		return []byte(secret), nil
	})
	if err != nil || !tkn.Valid {
		return domain.Claims{}, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}

	c, err := fromMap(mc)
	if err != nil {
		return domain.Claims{}, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	return c, nil
}
