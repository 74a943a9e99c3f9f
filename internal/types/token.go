package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenType is reported to clients alongside the access token.
const TokenType = "bearer"

// TokenClaims represents the claims in an access token. The username travels
// in the registered Subject claim.
type TokenClaims struct {
	jwt.RegisteredClaims
}

// Username returns the subject the token was issued for.
func (c *TokenClaims) Username() string {
	return c.Subject
}
