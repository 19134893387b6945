package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedCredential is returned when a token cannot be parsed or its
// signature does not verify against the server secret.
var ErrMalformedCredential = errors.New("malformed credential")

// Claims are the session claims embedded in an access token.
type Claims struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session credentials. Issue and Decode are pure
// functions of the secret and their inputs; expiry is NOT checked here so
// that the authenticator can tell an expired credential apart from a forged
// one.
type Codec struct {
	secret []byte
	parser *jwt.Parser
	now    func() time.Time
}

func NewCodec(secret string) *Codec {
	return &Codec{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
		now: time.Now,
	}
}

// Issue produces a signed token for the given principal, valid for ttl.
func (c *Codec) Issue(principal Principal, ttl time.Duration) (string, error) {
	issuedAt := c.now()
	claims := Claims{
		Email:   principal.Email,
		IsAdmin: principal.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", principal.ID),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign credential: %w", err)
	}
	return signed, nil
}

// Decode verifies the signature and structural shape of a token and returns
// its claims. An expired token with a valid signature decodes successfully.
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := c.parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCredential, err)
	}
	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing expiry", ErrMalformedCredential)
	}
	return claims, nil
}
