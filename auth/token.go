package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/samber/lo"
	errs "github.com/spettacolo/squalo/errors"
)

const (
	RoleAdmin = "admin"
	issuer    = "squalo"
)

// CustomClaims defines the structure of the data stored inside the JWT.
type CustomClaims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

func (c *CustomClaims) HasRole(role string) bool {
	return lo.Contains(c.Roles, role)
}

// Signer issues and checks HS256 tokens with a shared secret.
type Signer struct {
	key []byte
	now func() time.Time
}

func NewSigner(secret string) (*Signer, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: empty signing secret", errs.ErrInvalidToken)
	}
	return &Signer{key: []byte(secret), now: time.Now}, nil
}

// GenerateToken creates a signed JWT valid for ttl.
func (s *Signer) GenerateToken(subject string, roles []string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := &CustomClaims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// ValidateToken parses and validates the signature and expiration of a JWT string.
func (s *Signer) ValidateToken(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(*jwt.Token) (any, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidToken, err)
	}
	if claims, ok := token.Claims.(*CustomClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errs.ErrInvalidToken
}
