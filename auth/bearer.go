package auth

import (
	"fmt"
	"net/http"
	"strings"

	errs "github.com/spettacolo/squalo/errors"
)

// Authorize checks the request's bearer token and requires the given role.
// Every failure wraps errors.ErrUnauthorized.
func (s *Signer) Authorize(r *http.Request, role string) (*CustomClaims, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, fmt.Errorf("%w: authorization token is missing", errs.ErrUnauthorized)
	}
	tokenString, found := strings.CutPrefix(header, "Bearer ")
	if !found || strings.TrimSpace(tokenString) == "" {
		return nil, fmt.Errorf("%w: expected a bearer token", errs.ErrUnauthorized)
	}

	claims, err := s.ValidateToken(strings.TrimSpace(tokenString))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrUnauthorized, err)
	}
	if !claims.HasRole(role) {
		return nil, fmt.Errorf("%w: role %q required", errs.ErrUnauthorized, role)
	}
	return claims, nil
}
