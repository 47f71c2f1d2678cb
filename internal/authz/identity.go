package authz

import (
	"strings"

	"github.com/anhbui5302/AnhBlogWebAPI/internal/services"
)

// TokenVerifier verifies a signed credential and returns its claims.
type TokenVerifier interface {
	ValidateToken(token string) (*services.Claims, error)
}

type IdentityResolver struct {
	tokens TokenVerifier
}

func NewIdentityResolver(tokens TokenVerifier) *IdentityResolver {
	return &IdentityResolver{tokens: tokens}
}

// Resolve turns an Authorization header into a user id. A missing, malformed,
// unverifiable or expired credential is always ErrUnauthenticated. The id is
// not checked against the account store here.
func (r *IdentityResolver) Resolve(header string) (uint, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return 0, ErrUnauthenticated
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, ErrUnauthenticated
	}

	claims, err := r.tokens.ValidateToken(token)
	if err != nil {
		return 0, ErrUnauthenticated
	}
	return claims.UserID, nil
}
