package ports

import (
	"context"

	"github.com/bistroboss/bistro-api/internal/core/domain"
)

// TokenService issues and verifies bearer tokens.
type TokenService interface {
	Issue(ctx context.Context, claims domain.IdentityClaims) (string, error)
	// Verify returns domain.ErrTokenExpired or domain.ErrTokenMalformed on failure.
	Verify(ctx context.Context, token string) (*domain.Identity, error)
}
