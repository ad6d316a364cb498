package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bistroboss/bistro-api/internal/core/domain"
)

const identityKey = "identity"

// TokenVerifier verifies a bearer token and returns the identity it binds.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*domain.Identity, error)
}

// Authenticate reads "Authorization: Bearer <token>", verifies the token
// and binds the resulting identity to the request. Any failure rejects the
// request with 401. It performs no persistence lookup.
func Authenticate(verifier TokenVerifier) Guard {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return unauthenticated("authenticate", "missing_token")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			return unauthenticated("authenticate", "malformed")
		}

		id, err := verifier.Verify(c.Request().Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			reason := "malformed"
			if errors.Is(err, domain.ErrTokenExpired) {
				reason = "expired"
			}
			return unauthenticated("authenticate", reason)
		}

		c.Set(identityKey, id)
		return nil
	}
}

// IdentityFrom returns the identity bound by Authenticate, if any.
func IdentityFrom(c echo.Context) (*domain.Identity, bool) {
	id, ok := c.Get(identityKey).(*domain.Identity)
	return id, ok && id != nil
}
