package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bistroboss/bistro-api/internal/core/domain"
	"github.com/bistroboss/bistro-api/internal/pkg/metrics"
)

// Guard inspects a request before its handler runs. It returns nil to let
// the request continue or an error, usually a *Rejection, to end it.
type Guard func(c echo.Context) error

// Rejection is a guard's decision to stop a request. It unwraps to
// domain.ErrUnauthenticated or domain.ErrForbidden.
type Rejection struct {
	Guard  string
	Reason string
	Err    error
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("%s guard: %s: %v", r.Guard, r.Reason, r.Err)
}

func (r *Rejection) Unwrap() error { return r.Err }

// Status is the HTTP status the rejection maps to.
func (r *Rejection) Status() int {
	if errors.Is(r.Err, domain.ErrForbidden) {
		return http.StatusForbidden
	}
	return http.StatusUnauthorized
}

func unauthenticated(guard, reason string) *Rejection {
	return &Rejection{Guard: guard, Reason: reason, Err: domain.ErrUnauthenticated}
}

func forbidden(guard, reason string) *Rejection {
	return &Rejection{Guard: guard, Reason: reason, Err: domain.ErrForbidden}
}

// Require evaluates guards in order and calls the handler only if every
// guard passes. The first failing guard ends the request; later guards
// and the handler never run.
func Require(guards ...Guard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			for _, g := range guards {
				if err := g(c); err != nil {
					var rej *Rejection
					if errors.As(err, &rej) {
						metrics.GuardRejectionsTotal.WithLabelValues(rej.Guard, rej.Reason).Inc()
					}
					return err
				}
			}
			return next(c)
		}
	}
}

// ScopeSource extracts the email a request is scoped to.
type ScopeSource func(c echo.Context) string

// QueryParam scopes a request by a query string parameter.
func QueryParam(name string) ScopeSource {
	return func(c echo.Context) string { return c.QueryParam(name) }
}

// PathParam scopes a request by a route parameter.
func PathParam(name string) ScopeSource {
	return func(c echo.Context) string { return c.Param(name) }
}

// SelfScope rejects with 403 unless the scoped email equals the email of
// the identity bound by Authenticate. An empty scope is a mismatch.
func SelfScope(source ScopeSource) Guard {
	return selfScope(source, false)
}

// OptionalSelfScope is SelfScope, except that a request carrying no scope
// passes through to the handler.
func OptionalSelfScope(source ScopeSource) Guard {
	return selfScope(source, true)
}

func selfScope(source ScopeSource, optional bool) Guard {
	return func(c echo.Context) error {
		id, ok := IdentityFrom(c)
		if !ok {
			return unauthenticated("self_scope", "no_identity")
		}
		scope := source(c)
		if scope == "" && optional {
			return nil
		}
		if scope != id.Email {
			return forbidden("self_scope", "scope_mismatch")
		}
		return nil
	}
}

// RoleLookup resolves the persisted role of an email.
type RoleLookup interface {
	RoleOf(ctx context.Context, email string) (domain.Role, error)
}

// RequireRole rejects with 403 unless the persisted account of the bound
// identity holds role. It must follow Authenticate; without a bound
// identity it rejects with 401. Lookup failures are returned as-is.
func RequireRole(role domain.Role, lookup RoleLookup) Guard {
	return func(c echo.Context) error {
		id, ok := IdentityFrom(c)
		if !ok {
			return unauthenticated("role", "no_identity")
		}
		got, err := lookup.RoleOf(c.Request().Context(), id.Email)
		if err != nil {
			return fmt.Errorf("role guard: %w", err)
		}
		if got != role {
			return forbidden("role", "not_"+role.String())
		}
		return nil
	}
}
