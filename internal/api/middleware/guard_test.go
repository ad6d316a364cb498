package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/bistroboss/bistro-api/internal/core/domain"
)

type stubRoles struct {
	roles map[string]domain.Role
	err   error
	calls int
}

func (s *stubRoles) RoleOf(_ context.Context, email string) (domain.Role, error) {
	s.calls++
	if s.err != nil {
		return domain.RoleNone, s.err
	}
	return s.roles[email], nil
}

func contextWithIdentity(target, email string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if email != "" {
		c.Set(identityKey, &domain.Identity{Email: email})
	}
	return c
}

func TestRequire_StopsAtFirstRejection(t *testing.T) {
	c := contextWithIdentity("/", "")
	var order []string

	pass := func(name string) Guard {
		return func(echo.Context) error { order = append(order, name); return nil }
	}
	fail := func(name string) Guard {
		return func(echo.Context) error { order = append(order, name); return forbidden(name, "test") }
	}

	handler := Require(pass("a"), fail("b"), pass("c"))(func(echo.Context) error {
		t.Fatalf("handler must not run")
		return nil
	})

	expectRejection(t, handler(c), http.StatusForbidden, "test")
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("unexpected evaluation order: %v", order)
	}
}

func TestRequire_NoGuards(t *testing.T) {
	c := contextWithIdentity("/", "")
	called := false
	if err := Require()(func(echo.Context) error { called = true; return nil })(c); err != nil || !called {
		t.Fatalf("expected handler to run, err=%v", err)
	}
}

func TestSelfScope(t *testing.T) {
	cases := []struct {
		name     string
		target   string
		identity string
		optional bool
		status   int
	}{
		{"match", "/carts?email=a@x.com", "a@x.com", false, 0},
		{"mismatch", "/carts?email=b@x.com", "a@x.com", false, http.StatusForbidden},
		{"empty strict", "/carts", "a@x.com", false, http.StatusForbidden},
		{"empty optional", "/carts", "a@x.com", true, 0},
		{"mismatch optional", "/carts?email=b@x.com", "a@x.com", true, http.StatusForbidden},
		{"case differs", "/carts?email=A@x.com", "a@x.com", false, http.StatusForbidden},
		{"no identity", "/carts?email=a@x.com", "", false, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := contextWithIdentity(tc.target, tc.identity)
			g := SelfScope(QueryParam("email"))
			if tc.optional {
				g = OptionalSelfScope(QueryParam("email"))
			}

			err := g(c)
			if tc.status == 0 {
				if err != nil {
					t.Fatalf("expected pass, got %v", err)
				}
				return
			}
			expectRejection(t, err, tc.status, "")
		})
	}
}

func TestSelfScope_PathParam(t *testing.T) {
	c := contextWithIdentity("/users/admin/a@x.com", "a@x.com")
	c.SetParamNames("email")
	c.SetParamValues("a@x.com")

	if err := SelfScope(PathParam("email"))(c); err != nil {
		t.Fatalf("expected pass, got %v", err)
	}

	c.SetParamValues("b@x.com")
	expectRejection(t, SelfScope(PathParam("email"))(c), http.StatusForbidden, "scope_mismatch")
}

func TestRequireRole(t *testing.T) {
	roles := &stubRoles{roles: map[string]domain.Role{"admin@x.com": domain.RoleAdmin, "user@x.com": domain.RoleNone}}

	if err := RequireRole(domain.RoleAdmin, roles)(contextWithIdentity("/users", "admin@x.com")); err != nil {
		t.Fatalf("admin should pass, got %v", err)
	}

	expectRejection(t, RequireRole(domain.RoleAdmin, roles)(contextWithIdentity("/users", "user@x.com")), http.StatusForbidden, "not_admin")
	expectRejection(t, RequireRole(domain.RoleAdmin, roles)(contextWithIdentity("/users", "ghost@x.com")), http.StatusForbidden, "not_admin")
}

func TestRequireRole_WithoutIdentity(t *testing.T) {
	roles := &stubRoles{}
	expectRejection(t, RequireRole(domain.RoleAdmin, roles)(contextWithIdentity("/users", "")), http.StatusUnauthorized, "no_identity")
	if roles.calls != 0 {
		t.Fatalf("role lookup must not run without an identity")
	}
}

func TestRequireRole_LookupFailure(t *testing.T) {
	boom := errors.New("mongo unavailable")
	err := RequireRole(domain.RoleAdmin, &stubRoles{err: boom})(contextWithIdentity("/users", "a@x.com"))

	var rej *Rejection
	if errors.As(err, &rej) {
		t.Fatalf("lookup failures must not be reported as a rejection")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped lookup error, got %v", err)
	}
}

func TestAuthenticateThenRole_ShortCircuits(t *testing.T) {
	roles := &stubRoles{roles: map[string]domain.Role{}}
	c, _ := newContext("")

	handler := Require(Authenticate(newVerifier()), RequireRole(domain.RoleAdmin, roles))(func(echo.Context) error {
		t.Fatalf("handler must not run")
		return nil
	})

	expectRejection(t, handler(c), http.StatusUnauthorized, "missing_token")
	if roles.calls != 0 {
		t.Fatalf("role lookup ran after authentication failed")
	}
}
