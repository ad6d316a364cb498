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

type stubVerifier struct {
	identities map[string]*domain.Identity
	expired    map[string]bool
	calls      int
}

func (v *stubVerifier) Verify(_ context.Context, token string) (*domain.Identity, error) {
	v.calls++
	if v.expired[token] {
		return nil, domain.ErrTokenExpired
	}
	if id, ok := v.identities[token]; ok {
		return id, nil
	}
	return nil, domain.ErrTokenMalformed
}

func newVerifier() *stubVerifier {
	return &stubVerifier{
		identities: map[string]*domain.Identity{"good": {Email: "a@x.com"}},
		expired:    map[string]bool{"old": true},
	}
}

func newContext(authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func expectRejection(t *testing.T, err error, status int, reason string) {
	t.Helper()
	var rej *Rejection
	if !errors.As(err, &rej) {
		t.Fatalf("expected *Rejection, got %v", err)
	}
	if rej.Status() != status {
		t.Fatalf("expected status %d, got %d", status, rej.Status())
	}
	if reason != "" && rej.Reason != reason {
		t.Fatalf("expected reason %q, got %q", reason, rej.Reason)
	}
}

func TestAuthenticate_ValidToken(t *testing.T) {
	c, rec := newContext("Bearer good")

	called := false
	handler := Require(Authenticate(newVerifier()))(func(c echo.Context) error {
		called = true
		id, ok := IdentityFrom(c)
		if !ok || id.Email != "a@x.com" {
			t.Fatalf("identity not bound: %+v", id)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthenticate_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		header string
		reason string
	}{
		{"missing header", "", "missing_token"},
		{"wrong scheme", "Token good", "malformed"},
		{"scheme only", "Bearer", "malformed"},
		{"blank token", "Bearer   ", "malformed"},
		{"invalid token", "Bearer not-a-token", "malformed"},
		{"expired token", "Bearer old", "expired"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newContext(tc.header)
			handler := Require(Authenticate(newVerifier()))(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})

			expectRejection(t, handler(c), http.StatusUnauthorized, tc.reason)
			if _, ok := IdentityFrom(c); ok {
				t.Fatalf("identity must not be bound on rejection")
			}
		})
	}
}

func TestAuthenticate_SchemeIsCaseInsensitive(t *testing.T) {
	c, _ := newContext("bearer good")
	if err := Authenticate(newVerifier())(c); err != nil {
		t.Fatalf("expected lowercase scheme to pass, got %v", err)
	}
}

func TestAuthenticate_MissingHeaderSkipsVerifier(t *testing.T) {
	v := newVerifier()
	c, _ := newContext("")
	_ = Authenticate(v)(c)
	if v.calls != 0 {
		t.Fatalf("verifier must not be called without a header")
	}
}
