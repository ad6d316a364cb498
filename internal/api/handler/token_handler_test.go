package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bistroboss/bistro-api/internal/core/domain"
)

type stubTokenService struct {
	issueFn func(ctx context.Context, claims domain.IdentityClaims) (string, error)
}

func (s *stubTokenService) Issue(ctx context.Context, claims domain.IdentityClaims) (string, error) {
	return s.issueFn(ctx, claims)
}

func (s *stubTokenService) Verify(context.Context, string) (*domain.Identity, error) {
	return nil, domain.ErrTokenMalformed
}

func TestTokenHandler_Issue(t *testing.T) {
	e := newTestEcho()
	stub := &stubTokenService{
		issueFn: func(_ context.Context, claims domain.IdentityClaims) (string, error) {
			if claims.Email != "ana@x.com" || claims.Name != "Ana" {
				t.Fatalf("unexpected claims: %+v", claims)
			}
			return "signed.token.value", nil
		},
	}
	h := NewTokenHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/jwt", `{"email":"ana@x.com","name":"Ana"}`), rec)

	if err := h.Issue(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"token":"signed.token.value"}` {
		t.Fatalf("unexpected body: %s", got)
	}
}

func TestTokenHandler_Issue_MissingEmail(t *testing.T) {
	e := newTestEcho()
	stub := &stubTokenService{
		issueFn: func(context.Context, domain.IdentityClaims) (string, error) {
			t.Fatalf("should not be called")
			return "", nil
		},
	}
	h := NewTokenHandler(stub)

	c := e.NewContext(jsonRequest(http.MethodPost, "/jwt", `{"name":"Ana"}`), httptest.NewRecorder())
	err := h.Issue(c)
	if !errors.Is(err, domain.ErrInvalidPayload) || !strings.Contains(err.Error(), "email is required") {
		t.Fatalf("expected missing email error, got %v", err)
	}
}
