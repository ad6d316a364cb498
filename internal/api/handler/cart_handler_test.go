package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bistroboss/bistro-api/internal/core/domain"
)

type stubCartService struct {
	listFn   func(ctx context.Context, email string) ([]*domain.CartItem, error)
	addFn    func(ctx context.Context, item domain.CartItem, actor string) (string, error)
	removeFn func(ctx context.Context, id, actor string) (int64, error)
}

func (s *stubCartService) List(ctx context.Context, email string) ([]*domain.CartItem, error) {
	return s.listFn(ctx, email)
}

func (s *stubCartService) Add(ctx context.Context, item domain.CartItem, actor string) (string, error) {
	return s.addFn(ctx, item, actor)
}

func (s *stubCartService) Remove(ctx context.Context, id, actor string) (int64, error) {
	return s.removeFn(ctx, id, actor)
}

func TestCartHandler_List_UsesQueryEmail(t *testing.T) {
	e := newTestEcho()
	stub := &stubCartService{
		listFn: func(_ context.Context, email string) ([]*domain.CartItem, error) {
			if email != "a@x.com" {
				t.Fatalf("unexpected email %q", email)
			}
			return []*domain.CartItem{{ID: "c1", MenuItemID: "m1", Email: email}}, nil
		},
	}
	h := NewCartHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/carts?email=a@x.com", nil), rec)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"menuItemId":"m1"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestCartHandler_Add_WithoutIdentity(t *testing.T) {
	e := newTestEcho()
	stub := &stubCartService{
		addFn: func(_ context.Context, item domain.CartItem, actor string) (string, error) {
			if actor != "" || item.MenuItemID != "m1" || item.Price != 12.5 || item.Email != "a@x.com" {
				t.Fatalf("unexpected args: %+v actor=%q", item, actor)
			}
			return "c1", nil
		},
	}
	h := NewCartHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/carts", `{"menuItemId":"m1","price":12.5,"email":"a@x.com"}`), rec)

	if err := h.Add(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"acknowledged":true,"insertedId":"c1"}` {
		t.Fatalf("unexpected body: %s", got)
	}
}

func TestCartHandler_Remove_PassesIdentity(t *testing.T) {
	e := newTestEcho()
	stub := &stubCartService{
		removeFn: func(_ context.Context, id, actor string) (int64, error) {
			if id != "c1" || actor != "a@x.com" {
				t.Fatalf("unexpected args: %s %s", id, actor)
			}
			return 1, nil
		},
	}
	h := NewCartHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("c1")
	c.Set("identity", &domain.Identity{Email: "a@x.com"})

	if err := h.Remove(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"acknowledged":true,"deletedCount":1}` {
		t.Fatalf("unexpected body: %s", got)
	}
}
