package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/bistroboss/bistro-api/internal/core/domain"
)

type stubCartRepo struct {
	items  map[string]*domain.CartItem
	nextID int
	calls  int
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{items: make(map[string]*domain.CartItem)}
}

func (r *stubCartRepo) ListByEmail(_ context.Context, email string) ([]*domain.CartItem, error) {
	r.calls++
	var out []*domain.CartItem
	for _, it := range r.items {
		if it.Email == email {
			clone := *it
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubCartRepo) Insert(_ context.Context, it *domain.CartItem) (string, error) {
	r.calls++
	r.nextID++
	id := fmt.Sprintf("%024x", r.nextID)
	clone := *it
	clone.ID = id
	r.items[id] = &clone
	return id, nil
}

func (r *stubCartRepo) DeleteByID(_ context.Context, id, owner string) (int64, error) {
	r.calls++
	it, ok := r.items[id]
	if !ok || (owner != "" && it.Email != owner) {
		return 0, nil
	}
	delete(r.items, id)
	return 1, nil
}

func TestCartService_ListScopedToEmail(t *testing.T) {
	repo := newStubCartRepo()
	svc := NewCartService(repo, zerolog.Nop())

	_, _ = svc.Add(context.Background(), domain.CartItem{MenuItemID: "m1", Email: "a@x.com"}, "")
	_, _ = svc.Add(context.Background(), domain.CartItem{MenuItemID: "m2", Email: "b@x.com"}, "")

	items, err := svc.List(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].MenuItemID != "m1" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestCartService_ListEmptyEmail(t *testing.T) {
	repo := newStubCartRepo()
	svc := NewCartService(repo, zerolog.Nop())

	items, err := svc.List(context.Background(), "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty slice, got %#v", items)
	}
	if repo.calls != 0 {
		t.Fatalf("empty email must not hit the store")
	}
}

func TestCartService_AddAsActor(t *testing.T) {
	repo := newStubCartRepo()
	svc := NewCartService(repo, zerolog.Nop())

	if _, err := svc.Add(context.Background(), domain.CartItem{MenuItemID: "m1", Email: "b@x.com"}, "a@x.com"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	id, err := svc.Add(context.Background(), domain.CartItem{MenuItemID: "m1"}, "a@x.com")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if repo.items[id].Email != "a@x.com" {
		t.Fatalf("expected owner to default to the actor, got %q", repo.items[id].Email)
	}
}

func TestCartService_RemoveAsActor(t *testing.T) {
	repo := newStubCartRepo()
	svc := NewCartService(repo, zerolog.Nop())

	id, _ := svc.Add(context.Background(), domain.CartItem{MenuItemID: "m1", Email: "a@x.com"}, "")

	n, err := svc.Remove(context.Background(), id, "b@x.com")
	if err != nil || n != 0 {
		t.Fatalf("foreign actor must not delete, got %d (%v)", n, err)
	}
	n, err = svc.Remove(context.Background(), id, "a@x.com")
	if err != nil || n != 1 {
		t.Fatalf("owner delete failed: %d (%v)", n, err)
	}
}

func TestCartService_AddWithoutOwner(t *testing.T) {
	repo := newStubCartRepo()
	svc := NewCartService(repo, zerolog.Nop())

	if _, err := svc.Add(context.Background(), domain.CartItem{MenuItemID: "m1", Email: "  "}, ""); !errors.Is(err, domain.ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
	if repo.calls != 0 {
		t.Fatalf("rejected item must not reach the store")
	}
}
