package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bistroboss/bistro-api/internal/core/domain"
	"github.com/bistroboss/bistro-api/internal/core/ports"
)

// CartService implements per-user cart operations.
type CartService struct {
	repo ports.CartRepository
	log  zerolog.Logger
}

func NewCartService(repo ports.CartRepository, log zerolog.Logger) *CartService {
	return &CartService{repo: repo, log: log}
}

// List returns the items in email's cart. An empty email yields an empty,
// non-nil slice without touching the store.
func (s *CartService) List(ctx context.Context, email string) ([]*domain.CartItem, error) {
	if email == "" {
		return []*domain.CartItem{}, nil
	}
	items, err := s.repo.ListByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	if items == nil {
		items = []*domain.CartItem{}
	}
	return items, nil
}

// Add stores item. When actor is set the item must belong to the actor;
// otherwise the payload has to name its owner.
func (s *CartService) Add(ctx context.Context, item domain.CartItem, actor string) (string, error) {
	item.ID = ""
	item.Email = strings.TrimSpace(item.Email)
	if actor != "" {
		if item.Email == "" {
			item.Email = actor
		}
		if item.Email != actor {
			return "", fmt.Errorf("add cart item: %w", domain.ErrForbidden)
		}
	}
	if item.Email == "" {
		return "", fmt.Errorf("add cart item: %w: email is required", domain.ErrInvalidPayload)
	}

	id, err := s.repo.Insert(ctx, &item)
	if err != nil {
		return "", fmt.Errorf("add cart item: %w", err)
	}
	s.log.Debug().Str("id", id).Str("email", item.Email).Str("menu_item", item.MenuItemID).Msg("cart item added")
	return id, nil
}

// Remove deletes the cart item with the given id. When actor is set only
// the actor's own items are matched, so a foreign id deletes nothing.
func (s *CartService) Remove(ctx context.Context, id, actor string) (int64, error) {
	n, err := s.repo.DeleteByID(ctx, id, actor)
	if err != nil {
		return 0, fmt.Errorf("remove cart item: %w", err)
	}
	return n, nil
}
