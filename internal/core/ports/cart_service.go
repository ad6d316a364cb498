package ports

import (
	"context"

	"github.com/bistroboss/bistro-api/internal/core/domain"
)

// CartService defines use-case operations for cart items.
//
// actor is the authenticated caller's email, or empty on routes without
// an auth gate. A non-empty actor restricts writes to the actor's own cart.
type CartService interface {
	List(ctx context.Context, email string) ([]*domain.CartItem, error)
	Add(ctx context.Context, item domain.CartItem, actor string) (string, error)
	Remove(ctx context.Context, id, actor string) (int64, error)
}
