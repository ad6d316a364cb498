package ports

import (
	"context"

	"github.com/bistroboss/bistro-api/internal/core/domain"
)

// CartRepository defines persistence operations for cart items.
type CartRepository interface {
	ListByEmail(ctx context.Context, email string) ([]*domain.CartItem, error)
	Insert(ctx context.Context, item *domain.CartItem) (string, error)
	// DeleteByID removes the item with the given id. When ownerEmail is
	// non-empty the item must also belong to that email.
	DeleteByID(ctx context.Context, id, ownerEmail string) (int64, error)
}
