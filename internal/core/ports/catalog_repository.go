package ports

import (
	"context"

	"github.com/bistroboss/bistro-api/internal/core/domain"
)

// MenuRepository reads the menu collection.
type MenuRepository interface {
	List(ctx context.Context) ([]*domain.MenuItem, error)
}

// ReviewRepository reads the reviews collection.
type ReviewRepository interface {
	List(ctx context.Context) ([]*domain.Review, error)
}

// CatalogCache stores JSON snapshots of world-readable collections.
type CatalogCache interface {
	// Get decodes the cached value into dest and reports whether it was present.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}
