package ports

import (
	"context"

	"github.com/bistroboss/bistro-api/internal/core/domain"
)

// CatalogService serves the public menu and reviews.
type CatalogService interface {
	Menu(ctx context.Context) ([]*domain.MenuItem, error)
	Reviews(ctx context.Context) ([]*domain.Review, error)
}
