package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bistroboss/bistro-api/internal/core/domain"
	"github.com/bistroboss/bistro-api/internal/core/ports"
)

const (
	cacheKeyMenu    = "catalog:menu"
	cacheKeyReviews = "catalog:reviews"
)

// CatalogService serves the world-readable menu and reviews through a
// read-through cache.
type CatalogService struct {
	menu    ports.MenuRepository
	reviews ports.ReviewRepository
	cache   ports.CatalogCache
	log     zerolog.Logger
}

// NewCatalogService returns a CatalogService. cache may be nil.
func NewCatalogService(menu ports.MenuRepository, reviews ports.ReviewRepository, cache ports.CatalogCache, log zerolog.Logger) *CatalogService {
	return &CatalogService{menu: menu, reviews: reviews, cache: cache, log: log}
}

func (s *CatalogService) Menu(ctx context.Context) ([]*domain.MenuItem, error) {
	items, err := readThrough(ctx, s, cacheKeyMenu, s.menu.List)
	if err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}
	return items, nil
}

func (s *CatalogService) Reviews(ctx context.Context) ([]*domain.Review, error) {
	reviews, err := readThrough(ctx, s, cacheKeyReviews, s.reviews.List)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// readThrough serves key from the cache when present, otherwise loads it
// and stores the result. Cache failures are logged and never fail the
// request.
func readThrough[T any](ctx context.Context, s *CatalogService, key string, load func(context.Context) ([]*T, error)) ([]*T, error) {
	if s.cache != nil {
		var cached []*T
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("catalog cache read failed")
		} else if hit {
			return cached, nil
		}
	}

	v, err := load(ctx)
	if err != nil {
		return nil, err
	}
	if v == nil {
		v = []*T{}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, v); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("catalog cache write failed")
		}
	}
	return v, nil
}
