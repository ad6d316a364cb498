package ports

import (
	"context"

	"github.com/bistroboss/bistro-api/internal/core/domain"
)

// UserRepository defines persistence operations for user records.
type UserRepository interface {
	// FindByEmail returns domain.ErrNotFound when no record matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Insert returns domain.ErrUserExists when the email is already taken
	// and the store enforces uniqueness.
	Insert(ctx context.Context, user *domain.User) (string, error)
	List(ctx context.Context) ([]*domain.User, error)
	DeleteByID(ctx context.Context, id string) (int64, error)
	SetRole(ctx context.Context, id string, role domain.Role) (UpdateResult, error)
}

// UpdateResult mirrors the counters reported by the document store.
type UpdateResult struct {
	Matched  int64
	Modified int64
}
