package ports

import (
	"context"

	"github.com/bistroboss/bistro-api/internal/core/domain"
)

// RegisterResult reports the outcome of an idempotent registration.
type RegisterResult struct {
	InsertedID     string
	AlreadyExisted bool
}

// UserService defines use-case operations for user accounts.
type UserService interface {
	Register(ctx context.Context, user domain.User) (*RegisterResult, error)
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id, actor string) (int64, error)
	Promote(ctx context.Context, id, actor string) (UpdateResult, error)
	// RoleOf returns domain.RoleNone for unknown emails.
	RoleOf(ctx context.Context, email string) (domain.Role, error)
}
