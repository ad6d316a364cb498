package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bistroboss/bistro-api/internal/core/domain"
	"github.com/bistroboss/bistro-api/internal/core/ports"
)

// UserService implements account registration, listing and role changes.
type UserService struct {
	repo  ports.UserRepository
	audit ports.AuditSink
	log   zerolog.Logger
	now   func() time.Time
}

// NewUserService returns a UserService. audit may be nil.
func NewUserService(repo ports.UserRepository, audit ports.AuditSink, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, audit: audit, log: log, now: time.Now}
}

// Register inserts user unless a record with the same email exists, in
// which case nothing is written and AlreadyExisted is set.
//
// Two concurrent registrations for the same new email both pass the
// lookup; which one wins is decided by the store. With the unique email
// index in place the loser gets ErrUserExists from Insert and is reported
// as AlreadyExisted as well.
func (s *UserService) Register(ctx context.Context, user domain.User) (*ports.RegisterResult, error) {
	user.Email = strings.TrimSpace(user.Email)
	if user.Email == "" {
		return nil, fmt.Errorf("register: %w: email is required", domain.ErrInvalidPayload)
	}
	// Self-registration never grants privileges.
	user.Role = domain.RoleNone
	user.ID = ""

	existing, err := s.repo.FindByEmail(ctx, user.Email)
	switch {
	case err == nil && existing != nil:
		return &ports.RegisterResult{AlreadyExisted: true}, nil
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("register: %w", err)
	}

	id, err := s.repo.Insert(ctx, &user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			s.log.Info().Str("email", user.Email).Msg("concurrent registration lost the race")
			return &ports.RegisterResult{AlreadyExisted: true}, nil
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.record(domain.AuditUserRegistered, id, user.Email)
	s.log.Info().Str("email", user.Email).Str("id", id).Msg("user registered")

	return &ports.RegisterResult{InsertedID: id}, nil
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Delete removes the account with the given id. actor is recorded in the
// audit trail and may be empty.
func (s *UserService) Delete(ctx context.Context, id, actor string) (int64, error) {
	n, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("delete user: %w", err)
	}
	if n > 0 {
		s.record(domain.AuditUserDeleted, id, actor)
		s.log.Warn().Str("id", id).Str("actor", actor).Msg("user deleted")
	}
	return n, nil
}

// Promote grants the admin role to the account with the given id.
func (s *UserService) Promote(ctx context.Context, id, actor string) (ports.UpdateResult, error) {
	res, err := s.repo.SetRole(ctx, id, domain.RoleAdmin)
	if err != nil {
		return ports.UpdateResult{}, fmt.Errorf("promote user: %w", err)
	}
	if res.Modified > 0 {
		s.record(domain.AuditUserPromoted, id, actor)
		s.log.Warn().Str("id", id).Str("actor", actor).Msg("user promoted to admin")
	}
	return res, nil
}

func (s *UserService) RoleOf(ctx context.Context, email string) (domain.Role, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.RoleNone, nil
		}
		return domain.RoleNone, fmt.Errorf("role lookup: %w", err)
	}
	return user.Role, nil
}

func (s *UserService) record(action domain.AuditAction, target, actor string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(domain.AuditEvent{
		Action: action,
		Target: target,
		Actor:  actor,
		At:     s.now().UTC(),
	})
}
