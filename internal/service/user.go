package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/readingclub/readingclub/internal/auth"
	"github.com/readingclub/readingclub/internal/domain"
	domainerrors "github.com/readingclub/readingclub/internal/errors"
	"github.com/readingclub/readingclub/internal/store"
)

// UserService manages member accounts and reading progress.
type UserService struct {
	store  store.Store
	logger *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(store store.Store, logger *slog.Logger) *UserService {
	return &UserService{store: store, logger: logger}
}

// CreateUserRequest is an admin creating a member account.
type CreateUserRequest struct {
	Username string `json:"username" validate:"username"`
	Email    string `json:"email" validate:"omitempty,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=1024"`
}

// UpdateUserRequest changes the editable profile fields.
type UpdateUserRequest struct {
	Email string `json:"email" validate:"omitempty,email,max=254"`
}

// ChangeUsernameRequest renames the account.
type ChangeUsernameRequest struct {
	Username string `json:"username" validate:"username"`
}

// ChangePasswordRequest replaces the password after checking the current one.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=1024"`
}

// List returns every member ordered by username.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Get returns one member.
func (s *UserService) Get(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.store.GetUser(ctx, userID)
	return u, translate(err, "get user", "user not found")
}

// GetByUsername looks a member up by name, case-insensitively.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := s.store.GetUserByUsername(ctx, username)
	return u, translate(err, "get user by username", "user not found")
}

// Create adds a member account. Admin only.
func (s *UserService) Create(ctx context.Context, actorID string, req CreateUserRequest) (*domain.User, error) {
	if _, err := requireAdmin(ctx, s.store, actorID); err != nil {
		return nil, err
	}
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	u, err := newUser(ctx, s.store, req.Username, req.Email, req.Password, domain.RoleMember)
	if err != nil {
		return nil, err
	}
	s.logger.Info("member created", "user_id", u.ID, "by", actorID)
	return u, nil
}

// Update changes the member's email.
func (s *UserService) Update(ctx context.Context, actorID, userID string, req UpdateUserRequest) (*domain.User, error) {
	return s.mutate(ctx, actorID, userID, req, func(u *domain.User) error {
		u.Email = req.Email
		return nil
	})
}

// SetProgress records the highest chapter the member has finished. The value
// is absolute; it is bounded by the active book's chapter count when there is
// one.
func (s *UserService) SetProgress(ctx context.Context, actorID, userID string, chapter int) (*domain.User, error) {
	if chapter < 0 {
		return nil, domainerrors.Validation("currentChapter must be zero or greater")
	}

	book, err := s.store.GetActiveBook(ctx)
	switch {
	case err == nil:
		if book.TotalChapters > 0 && chapter > book.TotalChapters {
			return nil, domainerrors.Validationf("currentChapter cannot exceed %d", book.TotalChapters)
		}
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("get active book: %w", err)
	}

	return s.mutate(ctx, actorID, userID, nil, func(u *domain.User) error {
		u.CurrentChapter = chapter
		return nil
	})
}

// ChangeUsername renames the member.
func (s *UserService) ChangeUsername(ctx context.Context, actorID, userID string, req ChangeUsernameRequest) (*domain.User, error) {
	return s.mutate(ctx, actorID, userID, req, func(u *domain.User) error {
		next := domain.CleanUsername(req.Username)
		if next == u.Username {
			return domainerrors.Validation("username is the same as the current username")
		}
		u.Username = next
		return nil
	})
}

// ChangePassword replaces the password once the current one checks out.
func (s *UserService) ChangePassword(ctx context.Context, actorID, userID string, req ChangePasswordRequest) error {
	_, err := s.mutate(ctx, actorID, userID, req, func(u *domain.User) error {
		ok, err := auth.VerifyPassword(u.PasswordHash, req.CurrentPassword)
		if err != nil {
			return fmt.Errorf("verify password: %w", err)
		}
		if !ok {
			return domainerrors.InvalidCredentials("current password is incorrect")
		}
		hash, err := auth.HashPassword(req.NewPassword)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = hash
		return nil
	})
	return err
}

// mutate loads the actor's own account, validates req when given, applies
// fn and saves.
func (s *UserService) mutate(ctx context.Context, actorID, userID string, req any, fn func(*domain.User) error) (*domain.User, error) {
	if err := requireSelf(actorID, userID); err != nil {
		return nil, err
	}
	if req != nil {
		if err := validate.Validate(req); err != nil {
			return nil, err
		}
	}

	u, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, translate(err, "get user", "user not found")
	}
	if err := fn(u); err != nil {
		return nil, err
	}
	u.Touch()

	if err := s.store.UpdateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists("username already taken")
		}
		return nil, translate(err, "update user", "user not found")
	}
	return u, nil
}
