// Package service implements the reading club's business rules on top of
// the store: authentication, ownership checks, admin-only content management
// and the one-answer-per-member rule.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/readingclub/readingclub/internal/domain"
	domainerrors "github.com/readingclub/readingclub/internal/errors"
	"github.com/readingclub/readingclub/internal/store"
	"github.com/readingclub/readingclub/internal/validation"
)

// validate is the shared request validator.
var validate = validation.New()

// translate maps store sentinels onto domain errors. Anything else is
// wrapped with op for the log.
func translate(err error, op, notFoundMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return domainerrors.NotFound(notFoundMsg)
	case errors.Is(err, store.ErrAlreadyExists):
		return domainerrors.AlreadyExists(notFoundMsg)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// requireAdmin loads the acting user and fails unless they are an admin.
func requireAdmin(ctx context.Context, s store.Store, userID string) (*domain.User, error) {
	u, err := s.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.Unauthorized("user no longer exists")
		}
		return nil, fmt.Errorf("load actor: %w", err)
	}
	if !u.IsAdmin() {
		return nil, domainerrors.Forbidden("admin access required")
	}
	return u, nil
}

// requireSelf fails unless the actor is the target user.
func requireSelf(actorID, targetID string) error {
	if !domain.OwnedBy(targetID, actorID) {
		return domainerrors.Forbidden("you can only change your own account")
	}
	return nil
}

// requireOwner fails unless the actor authored the resource.
func requireOwner(ownerID, actorID, what string) error {
	if !domain.OwnedBy(ownerID, actorID) {
		return domainerrors.Forbidden(fmt.Sprintf("you can only modify your own %s", what))
	}
	return nil
}
