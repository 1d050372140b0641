package club

import (
	"context"
	"strings"

	"github.com/readingclub/readingclub/internal/client"
	"github.com/readingclub/readingclub/internal/domain"
	"github.com/readingclub/readingclub/internal/session"
)

// AccountAPI is the part of the server AccountSettings needs.
type AccountAPI interface {
	ChangeUsername(ctx context.Context, userID, username string) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, current, next string) error
}

// AccountSettings is the settings screen.
type AccountSettings struct {
	api      AccountAPI
	sessions *session.Manager
}

// NewAccountSettings creates the screen.
func NewAccountSettings(api AccountAPI, sessions *session.Manager) *AccountSettings {
	return &AccountSettings{api: api, sessions: sessions}
}

// ChangeUsername renames the member and mirrors the new name into the
// session.
func (a *AccountSettings) ChangeUsername(ctx context.Context, username string) error {
	s, ok := a.sessions.Current()
	if !ok {
		return errNotSignedIn
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return refuse(client.KindValidation, "Username cannot be empty")
	}
	if username == s.Username {
		return refuse(client.KindValidation, "Username is the same as current username")
	}

	user, err := a.api.ChangeUsername(ctx, s.UserID, username)
	if err != nil {
		return noticeFor(err, "Failed to update username")
	}
	if err := a.sessions.SetUsername(user.Username); err != nil {
		return &Notice{Kind: client.KindUnknown, Message: "Username changed but the session could not be updated", Err: err}
	}
	return nil
}

// PasswordForm is the password change input.
type PasswordForm struct {
	Current string
	New     string
	Confirm string
}

// ChangePassword replaces the member's password.
func (a *AccountSettings) ChangePassword(ctx context.Context, form PasswordForm) error {
	s, ok := a.sessions.Current()
	if !ok {
		return errNotSignedIn
	}
	switch {
	case form.Current == "":
		return refuse(client.KindValidation, "Please enter your current password")
	case form.New != form.Confirm:
		return refuse(client.KindValidation, "New passwords do not match")
	case len(form.New) < MinPasswordLength:
		return refuse(client.KindValidation, "New password must be at least 6 characters")
	}

	if err := a.api.ChangePassword(ctx, s.UserID, form.Current, form.New); err != nil {
		return noticeFor(err, "Failed to change password")
	}
	return nil
}
