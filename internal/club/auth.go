package club

import (
	"context"
	"strings"
	"time"

	"github.com/readingclub/readingclub/internal/client"
	"github.com/readingclub/readingclub/internal/session"
)

// MinPasswordLength mirrors the server's rule so obvious mistakes are caught
// without a round trip.
const MinPasswordLength = 6

// AuthAPI is the part of the server AuthFlow needs.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (*client.AuthResult, error)
	Register(ctx context.Context, reg client.Registration) (*client.AuthResult, error)
}

// AuthFlow drives the login and registration screens.
type AuthFlow struct {
	api      AuthAPI
	sessions *session.Manager
	now      func() time.Time
}

// NewAuthFlow creates the flow.
func NewAuthFlow(api AuthAPI, sessions *session.Manager) *AuthFlow {
	return &AuthFlow{api: api, sessions: sessions, now: time.Now}
}

// Login signs in. On failure any existing session is left as it was.
func (f *AuthFlow) Login(ctx context.Context, username, password string) (session.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return session.Session{}, refuse(client.KindValidation, "Please enter your username and password")
	}

	res, err := f.api.Login(ctx, username, password)
	if err != nil {
		return session.Session{}, noticeFor(err, "Login failed. Please try again.")
	}
	return f.begin(res)
}

// RegisterForm is the sign-up screen's input.
type RegisterForm struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Register creates an account and signs in as it.
func (f *AuthFlow) Register(ctx context.Context, form RegisterForm) (session.Session, error) {
	form.Username = strings.TrimSpace(form.Username)
	switch {
	case form.Username == "" || form.Password == "":
		return session.Session{}, refuse(client.KindValidation, "Please enter a username and password")
	case form.Password != form.ConfirmPassword:
		return session.Session{}, refuse(client.KindValidation, "Passwords do not match")
	case len(form.Password) < MinPasswordLength:
		return session.Session{}, refuse(client.KindValidation, "Password must be at least 6 characters")
	}

	res, err := f.api.Register(ctx, client.Registration{
		Username: form.Username,
		Email:    strings.TrimSpace(form.Email),
		Password: form.Password,
	})
	if err != nil {
		return session.Session{}, noticeFor(err, "Registration failed. Please try again.")
	}
	return f.begin(res)
}

func (f *AuthFlow) begin(res *client.AuthResult) (session.Session, error) {
	if res.User == nil || res.Token == "" {
		return session.Session{}, refuse(client.KindUnknown, "The server returned an incomplete login response")
	}
	s := session.FromUser(res.User, res.Token, res.ExpiresAt(f.now()))
	if err := f.sessions.Begin(s); err != nil {
		return session.Session{}, &Notice{Kind: client.KindUnknown, Message: "Could not save your session", Err: err}
	}
	return s, nil
}

// Logout ends the session. Persisted keys are removed even when the result
// is an error.
func (f *AuthFlow) Logout() error {
	return f.sessions.End()
}
