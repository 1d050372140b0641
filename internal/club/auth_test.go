package club

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readingclub/readingclub/internal/client"
	"github.com/readingclub/readingclub/internal/domain"
)

func authResult(username string) *client.AuthResult {
	return &client.AuthResult{
		User:      &domain.User{Entity: domain.Entity{ID: "user-" + username}, Username: username, CurrentChapter: 2, Role: domain.RoleMember},
		Token:     "tok-" + username,
		TokenType: "Bearer",
		ExpiresIn: 3600,
	}
}

func TestAuthFlow_Login(t *testing.T) {
	m := signedOut(t)
	api := &fakeAPI{t: t, login: func(username, password string) (*client.AuthResult, error) {
		assert.Equal(t, "bob", username)
		return authResult("bob"), nil
	}}

	s, err := NewAuthFlow(api, m).Login(context.Background(), "  bob ", "password123")
	require.NoError(t, err)
	assert.Equal(t, "user-bob", s.UserID)

	current, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, 2, current.Progress)
	assert.Equal(t, "tok-bob", m.Token())
}

func TestAuthFlow_FailedLoginKeepsPriorSession(t *testing.T) {
	m := signedIn(t, 5)
	api := &fakeAPI{t: t, login: func(string, string) (*client.AuthResult, error) {
		return nil, apiErr(401, "INVALID_CREDENTIALS", "invalid username or password")
	}}

	_, err := NewAuthFlow(api, m).Login(context.Background(), "alice", "nope")
	requireNotice(t, err, client.KindAuth, "invalid username or password")

	s, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, "alice", s.Username)
}

func TestAuthFlow_LoginFallbackMessages(t *testing.T) {
	api := &fakeAPI{t: t, login: func(string, string) (*client.AuthResult, error) {
		return nil, fmt.Errorf("%w: connection refused", client.ErrTransport)
	}}
	flow := NewAuthFlow(api, signedOut(t))

	_, err := flow.Login(context.Background(), "alice", "pw")
	requireNotice(t, err, client.KindTransport, msgUnreachable)

	_, err = flow.Login(context.Background(), " ", "pw")
	requireNotice(t, err, client.KindValidation, "Please enter your username and password")
}

func TestAuthFlow_RegisterChecksLocally(t *testing.T) {
	flow := NewAuthFlow(&fakeAPI{t: t}, signedOut(t))

	_, err := flow.Register(context.Background(), RegisterForm{Username: "carol", Password: "secret1", ConfirmPassword: "secret2"})
	requireNotice(t, err, client.KindValidation, "Passwords do not match")

	_, err = flow.Register(context.Background(), RegisterForm{Username: "carol", Password: "short", ConfirmPassword: "short"})
	requireNotice(t, err, client.KindValidation, "Password must be at least 6 characters")
}

func TestAuthFlow_RegisterTakenUsername(t *testing.T) {
	m := signedOut(t)
	api := &fakeAPI{t: t, register: func(client.Registration) (*client.AuthResult, error) {
		return nil, apiErr(409, "ALREADY_EXISTS", "username already taken")
	}}

	_, err := NewAuthFlow(api, m).Register(context.Background(), RegisterForm{Username: "alice", Password: "secret1", ConfirmPassword: "secret1"})
	requireNotice(t, err, client.KindConflict, "username already taken")
	_, ok := m.Current()
	assert.False(t, ok)
}

func TestAuthFlow_Register(t *testing.T) {
	m := signedOut(t)
	api := &fakeAPI{t: t, register: func(reg client.Registration) (*client.AuthResult, error) {
		assert.Equal(t, client.Registration{Username: "carol", Email: "carol@example.com", Password: "secret1"}, reg)
		return authResult("carol"), nil
	}}

	_, err := NewAuthFlow(api, m).Register(context.Background(), RegisterForm{
		Username: "carol", Email: " carol@example.com ", Password: "secret1", ConfirmPassword: "secret1",
	})
	require.NoError(t, err)
	s, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, "carol", s.Username)
}
