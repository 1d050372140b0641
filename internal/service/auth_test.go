package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readingclub/readingclub/internal/auth"
	"github.com/readingclub/readingclub/internal/domain"
	domainerrors "github.com/readingclub/readingclub/internal/errors"
)

func TestRegister_FirstUserIsAdmin(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	first, err := env.auth.Register(ctx, RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, first.User.Role)
	assert.Equal(t, "Bearer", first.TokenType)
	assert.NotEmpty(t, first.Token)
	assert.Equal(t, int64(3600), first.ExpiresIn)

	second, err := env.auth.Register(ctx, RegisterRequest{Username: "bob", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMember, second.User.Role)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	env := setupServices(t)
	env.register(t, "alice")

	_, err := env.auth.Register(context.Background(), RegisterRequest{Username: "ALICE", Password: "password123"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
	assert.Equal(t, "username already taken", err.Error())
}

func TestRegister_Validation(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"short username", RegisterRequest{Username: "al", Password: "password123"}},
		{"short password", RegisterRequest{Username: "alice", Password: "12345"}},
		{"bad email", RegisterRequest{Username: "alice", Email: "not-an-email", Password: "password123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.auth.Register(ctx, tt.req)
			assert.ErrorIs(t, err, domainerrors.ErrValidation)
		})
	}
}

func TestLogin(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	user := env.register(t, "alice")

	resp, err := env.auth.Login(ctx, LoginRequest{Username: "Alice", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.User.ID)

	authed, err := env.auth.Authenticate(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	env.register(t, "alice")

	for _, req := range []LoginRequest{
		{Username: "alice", Password: "wrong-password"},
		{Username: "nobody", Password: "password123"},
	} {
		_, err := env.auth.Login(ctx, req)
		require.Error(t, err)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
		assert.Equal(t, "invalid username or password", err.Error())
	}
}

func TestLogin_UpgradesWeakHash(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	user := env.register(t, "alice")

	weak, err := auth.NewPasswordHasher(auth.HashParams{
		Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 8, KeyLength: 16,
	}).Hash("password123")
	require.NoError(t, err)
	user.PasswordHash = weak
	require.NoError(t, env.store.UpdateUser(ctx, user))

	_, err = env.auth.Login(ctx, LoginRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)

	stored, err := env.store.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, weak, stored.PasswordHash)
	assert.False(t, auth.NeedsRehash(stored.PasswordHash))
}

func TestAuthenticate_RejectsGarbage(t *testing.T) {
	env := setupServices(t)

	_, err := env.auth.Authenticate(context.Background(), "v4.local.garbage")
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}
