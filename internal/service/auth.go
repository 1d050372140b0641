package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/readingclub/readingclub/internal/auth"
	"github.com/readingclub/readingclub/internal/domain"
	domainerrors "github.com/readingclub/readingclub/internal/errors"
	"github.com/readingclub/readingclub/internal/id"
	"github.com/readingclub/readingclub/internal/store"
)

const invalidCredentialsMessage = "invalid username or password"

// AuthService registers members, logs them in and authenticates tokens.
type AuthService struct {
	store        store.Store
	tokenService *auth.TokenService
	logger       *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(store store.Store, tokenService *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:        store,
		tokenService: tokenService,
		logger:       logger,
	}
}

// RegisterRequest contains the data for open registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"username"`
	Email    string `json:"email" validate:"omitempty,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=1024"`
}

// LoginRequest contains user credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by Register and Login.
type AuthResponse struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"token"`
	TokenType string       `json:"tokenType"`
	ExpiresIn int64        `json:"expiresIn"` // seconds
}

// Register creates a member account and logs it in. The first account on a
// fresh server becomes an admin.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	count, err := s.store.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	role := domain.RoleMember
	if count == 0 {
		role = domain.RoleAdmin
	}

	user, err := newUser(ctx, s.store, req.Username, req.Email, req.Password, role)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username, "role", user.Role)

	return s.issue(user)
}

// Login verifies credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Hash anyway so unknown usernames take as long as wrong passwords.
			_, _ = auth.VerifyPassword(dummyHash(), req.Password)
			return nil, domainerrors.InvalidCredentials(invalidCredentialsMessage)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		s.logger.Info("login failed", "username", req.Username)
		return nil, domainerrors.InvalidCredentials(invalidCredentialsMessage)
	}

	if auth.NeedsRehash(user.PasswordHash) {
		s.upgradeHash(ctx, user, req.Password)
	}

	s.logger.Info("user logged in", "user_id", user.ID)

	return s.issue(user)
}

// Authenticate verifies a bearer token and returns the user it belongs to.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokenService.VerifyAccessToken(token)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid or expired token").WithCause(err)
	}

	user, err := s.store.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.Unauthorized("user no longer exists")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// upgradeHash re-hashes a password stored under older argon2 costs. Failure
// only costs another attempt on the next login.
func (s *AuthService) upgradeHash(ctx context.Context, user *domain.User, password string) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		s.logger.Warn("rehash password", "user_id", user.ID, "error", err)
		return
	}
	user.PasswordHash = hash
	user.Touch()
	if err := s.store.UpdateUser(ctx, user); err != nil {
		s.logger.Warn("store rehashed password", "user_id", user.ID, "error", err)
	}
}

func (s *AuthService) issue(user *domain.User) (*AuthResponse, error) {
	tok, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &AuthResponse{
		User:      user,
		Token:     tok.Token,
		TokenType: auth.TokenType,
		ExpiresIn: int64(tok.ExpiresIn.Seconds()),
	}, nil
}

// dummyHash equalises login timing for unknown usernames.
var dummyHash = sync.OnceValue(func() string {
	h, err := auth.HashPassword("readingclub-timing-equaliser")
	if err != nil {
		return ""
	}
	return h
})

// newUser hashes the password and inserts the account.
func newUser(ctx context.Context, s store.Store, username, email, password string, role domain.Role) (*domain.User, error) {
	if err := auth.CheckPasswordPolicy(password); err != nil {
		return nil, domainerrors.Validation(err.Error())
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := id.Generate(id.PrefixUser)
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	user := &domain.User{
		Entity:       domain.Entity{ID: userID},
		Username:     domain.CleanUsername(username),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	user.InitTimestamps()

	if err := s.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists("username already taken")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}
