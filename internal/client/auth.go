package client

import (
	"context"
	"time"

	"github.com/readingclub/readingclub/internal/domain"
)

// AuthResult is returned by Login and Register.
type AuthResult struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"token"`
	TokenType string       `json:"tokenType"`
	ExpiresIn int64        `json:"expiresIn"`
}

// ExpiresAt converts ExpiresIn to an absolute time relative to now.
func (r *AuthResult) ExpiresAt(now time.Time) time.Time {
	return now.Add(time.Duration(r.ExpiresIn) * time.Second)
}

// Registration is the sign-up form.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	var out AuthResult
	body := map[string]string{"username": username, "password": password}
	if err := c.post(ctx, "/users/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account and returns a token for it.
func (c *Client) Register(ctx context.Context, reg Registration) (*AuthResult, error) {
	var out AuthResult
	if err := c.post(ctx, "/users/register", reg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
