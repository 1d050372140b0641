package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/readingclub/readingclub/internal/service"
)

func (s *Server) registerAuthRoutes() {
	var limit huma.Middlewares
	if s.loginLimiter != nil {
		limit = huma.Middlewares{rateLimitByIP(s.api, s.loginLimiter, s.logger)}
	}

	huma.Register(s.api, huma.Operation{
		OperationID: "register",
		Method:      http.MethodPost,
		Path:        BasePath + "/users/register",
		Summary:     "Register",
		Description: "Creates a member account and returns an access token. The first account becomes admin.",
		Tags:        []string{"Auth"},
		Middlewares: limit,
	}, s.handleRegister)

	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        BasePath + "/users/login",
		Summary:     "Log in",
		Description: "Exchanges a username and password for an access token",
		Tags:        []string{"Auth"},
		Middlewares: limit,
	}, s.handleLogin)
}

// RegisterInput wraps the registration request for Huma.
type RegisterInput struct {
	Body struct {
		Username string `json:"username" doc:"3 to 50 characters, unique case-insensitively"`
		Email    string `json:"email,omitempty" doc:"Optional contact address"`
		Password string `json:"password" doc:"At least 6 characters"`
	}
}

// LoginInput wraps the login request for Huma.
type LoginInput struct {
	Body struct {
		Username string `json:"username" doc:"Username"`
		Password string `json:"password" doc:"Password"`
	}
}

// AuthOutput wraps the auth response for Huma.
type AuthOutput struct {
	Body *service.AuthResponse
}

func (s *Server) handleRegister(ctx context.Context, input *RegisterInput) (*AuthOutput, error) {
	resp, err := s.services.Auth.Register(ctx, service.RegisterRequest{
		Username: input.Body.Username,
		Email:    input.Body.Email,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}
	return &AuthOutput{Body: resp}, nil
}

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*AuthOutput, error) {
	resp, err := s.services.Auth.Login(ctx, service.LoginRequest{
		Username: input.Body.Username,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}
	return &AuthOutput{Body: resp}, nil
}
