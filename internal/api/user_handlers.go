package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/readingclub/readingclub/internal/domain"
	"github.com/readingclub/readingclub/internal/service"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listUsers",
		Method:      http.MethodGet,
		Path:        BasePath + "/users",
		Summary:     "List members",
		Description: "Returns every member with their reading progress",
		Tags:        []string{"Users"},
		Security:    bearer,
	}, s.handleListUsers)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUser",
		Method:      http.MethodGet,
		Path:        BasePath + "/users/{id}",
		Summary:     "Get member",
		Tags:        []string{"Users"},
		Security:    bearer,
	}, s.handleGetUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "getUserByUsername",
		Method:      http.MethodGet,
		Path:        BasePath + "/users/username/{username}",
		Summary:     "Get member by username",
		Tags:        []string{"Users"},
		Security:    bearer,
	}, s.handleGetUserByUsername)

	huma.Register(s.api, huma.Operation{
		OperationID: "createUser",
		Method:      http.MethodPost,
		Path:        BasePath + "/users",
		Summary:     "Create member",
		Description: "Creates a member account. Admin only.",
		Tags:        []string{"Users"},
		Security:    bearer,
	}, s.handleCreateUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateUser",
		Method:      http.MethodPut,
		Path:        BasePath + "/users/{id}",
		Summary:     "Update own profile",
		Tags:        []string{"Users"},
		Security:    bearer,
	}, s.handleUpdateUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "setProgressPath",
		Method:      http.MethodPut,
		Path:        BasePath + "/users/{id}/progress/{chapter}",
		Summary:     "Set reading progress",
		Description: "Records the highest chapter finished. The value is absolute.",
		Tags:        []string{"Users"},
		Security:    bearer,
	}, s.handleSetProgressPath)

	huma.Register(s.api, huma.Operation{
		OperationID: "setProgress",
		Method:      http.MethodPut,
		Path:        BasePath + "/users/{id}/progress",
		Summary:     "Set reading progress",
		Description: "Body form of setProgressPath",
		Tags:        []string{"Users"},
		Security:    bearer,
	}, s.handleSetProgress)

	huma.Register(s.api, huma.Operation{
		OperationID: "changeUsername",
		Method:      http.MethodPut,
		Path:        BasePath + "/users/{id}/username",
		Summary:     "Change username",
		Tags:        []string{"Users"},
		Security:    bearer,
	}, s.handleChangeUsername)

	huma.Register(s.api, huma.Operation{
		OperationID:   "changePassword",
		Method:        http.MethodPut,
		Path:          BasePath + "/users/{id}/password",
		Summary:       "Change password",
		Tags:          []string{"Users"},
		Security:      bearer,
		DefaultStatus: http.StatusNoContent,
	}, s.handleChangePassword)
}

// === DTOs ===

// UserIDInput addresses a member by ID.
type UserIDInput struct {
	ID string `path:"id" doc:"User ID"`
}

// UsernameInput addresses a member by username.
type UsernameInput struct {
	Username string `path:"username" doc:"Username, matched case-insensitively"`
}

// UserOutput wraps a member for Huma.
type UserOutput struct {
	Body *domain.User
}

// UsersOutput wraps the member list for Huma.
type UsersOutput struct {
	Body []*domain.User
}

// CreateUserInput wraps an admin's create-member request.
type CreateUserInput struct {
	Body struct {
		Username string `json:"username"`
		Email    string `json:"email,omitempty"`
		Password string `json:"password"`
	}
}

// UpdateUserInput wraps a profile update.
type UpdateUserInput struct {
	ID   string `path:"id" doc:"User ID"`
	Body struct {
		Email string `json:"email"`
	}
}

// SetProgressPathInput carries the chapter in the path.
type SetProgressPathInput struct {
	ID      string `path:"id" doc:"User ID"`
	Chapter int    `path:"chapter" doc:"Highest chapter finished"`
}

// SetProgressInput carries the chapter in the body.
type SetProgressInput struct {
	ID   string `path:"id" doc:"User ID"`
	Body struct {
		CurrentChapter int `json:"currentChapter" doc:"Highest chapter finished"`
	}
}

// ChangeUsernameInput wraps a rename.
type ChangeUsernameInput struct {
	ID   string `path:"id" doc:"User ID"`
	Body struct {
		Username string `json:"username"`
	}
}

// ChangePasswordInput wraps a password change.
type ChangePasswordInput struct {
	ID   string `path:"id" doc:"User ID"`
	Body struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
}

// === Handlers ===

func (s *Server) handleListUsers(ctx context.Context, _ *struct{}) (*UsersOutput, error) {
	if _, err := GetUser(ctx); err != nil {
		return nil, err
	}
	users, err := s.services.User.List(ctx)
	if err != nil {
		return nil, err
	}
	return &UsersOutput{Body: users}, nil
}

func (s *Server) handleGetUser(ctx context.Context, input *UserIDInput) (*UserOutput, error) {
	if _, err := GetUser(ctx); err != nil {
		return nil, err
	}
	u, err := s.services.User.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: u}, nil
}

func (s *Server) handleGetUserByUsername(ctx context.Context, input *UsernameInput) (*UserOutput, error) {
	if _, err := GetUser(ctx); err != nil {
		return nil, err
	}
	u, err := s.services.User.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: u}, nil
}

func (s *Server) handleCreateUser(ctx context.Context, input *CreateUserInput) (*UserOutput, error) {
	actorID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.services.User.Create(ctx, actorID, service.CreateUserRequest{
		Username: input.Body.Username,
		Email:    input.Body.Email,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: u}, nil
}

func (s *Server) handleUpdateUser(ctx context.Context, input *UpdateUserInput) (*UserOutput, error) {
	actorID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.services.User.Update(ctx, actorID, input.ID, service.UpdateUserRequest{Email: input.Body.Email})
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: u}, nil
}

func (s *Server) handleSetProgressPath(ctx context.Context, input *SetProgressPathInput) (*UserOutput, error) {
	return s.setProgress(ctx, input.ID, input.Chapter)
}

func (s *Server) handleSetProgress(ctx context.Context, input *SetProgressInput) (*UserOutput, error) {
	return s.setProgress(ctx, input.ID, input.Body.CurrentChapter)
}

func (s *Server) setProgress(ctx context.Context, userID string, chapter int) (*UserOutput, error) {
	actorID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.services.User.SetProgress(ctx, actorID, userID, chapter)
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: u}, nil
}

func (s *Server) handleChangeUsername(ctx context.Context, input *ChangeUsernameInput) (*UserOutput, error) {
	actorID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.services.User.ChangeUsername(ctx, actorID, input.ID, service.ChangeUsernameRequest{Username: input.Body.Username})
	if err != nil {
		return nil, err
	}
	return &UserOutput{Body: u}, nil
}

func (s *Server) handleChangePassword(ctx context.Context, input *ChangePasswordInput) (*struct{}, error) {
	actorID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}
	err = s.services.User.ChangePassword(ctx, actorID, input.ID, service.ChangePasswordRequest{
		CurrentPassword: input.Body.CurrentPassword,
		NewPassword:     input.Body.NewPassword,
	})
	if err != nil {
		return nil, err
	}
	return nil, nil
}
