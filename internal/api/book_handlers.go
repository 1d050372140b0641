package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/readingclub/readingclub/internal/domain"
	"github.com/readingclub/readingclub/internal/service"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCurrentBook",
		Method:      http.MethodGet,
		Path:        BasePath + "/books/current",
		Summary:     "Get current book",
		Description: "Returns the active book, or 404 when the club is between books",
		Tags:        []string{"Books"},
		Security:    bearer,
	}, s.handleGetCurrentBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        BasePath + "/books",
		Summary:     "List books",
		Tags:        []string{"Books"},
		Security:    bearer,
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        BasePath + "/books/{id}",
		Summary:     "Get book",
		Tags:        []string{"Books"},
		Security:    bearer,
	}, s.handleGetBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "createBook",
		Method:      http.MethodPost,
		Path:        BasePath + "/books",
		Summary:     "Create book",
		Description: "Adds an inactive book. Admin only.",
		Tags:        []string{"Books"},
		Security:    bearer,
	}, s.handleCreateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "activateBook",
		Method:      http.MethodPut,
		Path:        BasePath + "/books/{id}/activate",
		Summary:     "Activate book",
		Description: "Makes the book current and deactivates every other book. Admin only.",
		Tags:        []string{"Books"},
		Security:    bearer,
	}, s.handleActivateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "listBookWeeks",
		Method:      http.MethodGet,
		Path:        BasePath + "/books/{id}/weeks",
		Summary:     "List book weeks",
		Description: "Returns the book's weeks ordered by week number",
		Tags:        []string{"Schedule"},
		Security:    bearer,
	}, s.handleListBookWeeks)
}

// BookIDInput addresses a book.
type BookIDInput struct {
	ID string `path:"id" doc:"Book ID"`
}

// BookOutput wraps a book for Huma.
type BookOutput struct {
	Body *domain.Book
}

// BooksOutput wraps a book list for Huma.
type BooksOutput struct {
	Body []*domain.Book
}

// CreateBookInput wraps a new book.
type CreateBookInput struct {
	Body struct {
		Title         string `json:"title"`
		Author        string `json:"author"`
		TotalChapters int    `json:"totalChapters"`
	}
}

func (s *Server) handleGetCurrentBook(ctx context.Context, _ *struct{}) (*BookOutput, error) {
	if _, err := GetUser(ctx); err != nil {
		return nil, err
	}
	b, err := s.services.Book.Current(ctx)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: b}, nil
}

func (s *Server) handleListBooks(ctx context.Context, _ *struct{}) (*BooksOutput, error) {
	if _, err := GetUser(ctx); err != nil {
		return nil, err
	}
	books, err := s.services.Book.List(ctx)
	if err != nil {
		return nil, err
	}
	return &BooksOutput{Body: books}, nil
}

func (s *Server) handleGetBook(ctx context.Context, input *BookIDInput) (*BookOutput, error) {
	if _, err := GetUser(ctx); err != nil {
		return nil, err
	}
	b, err := s.services.Book.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: b}, nil
}

func (s *Server) handleCreateBook(ctx context.Context, input *CreateBookInput) (*BookOutput, error) {
	actorID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}
	b, err := s.services.Book.Create(ctx, actorID, service.CreateBookRequest{
		Title:         input.Body.Title,
		Author:        input.Body.Author,
		TotalChapters: input.Body.TotalChapters,
	})
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: b}, nil
}

func (s *Server) handleActivateBook(ctx context.Context, input *BookIDInput) (*BookOutput, error) {
	actorID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}
	b, err := s.services.Book.Activate(ctx, actorID, input.ID)
	if err != nil {
		return nil, err
	}
	return &BookOutput{Body: b}, nil
}

func (s *Server) handleListBookWeeks(ctx context.Context, input *BookIDInput) (*WeeksOutput, error) {
	return s.listWeeks(ctx, input.ID)
}
