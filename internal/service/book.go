package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/readingclub/readingclub/internal/domain"
	"github.com/readingclub/readingclub/internal/id"
	"github.com/readingclub/readingclub/internal/store"
)

// BookService manages the club's books and which one is being read.
type BookService struct {
	store  store.Store
	logger *slog.Logger
}

// NewBookService creates a new book service.
func NewBookService(store store.Store, logger *slog.Logger) *BookService {
	return &BookService{store: store, logger: logger}
}

// CreateBookRequest adds a book.
type CreateBookRequest struct {
	Title         string `json:"title" validate:"notblank,max=300"`
	Author        string `json:"author" validate:"notblank,max=200"`
	TotalChapters int    `json:"totalChapters" validate:"gte=1,lte=1000"`
}

// Current returns the active book.
func (s *BookService) Current(ctx context.Context) (*domain.Book, error) {
	b, err := s.store.GetActiveBook(ctx)
	return b, translate(err, "get active book", "no active book")
}

// Get returns one book.
func (s *BookService) Get(ctx context.Context, bookID string) (*domain.Book, error) {
	b, err := s.store.GetBook(ctx, bookID)
	return b, translate(err, "get book", "book not found")
}

// List returns every book in creation order.
func (s *BookService) List(ctx context.Context) ([]*domain.Book, error) {
	books, err := s.store.ListBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// Create adds an inactive book. Admin only.
func (s *BookService) Create(ctx context.Context, actorID string, req CreateBookRequest) (*domain.Book, error) {
	if _, err := requireAdmin(ctx, s.store, actorID); err != nil {
		return nil, err
	}
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	bookID, err := id.Generate(id.PrefixBook)
	if err != nil {
		return nil, fmt.Errorf("generate book ID: %w", err)
	}
	b := &domain.Book{
		Entity:        domain.Entity{ID: bookID},
		Title:         req.Title,
		Author:        req.Author,
		TotalChapters: req.TotalChapters,
	}
	b.InitTimestamps()

	if err := s.store.CreateBook(ctx, b); err != nil {
		return nil, translate(err, "create book", "book already exists")
	}
	s.logger.Info("book created", "book_id", b.ID, "title", b.Title)
	return b, nil
}

// Activate makes bookID the club's current book. Admin only.
func (s *BookService) Activate(ctx context.Context, actorID, bookID string) (*domain.Book, error) {
	if _, err := requireAdmin(ctx, s.store, actorID); err != nil {
		return nil, err
	}
	b, err := s.store.ActivateBook(ctx, bookID)
	if err != nil {
		return nil, translate(err, "activate book", "book not found")
	}
	s.logger.Info("book activated", "book_id", b.ID)
	return b, nil
}
