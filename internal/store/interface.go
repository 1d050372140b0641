// Package store defines the persistence interface for the reading club API.
package store

import (
	"context"

	"github.com/readingclub/readingclub/internal/domain"
)

// Store defines every persistence operation the services need.
// Lookups return ErrNotFound for missing rows; inserts that violate a
// uniqueness rule return ErrAlreadyExists.
type Store interface {
	// Lifecycle
	Close() error
	Ping(ctx context.Context) error
	SetSearchIndexer(indexer SearchIndexer)

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	CountUsers(ctx context.Context) (int, error)
	UpdateUser(ctx context.Context, user *domain.User) error

	// Books
	CreateBook(ctx context.Context, book *domain.Book) error
	GetBook(ctx context.Context, id string) (*domain.Book, error)
	GetActiveBook(ctx context.Context) (*domain.Book, error)
	ListBooks(ctx context.Context) ([]*domain.Book, error)
	ActivateBook(ctx context.Context, id string) (*domain.Book, error)

	// Weeks
	CreateWeek(ctx context.Context, week *domain.Week) error
	GetWeek(ctx context.Context, id string) (*domain.Week, error)
	ListWeeksByBook(ctx context.Context, bookID string) ([]*domain.Week, error)

	// Chapters
	CreateChapter(ctx context.Context, chapter *domain.Chapter) error
	GetChapter(ctx context.Context, id string) (*domain.Chapter, error)
	ListChaptersByWeek(ctx context.Context, weekID string) ([]*domain.Chapter, error)

	// Comments
	CreateComment(ctx context.Context, comment *domain.Comment) error
	GetComment(ctx context.Context, id string) (*domain.Comment, error)
	UpdateComment(ctx context.Context, comment *domain.Comment) error
	DeleteComment(ctx context.Context, id string) error
	ListCommentsByChapter(ctx context.Context, chapterID string) ([]*domain.Comment, error)

	// Questions
	CreateQuestion(ctx context.Context, question *domain.Question) error
	GetQuestion(ctx context.Context, id string) (*domain.Question, error)
	ListQuestionsByWeek(ctx context.Context, weekID string) ([]*domain.Question, error)

	// Answers
	CreateAnswer(ctx context.Context, answer *domain.Answer) error
	GetAnswer(ctx context.Context, id string) (*domain.Answer, error)
	GetAnswerByQuestionAndUser(ctx context.Context, questionID, userID string) (*domain.Answer, error)
	UpdateAnswer(ctx context.Context, answer *domain.Answer) error
	DeleteAnswer(ctx context.Context, id string) error
	ListAnswersByQuestion(ctx context.Context, questionID string) ([]*domain.Answer, error)
}

// SearchIndexer receives discussion writes so the search index can follow
// the database. Index failures are logged by the store, never returned.
type SearchIndexer interface {
	IndexComment(ctx context.Context, comment *domain.Comment) error
	IndexAnswer(ctx context.Context, answer *domain.Answer) error
	IndexQuestion(ctx context.Context, question *domain.Question) error
	DeleteDocument(ctx context.Context, id string) error
}

// NoopSearchIndexer is a no-op implementation for tests and for running
// without a search index.
type NoopSearchIndexer struct{}

func (NoopSearchIndexer) IndexComment(context.Context, *domain.Comment) error   { return nil }
func (NoopSearchIndexer) IndexAnswer(context.Context, *domain.Answer) error     { return nil }
func (NoopSearchIndexer) IndexQuestion(context.Context, *domain.Question) error { return nil }
func (NoopSearchIndexer) DeleteDocument(context.Context, string) error          { return nil }

// NewNoopSearchIndexer creates a new no-op search indexer.
func NewNoopSearchIndexer() SearchIndexer {
	return NoopSearchIndexer{}
}
