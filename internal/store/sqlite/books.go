package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/readingclub/readingclub/internal/domain"
)

const bookColumns = `id, created_at, updated_at, title, author, total_chapters, is_active`

func scanBook(scanner rowScanner) (*domain.Book, error) {
	var (
		b                    domain.Book
		createdAt, updatedAt string
		isActive             int
	)
	err := scanner.Scan(&b.ID, &createdAt, &updatedAt, &b.Title, &b.Author, &b.TotalChapters, &isActive)
	if err != nil {
		return nil, err
	}
	if b.CreatedAt, b.UpdatedAt, err = scanTimestamps(createdAt, updatedAt); err != nil {
		return nil, err
	}
	b.IsActive = isActive == 1
	return &b, nil
}

// CreateBook inserts a book. A book created active must go through
// ActivateBook instead, so IsActive is always stored false here.
func (s *Store) CreateBook(ctx context.Context, book *domain.Book) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO books (id, created_at, updated_at, title, author, total_chapters, is_active)
		VALUES (?, ?, ?, ?, ?, ?, 0)`,
		book.ID,
		formatTime(book.CreatedAt),
		formatTime(book.UpdatedAt),
		book.Title,
		book.Author,
		book.TotalChapters,
	)
	if err != nil {
		return mapWriteError(err)
	}
	book.IsActive = false
	return nil
}

// GetBook retrieves a book by ID.
func (s *Store) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	b, err := scanBook(s.db.QueryRowContext(ctx, `SELECT `+bookColumns+` FROM books WHERE id = ?`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return b, nil
}

// GetActiveBook returns the book currently being read.
func (s *Store) GetActiveBook(ctx context.Context) (*domain.Book, error) {
	b, err := scanBook(s.db.QueryRowContext(ctx, `SELECT `+bookColumns+` FROM books WHERE is_active = 1`))
	if err != nil {
		return nil, notFound(err)
	}
	return b, nil
}

// ListBooks returns every book, oldest first.
func (s *Store) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+bookColumns+` FROM books ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanBook)
}

// ActivateBook makes id the single active book, deactivating any other in
// the same transaction.
func (s *Store) ActivateBook(ctx context.Context, id string) (*domain.Book, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT 1 FROM books WHERE id = ?`, id).Scan(&exists); err != nil {
		return nil, notFound(err)
	}

	now := formatTime(time.Now())
	if _, err := tx.ExecContext(ctx,
		`UPDATE books SET is_active = 0, updated_at = ? WHERE is_active = 1 AND id <> ?`, now, id); err != nil {
		return nil, fmt.Errorf("deactivate books: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE books SET is_active = 1, updated_at = ? WHERE id = ? AND is_active = 0`, now, id); err != nil {
		return nil, fmt.Errorf("activate book: %w", err)
	}

	b, err := scanBook(tx.QueryRowContext(ctx, `SELECT `+bookColumns+` FROM books WHERE id = ?`, id))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return b, nil
}
