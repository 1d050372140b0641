package sqlite

import (
	"context"

	"github.com/readingclub/readingclub/internal/domain"
)

const weekColumns = `id, created_at, updated_at, book_id, week_number, title, start_date, end_date`

func scanWeek(scanner rowScanner) (*domain.Week, error) {
	var (
		w                    domain.Week
		createdAt, updatedAt string
	)
	err := scanner.Scan(&w.ID, &createdAt, &updatedAt, &w.BookID, &w.WeekNumber, &w.Title, &w.StartDate, &w.EndDate)
	if err != nil {
		return nil, err
	}
	if w.CreatedAt, w.UpdatedAt, err = scanTimestamps(createdAt, updatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}

// CreateWeek inserts a week.
// Returns store.ErrAlreadyExists when the book already has that week number
// and store.ErrNotFound when the book does not exist.
func (s *Store) CreateWeek(ctx context.Context, week *domain.Week) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO weeks (id, created_at, updated_at, book_id, week_number, title, start_date, end_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		week.ID,
		formatTime(week.CreatedAt),
		formatTime(week.UpdatedAt),
		week.BookID,
		week.WeekNumber,
		week.Title,
		week.StartDate,
		week.EndDate,
	)
	return mapWriteError(err)
}

// GetWeek retrieves a week by ID.
func (s *Store) GetWeek(ctx context.Context, id string) (*domain.Week, error) {
	w, err := scanWeek(s.db.QueryRowContext(ctx, `SELECT `+weekColumns+` FROM weeks WHERE id = ?`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return w, nil
}

// ListWeeksByBook returns a book's weeks ordered by week number.
func (s *Store) ListWeeksByBook(ctx context.Context, bookID string) ([]*domain.Week, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+weekColumns+` FROM weeks WHERE book_id = ? ORDER BY week_number ASC`, bookID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanWeek)
}
