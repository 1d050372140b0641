package sqlite

import (
	"context"

	"github.com/readingclub/readingclub/internal/domain"
)

// chapterSelect includes the derived comment count.
const chapterSelect = `
	SELECT c.id, c.created_at, c.updated_at, c.week_id, c.chapter_number, c.title,
		(SELECT COUNT(*) FROM comments m WHERE m.chapter_id = c.id)
	FROM chapters c`

func scanChapter(scanner rowScanner) (*domain.Chapter, error) {
	var (
		c                    domain.Chapter
		createdAt, updatedAt string
	)
	err := scanner.Scan(&c.ID, &createdAt, &updatedAt, &c.WeekID, &c.ChapterNumber, &c.Title, &c.CommentCount)
	if err != nil {
		return nil, err
	}
	if c.CreatedAt, c.UpdatedAt, err = scanTimestamps(createdAt, updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateChapter inserts a chapter into a week.
func (s *Store) CreateChapter(ctx context.Context, chapter *domain.Chapter) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chapters (id, created_at, updated_at, week_id, chapter_number, title)
		VALUES (?, ?, ?, ?, ?, ?)`,
		chapter.ID,
		formatTime(chapter.CreatedAt),
		formatTime(chapter.UpdatedAt),
		chapter.WeekID,
		chapter.ChapterNumber,
		chapter.Title,
	)
	return mapWriteError(err)
}

// GetChapter retrieves a chapter by ID.
func (s *Store) GetChapter(ctx context.Context, id string) (*domain.Chapter, error) {
	c, err := scanChapter(s.db.QueryRowContext(ctx, chapterSelect+` WHERE c.id = ?`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

// ListChaptersByWeek returns a week's chapters ordered by chapter number.
func (s *Store) ListChaptersByWeek(ctx context.Context, weekID string) ([]*domain.Chapter, error) {
	rows, err := s.db.QueryContext(ctx, chapterSelect+` WHERE c.week_id = ? ORDER BY c.chapter_number ASC`, weekID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanChapter)
}
