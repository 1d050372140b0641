package sqlite

import (
	"context"
	"errors"

	"github.com/readingclub/readingclub/internal/domain"
	"github.com/readingclub/readingclub/internal/store"
)

// commentSelect joins the author so the current username is returned.
const commentSelect = `
	SELECT m.id, m.created_at, m.updated_at, m.chapter_id, m.content, u.id, u.username
	FROM comments m JOIN users u ON u.id = m.user_id`

func scanComment(scanner rowScanner) (*domain.Comment, error) {
	var (
		c                    domain.Comment
		createdAt, updatedAt string
	)
	err := scanner.Scan(&c.ID, &createdAt, &updatedAt, &c.ChapterID, &c.Content, &c.User.ID, &c.User.Username)
	if err != nil {
		return nil, err
	}
	if c.CreatedAt, c.UpdatedAt, err = scanTimestamps(createdAt, updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// CreateComment inserts a comment and indexes it for search.
func (s *Store) CreateComment(ctx context.Context, comment *domain.Comment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO comments (id, created_at, updated_at, chapter_id, user_id, content)
		VALUES (?, ?, ?, ?, ?, ?)`,
		comment.ID,
		formatTime(comment.CreatedAt),
		formatTime(comment.UpdatedAt),
		comment.ChapterID,
		comment.User.ID,
		comment.Content,
	)
	if err != nil {
		return mapWriteError(err)
	}
	s.logIndexError("index comment", comment.ID, s.indexer().IndexComment(ctx, comment))
	return nil
}

// GetComment retrieves a comment by ID.
func (s *Store) GetComment(ctx context.Context, id string) (*domain.Comment, error) {
	c, err := scanComment(s.db.QueryRowContext(ctx, commentSelect+` WHERE m.id = ?`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

// UpdateComment replaces a comment's content.
func (s *Store) UpdateComment(ctx context.Context, comment *domain.Comment) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE comments SET content = ?, updated_at = ? WHERE id = ?`,
		comment.Content, formatTime(comment.UpdatedAt), comment.ID)
	if err := expectOneRow(res, err); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.ErrNotFound.For("comment")
		}
		return err
	}
	s.logIndexError("index comment", comment.ID, s.indexer().IndexComment(ctx, comment))
	return nil
}

// DeleteComment removes a comment.
func (s *Store) DeleteComment(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err := expectOneRow(res, err); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.ErrNotFound.For("comment")
		}
		return err
	}
	s.logIndexError("delete comment", id, s.indexer().DeleteDocument(ctx, id))
	return nil
}

// ListCommentsByChapter returns a chapter's comments, newest first.
func (s *Store) ListCommentsByChapter(ctx context.Context, chapterID string) ([]*domain.Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		commentSelect+` WHERE m.chapter_id = ? ORDER BY m.created_at DESC, m.id DESC`, chapterID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanComment)
}
