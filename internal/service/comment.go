package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/readingclub/readingclub/internal/domain"
	"github.com/readingclub/readingclub/internal/id"
	"github.com/readingclub/readingclub/internal/store"
)

// CommentService manages chapter comments. Only the author may edit or
// delete a comment.
type CommentService struct {
	store  store.Store
	logger *slog.Logger
}

// NewCommentService creates a new comment service.
func NewCommentService(store store.Store, logger *slog.Logger) *CommentService {
	return &CommentService{store: store, logger: logger}
}

// CreateCommentRequest posts a comment on a chapter.
type CreateCommentRequest struct {
	ChapterID string `json:"chapterId" validate:"notblank"`
	Content   string `json:"content" validate:"notblank,max=10000"`
}

// UpdateCommentRequest replaces a comment's text.
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"notblank,max=10000"`
}

// ListByChapter returns a chapter's comments, newest first.
func (s *CommentService) ListByChapter(ctx context.Context, chapterID string) ([]*domain.Comment, error) {
	if _, err := s.store.GetChapter(ctx, chapterID); err != nil {
		return nil, translate(err, "get chapter", "chapter not found")
	}
	comments, err := s.store.ListCommentsByChapter(ctx, chapterID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// Create posts a comment as the actor.
func (s *CommentService) Create(ctx context.Context, actorID string, req CreateCommentRequest) (*domain.Comment, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}
	author, err := s.store.GetUser(ctx, actorID)
	if err != nil {
		return nil, translate(err, "get author", "user not found")
	}
	if _, err := s.store.GetChapter(ctx, req.ChapterID); err != nil {
		return nil, translate(err, "get chapter", "chapter not found")
	}

	commentID, err := id.Generate(id.PrefixComment)
	if err != nil {
		return nil, fmt.Errorf("generate comment ID: %w", err)
	}
	c := &domain.Comment{
		Entity:    domain.Entity{ID: commentID},
		ChapterID: req.ChapterID,
		User:      author.Ref(),
		Content:   req.Content,
	}
	c.InitTimestamps()

	if err := s.store.CreateComment(ctx, c); err != nil {
		return nil, translate(err, "create comment", "chapter not found")
	}
	s.logger.Debug("comment created", "comment_id", c.ID, "chapter_id", c.ChapterID, "user_id", actorID)
	return c, nil
}

// Update replaces the text of the actor's own comment.
func (s *CommentService) Update(ctx context.Context, actorID, commentID string, req UpdateCommentRequest) (*domain.Comment, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}
	c, err := s.owned(ctx, actorID, commentID)
	if err != nil {
		return nil, err
	}

	c.Content = req.Content
	c.Touch()
	if err := s.store.UpdateComment(ctx, c); err != nil {
		return nil, translate(err, "update comment", "comment not found")
	}
	return c, nil
}

// Delete removes the actor's own comment.
func (s *CommentService) Delete(ctx context.Context, actorID, commentID string) error {
	if _, err := s.owned(ctx, actorID, commentID); err != nil {
		return err
	}
	if err := s.store.DeleteComment(ctx, commentID); err != nil {
		return translate(err, "delete comment", "comment not found")
	}
	s.logger.Debug("comment deleted", "comment_id", commentID, "user_id", actorID)
	return nil
}

func (s *CommentService) owned(ctx context.Context, actorID, commentID string) (*domain.Comment, error) {
	c, err := s.store.GetComment(ctx, commentID)
	if err != nil {
		return nil, translate(err, "get comment", "comment not found")
	}
	if err := requireOwner(c.User.ID, actorID, "comments"); err != nil {
		return nil, err
	}
	return c, nil
}
