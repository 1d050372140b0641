package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/readingclub/readingclub/internal/domain"
	"github.com/readingclub/readingclub/internal/service"
)

func (s *Server) registerCommentRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listChapterComments",
		Method:      http.MethodGet,
		Path:        BasePath + "/comments/chapter/{chapterId}",
		Summary:     "List chapter comments",
		Description: "Returns the chapter's comments, newest first",
		Tags:        []string{"Comments"},
		Security:    bearer,
	}, s.handleListChapterComments)

	huma.Register(s.api, huma.Operation{
		OperationID: "createComment",
		Method:      http.MethodPost,
		Path:        BasePath + "/comments",
		Summary:     "Post comment",
		Tags:        []string{"Comments"},
		Security:    bearer,
	}, s.handleCreateComment)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateComment",
		Method:      http.MethodPut,
		Path:        BasePath + "/comments/{id}",
		Summary:     "Edit comment",
		Description: "Only the author may edit a comment",
		Tags:        []string{"Comments"},
		Security:    bearer,
	}, s.handleUpdateComment)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteComment",
		Method:        http.MethodDelete,
		Path:          BasePath + "/comments/{id}",
		Summary:       "Delete comment",
		Description:   "Only the author may delete a comment",
		Tags:          []string{"Comments"},
		Security:      bearer,
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteComment)
}

// ChapterCommentsInput addresses a chapter's comments.
type ChapterCommentsInput struct {
	ChapterID string `path:"chapterId" doc:"Chapter ID"`
}

// CommentIDInput addresses a comment.
type CommentIDInput struct {
	ID string `path:"id" doc:"Comment ID"`
}

// CommentOutput wraps a comment for Huma.
type CommentOutput struct {
	Body *domain.Comment
}

// CommentsOutput wraps a comment list for Huma.
type CommentsOutput struct {
	Body []*domain.Comment
}

// CreateCommentInput wraps a new comment.
type CreateCommentInput struct {
	Body struct {
		ChapterID string `json:"chapterId"`
		Content   string `json:"content"`
	}
}

// UpdateCommentInput wraps a comment edit.
type UpdateCommentInput struct {
	ID   string `path:"id" doc:"Comment ID"`
	Body struct {
		Content string `json:"content"`
	}
}

func (s *Server) handleListChapterComments(ctx context.Context, input *ChapterCommentsInput) (*CommentsOutput, error) {
	if _, err := GetUser(ctx); err != nil {
		return nil, err
	}
	comments, err := s.services.Comment.ListByChapter(ctx, input.ChapterID)
	if err != nil {
		return nil, err
	}
	return &CommentsOutput{Body: comments}, nil
}

func (s *Server) handleCreateComment(ctx context.Context, input *CreateCommentInput) (*CommentOutput, error) {
	actorID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.services.Comment.Create(ctx, actorID, service.CreateCommentRequest{
		ChapterID: input.Body.ChapterID,
		Content:   input.Body.Content,
	})
	if err != nil {
		return nil, err
	}
	return &CommentOutput{Body: c}, nil
}

func (s *Server) handleUpdateComment(ctx context.Context, input *UpdateCommentInput) (*CommentOutput, error) {
	actorID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.services.Comment.Update(ctx, actorID, input.ID, service.UpdateCommentRequest{Content: input.Body.Content})
	if err != nil {
		return nil, err
	}
	return &CommentOutput{Body: c}, nil
}

func (s *Server) handleDeleteComment(ctx context.Context, input *CommentIDInput) (*struct{}, error) {
	actorID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.services.Comment.Delete(ctx, actorID, input.ID); err != nil {
		return nil, err
	}
	return nil, nil
}
