package club

import (
	"context"
	"slices"
	"strings"

	"github.com/readingclub/readingclub/internal/client"
	"github.com/readingclub/readingclub/internal/domain"
	"github.com/readingclub/readingclub/internal/session"
)

// CommentAPI is the part of the server CommentThread needs.
type CommentAPI interface {
	Comments(ctx context.Context, chapterID string) ([]domain.Comment, error)
	PostComment(ctx context.Context, chapterID, content string) (*domain.Comment, error)
	EditComment(ctx context.Context, commentID, content string) (*domain.Comment, error)
	DeleteComment(ctx context.Context, commentID string) error
}

// Confirmer asks the member to confirm a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// CommentThread is one chapter's discussion.
type CommentThread struct {
	api       CommentAPI
	sessions  *session.Manager
	confirm   Confirmer
	chapterID string
	comments  Loader[[]domain.Comment]
}

// NewCommentThread creates the thread for chapterID.
func NewCommentThread(api CommentAPI, sessions *session.Manager, confirm Confirmer, chapterID string) *CommentThread {
	return &CommentThread{api: api, sessions: sessions, confirm: confirm, chapterID: chapterID}
}

// View loads the comments the first time it is called.
func (t *CommentThread) View(ctx context.Context) error {
	if t.comments.Loaded() {
		return nil
	}
	return t.Refresh(ctx)
}

// Refresh reloads the comments.
func (t *CommentThread) Refresh(ctx context.Context) error {
	return t.comments.Load(ctx, "Failed to load comments", func(ctx context.Context) ([]domain.Comment, error) {
		return t.api.Comments(ctx, t.chapterID)
	})
}

// State returns the thread's load state.
func (t *CommentThread) State() LoadState[[]domain.Comment] {
	return t.comments.Snapshot()
}

// CanModify reports whether the signed-in member wrote c. The server
// enforces the same rule.
func (t *CommentThread) CanModify(c domain.Comment) bool {
	s, ok := t.sessions.Current()
	return ok && domain.OwnedBy(c.User.ID, s.UserID)
}

// Post adds a comment and puts it at the top of the thread.
func (t *CommentThread) Post(ctx context.Context, content string) (*domain.Comment, error) {
	if _, ok := t.sessions.Current(); !ok {
		return nil, errNotSignedIn
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, refuse(client.KindValidation, "Comment cannot be empty")
	}

	created, err := t.api.PostComment(ctx, t.chapterID, content)
	if err != nil {
		return nil, noticeFor(err, "Failed to post comment")
	}
	t.comments.Update(func(list []domain.Comment) []domain.Comment {
		return append([]domain.Comment{*created}, list...)
	})
	return created, nil
}

// Edit replaces the content of one of the member's comments.
func (t *CommentThread) Edit(ctx context.Context, commentID, content string) (*domain.Comment, error) {
	if err := t.checkOwner(commentID, "You can only edit your own comments"); err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, refuse(client.KindValidation, "Comment cannot be empty")
	}

	updated, err := t.api.EditComment(ctx, commentID, content)
	if err != nil {
		return nil, noticeFor(err, "Failed to update comment")
	}
	t.comments.Update(func(list []domain.Comment) []domain.Comment {
		list = slices.Clone(list)
		for i := range list {
			if list[i].ID == commentID {
				list[i] = *updated
			}
		}
		return list
	})
	return updated, nil
}

// Delete removes one of the member's comments after confirmation. It
// reports false without contacting the server when the member declines.
func (t *CommentThread) Delete(ctx context.Context, commentID string) (bool, error) {
	if err := t.checkOwner(commentID, "You can only delete your own comments"); err != nil {
		return false, err
	}
	if t.confirm == nil || !t.confirm.Confirm("Are you sure you want to delete this comment?") {
		return false, nil
	}

	if err := t.api.DeleteComment(ctx, commentID); err != nil {
		return false, noticeFor(err, "Failed to delete comment")
	}
	t.comments.Update(func(list []domain.Comment) []domain.Comment {
		return slices.DeleteFunc(slices.Clone(list), func(c domain.Comment) bool { return c.ID == commentID })
	})
	return true, nil
}

func (t *CommentThread) checkOwner(commentID, message string) error {
	if _, ok := t.sessions.Current(); !ok {
		return errNotSignedIn
	}
	i := slices.IndexFunc(t.comments.Snapshot().Data, func(c domain.Comment) bool { return c.ID == commentID })
	if i < 0 {
		return refuse(client.KindNotFound, "Comment not found")
	}
	if !t.CanModify(t.comments.Snapshot().Data[i]) {
		return refuse(client.KindForbidden, message)
	}
	return nil
}

// Close cancels a load in flight.
func (t *CommentThread) Close() {
	t.comments.Close()
}
