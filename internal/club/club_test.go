package club

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/readingclub/readingclub/internal/client"
	"github.com/readingclub/readingclub/internal/domain"
	"github.com/readingclub/readingclub/internal/session"
)

// fakeAPI implements every view's API interface. Unset functions fail the
// test when called.
type fakeAPI struct {
	t *testing.T

	login          func(username, password string) (*client.AuthResult, error)
	register       func(reg client.Registration) (*client.AuthResult, error)
	currentBook    func(ctx context.Context) (*domain.Book, error)
	weeks          func(ctx context.Context, bookID string) ([]domain.Week, error)
	chapters       func(ctx context.Context, weekID string) ([]domain.Chapter, error)
	setProgress    func(userID string, chapter int) (*domain.User, error)
	users          func() ([]domain.User, error)
	comments       func(ctx context.Context, chapterID string) ([]domain.Comment, error)
	postComment    func(chapterID, content string) (*domain.Comment, error)
	editComment    func(commentID, content string) (*domain.Comment, error)
	deleteComment  func(commentID string) error
	questions      func(weekID string) ([]domain.Question, error)
	answers        func(ctx context.Context, questionID string) ([]domain.Answer, error)
	submitAnswer   func(questionID, answer string) (*domain.Answer, error)
	changeUsername func(userID, username string) (*domain.User, error)
	changePassword func(userID, current, next string) error
	search         func(q client.SearchQuery) (*client.SearchResult, error)
}

func (f *fakeAPI) unexpected(name string) {
	f.t.Helper()
	f.t.Fatalf("unexpected call to %s", name)
}

func (f *fakeAPI) Login(_ context.Context, username, password string) (*client.AuthResult, error) {
	if f.login == nil {
		f.unexpected("Login")
	}
	return f.login(username, password)
}

func (f *fakeAPI) Register(_ context.Context, reg client.Registration) (*client.AuthResult, error) {
	if f.register == nil {
		f.unexpected("Register")
	}
	return f.register(reg)
}

func (f *fakeAPI) CurrentBook(ctx context.Context) (*domain.Book, error) {
	if f.currentBook == nil {
		f.unexpected("CurrentBook")
	}
	return f.currentBook(ctx)
}

func (f *fakeAPI) Weeks(ctx context.Context, bookID string) ([]domain.Week, error) {
	if f.weeks == nil {
		f.unexpected("Weeks")
	}
	return f.weeks(ctx, bookID)
}

func (f *fakeAPI) Chapters(ctx context.Context, weekID string) ([]domain.Chapter, error) {
	if f.chapters == nil {
		f.unexpected("Chapters")
	}
	return f.chapters(ctx, weekID)
}

func (f *fakeAPI) SetProgress(_ context.Context, userID string, chapter int) (*domain.User, error) {
	if f.setProgress == nil {
		f.unexpected("SetProgress")
	}
	return f.setProgress(userID, chapter)
}

func (f *fakeAPI) Users(context.Context) ([]domain.User, error) {
	if f.users == nil {
		f.unexpected("Users")
	}
	return f.users()
}

func (f *fakeAPI) Comments(ctx context.Context, chapterID string) ([]domain.Comment, error) {
	if f.comments == nil {
		f.unexpected("Comments")
	}
	return f.comments(ctx, chapterID)
}

func (f *fakeAPI) PostComment(_ context.Context, chapterID, content string) (*domain.Comment, error) {
	if f.postComment == nil {
		f.unexpected("PostComment")
	}
	return f.postComment(chapterID, content)
}

func (f *fakeAPI) EditComment(_ context.Context, commentID, content string) (*domain.Comment, error) {
	if f.editComment == nil {
		f.unexpected("EditComment")
	}
	return f.editComment(commentID, content)
}

func (f *fakeAPI) DeleteComment(_ context.Context, commentID string) error {
	if f.deleteComment == nil {
		f.unexpected("DeleteComment")
	}
	return f.deleteComment(commentID)
}

func (f *fakeAPI) Questions(_ context.Context, weekID string) ([]domain.Question, error) {
	if f.questions == nil {
		f.unexpected("Questions")
	}
	return f.questions(weekID)
}

func (f *fakeAPI) Answers(ctx context.Context, questionID string) ([]domain.Answer, error) {
	if f.answers == nil {
		f.unexpected("Answers")
	}
	return f.answers(ctx, questionID)
}

func (f *fakeAPI) SubmitAnswer(_ context.Context, questionID, answer string) (*domain.Answer, error) {
	if f.submitAnswer == nil {
		f.unexpected("SubmitAnswer")
	}
	return f.submitAnswer(questionID, answer)
}

func (f *fakeAPI) ChangeUsername(_ context.Context, userID, username string) (*domain.User, error) {
	if f.changeUsername == nil {
		f.unexpected("ChangeUsername")
	}
	return f.changeUsername(userID, username)
}

func (f *fakeAPI) ChangePassword(_ context.Context, userID, current, next string) error {
	if f.changePassword == nil {
		f.unexpected("ChangePassword")
	}
	return f.changePassword(userID, current, next)
}

func (f *fakeAPI) Search(_ context.Context, q client.SearchQuery) (*client.SearchResult, error) {
	if f.search == nil {
		f.unexpected("Search")
	}
	return f.search(q)
}

// signedIn returns a session manager holding alice at the given progress.
func signedIn(t *testing.T, progress int) *session.Manager {
	t.Helper()
	m, err := session.NewManager(session.NewMemory(), nil)
	require.NoError(t, err)
	require.NoError(t, m.Begin(session.Session{
		UserID:    "user-alice",
		Username:  "alice",
		Progress:  progress,
		Role:      domain.RoleMember,
		Token:     "tok",
		ExpiresAt: time.Now().Add(time.Hour),
	}))
	return m
}

func signedOut(t *testing.T) *session.Manager {
	t.Helper()
	m, err := session.NewManager(session.NewMemory(), nil)
	require.NoError(t, err)
	return m
}

func apiErr(status int, code, message string) error {
	return &client.APIError{Status: status, Code: code, Message: message}
}

func requireNotice(t *testing.T, err error, kind client.Kind, message string) {
	t.Helper()
	var n *Notice
	require.ErrorAs(t, err, &n)
	require.Equal(t, kind, n.Kind)
	require.Equal(t, message, n.Message)
}

func ref(id, username string) domain.UserRef {
	return domain.UserRef{ID: id, Username: username}
}
