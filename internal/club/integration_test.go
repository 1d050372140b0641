package club_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readingclub/readingclub/internal/client"
	"github.com/readingclub/readingclub/internal/club"
	"github.com/readingclub/readingclub/internal/clubtest"
	"github.com/readingclub/readingclub/internal/session"
)

var (
	_ club.AuthAPI     = (*client.Client)(nil)
	_ club.ScheduleAPI = (*client.Client)(nil)
	_ club.ProgressAPI = (*client.Client)(nil)
	_ club.CommentAPI  = (*client.Client)(nil)
	_ club.QuestionAPI = (*client.Client)(nil)
	_ club.AccountAPI  = (*client.Client)(nil)
	_ club.SearchAPI   = (*client.Client)(nil)
)

func TestViews_AgainstServer(t *testing.T) {
	srv := clubtest.NewServer(t)
	ctx := context.Background()

	sessions, err := session.NewManager(session.NewMemory(), nil)
	require.NoError(t, err)
	c := client.New(client.Options{
		BaseURL: clubtest.BaseURL(srv),
		Timeout: 5 * time.Second,
		Token:   sessions.Token,
	})

	guard := club.Guard{Sessions: sessions}
	assert.Equal(t, club.RouteLogin, guard.Resolve(club.RouteBook))

	flow := club.NewAuthFlow(c, sessions)
	admin, err := flow.Register(ctx, club.RegisterForm{Username: "alice", Password: "password123", ConfirmPassword: "password123"})
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())
	assert.Equal(t, club.RouteBook, guard.Resolve(club.RouteLogin))

	schedule := club.NewScheduleView(c)
	require.NoError(t, schedule.Open(ctx))
	assert.True(t, schedule.Overview().Data.NoActiveBook)

	book, err := c.CreateBook(ctx, client.NewBook{Title: "Middlemarch", Author: "George Eliot", TotalChapters: 10})
	require.NoError(t, err)
	_, err = c.ActivateBook(ctx, book.ID)
	require.NoError(t, err)
	week, err := c.CreateWeek(ctx, client.NewWeek{BookID: book.ID, WeekNumber: 1, StartDate: "2026-03-02", EndDate: "2026-03-08"})
	require.NoError(t, err)
	chapter, err := c.CreateChapter(ctx, client.NewChapter{WeekID: week.ID, ChapterNumber: 1, Title: "Miss Brooke"})
	require.NoError(t, err)
	question, err := c.CreateQuestion(ctx, week.ID, "Is Dorothea wise?")
	require.NoError(t, err)

	require.NoError(t, schedule.Open(ctx))
	overview := schedule.Overview().Data
	require.False(t, overview.NoActiveBook)
	require.Len(t, overview.Weeks, 1)
	require.NoError(t, schedule.Toggle(ctx, week.ID))
	require.Len(t, schedule.Chapters(week.ID).Data, 1)

	progress := club.NewProgressTracker(c, sessions, overview.Book)
	require.NoError(t, progress.MarkComplete(ctx, 4))
	assert.InDelta(t, 40.0, progress.Percent(), 1e-9)
	rows, err := progress.Readers(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 4, rows[0].Current)

	thread := club.NewCommentThread(c, sessions, club.ConfirmFunc(func(string) bool { return true }), chapter.ID)
	require.NoError(t, thread.View(ctx))
	posted, err := thread.Post(ctx, "Casaubon is a bore")
	require.NoError(t, err)
	_, err = thread.Edit(ctx, posted.ID, "Casaubon is a dreadful bore")
	require.NoError(t, err)

	search := club.NewSearchView(c)
	found, err := search.Run(ctx, client.SearchQuery{Text: "dreadful"})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), found.Total)

	deleted, err := thread.Delete(ctx, posted.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Empty(t, thread.State().Data)

	board := club.NewQuestionBoard(c, sessions, week.ID)
	require.NoError(t, board.Load(ctx))
	_, err = board.Submit(ctx, question.ID, "Not yet")
	require.NoError(t, err)
	item, ok := board.Item(question.ID)
	require.True(t, ok)
	require.NotNil(t, item.Mine)

	// A second member sees alice's answer among the others.
	require.NoError(t, flow.Logout())
	_, err = flow.Register(ctx, club.RegisterForm{Username: "bob", Password: "password123", ConfirmPassword: "password123"})
	require.NoError(t, err)
	board = club.NewQuestionBoard(c, sessions, week.ID)
	require.NoError(t, board.Load(ctx))
	item, _ = board.Item(question.ID)
	assert.Nil(t, item.Mine)
	require.Len(t, item.Others, 1)
	assert.Equal(t, "alice", item.Others[0].User.Username)

	account := club.NewAccountSettings(c, sessions)
	require.NoError(t, account.ChangeUsername(ctx, "robert"))
	err = account.ChangeUsername(ctx, "alice")
	var notice *club.Notice
	require.ErrorAs(t, err, &notice)
	assert.Equal(t, client.KindConflict, notice.Kind)

	require.NoError(t, account.ChangePassword(ctx, club.PasswordForm{Current: "password123", New: "newpass1", Confirm: "newpass1"}))
	require.NoError(t, flow.Logout())
	_, err = flow.Login(ctx, "robert", "newpass1")
	require.NoError(t, err)
}
