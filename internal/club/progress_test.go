package club

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readingclub/readingclub/internal/client"
	"github.com/readingclub/readingclub/internal/domain"
)

var tenChapters = &domain.Book{Entity: domain.Entity{ID: "book-1"}, TotalChapters: 10}

func TestProgressTracker_Percent(t *testing.T) {
	p := NewProgressTracker(&fakeAPI{t: t}, signedIn(t, 4), tenChapters)
	assert.InDelta(t, 40.0, p.Percent(), 1e-9)
	assert.Equal(t, domain.StatusInProgress, p.Status())
	assert.True(t, p.Completed(4))
	assert.False(t, p.Completed(5))

	none := NewProgressTracker(&fakeAPI{t: t}, signedIn(t, 4), nil)
	assert.Zero(t, none.Percent())
}

func TestProgressTracker_MarkComplete(t *testing.T) {
	calls := 0
	m := signedIn(t, 4)
	api := &fakeAPI{t: t, setProgress: func(userID string, chapter int) (*domain.User, error) {
		calls++
		assert.Equal(t, "user-alice", userID)
		return &domain.User{Entity: domain.Entity{ID: userID}, Username: "alice", CurrentChapter: chapter}, nil
	}}
	p := NewProgressTracker(api, m, tenChapters)

	require.NoError(t, p.MarkComplete(context.Background(), 7))
	assert.Equal(t, 7, p.Current())
	s, _ := m.Current()
	assert.Equal(t, 7, s.Progress)

	// Same value again: nothing sent.
	require.NoError(t, p.MarkComplete(context.Background(), 7))
	assert.Equal(t, 1, calls)
}

func TestProgressTracker_MarkCompleteFailureLeavesSession(t *testing.T) {
	m := signedIn(t, 4)
	api := &fakeAPI{t: t, setProgress: func(string, int) (*domain.User, error) {
		return nil, apiErr(400, "VALIDATION", "chapter is beyond the end of the book")
	}}
	p := NewProgressTracker(api, m, tenChapters)

	err := p.MarkComplete(context.Background(), 99)
	requireNotice(t, err, client.KindValidation, "chapter is beyond the end of the book")
	assert.Equal(t, 4, p.Current())

	err = NewProgressTracker(api, signedOut(t), tenChapters).MarkComplete(context.Background(), 1)
	requireNotice(t, err, client.KindAuth, "Please log in to continue")
}

func TestProgressTracker_Readers(t *testing.T) {
	calls := 0
	api := &fakeAPI{
		t: t,
		users: func() ([]domain.User, error) {
			calls++
			return []domain.User{
				{Entity: domain.Entity{ID: "user-alice"}, Username: "alice", CurrentChapter: 4},
				{Entity: domain.Entity{ID: "user-bob"}, Username: "bob", CurrentChapter: 10},
				{Entity: domain.Entity{ID: "user-carol"}, Username: "carol"},
			}, nil
		},
		setProgress: func(userID string, chapter int) (*domain.User, error) {
			return &domain.User{Entity: domain.Entity{ID: userID}, Username: "alice", CurrentChapter: chapter}, nil
		},
	}
	p := NewProgressTracker(api, signedIn(t, 4), tenChapters)
	ctx := context.Background()

	rows, err := p.Readers(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, domain.StatusInProgress, rows[0].Status)
	assert.Equal(t, domain.StatusCompleted, rows[1].Status)
	assert.Equal(t, domain.StatusNotStarted, rows[2].Status)

	require.NoError(t, p.MarkComplete(ctx, 5))
	rows, err = p.Readers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 5, rows[0].Current)
	assert.InDelta(t, 50.0, rows[0].Percent, 1e-9)
}
