package club

import (
	"context"
	"slices"

	"github.com/readingclub/readingclub/internal/client"
	"github.com/readingclub/readingclub/internal/domain"
	"github.com/readingclub/readingclub/internal/session"
)

// ProgressAPI is the part of the server ProgressTracker needs.
type ProgressAPI interface {
	SetProgress(ctx context.Context, userID string, chapter int) (*domain.User, error)
	Users(ctx context.Context) ([]domain.User, error)
}

// ProgressTracker shows the member's progress through a book and the club's
// progress dashboard.
type ProgressTracker struct {
	api           ProgressAPI
	sessions      *session.Manager
	totalChapters int
	readers       Loader[[]domain.ReaderProgress]
}

// NewProgressTracker tracks progress against book. A nil book has zero
// chapters, so every percentage is 0.
func NewProgressTracker(api ProgressAPI, sessions *session.Manager, book *domain.Book) *ProgressTracker {
	total := 0
	if book != nil {
		total = book.TotalChapters
	}
	return &ProgressTracker{api: api, sessions: sessions, totalChapters: total}
}

// Current returns the member's chapter, or 0 when signed out.
func (p *ProgressTracker) Current() int {
	s, _ := p.sessions.Current()
	return s.Progress
}

// Percent returns the member's completion percentage.
func (p *ProgressTracker) Percent() float64 {
	return domain.ProgressPercent(p.Current(), p.totalChapters)
}

// Status returns the member's completion status.
func (p *ProgressTracker) Status() domain.ProgressStatus {
	return domain.StatusFor(p.Percent())
}

// Completed reports whether the member has finished chapterNumber.
func (p *ProgressTracker) Completed(chapterNumber int) bool {
	return domain.ChapterCompleted(p.Current(), chapterNumber)
}

// MarkComplete sets the member's progress to chapterNumber. Setting the
// current value again sends nothing.
func (p *ProgressTracker) MarkComplete(ctx context.Context, chapterNumber int) error {
	s, ok := p.sessions.Current()
	if !ok {
		return errNotSignedIn
	}
	if chapterNumber < 0 {
		return refuse(client.KindValidation, "Chapter number cannot be negative")
	}
	if s.Progress == chapterNumber {
		return nil
	}

	user, err := p.api.SetProgress(ctx, s.UserID, chapterNumber)
	if err != nil {
		return noticeFor(err, "Failed to update progress")
	}
	if err := p.sessions.SetProgress(user.CurrentChapter); err != nil {
		return &Notice{Kind: client.KindUnknown, Message: "Progress saved but the session could not be updated", Err: err}
	}

	// Our row on the dashboard follows without a refetch.
	p.readers.Update(func(rows []domain.ReaderProgress) []domain.ReaderProgress {
		rows = slices.Clone(rows)
		for i := range rows {
			if rows[i].User.ID == user.ID {
				rows[i] = domain.NewReaderProgress(user, p.totalChapters)
			}
		}
		return rows
	})
	return nil
}

// Readers returns every member's progress, fetching it on first use.
func (p *ProgressTracker) Readers(ctx context.Context) ([]domain.ReaderProgress, error) {
	if !p.readers.Loaded() {
		err := p.readers.Load(ctx, "Failed to load reader progress", func(ctx context.Context) ([]domain.ReaderProgress, error) {
			users, err := p.api.Users(ctx)
			if err != nil {
				return nil, err
			}
			rows := make([]domain.ReaderProgress, len(users))
			for i := range users {
				rows[i] = domain.NewReaderProgress(&users[i], p.totalChapters)
			}
			return rows, nil
		})
		if err != nil {
			return nil, err
		}
	}
	return p.readers.Snapshot().Data, nil
}

// Close cancels the dashboard load.
func (p *ProgressTracker) Close() {
	p.readers.Close()
}
