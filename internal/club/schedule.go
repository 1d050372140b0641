package club

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/readingclub/readingclub/internal/client"
	"github.com/readingclub/readingclub/internal/domain"
)

// ScheduleAPI is the part of the server ScheduleView needs.
type ScheduleAPI interface {
	CurrentBook(ctx context.Context) (*domain.Book, error)
	Weeks(ctx context.Context, bookID string) ([]domain.Week, error)
	Chapters(ctx context.Context, weekID string) ([]domain.Chapter, error)
}

// Overview is the book screen's header data. NoActiveBook is the empty state
// for a club that has not picked a book yet.
type Overview struct {
	Book         *domain.Book
	Weeks        []domain.Week
	NoActiveBook bool
}

// ScheduleView is the book overview with its week accordion. At most one
// week is expanded; chapters load on first expansion and stay cached.
type ScheduleView struct {
	api      ScheduleAPI
	overview Loader[Overview]

	mu       sync.Mutex
	expanded string
	chapters map[string]*Loader[[]domain.Chapter]
}

// NewScheduleView creates the view.
func NewScheduleView(api ScheduleAPI) *ScheduleView {
	return &ScheduleView{api: api, chapters: make(map[string]*Loader[[]domain.Chapter])}
}

// Open loads the current book and its weeks.
func (v *ScheduleView) Open(ctx context.Context) error {
	v.mu.Lock()
	v.expanded = ""
	v.mu.Unlock()

	return v.overview.Load(ctx, "Failed to load the current book", func(ctx context.Context) (Overview, error) {
		book, err := v.api.CurrentBook(ctx)
		if client.IsNotFound(err) {
			return Overview{NoActiveBook: true}, nil
		}
		if err != nil {
			return Overview{}, err
		}

		weeks, err := v.api.Weeks(ctx, book.ID)
		if err != nil {
			return Overview{}, err
		}
		slices.SortStableFunc(weeks, func(a, b domain.Week) int {
			return cmp.Compare(a.WeekNumber, b.WeekNumber)
		})
		return Overview{Book: book, Weeks: weeks}, nil
	})
}

// Overview returns the book and weeks state.
func (v *ScheduleView) Overview() LoadState[Overview] {
	return v.overview.Snapshot()
}

// Expanded returns the expanded week's ID, or "".
func (v *ScheduleView) Expanded() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.expanded
}

// Toggle expands weekID, collapsing whichever week was open, or collapses
// it if it was the open one. A week whose chapters have not loaded
// successfully is fetched again.
func (v *ScheduleView) Toggle(ctx context.Context, weekID string) error {
	v.mu.Lock()
	if v.expanded == weekID {
		v.expanded = ""
		v.mu.Unlock()
		return nil
	}
	v.expanded = weekID
	loader, ok := v.chapters[weekID]
	if !ok {
		loader = &Loader[[]domain.Chapter]{}
		v.chapters[weekID] = loader
	}
	v.mu.Unlock()

	if loader.Loaded() {
		return nil
	}
	return loader.Load(ctx, "Failed to load chapters", func(ctx context.Context) ([]domain.Chapter, error) {
		chapters, err := v.api.Chapters(ctx, weekID)
		if err != nil {
			return nil, err
		}
		slices.SortStableFunc(chapters, func(a, b domain.Chapter) int {
			return cmp.Compare(a.ChapterNumber, b.ChapterNumber)
		})
		return chapters, nil
	})
}

// Chapters returns the chapter state of a week.
func (v *ScheduleView) Chapters(weekID string) LoadState[[]domain.Chapter] {
	v.mu.Lock()
	loader, ok := v.chapters[weekID]
	v.mu.Unlock()
	if !ok {
		return LoadState[[]domain.Chapter]{}
	}
	return loader.Snapshot()
}

// Close cancels every load in flight.
func (v *ScheduleView) Close() {
	v.overview.Close()
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, l := range v.chapters {
		l.Close()
	}
}
