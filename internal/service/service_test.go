package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/readingclub/readingclub/internal/auth"
	"github.com/readingclub/readingclub/internal/domain"
	"github.com/readingclub/readingclub/internal/search"
	"github.com/readingclub/readingclub/internal/store/sqlite"
)

// testEnv bundles every service over one temporary database.
type testEnv struct {
	store     *sqlite.Store
	index     *search.SearchIndex
	tokens    *auth.TokenService
	auth      *AuthService
	users     *UserService
	books     *BookService
	schedule  *ScheduleService
	comments  *CommentService
	questions *QuestionService
	search    *SearchService
}

func setupServices(t *testing.T) *testEnv {
	t.Helper()

	tmpDir := t.TempDir()
	logger := slog.New(slog.DiscardHandler)

	s, err := sqlite.Open(filepath.Join(tmpDir, "club.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	index, err := search.NewSearchIndex(search.Options{
		IndexPath: filepath.Join(tmpDir, "search.bleve"),
		Logger:    logger,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })
	s.SetSearchIndexer(index)

	key, err := auth.LoadOrGenerateKey(tmpDir)
	require.NoError(t, err)
	tokens, err := auth.NewTokenService(key, time.Hour)
	require.NoError(t, err)

	return &testEnv{
		store:     s,
		index:     index,
		tokens:    tokens,
		auth:      NewAuthService(s, tokens, logger),
		users:     NewUserService(s, logger),
		books:     NewBookService(s, logger),
		schedule:  NewScheduleService(s, logger),
		comments:  NewCommentService(s, logger),
		questions: NewQuestionService(s, logger),
		search:    NewSearchService(index, s, logger),
	}
}

// register signs a user up through the auth service.
func (e *testEnv) register(t *testing.T, username string) *domain.User {
	t.Helper()
	resp, err := e.auth.Register(context.Background(), RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	return resp.User
}

// seedSchedule creates an active book with one week and one chapter, acting
// as admin.
func (e *testEnv) seedSchedule(t *testing.T, admin *domain.User) (*domain.Book, *domain.Week, *domain.Chapter) {
	t.Helper()
	ctx := context.Background()

	book, err := e.books.Create(ctx, admin.ID, CreateBookRequest{Title: "Middlemarch", Author: "George Eliot", TotalChapters: 86})
	require.NoError(t, err)
	book, err = e.books.Activate(ctx, admin.ID, book.ID)
	require.NoError(t, err)

	week, err := e.schedule.CreateWeek(ctx, admin.ID, CreateWeekRequest{
		BookID:     book.ID,
		WeekNumber: 1,
		Title:      "Miss Brooke",
		StartDate:  domain.NewDate(2026, time.March, 2),
		EndDate:    domain.NewDate(2026, time.March, 8),
	})
	require.NoError(t, err)

	chapter, err := e.schedule.CreateChapter(ctx, admin.ID, CreateChapterRequest{WeekID: week.ID, ChapterNumber: 1, Title: "Chapter I"})
	require.NoError(t, err)

	return book, week, chapter
}
