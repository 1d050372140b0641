package sqlite

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/readingclub/readingclub/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(dbPath, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen(t *testing.T) {
	s := newTestStore(t)

	var journalMode string
	if err := s.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("expected wal, got %s", journalMode)
	}

	var fk int
	if err := s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("expected foreign_keys=1, got %d", fk)
	}

	for _, table := range []string{"users", "books", "weeks", "chapters", "comments", "questions", "answers"} {
		var name string
		err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}
}

func TestOpen_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "club.db")

	s, err := Open(dbPath, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.CreateUser(context.Background(), makeTestUser("user-1", "alice")); err != nil {
		t.Fatalf("create: %v", err)
	}
	s.Close()

	s, err = Open(dbPath, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	if _, err := s.GetUser(context.Background(), "user-1"); err != nil {
		t.Errorf("user lost across reopen: %v", err)
	}
}

func TestFormatTime_SortsLexically(t *testing.T) {
	base := time.Date(2024, 1, 1, 12, 0, 0, 100_000_000, time.UTC)
	later := base.Add(20 * time.Millisecond)

	if formatTime(base) >= formatTime(later) {
		t.Errorf("%s should sort before %s", formatTime(base), formatTime(later))
	}

	parsed, err := parseTime(formatTime(later))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !parsed.Equal(later) {
		t.Errorf("round trip: got %v want %v", parsed, later)
	}
}

// recordingIndexer captures index calls.
type recordingIndexer struct {
	mu      sync.Mutex
	indexed []string
	deleted []string
}

func (r *recordingIndexer) IndexComment(_ context.Context, c *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.indexed = append(r.indexed, c.ID)
	return nil
}

func (r *recordingIndexer) IndexAnswer(_ context.Context, a *domain.Answer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.indexed = append(r.indexed, a.ID)
	return nil
}

func (r *recordingIndexer) IndexQuestion(_ context.Context, q *domain.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.indexed = append(r.indexed, q.ID)
	return nil
}

func (r *recordingIndexer) DeleteDocument(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, id)
	return nil
}

// Fixtures.

func makeTestUser(id, username string) *domain.User {
	u := &domain.User{
		Entity:       domain.Entity{ID: id},
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$argon2id$fake",
		Role:         domain.RoleMember,
	}
	u.InitTimestamps()
	return u
}

func makeTestBook(id, title string) *domain.Book {
	b := &domain.Book{Entity: domain.Entity{ID: id}, Title: title, Author: "Author", TotalChapters: 12}
	b.InitTimestamps()
	return b
}

// seedChapter creates book → week → chapter and returns the ids.
func seedChapter(t *testing.T, s *Store) (bookID, weekID, chapterID string) {
	t.Helper()
	ctx := context.Background()

	book := makeTestBook("book-1", "Dune")
	if err := s.CreateBook(ctx, book); err != nil {
		t.Fatalf("create book: %v", err)
	}
	week := &domain.Week{Entity: domain.Entity{ID: "week-1"}, BookID: book.ID, WeekNumber: 1, Title: "Arrakis"}
	week.InitTimestamps()
	if err := s.CreateWeek(ctx, week); err != nil {
		t.Fatalf("create week: %v", err)
	}
	ch := &domain.Chapter{Entity: domain.Entity{ID: "chap-1"}, WeekID: week.ID, ChapterNumber: 1, Title: "One"}
	ch.InitTimestamps()
	if err := s.CreateChapter(ctx, ch); err != nil {
		t.Fatalf("create chapter: %v", err)
	}
	return book.ID, week.ID, ch.ID
}
