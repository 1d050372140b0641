// Package clubtest starts a complete club API server on a temp directory for
// client-side tests.
package clubtest

import (
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/readingclub/readingclub/internal/api"
	"github.com/readingclub/readingclub/internal/auth"
	"github.com/readingclub/readingclub/internal/search"
	"github.com/readingclub/readingclub/internal/service"
	"github.com/readingclub/readingclub/internal/store/sqlite"
)

// NewServer returns a running server rooted at a fresh temp directory. Its
// URL plus api.BasePath is the client's base URL. Everything is torn down
// with the test.
func NewServer(t testing.TB) *httptest.Server {
	t.Helper()

	dir := t.TempDir()
	logger := slog.New(slog.DiscardHandler)

	st, err := sqlite.Open(filepath.Join(dir, "club.db"), logger)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	index, err := search.NewSearchIndex(search.Options{IndexPath: filepath.Join(dir, "search.bleve")})
	if err != nil {
		t.Fatalf("open search index: %v", err)
	}
	st.SetSearchIndexer(index)

	key, err := auth.LoadOrGenerateKey(dir)
	if err != nil {
		t.Fatalf("load key: %v", err)
	}
	tokens, err := auth.NewTokenService(key, time.Hour)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}

	services := &api.Services{
		Auth:     service.NewAuthService(st, tokens, logger),
		User:     service.NewUserService(st, logger),
		Book:     service.NewBookService(st, logger),
		Schedule: service.NewScheduleService(st, logger),
		Comment:  service.NewCommentService(st, logger),
		Question: service.NewQuestionService(st, logger),
		Search:   service.NewSearchService(index, st, logger),
	}

	handler := api.NewServer(st, index, services, api.Options{
		Version:        "test",
		AllowedOrigins: []string{"*"},
	}, logger)

	srv := httptest.NewServer(handler)
	t.Cleanup(func() {
		srv.Close()
		handler.Close()
		_ = index.Close()
		_ = st.Close()
	})
	return srv
}

// BaseURL is the API root of a server started by NewServer.
func BaseURL(srv *httptest.Server) string {
	return srv.URL + api.BasePath
}
