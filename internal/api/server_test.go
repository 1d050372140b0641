package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readingclub/readingclub/internal/auth"
	"github.com/readingclub/readingclub/internal/domain"
	"github.com/readingclub/readingclub/internal/search"
	"github.com/readingclub/readingclub/internal/service"
	"github.com/readingclub/readingclub/internal/store/sqlite"
)

// testEnvelope decodes the response envelope.
type testEnvelope[T any] struct {
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type testServer struct {
	*Server
	api humatest.TestAPI
}

func setupTestServer(t *testing.T, loginRate int) *testServer {
	t.Helper()
	return setupTestServerWith(t, Options{LoginRatePerMinute: loginRate})
}

func setupTestServerWith(t *testing.T, opts Options) *testServer {
	t.Helper()

	tmpDir := t.TempDir()
	logger := slog.New(slog.DiscardHandler)

	st, err := sqlite.Open(filepath.Join(tmpDir, "club.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	index, err := search.NewSearchIndex(search.Options{IndexPath: filepath.Join(tmpDir, "search.bleve")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })
	st.SetSearchIndexer(index)

	key, err := auth.LoadOrGenerateKey(tmpDir)
	require.NoError(t, err)
	tokens, err := auth.NewTokenService(key, time.Hour)
	require.NoError(t, err)

	services := &Services{
		Auth:     service.NewAuthService(st, tokens, logger),
		User:     service.NewUserService(st, logger),
		Book:     service.NewBookService(st, logger),
		Schedule: service.NewScheduleService(st, logger),
		Comment:  service.NewCommentService(st, logger),
		Question: service.NewQuestionService(st, logger),
		Search:   service.NewSearchService(index, st, logger),
	}

	opts.Version = "test"
	opts.AllowedOrigins = []string{"*"}
	s := NewServer(st, index, services, opts, logger)
	t.Cleanup(s.Close)

	return &testServer{Server: s, api: humatest.Wrap(t, s.API())}
}

func decode[T any](t *testing.T, resp interface{ Bytes() []byte }) testEnvelope[T] {
	t.Helper()
	var env testEnvelope[T]
	require.NoError(t, json.Unmarshal(resp.Bytes(), &env))
	require.Equal(t, EnvelopeVersion, env.Version)
	return env
}

// register signs up a user and returns the bearer header and the user.
func (ts *testServer) register(t *testing.T, username string) (string, *domain.User) {
	t.Helper()
	resp := ts.api.Post("/api/users/register", map[string]any{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	env := decode[service.AuthResponse](t, resp.Body)
	require.True(t, env.Success)
	return "Authorization: Bearer " + env.Data.Token, env.Data.User
}
