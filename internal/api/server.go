// Package api serves the reading club REST API: chi for routing and
// middleware, huma for typed operations, every body wrapped in the
// {v, success, data} envelope.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/readingclub/readingclub/internal/ratelimit"
	"github.com/readingclub/readingclub/internal/search"
	"github.com/readingclub/readingclub/internal/service"
	"github.com/readingclub/readingclub/internal/store"
)

// BasePath prefixes every route.
const BasePath = "/api"

// Services groups the business services the handlers call.
type Services struct {
	Auth     *service.AuthService
	User     *service.UserService
	Book     *service.BookService
	Schedule *service.ScheduleService
	Comment  *service.CommentService
	Question *service.QuestionService
	Search   *service.SearchService
}

// Options configures the HTTP surface.
type Options struct {
	Version            string
	AllowedOrigins     []string
	LoginRatePerMinute int // 0 disables login rate limiting
	// TrustProxyHeaders lets X-Forwarded-For / X-Real-IP replace RemoteAddr.
	// Off, a client cannot pick its own rate limit key.
	TrustProxyHeaders bool
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store        store.Store
	index        *search.SearchIndex
	services     *Services
	router       *chi.Mux
	api          huma.API
	logger       *slog.Logger
	loginLimiter *ratelimit.KeyedRateLimiter
	startedAt    time.Time
}

// NewServer creates the HTTP server with all routes configured. index may be
// nil when search is disabled.
func NewServer(st store.Store, index *search.SearchIndex, services *Services, opts Options, logger *slog.Logger) *Server {
	if opts.Version == "" {
		opts.Version = "dev"
	}

	router := chi.NewRouter()
	s := &Server{
		store:     st,
		index:     index,
		services:  services,
		router:    router,
		logger:    logger,
		startedAt: time.Now(),
	}
	if opts.LoginRatePerMinute > 0 {
		s.loginLimiter = ratelimit.PerMinute(opts.LoginRatePerMinute)
	}

	s.setupMiddleware(opts)

	humaConfig := huma.DefaultConfig("Reading Club API", opts.Version)
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)
	humaConfig.OpenAPIPath = BasePath + "/openapi"
	humaConfig.DocsPath = BasePath + "/docs"
	humaConfig.SchemasPath = BasePath + "/schemas"

	s.api = humachi.New(router, humaConfig)
	RegisterErrorHandler(logger)

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerUserRoutes()
	s.registerBookRoutes()
	s.registerScheduleRoutes()
	s.registerCommentRoutes()
	s.registerQuestionRoutes()
	s.registerSearchRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API exposes the huma API, for tests and OpenAPI export.
func (s *Server) API() huma.API {
	return s.api
}

// Close stops background work owned by the server.
func (s *Server) Close() {
	if s.loginLimiter != nil {
		s.loginLimiter.Stop()
	}
}

func (s *Server) setupMiddleware(opts Options) {
	s.router.Use(requestID)
	if opts.TrustProxyHeaders {
		s.router.Use(middleware.RealIP)
	}
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	s.router.Use(authMiddleware(s.services.Auth))
}

// bearer is the security requirement attached to authenticated operations.
var bearer = []map[string][]string{{"bearer": {}}}
