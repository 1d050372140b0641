// Package di provides dependency injection configuration for the reading club server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/readingclub/readingclub/internal/auth"
	"github.com/readingclub/readingclub/internal/config"
	"github.com/readingclub/readingclub/internal/di/providers"
	"github.com/readingclub/readingclub/internal/logger"
	"github.com/readingclub/readingclub/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer(args []string) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.ProvideValue(injector, providers.Args(args))
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Storage and search
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideStore)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideUserService)
	do.Provide(injector, providers.ProvideBookService)
	do.Provide(injector, providers.ProvideScheduleService)
	do.Provide(injector, providers.ProvideCommentService)
	do.Provide(injector, providers.ProvideQuestionService)
	do.Provide(injector, providers.ProvideSearchService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and starts the HTTP server.
func Bootstrap(injector *do.RootScope) (err error) {
	// MustInvoke panics on provider errors; surface them as a plain error.
	defer func() {
		if r := recover(); r != nil {
			err = providers.AsError(r)
		}
	}()

	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)

	_ = do.MustInvoke[*service.SearchService](injector)
	providers.TriggerSearchReindexIfNeeded(injector)

	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
