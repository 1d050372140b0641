package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/readingclub/readingclub/internal/config"
	"github.com/readingclub/readingclub/internal/logger"
	"github.com/readingclub/readingclub/internal/search"
	"github.com/readingclub/readingclub/internal/service"
	"github.com/readingclub/readingclub/internal/store/sqlite"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.SearchIndex
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the Bleve search index.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	index, err := search.NewSearchIndex(search.Options{
		IndexPath: cfg.Data.SearchIndexPath(),
		Logger:    log.Component("search").Logger,
	})
	if err != nil {
		return nil, err
	}

	docCount, _ := index.DocumentCount()
	log.Info("Search index initialized", "documents", docCount)

	return &SearchIndexHandle{SearchIndex: index}, nil
}

// ProvideStore provides the SQLite store, wired to the search index so
// discussion writes are indexed as they happen.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)

	dbPath := cfg.Data.DatabasePath()
	db, err := sqlite.Open(dbPath, log.Component("store").Logger)
	if err != nil {
		return nil, err
	}
	db.SetSearchIndexer(indexHandle.SearchIndex)

	log.Info("Database initialized", "path", dbPath)

	return &StoreHandle{Store: db}, nil
}

// TriggerSearchReindexIfNeeded rebuilds the index from the database when it
// was just created empty, such as after a mapping change.
func TriggerSearchReindexIfNeeded(i do.Injector) {
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	if !indexHandle.Created() {
		return
	}

	searchService := do.MustInvoke[*service.SearchService](i)
	log := do.MustInvoke[*logger.Logger](i)

	if err := searchService.ReindexAll(context.Background()); err != nil {
		log.Error("Search reindex failed", "error", err)
	}
}
