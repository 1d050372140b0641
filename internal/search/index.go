package search

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
)

// SearchIndex wraps a Bleve index of discussion documents.
// All methods are safe for concurrent use; Rebuild takes the lock exclusively.
type SearchIndex struct {
	index  bleve.Index
	path   string
	logger *slog.Logger
	mu     sync.RWMutex

	created bool
}

// Created reports whether the index was created empty by NewSearchIndex.
func (s *SearchIndex) Created() bool {
	return s.created
}

// Options configures the search index.
type Options struct {
	IndexPath string       // Index directory; a version file is kept next to it
	Logger    *slog.Logger // Discards when nil
}

// mappingVersion changes whenever buildIndexMapping does. A mismatch on
// open drops the index so it is rebuilt with the current mapping.
const mappingVersion = "1"

// NewSearchIndex opens the index at opts.IndexPath, creating it when missing.
// A corrupt index or one built with an older mapping is removed and recreated
// empty; Created reports that so the caller can reindex from the database.
func NewSearchIndex(opts Options) (*SearchIndex, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &SearchIndex{path: opts.IndexPath, logger: logger}

	if index, ok := s.openCurrent(); ok {
		s.index = index
		logger.Info("opened search index", "path", s.path)
		return s, nil
	}

	if err := os.RemoveAll(s.path); err != nil {
		return nil, fmt.Errorf("remove stale index: %w", err)
	}
	index, err := bleve.New(s.path, buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}
	if err := os.WriteFile(s.versionPath(), []byte(mappingVersion), 0o600); err != nil {
		logger.Warn("write search mapping version", "error", err)
	}
	s.index, s.created = index, true
	logger.Info("created search index", "path", s.path, "mapping_version", mappingVersion)
	return s, nil
}

// versionPath sits beside the index directory: club.bleve -> club.version.
func (s *SearchIndex) versionPath() string {
	return strings.TrimSuffix(s.path, filepath.Ext(s.path)) + ".version"
}

// openCurrent opens an existing index whose recorded mapping version is
// current. Any other situation means the caller starts from scratch.
func (s *SearchIndex) openCurrent() (bleve.Index, bool) {
	if _, err := os.Stat(s.path); err != nil {
		return nil, false
	}
	recorded, err := os.ReadFile(s.versionPath())
	if err != nil || string(recorded) != mappingVersion {
		s.logger.Info("search mapping changed, rebuilding",
			"recorded", string(recorded), "current", mappingVersion)
		return nil, false
	}
	index, err := bleve.Open(s.path)
	if err != nil {
		s.logger.Warn("search index unreadable, rebuilding", "path", s.path, "error", err)
		return nil, false
	}
	return index, true
}

// Close closes the index and releases resources.
func (s *SearchIndex) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// IndexDocument indexes a single document.
func (s *SearchIndex) IndexDocument(doc *SearchDocument) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Index(doc.ID, doc.ToMap())
}

// IndexDocuments indexes docs, committing every batchSize documents.
func (s *SearchIndex) IndexDocuments(docs []*SearchDocument) error {
	const batchSize = 500

	s.mu.RLock()
	defer s.mu.RUnlock()

	for chunk := range slices.Chunk(docs, batchSize) {
		batch := s.index.NewBatch()
		for _, doc := range chunk {
			if err := batch.Index(doc.ID, doc.ToMap()); err != nil {
				return fmt.Errorf("batch index %s: %w", doc.ID, err)
			}
		}
		if err := s.index.Batch(batch); err != nil {
			return fmt.Errorf("commit batch of %d: %w", len(chunk), err)
		}
	}
	return nil
}

// DocumentCount returns the total number of indexed documents.
func (s *SearchIndex) DocumentCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}

// Rebuild drops every document and recreates an empty index.
// Other operations block until it returns.
func (s *SearchIndex) Rebuild() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.index.Close(); err != nil {
		return fmt.Errorf("close index: %w", err)
	}
	if err := os.RemoveAll(s.path); err != nil {
		return fmt.Errorf("remove index: %w", err)
	}
	index, err := bleve.New(s.path, buildIndexMapping())
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	s.index = index
	s.logger.Info("rebuilt search index", "path", s.path)
	return nil
}
