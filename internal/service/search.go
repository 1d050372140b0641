package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	domainerrors "github.com/readingclub/readingclub/internal/errors"
	"github.com/readingclub/readingclub/internal/search"
	"github.com/readingclub/readingclub/internal/store"
)

// SearchService answers discussion searches and rebuilds the index from the
// database.
type SearchService struct {
	index  *search.SearchIndex
	store  store.Store
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(index *search.SearchIndex, store store.Store, logger *slog.Logger) *SearchService {
	return &SearchService{
		index:  index,
		store:  store,
		logger: logger,
	}
}

// SearchRequest is the query string of GET /search.
type SearchRequest struct {
	Query  string
	Types  string // comma separated doc types
	Author string
	Sort   string
	Limit  int
	Offset int
}

// Search runs a discussion search.
func (s *SearchService) Search(ctx context.Context, req SearchRequest) (*search.SearchResult, error) {
	params := search.DefaultSearchParams()
	params.Query = strings.TrimSpace(req.Query)
	params.Author = strings.TrimSpace(req.Author)
	if req.Limit > 0 {
		params.Limit = min(req.Limit, 100)
	}
	if req.Offset > 0 {
		params.Offset = req.Offset
	}

	switch req.Sort {
	case "", search.SortRelevance:
	case search.SortRecent:
		params.SortBy = search.SortRecent
	default:
		return nil, domainerrors.Validationf("sort must be %q or %q", search.SortRelevance, search.SortRecent)
	}

	for t := range strings.SplitSeq(req.Types, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if !search.ValidDocType(t) {
			return nil, domainerrors.Validationf("unknown type %q", t)
		}
		params.Types = append(params.Types, search.DocType(t))
	}

	result, err := s.index.Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return result, nil
}

// DocumentCount returns the number of indexed documents.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}

// ReindexAll drops the index and indexes every question, answer and comment
// reachable from the books in the database.
func (s *SearchService) ReindexAll(ctx context.Context) error {
	s.logger.Info("starting full reindex")

	if err := s.index.Rebuild(); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}

	books, err := s.store.ListBooks(ctx)
	if err != nil {
		return fmt.Errorf("list books: %w", err)
	}

	var docs []*search.SearchDocument
	for _, book := range books {
		weeks, err := s.store.ListWeeksByBook(ctx, book.ID)
		if err != nil {
			return fmt.Errorf("list weeks of %s: %w", book.ID, err)
		}
		for _, week := range weeks {
			weekDocs, err := s.weekDocuments(ctx, week.ID)
			if err != nil {
				return err
			}
			docs = append(docs, weekDocs...)
		}
	}

	if len(docs) > 0 {
		if err := s.index.IndexDocuments(docs); err != nil {
			return fmt.Errorf("index documents: %w", err)
		}
	}

	total, _ := s.index.DocumentCount()
	s.logger.Info("full reindex complete", "total_documents", total)
	return nil
}

func (s *SearchService) weekDocuments(ctx context.Context, weekID string) ([]*search.SearchDocument, error) {
	var docs []*search.SearchDocument

	chapters, err := s.store.ListChaptersByWeek(ctx, weekID)
	if err != nil {
		return nil, fmt.Errorf("list chapters of %s: %w", weekID, err)
	}
	for _, ch := range chapters {
		comments, err := s.store.ListCommentsByChapter(ctx, ch.ID)
		if err != nil {
			return nil, fmt.Errorf("list comments of %s: %w", ch.ID, err)
		}
		for _, c := range comments {
			docs = append(docs, search.CommentDocument(c))
		}
	}

	questions, err := s.store.ListQuestionsByWeek(ctx, weekID)
	if err != nil {
		return nil, fmt.Errorf("list questions of %s: %w", weekID, err)
	}
	for _, q := range questions {
		docs = append(docs, search.QuestionDocument(q))
		answers, err := s.store.ListAnswersByQuestion(ctx, q.ID)
		if err != nil {
			return nil, fmt.Errorf("list answers of %s: %w", q.ID, err)
		}
		for _, a := range answers {
			docs = append(docs, search.AnswerDocument(a))
		}
	}
	return docs, nil
}
