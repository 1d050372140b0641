package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/readingclub/readingclub/internal/errors"
	"github.com/readingclub/readingclub/internal/search"
	"github.com/readingclub/readingclub/internal/service"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchDiscussion",
		Method:      http.MethodGet,
		Path:        BasePath + "/search",
		Summary:     "Search discussion",
		Description: "Full-text search over comments, questions and answers",
		Tags:        []string{"Search"},
		Security:    bearer,
	}, s.handleSearch)
}

// SearchInput is the search query string.
type SearchInput struct {
	Query  string `query:"q" doc:"Search text; empty matches everything"`
	Type   string `query:"type" doc:"Comma separated: comment, question, answer"`
	Author string `query:"author" doc:"Restrict to one username"`
	Sort   string `query:"sort" enum:"relevance,recent" doc:"Result order"`
	Limit  int    `query:"limit" minimum:"0" maximum:"100" doc:"Page size (default 20)"`
	Offset int    `query:"offset" minimum:"0" doc:"Results to skip"`
}

// SearchOutput wraps search results for Huma.
type SearchOutput struct {
	Body *search.SearchResult
}

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	if _, err := GetUser(ctx); err != nil {
		return nil, err
	}
	if s.services.Search == nil {
		return nil, domainerrors.Internal("search is not available")
	}

	result, err := s.services.Search.Search(ctx, service.SearchRequest{
		Query:  input.Query,
		Types:  input.Type,
		Author: input.Author,
		Sort:   input.Sort,
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return nil, err
	}
	return &SearchOutput{Body: result}, nil
}
