package club

import (
	"context"
	"strings"

	"github.com/readingclub/readingclub/internal/client"
)

// SearchAPI is the part of the server SearchView needs.
type SearchAPI interface {
	Search(ctx context.Context, q client.SearchQuery) (*client.SearchResult, error)
}

// SearchView searches comments, answers and questions.
type SearchView struct {
	api     SearchAPI
	results Loader[*client.SearchResult]
}

// NewSearchView creates the view.
func NewSearchView(api SearchAPI) *SearchView {
	return &SearchView{api: api}
}

// Run executes q, replacing any search still in flight.
func (v *SearchView) Run(ctx context.Context, q client.SearchQuery) (*client.SearchResult, error) {
	q.Text = strings.TrimSpace(q.Text)
	if q.Text == "" && q.Author == "" {
		return nil, refuse(client.KindValidation, "Enter something to search for")
	}

	err := v.results.Load(ctx, "Search failed", func(ctx context.Context) (*client.SearchResult, error) {
		return v.api.Search(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	return v.results.Snapshot().Data, nil
}

// State returns the latest search state.
func (v *SearchView) State() LoadState[*client.SearchResult] {
	return v.results.Snapshot()
}
