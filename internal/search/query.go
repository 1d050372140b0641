package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Sort orders.
const (
	SortRelevance = "relevance"
	SortRecent    = "recent"
)

// SearchParams configures a search query.
type SearchParams struct {
	Query    string    // free text; empty matches everything
	Types    []DocType // empty = all
	Author   string    // exact username, optional
	ParentID string    // restrict to one chapter/question/week, optional

	Limit  int
	Offset int
	SortBy string // relevance (default) or recent

	Highlight bool
}

// DefaultSearchParams returns sensible defaults.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		Limit:     20,
		SortBy:    SortRelevance,
		Highlight: true,
	}
}

// SearchResult is one page of hits.
type SearchResult struct {
	Query  string       `json:"query"`
	Total  uint64       `json:"total"`
	TookMs int64        `json:"tookMs"`
	Hits   []SearchHit  `json:"hits"`
	Facets []FacetCount `json:"facets,omitempty"`
}

// SearchHit is a matched discussion document.
type SearchHit struct {
	ID        string    `json:"id"`
	Type      DocType   `json:"type"`
	Score     float64   `json:"score"`
	Body      string    `json:"body"`
	Author    string    `json:"author,omitempty"`
	ParentID  string    `json:"parentId"`
	CreatedAt time.Time `json:"createdAt"`
	Highlight string    `json:"highlight,omitempty"`
}

// FacetCount is the number of hits per document type.
type FacetCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Search executes a query.
func (s *SearchIndex) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if params.Limit <= 0 {
		params.Limit = DefaultSearchParams().Limit
	}

	req := bleve.NewSearchRequestOptions(buildSearchQuery(params), params.Limit, params.Offset, false)
	if params.SortBy == SortRecent {
		req.SortBy([]string{"-created_at", "_id"})
	} else {
		req.SortBy([]string{"-_score", "-created_at"})
	}
	req.AddFacet("type", bleve.NewFacetRequest("type", 3))
	if params.Highlight && params.Query != "" {
		req.Highlight = bleve.NewHighlight()
		req.Highlight.AddField("body")
	}
	req.Fields = []string{"type", "body", "author", "parent_id", "created_at"}

	res, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &SearchResult{
		Query:  params.Query,
		Total:  res.Total,
		TookMs: res.Took.Milliseconds(),
		Hits:   make([]SearchHit, 0, len(res.Hits)),
	}

	for _, hit := range res.Hits {
		h := SearchHit{ID: hit.ID, Score: hit.Score}
		if v, ok := hit.Fields["type"].(string); ok {
			h.Type = DocType(v)
		}
		if v, ok := hit.Fields["body"].(string); ok {
			h.Body = v
		}
		if v, ok := hit.Fields["author"].(string); ok {
			h.Author = v
		}
		if v, ok := hit.Fields["parent_id"].(string); ok {
			h.ParentID = v
		}
		if v, ok := hit.Fields["created_at"].(float64); ok {
			h.CreatedAt = time.UnixMilli(int64(v)).UTC()
		}
		if frags := hit.Fragments["body"]; len(frags) > 0 {
			h.Highlight = frags[0]
		}
		result.Hits = append(result.Hits, h)
	}

	if f, ok := res.Facets["type"]; ok && f.Terms != nil {
		for _, term := range f.Terms.Terms() {
			result.Facets = append(result.Facets, FacetCount{Value: term.Term, Count: term.Count})
		}
	}

	return result, nil
}

// buildSearchQuery ANDs the text match with the optional filters.
func buildSearchQuery(params SearchParams) query.Query {
	var queries []query.Query

	if q := strings.TrimSpace(params.Query); q != "" {
		match := bleve.NewMatchQuery(q)
		match.SetField("body")
		match.SetBoost(3.0)

		fuzzy := bleve.NewFuzzyQuery(strings.ToLower(q))
		fuzzy.SetField("body")
		fuzzy.SetFuzziness(1)
		fuzzy.SetBoost(0.8)

		author := bleve.NewMatchQuery(q)
		author.SetField("author")

		text := []query.Query{match, fuzzy, author}
		if len(q) >= 2 && !strings.ContainsRune(q, ' ') {
			prefix := bleve.NewPrefixQuery(strings.ToLower(q))
			prefix.SetField("body")
			prefix.SetBoost(0.5)
			text = append(text, prefix)
		}
		queries = append(queries, bleve.NewDisjunctionQuery(text...))
	}

	if len(params.Types) > 0 {
		typeQueries := make([]query.Query, len(params.Types))
		for i, t := range params.Types {
			tq := bleve.NewTermQuery(string(t))
			tq.SetField("type")
			typeQueries[i] = tq
		}
		queries = append(queries, bleve.NewDisjunctionQuery(typeQueries...))
	}

	if params.Author != "" {
		aq := bleve.NewMatchQuery(params.Author)
		aq.SetField("author")
		aq.SetOperator(query.MatchQueryOperatorAnd)
		queries = append(queries, aq)
	}

	if params.ParentID != "" {
		pq := bleve.NewTermQuery(params.ParentID)
		pq.SetField("parent_id")
		queries = append(queries, pq)
	}

	switch len(queries) {
	case 0:
		return bleve.NewMatchAllQuery()
	case 1:
		return queries[0]
	default:
		return bleve.NewConjunctionQuery(queries...)
	}
}
