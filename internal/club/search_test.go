package club

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readingclub/readingclub/internal/client"
)

func TestSearchView(t *testing.T) {
	api := &fakeAPI{t: t, search: func(q client.SearchQuery) (*client.SearchResult, error) {
		assert.Equal(t, "casaubon", q.Text)
		return &client.SearchResult{Query: q.Text, Total: 1, Hits: []client.SearchHit{{ID: "cmt-1", Type: "comment"}}}, nil
	}}
	v := NewSearchView(api)

	_, err := v.Run(context.Background(), client.SearchQuery{Text: "  "})
	requireNotice(t, err, client.KindValidation, "Enter something to search for")

	res, err := v.Run(context.Background(), client.SearchQuery{Text: " casaubon "})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), res.Total)
	assert.Equal(t, StatusSuccess, v.State().Status)
}
