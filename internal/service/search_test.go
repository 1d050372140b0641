package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/readingclub/readingclub/internal/errors"
	"github.com/readingclub/readingclub/internal/search"
)

func seedDiscussion(t *testing.T, env *testEnv) {
	t.Helper()
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	_, week, chapter := env.seedSchedule(t, alice)

	_, err := env.comments.Create(ctx, bob.ID, CreateCommentRequest{ChapterID: chapter.ID, Content: "The provincial setting feels claustrophobic"})
	require.NoError(t, err)
	q, err := env.questions.Create(ctx, alice.ID, CreateQuestionRequest{WeekID: week.ID, Question: "Is the marriage doomed from the start?"})
	require.NoError(t, err)
	_, err = env.questions.Answer(ctx, bob.ID, CreateAnswerRequest{QuestionID: q.ID, Answer: "The marriage is a mistake of idealism"})
	require.NoError(t, err)
}

func TestSearchService_FollowsWrites(t *testing.T) {
	env := setupServices(t)
	seedDiscussion(t, env)

	result, err := env.search.Search(context.Background(), SearchRequest{Query: "marriage"})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), result.Total)

	result, err = env.search.Search(context.Background(), SearchRequest{Query: "marriage", Types: "answer"})
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, search.DocTypeAnswer, result.Hits[0].Type)
	assert.Equal(t, "bob", result.Hits[0].Author)
}

func TestSearchService_RejectsBadParams(t *testing.T) {
	env := setupServices(t)

	_, err := env.search.Search(context.Background(), SearchRequest{Query: "x", Types: "book"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = env.search.Search(context.Background(), SearchRequest{Query: "x", Sort: "oldest"})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestSearchService_ReindexAll(t *testing.T) {
	env := setupServices(t)
	seedDiscussion(t, env)

	require.NoError(t, env.index.Rebuild())
	count, err := env.search.DocumentCount()
	require.NoError(t, err)
	require.Zero(t, count)

	require.NoError(t, env.search.ReindexAll(context.Background()))

	count, err = env.search.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)
}
