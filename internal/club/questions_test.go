package club

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readingclub/readingclub/internal/client"
	"github.com/readingclub/readingclub/internal/domain"
)

func question(id string) domain.Question {
	return domain.Question{Entity: domain.Entity{ID: id}, WeekID: "week-1", Question: "Why " + id + "?"}
}

func answer(id, questionID, userID string) domain.Answer {
	return domain.Answer{Entity: domain.Entity{ID: id}, QuestionID: questionID, User: ref(userID, userID), Answer: "because"}
}

func TestQuestionBoard_SplitsMineAndOthers(t *testing.T) {
	api := &fakeAPI{
		t:         t,
		questions: func(string) ([]domain.Question, error) { return []domain.Question{question("q-1"), question("q-2")}, nil },
		answers: func(_ context.Context, questionID string) ([]domain.Answer, error) {
			if questionID == "q-1" {
				return []domain.Answer{answer("a-1", "q-1", "user-bob"), answer("a-2", "q-1", "user-alice")}, nil
			}
			return []domain.Answer{answer("a-3", "q-2", "user-bob")}, nil
		},
	}
	board := NewQuestionBoard(api, signedIn(t, 0), "week-1")
	require.NoError(t, board.Load(context.Background()))

	q1, ok := board.Item("q-1")
	require.True(t, ok)
	require.NotNil(t, q1.Mine)
	assert.Equal(t, "a-2", q1.Mine.ID)
	require.Len(t, q1.Others, 1)
	assert.Equal(t, "a-1", q1.Others[0].ID)

	q2, _ := board.Item("q-2")
	assert.Nil(t, q2.Mine)
	assert.Len(t, q2.Others, 1)
}

func TestQuestionBoard_FetchesAnswersConcurrently(t *testing.T) {
	const n = 4
	var inFlight, peak atomic.Int32
	var wg sync.WaitGroup
	wg.Add(n)

	questions := make([]domain.Question, n)
	for i := range questions {
		questions[i] = question(string(rune('a' + i)))
	}

	api := &fakeAPI{
		t:         t,
		questions: func(string) ([]domain.Question, error) { return questions, nil },
		answers: func(ctx context.Context, _ string) ([]domain.Answer, error) {
			cur := inFlight.Add(1)
			for {
				old := peak.Load()
				if cur <= old || peak.CompareAndSwap(old, cur) {
					break
				}
			}
			// Every fetch waits until all have started.
			wg.Done()
			waitCh := make(chan struct{})
			go func() { wg.Wait(); close(waitCh) }()
			select {
			case <-waitCh:
			case <-time.After(5 * time.Second):
				return nil, errors.New("fetches were serialised")
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			inFlight.Add(-1)
			return []domain.Answer{}, nil
		},
	}

	board := NewQuestionBoard(api, signedIn(t, 0), "week-1")
	require.NoError(t, board.Load(context.Background()))
	assert.Equal(t, int32(n), peak.Load())
	for _, item := range board.State().Data {
		assert.Empty(t, item.Note)
	}
}

func TestNewQuestionItem_KeepsEveryOwnAnswerOutOfOthers(t *testing.T) {
	answers := []domain.Answer{
		answer("a-1", "q-1", "user-alice"),
		answer("a-2", "q-1", "user-bob"),
		answer("a-3", "q-1", "user-alice"),
	}

	item := newQuestionItem(question("q-1"), answers, "user-alice")

	require.NotNil(t, item.Mine)
	assert.Equal(t, "a-1", item.Mine.ID)
	require.Len(t, item.Others, 1)
	assert.Equal(t, "a-2", item.Others[0].ID)
}

func TestQuestionBoard_OneFailedAnswerFetch(t *testing.T) {
	api := &fakeAPI{
		t:         t,
		questions: func(string) ([]domain.Question, error) { return []domain.Question{question("q-1"), question("q-2")}, nil },
		answers: func(_ context.Context, questionID string) ([]domain.Answer, error) {
			if questionID == "q-1" {
				return nil, apiErr(500, "INTERNAL", "")
			}
			return []domain.Answer{answer("a-3", "q-2", "user-bob")}, nil
		},
	}
	board := NewQuestionBoard(api, signedIn(t, 0), "week-1")
	require.NoError(t, board.Load(context.Background()))

	q1, _ := board.Item("q-1")
	assert.Equal(t, "Failed to load answers", q1.Note)
	assert.Empty(t, q1.Others)

	q2, _ := board.Item("q-2")
	assert.Empty(t, q2.Note)
	assert.Len(t, q2.Others, 1)
}

func TestQuestionBoard_Submit(t *testing.T) {
	var stored []domain.Answer
	submits := 0
	api := &fakeAPI{
		t:         t,
		questions: func(string) ([]domain.Question, error) { return []domain.Question{question("q-1")}, nil },
		answers: func(context.Context, string) ([]domain.Answer, error) {
			return append([]domain.Answer{answer("a-1", "q-1", "user-bob")}, stored...), nil
		},
		submitAnswer: func(questionID, text string) (*domain.Answer, error) {
			submits++
			a := answer("a-mine", questionID, "user-alice")
			a.Answer = text
			stored = append(stored, a)
			return &a, nil
		},
	}
	board := NewQuestionBoard(api, signedIn(t, 0), "week-1")
	ctx := context.Background()
	require.NoError(t, board.Load(ctx))

	_, err := board.Submit(ctx, "q-1", "  ")
	requireNotice(t, err, client.KindValidation, "Answer cannot be empty")

	_, err = board.Submit(ctx, "q-1", "Ambition")
	require.NoError(t, err)

	item, _ := board.Item("q-1")
	require.NotNil(t, item.Mine)
	assert.Equal(t, "Ambition", item.Mine.Answer)
	require.Len(t, item.Others, 1)
	assert.Equal(t, "a-1", item.Others[0].ID)

	_, err = board.Submit(ctx, "q-1", "Again")
	requireNotice(t, err, client.KindConflict, "You have already answered this question")
	assert.Equal(t, 1, submits)

	_, err = board.Submit(ctx, "q-9", "x")
	requireNotice(t, err, client.KindNotFound, "Question not found")
}
