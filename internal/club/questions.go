package club

import (
	"context"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/readingclub/readingclub/internal/client"
	"github.com/readingclub/readingclub/internal/domain"
	"github.com/readingclub/readingclub/internal/session"
)

// QuestionAPI is the part of the server QuestionBoard needs.
type QuestionAPI interface {
	Questions(ctx context.Context, weekID string) ([]domain.Question, error)
	Answers(ctx context.Context, questionID string) ([]domain.Answer, error)
	SubmitAnswer(ctx context.Context, questionID, answer string) (*domain.Answer, error)
}

// answerFetchLimit bounds concurrent answer requests per board.
const answerFetchLimit = 8

// QuestionItem is a question with its answers split by author.
type QuestionItem struct {
	Question domain.Question
	Mine     *domain.Answer
	Others   []domain.Answer
	// Note is set when the answers could not be loaded.
	Note string
}

func newQuestionItem(q domain.Question, answers []domain.Answer, userID string) QuestionItem {
	item := QuestionItem{Question: q, Others: make([]domain.Answer, 0, len(answers))}
	for i := range answers {
		if !domain.OwnedBy(answers[i].User.ID, userID) {
			item.Others = append(item.Others, answers[i])
			continue
		}
		// Every own answer stays out of Others; the first one is shown.
		if item.Mine == nil {
			mine := answers[i]
			item.Mine = &mine
		}
	}
	return item
}

// QuestionBoard is one week's discussion questions and answers.
type QuestionBoard struct {
	api      QuestionAPI
	sessions *session.Manager
	weekID   string
	items    Loader[[]QuestionItem]
}

// NewQuestionBoard creates the board for weekID.
func NewQuestionBoard(api QuestionAPI, sessions *session.Manager, weekID string) *QuestionBoard {
	return &QuestionBoard{api: api, sessions: sessions, weekID: weekID}
}

// Load fetches the questions, then every question's answers concurrently.
// A failed answer fetch leaves that question with no answers and a note;
// the others still load.
func (b *QuestionBoard) Load(ctx context.Context) error {
	s, _ := b.sessions.Current()

	return b.items.Load(ctx, "Failed to load questions", func(ctx context.Context) ([]QuestionItem, error) {
		questions, err := b.api.Questions(ctx, b.weekID)
		if err != nil {
			return nil, err
		}

		items := make([]QuestionItem, len(questions))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(answerFetchLimit)
		for i, q := range questions {
			g.Go(func() error {
				answers, err := b.api.Answers(gctx, q.ID)
				if err != nil {
					items[i] = QuestionItem{Question: q, Others: []domain.Answer{}, Note: Message(noticeFor(err, "Failed to load answers"))}
					return nil
				}
				items[i] = newQuestionItem(q, answers, s.UserID)
				return nil
			})
		}
		_ = g.Wait()

		return items, ctx.Err()
	})
}

// State returns the board's load state.
func (b *QuestionBoard) State() LoadState[[]QuestionItem] {
	return b.items.Snapshot()
}

// Item returns the board entry for questionID.
func (b *QuestionBoard) Item(questionID string) (QuestionItem, bool) {
	items := b.items.Snapshot().Data
	i := slices.IndexFunc(items, func(it QuestionItem) bool { return it.Question.ID == questionID })
	if i < 0 {
		return QuestionItem{}, false
	}
	return items[i], true
}

// Submit answers a question the member has not answered yet, then reloads
// that question's answers.
func (b *QuestionBoard) Submit(ctx context.Context, questionID, answer string) (*domain.Answer, error) {
	s, ok := b.sessions.Current()
	if !ok {
		return nil, errNotSignedIn
	}
	item, found := b.Item(questionID)
	if !found {
		return nil, refuse(client.KindNotFound, "Question not found")
	}
	if item.Mine != nil {
		return nil, refuse(client.KindConflict, "You have already answered this question")
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, refuse(client.KindValidation, "Answer cannot be empty")
	}

	created, err := b.api.SubmitAnswer(ctx, questionID, answer)
	if err != nil {
		return nil, noticeFor(err, "Failed to submit answer")
	}

	refreshed := newQuestionItem(item.Question, append([]domain.Answer{*created}, item.Others...), s.UserID)
	if answers, err := b.api.Answers(ctx, questionID); err == nil {
		refreshed = newQuestionItem(item.Question, answers, s.UserID)
	}
	b.items.Update(func(items []QuestionItem) []QuestionItem {
		items = slices.Clone(items)
		for i := range items {
			if items[i].Question.ID == questionID {
				items[i] = refreshed
			}
		}
		return items
	})
	return created, nil
}

// Close cancels a load in flight.
func (b *QuestionBoard) Close() {
	b.items.Close()
}
