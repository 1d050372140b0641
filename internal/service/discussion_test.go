package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/readingclub/readingclub/internal/errors"
)

func TestCommentService_OwnerOnly(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	_, _, chapter := env.seedSchedule(t, alice)

	c, err := env.comments.Create(ctx, bob.ID, CreateCommentRequest{ChapterID: chapter.ID, Content: "Dorothea is wonderful"})
	require.NoError(t, err)
	assert.Equal(t, bob.ID, c.User.ID)
	assert.Equal(t, "bob", c.User.Username)

	// Admins get no special treatment on other people's comments.
	_, err = env.comments.Update(ctx, alice.ID, c.ID, UpdateCommentRequest{Content: "edited"})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	assert.ErrorIs(t, env.comments.Delete(ctx, alice.ID, c.ID), domainerrors.ErrForbidden)

	updated, err := env.comments.Update(ctx, bob.ID, c.ID, UpdateCommentRequest{Content: "Dorothea is remarkable"})
	require.NoError(t, err)
	assert.Equal(t, "Dorothea is remarkable", updated.Content)

	require.NoError(t, env.comments.Delete(ctx, bob.ID, c.ID))
	assert.ErrorIs(t, env.comments.Delete(ctx, bob.ID, c.ID), domainerrors.ErrNotFound)
}

func TestCommentService_ListNewestFirst(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	_, _, chapter := env.seedSchedule(t, alice)

	for _, text := range []string{"first", "second", "third"} {
		_, err := env.comments.Create(ctx, alice.ID, CreateCommentRequest{ChapterID: chapter.ID, Content: text})
		require.NoError(t, err)
	}

	comments, err := env.comments.ListByChapter(ctx, chapter.ID)
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "third", comments[0].Content)
	assert.Equal(t, "first", comments[2].Content)

	got, err := env.schedule.GetChapter(ctx, chapter.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.CommentCount)
}

func TestCommentService_Validation(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	_, _, chapter := env.seedSchedule(t, alice)

	_, err := env.comments.Create(ctx, alice.ID, CreateCommentRequest{ChapterID: chapter.ID, Content: "   "})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = env.comments.Create(ctx, alice.ID, CreateCommentRequest{ChapterID: "chap-missing", Content: "hello"})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestQuestionService_OneAnswerPerMember(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	_, week, _ := env.seedSchedule(t, alice)

	_, err := env.questions.Create(ctx, bob.ID, CreateQuestionRequest{WeekID: week.ID, Question: "Why Casaubon?"})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	q, err := env.questions.Create(ctx, alice.ID, CreateQuestionRequest{WeekID: week.ID, Question: "Why Casaubon?"})
	require.NoError(t, err)

	a, err := env.questions.Answer(ctx, bob.ID, CreateAnswerRequest{QuestionID: q.ID, Answer: "She wants to be useful."})
	require.NoError(t, err)

	_, err = env.questions.Answer(ctx, bob.ID, CreateAnswerRequest{QuestionID: q.ID, Answer: "Again"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrConflict)

	_, err = env.questions.Answer(ctx, alice.ID, CreateAnswerRequest{QuestionID: q.ID, Answer: "Ambition."})
	require.NoError(t, err)

	answers, err := env.questions.ListAnswers(ctx, q.ID)
	require.NoError(t, err)
	require.Len(t, answers, 2)
	assert.Equal(t, a.ID, answers[0].ID)

	_, err = env.questions.UpdateAnswer(ctx, alice.ID, a.ID, UpdateAnswerRequest{Answer: "hijack"})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	updated, err := env.questions.UpdateAnswer(ctx, bob.ID, a.ID, UpdateAnswerRequest{Answer: "She mistakes learning for wisdom."})
	require.NoError(t, err)
	assert.Equal(t, "She mistakes learning for wisdom.", updated.Answer)

	// Deleting frees the slot for a new answer.
	require.NoError(t, env.questions.DeleteAnswer(ctx, bob.ID, a.ID))
	_, err = env.questions.Answer(ctx, bob.ID, CreateAnswerRequest{QuestionID: q.ID, Answer: "Second thoughts."})
	assert.NoError(t, err)
}

func TestQuestionService_ListByWeek(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	alice := env.register(t, "alice")
	_, week, _ := env.seedSchedule(t, alice)

	for _, text := range []string{"One?", "Two?"} {
		_, err := env.questions.Create(ctx, alice.ID, CreateQuestionRequest{WeekID: week.ID, Question: text})
		require.NoError(t, err)
	}

	questions, err := env.questions.ListByWeek(ctx, week.ID)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "One?", questions[0].Question)

	_, err = env.questions.ListByWeek(ctx, "week-missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = env.questions.ListAnswers(ctx, "q-missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
