package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/readingclub/readingclub/internal/domain"
	domainerrors "github.com/readingclub/readingclub/internal/errors"
	"github.com/readingclub/readingclub/internal/id"
	"github.com/readingclub/readingclub/internal/store"
)

const alreadyAnsweredMessage = "you have already answered this question"

// QuestionService manages weekly discussion questions and members' answers.
// Each member answers a question at most once.
type QuestionService struct {
	store  store.Store
	logger *slog.Logger
}

// NewQuestionService creates a new question service.
func NewQuestionService(store store.Store, logger *slog.Logger) *QuestionService {
	return &QuestionService{store: store, logger: logger}
}

// CreateQuestionRequest adds a question to a week.
type CreateQuestionRequest struct {
	WeekID   string `json:"weekId" validate:"notblank"`
	Question string `json:"question" validate:"notblank,max=2000"`
}

// CreateAnswerRequest answers a question.
type CreateAnswerRequest struct {
	QuestionID string `json:"questionId" validate:"notblank"`
	Answer     string `json:"answer" validate:"notblank,max=10000"`
}

// UpdateAnswerRequest replaces an answer's text.
type UpdateAnswerRequest struct {
	Answer string `json:"answer" validate:"notblank,max=10000"`
}

// ListByWeek returns a week's questions in creation order.
func (s *QuestionService) ListByWeek(ctx context.Context, weekID string) ([]*domain.Question, error) {
	if _, err := s.store.GetWeek(ctx, weekID); err != nil {
		return nil, translate(err, "get week", "week not found")
	}
	questions, err := s.store.ListQuestionsByWeek(ctx, weekID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return questions, nil
}

// Get returns one question.
func (s *QuestionService) Get(ctx context.Context, questionID string) (*domain.Question, error) {
	q, err := s.store.GetQuestion(ctx, questionID)
	return q, translate(err, "get question", "question not found")
}

// Create adds a question. Admin only.
func (s *QuestionService) Create(ctx context.Context, actorID string, req CreateQuestionRequest) (*domain.Question, error) {
	if _, err := requireAdmin(ctx, s.store, actorID); err != nil {
		return nil, err
	}
	if err := validate.Validate(req); err != nil {
		return nil, err
	}
	if _, err := s.store.GetWeek(ctx, req.WeekID); err != nil {
		return nil, translate(err, "get week", "week not found")
	}

	questionID, err := id.Generate(id.PrefixQuestion)
	if err != nil {
		return nil, fmt.Errorf("generate question ID: %w", err)
	}
	q := &domain.Question{
		Entity:   domain.Entity{ID: questionID},
		WeekID:   req.WeekID,
		Question: req.Question,
	}
	q.InitTimestamps()

	if err := s.store.CreateQuestion(ctx, q); err != nil {
		return nil, translate(err, "create question", "week not found")
	}
	s.logger.Info("question created", "question_id", q.ID, "week_id", q.WeekID)
	return q, nil
}

// ListAnswers returns a question's answers in submission order.
func (s *QuestionService) ListAnswers(ctx context.Context, questionID string) ([]*domain.Answer, error) {
	if _, err := s.store.GetQuestion(ctx, questionID); err != nil {
		return nil, translate(err, "get question", "question not found")
	}
	answers, err := s.store.ListAnswersByQuestion(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	return answers, nil
}

// Answer records the actor's answer. A second answer to the same question
// is a conflict; the member edits the first one instead.
func (s *QuestionService) Answer(ctx context.Context, actorID string, req CreateAnswerRequest) (*domain.Answer, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}
	author, err := s.store.GetUser(ctx, actorID)
	if err != nil {
		return nil, translate(err, "get author", "user not found")
	}
	if _, err := s.store.GetQuestion(ctx, req.QuestionID); err != nil {
		return nil, translate(err, "get question", "question not found")
	}

	_, err = s.store.GetAnswerByQuestionAndUser(ctx, req.QuestionID, actorID)
	switch {
	case err == nil:
		return nil, domainerrors.Conflict(alreadyAnsweredMessage)
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("check existing answer: %w", err)
	}

	answerID, err := id.Generate(id.PrefixAnswer)
	if err != nil {
		return nil, fmt.Errorf("generate answer ID: %w", err)
	}
	a := &domain.Answer{
		Entity:     domain.Entity{ID: answerID},
		QuestionID: req.QuestionID,
		User:       author.Ref(),
		Answer:     req.Answer,
	}
	a.InitTimestamps()

	if err := s.store.CreateAnswer(ctx, a); err != nil {
		// Lost a race with a concurrent submission.
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflict(alreadyAnsweredMessage)
		}
		return nil, translate(err, "create answer", "question not found")
	}
	s.logger.Debug("answer created", "answer_id", a.ID, "question_id", a.QuestionID, "user_id", actorID)
	return a, nil
}

// UpdateAnswer replaces the text of the actor's own answer.
func (s *QuestionService) UpdateAnswer(ctx context.Context, actorID, answerID string, req UpdateAnswerRequest) (*domain.Answer, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}
	a, err := s.ownedAnswer(ctx, actorID, answerID)
	if err != nil {
		return nil, err
	}

	a.Answer = req.Answer
	a.Touch()
	if err := s.store.UpdateAnswer(ctx, a); err != nil {
		return nil, translate(err, "update answer", "answer not found")
	}
	return a, nil
}

// DeleteAnswer removes the actor's own answer.
func (s *QuestionService) DeleteAnswer(ctx context.Context, actorID, answerID string) error {
	if _, err := s.ownedAnswer(ctx, actorID, answerID); err != nil {
		return err
	}
	if err := s.store.DeleteAnswer(ctx, answerID); err != nil {
		return translate(err, "delete answer", "answer not found")
	}
	return nil
}

func (s *QuestionService) ownedAnswer(ctx context.Context, actorID, answerID string) (*domain.Answer, error) {
	a, err := s.store.GetAnswer(ctx, answerID)
	if err != nil {
		return nil, translate(err, "get answer", "answer not found")
	}
	if err := requireOwner(a.User.ID, actorID, "answers"); err != nil {
		return nil, err
	}
	return a, nil
}
