package sqlite

import (
	"context"
	"errors"

	"github.com/readingclub/readingclub/internal/domain"
	"github.com/readingclub/readingclub/internal/store"
)

const questionColumns = `id, created_at, updated_at, week_id, question`

func scanQuestion(scanner rowScanner) (*domain.Question, error) {
	var (
		q                    domain.Question
		createdAt, updatedAt string
	)
	err := scanner.Scan(&q.ID, &createdAt, &updatedAt, &q.WeekID, &q.Question)
	if err != nil {
		return nil, err
	}
	if q.CreatedAt, q.UpdatedAt, err = scanTimestamps(createdAt, updatedAt); err != nil {
		return nil, err
	}
	return &q, nil
}

// CreateQuestion inserts a weekly question.
func (s *Store) CreateQuestion(ctx context.Context, question *domain.Question) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO questions (id, created_at, updated_at, week_id, question)
		VALUES (?, ?, ?, ?, ?)`,
		question.ID,
		formatTime(question.CreatedAt),
		formatTime(question.UpdatedAt),
		question.WeekID,
		question.Question,
	)
	if err != nil {
		return mapWriteError(err)
	}
	s.logIndexError("index question", question.ID, s.indexer().IndexQuestion(ctx, question))
	return nil
}

// GetQuestion retrieves a question by ID.
func (s *Store) GetQuestion(ctx context.Context, id string) (*domain.Question, error) {
	q, err := scanQuestion(s.db.QueryRowContext(ctx, `SELECT `+questionColumns+` FROM questions WHERE id = ?`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return q, nil
}

// ListQuestionsByWeek returns a week's questions in creation order.
func (s *Store) ListQuestionsByWeek(ctx context.Context, weekID string) ([]*domain.Question, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE week_id = ? ORDER BY created_at ASC, id ASC`, weekID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanQuestion)
}

const answerSelect = `
	SELECT a.id, a.created_at, a.updated_at, a.question_id, a.answer, u.id, u.username
	FROM answers a JOIN users u ON u.id = a.user_id`

func scanAnswer(scanner rowScanner) (*domain.Answer, error) {
	var (
		a                    domain.Answer
		createdAt, updatedAt string
	)
	err := scanner.Scan(&a.ID, &createdAt, &updatedAt, &a.QuestionID, &a.Answer, &a.User.ID, &a.User.Username)
	if err != nil {
		return nil, err
	}
	if a.CreatedAt, a.UpdatedAt, err = scanTimestamps(createdAt, updatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateAnswer inserts an answer.
// Returns store.ErrAlreadyExists when the user already answered the question.
func (s *Store) CreateAnswer(ctx context.Context, answer *domain.Answer) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO answers (id, created_at, updated_at, question_id, user_id, answer)
		VALUES (?, ?, ?, ?, ?, ?)`,
		answer.ID,
		formatTime(answer.CreatedAt),
		formatTime(answer.UpdatedAt),
		answer.QuestionID,
		answer.User.ID,
		answer.Answer,
	)
	if err != nil {
		return mapWriteError(err)
	}
	s.logIndexError("index answer", answer.ID, s.indexer().IndexAnswer(ctx, answer))
	return nil
}

// GetAnswer retrieves an answer by ID.
func (s *Store) GetAnswer(ctx context.Context, id string) (*domain.Answer, error) {
	a, err := scanAnswer(s.db.QueryRowContext(ctx, answerSelect+` WHERE a.id = ?`, id))
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

// GetAnswerByQuestionAndUser returns the user's answer to a question.
func (s *Store) GetAnswerByQuestionAndUser(ctx context.Context, questionID, userID string) (*domain.Answer, error) {
	a, err := scanAnswer(s.db.QueryRowContext(ctx,
		answerSelect+` WHERE a.question_id = ? AND a.user_id = ?`, questionID, userID))
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

// UpdateAnswer replaces an answer's text.
func (s *Store) UpdateAnswer(ctx context.Context, answer *domain.Answer) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE answers SET answer = ?, updated_at = ? WHERE id = ?`,
		answer.Answer, formatTime(answer.UpdatedAt), answer.ID)
	if err := expectOneRow(res, err); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.ErrNotFound.For("answer")
		}
		return err
	}
	s.logIndexError("index answer", answer.ID, s.indexer().IndexAnswer(ctx, answer))
	return nil
}

// DeleteAnswer removes an answer.
func (s *Store) DeleteAnswer(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM answers WHERE id = ?`, id)
	if err := expectOneRow(res, err); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.ErrNotFound.For("answer")
		}
		return err
	}
	s.logIndexError("delete answer", id, s.indexer().DeleteDocument(ctx, id))
	return nil
}

// ListAnswersByQuestion returns a question's answers in creation order.
func (s *Store) ListAnswersByQuestion(ctx context.Context, questionID string) ([]*domain.Answer, error) {
	rows, err := s.db.QueryContext(ctx,
		answerSelect+` WHERE a.question_id = ? ORDER BY a.created_at ASC, a.id ASC`, questionID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanAnswer)
}
