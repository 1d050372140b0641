package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/readingclub/readingclub/internal/domain"
	"github.com/readingclub/readingclub/internal/service"
)

func (s *Server) registerQuestionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listWeekQuestions",
		Method:      http.MethodGet,
		Path:        BasePath + "/questions/week/{weekId}",
		Summary:     "List week questions",
		Tags:        []string{"Questions"},
		Security:    bearer,
	}, s.handleListWeekQuestions)

	huma.Register(s.api, huma.Operation{
		OperationID: "getQuestion",
		Method:      http.MethodGet,
		Path:        BasePath + "/questions/{id}",
		Summary:     "Get question",
		Tags:        []string{"Questions"},
		Security:    bearer,
	}, s.handleGetQuestion)

	huma.Register(s.api, huma.Operation{
		OperationID: "createQuestion",
		Method:      http.MethodPost,
		Path:        BasePath + "/questions",
		Summary:     "Create question",
		Description: "Adds a discussion question to a week. Admin only.",
		Tags:        []string{"Questions"},
		Security:    bearer,
	}, s.handleCreateQuestion)

	huma.Register(s.api, huma.Operation{
		OperationID: "listQuestionAnswers",
		Method:      http.MethodGet,
		Path:        BasePath + "/questions/{id}/answers",
		Summary:     "List answers",
		Tags:        []string{"Answers"},
		Security:    bearer,
	}, s.handleListQuestionAnswers)

	huma.Register(s.api, huma.Operation{
		OperationID: "listAnswersByQuestion",
		Method:      http.MethodGet,
		Path:        BasePath + "/answers/question/{questionId}",
		Summary:     "List answers",
		Description: "Alias of listQuestionAnswers",
		Tags:        []string{"Answers"},
		Security:    bearer,
	}, s.handleListAnswersByQuestion)

	huma.Register(s.api, huma.Operation{
		OperationID: "createAnswer",
		Method:      http.MethodPost,
		Path:        BasePath + "/answers",
		Summary:     "Answer question",
		Description: "Each member answers a question once; a second answer is a conflict",
		Tags:        []string{"Answers"},
		Security:    bearer,
	}, s.handleCreateAnswer)

	huma.Register(s.api, huma.Operation{
		OperationID: "createQuestionAnswer",
		Method:      http.MethodPost,
		Path:        BasePath + "/questions/answers",
		Summary:     "Answer question",
		Description: "Alias of createAnswer",
		Tags:        []string{"Answers"},
		Security:    bearer,
	}, s.handleCreateAnswer)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateAnswer",
		Method:      http.MethodPut,
		Path:        BasePath + "/answers/{id}",
		Summary:     "Edit answer",
		Description: "Only the author may edit an answer",
		Tags:        []string{"Answers"},
		Security:    bearer,
	}, s.handleUpdateAnswer)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteAnswer",
		Method:        http.MethodDelete,
		Path:          BasePath + "/answers/{id}",
		Summary:       "Delete answer",
		Description:   "Only the author may delete an answer",
		Tags:          []string{"Answers"},
		Security:      bearer,
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteAnswer)
}

// === DTOs ===

// WeekQuestionsInput addresses a week's questions.
type WeekQuestionsInput struct {
	WeekID string `path:"weekId" doc:"Week ID"`
}

// QuestionIDInput addresses a question.
type QuestionIDInput struct {
	ID string `path:"id" doc:"Question ID"`
}

// AnswersByQuestionInput addresses a question's answers.
type AnswersByQuestionInput struct {
	QuestionID string `path:"questionId" doc:"Question ID"`
}

// AnswerIDInput addresses an answer.
type AnswerIDInput struct {
	ID string `path:"id" doc:"Answer ID"`
}

// QuestionOutput wraps a question for Huma.
type QuestionOutput struct {
	Body *domain.Question
}

// QuestionsOutput wraps a question list for Huma.
type QuestionsOutput struct {
	Body []*domain.Question
}

// AnswerOutput wraps an answer for Huma.
type AnswerOutput struct {
	Body *domain.Answer
}

// AnswersOutput wraps an answer list for Huma.
type AnswersOutput struct {
	Body []*domain.Answer
}

// CreateQuestionInput wraps a new question.
type CreateQuestionInput struct {
	Body struct {
		WeekID   string `json:"weekId"`
		Question string `json:"question"`
	}
}

// CreateAnswerInput wraps a new answer.
type CreateAnswerInput struct {
	Body struct {
		QuestionID string `json:"questionId"`
		Answer     string `json:"answer"`
	}
}

// UpdateAnswerInput wraps an answer edit.
type UpdateAnswerInput struct {
	ID   string `path:"id" doc:"Answer ID"`
	Body struct {
		Answer string `json:"answer"`
	}
}

// === Handlers ===

func (s *Server) handleListWeekQuestions(ctx context.Context, input *WeekQuestionsInput) (*QuestionsOutput, error) {
	if _, err := GetUser(ctx); err != nil {
		return nil, err
	}
	questions, err := s.services.Question.ListByWeek(ctx, input.WeekID)
	if err != nil {
		return nil, err
	}
	return &QuestionsOutput{Body: questions}, nil
}

func (s *Server) handleGetQuestion(ctx context.Context, input *QuestionIDInput) (*QuestionOutput, error) {
	if _, err := GetUser(ctx); err != nil {
		return nil, err
	}
	q, err := s.services.Question.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &QuestionOutput{Body: q}, nil
}

func (s *Server) handleCreateQuestion(ctx context.Context, input *CreateQuestionInput) (*QuestionOutput, error) {
	actorID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}
	q, err := s.services.Question.Create(ctx, actorID, service.CreateQuestionRequest{
		WeekID:   input.Body.WeekID,
		Question: input.Body.Question,
	})
	if err != nil {
		return nil, err
	}
	return &QuestionOutput{Body: q}, nil
}

func (s *Server) handleListQuestionAnswers(ctx context.Context, input *QuestionIDInput) (*AnswersOutput, error) {
	return s.listAnswers(ctx, input.ID)
}

func (s *Server) handleListAnswersByQuestion(ctx context.Context, input *AnswersByQuestionInput) (*AnswersOutput, error) {
	return s.listAnswers(ctx, input.QuestionID)
}

func (s *Server) listAnswers(ctx context.Context, questionID string) (*AnswersOutput, error) {
	if _, err := GetUser(ctx); err != nil {
		return nil, err
	}
	answers, err := s.services.Question.ListAnswers(ctx, questionID)
	if err != nil {
		return nil, err
	}
	return &AnswersOutput{Body: answers}, nil
}

func (s *Server) handleCreateAnswer(ctx context.Context, input *CreateAnswerInput) (*AnswerOutput, error) {
	actorID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}
	a, err := s.services.Question.Answer(ctx, actorID, service.CreateAnswerRequest{
		QuestionID: input.Body.QuestionID,
		Answer:     input.Body.Answer,
	})
	if err != nil {
		return nil, err
	}
	return &AnswerOutput{Body: a}, nil
}

func (s *Server) handleUpdateAnswer(ctx context.Context, input *UpdateAnswerInput) (*AnswerOutput, error) {
	actorID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}
	a, err := s.services.Question.UpdateAnswer(ctx, actorID, input.ID, service.UpdateAnswerRequest{Answer: input.Body.Answer})
	if err != nil {
		return nil, err
	}
	return &AnswerOutput{Body: a}, nil
}

func (s *Server) handleDeleteAnswer(ctx context.Context, input *AnswerIDInput) (*struct{}, error) {
	actorID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.services.Question.DeleteAnswer(ctx, actorID, input.ID); err != nil {
		return nil, err
	}
	return nil, nil
}
