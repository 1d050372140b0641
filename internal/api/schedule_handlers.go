package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/readingclub/readingclub/internal/domain"
	domainerrors "github.com/readingclub/readingclub/internal/errors"
	"github.com/readingclub/readingclub/internal/service"
)

func (s *Server) registerScheduleRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listWeeksByBook",
		Method:      http.MethodGet,
		Path:        BasePath + "/weeks/book/{bookId}",
		Summary:     "List book weeks",
		Description: "Alias of listBookWeeks",
		Tags:        []string{"Schedule"},
		Security:    bearer,
	}, s.handleListWeeksByBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "getWeek",
		Method:      http.MethodGet,
		Path:        BasePath + "/weeks/{id}",
		Summary:     "Get week",
		Tags:        []string{"Schedule"},
		Security:    bearer,
	}, s.handleGetWeek)

	huma.Register(s.api, huma.Operation{
		OperationID: "createWeek",
		Method:      http.MethodPost,
		Path:        BasePath + "/weeks",
		Summary:     "Create week",
		Description: "Schedules a week of a book. Admin only.",
		Tags:        []string{"Schedule"},
		Security:    bearer,
	}, s.handleCreateWeek)

	huma.Register(s.api, huma.Operation{
		OperationID: "listWeekChapters",
		Method:      http.MethodGet,
		Path:        BasePath + "/weeks/{id}/chapters",
		Summary:     "List week chapters",
		Description: "Returns the week's chapters ordered by number, with comment counts",
		Tags:        []string{"Schedule"},
		Security:    bearer,
	}, s.handleListWeekChapters)

	huma.Register(s.api, huma.Operation{
		OperationID: "listChaptersByWeek",
		Method:      http.MethodGet,
		Path:        BasePath + "/chapters/week/{weekId}",
		Summary:     "List week chapters",
		Description: "Alias of listWeekChapters",
		Tags:        []string{"Schedule"},
		Security:    bearer,
	}, s.handleListChaptersByWeek)

	huma.Register(s.api, huma.Operation{
		OperationID: "getChapter",
		Method:      http.MethodGet,
		Path:        BasePath + "/chapters/{id}",
		Summary:     "Get chapter",
		Tags:        []string{"Schedule"},
		Security:    bearer,
	}, s.handleGetChapter)

	huma.Register(s.api, huma.Operation{
		OperationID: "createChapter",
		Method:      http.MethodPost,
		Path:        BasePath + "/chapters",
		Summary:     "Create chapter",
		Description: "Assigns a chapter to a week. Admin only.",
		Tags:        []string{"Schedule"},
		Security:    bearer,
	}, s.handleCreateChapter)
}

// === DTOs ===

// WeekIDInput addresses a week.
type WeekIDInput struct {
	ID string `path:"id" doc:"Week ID"`
}

// WeeksByBookInput addresses a book's weeks.
type WeeksByBookInput struct {
	BookID string `path:"bookId" doc:"Book ID"`
}

// ChaptersByWeekInput addresses a week's chapters.
type ChaptersByWeekInput struct {
	WeekID string `path:"weekId" doc:"Week ID"`
}

// ChapterIDInput addresses a chapter.
type ChapterIDInput struct {
	ID string `path:"id" doc:"Chapter ID"`
}

// WeekOutput wraps a week for Huma.
type WeekOutput struct {
	Body *domain.Week
}

// WeeksOutput wraps a week list for Huma.
type WeeksOutput struct {
	Body []*domain.Week
}

// ChapterOutput wraps a chapter for Huma.
type ChapterOutput struct {
	Body *domain.Chapter
}

// ChaptersOutput wraps a chapter list for Huma.
type ChaptersOutput struct {
	Body []*domain.Chapter
}

// CreateWeekInput wraps a new week. Dates are calendar dates.
type CreateWeekInput struct {
	Body struct {
		BookID     string `json:"bookId"`
		WeekNumber int    `json:"weekNumber" minimum:"1"`
		Title      string `json:"title,omitempty"`
		StartDate  string `json:"startDate,omitempty" format:"date" doc:"YYYY-MM-DD"`
		EndDate    string `json:"endDate,omitempty" format:"date" doc:"YYYY-MM-DD"`
	}
}

// CreateChapterInput wraps a new chapter.
type CreateChapterInput struct {
	Body struct {
		WeekID        string `json:"weekId"`
		ChapterNumber int    `json:"chapterNumber" minimum:"1"`
		Title         string `json:"title,omitempty"`
	}
}

// === Handlers ===

func (s *Server) handleListWeeksByBook(ctx context.Context, input *WeeksByBookInput) (*WeeksOutput, error) {
	return s.listWeeks(ctx, input.BookID)
}

func (s *Server) listWeeks(ctx context.Context, bookID string) (*WeeksOutput, error) {
	if _, err := GetUser(ctx); err != nil {
		return nil, err
	}
	weeks, err := s.services.Schedule.ListWeeks(ctx, bookID)
	if err != nil {
		return nil, err
	}
	return &WeeksOutput{Body: weeks}, nil
}

func (s *Server) handleGetWeek(ctx context.Context, input *WeekIDInput) (*WeekOutput, error) {
	if _, err := GetUser(ctx); err != nil {
		return nil, err
	}
	w, err := s.services.Schedule.GetWeek(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &WeekOutput{Body: w}, nil
}

func (s *Server) handleCreateWeek(ctx context.Context, input *CreateWeekInput) (*WeekOutput, error) {
	actorID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	start, err := parseOptionalDate("startDate", input.Body.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalDate("endDate", input.Body.EndDate)
	if err != nil {
		return nil, err
	}

	w, err := s.services.Schedule.CreateWeek(ctx, actorID, service.CreateWeekRequest{
		BookID:     input.Body.BookID,
		WeekNumber: input.Body.WeekNumber,
		Title:      input.Body.Title,
		StartDate:  start,
		EndDate:    end,
	})
	if err != nil {
		return nil, err
	}
	return &WeekOutput{Body: w}, nil
}

func (s *Server) handleListWeekChapters(ctx context.Context, input *WeekIDInput) (*ChaptersOutput, error) {
	return s.listChapters(ctx, input.ID)
}

func (s *Server) handleListChaptersByWeek(ctx context.Context, input *ChaptersByWeekInput) (*ChaptersOutput, error) {
	return s.listChapters(ctx, input.WeekID)
}

func (s *Server) listChapters(ctx context.Context, weekID string) (*ChaptersOutput, error) {
	if _, err := GetUser(ctx); err != nil {
		return nil, err
	}
	chapters, err := s.services.Schedule.ListChapters(ctx, weekID)
	if err != nil {
		return nil, err
	}
	return &ChaptersOutput{Body: chapters}, nil
}

func (s *Server) handleGetChapter(ctx context.Context, input *ChapterIDInput) (*ChapterOutput, error) {
	if _, err := GetUser(ctx); err != nil {
		return nil, err
	}
	c, err := s.services.Schedule.GetChapter(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ChapterOutput{Body: c}, nil
}

func (s *Server) handleCreateChapter(ctx context.Context, input *CreateChapterInput) (*ChapterOutput, error) {
	actorID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.services.Schedule.CreateChapter(ctx, actorID, service.CreateChapterRequest{
		WeekID:        input.Body.WeekID,
		ChapterNumber: input.Body.ChapterNumber,
		Title:         input.Body.Title,
	})
	if err != nil {
		return nil, err
	}
	return &ChapterOutput{Body: c}, nil
}

func parseOptionalDate(field, s string) (domain.Date, error) {
	if s == "" {
		return domain.Date{}, nil
	}
	d, err := domain.ParseDate(s)
	if err != nil {
		return domain.Date{}, domainerrors.Validationf("%s must be a date in YYYY-MM-DD form", field)
	}
	return d, nil
}
