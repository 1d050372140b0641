package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/readingclub/readingclub/internal/domain"
	domainerrors "github.com/readingclub/readingclub/internal/errors"
	"github.com/readingclub/readingclub/internal/id"
	"github.com/readingclub/readingclub/internal/store"
)

// ScheduleService manages a book's weeks and the chapters assigned to them.
type ScheduleService struct {
	store  store.Store
	logger *slog.Logger
}

// NewScheduleService creates a new schedule service.
func NewScheduleService(store store.Store, logger *slog.Logger) *ScheduleService {
	return &ScheduleService{store: store, logger: logger}
}

// CreateWeekRequest schedules a week of a book.
type CreateWeekRequest struct {
	BookID     string      `json:"bookId" validate:"notblank"`
	WeekNumber int         `json:"weekNumber" validate:"gte=1"`
	Title      string      `json:"title" validate:"max=300"`
	StartDate  domain.Date `json:"startDate"`
	EndDate    domain.Date `json:"endDate"`
}

// CreateChapterRequest assigns a chapter to a week.
type CreateChapterRequest struct {
	WeekID        string `json:"weekId" validate:"notblank"`
	ChapterNumber int    `json:"chapterNumber" validate:"gte=1"`
	Title         string `json:"title" validate:"max=300"`
}

// ListWeeks returns a book's weeks ordered by number.
func (s *ScheduleService) ListWeeks(ctx context.Context, bookID string) ([]*domain.Week, error) {
	if _, err := s.store.GetBook(ctx, bookID); err != nil {
		return nil, translate(err, "get book", "book not found")
	}
	weeks, err := s.store.ListWeeksByBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("list weeks: %w", err)
	}
	return weeks, nil
}

// GetWeek returns one week.
func (s *ScheduleService) GetWeek(ctx context.Context, weekID string) (*domain.Week, error) {
	w, err := s.store.GetWeek(ctx, weekID)
	return w, translate(err, "get week", "week not found")
}

// CreateWeek schedules a week. Admin only.
func (s *ScheduleService) CreateWeek(ctx context.Context, actorID string, req CreateWeekRequest) (*domain.Week, error) {
	if _, err := requireAdmin(ctx, s.store, actorID); err != nil {
		return nil, err
	}
	if err := validate.Validate(req); err != nil {
		return nil, err
	}
	if !req.StartDate.IsZero() && !req.EndDate.IsZero() && req.EndDate.Before(req.StartDate.Time) {
		return nil, domainerrors.Validation("endDate must not be before startDate")
	}
	if _, err := s.store.GetBook(ctx, req.BookID); err != nil {
		return nil, translate(err, "get book", "book not found")
	}

	weekID, err := id.Generate(id.PrefixWeek)
	if err != nil {
		return nil, fmt.Errorf("generate week ID: %w", err)
	}
	w := &domain.Week{
		Entity:     domain.Entity{ID: weekID},
		BookID:     req.BookID,
		WeekNumber: req.WeekNumber,
		Title:      req.Title,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	}
	w.InitTimestamps()

	if err := s.store.CreateWeek(ctx, w); err != nil {
		return nil, translate(err, "create week", fmt.Sprintf("week %d already exists for this book", req.WeekNumber))
	}
	s.logger.Info("week created", "week_id", w.ID, "book_id", w.BookID, "number", w.WeekNumber)
	return w, nil
}

// ListChapters returns a week's chapters ordered by number.
func (s *ScheduleService) ListChapters(ctx context.Context, weekID string) ([]*domain.Chapter, error) {
	if _, err := s.store.GetWeek(ctx, weekID); err != nil {
		return nil, translate(err, "get week", "week not found")
	}
	chapters, err := s.store.ListChaptersByWeek(ctx, weekID)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	return chapters, nil
}

// GetChapter returns one chapter.
func (s *ScheduleService) GetChapter(ctx context.Context, chapterID string) (*domain.Chapter, error) {
	c, err := s.store.GetChapter(ctx, chapterID)
	return c, translate(err, "get chapter", "chapter not found")
}

// CreateChapter assigns a chapter to a week. Admin only.
func (s *ScheduleService) CreateChapter(ctx context.Context, actorID string, req CreateChapterRequest) (*domain.Chapter, error) {
	if _, err := requireAdmin(ctx, s.store, actorID); err != nil {
		return nil, err
	}
	if err := validate.Validate(req); err != nil {
		return nil, err
	}
	if _, err := s.store.GetWeek(ctx, req.WeekID); err != nil {
		return nil, translate(err, "get week", "week not found")
	}

	chapterID, err := id.Generate(id.PrefixChapter)
	if err != nil {
		return nil, fmt.Errorf("generate chapter ID: %w", err)
	}
	c := &domain.Chapter{
		Entity:        domain.Entity{ID: chapterID},
		WeekID:        req.WeekID,
		ChapterNumber: req.ChapterNumber,
		Title:         req.Title,
	}
	c.InitTimestamps()

	if err := s.store.CreateChapter(ctx, c); err != nil {
		return nil, translate(err, "create chapter", fmt.Sprintf("chapter %d already exists in this week", req.ChapterNumber))
	}
	s.logger.Info("chapter created", "chapter_id", c.ID, "week_id", c.WeekID, "number", c.ChapterNumber)
	return c, nil
}
