package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readingclub/readingclub/internal/domain"
	domainerrors "github.com/readingclub/readingclub/internal/errors"
)

func TestBookService_CurrentWithoutActiveBook(t *testing.T) {
	env := setupServices(t)

	_, err := env.books.Current(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	assert.Equal(t, "no active book", err.Error())
}

func TestBookService_ActivateSwitchesBooks(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	admin := env.register(t, "alice")

	first, err := env.books.Create(ctx, admin.ID, CreateBookRequest{Title: "Emma", Author: "Jane Austen", TotalChapters: 55})
	require.NoError(t, err)
	assert.False(t, first.IsActive)
	second, err := env.books.Create(ctx, admin.ID, CreateBookRequest{Title: "Persuasion", Author: "Jane Austen", TotalChapters: 24})
	require.NoError(t, err)

	_, err = env.books.Activate(ctx, admin.ID, first.ID)
	require.NoError(t, err)
	_, err = env.books.Activate(ctx, admin.ID, second.ID)
	require.NoError(t, err)

	current, err := env.books.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, current.ID)

	books, err := env.books.List(ctx)
	require.NoError(t, err)
	active := 0
	for _, b := range books {
		if b.IsActive {
			active++
		}
	}
	assert.Equal(t, 1, active)
}

func TestBookService_AdminOnly(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	env.register(t, "alice")
	member := env.register(t, "bob")

	_, err := env.books.Create(ctx, member.ID, CreateBookRequest{Title: "Emma", Author: "Jane Austen", TotalChapters: 55})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = env.books.Activate(ctx, member.ID, "book-missing")
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestBookService_ActivateMissing(t *testing.T) {
	env := setupServices(t)
	admin := env.register(t, "alice")

	_, err := env.books.Activate(context.Background(), admin.ID, "book-missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestScheduleService_WeeksAndChapters(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	admin := env.register(t, "alice")
	book, week1, _ := env.seedSchedule(t, admin)

	week2, err := env.schedule.CreateWeek(ctx, admin.ID, CreateWeekRequest{BookID: book.ID, WeekNumber: 2, Title: "Old and Young"})
	require.NoError(t, err)

	_, err = env.schedule.CreateWeek(ctx, admin.ID, CreateWeekRequest{BookID: book.ID, WeekNumber: 2})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)

	weeks, err := env.schedule.ListWeeks(ctx, book.ID)
	require.NoError(t, err)
	require.Len(t, weeks, 2)
	assert.Equal(t, week1.ID, weeks[0].ID)
	assert.Equal(t, week2.ID, weeks[1].ID)

	_, err = env.schedule.CreateChapter(ctx, admin.ID, CreateChapterRequest{WeekID: week1.ID, ChapterNumber: 3})
	require.NoError(t, err)
	_, err = env.schedule.CreateChapter(ctx, admin.ID, CreateChapterRequest{WeekID: week1.ID, ChapterNumber: 2})
	require.NoError(t, err)

	chapters, err := env.schedule.ListChapters(ctx, week1.ID)
	require.NoError(t, err)
	require.Len(t, chapters, 3)
	for i, ch := range chapters {
		assert.Equal(t, i+1, ch.ChapterNumber)
	}
}

func TestScheduleService_Validation(t *testing.T) {
	env := setupServices(t)
	ctx := context.Background()
	admin := env.register(t, "alice")
	book, _, _ := env.seedSchedule(t, admin)

	_, err := env.schedule.CreateWeek(ctx, admin.ID, CreateWeekRequest{
		BookID:     book.ID,
		WeekNumber: 5,
		StartDate:  domain.NewDate(2026, time.March, 8),
		EndDate:    domain.NewDate(2026, time.March, 2),
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = env.schedule.CreateWeek(ctx, admin.ID, CreateWeekRequest{BookID: "book-missing", WeekNumber: 1})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = env.schedule.ListWeeks(ctx, "book-missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = env.schedule.ListChapters(ctx, "week-missing")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
