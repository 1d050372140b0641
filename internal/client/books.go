package client

import (
	"context"
	"net/url"

	"github.com/readingclub/readingclub/internal/domain"
)

// CurrentBook returns the active book. A club without one yields a
// not-found *APIError.
func (c *Client) CurrentBook(ctx context.Context) (*domain.Book, error) {
	var book domain.Book
	if err := c.get(ctx, "/books/current", &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// Books lists every book.
func (c *Client) Books(ctx context.Context) ([]domain.Book, error) {
	var books []domain.Book
	if err := c.get(ctx, "/books", &books); err != nil {
		return nil, err
	}
	return books, nil
}

// NewBook is the admin form for adding a book.
type NewBook struct {
	Title         string `json:"title"`
	Author        string `json:"author"`
	TotalChapters int    `json:"totalChapters"`
}

// CreateBook adds a book. Admin only.
func (c *Client) CreateBook(ctx context.Context, in NewBook) (*domain.Book, error) {
	var book domain.Book
	if err := c.post(ctx, "/books", in, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// ActivateBook makes the book current. Admin only.
func (c *Client) ActivateBook(ctx context.Context, bookID string) (*domain.Book, error) {
	var book domain.Book
	if err := c.put(ctx, "/books/"+url.PathEscape(bookID)+"/activate", nil, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// Weeks lists a book's weeks ordered by week number.
func (c *Client) Weeks(ctx context.Context, bookID string) ([]domain.Week, error) {
	var weeks []domain.Week
	if err := c.get(ctx, "/books/"+url.PathEscape(bookID)+"/weeks", &weeks); err != nil {
		return nil, err
	}
	return weeks, nil
}

// NewWeek is the admin form for scheduling a week. Dates are YYYY-MM-DD.
type NewWeek struct {
	BookID     string `json:"bookId"`
	WeekNumber int    `json:"weekNumber"`
	Title      string `json:"title,omitempty"`
	StartDate  string `json:"startDate,omitempty"`
	EndDate    string `json:"endDate,omitempty"`
}

// CreateWeek schedules a week. Admin only.
func (c *Client) CreateWeek(ctx context.Context, in NewWeek) (*domain.Week, error) {
	var week domain.Week
	if err := c.post(ctx, "/weeks", in, &week); err != nil {
		return nil, err
	}
	return &week, nil
}

// Chapters lists a week's chapters ordered by number.
func (c *Client) Chapters(ctx context.Context, weekID string) ([]domain.Chapter, error) {
	var chapters []domain.Chapter
	if err := c.get(ctx, "/weeks/"+url.PathEscape(weekID)+"/chapters", &chapters); err != nil {
		return nil, err
	}
	return chapters, nil
}

// NewChapter is the admin form for adding a chapter to a week.
type NewChapter struct {
	WeekID        string `json:"weekId"`
	ChapterNumber int    `json:"chapterNumber"`
	Title         string `json:"title,omitempty"`
}

// CreateChapter adds a chapter. Admin only.
func (c *Client) CreateChapter(ctx context.Context, in NewChapter) (*domain.Chapter, error) {
	var chapter domain.Chapter
	if err := c.post(ctx, "/chapters", in, &chapter); err != nil {
		return nil, err
	}
	return &chapter, nil
}
