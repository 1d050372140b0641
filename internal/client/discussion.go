package client

import (
	"context"
	"net/url"
	"time"

	"github.com/readingclub/readingclub/internal/domain"
)

// Comments lists a chapter's comments, newest first.
func (c *Client) Comments(ctx context.Context, chapterID string) ([]domain.Comment, error) {
	var comments []domain.Comment
	if err := c.get(ctx, "/comments/chapter/"+url.PathEscape(chapterID), &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// PostComment adds a comment to a chapter.
func (c *Client) PostComment(ctx context.Context, chapterID, content string) (*domain.Comment, error) {
	var comment domain.Comment
	body := map[string]string{"chapterId": chapterID, "content": content}
	if err := c.post(ctx, "/comments", body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// EditComment replaces a comment's content. Owner only.
func (c *Client) EditComment(ctx context.Context, commentID, content string) (*domain.Comment, error) {
	var comment domain.Comment
	body := map[string]string{"content": content}
	if err := c.put(ctx, "/comments/"+url.PathEscape(commentID), body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes a comment. Owner only.
func (c *Client) DeleteComment(ctx context.Context, commentID string) error {
	return c.delete(ctx, "/comments/"+url.PathEscape(commentID))
}

// Questions lists a week's discussion questions.
func (c *Client) Questions(ctx context.Context, weekID string) ([]domain.Question, error) {
	var questions []domain.Question
	if err := c.get(ctx, "/questions/week/"+url.PathEscape(weekID), &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// CreateQuestion adds a question to a week. Admin only.
func (c *Client) CreateQuestion(ctx context.Context, weekID, question string) (*domain.Question, error) {
	var q domain.Question
	body := map[string]string{"weekId": weekID, "question": question}
	if err := c.post(ctx, "/questions", body, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// Answers lists the answers to a question.
func (c *Client) Answers(ctx context.Context, questionID string) ([]domain.Answer, error) {
	var answers []domain.Answer
	if err := c.get(ctx, "/questions/"+url.PathEscape(questionID)+"/answers", &answers); err != nil {
		return nil, err
	}
	return answers, nil
}

// SubmitAnswer answers a question. A second answer by the same member is a
// conflict.
func (c *Client) SubmitAnswer(ctx context.Context, questionID, answer string) (*domain.Answer, error) {
	var a domain.Answer
	body := map[string]string{"questionId": questionID, "answer": answer}
	if err := c.post(ctx, "/answers", body, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// SearchHit is one matched comment, answer or question.
type SearchHit struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Score     float64   `json:"score"`
	Body      string    `json:"body"`
	Author    string    `json:"author,omitempty"`
	ParentID  string    `json:"parentId"`
	CreatedAt time.Time `json:"createdAt"`
	Highlight string    `json:"highlight,omitempty"`
}

// SearchResult is one page of discussion search results.
type SearchResult struct {
	Query string      `json:"query"`
	Total uint64      `json:"total"`
	Hits  []SearchHit `json:"hits"`
}

// SearchQuery selects discussion documents. Types is a comma separated
// subset of comment, answer and question.
type SearchQuery struct {
	Text   string
	Types  string
	Author string
	Sort   string
	Limit  int
}

// Search runs a discussion search.
func (c *Client) Search(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	params := url.Values{}
	params.Set("q", q.Text)
	if q.Types != "" {
		params.Set("type", q.Types)
	}
	if q.Author != "" {
		params.Set("author", q.Author)
	}
	if q.Sort != "" {
		params.Set("sort", q.Sort)
	}
	if q.Limit > 0 {
		params.Set("limit", itoa(q.Limit))
	}

	var result SearchResult
	if err := c.get(ctx, "/search?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
