// Package search provides full-text search over club discussions using Bleve.
// Comments, answers and questions share one index and are told apart by type.
package search

import (
	"context"
	"time"

	"github.com/readingclub/readingclub/internal/domain"
)

// DocType represents the type of document in the unified index.
type DocType string

// Document types for the search index.
const (
	DocTypeComment  DocType = "comment"
	DocTypeAnswer   DocType = "answer"
	DocTypeQuestion DocType = "question"
)

// ValidDocType reports whether t names an indexed type.
func ValidDocType(t string) bool {
	switch DocType(t) {
	case DocTypeComment, DocTypeAnswer, DocTypeQuestion:
		return true
	}
	return false
}

// SearchDocument is the unified document stored in the index.
type SearchDocument struct {
	ID   string
	Type DocType

	// Body is the searchable text: comment content, answer text or question.
	Body string

	// Author is empty for questions.
	Author   string
	AuthorID string

	// ParentID is the chapter for comments, the question for answers and
	// the week for questions.
	ParentID string

	CreatedAt time.Time
}

// ToMap converts the document to the field names used by the mapping.
func (d *SearchDocument) ToMap() map[string]any {
	m := map[string]any{
		"id":         d.ID,
		"type":       string(d.Type),
		"body":       d.Body,
		"parent_id":  d.ParentID,
		"created_at": float64(d.CreatedAt.UnixMilli()),
	}
	if d.Author != "" {
		m["author"] = d.Author
		m["author_id"] = d.AuthorID
	}
	return m
}

// CommentDocument builds the index document for a comment.
func CommentDocument(c *domain.Comment) *SearchDocument {
	return &SearchDocument{
		ID:        c.ID,
		Type:      DocTypeComment,
		Body:      c.Content,
		Author:    c.User.Username,
		AuthorID:  c.User.ID,
		ParentID:  c.ChapterID,
		CreatedAt: c.CreatedAt,
	}
}

// AnswerDocument builds the index document for an answer.
func AnswerDocument(a *domain.Answer) *SearchDocument {
	return &SearchDocument{
		ID:        a.ID,
		Type:      DocTypeAnswer,
		Body:      a.Answer,
		Author:    a.User.Username,
		AuthorID:  a.User.ID,
		ParentID:  a.QuestionID,
		CreatedAt: a.CreatedAt,
	}
}

// QuestionDocument builds the index document for a question.
func QuestionDocument(q *domain.Question) *SearchDocument {
	return &SearchDocument{
		ID:        q.ID,
		Type:      DocTypeQuestion,
		Body:      q.Question,
		ParentID:  q.WeekID,
		CreatedAt: q.CreatedAt,
	}
}

// IndexComment implements store.SearchIndexer.
func (s *SearchIndex) IndexComment(_ context.Context, c *domain.Comment) error {
	return s.IndexDocument(CommentDocument(c))
}

// IndexAnswer implements store.SearchIndexer.
func (s *SearchIndex) IndexAnswer(_ context.Context, a *domain.Answer) error {
	return s.IndexDocument(AnswerDocument(a))
}

// IndexQuestion implements store.SearchIndexer.
func (s *SearchIndex) IndexQuestion(_ context.Context, q *domain.Question) error {
	return s.IndexDocument(QuestionDocument(q))
}

// DeleteDocument implements store.SearchIndexer.
func (s *SearchIndex) DeleteDocument(_ context.Context, id string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Delete(id)
}
