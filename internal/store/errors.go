package store

import (
	"net/http"
)

// Kind classifies a persistence failure.
type Kind uint8

const (
	KindNotFound Kind = iota + 1
	KindAlreadyExists
	KindInvalidInput
)

var kindText = map[Kind]string{
	KindNotFound:      "not found",
	KindAlreadyExists: "already exists",
	KindInvalidInput:  "invalid input",
}

// Status is the HTTP status a handler should answer with.
func (k Kind) Status() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// Error is returned by Store implementations. Entity names the row type
// ("comment", "week") when the store knows it.
type Error struct {
	Kind   Kind
	Entity string
	Err    error
}

func (e *Error) Error() string {
	subject := e.Entity
	if subject == "" {
		subject = "resource"
	}
	msg := subject + " " + kindText[e.Kind]
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Message is Error without the underlying cause.
func (e *Error) Message() string {
	return (&Error{Kind: e.Kind, Entity: e.Entity}).Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Kind, so ErrNotFound.For("week") still satisfies
// errors.Is(err, ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// For names the entity involved.
func (e *Error) For(entity string) *Error {
	return &Error{Kind: e.Kind, Entity: entity, Err: e.Err}
}

// WithCause wraps the driver error.
func (e *Error) WithCause(err error) *Error {
	return &Error{Kind: e.Kind, Entity: e.Entity, Err: err}
}

var (
	ErrNotFound      = &Error{Kind: KindNotFound}
	ErrAlreadyExists = &Error{Kind: KindAlreadyExists}
	ErrInvalidInput  = &Error{Kind: KindInvalidInput}
)
