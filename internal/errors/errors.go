// Package errors carries the coded errors services return. The API layer
// turns Code into an HTTP status and an envelope "code" field; everything
// else only ever compares against the sentinels:
//
//	if errors.Is(err, errors.ErrNotFound) { ... }
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard library helpers, so callers need a single import.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code is the machine-readable error kind sent to clients.
type Code string

const (
	CodeValidation         Code = "VALIDATION"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeForbidden          Code = "FORBIDDEN"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeConflict           Code = "CONFLICT"
	CodeRateLimited        Code = "RATE_LIMITED"
	CodeInternal           Code = "INTERNAL"
)

var statusByCode = map[Code]int{
	CodeValidation:         http.StatusBadRequest,
	CodeInvalidCredentials: http.StatusUnauthorized,
	CodeUnauthorized:       http.StatusUnauthorized,
	CodeForbidden:          http.StatusForbidden,
	CodeNotFound:           http.StatusNotFound,
	CodeAlreadyExists:      http.StatusConflict,
	CodeConflict:           http.StatusConflict,
	CodeRateLimited:        http.StatusTooManyRequests,
}

// HTTPStatus maps the code to a response status; unknown codes are 500.
func (c Code) HTTPStatus() int {
	if s, ok := statusByCode[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Error is a coded error. Message is safe to show to the club member;
// the wrapped cause is for logs only.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.cause.Error()
}

func (e *Error) Unwrap() error { return e.cause }

// Is compares codes only, which is what makes the sentinels below work.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// HTTPStatus is shorthand for e.Code.HTTPStatus().
func (e *Error) HTTPStatus() int { return e.Code.HTTPStatus() }

// WithCause returns a copy wrapping err.
func (e *Error) WithCause(err error) *Error {
	c := *e
	c.cause = err
	return &c
}

// Sentinels, matched by code.
var (
	ErrValidation         = New(CodeValidation, "validation error")
	ErrInvalidCredentials = New(CodeInvalidCredentials, "invalid credentials")
	ErrUnauthorized       = New(CodeUnauthorized, "unauthorized")
	ErrForbidden          = New(CodeForbidden, "forbidden")
	ErrNotFound           = New(CodeNotFound, "not found")
	ErrAlreadyExists      = New(CodeAlreadyExists, "already exists")
	ErrConflict           = New(CodeConflict, "conflict")
	ErrInternal           = New(CodeInternal, "internal error")
)

// New builds an error with the given code.
func New(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

func Validation(msg string) *Error { return New(CodeValidation, msg) }

func Validationf(format string, args ...any) *Error {
	return New(CodeValidation, fmt.Sprintf(format, args...))
}

// ValidationWithDetails attaches per-field messages, keyed by JSON name.
func ValidationWithDetails(msg string, details any) *Error {
	e := New(CodeValidation, msg)
	e.Details = details
	return e
}

func InvalidCredentials(msg string) *Error { return New(CodeInvalidCredentials, msg) }
func Unauthorized(msg string) *Error       { return New(CodeUnauthorized, msg) }
func Forbidden(msg string) *Error          { return New(CodeForbidden, msg) }
func NotFound(msg string) *Error           { return New(CodeNotFound, msg) }
func AlreadyExists(msg string) *Error      { return New(CodeAlreadyExists, msg) }
func Conflict(msg string) *Error           { return New(CodeConflict, msg) }
func Internal(msg string) *Error           { return New(CodeInternal, msg) }
