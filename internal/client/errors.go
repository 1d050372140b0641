package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrTransport marks failures where no HTTP response was received.
var ErrTransport = errors.New("transport failure")

// APIError is any non-2xx response from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// Kind is the client's error taxonomy.
type Kind string

const (
	KindTransport  Kind = "transport"
	KindAuth       Kind = "auth"
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not-found"
	KindConflict   Kind = "conflict"
	KindForbidden  Kind = "forbidden"
	KindUnknown    Kind = "unknown"
)

// Classify places err in the taxonomy. A nil error is KindUnknown.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	if errors.Is(err, ErrTransport) || errors.Is(err, context.DeadlineExceeded) {
		return KindTransport
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return KindUnknown
	}

	switch apiErr.Code {
	case "INVALID_CREDENTIALS", "UNAUTHORIZED":
		return KindAuth
	case "VALIDATION":
		return KindValidation
	case "NOT_FOUND":
		return KindNotFound
	case "ALREADY_EXISTS", "CONFLICT":
		return KindConflict
	case "FORBIDDEN":
		return KindForbidden
	}

	switch apiErr.Status {
	case http.StatusUnauthorized:
		return KindAuth
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return KindValidation
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	case http.StatusForbidden:
		return KindForbidden
	}
	return KindUnknown
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	return Classify(err) == KindNotFound
}

// Message returns the server's message for err, or fallback when err carries
// none (transport failures, decode errors).
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
