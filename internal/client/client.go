// Package client is the REST adapter the club front end talks through. It
// attaches the session's bearer token, unwraps the response envelope and
// turns failures into *APIError or ErrTransport.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// TokenSource returns the bearer token to send, or "" for anonymous calls.
type TokenSource func() string

// Options configures a Client.
type Options struct {
	BaseURL string        // e.g. http://localhost:8080/api
	Timeout time.Duration // per attempt
	Token   TokenSource
	Logger  *slog.Logger

	// RetryWait is the initial backoff between GET retries. Defaults to 200ms.
	RetryWait time.Duration
}

// Client calls the club API.
type Client struct {
	http   *resty.Client
	logger *slog.Logger
}

// getRetries is how many times a GET is retried after a transport failure.
// Mutating calls are never retried.
const getRetries = 2

// New creates a client.
func New(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.RetryWait <= 0 {
		opts.RetryWait = 200 * time.Millisecond
	}

	rc := resty.New().
		SetBaseURL(opts.BaseURL).
		SetHeader("Accept", "application/json").
		SetLogger(restyLogger{logger}).
		SetRetryCount(getRetries).
		SetRetryWaitTime(opts.RetryWait).
		SetRetryMaxWaitTime(4 * opts.RetryWait).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil && r != nil && r.Request != nil && r.Request.Method == http.MethodGet
		})
	if opts.Timeout > 0 {
		rc.SetTimeout(opts.Timeout)
	}
	if opts.Token != nil {
		rc.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
			if token := opts.Token(); token != "" {
				r.SetAuthToken(token)
			}
			return nil
		})
	}

	return &Client{http: rc, logger: logger}
}

// envelope mirrors the server's response wrapper.
type envelope struct {
	Version int             `json:"v"`
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
}

// do sends one request. out may be nil when the caller ignores the data.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %s %s: %w", ErrTransport, method, path, err)
	}

	status := resp.StatusCode()
	c.logger.Debug("request", "method", method, "path", path, "status", status, "took", resp.Time())

	if status == http.StatusNoContent {
		return nil
	}

	var env envelope
	decodeErr := json.Unmarshal(resp.Body(), &env)

	if status >= http.StatusMultipleChoices {
		apiErr := &APIError{Status: status, Code: env.Code, Message: env.Message}
		if apiErr.Message == "" {
			apiErr.Message = env.Error
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(status)
		}
		return apiErr
	}

	if decodeErr != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, decodeErr)
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode %s %s data: %w", method, path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// restyLogger routes resty's own messages into slog.
type restyLogger struct {
	*slog.Logger
}

func (l restyLogger) Errorf(format string, v ...any) { l.Error(fmt.Sprintf(format, v...)) }
func (l restyLogger) Warnf(format string, v ...any)  { l.Warn(fmt.Sprintf(format, v...)) }
func (l restyLogger) Debugf(format string, v ...any) { l.Debug(fmt.Sprintf(format, v...)) }
