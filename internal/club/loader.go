package club

import (
	"context"
	"errors"
	"sync"
)

// Status is a Loader's position in idle → loading → success | error.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// ErrSuperseded is returned by Load when a newer load, Reset or Close
// replaced it. Its result was discarded.
var ErrSuperseded = errors.New("load superseded")

// LoadState is a snapshot of a Loader.
type LoadState[T any] struct {
	Status Status
	Data   T
	Err    string
}

// Loader tracks one list-fetching operation. Each Load cancels the one
// before it, and only the newest load may publish a result. The zero value
// is idle and ready to use.
type Loader[T any] struct {
	mu     sync.Mutex
	state  LoadState[T]
	gen    uint64
	cancel context.CancelFunc
}

// Load runs fetch and publishes its result. On failure the state holds a
// display message (fallback unless the server sent one) and the returned
// error is a *Notice.
func (l *Loader[T]) Load(ctx context.Context, fallback string, fetch func(context.Context) (T, error)) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	gen := l.gen
	l.cancel = cancel
	l.state = LoadState[T]{Status: StatusLoading}
	l.mu.Unlock()

	data, err := fetch(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		return ErrSuperseded
	}
	l.cancel = nil

	if err != nil {
		err = noticeFor(err, fallback)
		l.state = LoadState[T]{Status: StatusError, Err: Message(err)}
		return err
	}
	l.state = LoadState[T]{Status: StatusSuccess, Data: data}
	return nil
}

// Snapshot returns the current state.
func (l *Loader[T]) Snapshot() LoadState[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Loaded reports whether the last load succeeded.
func (l *Loader[T]) Loaded() bool {
	return l.Snapshot().Status == StatusSuccess
}

// Update applies fn to loaded data, for local edits after a confirmed
// write. It reports false and does nothing unless the loader holds data.
func (l *Loader[T]) Update(fn func(T) T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state.Status != StatusSuccess {
		return false
	}
	l.state.Data = fn(l.state.Data)
	return true
}

// Reset cancels any load in flight and returns to idle.
func (l *Loader[T]) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.gen++
	l.state = LoadState[T]{}
}

// Close is Reset under the name views use when they go away.
func (l *Loader[T]) Close() {
	l.Reset()
}
