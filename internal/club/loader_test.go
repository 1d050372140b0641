package club

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readingclub/readingclub/internal/client"
)

func TestLoader_SuccessAndError(t *testing.T) {
	var l Loader[[]string]
	assert.Equal(t, StatusIdle, l.Snapshot().Status)

	err := l.Load(context.Background(), "fallback", func(context.Context) ([]string, error) {
		return []string{"a"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, LoadState[[]string]{Status: StatusSuccess, Data: []string{"a"}}, l.Snapshot())

	err = l.Load(context.Background(), "Failed to load", func(context.Context) ([]string, error) {
		return nil, fmt.Errorf("%w: dial tcp: refused", client.ErrTransport)
	})
	requireNotice(t, err, client.KindTransport, msgUnreachable)
	assert.Equal(t, StatusError, l.Snapshot().Status)
	assert.Equal(t, msgUnreachable, l.Snapshot().Err)
	assert.Nil(t, l.Snapshot().Data)

	err = l.Load(context.Background(), "Failed to load", func(context.Context) ([]string, error) {
		return nil, errors.New("decode failure")
	})
	requireNotice(t, err, client.KindUnknown, "Failed to load")
}

func TestLoader_NewerLoadWins(t *testing.T) {
	var l Loader[string]

	started := make(chan struct{})
	release := make(chan struct{})
	firstDone := make(chan error, 1)

	go func() {
		firstDone <- l.Load(context.Background(), "x", func(ctx context.Context) (string, error) {
			close(started)
			<-release
			return "stale", nil
		})
	}()
	<-started

	require.NoError(t, l.Load(context.Background(), "x", func(context.Context) (string, error) {
		return "fresh", nil
	}))

	close(release)
	assert.ErrorIs(t, <-firstDone, ErrSuperseded)
	assert.Equal(t, "fresh", l.Snapshot().Data)
}

func TestLoader_NewLoadCancelsOld(t *testing.T) {
	var l Loader[string]

	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- l.Load(context.Background(), "x", func(ctx context.Context) (string, error) {
			close(started)
			<-ctx.Done()
			return "", ctx.Err()
		})
	}()
	<-started

	require.NoError(t, l.Load(context.Background(), "x", func(context.Context) (string, error) { return "second", nil }))
	assert.ErrorIs(t, <-done, ErrSuperseded)
	assert.Equal(t, "second", l.Snapshot().Data)
}

func TestLoader_CloseDiscardsInFlight(t *testing.T) {
	var l Loader[int]

	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- l.Load(context.Background(), "x", func(ctx context.Context) (int, error) {
			close(started)
			<-ctx.Done()
			return 42, nil
		})
	}()
	<-started

	l.Close()
	assert.ErrorIs(t, <-done, ErrSuperseded)
	assert.Equal(t, LoadState[int]{}, l.Snapshot())
}

func TestLoader_UpdateOnlyWhenLoaded(t *testing.T) {
	var l Loader[[]int]
	assert.False(t, l.Update(func(v []int) []int { return append(v, 1) }))

	require.NoError(t, l.Load(context.Background(), "x", func(context.Context) ([]int, error) { return []int{1}, nil }))
	assert.True(t, l.Update(func(v []int) []int { return append([]int{0}, v...) }))
	assert.Equal(t, []int{0, 1}, l.Snapshot().Data)
}
