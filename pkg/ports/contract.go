package ports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ListableSink is a sink that can report what it received.
type ListableSink[T any] interface {
	WalkSink[T]
	WalkLister
}

// RunWalkSinkContract runs a suite of tests to verify that a WalkSink
// implementation adheres to the defined interface contract. newSink must return
// a fresh, empty sink on every call. walks must hold at least two walks and
// want their rendered records.
func RunWalkSinkContract[T any](t *testing.T, newSink func(t *testing.T) ListableSink[T], walks []Walk[T], want []WalkRecord) {
	t.Helper()
	require.GreaterOrEqual(t, len(walks), 2, "contract needs at least two walks")
	require.Len(t, want, len(walks))
	ctx := context.Background()

	t.Run("Emit and List", func(t *testing.T) {
		sink := newSink(t)
		defer sink.Close()

		for _, w := range walks {
			require.NoError(t, sink.Emit(ctx, w), "Emit should not return error")
		}

		got, err := sink.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got, "walks must be listed in emission order")
	})

	t.Run("Empty", func(t *testing.T) {
		sink := newSink(t)
		defer sink.Close()

		got, err := sink.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Emit After Close", func(t *testing.T) {
		sink := newSink(t)
		require.NoError(t, sink.Emit(ctx, walks[0]))
		require.NoError(t, sink.Close())

		err := sink.Emit(ctx, walks[1])
		assert.ErrorIs(t, err, ErrSinkClosed)
	})
}
