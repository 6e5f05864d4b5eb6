package ports

import (
	"context"
	"errors"

	"github.com/aretw0/markov/pkg/domain"
)

// ErrSinkClosed is returned by Emit after Close.
var ErrSinkClosed = errors.New("sink closed")

// Walk is one generated sequence of states.
type Walk[T any] struct {
	// Label names the kind of walk, e.g. "Tweet" or "Random Walk".
	Label string
	// Index is the 1-based position of the walk in its run.
	Index int
	// States holds the visited values in order.
	States []T
}

// WalkSink receives generated walks.
type WalkSink[T any] interface {
	// Emit delivers one walk. Implementations may render states through the
	// chain's capability set.
	Emit(ctx context.Context, walk Walk[T]) error

	// Close flushes and releases the sink. Emit after Close returns ErrSinkClosed.
	Close() error
}

// WalkRecord is the display form of a walk, used by sinks that persist or
// return walks to other processes.
type WalkRecord struct {
	Label  string   `json:"label"`
	Index  int      `json:"index"`
	States []string `json:"states"`
}

// WalkLister is implemented by sinks that keep the walks they received.
type WalkLister interface {
	// List returns the stored walks, oldest first.
	List(ctx context.Context) ([]WalkRecord, error)
}

// NewRecord renders every state of walk through caps.
func NewRecord[T any](caps domain.Capabilities[T], walk Walk[T]) (WalkRecord, error) {
	rec := WalkRecord{
		Label:  walk.Label,
		Index:  walk.Index,
		States: make([]string, 0, len(walk.States)),
	}
	for _, s := range walk.States {
		text, err := domain.Render(caps, s)
		if err != nil {
			return WalkRecord{}, err
		}
		rec.States = append(rec.States, text)
	}
	return rec, nil
}
