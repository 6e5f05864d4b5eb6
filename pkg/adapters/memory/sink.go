package memory

import (
	"context"
	"sync"

	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/ports"
)

// Sink implements ports.WalkSink in memory.
// Safe for concurrent use.
type Sink[T any] struct {
	caps    domain.Capabilities[T]
	walks   []ports.Walk[T]
	records []ports.WalkRecord
	closed  bool
	mu      sync.RWMutex
}

// NewSink creates a new in-memory sink that renders states through caps.
func NewSink[T any](caps domain.Capabilities[T]) *Sink[T] {
	return &Sink[T]{caps: caps}
}

// Emit stores a copy of the walk and its rendered record.
func (s *Sink[T]) Emit(ctx context.Context, walk ports.Walk[T]) error {
	rec, err := ports.NewRecord(s.caps, walk)
	if err != nil {
		return err
	}

	// Copy so the caller can't mutate stored walks through the slice
	states := make([]T, len(walk.States))
	copy(states, walk.States)
	walk.States = states

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ports.ErrSinkClosed
	}
	s.walks = append(s.walks, walk)
	s.records = append(s.records, rec)
	return nil
}

// Walks returns the raw walks received so far.
func (s *Sink[T]) Walks() []ports.Walk[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ports.Walk[T], len(s.walks))
	copy(out, s.walks)
	return out
}

// List returns the rendered walks, oldest first.
func (s *Sink[T]) List(ctx context.Context) ([]ports.WalkRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ports.WalkRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

// Close marks the sink closed. Stored walks remain readable.
func (s *Sink[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
