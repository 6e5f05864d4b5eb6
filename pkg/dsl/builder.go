package dsl

import (
	"fmt"

	"github.com/aretw0/markov/pkg/chain"
	"github.com/aretw0/markov/pkg/domain"
)

type stepKind int

const (
	stepInsert stepKind = iota
	stepRecord
)

type step[T any] struct {
	kind     stepKind
	from, to T
}

// Builder manages the chain construction.
type Builder[T any] struct {
	caps  domain.Capabilities[T]
	opts  []chain.Option[T]
	steps []step[T]
}

// New creates a new chain builder. opts are passed to chain.New on Build.
func New[T any](caps domain.Capabilities[T], opts ...chain.Option[T]) *Builder[T] {
	return &Builder[T]{caps: caps, opts: opts}
}

// Add declares a state. Declaring an existing state again is a no-op on Build.
func (b *Builder[T]) Add(value T) *StateBuilder[T] {
	b.steps = append(b.steps, step[T]{kind: stepInsert, from: value})
	return &StateBuilder[T]{value: value, builder: b}
}

// Path declares every value and one transition between each consecutive pair.
func (b *Builder[T]) Path(values ...T) *Builder[T] {
	var prev *StateBuilder[T]
	for _, v := range values {
		if prev == nil {
			prev = b.Add(v)
			continue
		}
		prev = prev.Go(v)
	}
	return b
}

// Build replays the declared steps into a new chain. On failure the partial
// chain is destroyed.
func (b *Builder[T]) Build() (*chain.Chain[T], error) {
	c := chain.New(b.caps, b.opts...)
	for i, s := range b.steps {
		if err := apply(c, s); err != nil {
			c.Destroy()
			return nil, fmt.Errorf("failed to build chain at step %d: %w", i, err)
		}
	}
	return c, nil
}

func apply[T any](c *chain.Chain[T], s step[T]) error {
	from, err := c.InsertOrGet(s.from)
	if err != nil || s.kind == stepInsert {
		return err
	}
	to, err := c.InsertOrGet(s.to)
	if err != nil {
		return err
	}
	return c.RecordTransition(from, to)
}
