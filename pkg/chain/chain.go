package chain

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/markov/pkg/domain"
)

// Chain is the owning aggregate of every distinct state and its observed
// transition frequencies.
type Chain[T any] struct {
	caps   domain.Capabilities[T]
	keyer  domain.Keyer[T]
	nodes  []*Node[T]
	index  map[string]*Node[T] // populated only when caps implements domain.Keyer
	edges  int
	hooks  domain.ChainHooks[T]
	logger *slog.Logger
}

// New creates an empty Chain bound to the given capability set.
func New[T any](caps domain.Capabilities[T], opts ...Option[T]) *Chain[T] {
	s := settings[T]{}
	for _, opt := range opts {
		opt(&s)
	}

	c := &Chain[T]{
		caps:   caps,
		hooks:  s.hooks,
		logger: s.logger,
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if k, ok := caps.(domain.Keyer[T]); ok {
		c.keyer = k
		c.index = make(map[string]*Node[T])
	}
	return c
}

// Capabilities returns the capability set the chain was created with.
func (c *Chain[T]) Capabilities() domain.Capabilities[T] {
	return c.caps
}

// Len returns the number of distinct states in the chain.
func (c *Chain[T]) Len() int {
	return len(c.nodes)
}

// TransitionCount returns the number of distinct edges in the chain.
func (c *Chain[T]) TransitionCount() int {
	return c.edges
}

// Nodes returns the nodes in insertion order.
func (c *Chain[T]) Nodes() []*Node[T] {
	out := make([]*Node[T], len(c.nodes))
	copy(out, c.nodes)
	return out
}

// At returns the node at insertion position i.
func (c *Chain[T]) At(i int) (*Node[T], bool) {
	if i < 0 || i >= len(c.nodes) {
		return nil, false
	}
	return c.nodes[i], true
}

// Find returns the first node, in insertion order, whose value is equal to value.
func (c *Chain[T]) Find(value T) (*Node[T], bool) {
	if c.keyer != nil {
		n, ok := c.index[c.keyer.Key(value)]
		if ok && c.caps.Equal(n.value, value) {
			return n, true
		}
		if ok {
			// Key collision between unequal values; fall back to the scan.
			return c.scan(value)
		}
		return nil, false
	}
	return c.scan(value)
}

func (c *Chain[T]) scan(value T) (*Node[T], bool) {
	for _, n := range c.nodes {
		if c.caps.Equal(n.value, value) {
			return n, true
		}
	}
	return nil, false
}

// InsertOrGet returns the node holding value, creating it from a deep copy of
// value when no equal state exists yet. An existing node is returned unchanged.
func (c *Chain[T]) InsertOrGet(value T) (*Node[T], error) {
	if n, ok := c.Find(value); ok {
		return n, nil
	}

	owned, err := c.caps.Copy(value)
	if err != nil {
		return nil, fmt.Errorf("copy state: %w: %w", domain.ErrAllocation, err)
	}

	n := &Node[T]{
		value: owned,
		owner: c,
		index: len(c.nodes),
	}
	c.nodes = append(c.nodes, n)
	if c.keyer != nil {
		key := c.keyer.Key(owned)
		if _, taken := c.index[key]; !taken {
			c.index[key] = n
		}
	}

	if c.hooks.OnInsert != nil {
		c.hooks.OnInsert(&domain.NodeEvent[T]{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventNodeInsert},
			Value:     owned,
			Index:     n.index,
		})
	}
	return n, nil
}

// RecordTransition counts one observation of source followed by target.
// Repeated observations increment the existing edge.
func (c *Chain[T]) RecordTransition(source, target *Node[T]) error {
	if source == nil || target == nil || source.owner != c || target.owner != c {
		return domain.ErrForeignNode
	}

	count := 0
	for i := range source.transitions {
		if source.transitions[i].Target == target {
			source.transitions[i].Count++
			count = source.transitions[i].Count
			break
		}
	}
	if count == 0 {
		source.transitions = append(source.transitions, Transition[T]{Target: target, Count: 1})
		c.edges++
		count = 1
	}

	if c.hooks.OnTransition != nil {
		c.hooks.OnTransition(&domain.TransitionEvent[T]{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventTransition},
			From:      source.value,
			To:        target.value,
			Count:     count,
		})
	}
	return nil
}

// Destroy releases every transition list and every owned value. It is safe to
// call on an empty, partially built or already destroyed chain; afterwards the
// chain is empty and its former nodes are no longer accepted.
func (c *Chain[T]) Destroy() {
	if c == nil {
		return
	}
	released := len(c.nodes)
	for i, n := range c.nodes {
		n.transitions = nil
		n.owner = nil
		c.caps.Destroy(n.value)
		var zero T
		n.value = zero
		c.nodes[i] = nil
	}
	c.nodes = nil
	c.edges = 0
	if c.index != nil {
		c.index = make(map[string]*Node[T])
	}
	if released > 0 {
		c.logger.Debug("chain destroyed", "nodes", released)
	}
}
