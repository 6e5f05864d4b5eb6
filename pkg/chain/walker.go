package chain

import (
	"iter"
	"math/rand"

	"github.com/aretw0/markov/pkg/domain"
)

// Walker draws random walks from a Chain using an explicit random source.
// Output is reproducible for a given seed as long as the chain is built the
// same way and the same sequence of calls is made.
type Walker[T any] struct {
	chain *Chain[T]
	rng   *rand.Rand
}

// NewWalker binds a walker to c. The caller seeds rng once, e.g. with
// rand.New(rand.NewSource(seed)).
func NewWalker[T any](c *Chain[T], rng *rand.Rand) *Walker[T] {
	return &Walker[T]{chain: c, rng: rng}
}

// eligible reports whether n may begin a walk.
func (w *Walker[T]) eligible(n *Node[T]) bool {
	return !n.IsDeadEnd() && !w.chain.caps.IsTerminal(n.value)
}

// PickStart draws a uniformly random node, drawing again while the node is
// terminal or has no outgoing transitions.
func (w *Walker[T]) PickStart() (*Node[T], error) {
	nodes := w.chain.nodes
	if len(nodes) == 0 {
		return nil, domain.ErrEmptyChain
	}

	found := false
	for _, n := range nodes {
		if w.eligible(n) {
			found = true
			break
		}
	}
	if !found {
		return nil, domain.ErrNoStartState
	}

	for {
		n := nodes[w.rng.Intn(len(nodes))]
		if w.eligible(n) {
			return n, nil
		}
	}
}

// SampleSuccessor picks one successor of n with probability proportional to
// its observed count.
func (w *Walker[T]) SampleSuccessor(n *Node[T]) (*Node[T], error) {
	if n == nil || n.owner != w.chain {
		return nil, domain.ErrForeignNode
	}
	total := n.TotalCount()
	if total <= 0 {
		return nil, domain.ErrDeadEnd
	}

	r := w.rng.Intn(total)
	for _, t := range n.transitions {
		r -= t.Count
		if r < 0 {
			return t.Target, nil
		}
	}
	// Unreachable while counts are positive.
	return n.transitions[len(n.transitions)-1].Target, nil
}

// Generate returns a single-use sequence that yields start and then sampled
// successors. It stops after maxLength nodes or after yielding a node with no
// outgoing transitions. A second iteration yields nothing.
func (w *Walker[T]) Generate(start *Node[T], maxLength int) iter.Seq[*Node[T]] {
	used := false
	return func(yield func(*Node[T]) bool) {
		if used {
			return
		}
		used = true
		if start == nil || start.owner != w.chain {
			return
		}

		current := start
		for emitted := 0; emitted < maxLength; {
			if !yield(current) {
				return
			}
			emitted++
			if current.IsDeadEnd() || emitted == maxLength {
				return
			}
			next, err := w.SampleSuccessor(current)
			if err != nil {
				return
			}
			current = next
		}
	}
}

// Walk collects a generated sequence into the state values it visited.
func (w *Walker[T]) Walk(start *Node[T], maxLength int) ([]T, error) {
	if start == nil || start.owner != w.chain {
		return nil, domain.ErrForeignNode
	}
	var states []T
	for n := range w.Generate(start, maxLength) {
		states = append(states, n.value)
	}
	return states, nil
}
