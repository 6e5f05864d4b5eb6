package chain

// Transition is a weighted edge to another node of the same chain.
// Count is the number of times the edge was observed and is always positive.
type Transition[T any] struct {
	Target *Node[T]
	Count  int
}

// Node wraps one distinct state value owned by a Chain together with its
// outgoing transitions in the order they were first observed.
type Node[T any] struct {
	value       T
	transitions []Transition[T]
	owner       *Chain[T]
	index       int
}

// Value returns the state held by the node.
func (n *Node[T]) Value() T {
	return n.value
}

// Index returns the insertion position of the node in its chain.
func (n *Node[T]) Index() int {
	return n.index
}

// Transitions returns a copy of the outgoing transitions in storage order.
func (n *Node[T]) Transitions() []Transition[T] {
	out := make([]Transition[T], len(n.transitions))
	copy(out, n.transitions)
	return out
}

// TotalCount returns the sum of all outgoing transition counts.
func (n *Node[T]) TotalCount() int {
	total := 0
	for _, t := range n.transitions {
		total += t.Count
	}
	return total
}

// IsDeadEnd reports whether the node has no outgoing transitions.
func (n *Node[T]) IsDeadEnd() bool {
	return len(n.transitions) == 0
}

// CountTo returns the observed count of the edge to target, or 0.
func (n *Node[T]) CountTo(target *Node[T]) int {
	for _, t := range n.transitions {
		if t.Target == target {
			return t.Count
		}
	}
	return 0
}
