package dsl

// StateBuilder provides a fluent API for the transitions of one state.
type StateBuilder[T any] struct {
	value   T
	builder *Builder[T]
}

// Go records one observation of the transition to target and returns the
// builder of target, so calls can be chained along a path.
func (s *StateBuilder[T]) Go(target T) *StateBuilder[T] {
	return s.GoN(target, 1)
}

// GoN records n observations of the transition to target. The target is
// declared even when n is not positive.
func (s *StateBuilder[T]) GoN(target T, n int) *StateBuilder[T] {
	b := s.builder
	b.steps = append(b.steps, step[T]{kind: stepInsert, from: target})
	for range n {
		b.steps = append(b.steps, step[T]{kind: stepRecord, from: s.value, to: target})
	}
	return &StateBuilder[T]{value: target, builder: b}
}

// Value returns the state being configured.
func (s *StateBuilder[T]) Value() T {
	return s.value
}
