package domain

import (
	"io"
	"strings"
)

// Capabilities is the per-client behaviour the chain applies uniformly to every
// state value it owns.
type Capabilities[T any] interface {
	// Equal reports whether two values denote the same state.
	Equal(a, b T) bool

	// Copy returns a deep copy the chain can own. A failed copy must return an
	// error; the chain reports it as ErrAllocation.
	Copy(v T) (T, error)

	// Destroy releases a value previously returned by Copy.
	Destroy(v T)

	// Display renders one state to w.
	Display(w io.Writer, v T) error

	// IsTerminal reports whether the state must end a walk rather than start or continue one.
	IsTerminal(v T) bool
}

// Keyer is an optional capability. When the capability set implements it the
// node store keeps a key index instead of scanning on every lookup.
// Equal values must produce equal keys.
type Keyer[T any] interface {
	Key(v T) string
}

// Render returns the display form of v as a string.
func Render[T any](caps Capabilities[T], v T) (string, error) {
	var sb strings.Builder
	if err := caps.Display(&sb, v); err != nil {
		return "", err
	}
	return sb.String(), nil
}
