package text

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/ports"
	"github.com/muesli/termenv"
)

// Sink writes each walk as one line: "<Label> <Index>: " followed by the
// states rendered through the capability set, separated by single spaces.
type Sink[T any] struct {
	caps    domain.Capabilities[T]
	w       *bufio.Writer
	profile termenv.Profile
	color   bool
	closed  bool
	mu      sync.Mutex
}

// Option configures a Sink.
type Option func(*options)

type options struct {
	profile termenv.Profile
	color   bool
}

// WithColor styles the walk label and terminal states using profile.
// Without it the output is plain text.
func WithColor(profile termenv.Profile) Option {
	return func(o *options) {
		o.profile = profile
		o.color = profile != termenv.Ascii
	}
}

// NewSink creates a text sink writing to w (os.Stdout when nil).
func NewSink[T any](w io.Writer, caps domain.Capabilities[T], opts ...Option) *Sink[T] {
	if w == nil {
		w = os.Stdout
	}
	o := options{profile: termenv.Ascii}
	for _, opt := range opts {
		opt(&o)
	}
	return &Sink[T]{
		caps:    caps,
		w:       bufio.NewWriter(w),
		profile: o.profile,
		color:   o.color,
	}
}

// Emit writes one walk and flushes it.
func (s *Sink[T]) Emit(ctx context.Context, walk ports.Walk[T]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ports.ErrSinkClosed
	}

	prefix := fmt.Sprintf("%s %d: ", walk.Label, walk.Index)
	if s.color {
		prefix = termenv.String(prefix).Foreground(s.profile.Color("#a78bfa")).Bold().String()
	}
	if _, err := s.w.WriteString(prefix); err != nil {
		return err
	}

	for i, state := range walk.States {
		if i > 0 {
			if err := s.w.WriteByte(' '); err != nil {
				return err
			}
		}
		if err := s.writeState(state); err != nil {
			return err
		}
	}
	if err := s.w.WriteByte('\n'); err != nil {
		return err
	}
	return s.w.Flush()
}

func (s *Sink[T]) writeState(state T) error {
	if !s.color || !s.caps.IsTerminal(state) {
		return s.caps.Display(s.w, state)
	}
	rendered, err := domain.Render(s.caps, state)
	if err != nil {
		return err
	}
	_, err = s.w.WriteString(termenv.String(rendered).Foreground(s.profile.Color("#f472b6")).String())
	return err
}

// Close flushes pending output.
func (s *Sink[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.w.Flush()
}
