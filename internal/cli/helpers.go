package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/markov/internal/config"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sc.sigCh:
			sc.mu.Lock()
			sc.sigVal = sig
			sc.mu.Unlock()
			sc.Cancel()
		case <-sc.Context.Done():
			// Context cancelled elsewhere
		}
		sc.stop.Do(func() {
			signal.Stop(sc.sigCh)
		})
	}()

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// ExitCode reports the outcome of a run and returns the process status.
// A run stopped by sig exits with 128 plus the signal number; fixed
// diagnostics of an ExitError go to stdout, other errors to stderr.
func ExitCode(stdout, stderr io.Writer, err error, sig os.Signal) int {
	if sig != nil {
		if sig == os.Interrupt {
			fmt.Fprintln(stderr, "Interrupted.")
		} else {
			fmt.Fprintln(stderr, "Terminated.")
		}
		if s, ok := sig.(syscall.Signal); ok {
			return 128 + int(s)
		}
		return 1
	}
	if err == nil {
		return 0
	}

	var exit *ExitError
	if errors.As(err, &exit) {
		fmt.Fprintln(stdout, exit.Message)
	} else {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return 1
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// DetectProfile resolves a color mode against the output w.
// "auto" colors only terminals and honours NO_COLOR through termenv.
func DetectProfile(w io.Writer, mode string) termenv.Profile {
	switch mode {
	case config.ColorNever:
		return termenv.Ascii
	case config.ColorAlways:
		if p := termenv.NewOutput(w, termenv.WithUnsafe()).EnvColorProfile(); p != termenv.Ascii {
			return p
		}
		return termenv.ANSI256
	default:
		if !IsTerminal(w) {
			return termenv.Ascii
		}
		return termenv.NewOutput(w).EnvColorProfile()
	}
}
