package chain

import (
	"log/slog"

	"github.com/aretw0/markov/pkg/domain"
)

type settings[T any] struct {
	logger *slog.Logger
	hooks  domain.ChainHooks[T]
}

// Option defines a functional option for configuring a Chain of T.
type Option[T any] func(*settings[T])

// WithLogger sets a structured logger for construction diagnostics.
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(s *settings[T]) {
		s.logger = logger
	}
}

// WithHooks registers construction callbacks.
func WithHooks[T any](hooks domain.ChainHooks[T]) Option[T] {
	return func(s *settings[T]) {
		s.hooks = hooks
	}
}
