package markov

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/aretw0/markov/pkg/chain"
	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/ports"
)

// Version is the release of the markov module.
const Version = "0.3.0"

// StartStrategy selects the first state of every walk.
type StartStrategy int

const (
	// StartRandom draws a uniformly random state that is neither terminal nor a dead end.
	StartRandom StartStrategy = iota
	// StartFirst always starts at the first state inserted into the chain.
	StartFirst
)

// DefaultMaxLength bounds walks when no WithMaxLength option is given.
const DefaultMaxLength = 20

// Generator is the high-level entry point for producing walks.
// It wraps a chain.Walker and delivers each walk to a sink.
type Generator[T any] struct {
	chain     *chain.Chain[T]
	walker    *chain.Walker[T]
	sink      ports.WalkSink[T]
	maxLength int
	label     string
	start     StartStrategy
	hooks     domain.WalkHooks
	logger    *slog.Logger
}

type config struct {
	maxLength int
	label     string
	start     StartStrategy
	hooks     domain.WalkHooks
	logger    *slog.Logger
}

// Option defines a functional option for configuring the Generator.
type Option func(*config)

// WithMaxLength bounds the number of states in each walk.
func WithMaxLength(n int) Option {
	return func(c *config) {
		c.maxLength = n
	}
}

// WithLabel names the walks, e.g. "Tweet".
func WithLabel(label string) Option {
	return func(c *config) {
		c.label = label
	}
}

// WithStartStrategy sets how the first state of each walk is chosen.
func WithStartStrategy(s StartStrategy) Option {
	return func(c *config) {
		c.start = s
	}
}

// WithHooks registers walk observability hooks.
func WithHooks(hooks domain.WalkHooks) Option {
	return func(c *config) {
		c.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the generator.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// NewGenerator binds a chain, a seeded random source and a sink.
func NewGenerator[T any](c *chain.Chain[T], rng *rand.Rand, sink ports.WalkSink[T], opts ...Option) *Generator[T] {
	cfg := config{
		maxLength: DefaultMaxLength,
		label:     "Walk",
		start:     StartRandom,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Generator[T]{
		chain:     c,
		walker:    chain.NewWalker(c, rng),
		sink:      sink,
		maxLength: cfg.maxLength,
		label:     cfg.label,
		start:     cfg.start,
		hooks:     cfg.hooks,
		logger:    cfg.logger.With("label", cfg.label),
	}
}

// Label returns the name given to generated walks.
func (g *Generator[T]) Label() string {
	return g.label
}

// MaxLength returns the configured walk bound.
func (g *Generator[T]) MaxLength() int {
	return g.maxLength
}

// Next produces one walk of at most MaxLength states without delivering it.
func (g *Generator[T]) Next() ([]T, error) {
	return g.Walk(g.maxLength)
}

// Walk produces one walk of at most maxLength states without delivering it.
func (g *Generator[T]) Walk(maxLength int) ([]T, error) {
	start, err := g.pickStart()
	if err != nil {
		return nil, err
	}
	return g.walker.Walk(start, maxLength)
}

func (g *Generator[T]) pickStart() (*chain.Node[T], error) {
	if g.start == StartFirst {
		n, ok := g.chain.At(0)
		if !ok {
			return nil, domain.ErrEmptyChain
		}
		return n, nil
	}
	return g.walker.PickStart()
}

// Run generates count walks, numbered from 1, and emits each to the sink.
// It stops at the first error or when ctx is done.
func (g *Generator[T]) Run(ctx context.Context, count int) error {
	for i := 1; i <= count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		g.emitHook(ctx, g.hooks.OnWalkStart, domain.EventWalkStart, i, 0, nil)

		states, err := g.Next()
		if err != nil {
			g.emitHook(ctx, g.hooks.OnWalkEnd, domain.EventWalkEnd, i, 0, err)
			return fmt.Errorf("walk %d: %w", i, err)
		}

		walk := ports.Walk[T]{Label: g.label, Index: i, States: states}
		if err := g.sink.Emit(ctx, walk); err != nil {
			g.emitHook(ctx, g.hooks.OnWalkEnd, domain.EventWalkEnd, i, len(states), err)
			return fmt.Errorf("emit walk %d: %w", i, err)
		}

		g.logger.Debug("walk generated", "index", i, "length", len(states))
		g.emitHook(ctx, g.hooks.OnWalkEnd, domain.EventWalkEnd, i, len(states), nil)
	}
	return nil
}

func (g *Generator[T]) emitHook(ctx context.Context, hook func(context.Context, *domain.WalkEvent), typ domain.EventType, index, length int, err error) {
	if hook == nil {
		return
	}
	hook(ctx, &domain.WalkEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: typ},
		Label:     g.label,
		Index:     index,
		Length:    length,
		Err:       err,
	})
}
