package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"

	"github.com/aretw0/markov"
	"github.com/aretw0/markov/internal/config"
	"github.com/aretw0/markov/internal/logging"
	"github.com/aretw0/markov/internal/snakes"
	"github.com/aretw0/markov/internal/tweets"
	redisAdapter "github.com/aretw0/markov/pkg/adapters/redis"
	"github.com/aretw0/markov/pkg/adapters/text"
	"github.com/aretw0/markov/pkg/chain"
	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/observability"
	"github.com/aretw0/markov/pkg/ports"
	"github.com/muesli/termenv"
	"github.com/prometheus/client_golang/prometheus"
)

// Client names accepted by Walks, Graph, Report and Handler.
const (
	ClientTweets = "tweets"
	ClientSnakes = "snakes"
)

// App wires configuration, output and metrics for the client programs.
type App struct {
	Config   config.Config
	Stdout   io.Writer
	Logger   *slog.Logger
	Registry *prometheus.Registry
	Profile  termenv.Profile
	// Terminal enables glamour rendering of reports.
	Terminal bool

	metrics *observability.Metrics
}

// New creates an App writing to stdout. A nil logger discards logs.
func New(cfg config.Config, stdout io.Writer, logger *slog.Logger) *App {
	if logger == nil {
		logger = logging.NewNop()
	}
	reg := prometheus.NewRegistry()
	return &App{
		Config:   cfg,
		Stdout:   stdout,
		Logger:   logger,
		Registry: reg,
		Profile:  DetectProfile(stdout, cfg.Color),
		Terminal: IsTerminal(stdout),
		metrics:  observability.NewMetrics(reg),
	}
}

// session is a populated chain plus the parameters of one client run.
type session[T any] struct {
	chain *chain.Chain[T]
	seed  uint32
	count int
	title string
	opts  []markov.Option
}

func (s *session[T]) close() {
	s.chain.Destroy()
}

func newChain[T any](a *App, caps domain.Capabilities[T]) *chain.Chain[T] {
	return chain.New(caps,
		chain.WithLogger[T](a.Logger),
		chain.WithHooks(observability.ChainHooks[T](a.metrics)),
	)
}

// populationError maps a failed build to the fixed allocation diagnostic
// when the cause is an allocation failure.
func populationError(err error) error {
	if errors.Is(err, domain.ErrAllocation) {
		return &ExitError{Message: AllocationMessage, Err: err}
	}
	return err
}

func (a *App) openTweets(ctx context.Context, args []string) (*session[string], error) {
	in, err := ParseTweetsArgs(args)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(in.Path)
	if err != nil {
		return nil, &ExitError{Message: PathMessage, Err: fmt.Errorf("%w: %w", domain.ErrInput, err)}
	}
	defer f.Close()

	c := newChain[string](a, tweets.Words{})
	words, err := tweets.Fill(ctx, c, f, in.MaxWords)
	if err != nil {
		c.Destroy()
		return nil, populationError(err)
	}
	a.Logger.Info("corpus loaded", "path", in.Path, "words", words, "states", c.Len())

	return &session[string]{
		chain: c,
		seed:  in.Seed,
		count: in.Count,
		title: "Tweet chain",
		opts: []markov.Option{
			markov.WithLabel(tweets.Label),
			markov.WithMaxLength(a.Config.Tweets.MaxLength),
			markov.WithStartStrategy(markov.StartRandom),
		},
	}, nil
}

func (a *App) openSnakes(args []string) (*session[snakes.Cell], error) {
	in, err := ParseSnakesArgs(args)
	if err != nil {
		return nil, err
	}

	c := newChain[snakes.Cell](a, snakes.Cells{})
	if err := snakes.Fill(c, snakes.NewBoard()); err != nil {
		c.Destroy()
		return nil, populationError(err)
	}
	a.Logger.Info("board loaded", "states", c.Len(), "transitions", c.TransitionCount())

	return &session[snakes.Cell]{
		chain: c,
		seed:  in.Seed,
		count: in.Count,
		title: "Snakes and ladders chain",
		opts: []markov.Option{
			markov.WithLabel(snakes.Label),
			markov.WithMaxLength(a.Config.Snakes.MaxLength),
			markov.WithStartStrategy(markov.StartFirst),
		},
	}, nil
}

// generator binds s to a fresh random source seeded with s.seed.
func (s *session[T]) generator(a *App, sink ports.WalkSink[T]) *markov.Generator[T] {
	rng := rand.New(rand.NewSource(int64(s.seed)))
	opts := append([]markov.Option{
		markov.WithLogger(a.Logger),
		markov.WithHooks(a.metrics.WalkHooks()),
	}, s.opts...)
	return markov.NewGenerator(s.chain, rng, sink, opts...)
}

// newSink builds the configured walk sink.
func newSink[T any](a *App, caps domain.Capabilities[T]) ports.WalkSink[T] {
	if a.Config.Sink.Type == config.SinkRedis {
		r := a.Config.Sink.Redis
		return redisAdapter.New(r.Addr, r.Password, r.DB, caps,
			redisAdapter.WithKey(r.Key),
			redisAdapter.WithTTL(r.TTL),
			redisAdapter.WithMaxLen(r.MaxLen),
		)
	}
	return text.NewSink(a.Stdout, caps, text.WithColor(a.Profile))
}

func runWalks[T any](ctx context.Context, a *App, s *session[T]) (err error) {
	sink := newSink(a, s.chain.Capabilities())
	defer func() {
		if cerr := sink.Close(); err == nil {
			err = cerr
		}
	}()
	return s.generator(a, sink).Run(ctx, s.count)
}

// Walks builds the chain of client from args and emits the requested walks
// to the configured sink.
func (a *App) Walks(ctx context.Context, client string, args []string) error {
	switch client {
	case ClientTweets:
		s, err := a.openTweets(ctx, args)
		if err != nil {
			return err
		}
		defer s.close()
		return runWalks(ctx, a, s)
	case ClientSnakes:
		s, err := a.openSnakes(args)
		if err != nil {
			return err
		}
		defer s.close()
		return runWalks(ctx, a, s)
	}
	return unknownClient(client)
}

func unknownClient(client string) error {
	return fmt.Errorf("%w: unknown client %q (want %s or %s)", domain.ErrInput, client, ClientTweets, ClientSnakes)
}
