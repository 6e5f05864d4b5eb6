package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aretw0/markov/internal/presentation/graph"
	"github.com/aretw0/markov/internal/presentation/tui"
	httpAdapter "github.com/aretw0/markov/pkg/adapters/http"
	mcpAdapter "github.com/aretw0/markov/pkg/adapters/mcp"
	"github.com/aretw0/markov/pkg/adapters/memory"
	"github.com/aretw0/markov/pkg/ports"
	"github.com/muesli/termenv"
)

// ShutdownTimeout bounds the graceful shutdown of Serve.
const ShutdownTimeout = 5 * time.Second

// Graph writes a Mermaid diagram of the client's chain. When the walk count
// is positive, the first walk drawn from the seed is highlighted.
func (a *App) Graph(ctx context.Context, client string, args []string) error {
	switch client {
	case ClientTweets:
		s, err := a.openTweets(ctx, args)
		if err != nil {
			return err
		}
		defer s.close()
		return writeGraph(a, s)
	case ClientSnakes:
		s, err := a.openSnakes(args)
		if err != nil {
			return err
		}
		defer s.close()
		return writeGraph(a, s)
	}
	return unknownClient(client)
}

func writeGraph[T any](a *App, s *session[T]) error {
	snap, err := s.chain.Snapshot()
	if err != nil {
		return err
	}

	var overlay *graph.GraphOverlay
	if s.count > 0 {
		states, err := s.generator(a, memory.NewSink(s.chain.Capabilities())).Next()
		if err != nil {
			return fmt.Errorf("overlay walk: %w", err)
		}
		overlay = &graph.GraphOverlay{}
		for _, v := range states {
			if n, ok := s.chain.Find(v); ok {
				overlay.Walk = append(overlay.Walk, n.Index())
			}
		}
	}

	_, err = io.WriteString(a.Stdout, graph.GenerateMermaid(snap, overlay))
	return err
}

// Report writes a markdown summary of the client's chain followed by the
// requested number of sample walks. Terminals get glamour rendering.
func (a *App) Report(ctx context.Context, client string, args []string) error {
	var (
		md  string
		err error
	)
	switch client {
	case ClientTweets:
		s, oerr := a.openTweets(ctx, args)
		if oerr != nil {
			return oerr
		}
		defer s.close()
		md, err = buildReport(ctx, a, s)
	case ClientSnakes:
		s, oerr := a.openSnakes(args)
		if oerr != nil {
			return oerr
		}
		defer s.close()
		md, err = buildReport(ctx, a, s)
	default:
		return unknownClient(client)
	}
	if err != nil {
		return err
	}

	render := tui.NewPlainRenderer()
	if a.Terminal && a.Profile != termenv.Ascii {
		if render, err = tui.NewRenderer(0); err != nil {
			return err
		}
	}
	out, err := render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(a.Stdout, out)
	return err
}

func buildReport[T any](ctx context.Context, a *App, s *session[T]) (string, error) {
	snap, err := s.chain.Snapshot()
	if err != nil {
		return "", err
	}

	sink := memory.NewSink(s.chain.Capabilities())
	if err := s.generator(a, sink).Run(ctx, s.count); err != nil {
		return "", err
	}
	records, err := sink.List(ctx)
	if err != nil {
		return "", err
	}
	return tui.Report(s.title, snap, tui.DefaultTopN) + tui.Walks(records), nil
}

// Engine builds the client's chain and returns an engine serving single
// walks from it. The release func destroys the chain.
func (a *App) Engine(ctx context.Context, client string, args []string) (ports.WalkEngine, func(), error) {
	switch client {
	case ClientTweets:
		s, err := a.openTweets(ctx, args)
		if err != nil {
			return nil, nil, err
		}
		return walkEngine(a, s), s.close, nil
	case ClientSnakes:
		s, err := a.openSnakes(args)
		if err != nil {
			return nil, nil, err
		}
		return walkEngine(a, s), s.close, nil
	}
	return nil, nil, unknownClient(client)
}

func walkEngine[T any](a *App, s *session[T]) ports.WalkEngine {
	gen := s.generator(a, memory.NewSink(s.chain.Capabilities()))
	return httpAdapter.NewGeneratorEngine(gen, s.chain)
}

// Handler returns an HTTP handler serving walks from the client's chain.
func (a *App) Handler(ctx context.Context, client string, args []string) (http.Handler, func(), error) {
	engine, release, err := a.Engine(ctx, client, args)
	if err != nil {
		return nil, nil, err
	}
	handler, err := httpAdapter.NewHandler(engine,
		httpAdapter.WithGatherer(a.Registry),
		httpAdapter.WithLogger(a.Logger),
	)
	if err != nil {
		release()
		return nil, nil, err
	}
	return handler, release, nil
}

// ServeMCP serves the client's chain as MCP tools over in and out until ctx
// is done or in is closed.
func (a *App) ServeMCP(ctx context.Context, client string, args []string, in io.Reader, out io.Writer) error {
	engine, release, err := a.Engine(ctx, client, args)
	if err != nil {
		return err
	}
	defer release()

	a.Logger.Info("mcp server starting", "client", client)
	return mcpAdapter.NewServer(engine, mcpAdapter.WithLogger(a.Logger)).ServeStdio(ctx, in, out)
}

// Serve runs srv until ctx is done, then shuts it down gracefully.
func (a *App) Serve(ctx context.Context, srv *http.Server) error {
	serverErrors := make(chan error, 1)
	go func() {
		a.Logger.Info("server starting", "addr", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		a.Logger.Info("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown did not complete in %v: %w", ShutdownTimeout, err)
		}
		if err := <-serverErrors; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
