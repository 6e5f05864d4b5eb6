package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/aretw0/markov"
	"github.com/aretw0/markov/api"
	"github.com/aretw0/markov/pkg/chain"
	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/ports"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Engine defines what the server needs from a built chain.
type Engine interface {
	ports.WalkEngine
}

// Server serves walks over HTTP. Requests are validated against the
// embedded OpenAPI document before they reach a handler.
type Server struct {
	Engine   Engine
	spec     *openapi3.T
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option configures the server.
type Option func(*Server)

// WithGatherer exposes the given registry on GET /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// LoadSpec parses and validates the embedded OpenAPI document.
func LoadSpec(ctx context.Context) (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(api.Spec)
	if err != nil {
		return nil, fmt.Errorf("load openapi spec: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("invalid openapi spec: %w", err)
	}
	return doc, nil
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) (http.Handler, error) {
	spec, err := LoadSpec(context.Background())
	if err != nil {
		return nil, err
	}
	s := &Server{Engine: engine, spec: spec}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	walk, err := s.validated("/walk", s.GetWalk)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		if _, err := w.Write(api.Spec); err != nil {
			s.logger.Error("spec write failed", "error", err)
		}
	})
	r.Get("/walk", walk)
	r.Get("/chain", s.GetChain)
	r.Get("/healthz", s.GetHealth)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r, nil
}

// validated rejects GET requests on path that do not match its operation
// in the OpenAPI document with 400.
func (s *Server) validated(path string, next http.HandlerFunc) (http.HandlerFunc, error) {
	item := s.spec.Paths.Value(path)
	if item == nil || item.Get == nil {
		return nil, fmt.Errorf("openapi spec has no GET %s", path)
	}
	route := &routers.Route{
		Spec:      s.spec,
		Path:      path,
		PathItem:  item,
		Method:    http.MethodGet,
		Operation: item.Get,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		input := &openapi3filter.RequestValidationInput{Request: r, Route: route}
		if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
			s.logger.Debug("request rejected", "path", path, "error", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		next(w, r)
	}, nil
}

// GetWalk handles GET /walk. The max parameter has already been checked
// against the OpenAPI bounds.
func (s *Server) GetWalk(w http.ResponseWriter, r *http.Request) {
	maxLength := s.Engine.DefaultLength()
	if raw := r.URL.Query().Get("max"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		maxLength = n
	}

	rec, err := s.Engine.Walk(r.Context(), maxLength)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrEmptyChain) || errors.Is(err, domain.ErrNoStartState) {
			status = http.StatusConflict
		}
		http.Error(w, err.Error(), status)
		s.logger.Error("walk failed", "error", err)
		return
	}
	writeJSON(w, s.logger, rec)
}

// GetChain handles GET /chain.
func (s *Server) GetChain(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Engine.Inspect()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		s.logger.Error("inspect failed", "error", err)
		return
	}
	writeJSON(w, s.logger, snap)
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "error", err)
	}
}

// GeneratorEngine adapts a generator and its chain to Engine. A single mutex
// serialises every call because neither the chain nor the random source is
// safe for concurrent use.
type GeneratorEngine[T any] struct {
	mu    sync.Mutex
	gen   *markov.Generator[T]
	chain *chain.Chain[T]
	count int
}

// NewGeneratorEngine wraps gen, which must have been built over c.
func NewGeneratorEngine[T any](gen *markov.Generator[T], c *chain.Chain[T]) *GeneratorEngine[T] {
	return &GeneratorEngine[T]{gen: gen, chain: c}
}

// Walk generates and renders one walk.
func (e *GeneratorEngine[T]) Walk(ctx context.Context, maxLength int) (ports.WalkRecord, error) {
	if err := ctx.Err(); err != nil {
		return ports.WalkRecord{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	states, err := e.gen.Walk(maxLength)
	if err != nil {
		return ports.WalkRecord{}, err
	}
	e.count++
	return ports.NewRecord(e.chain.Capabilities(), ports.Walk[T]{
		Label:  e.gen.Label(),
		Index:  e.count,
		States: states,
	})
}

// Inspect snapshots the chain.
func (e *GeneratorEngine[T]) Inspect() (domain.ChainSnapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.chain.Snapshot()
}

// DefaultLength returns the generator's walk bound.
func (e *GeneratorEngine[T]) DefaultLength() int {
	return e.gen.MaxLength()
}
