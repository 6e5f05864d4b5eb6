package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// DefaultKey is the list key walks are pushed to.
const DefaultKey = "markov:walks"

// Sink implements ports.WalkSink by appending each walk, as JSON, to a Redis list.
type Sink[T any] struct {
	client *backend.Client
	caps   domain.Capabilities[T]
	key    string
	ttl    time.Duration
	maxLen int64
	owned  bool

	mu     sync.Mutex
	closed bool
}

type settings struct {
	key    string
	ttl    time.Duration
	maxLen int64
}

// Option configures a Sink.
type Option func(*settings)

// WithKey sets the list key.
func WithKey(key string) Option {
	return func(s *settings) {
		s.key = key
	}
}

// WithTTL sets the expiration of the list, refreshed on every push.
func WithTTL(ttl time.Duration) Option {
	return func(s *settings) {
		s.ttl = ttl
	}
}

// WithMaxLen keeps only the newest n walks in the list.
func WithMaxLen(n int64) Option {
	return func(s *settings) {
		s.maxLen = n
	}
}

// New creates a Redis sink with its own client.
func New[T any](address, password string, db int, caps domain.Capabilities[T], opts ...Option) *Sink[T] {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	s := NewFromClient(rdb, caps, opts...)
	s.owned = true
	return s
}

// NewFromClient creates a Redis sink from an existing client. Close leaves the
// client open.
func NewFromClient[T any](client *backend.Client, caps domain.Capabilities[T], opts ...Option) *Sink[T] {
	cfg := settings{key: DefaultKey}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Sink[T]{
		client: client,
		caps:   caps,
		key:    cfg.key,
		ttl:    cfg.ttl,
		maxLen: cfg.maxLen,
	}
}

// Emit pushes the rendered walk onto the list.
func (s *Sink[T]) Emit(ctx context.Context, walk ports.Walk[T]) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ports.ErrSinkClosed
	}

	rec, err := ports.NewRecord(s.caps, walk)
	if err != nil {
		return fmt.Errorf("failed to render walk: %w", err)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal walk: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, s.key, data)
	if s.maxLen > 0 {
		pipe.LTrim(ctx, s.key, -s.maxLen, -1)
	}
	if s.ttl > 0 {
		pipe.Expire(ctx, s.key, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to push walk to redis: %w", err)
	}
	return nil
}

// List returns the stored walks, oldest first.
func (s *Sink[T]) List(ctx context.Context) ([]ports.WalkRecord, error) {
	vals, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list walks: %w", err)
	}

	out := make([]ports.WalkRecord, 0, len(vals))
	for _, v := range vals {
		var rec ports.WalkRecord
		if err := json.Unmarshal([]byte(v), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal walk: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// Close stops accepting walks and closes the client if the sink created it.
func (s *Sink[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.owned {
		return s.client.Close()
	}
	return nil
}
