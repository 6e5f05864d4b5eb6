package ports

import (
	"context"

	"github.com/aretw0/markov/pkg/domain"
)

// MaxWalkLength caps the walk length a remote caller may request.
const MaxWalkLength = 1000

// WalkEngine serves walks on demand from a built chain.
type WalkEngine interface {
	Walk(ctx context.Context, maxLength int) (WalkRecord, error)
	Inspect() (domain.ChainSnapshot, error)
	DefaultLength() int
}
