package chain_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/aretw0/markov/pkg/chain"
	"github.com/aretw0/markov/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertOrGet_Idempotent(t *testing.T) {
	caps := &words{}
	c := chain.New[string](caps)
	defer c.Destroy()

	first, err := c.InsertOrGet("hello")
	require.NoError(t, err)
	second, err := c.InsertOrGet("hello")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 1, caps.copies, "existing value must not be copied again")
	assert.Equal(t, 0, first.TotalCount())
}

func TestInsertOrGet_PreservesInsertionOrder(t *testing.T) {
	c := chain.New[string](&words{})
	defer c.Destroy()

	for _, w := range []string{"b", "a", "c", "a", "b"} {
		_, err := c.InsertOrGet(w)
		require.NoError(t, err)
	}

	var got []string
	for _, n := range c.Nodes() {
		got = append(got, n.Value())
	}
	assert.Equal(t, []string{"b", "a", "c"}, got)

	n, ok := c.At(2)
	require.True(t, ok)
	assert.Equal(t, "c", n.Value())
	assert.Equal(t, 2, n.Index())

	_, ok = c.At(3)
	assert.False(t, ok)
}

func TestInsertOrGet_CopyFailure(t *testing.T) {
	caps := &words{failCopy: "boom"}
	c := chain.New[string](caps)
	defer c.Destroy()

	_, err := c.InsertOrGet("ok")
	require.NoError(t, err)

	_, err = c.InsertOrGet("boom")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAllocation)
	assert.Equal(t, 1, c.Len(), "failed insert must not leave a node behind")
}

func TestFind(t *testing.T) {
	tests := []struct {
		name string
		caps domain.Capabilities[string]
	}{
		{name: "Scan", caps: &words{}},
		{name: "Keyed", caps: &keyedWords{}},
		{name: "KeyCollision", caps: &collidingWords{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := chain.New(tt.caps)
			defer c.Destroy()

			_, ok := c.Find("x")
			assert.False(t, ok)

			x, err := c.InsertOrGet("x")
			require.NoError(t, err)
			y, err := c.InsertOrGet("y")
			require.NoError(t, err)
			require.NotSame(t, x, y)

			got, ok := c.Find("y")
			require.True(t, ok)
			assert.Same(t, y, got)

			again, err := c.InsertOrGet("y")
			require.NoError(t, err)
			assert.Same(t, y, again)
			assert.Equal(t, 2, c.Len())
		})
	}
}

func TestRecordTransition_CountConservation(t *testing.T) {
	c := chain.New[string](&words{})
	defer c.Destroy()

	a, _ := c.InsertOrGet("a")
	b, _ := c.InsertOrGet("b")
	d, _ := c.InsertOrGet("d")

	targets := []*chain.Node[string]{b, d, b, b, a, d}
	for _, target := range targets {
		require.NoError(t, c.RecordTransition(a, target))
	}

	assert.Equal(t, len(targets), a.TotalCount())
	assert.Equal(t, 3, a.CountTo(b))
	assert.Equal(t, 2, a.CountTo(d))
	assert.Equal(t, 1, a.CountTo(a))
	assert.Equal(t, 3, c.TransitionCount())

	trs := a.Transitions()
	require.Len(t, trs, 3)
	assert.Same(t, b, trs[0].Target, "edges keep first-observed order")
	assert.Same(t, d, trs[1].Target)
	assert.Same(t, a, trs[2].Target)

	assert.True(t, b.IsDeadEnd())
}

func TestRecordTransition_ForeignNode(t *testing.T) {
	c1 := chain.New[string](&words{})
	defer c1.Destroy()
	c2 := chain.New[string](&words{})
	defer c2.Destroy()

	a, _ := c1.InsertOrGet("a")
	b, _ := c2.InsertOrGet("b")

	assert.ErrorIs(t, c1.RecordTransition(a, b), domain.ErrForeignNode)
	assert.ErrorIs(t, c1.RecordTransition(a, nil), domain.ErrForeignNode)
	assert.True(t, a.IsDeadEnd())
}

func TestDestroy(t *testing.T) {
	caps := &words{}
	c := chain.New[string](caps)

	a, _ := c.InsertOrGet("a")
	b, _ := c.InsertOrGet("b")
	require.NoError(t, c.RecordTransition(a, b))

	c.Destroy()
	assert.ElementsMatch(t, []string{"a", "b"}, caps.destroyed)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.TransitionCount())

	// Second call must not release anything twice.
	c.Destroy()
	assert.Len(t, caps.destroyed, 2)

	// Former nodes are no longer accepted.
	assert.ErrorIs(t, c.RecordTransition(a, b), domain.ErrForeignNode)

	// The chain is reusable as an empty chain.
	_, err := c.InsertOrGet("a")
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
	c.Destroy()
}

func TestDestroy_PartiallyBuilt(t *testing.T) {
	caps := &words{failCopy: "bad"}
	c := chain.New[string](caps)

	for _, w := range []string{"one", "two", "bad", "three"} {
		if _, err := c.InsertOrGet(w); err != nil {
			break
		}
	}
	c.Destroy()
	assert.Equal(t, []string{"one", "two"}, caps.destroyed)

	var nilChain *chain.Chain[string]
	assert.NotPanics(t, func() { nilChain.Destroy() })
}

func TestHooks(t *testing.T) {
	var inserted []string
	var counts []int
	hooks := domain.ChainHooks[string]{
		OnInsert: func(e *domain.NodeEvent[string]) {
			inserted = append(inserted, e.Value)
		},
		OnTransition: func(e *domain.TransitionEvent[string]) {
			counts = append(counts, e.Count)
		},
	}

	c := chain.New[string](&words{}, chain.WithHooks(hooks))
	defer c.Destroy()

	a, _ := c.InsertOrGet("a")
	b, _ := c.InsertOrGet("b")
	_, _ = c.InsertOrGet("a")
	require.NoError(t, c.RecordTransition(a, b))
	require.NoError(t, c.RecordTransition(a, b))

	assert.Equal(t, []string{"a", "b"}, inserted)
	assert.Equal(t, []int{1, 2}, counts)
}

func TestOptions_TypedToState(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	calls := 0
	// Options carry the chain's state type, so hooks for another type do not compile.
	opts := []chain.Option[string]{
		chain.WithLogger[string](logger),
		chain.WithHooks(domain.ChainHooks[string]{
			OnInsert: func(*domain.NodeEvent[string]) { calls++ },
		}),
	}

	c := chain.New[string](&words{}, opts...)
	_, err := c.InsertOrGet("a")
	require.NoError(t, err)
	c.Destroy()

	assert.Equal(t, 1, calls)
	assert.Contains(t, buf.String(), "chain destroyed")
}

func TestSnapshot(t *testing.T) {
	c := chain.New[string](&words{})
	defer c.Destroy()

	a, _ := c.InsertOrGet("a")
	b, _ := c.InsertOrGet("b.")
	require.NoError(t, c.RecordTransition(a, b))
	require.NoError(t, c.RecordTransition(a, b))
	require.NoError(t, c.RecordTransition(a, a))

	snap, err := c.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Transitions)
	require.Len(t, snap.Nodes, 2)

	assert.Equal(t, domain.NodeView{
		ID:    0,
		Label: "a",
		Edges: []domain.EdgeView{{To: 1, Count: 2}, {To: 0, Count: 1}},
	}, snap.Nodes[0])
	assert.Equal(t, 3, snap.Nodes[0].TotalCount())
	assert.Equal(t, domain.NodeView{ID: 1, Label: "b.", Terminal: true}, snap.Nodes[1])
}
