package chain

import (
	"fmt"

	"github.com/aretw0/markov/pkg/domain"
)

// Snapshot renders the chain through its capability set.
func (c *Chain[T]) Snapshot() (domain.ChainSnapshot, error) {
	snap := domain.ChainSnapshot{
		Nodes:       make([]domain.NodeView, 0, len(c.nodes)),
		Transitions: c.edges,
	}
	for _, n := range c.nodes {
		label, err := domain.Render(c.caps, n.value)
		if err != nil {
			return domain.ChainSnapshot{}, fmt.Errorf("render node %d: %w", n.index, err)
		}
		view := domain.NodeView{
			ID:       n.index,
			Label:    label,
			Terminal: c.caps.IsTerminal(n.value),
		}
		for _, t := range n.transitions {
			view.Edges = append(view.Edges, domain.EdgeView{To: t.Target.index, Count: t.Count})
		}
		snap.Nodes = append(snap.Nodes, view)
	}
	return snap, nil
}
