package domain

// ChainSnapshot is a rendered, read-only view of a chain for inspection tools
// (graph export, reports, HTTP).
type ChainSnapshot struct {
	Nodes       []NodeView `json:"nodes"`
	Transitions int        `json:"transitions"`
}

// NodeView is one state of a snapshot. ID is the insertion position.
type NodeView struct {
	ID       int        `json:"id"`
	Label    string     `json:"label"`
	Terminal bool       `json:"terminal,omitempty"`
	Edges    []EdgeView `json:"edges,omitempty"`
}

// EdgeView is one outgoing transition of a NodeView.
type EdgeView struct {
	To    int `json:"to"`
	Count int `json:"count"`
}

// TotalCount returns the sum of the node's outgoing counts.
func (n NodeView) TotalCount() int {
	total := 0
	for _, e := range n.Edges {
		total += e.Count
	}
	return total
}
