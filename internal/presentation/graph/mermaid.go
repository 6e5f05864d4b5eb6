package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/markov/pkg/domain"
)

// GraphOverlay highlights a walk on top of the chain.
type GraphOverlay struct {
	// Walk lists visited node IDs in order. The last one is styled as current.
	Walk []int
}

// GenerateMermaid produces a Mermaid flowchart of a chain snapshot.
// Shapes:
// - Terminal: ((Circle))
// - Dead end (no outgoing transitions): [/Parallelogram/]
// - Default: [Rectangle]
// Edges are labelled with their observed counts.
func GenerateMermaid(snap domain.ChainSnapshot, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, node := range snap.Nodes {
		opener, closer := "[", "]"
		switch {
		case node.Terminal:
			opener, closer = "((", "))"
		case len(node.Edges) == 0:
			opener, closer = "[/", "/]"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", nodeID(node.ID), opener, escapeLabel(node.Label), closer)

		for _, e := range node.Edges {
			fmt.Fprintf(&sb, "    %s -- \"%d\" --> %s\n", nodeID(node.ID), e.Count, nodeID(e.To))
		}
	}

	if overlay != nil && len(overlay.Walk) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text for contrast on both light and dark themes.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[int]bool, len(overlay.Walk))
		last := overlay.Walk[len(overlay.Walk)-1]
		for _, id := range overlay.Walk {
			if seen[id] || id == last {
				continue
			}
			seen[id] = true
			fmt.Fprintf(&sb, "    class %s visited;\n", nodeID(id))
		}
		fmt.Fprintf(&sb, "    class %s current;\n", nodeID(last))
	}

	return sb.String()
}

func nodeID(id int) string {
	return fmt.Sprintf("n%d", id)
}

// escapeLabel keeps labels inside a double-quoted Mermaid string.
func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, "\"", "#quot;")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
