package tui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/markov/pkg/domain"
	"github.com/aretw0/markov/pkg/ports"
)

// DefaultTopN is the number of transitions listed by Report.
const DefaultTopN = 10

// Report builds a markdown summary of a chain snapshot: totals and the
// most frequent transitions with their probabilities.
func Report(title string, snap domain.ChainSnapshot, topN int) string {
	if topN <= 0 {
		topN = DefaultTopN
	}

	var terminals, deadEnds int
	type row struct {
		from, to string
		count    int
		prob     float64
	}
	var rows []row
	for _, n := range snap.Nodes {
		if n.Terminal {
			terminals++
		}
		if len(n.Edges) == 0 {
			deadEnds++
			continue
		}
		total := n.TotalCount()
		for _, e := range n.Edges {
			rows = append(rows, row{
				from:  n.Label,
				to:    labelOf(snap, e.To),
				count: e.Count,
				prob:  float64(e.Count) / float64(total),
			})
		}
	}

	// Stable so ties keep insertion order.
	slices.SortStableFunc(rows, func(a, b row) int {
		return cmp.Compare(b.count, a.count)
	})
	if len(rows) > topN {
		rows = rows[:topN]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "- **States:** %d\n", len(snap.Nodes))
	fmt.Fprintf(&sb, "- **Transitions:** %d\n", snap.Transitions)
	fmt.Fprintf(&sb, "- **Terminal states:** %d\n", terminals)
	fmt.Fprintf(&sb, "- **Dead ends:** %d\n\n", deadEnds)

	if len(rows) == 0 {
		sb.WriteString("_No transitions recorded._\n")
		return sb.String()
	}

	sb.WriteString("## Top transitions\n\n")
	sb.WriteString("| From | To | Count | P |\n")
	sb.WriteString("|------|----|------:|--:|\n")
	for _, r := range rows {
		fmt.Fprintf(&sb, "| %s | %s | %d | %.2f |\n", escapeCell(r.from), escapeCell(r.to), r.count, r.prob)
	}
	return sb.String()
}

func labelOf(snap domain.ChainSnapshot, id int) string {
	if id >= 0 && id < len(snap.Nodes) && snap.Nodes[id].ID == id {
		return snap.Nodes[id].Label
	}
	for _, n := range snap.Nodes {
		if n.ID == id {
			return n.Label
		}
	}
	return fmt.Sprintf("#%d", id)
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// Walks builds a markdown section listing sample walks.
func Walks(records []ports.WalkRecord) string {
	if len(records) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("\n## Sample walks\n\n")
	for _, r := range records {
		fmt.Fprintf(&sb, "%d. **%s %d:** %s\n", r.Index, r.Label, r.Index, strings.Join(r.States, " "))
	}
	return sb.String()
}
