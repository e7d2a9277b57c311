// Package graph exports the room connection graph as Mermaid diagrams.
package graph

import (
	"fmt"
	"math"
	"strings"

	"github.com/samdwyer/dungeongen/internal/world"
)

// Overlay selects extra cells to show on the graph.
type Overlay struct {
	// KeptFiller adds non-room cells that ended up in the final layout.
	KeptFiller bool
	// Highlight marks a single cell index with a distinct style. Negative disables it.
	Highlight int
}

// GenerateMermaid produces a Mermaid flowchart from a cell list and its
// connection relation. Rooms are drawn as rectangles labelled with their
// index and size; links carry the center-to-center distance.
func GenerateMermaid(cells []world.Cell, conns world.Connections, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for i, c := range cells {
		switch {
		case c.Room:
			sb.WriteString(fmt.Sprintf("    %s[\"#%d %dx%d\"]\n", nodeID(i), i, c.Width, c.Height))
		case overlay != nil && overlay.KeptFiller && c.Keep:
			// Rounded for absorbed filler
			sb.WriteString(fmt.Sprintf("    %s(\"#%d %dx%d\")\n", nodeID(i), i, c.Width, c.Height))
		}
	}

	for _, p := range conns.Pairs() {
		a, b := cells[p[0]], cells[p[1]]
		sb.WriteString(fmt.Sprintf("    %s ---|%s| %s\n", nodeID(p[0]), formatDistance(a, b), nodeID(p[1])))
	}

	if overlay != nil && overlay.Highlight >= 0 && overlay.Highlight < len(cells) {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString(fmt.Sprintf("    class %s current;\n", nodeID(overlay.Highlight)))
	}

	return sb.String()
}

func nodeID(i int) string {
	return fmt.Sprintf("c%d", i)
}

func formatDistance(a, b world.Cell) string {
	ax, ay := a.ExactCenter()
	bx, by := b.ExactCenter()
	return fmt.Sprintf("%.1f", math.Hypot(ax-bx, ay-by))
}
