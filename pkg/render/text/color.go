package text

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/akshaykmanoj/treeline/pkg/forest"
	"github.com/akshaykmanoj/treeline/pkg/rel"
)

var (
	styleRoot = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("36"))

	// Fixed palette cycled by tree level below the roots.
	levelPalette = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("35")),  // green
		lipgloss.NewStyle().Foreground(lipgloss.Color("220")), // amber
		lipgloss.NewStyle().Foreground(lipgloss.Color("75")),  // light blue
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")), // gray
	}
)

// Colorize wraps a label function with terminal styling keyed by tree level:
// level 0 renders bold and emphasized, deeper levels cycle the fixed palette,
// and styling is reset after each label. Pass nil to colorize stored labels.
//
// Colorization is pure decoration - the emitted tree structure is byte-for-
// byte identical to the uncolored output once styling sequences are stripped.
func Colorize(label LabelFunc) LabelFunc {
	if label == nil {
		label = storedLabel
	}
	return func(n *forest.TreeNode, ancestors []*forest.TreeNode, relation rel.Relation) string {
		s := label(n, ancestors, relation)
		if n.Level <= 0 {
			return styleRoot.Render(s)
		}
		return levelPalette[(n.Level-1)%len(levelPalette)].Render(s)
	}
}
