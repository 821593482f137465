package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/poiesic/labmatch/core"
)

// Color palette
const (
	ColorAccent   = "154"
	ColorWhite    = "255"
	ColorGray     = "245"
	ColorDarkGray = "238"
	ColorCyan     = "51"
)

// Styles holds the styles used by Terminal.
type Styles struct {
	Title  lipgloss.Style
	Header lipgloss.Style
	Cell   lipgloss.Style
	Score  lipgloss.Style
	Exact  lipgloss.Style
	Border lipgloss.Style
	Dim    lipgloss.Style
}

// DefaultStyles returns colored styles for interactive terminals.
func DefaultStyles() Styles {
	cell := lipgloss.NewStyle().Padding(0, 1)
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccent)),
		Header: cell.Bold(true).Foreground(lipgloss.Color(ColorWhite)),
		Cell:   cell,
		Score:  cell.Foreground(lipgloss.Color(ColorAccent)),
		Exact:  cell.Bold(true).Foreground(lipgloss.Color(ColorCyan)),
		Border: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
		Dim:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
	}
}

// NoColorStyles returns unstyled components for pipes and plain terminals.
func NoColorStyles() Styles {
	cell := lipgloss.NewStyle().Padding(0, 1)
	return Styles{
		Title:  lipgloss.NewStyle(),
		Header: cell,
		Cell:   cell,
		Score:  cell,
		Exact:  cell,
		Border: lipgloss.NewStyle(),
		Dim:    lipgloss.NewStyle(),
	}
}

// GetStyles returns the appropriate styles based on color preference.
func GetStyles(noColor bool) Styles {
	if noColor {
		return NoColorStyles()
	}
	return DefaultStyles()
}

// Terminal renders results as a bordered table for a terminal.
func Terminal(results []core.MatchResult, query string, styles Styles) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("查询: " + query))
	b.WriteString("\n")

	if len(results) == 0 {
		b.WriteString(styles.Dim.Render(EmptyMessage))
		b.WriteString("\n")
		return b.String()
	}

	l := layoutFor(results)
	exact := results[0].IsExact()
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.Border).
		Headers(l.headers...).
		Rows(rows(results, l)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styles.Header
			case col == 1 && exact:
				return styles.Exact
			case col == 1:
				return styles.Score
			default:
				return styles.Cell
			}
		})

	b.WriteString(t.String())
	b.WriteString("\n")
	return b.String()
}
