package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors (Flexoki Dark)
var (
	colorBorder = lipgloss.Color("#575653")
	colorText   = lipgloss.Color("#FFFCF0")
	colorAccent = lipgloss.Color("#3AA99F")
	colorGreen  = lipgloss.Color("#879A39")
	colorOrange = lipgloss.Color("#DA702C")
	colorRed    = lipgloss.Color("#D14D41")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorBorder)

	goodStyle = lipgloss.NewStyle().Foreground(colorGreen)
	warnStyle = lipgloss.NewStyle().Foreground(colorOrange)
	badStyle  = lipgloss.NewStyle().Foreground(colorRed)
	dimStyle  = lipgloss.NewStyle().Foreground(colorBorder)
)

// table is a bordered text table. Columns after the first are right-aligned.
type table struct {
	title   string
	headers []string
	rows    [][]string
	// rowStyle optionally styles a whole row, e.g. insolvent years.
	rowStyle func(i int) *lipgloss.Style
}

func renderTitle(title string) string {
	return titleStyle.Render(title) + "\n"
}

// renderSection renders a heading followed by aligned label/value pairs.
func renderSection(title string, pairs [][2]string) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")
	width := 0
	for _, p := range pairs {
		if w := lipgloss.Width(p[0]); w > width {
			width = w
		}
	}
	for _, p := range pairs {
		fmt.Fprintf(&b, "  %s  %s\n", labelStyle.Render(fmt.Sprintf("%-*s", width, p[0])), p[1])
	}
	b.WriteString("\n")
	return b.String()
}

func renderTable(t table) string {
	numCols := len(t.headers)
	if numCols == 0 {
		return ""
	}
	widths := make([]int, numCols)
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < numCols {
				if w := lipgloss.Width(cell); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}

	var b strings.Builder
	if t.title != "" {
		b.WriteString(headerStyle.Render(t.title))
		b.WriteString("\n")
	}

	rule := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right))
		b.WriteString("\n")
	}
	line := func(cells []string, style func(string) string) {
		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
			if i == 0 {
				cell = cell + pad
			} else {
				cell = pad + cell
			}
			b.WriteString(style(" " + cell + " "))
			b.WriteString(dimStyle.Render("│"))
		}
		b.WriteString("\n")
	}

	rule("╭", "┬", "╮")
	line(t.headers, func(s string) string { return headerStyle.Render(s) })
	rule("├", "┼", "┤")
	for i, row := range t.rows {
		style := func(s string) string { return s }
		if t.rowStyle != nil {
			if st := t.rowStyle(i); st != nil {
				style = func(s string) string { return st.Render(s) }
			}
		}
		line(row, style)
	}
	rule("╰", "┴", "╯")
	return b.String()
}
