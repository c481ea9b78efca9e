package layout

import (
	"fmt"
	"strings"

	"github.com/PixPMusic/gopher-soundboard/internal/midi"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))
	nameStyle  = lipgloss.NewStyle().Width(4)
)

// renderPad renders a single colored pad
func renderPad(c midi.Color) string {
	r, g, b := c.Preview()
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b)))
	return style.Render("■")
}

// Terminal renders the board as a grid of colored pads followed by a key
// of button names and labels
func Terminal(pads []Pad) string {
	grid := NewGrid(pads)

	var rows []string
	for row := 0; row < midi.GridRows; row++ {
		var line strings.Builder
		for col := 0; col < midi.GridCols; col++ {
			if col > 0 {
				line.WriteString(" ")
			}
			if col == 8 {
				line.WriteString(" ")
			}
			if _, ok := midi.ButtonAt(row, col); !ok {
				line.WriteString(" ")
				continue
			}
			if p := grid[row][col]; p != nil {
				line.WriteString(renderPad(p.Color))
			} else {
				line.WriteString(emptyStyle.Render("□"))
			}
		}
		rows = append(rows, line.String())
		if row == 0 {
			rows = append(rows, "")
		}
	}

	var key []string
	for _, p := range pads {
		key = append(key, fmt.Sprintf("  %s %s %s", renderPad(p.Color), nameStyle.Render(p.Button.Name()), p.Label))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Board"),
		strings.Join(rows, "\n"),
		"",
		titleStyle.Render("Tracks"),
		strings.Join(key, "\n"),
	)
}
