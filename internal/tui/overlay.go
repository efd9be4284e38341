package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// modalLayer splices the modal box into the middle of screen. The catalog
// stays visible around the box. Without a known size the box goes below.
func modalLayer(screen, box string, width, height int) string {
	if width <= 0 || height <= 0 {
		return screen + "\n" + box
	}
	rows := strings.Split(screen, "\n")
	if len(rows) > height {
		rows = rows[:height]
	}
	for len(rows) < height {
		rows = append(rows, "")
	}

	boxRows := strings.Split(box, "\n")
	boxWidth := min(lipgloss.Width(box), width)
	x := (width - boxWidth) / 2
	y := max((height-len(boxRows))/2, 0)

	for i, row := range rows {
		row = fitWidth(row, width)
		if j := i - y; j >= 0 && j < len(boxRows) {
			row = ansi.Truncate(row, x, "") + fitWidth(boxRows[j], boxWidth) + ansi.TruncateLeft(row, x+boxWidth, "")
		}
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}

// fitWidth cuts or space-pads s to exactly width cells.
func fitWidth(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}
