package tui

import "github.com/gdamore/tcell/v2"

// Checkbox draws a "[x]" or "[ ]" indicator, returns columns consumed
func (r Region) Checkbox(x, y int, checked bool, style tcell.Style) int {
	if x < 0 || x+2 >= r.W || y < 0 || y >= r.H {
		return 0
	}
	mark := ' '
	if checked {
		mark = 'x'
	}
	r.Cell(x, y, '[', style)
	r.Cell(x+1, y, mark, style)
	r.Cell(x+2, y, ']', style)
	return 3
}
