package tui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// RuneLen returns the display width of s in terminal cells
func RuneLen(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate truncates string with … suffix if its display width exceeds maxLen
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return "…"
	}
	return runewidth.Truncate(s, maxLen, "…")
}

// Lines splits s into display lines
func Lines(s string) []string {
	return strings.Split(s, "\n")
}

// Measure returns the line count and widest line display width of s
func Measure(s string) (height, width int) {
	if s == "" {
		return 0, 0
	}
	lines := Lines(s)
	for _, line := range lines {
		if w := RuneLen(line); w > width {
			width = w
		}
	}
	return len(lines), width
}

// Text renders text at position, truncates at region edge, returns columns consumed
func (r Region) Text(x, y int, s string, style tcell.Style) int {
	if y < 0 || y >= r.H {
		return 0
	}
	col := 0
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x+col+w > r.W {
			break
		}
		if x+col >= 0 {
			r.Cell(x+col, y, ch, style)
		}
		col += w
	}
	return col
}

// TextBlock renders s line by line from row y, returns number of lines rendered
func (r Region) TextBlock(x, y int, s string, style tcell.Style) int {
	rendered := 0
	for i, line := range Lines(s) {
		if y+i >= r.H {
			break
		}
		r.Text(x, y+i, line, style)
		rendered++
	}
	return rendered
}

// TextCenter renders text centered on row
func (r Region) TextCenter(y int, s string, style tcell.Style) {
	x := (r.W - RuneLen(s)) / 2
	r.Text(x, y, s, style)
}
