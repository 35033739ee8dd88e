package widget

import (
	"sync"

	"github.com/lixenwraith/termwidget/terminal"
	"github.com/lixenwraith/termwidget/terminal/tui"
)

// Checkbox is a focusable "[x] label" toggle
// Its cursor sits on the mark in line mode, so vertical keys pass focus on.
type Checkbox struct {
	Element

	label string

	mu      sync.RWMutex
	checked bool
}

// NewCheckbox creates a checkbox at parent-relative (y, x) with a cursor on its mark
func NewCheckbox(y, x int, label string) *Checkbox {
	c := &Checkbox{label: label}
	c.Y, c.X = y, x
	c.setSize(c.measure())
	cur := c.EnableCursor(ModeLine)
	cur.X = 1
	return c
}

// Checked reports the current state
func (c *Checkbox) Checked() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.checked
}

// SetChecked sets the state
func (c *Checkbox) SetChecked(v bool) {
	c.mu.Lock()
	c.checked = v
	c.mu.Unlock()
}

// Toggle flips the state and returns the new one
func (c *Checkbox) Toggle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checked = !c.checked
	return c.checked
}

// HandleKey toggles on Space or Enter
func (c *Checkbox) HandleKey(ev terminal.Event) {
	switch ev.Key {
	case terminal.KeySpace, terminal.KeyEnter:
		c.Toggle()
	}
}

func (c *Checkbox) measure() (int, int) {
	return 1, 4 + tui.RuneLen(c.label)
}

// Draw implements Widget
func (c *Checkbox) Draw(r tui.Region) {
	style := c.Style()
	r.Checkbox(0, 0, c.Checked(), style)
	r.Text(4, 0, c.label, style)
}
