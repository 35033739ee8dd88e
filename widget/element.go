package widget

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/termwidget/palette"
	"github.com/lixenwraith/termwidget/terminal"
	"github.com/lixenwraith/termwidget/terminal/tui"
)

// Widget is anything a Container can hold
type Widget interface {
	// Base returns the embedded element carrying position, size, color and cursor
	Base() *Element

	// Draw renders the widget into r, which is positioned at the widget's origin
	Draw(r tui.Region)
}

// KeyHandler is implemented by widgets that consume non-directional keys while focused
type KeyHandler interface {
	HandleKey(ev terminal.Event)
}

// measurer is implemented by widgets whose size follows their content
type measurer interface {
	measure() (height, width int)
}

// Element is the positionable, sizeable rectangle every widget embeds
type Element struct {
	// Y and X are relative to the parent's interior origin, absolute for a top-level container
	Y, X int

	height int
	width  int

	color  *palette.Handle
	cursor *Cursor

	// parent is a non-owning back-reference used for coordinate resolution
	parent *Container
}

// Base implements Widget
func (e *Element) Base() *Element {
	return e
}

// Position returns the element's parent-relative position
func (e *Element) Position() (y, x int) {
	return e.Y, e.X
}

// Size returns the element's computed height and width
func (e *Element) Size() (height, width int) {
	return e.height, e.width
}

func (e *Element) setSize(height, width int) {
	if height < 0 {
		height = 0
	}
	if width < 0 {
		width = 0
	}
	e.height, e.width = height, width
}

// Color returns the element's color reservation, nil when uncolored
func (e *Element) Color() *palette.Handle {
	return e.color
}

// SetColor attaches a color reservation, ownership stays with the caller's pool
func (e *Element) SetColor(h *palette.Handle) {
	e.color = h
}

// Style returns the element's draw style
// An uncolored element inherits its parent's style.
func (e *Element) Style() tcell.Style {
	if e.color == nil && e.parent != nil {
		return e.parent.Style()
	}
	return e.color.Style()
}

// Cursor returns the attached cursor, nil when the element is not focusable
func (e *Element) Cursor() *Cursor {
	return e.cursor
}

// EnableCursor attaches a visible cursor at the element's local origin
// Calling it again replaces the mode and keeps the position
func (e *Element) EnableCursor(mode Mode) *Cursor {
	if e.cursor == nil {
		e.cursor = &Cursor{}
	}
	e.cursor.Mode = mode
	e.cursor.Visible = true
	return e.cursor
}

// Parent returns the owning container, nil for a top-level container
func (e *Element) Parent() *Container {
	return e.parent
}

// Origin resolves the element's absolute screen position through its parent chain
func (e *Element) Origin() (y, x int) {
	if e.parent == nil {
		return e.Y, e.X
	}
	py, px := e.parent.interiorOrigin()
	return py + e.Y, px + e.X
}

// Bounds returns the cursor range over the element's content
func (e *Element) Bounds() Bounds {
	return Bounds{
		MinY: 0,
		MaxY: max(e.height-1, 0),
		MinX: 0,
		MaxX: max(e.width-1, 0),
	}
}

// track lets the cursor handle key inside b and places the terminal cursor on it
func (e *Element) track(s terminal.Screen, key terminal.Key, b Bounds) Overflow {
	c := e.cursor
	if c == nil || !c.Visible {
		s.HideCursor()
		return OverflowNone
	}
	if !b.Contains(c.Y, c.X) {
		c.clamp(b)
	}

	sig := c.Advance(key, b)

	y, x := e.Origin()
	s.ShowCursor(x+c.X, y+c.Y)
	return sig
}
