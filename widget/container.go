package widget

import (
	"fmt"

	"github.com/lixenwraith/termwidget/terminal"
	"github.com/lixenwraith/termwidget/terminal/tui"
)

// Bell is notified when a focus hand-off is dropped at the edge of the UI
type Bell interface {
	Ring()
}

// Container owns a flat list of children and coordinates focus between them
type Container struct {
	Element

	box   bool
	line  tui.LineType
	title string
	minH  int
	minW  int

	children []Widget
	matrix   *Matrix
	focus    focus

	bell   Bell
	sealed bool
}

// Option configures a Container
type Option func(*Container)

// WithBox draws a border of the given line style, shifting the interior by one cell
func WithBox(line tui.LineType) Option {
	return func(c *Container) {
		c.box = true
		c.line = line
	}
}

// WithTitle sets a title drawn on the top border
func WithTitle(title string) Option {
	return func(c *Container) {
		c.title = title
	}
}

// WithMinSize sets a lower bound on the computed size, border included
func WithMinSize(height, width int) Option {
	return func(c *Container) {
		c.minH = height
		c.minW = width
	}
}

// WithBell sets the bell rung on dropped focus hand-offs
func WithBell(b Bell) Option {
	return func(c *Container) {
		c.bell = b
	}
}

// NewContainer creates an empty container at absolute position (y, x)
func NewContainer(y, x int, opts ...Option) *Container {
	c := &Container{}
	c.Y, c.X = y, x
	for _, opt := range opts {
		opt(c)
	}
	c.matrix = BuildMatrix(nil)
	c.focus.reset(false)
	c.layout()
	return c
}

// Boxed reports whether the container draws a border
func (c *Container) Boxed() bool {
	return c.box
}

// SetBox turns the border on or off
// An existing container cursor moves with the interior so it keeps its place over the content.
func (c *Container) SetBox(on bool, line tui.LineType) {
	if on != c.box && c.cursor != nil {
		d := 1
		if !on {
			d = -1
		}
		c.cursor.Y += d
		c.cursor.X += d
	}
	c.box = on
	c.line = line
	c.layout()
}

// SetBell replaces the bell rung on dropped focus hand-offs
func (c *Container) SetBell(b Bell) {
	c.bell = b
}

// EnableCursor attaches the container's own cursor at its interior origin and moves focus to it
func (c *Container) EnableCursor(mode Mode) *Cursor {
	fresh := c.cursor == nil
	cur := c.Element.EnableCursor(mode)
	if fresh {
		cur.Y, cur.X = c.border(), c.border()
	}
	c.focus.reset(true)
	return cur
}

// Add attaches children in order and rebuilds the focus matrix
// Nil widgets, containers, widgets owned elsewhere and adds after Seal are rejected
// and leave the container unchanged.
func (c *Container) Add(ws ...Widget) error {
	if c.sealed {
		return fmt.Errorf("add after render loop start: %w", ErrInvalidComposition)
	}

	for i, w := range ws {
		if w == nil || w.Base() == nil {
			return fmt.Errorf("child %d is nil: %w", i, ErrInvalidComposition)
		}
		if _, ok := w.(*Container); ok {
			return fmt.Errorf("child %d is a container: %w", i, ErrInvalidComposition)
		}
		if w.Base().parent != nil {
			return fmt.Errorf("child %d already has a parent: %w", i, ErrInvalidComposition)
		}
		for j := 0; j < i; j++ {
			if ws[j] == w {
				return fmt.Errorf("child %d added twice: %w", i, ErrInvalidComposition)
			}
		}
	}

	for _, w := range ws {
		w.Base().parent = c
		c.children = append(c.children, w)
	}

	c.matrix = BuildMatrix(c.children)
	c.focus.reset(c.cursor != nil)
	c.layout()
	return nil
}

// Seal freezes the child list, called by the loop before the first tick
func (c *Container) Seal() {
	c.sealed = true
}

// Children returns the attached children in insertion order
func (c *Container) Children() []Widget {
	return append([]Widget(nil), c.children...)
}

// Matrix returns the current focus matrix
func (c *Container) Matrix() *Matrix {
	return c.matrix
}

// FocusCell returns the coordinator's (row, col); row 0 is the header
func (c *Container) FocusCell() (row, col int) {
	return c.focus.row, c.focus.col
}

// Focused returns the focused child, nil when the header or nothing holds focus
func (c *Container) Focused() Widget {
	return c.focus.target(c.matrix)
}

// Focus moves focus directly to w, returns false when w is not focusable here
func (c *Container) Focus(w Widget) bool {
	row, col, ok := c.matrix.Locate(w)
	if !ok {
		return false
	}
	c.focus.row, c.focus.col = row+1, col+1
	return true
}

// FocusNext moves focus to the next focusable child in column order, wrapping around
// The header is skipped. Returns the newly focused child, nil when there is none.
func (c *Container) FocusNext(forward bool) Widget {
	var order []Widget
	for _, col := range c.matrix.Columns() {
		for _, w := range col {
			if w != nil {
				order = append(order, w)
			}
		}
	}
	if len(order) == 0 {
		return nil
	}

	cur := -1
	if f := c.Focused(); f != nil {
		for i, w := range order {
			if w == f {
				cur = i
				break
			}
		}
	}

	var next int
	switch {
	case cur < 0 && forward:
		next = 0
	case cur < 0:
		next = len(order) - 1
	case forward:
		next = (cur + 1) % len(order)
	default:
		next = (cur - 1 + len(order)) % len(order)
	}
	w := order[next]
	c.Focus(w)
	return w
}

func (c *Container) border() int {
	if c.box {
		return 1
	}
	return 0
}

// interiorOrigin is the absolute position children are placed relative to
func (c *Container) interiorOrigin() (y, x int) {
	oy, ox := c.Origin()
	b := c.border()
	return oy + b, ox + b
}

// interiorBounds is the container cursor range, local to the container origin
func (c *Container) interiorBounds() Bounds {
	b := c.border()
	return Bounds{
		MinY: b,
		MaxY: max(c.height-1-b, b),
		MinX: b,
		MaxX: max(c.width-1-b, b),
	}
}

// layout refreshes children sizes from content and recomputes the container size
func (c *Container) layout() {
	h, w := 0, 0
	for _, child := range c.children {
		el := child.Base()
		if m, ok := child.(measurer); ok {
			el.setSize(m.measure())
		}
		h = max(h, el.Y+el.height)
		w = max(w, el.X+el.width)
	}

	b := c.border()
	h += 2 * b
	w += 2 * b
	if c.box && c.title != "" {
		w = max(w, tui.RuneLen(c.title)+4)
	}
	c.setSize(max(h, c.minH), max(w, c.minW))
}

// Draw renders the background, the border and every child into r
func (c *Container) Draw(r tui.Region) {
	if r.Empty() {
		return
	}
	if c.color != nil {
		r.Fill(c.Style())
	}
	if c.box {
		if c.title != "" {
			r.Card(c.title, c.line, c.Style())
		} else {
			r.Box(c.line, c.Style())
		}
	}

	b := c.border()
	for _, child := range c.children {
		el := child.Base()
		child.Draw(r.Sub(b+el.X, b+el.Y, el.width, el.height))
	}
}

// Render draws the container and runs one focus step for ev
// Tab and Backtab cycle focus through the children in column order.
// Other non-directional keys go to the focused child when it implements KeyHandler.
// Returns ErrFocusUnavailable, with the terminal cursor hidden, when nothing can hold focus.
func (c *Container) Render(s terminal.Screen, ev terminal.Event) error {
	c.layout()

	oy, ox := c.Origin()
	c.Draw(tui.NewRegion(s, ox, oy, c.width, c.height))

	var key terminal.Key
	if ev.Type == terminal.EventKey {
		key = ev.Key
	}
	if key == terminal.KeyTab || key == terminal.KeyBacktab {
		c.FocusNext(key == terminal.KeyTab)
		key = terminal.KeyNone
	}

	var (
		owner  *Element
		bounds Bounds
	)
	switch {
	case c.focus.onHeader() && c.cursor != nil:
		owner = &c.Element
		bounds = c.interiorBounds()
	default:
		w := c.Focused()
		if w == nil {
			s.HideCursor()
			return ErrFocusUnavailable
		}
		owner = w.Base()
		bounds = owner.Bounds()
		if h, ok := w.(KeyHandler); ok && key != terminal.KeyNone && !key.IsDirection() {
			h.HandleKey(ev)
		}
	}

	sig := owner.track(s, key, bounds)
	if sig != OverflowNone && !c.focus.apply(sig, c.matrix) && c.bell != nil {
		c.bell.Ring()
	}
	return nil
}
