package widget

import "github.com/lixenwraith/termwidget/terminal"

// Mode restricts which axes a cursor may move along
type Mode uint8

const (
	ModeLine  Mode = iota // vertical only
	ModeFree              // both axes
	ModePoint             // static, display only
)

func (m Mode) String() string {
	switch m {
	case ModeLine:
		return "line"
	case ModeFree:
		return "free"
	case ModePoint:
		return "point"
	default:
		return "unknown"
	}
}

// Overflow is the result of a move that would leave the owner's interior
type Overflow uint8

const (
	OverflowNone Overflow = iota
	OverflowTop
	OverflowBottom
	OverflowLeft
	OverflowRight
)

func (o Overflow) String() string {
	switch o {
	case OverflowNone:
		return "none"
	case OverflowTop:
		return "top"
	case OverflowBottom:
		return "bottom"
	case OverflowLeft:
		return "left"
	case OverflowRight:
		return "right"
	default:
		return "unknown"
	}
}

// Bounds is an inclusive interior range in owner-local coordinates
type Bounds struct {
	MinY, MaxY int
	MinX, MaxX int
}

// Contains reports whether (y, x) lies inside b
func (b Bounds) Contains(y, x int) bool {
	return y >= b.MinY && y <= b.MaxY && x >= b.MinX && x <= b.MaxX
}

// Cursor is the caret state decorating one element
type Cursor struct {
	Y, X    int // local to owner
	Visible bool
	Mode    Mode
}

// Advance applies one key within b
// Moves that stay inside b are applied; moves that would leave it are not and
// return the matching overflow. Hidden and point-mode cursors never move.
func (c *Cursor) Advance(key terminal.Key, b Bounds) Overflow {
	if c == nil || !c.Visible || c.Mode == ModePoint {
		return OverflowNone
	}

	switch key {
	case terminal.KeyUp:
		if c.Y-1 < b.MinY {
			return OverflowTop
		}
		c.Y--
	case terminal.KeyDown:
		if c.Y+1 > b.MaxY {
			return OverflowBottom
		}
		c.Y++
	case terminal.KeyLeft:
		if c.Mode != ModeFree {
			return OverflowNone
		}
		if c.X-1 < b.MinX {
			return OverflowLeft
		}
		c.X--
	case terminal.KeyRight:
		if c.Mode != ModeFree {
			return OverflowNone
		}
		if c.X+1 > b.MaxX {
			return OverflowRight
		}
		c.X++
	}
	return OverflowNone
}

// clamp pulls the cursor back inside b, used after an owner shrinks
func (c *Cursor) clamp(b Bounds) {
	if c.Y > b.MaxY {
		c.Y = b.MaxY
	}
	if c.Y < b.MinY {
		c.Y = b.MinY
	}
	if c.X > b.MaxX {
		c.X = b.MaxX
	}
	if c.X < b.MinX {
		c.X = b.MinX
	}
}
