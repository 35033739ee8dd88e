// Package palette manages the bounded set of foreground/background color slots.
//
// A Pool is owned by one UI root and handed to whatever needs a color; there is
// no process-wide allocation state.
package palette

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Slots is the number of reservable color pairs, slot 0 is the terminal default
const Slots = 63

var (
	// ErrCapacityExceeded is returned when every slot is reserved
	ErrCapacityExceeded = errors.New("palette: color slot capacity exceeded")

	// ErrUnknownHandle is returned when releasing a handle the pool does not own
	ErrUnknownHandle = errors.New("palette: unknown color handle")
)

// Handle is one reserved slot
type Handle struct {
	slot  int
	fg    tcell.Color
	bg    tcell.Color
	style tcell.Style
	pool  *Pool
}

// Slot returns the reserved slot number (1..Slots)
func (h *Handle) Slot() int {
	if h == nil {
		return 0
	}
	return h.slot
}

// Colors returns the foreground and background pair
func (h *Handle) Colors() (fg, bg tcell.Color) {
	if h == nil {
		return tcell.ColorDefault, tcell.ColorDefault
	}
	return h.fg, h.bg
}

// Style returns the tcell style for the pair, default style for a nil handle
func (h *Handle) Style() tcell.Style {
	if h == nil {
		return tcell.StyleDefault
	}
	return h.style
}

// Pool hands out color slots, safe for concurrent use
type Pool struct {
	mu    sync.Mutex
	taken [Slots + 1]*Handle
	live  int
}

// NewPool creates an empty pool
func NewPool() *Pool {
	return &Pool{}
}

// Reserve takes the lowest free slot for the fg/bg pair
func (p *Pool) Reserve(fg, bg tcell.Color) (*Handle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for slot := 1; slot <= Slots; slot++ {
		if p.taken[slot] != nil {
			continue
		}
		h := &Handle{
			slot:  slot,
			fg:    fg,
			bg:    bg,
			style: tcell.StyleDefault.Foreground(fg).Background(bg),
			pool:  p,
		}
		p.taken[slot] = h
		p.live++
		return h, nil
	}
	return nil, fmt.Errorf("reserve %d live handles: %w", p.live, ErrCapacityExceeded)
}

// Release returns the handle's slot to the pool
func (p *Pool) Release(h *Handle) error {
	if h == nil || h.pool != p || h.slot < 1 || h.slot > Slots {
		return ErrUnknownHandle
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.taken[h.slot] != h {
		return fmt.Errorf("release slot %d: %w", h.slot, ErrUnknownHandle)
	}
	p.taken[h.slot] = nil
	p.live--
	return nil
}

// ReleaseAll frees every live slot, returns how many were freed
func (p *Pool) ReleaseAll() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := p.live
	for i := range p.taken {
		p.taken[i] = nil
	}
	p.live = 0
	return n
}

// Live returns the number of reserved slots
func (p *Pool) Live() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.live
}

// ParseColor resolves a color name or #rrggbb string
func ParseColor(name string) (tcell.Color, error) {
	if name == "" || name == "default" {
		return tcell.ColorDefault, nil
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return tcell.ColorDefault, fmt.Errorf("palette: unknown color %q", name)
	}
	return c, nil
}
