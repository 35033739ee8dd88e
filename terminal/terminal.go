package terminal

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
)

// Screen provides the grid-drawing and key-read service
type Screen interface {
	// Size returns current terminal dimensions
	Size() (width, height int)

	// SetCell writes one cell into the back buffer, out-of-range writes are dropped
	SetCell(x, y int, ch rune, style tcell.Style)

	// ShowCursor positions the terminal cursor and makes it visible
	ShowCursor(x, y int)

	// HideCursor hides the terminal cursor
	HideCursor()

	// CursorState returns the last requested cursor position and visibility
	CursorState() (x, y int, visible bool)

	// Clear blanks the back buffer
	Clear()

	// Show flushes pending cell changes to the terminal
	Show()

	// Sync forces full redraw
	Sync()

	// PollKey waits up to timeout for the next event, returns false on timeout
	// A non-positive timeout polls without blocking
	PollKey(timeout time.Duration) (Event, bool)

	// Post injects a synthetic event ahead of terminal input
	Post(ev Event)

	// Fini restores terminal state. Safe to call multiple times
	Fini()
}

// tcellScreen implements Screen on a tcell.Screen
type tcellScreen struct {
	screen tcell.Screen

	events      chan Event
	syntheticCh chan Event
	quit        chan struct{}

	mu            sync.Mutex
	cursorX       int
	cursorY       int
	cursorVisible bool
	finalized     bool
}

// New initializes the controlling terminal and starts the input reader
func New() (Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal: create screen: %w", err)
	}
	return start(s)
}

// NewSimulation returns a Screen over an in-memory tcell simulation of the given size
// The simulation handle is returned for key injection and content inspection
func NewSimulation(width, height int) (Screen, tcell.SimulationScreen, error) {
	sim := tcell.NewSimulationScreen("UTF-8")
	s, err := start(sim)
	if err != nil {
		return nil, nil, err
	}
	sim.SetSize(width, height)
	return s, sim, nil
}

func start(s tcell.Screen) (*tcellScreen, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("terminal: init screen: %w", err)
	}
	s.HideCursor()

	t := &tcellScreen{
		screen:      s,
		events:      make(chan Event, 64),
		syntheticCh: make(chan Event, 16),
		quit:        make(chan struct{}),
		cursorX:     -1,
		cursorY:     -1,
	}
	go t.pump()
	return t, nil
}

// pump moves tcell events into the buffered event channel until Fini
func (t *tcellScreen) pump() {
	defer close(t.events)
	for {
		raw := t.screen.PollEvent()
		if raw == nil {
			return
		}
		ev, ok := fromTcell(raw)
		if !ok {
			continue
		}
		select {
		case t.events <- ev:
		case <-t.quit:
			return
		}
	}
}

func (t *tcellScreen) Size() (int, int) {
	return t.screen.Size()
}

func (t *tcellScreen) SetCell(x, y int, ch rune, style tcell.Style) {
	w, h := t.screen.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	t.screen.SetContent(x, y, ch, nil, style)
}

func (t *tcellScreen) ShowCursor(x, y int) {
	t.mu.Lock()
	t.cursorX, t.cursorY, t.cursorVisible = x, y, true
	t.mu.Unlock()
	t.screen.ShowCursor(x, y)
}

func (t *tcellScreen) HideCursor() {
	t.mu.Lock()
	t.cursorVisible = false
	t.mu.Unlock()
	t.screen.HideCursor()
}

func (t *tcellScreen) CursorState() (int, int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cursorX, t.cursorY, t.cursorVisible
}

func (t *tcellScreen) Clear() {
	t.screen.Clear()
}

func (t *tcellScreen) Show() {
	t.screen.Show()
}

func (t *tcellScreen) Sync() {
	t.screen.Sync()
}

func (t *tcellScreen) PollKey(timeout time.Duration) (Event, bool) {
	// Synthetic events first
	select {
	case ev := <-t.syntheticCh:
		return ev, true
	default:
	}

	if timeout <= 0 {
		select {
		case ev, ok := <-t.events:
			return closedOr(ev, ok), true
		default:
			return Event{}, false
		}
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ev := <-t.syntheticCh:
		return ev, true
	case ev, ok := <-t.events:
		return closedOr(ev, ok), true
	case <-timer.C:
		return Event{}, false
	}
}

func closedOr(ev Event, ok bool) Event {
	if !ok {
		return Event{Type: EventClosed}
	}
	return ev
}

func (t *tcellScreen) Post(ev Event) {
	select {
	case t.syntheticCh <- ev:
	default:
		// Channel full, drop
	}
}

func (t *tcellScreen) Fini() {
	t.mu.Lock()
	if t.finalized {
		t.mu.Unlock()
		return
	}
	t.finalized = true
	t.mu.Unlock()

	close(t.quit)
	t.screen.Fini()
}
