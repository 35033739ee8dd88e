package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/lixenwraith/termwidget/terminal"
	"github.com/lixenwraith/termwidget/terminal/tui"
	"github.com/lixenwraith/termwidget/widget"
)

func newScreen(t *testing.T) terminal.Screen {
	t.Helper()
	s, _, err := terminal.NewSimulation(40, 12)
	if err != nil {
		t.Fatalf("NewSimulation failed: %v", err)
	}
	t.Cleanup(s.Fini)
	return s
}

// tickUntil ticks until cond holds, failing after a bounded number of ticks
func tickUntil(t *testing.T, r *Root, cond func() bool) {
	t.Helper()
	for i := 0; i < 20; i++ {
		if _, err := r.Tick(context.Background()); err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
		if cond() {
			return
		}
	}
	t.Fatal("condition not reached")
}

func column(t *testing.T) (*widget.Container, *widget.Label, *widget.Label) {
	t.Helper()
	c := widget.NewContainer(0, 0, widget.WithBox(tui.LineSingle))
	top := widget.NewLabel(0, 0, "top")
	top.EnableCursor(widget.ModeLine)
	bottom := widget.NewLabel(1, 0, "bottom")
	bottom.EnableCursor(widget.ModeLine)
	if err := c.Add(top, bottom); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	return c, top, bottom
}

type boom struct {
	widget.Element
}

func (b *boom) Draw(tui.Region) {
	panic("draw exploded")
}

func TestQuitKeyStopsLoop(t *testing.T) {
	tests := []struct {
		name string
		quit terminal.Binding
		ev   terminal.Event
	}{
		{"Default q", terminal.Binding{Key: terminal.KeyRune, Rune: 'q'}, terminal.RuneEvent('q')},
		{"Escape", terminal.Binding{Key: terminal.KeyEscape}, terminal.KeyEvent(terminal.KeyEscape)},
		{"Ctrl-C always", terminal.Binding{Key: terminal.KeyEscape}, terminal.KeyEvent(terminal.KeyCtrlC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newScreen(t)
			r := New(s, WithQuit(tt.quit), WithTick(5*time.Millisecond))
			c, _, _ := column(t)
			if err := r.SetContainer(c); err != nil {
				t.Fatalf("SetContainer failed: %v", err)
			}

			s.Post(tt.ev)
			done := make(chan error, 1)
			go func() { done <- r.Run(context.Background()) }()

			select {
			case err := <-done:
				if err != nil {
					t.Errorf("Run = %v, want nil", err)
				}
			case <-time.After(2 * time.Second):
				t.Fatal("loop did not stop")
			}
		})
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	s := newScreen(t)
	r := New(s, WithTick(5*time.Millisecond))
	c, _, _ := column(t)
	if err := r.SetContainer(c); err != nil {
		t.Fatalf("SetContainer failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	if err := r.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run = %v, want deadline exceeded", err)
	}

	// Run sealed the container
	if err := c.Add(widget.NewLabel(5, 0, "late")); !errors.Is(err, widget.ErrInvalidComposition) {
		t.Errorf("Add after Run = %v, want ErrInvalidComposition", err)
	}
}

func TestAliasMovesFocus(t *testing.T) {
	s := newScreen(t)
	r := New(s,
		WithTick(5*time.Millisecond),
		WithAliases(map[terminal.Binding]terminal.Key{
			{Key: terminal.KeyRune, Rune: 'j'}: terminal.KeyDown,
		}),
	)
	c, _, bottom := column(t)
	if err := r.SetContainer(c); err != nil {
		t.Fatalf("SetContainer failed: %v", err)
	}

	s.Post(terminal.RuneEvent('j'))
	tickUntil(t, r, func() bool { return c.Focused() == bottom })

	if x, y, visible := s.CursorState(); !visible || x != 1 || y != 1 {
		t.Errorf("cursor = (%d,%d,%v), want (1,1,true) on the first child", x, y, visible)
	}

	if _, err := r.Tick(context.Background()); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if x, y, _ := s.CursorState(); x != 1 || y != 2 {
		t.Errorf("cursor = (%d,%d), want (1,2) on the second child", x, y)
	}
}

func TestPostAppliesBeforeRender(t *testing.T) {
	s := newScreen(t)
	r := New(s, WithTick(time.Millisecond))
	c, top, _ := column(t)
	if err := r.SetContainer(c); err != nil {
		t.Fatalf("SetContainer failed: %v", err)
	}

	ctx := context.Background()
	if err := r.Post(ctx, func() { top.SetText("changed") }); err != nil {
		t.Fatalf("Post failed: %v", err)
	}
	if err := r.Post(ctx, nil); err != nil {
		t.Errorf("Post(nil) = %v", err)
	}

	if _, err := r.Tick(ctx); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if top.Text() != "changed" {
		t.Errorf("Text = %q, want changed", top.Text())
	}
	if _, w := c.Size(); w != len("changed")+2 {
		t.Errorf("container width = %d, want %d", w, len("changed")+2)
	}
}

func TestPostBlocksUntilContextEnds(t *testing.T) {
	r := New(newScreen(t))
	ctx := context.Background()
	for i := 0; i < updateQueue; i++ {
		if err := r.Post(ctx, func() {}); err != nil {
			t.Fatalf("Post %d failed: %v", i, err)
		}
	}

	short, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	if err := r.Post(short, func() {}); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Post on full queue = %v, want deadline exceeded", err)
	}
}

func TestPanicsAreContained(t *testing.T) {
	logger, hook := test.NewNullLogger()
	s := newScreen(t)
	r := New(s, WithLogger(logger), WithTick(time.Millisecond))

	c := widget.NewContainer(0, 0)
	b := &boom{}
	b.EnableCursor(widget.ModePoint)
	if err := c.Add(b); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := r.SetContainer(c); err != nil {
		t.Fatalf("SetContainer failed: %v", err)
	}

	ctx := context.Background()
	if err := r.Post(ctx, func() { panic("update exploded") }); err != nil {
		t.Fatalf("Post failed: %v", err)
	}

	more, err := r.Tick(ctx)
	if err != nil || !more {
		t.Fatalf("Tick = (%v, %v), want (true, nil)", more, err)
	}

	var panics int
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.ErrorLevel {
			panics++
		}
	}
	if panics != 2 {
		t.Errorf("logged %d panics, want 2", panics)
	}
}

func TestFocusUnavailableLoggedOnce(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	s := newScreen(t)
	s.ShowCursor(0, 0)
	r := New(s, WithLogger(logger), WithTick(time.Millisecond))
	if err := r.SetContainer(widget.NewContainer(0, 0, widget.WithBox(tui.LineDouble))); err != nil {
		t.Fatalf("SetContainer failed: %v", err)
	}

	for i := 0; i < 5; i++ {
		if more, err := r.Tick(context.Background()); err != nil || !more {
			t.Fatalf("Tick = (%v, %v)", more, err)
		}
	}

	if _, _, visible := s.CursorState(); visible {
		t.Error("cursor visible with nothing focusable")
	}

	var n int
	for _, e := range hook.AllEntries() {
		if e.Message == "no focusable element, cursor hidden" {
			n++
		}
	}
	if n != 1 {
		t.Errorf("logged %d times, want 1", n)
	}
}

func TestSetContainerRejects(t *testing.T) {
	r := New(newScreen(t))

	if err := r.SetContainer(nil); !errors.Is(err, widget.ErrInvalidComposition) {
		t.Errorf("SetContainer(nil) = %v", err)
	}
	if err := r.Run(context.Background()); !errors.Is(err, widget.ErrInvalidComposition) {
		t.Errorf("Run without container = %v", err)
	}
}

type countingBell struct {
	rings, cleanups int
}

func (b *countingBell) Ring()    { b.rings++ }
func (b *countingBell) Cleanup() { b.cleanups++ }

func TestCloseAggregatesAndReleases(t *testing.T) {
	s := newScreen(t)
	bell := &countingBell{}
	errA := errors.New("closer a")
	errB := errors.New("closer b")

	var order []string
	r := New(s,
		WithBell(bell),
		WithCloser(func() error { order = append(order, "a"); return errA }),
		WithCloser(func() error { order = append(order, "b"); return errB }),
		WithCloser(func() error { order = append(order, "c"); return nil }),
	)

	for i := 0; i < 3; i++ {
		if _, err := r.Pool().Reserve(tcell.ColorRed, tcell.ColorBlack); err != nil {
			t.Fatalf("Reserve failed: %v", err)
		}
	}

	err := r.Close()
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("Close = %v, want both closer errors", err)
	}
	if len(order) != 3 || order[0] != "c" || order[2] != "a" {
		t.Errorf("closer order = %v, want [c b a]", order)
	}
	if r.Pool().Live() != 0 {
		t.Errorf("Live = %d after Close", r.Pool().Live())
	}
	if bell.cleanups != 1 {
		t.Errorf("bell cleanups = %d, want 1", bell.cleanups)
	}

	if err := r.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("second Close = %v, want ErrClosed", err)
	}
	if err := r.Post(context.Background(), func() {}); !errors.Is(err, ErrClosed) {
		t.Errorf("Post after Close = %v, want ErrClosed", err)
	}
}

func TestBellWiredToContainer(t *testing.T) {
	s := newScreen(t)
	bell := &countingBell{}
	r := New(s, WithBell(bell), WithTick(time.Millisecond))
	c, _, _ := column(t)
	if err := r.SetContainer(c); err != nil {
		t.Fatalf("SetContainer failed: %v", err)
	}

	s.Post(terminal.KeyEvent(terminal.KeyUp))
	tickUntil(t, r, func() bool { return bell.rings == 1 })
}
