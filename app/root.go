// Package app runs the termwidget event loop: one container, one screen, one tick at a time.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/termwidget/palette"
	"github.com/lixenwraith/termwidget/terminal"
	"github.com/lixenwraith/termwidget/widget"
)

const (
	defaultTick = 50 * time.Millisecond
	updateQueue = 64
)

// ErrClosed is returned by Post and Close once the root has been closed
var ErrClosed = errors.New("app: root closed")

// Update mutates widget state on the loop goroutine
type Update func()

// Root owns the screen, the color pool and the top-level container
type Root struct {
	screen terminal.Screen
	pool   *palette.Pool
	top    *widget.Container
	bell   widget.Bell
	log    logrus.FieldLogger

	tick    time.Duration
	quit    terminal.Binding
	aliases map[terminal.Binding]terminal.Key
	closers []func() error

	updates chan Update
	done    chan struct{}

	// noFocus is set while the container reports nothing focusable, so the condition logs once
	noFocus bool

	mu     sync.Mutex
	closed bool
}

// Option configures a Root
type Option func(*Root)

// WithLogger sets the loop logger, output is discarded by default
func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Root) {
		if l != nil {
			r.log = l
		}
	}
}

// WithTick sets how long one tick waits for a key
func WithTick(d time.Duration) Option {
	return func(r *Root) {
		if d > 0 {
			r.tick = d
		}
	}
}

// WithQuit sets the quit key, Ctrl-C always quits
func WithQuit(b terminal.Binding) Option {
	return func(r *Root) {
		r.quit = b
	}
}

// WithAliases maps extra bindings onto arrow keys before they reach the container
func WithAliases(m map[terminal.Binding]terminal.Key) Option {
	return func(r *Root) {
		r.aliases = m
	}
}

// WithBell sets the bell handed to the top container
func WithBell(b widget.Bell) Option {
	return func(r *Root) {
		r.bell = b
	}
}

// WithCloser registers fn to run last during Close
func WithCloser(fn func() error) Option {
	return func(r *Root) {
		r.closers = append(r.closers, fn)
	}
}

// New creates a root drawing on screen
func New(screen terminal.Screen, opts ...Option) *Root {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	r := &Root{
		screen:  screen,
		pool:    palette.NewPool(),
		log:     discard,
		tick:    defaultTick,
		quit:    terminal.Binding{Key: terminal.KeyRune, Rune: 'q'},
		updates: make(chan Update, updateQueue),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Pool returns the color pool owned by this root
func (r *Root) Pool() *palette.Pool {
	return r.pool
}

// Container returns the top-level container, nil before SetContainer
func (r *Root) Container() *widget.Container {
	return r.top
}

// SetContainer installs the top-level container
// The container must be top-level (no parent); it is sealed when the loop starts.
func (r *Root) SetContainer(c *widget.Container) error {
	if c == nil {
		return fmt.Errorf("nil top-level container: %w", widget.ErrInvalidComposition)
	}
	if c.Parent() != nil {
		return fmt.Errorf("top-level container has a parent: %w", widget.ErrInvalidComposition)
	}
	if r.bell != nil {
		c.SetBell(r.bell)
	}
	r.top = c
	return nil
}

// Post queues u to run on the loop goroutine before the next render
// Blocks while the queue is full until ctx ends or the root closes.
func (r *Root) Post(ctx context.Context, u Update) error {
	if u == nil {
		return nil
	}
	select {
	case <-r.done:
		return ErrClosed
	default:
	}

	select {
	case r.updates <- u:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-r.done:
		return ErrClosed
	}
}

// Run ticks until the quit key, screen closure or ctx cancellation
// Returns nil on quit, ctx.Err() on cancellation.
func (r *Root) Run(ctx context.Context) error {
	if r.top == nil {
		return fmt.Errorf("run without container: %w", widget.ErrInvalidComposition)
	}
	r.top.Seal()

	r.log.WithField("tick", r.tick).Info("event loop started")
	defer r.log.Info("event loop stopped")

	for {
		more, err := r.Tick(ctx)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// Tick runs one loop iteration: updates, one key, one render pass
// Returns false when the loop should stop.
func (r *Root) Tick(ctx context.Context) (bool, error) {
	if r.top == nil {
		return false, fmt.Errorf("tick without container: %w", widget.ErrInvalidComposition)
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.drain()

	ev, ok := r.screen.PollKey(r.tick)
	if !ok {
		ev = terminal.Event{}
	}

	switch ev.Type {
	case terminal.EventClosed:
		r.log.Info("screen closed")
		return false, nil
	case terminal.EventResize:
		r.log.WithFields(logrus.Fields{"width": ev.Width, "height": ev.Height}).Debug("resize")
		r.screen.Sync()
		ev = terminal.Event{}
	case terminal.EventKey:
		if ev.Key == terminal.KeyCtrlC || r.quit.Matches(ev) {
			r.log.WithField("key", r.quit.String()).Info("quit requested")
			return false, nil
		}
		ev = r.translate(ev)
	}

	r.screen.Clear()
	r.render(ev)
	r.screen.Show()
	return true, nil
}

// drain applies every queued update without blocking
func (r *Root) drain() {
	for {
		select {
		case u := <-r.updates:
			r.apply(u)
		default:
			return
		}
	}
}

func (r *Root) apply(u Update) {
	defer func() {
		if p := recover(); p != nil {
			r.log.WithField("panic", p).Error("update panicked")
		}
	}()
	u()
}

// translate maps aliased bindings onto arrow keys
func (r *Root) translate(ev terminal.Event) terminal.Event {
	b := terminal.Binding{Key: ev.Key}
	if ev.Key == terminal.KeyRune {
		b.Rune = ev.Rune
	}
	if k, ok := r.aliases[b]; ok {
		out := terminal.KeyEvent(k)
		out.Modifiers = ev.Modifiers
		return out
	}
	return ev
}

func (r *Root) render(ev terminal.Event) {
	defer func() {
		if p := recover(); p != nil {
			r.log.WithField("panic", p).Error("render pass panicked")
		}
	}()

	err := r.top.Render(r.screen, ev)
	switch {
	case errors.Is(err, widget.ErrFocusUnavailable):
		if !r.noFocus {
			r.log.Debug("no focusable element, cursor hidden")
			r.noFocus = true
		}
	case err != nil:
		r.log.WithError(err).Warn("render failed")
	default:
		if r.noFocus {
			r.log.Debug("focus available")
			r.noFocus = false
		}
	}
}

// Close releases every color handle, silences the bell, restores the terminal
// and runs registered closers. Failures are aggregated.
func (r *Root) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrClosed
	}
	r.closed = true
	close(r.done)
	r.mu.Unlock()

	if n := r.pool.ReleaseAll(); n > 0 {
		r.log.WithField("handles", n).Debug("released color handles")
	}
	if c, ok := r.bell.(interface{ Cleanup() }); ok {
		c.Cleanup()
	}
	r.screen.Fini()

	var result *multierror.Error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
