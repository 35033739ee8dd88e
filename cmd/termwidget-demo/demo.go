package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/termwidget/app"
	"github.com/lixenwraith/termwidget/config"
	"github.com/lixenwraith/termwidget/terminal/tui"
	"github.com/lixenwraith/termwidget/widget"
)

const clockLayout = "15:04:05"

// demo holds the widgets the workers update
type demo struct {
	top    *widget.Container
	clock  *widget.Label
	bar    *widget.Progress
	notes  *widget.Label
	checks []*widget.Checkbox
}

// buildDemo lays out the demo UI and installs it on root
//
// The frame color also paints the background; widgets without their own color inherit it.
// Tab reaches the notes column, which arrows cannot since the left column is line-mode.
//
//	+- termwidget ----------------------------+
//	| 15:04:05   arrows/hjkl move, tab cycles |
//	|                                         |
//	| ████████░░░░░░░░  42%                   |
//	|                                         |
//	| [ ] wrap text      Multiline            |
//	| [x] show seconds   notes                |
//	+-----------------------------------------+
func buildDemo(root *app.Root, line tui.LineType, theme config.Theme, now time.Time) (*demo, error) {
	pool := root.Pool()
	frame, err := pool.Reserve(theme.Frame, theme.Background)
	if err != nil {
		return nil, fmt.Errorf("reserve frame color: %w", err)
	}
	accent, err := pool.Reserve(theme.Accent, theme.Background)
	if err != nil {
		return nil, fmt.Errorf("reserve accent color: %w", err)
	}
	dim, err := pool.Reserve(theme.Dim, theme.Background)
	if err != nil {
		return nil, fmt.Errorf("reserve dim color: %w", err)
	}

	top := widget.NewContainer(0, 0,
		widget.WithBox(line),
		widget.WithTitle("termwidget"),
		widget.WithMinSize(9, 42),
	)
	top.SetColor(frame)
	top.EnableCursor(widget.ModeFree)

	d := &demo{top: top}

	d.clock = widget.NewLabel(0, 1, now.Format(clockLayout))
	d.clock.SetColor(accent)
	d.clock.EnableCursor(widget.ModeLine)

	help := widget.NewLabel(0, 12, "arrows/hjkl move, tab cycles")
	help.SetColor(dim)

	d.bar = widget.NewProgress(2, 1, 16)
	d.bar.SetColor(accent)

	wrap := widget.NewCheckbox(4, 1, "wrap text")
	seconds := widget.NewCheckbox(5, 1, "show seconds")
	seconds.SetChecked(true)
	d.checks = []*widget.Checkbox{wrap, seconds}

	d.notes = widget.NewLabel(4, 20, "Multiline\nnotes")
	d.notes.EnableCursor(widget.ModeFree)

	if err := top.Add(d.clock, help, d.bar, wrap, seconds, d.notes); err != nil {
		return nil, err
	}
	if err := root.SetContainer(top); err != nil {
		return nil, err
	}
	return d, nil
}

// runClock posts the current time to label every interval until ctx ends
func runClock(ctx context.Context, root *app.Root, label *widget.Label, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			text := now.Format(clockLayout)
			if err := root.Post(ctx, func() { label.SetText(text) }); err != nil {
				return ignoreShutdown(err)
			}
		}
	}
}

// runLoading advances bar by step every interval, wrapping when full
func runLoading(ctx context.Context, root *app.Root, bar *widget.Progress, interval time.Duration, step float64) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := root.Post(ctx, func() { bar.Step(step) }); err != nil {
				return ignoreShutdown(err)
			}
		}
	}
}

// ignoreShutdown drops errors that only mean the loop is going away
func ignoreShutdown(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, app.ErrClosed) {
		return nil
	}
	return err
}
