package widget

import (
	"fmt"
	"sync"

	"github.com/lixenwraith/termwidget/terminal/tui"
)

// percentWidth is the " 100%" suffix drawn after the bar
const percentWidth = 5

// Progress is a one-row loading bar with a percentage suffix
type Progress struct {
	Element

	bar int

	mu    sync.RWMutex
	value float64
}

// NewProgress creates a bar of bar cells at parent-relative (y, x)
func NewProgress(y, x, bar int) *Progress {
	p := &Progress{bar: max(bar, 1)}
	p.Y, p.X = y, x
	p.setSize(p.measure())
	return p
}

// Value returns the fill fraction in [0, 1]
func (p *Progress) Value() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.value
}

// SetValue sets the fill fraction, clamped to [0, 1]
func (p *Progress) SetValue(v float64) {
	v = min(max(v, 0), 1)
	p.mu.Lock()
	p.value = v
	p.mu.Unlock()
}

// Step adds delta to the value, wrapping to 0 once full; returns the new value
func (p *Progress) Step(delta float64) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.value >= 1 {
		p.value = 0
	} else {
		p.value = min(max(p.value+delta, 0), 1)
	}
	return p.value
}

func (p *Progress) measure() (int, int) {
	return 1, p.bar + percentWidth
}

// Draw implements Widget
func (p *Progress) Draw(r tui.Region) {
	v := p.Value()
	style := p.Style()
	r.Progress(0, 0, p.bar, v, style)
	r.Text(p.bar, 0, fmt.Sprintf(" %3d%%", int(v*100+0.5)), style)
}
