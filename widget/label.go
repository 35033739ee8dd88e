package widget

import (
	"sync"

	"github.com/lixenwraith/termwidget/terminal/tui"
)

// Label is a block of static or updatable text, sized to its content
type Label struct {
	Element

	mu   sync.RWMutex
	text string
}

// NewLabel creates a label at parent-relative (y, x)
func NewLabel(y, x int, text string) *Label {
	l := &Label{text: text}
	l.Y, l.X = y, x
	l.setSize(tui.Measure(text))
	return l
}

// Text returns the current text
func (l *Label) Text() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.text
}

// SetText replaces the text, size follows on the next layout
func (l *Label) SetText(text string) {
	l.mu.Lock()
	l.text = text
	l.mu.Unlock()
}

func (l *Label) measure() (int, int) {
	return tui.Measure(l.Text())
}

// Draw implements Widget
func (l *Label) Draw(r tui.Region) {
	r.TextBlock(0, 0, l.Text(), l.Style())
}
