package terminal

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestKeyFromTcell(t *testing.T) {
	tests := []struct {
		name    string
		key     tcell.Key
		ch      rune
		mod     tcell.ModMask
		want    Key
		wantR   rune
		wantMod Modifier
	}{
		{"Arrow up", tcell.KeyUp, 0, tcell.ModNone, KeyUp, 0, ModNone},
		{"Arrow right shifted", tcell.KeyRight, 0, tcell.ModShift, KeyRight, 0, ModShift},
		{"Rune", tcell.KeyRune, 'x', tcell.ModNone, KeyRune, 'x', ModNone},
		{"Space rune", tcell.KeyRune, ' ', tcell.ModNone, KeySpace, ' ', ModNone},
		{"Enter", tcell.KeyEnter, 0, tcell.ModNone, KeyEnter, 0, ModNone},
		{"Escape", tcell.KeyEscape, 0, tcell.ModNone, KeyEscape, 0, ModNone},
		{"Backspace2", tcell.KeyBackspace2, 0, tcell.ModNone, KeyBackspace, 0, ModNone},
		{"F5", tcell.KeyF5, 0, tcell.ModNone, KeyF5, 0, ModNone},
		{"Ctrl+C", tcell.KeyCtrlC, 0, tcell.ModCtrl, KeyCtrlC, 0, ModCtrl},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := fromTcell(tcell.NewEventKey(tt.key, tt.ch, tt.mod))
			if !ok {
				t.Fatal("Expected key event to convert")
			}
			if ev.Type != EventKey {
				t.Fatalf("Expected EventKey, got %d", ev.Type)
			}
			if ev.Key != tt.want {
				t.Errorf("Expected key %d, got %d", tt.want, ev.Key)
			}
			if ev.Rune != tt.wantR {
				t.Errorf("Expected rune %q, got %q", tt.wantR, ev.Rune)
			}
			if ev.Modifiers != tt.wantMod {
				t.Errorf("Expected modifiers %b, got %b", tt.wantMod, ev.Modifiers)
			}
		})
	}
}

func TestResizeFromTcell(t *testing.T) {
	ev, ok := fromTcell(tcell.NewEventResize(100, 40))
	if !ok || ev.Type != EventResize {
		t.Fatalf("Expected resize event, got %+v ok=%v", ev, ok)
	}
	if ev.Width != 100 || ev.Height != 40 {
		t.Errorf("Expected 100x40, got %dx%d", ev.Width, ev.Height)
	}
}
