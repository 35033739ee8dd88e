package terminal

import "github.com/gdamore/tcell/v2"

// fromTcell converts a tcell event, returns false for event kinds the toolkit ignores
func fromTcell(raw tcell.Event) (Event, bool) {
	switch ev := raw.(type) {
	case *tcell.EventKey:
		return keyFromTcell(ev), true
	case *tcell.EventResize:
		w, h := ev.Size()
		return Event{Type: EventResize, Width: w, Height: h}, true
	default:
		return Event{}, false
	}
}

func keyFromTcell(ev *tcell.EventKey) Event {
	out := Event{Type: EventKey, Modifiers: modFromTcell(ev.Modifiers())}

	k := ev.Key()
	switch {
	case k == tcell.KeyRune:
		out.Rune = ev.Rune()
		if out.Rune == ' ' {
			out.Key = KeySpace
		} else {
			out.Key = KeyRune
		}
		return out
	case k >= tcell.KeyF1 && k <= tcell.KeyF12:
		out.Key = KeyF1 + Key(k-tcell.KeyF1)
		return out
	}

	// Named keys share codes with Ctrl+letter, check them first
	switch k {
	case tcell.KeyUp:
		out.Key = KeyUp
	case tcell.KeyDown:
		out.Key = KeyDown
	case tcell.KeyLeft:
		out.Key = KeyLeft
	case tcell.KeyRight:
		out.Key = KeyRight
	case tcell.KeyHome:
		out.Key = KeyHome
	case tcell.KeyEnd:
		out.Key = KeyEnd
	case tcell.KeyPgUp:
		out.Key = KeyPageUp
	case tcell.KeyPgDn:
		out.Key = KeyPageDown
	case tcell.KeyInsert:
		out.Key = KeyInsert
	case tcell.KeyDelete:
		out.Key = KeyDelete
	case tcell.KeyEnter:
		out.Key = KeyEnter
	case tcell.KeyTab:
		out.Key = KeyTab
	case tcell.KeyBacktab:
		out.Key = KeyBacktab
	case tcell.KeyEscape:
		out.Key = KeyEscape
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		out.Key = KeyBackspace
	default:
		if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			out.Key = KeyCtrlA + Key(k-tcell.KeyCtrlA)
			out.Modifiers |= ModCtrl
		}
	}
	return out
}

func modFromTcell(m tcell.ModMask) Modifier {
	var mod Modifier
	if m&tcell.ModShift != 0 {
		mod |= ModShift
	}
	if m&tcell.ModAlt != 0 {
		mod |= ModAlt
	}
	if m&tcell.ModCtrl != 0 {
		mod |= ModCtrl
	}
	return mod
}
