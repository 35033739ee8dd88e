// Package tui provides immediate-mode drawing primitives over a terminal.Screen.
//
// Core abstraction is Region, representing a rectangular area of the screen.
// All drawing operations are relative to region bounds with automatic clipping.
//
// Usage pattern:
//
//	root := tui.NewRegion(screen, 0, 0, w, h)
//	inner := root.Card("TITLE", tui.LineDouble, borderStyle)
//	inner.Text(0, 0, "Hello", style)
//	screen.Show()
package tui
