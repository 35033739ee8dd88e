// Package terminal provides the grid-drawing and key-read service used by the widget tree.
//
// Features:
//   - tcell-backed Screen with cell writes, cursor placement and buffered flush
//   - Bounded-timeout key polling fed by a dedicated input goroutine
//   - Key/Event model independent of tcell, with canonical config key names
//   - Simulation screen constructor for tests
//
// Coordinates follow tcell: x is the column, y is the row, both 0-indexed.
package terminal
