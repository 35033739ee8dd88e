// Package widget implements the element tree and the focus-traversal engine.
//
// A Container owns flat children (containers do not nest). Children that carry
// a Cursor are indexed into a Matrix: one column per distinct x, rows ordered by
// y. The container's focus coordinator addresses that matrix with a (row, col)
// pair where row 0 / col 0 is the container's own cursor (the header) and child
// cells are 1-based.
//
// Each tick the focused cursor handles one key. A move that would leave the
// owner's interior bounds is not applied; it yields an Overflow signal which
// the coordinator turns into a focus hand-off to the neighbouring cell. The
// newly focused element receives keys from the next tick on.
//
// Render is not re-entrant and must only be called from the loop goroutine.
package widget
