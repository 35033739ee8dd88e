package widget

// focus is the coordinator state machine addressing a container's matrix
// Row 0 is the header (the container's own cursor); child cells are 1-based,
// so (row, col) maps to matrix cell (row-1, col-1).
type focus struct {
	row, col       int
	minRow, minCol int
}

// reset returns to the initial cell: the header when present, else the first child
func (f *focus) reset(header bool) {
	if header {
		f.minRow, f.minCol = 0, 0
	} else {
		f.minRow, f.minCol = 1, 1
	}
	f.row, f.col = f.minRow, f.minCol
}

// onHeader reports whether the container's own cursor holds focus
func (f *focus) onHeader() bool {
	return f.row == 0
}

// target returns the focused child, nil on the header or an empty cell
func (f *focus) target(m *Matrix) Widget {
	if f.row == 0 {
		return nil
	}
	return m.Get(f.row-1, f.col-1)
}

// apply moves focus for sig, returns false when the signal was dropped
// A transition onto a padded or missing cell is reverted.
func (f *focus) apply(sig Overflow, m *Matrix) bool {
	prevRow, prevCol := f.row, f.col

	switch sig {
	case OverflowTop:
		if f.row <= f.minRow {
			return false
		}
		if f.row == 1 {
			f.col--
		}
		f.row--
	case OverflowBottom:
		if f.row >= m.LenY() {
			return false
		}
		if f.row == 0 {
			f.col++
		}
		f.row++
	case OverflowLeft:
		if f.col <= f.minCol {
			return false
		}
		if f.col == 1 {
			f.row = 0
		}
		f.col--
	case OverflowRight:
		if f.col >= m.LenX() {
			return false
		}
		if f.col == 0 {
			f.row++
		}
		f.col++
	default:
		return false
	}

	if f.row > 0 && f.target(m) == nil {
		f.row, f.col = prevRow, prevCol
		return false
	}
	return true
}
