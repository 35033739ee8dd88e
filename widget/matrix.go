package widget

import "sort"

// Matrix indexes cursor-bearing widgets into columns by x and rows by y
// Columns are padded with nil slots to the height of the tallest column
type Matrix struct {
	cols [][]Widget
	rows int
}

// BuildMatrix indexes the focusable widgets of children
// Widgets sharing an exact x form one column; order of children only breaks ties
func BuildMatrix(children []Widget) *Matrix {
	var cols [][]Widget

	for _, w := range children {
		el := w.Base()
		if el.cursor == nil {
			continue
		}

		idx := -1
		for i, col := range cols {
			if len(col) > 0 && col[0].Base().X == el.X {
				idx = i
				break
			}
		}
		if idx < 0 {
			cols = append(cols, nil)
			idx = len(cols) - 1
		}
		cols[idx] = append(cols[idx], w)
	}

	rows := 0
	for _, col := range cols {
		sort.SliceStable(col, func(i, j int) bool {
			return col[i].Base().Y < col[j].Base().Y
		})
		rows = max(rows, len(col))
	}

	sort.SliceStable(cols, func(i, j int) bool {
		return columnLess(cols[i], cols[j])
	})

	for i, col := range cols {
		for len(col) < rows {
			col = append(col, nil)
		}
		cols[i] = col
	}

	return &Matrix{cols: cols, rows: rows}
}

// columnLess orders columns by their first element's x, an empty column sorts first
func columnLess(a, b []Widget) bool {
	if len(a) == 0 || a[0] == nil {
		return len(b) > 0 && b[0] != nil
	}
	if len(b) == 0 || b[0] == nil {
		return false
	}
	return a[0].Base().X < b[0].Base().X
}

// LenY returns the number of rows in every column
func (m *Matrix) LenY() int {
	if m == nil {
		return 0
	}
	return m.rows
}

// LenX returns the number of columns
func (m *Matrix) LenX() int {
	if m == nil {
		return 0
	}
	return len(m.cols)
}

// Len returns the number of indexed widgets, padding excluded
func (m *Matrix) Len() int {
	if m == nil {
		return 0
	}
	n := 0
	for _, col := range m.cols {
		for _, w := range col {
			if w != nil {
				n++
			}
		}
	}
	return n
}

// Get returns the widget at zero-based (row, col), nil for padding or out of range
func (m *Matrix) Get(row, col int) Widget {
	if m == nil || col < 0 || col >= len(m.cols) || row < 0 || row >= m.rows {
		return nil
	}
	return m.cols[col][row]
}

// Columns returns a copy of the column layout
func (m *Matrix) Columns() [][]Widget {
	if m == nil {
		return nil
	}
	out := make([][]Widget, len(m.cols))
	for i, col := range m.cols {
		out[i] = append([]Widget(nil), col...)
	}
	return out
}

// Locate returns the zero-based cell of w, false when w is not indexed
func (m *Matrix) Locate(w Widget) (row, col int, ok bool) {
	if m == nil || w == nil {
		return 0, 0, false
	}
	for c, column := range m.cols {
		for r, cell := range column {
			if cell == w {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}
