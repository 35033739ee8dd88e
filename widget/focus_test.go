package widget

import (
	"math/rand"
	"testing"
)

var signals = []Overflow{OverflowNone, OverflowTop, OverflowBottom, OverflowLeft, OverflowRight}

// grid builds a matrix of cols columns with the given heights
func grid(heights ...int) *Matrix {
	var children []Widget
	for col, h := range heights {
		for row := 0; row < h; row++ {
			children = append(children, focusable(row*2, col*10))
		}
	}
	return BuildMatrix(children)
}

func TestFocusStaysInBounds(t *testing.T) {
	matrices := []*Matrix{
		grid(),
		grid(1),
		grid(3),
		grid(1, 1, 1),
		grid(2, 4, 1),
		grid(5, 2, 3, 1),
	}

	rng := rand.New(rand.NewSource(42))
	for mi, m := range matrices {
		for _, header := range []bool{false, true} {
			var f focus
			f.reset(header)
			if !header && m.Len() == 0 {
				for _, sig := range signals {
					if f.apply(sig, m) {
						t.Fatalf("matrix %d: %v accepted with nothing focusable", mi, sig)
					}
				}
				continue
			}
			for i := 0; i < 2000; i++ {
				f.apply(signals[rng.Intn(len(signals))], m)

				if f.row < 0 || f.row > m.LenY() || f.col < 0 || f.col > m.LenX() {
					t.Fatalf("matrix %d header=%v step %d: (%d,%d) outside [0,%d]x[0,%d]",
						mi, header, i, f.row, f.col, m.LenY(), m.LenX())
				}
				if !header && (f.row == 0 || f.col == 0) {
					t.Fatalf("matrix %d step %d: reached header cell without a container cursor", mi, i)
				}
				if f.row > 0 && m.Len() > 0 && f.target(m) == nil {
					t.Fatalf("matrix %d header=%v step %d: focus on empty cell (%d,%d)", mi, header, i, f.row, f.col)
				}
			}
		}
	}
}

func TestFocusTransitions(t *testing.T) {
	m := grid(2, 2) // 2 rows x 2 cols

	tests := []struct {
		name     string
		header   bool
		from     [2]int
		sig      Overflow
		to       [2]int
		accepted bool
	}{
		{"Down same column", false, [2]int{1, 1}, OverflowBottom, [2]int{2, 1}, true},
		{"Down past last row", false, [2]int{2, 1}, OverflowBottom, [2]int{2, 1}, false},
		{"Up at floor", false, [2]int{1, 2}, OverflowTop, [2]int{1, 2}, false},
		{"Right next column", false, [2]int{2, 1}, OverflowRight, [2]int{2, 2}, true},
		{"Right past last column", false, [2]int{1, 2}, OverflowRight, [2]int{1, 2}, false},
		{"Left at floor", false, [2]int{1, 1}, OverflowLeft, [2]int{1, 1}, false},
		{"Header down enters grid", true, [2]int{0, 0}, OverflowBottom, [2]int{1, 1}, true},
		{"Header right enters grid", true, [2]int{0, 0}, OverflowRight, [2]int{1, 1}, true},
		{"First row up returns to header", true, [2]int{1, 1}, OverflowTop, [2]int{0, 0}, true},
		{"First column left returns to header", true, [2]int{2, 1}, OverflowLeft, [2]int{0, 0}, true},
		{"Header up dropped", true, [2]int{0, 0}, OverflowTop, [2]int{0, 0}, false},
		{"None ignored", true, [2]int{1, 2}, OverflowNone, [2]int{1, 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f focus
			f.reset(tt.header)
			f.row, f.col = tt.from[0], tt.from[1]

			if got := f.apply(tt.sig, m); got != tt.accepted {
				t.Errorf("apply = %v, want %v", got, tt.accepted)
			}
			if f.row != tt.to[0] || f.col != tt.to[1] {
				t.Errorf("focus = (%d,%d), want (%d,%d)", f.row, f.col, tt.to[0], tt.to[1])
			}
		})
	}
}

func TestFocusRevertsOnPadding(t *testing.T) {
	m := grid(1, 3) // column 1 has a single row

	var f focus
	f.reset(false)
	f.row, f.col = 3, 2

	if f.apply(OverflowLeft, m) {
		t.Fatal("move onto a padded cell was accepted")
	}
	if f.row != 3 || f.col != 2 {
		t.Errorf("focus = (%d,%d), want (3,2)", f.row, f.col)
	}
}
