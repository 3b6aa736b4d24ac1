package engine

import (
	"fmt"
	"strings"
)

// Board is a fixed-size occupancy grid. Row 0 is the top.
// Cells hold the Kind of the piece that filled them, KindNone when empty.
// A Board is a value: every mutating operation returns a new Board and
// leaves the receiver untouched.
type Board struct {
	w, h  int
	cells []Kind // row-major, index = y*w + x
}

// NewBoard creates an empty board. Dimensions must be positive.
func NewBoard(w, h int) Board {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("engine: invalid board size %dx%d", w, h))
	}
	return Board{w: w, h: h, cells: make([]Kind, w*h)}
}

// ParseBoard builds a board from rows of kind letters ("IOTSZJL") and
// '.' for empty cells. All rows must have the same length.
func ParseBoard(rows ...string) (Board, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Board{}, fmt.Errorf("engine: empty board layout")
	}
	b := NewBoard(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != b.w {
			return Board{}, fmt.Errorf("engine: row %d has width %d, want %d", y, len(row), b.w)
		}
		for x, ch := range row {
			if ch == '.' {
				continue
			}
			k := KindNone
			for _, candidate := range Kinds {
				if candidate.String() == string(ch) {
					k = candidate
				}
			}
			if k == KindNone {
				return Board{}, fmt.Errorf("engine: unknown cell %q at (%d,%d)", ch, x, y)
			}
			b.cells[y*b.w+x] = k
		}
	}
	return b, nil
}

// Width returns the number of columns.
func (b Board) Width() int { return b.w }

// Height returns the number of rows.
func (b Board) Height() int { return b.h }

// At returns the cell at (x, y), or KindNone outside the board.
func (b Board) At(x, y int) Kind {
	if !b.inside(x, y) {
		return KindNone
	}
	return b.cells[y*b.w+x]
}

// Filled reports whether (x, y) is inside the board and occupied.
func (b Board) Filled(x, y int) bool {
	return b.At(x, y) != KindNone
}

func (b Board) inside(x, y int) bool {
	return x >= 0 && x < b.w && y >= 0 && y < b.h
}

func (b Board) clone() Board {
	cells := make([]Kind, len(b.cells))
	copy(cells, b.cells)
	return Board{w: b.w, h: b.h, cells: cells}
}

// IsLegal reports whether shape anchored with its top-left corner at (x, y)
// fits: every occupied cell must lie in columns [0, W) and above the floor,
// and must not overlap a filled cell. Cells above row 0 only get the column
// check, which lets pieces spawn partly off the top.
func (b Board) IsLegal(shape Shape, x, y int) bool {
	for dx, dy := range shape.Cells() {
		bx, by := x+dx, y+dy
		if bx < 0 || bx >= b.w || by >= b.h {
			return false
		}
		if by >= 0 && b.cells[by*b.w+bx] != KindNone {
			return false
		}
	}
	return true
}

// Stamp returns a copy of the board with every occupied cell of shape
// written as k. Cells that land above row 0 are dropped.
func (b Board) Stamp(shape Shape, x, y int, k Kind) Board {
	out := b.clone()
	for dx, dy := range shape.Cells() {
		bx, by := x+dx, y+dy
		if !out.inside(bx, by) {
			continue
		}
		out.cells[by*out.w+bx] = k
	}
	return out
}

// RowFull reports whether every cell of row y is occupied.
func (b Board) RowFull(y int) bool {
	if y < 0 || y >= b.h {
		return false
	}
	for _, c := range b.cells[y*b.w : (y+1)*b.w] {
		if c == KindNone {
			return false
		}
	}
	return true
}

// ClearFullRows removes every full row, keeps the remaining rows in order
// and refills the top with empty rows. count is the number of rows removed.
func (b Board) ClearFullRows() (Board, int) {
	out := NewBoard(b.w, b.h)
	dst := b.h - 1
	for y := b.h - 1; y >= 0; y-- {
		if b.RowFull(y) {
			continue
		}
		copy(out.cells[dst*b.w:(dst+1)*b.w], b.cells[y*b.w:(y+1)*b.w])
		dst--
	}
	// dst+1 rows at the top were left empty, one per cleared row.
	return out, dst + 1
}

// Equal reports whether two boards have the same size and contents.
func (b Board) Equal(o Board) bool {
	if b.w != o.w || b.h != o.h {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// String renders the board one row per line using kind letters.
func (b Board) String() string {
	var sb strings.Builder
	sb.Grow((b.w + 1) * b.h)
	for y := range b.h {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range b.w {
			sb.WriteString(b.cells[y*b.w+x].String())
		}
	}
	return sb.String()
}
