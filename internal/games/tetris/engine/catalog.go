// Package engine implements the falling-block game rules as pure state
// transitions. Nothing here knows about terminals, clocks or storage: every
// operation takes a State value and returns a new one.
package engine

import (
	"iter"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

// Kind identifies one of the seven tetrominoes.
// The numeric value doubles as the board cell code, so KindNone is reserved
// for empty cells.
type Kind uint8

const (
	KindNone Kind = iota
	KindI
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
)

// Kinds lists every playable kind in catalog order.
var Kinds = [...]Kind{KindI, KindO, KindT, KindS, KindZ, KindJ, KindL}

// String returns the single-letter name of the kind.
func (k Kind) String() string {
	if k == KindNone || int(k) > len(Kinds) {
		return "."
	}
	return string("IOTSZJL"[k-1])
}

// Valid reports whether k is one of the seven tetrominoes.
func (k Kind) Valid() bool {
	return k >= KindI && k <= KindL
}

// Shape is a rectangular occupancy matrix indexed [row][col].
type Shape [][]bool

type definition struct {
	rows  []string
	color core.Color
}

var catalog = [...]definition{
	KindI: {rows: []string{"####"}, color: core.ColorCyan},
	KindO: {rows: []string{"##", "##"}, color: core.ColorYellow},
	KindT: {rows: []string{".#.", "###"}, color: core.ColorMagenta},
	KindS: {rows: []string{".##", "##."}, color: core.ColorGreen},
	KindZ: {rows: []string{"##.", ".##"}, color: core.ColorRed},
	KindJ: {rows: []string{"#..", "###"}, color: core.ColorBlue},
	KindL: {rows: []string{"..#", "###"}, color: core.ColorOrange},
}

// ShapeOf returns the canonical (rotation 0) matrix and color of a kind.
// The returned shape is a fresh copy. Invalid kinds panic.
func ShapeOf(k Kind) (Shape, core.Color) {
	if !k.Valid() {
		panic("engine: invalid piece kind " + k.String())
	}
	def := catalog[k]
	return parseShape(def.rows), def.color
}

// ColorOf returns the display color for a board cell code.
func ColorOf(k Kind) core.Color {
	if !k.Valid() {
		return core.ColorDefault
	}
	return catalog[k].color
}

func parseShape(rows []string) Shape {
	s := make(Shape, len(rows))
	for y, row := range rows {
		s[y] = make([]bool, len(row))
		for x, ch := range row {
			s[y][x] = ch == '#'
		}
	}
	return s
}

// Height returns the number of rows.
func (s Shape) Height() int {
	return len(s)
}

// Width returns the number of columns.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Cells yields the (col, row) offset of every occupied cell.
func (s Shape) Cells() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for y, row := range s {
			for x, filled := range row {
				if filled && !yield(x, y) {
					return
				}
			}
		}
	}
}

// Rotate returns the shape turned 90° clockwise: row i of the result is
// column i of the input read bottom to top. Width and height swap.
func Rotate(s Shape) Shape {
	rows, cols := s.Height(), s.Width()
	out := make(Shape, cols)
	for i := range cols {
		out[i] = make([]bool, rows)
		for j := range rows {
			out[i][j] = s[rows-1-j][i]
		}
	}
	return out
}

// Equal reports whether two shapes have identical dimensions and cells.
func (s Shape) Equal(o Shape) bool {
	if s.Height() != o.Height() || s.Width() != o.Width() {
		return false
	}
	for y := range s {
		for x := range s[y] {
			if s[y][x] != o[y][x] {
				return false
			}
		}
	}
	return true
}

// String renders the shape with '#' for filled and '.' for empty cells.
func (s Shape) String() string {
	out := make([]byte, 0, (s.Width()+1)*s.Height())
	for y, row := range s {
		if y > 0 {
			out = append(out, '\n')
		}
		for _, filled := range row {
			if filled {
				out = append(out, '#')
			} else {
				out = append(out, '.')
			}
		}
	}
	return string(out)
}
