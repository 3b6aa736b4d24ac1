package engine

import "github.com/vovakirdan/tui-blocks/internal/core"

// Piece is the falling tetromino. X, Y is the board position of the
// top-left corner of Shape. Pieces are values: Translate and Rotated return
// new pieces and never share a modified shape with the receiver.
type Piece struct {
	Kind     Kind
	Shape    Shape
	X, Y     int
	Rotation int // quarter turns clockwise from spawn, 0..3
}

// Spawn places a fresh piece of kind k at the top of a board boardWidth
// columns wide, horizontally centred: a 2-wide piece on 10 columns lands
// on columns 4-5, wider pieces start at column (W-width)/2.
func Spawn(k Kind, boardWidth int) Piece {
	shape, _ := ShapeOf(k)
	return Piece{
		Kind:  k,
		Shape: shape,
		X:     (boardWidth - shape.Width()) / 2,
		Y:     0,
	}
}

// Color returns the display color of the piece.
func (p Piece) Color() core.Color {
	return ColorOf(p.Kind)
}

// Translate returns the piece moved by (dx, dy). Legality is not checked.
func (p Piece) Translate(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}

// Rotated returns the piece turned 90° clockwise about its anchor.
// Legality is not checked.
func (p Piece) Rotated() Piece {
	p.Shape = Rotate(p.Shape)
	p.Rotation = (p.Rotation + 1) % 4
	return p
}

// Fits reports whether the piece is legal on board b at its position.
func (p Piece) Fits(b Board) bool {
	return b.IsLegal(p.Shape, p.X, p.Y)
}
