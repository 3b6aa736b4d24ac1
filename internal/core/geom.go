// Package core holds the platform types shared by games and the terminal
// harness: actions and input frames, runtime configuration, and a colored
// character buffer to draw into. It has no terminal dependencies.
package core

// Rect is an axis-aligned box in screen cells.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect returns the rectangle with top-left (x, y) and size w x h.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right is the first column past the rectangle.
func (r Rect) Right() int { return r.X + r.W }

// Bottom is the first row past the rectangle.
func (r Rect) Bottom() int { return r.Y + r.H }

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Inset shrinks r by n cells on every side. The size never goes negative.
func (r Rect) Inset(n int) Rect {
	return Rect{X: r.X + n, Y: r.Y + n, W: max(0, r.W-2*n), H: max(0, r.H-2*n)}
}

// CenterIn returns r moved so that it is centered in outer. When r is
// larger than outer it is pinned to outer's top-left corner.
func (r Rect) CenterIn(outer Rect) Rect {
	r.X = outer.X + max(0, (outer.W-r.W)/2)
	r.Y = outer.Y + max(0, (outer.H-r.H)/2)
	return r
}
