package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/tetris/engine"
)

const (
	cellWidth    = 2  // each board cell is drawn as two columns
	sidebarGap   = 2  // columns between the well and the sidebar
	sidebarWidth = 18 // widest sidebar line
	previewW     = 4*cellWidth + 2
	previewH     = 4
)

var helpLines = []string{
	"←/→  move",
	"↑    rotate",
	"↓    soft drop",
	"spc  hard drop",
	"p    pause",
	"r    restart",
	"q    quit",
}

// layout is the placement of the well and sidebar on a screen.
type layout struct {
	well     core.Rect // including the border
	sidebarX int
	fits     bool
	needW    int
	needH    int
}

func (g *Game) layout(screen core.Rect) layout {
	wellW := g.cfg.Board.Width*cellWidth + 2
	wellH := g.cfg.Board.Height + 2
	l := layout{
		needW: wellW + sidebarGap + sidebarWidth,
		needH: wellH,
	}
	l.fits = screen.W >= l.needW && screen.H >= l.needH
	area := core.NewRect(0, 0, l.needW, l.needH).CenterIn(screen)
	l.well = core.NewRect(area.X, area.Y, wellW, wellH)
	l.sidebarX = l.well.Right() + sidebarGap
	return l
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	l := g.layout(dst.Bounds())
	if !l.fits {
		mid := dst.Height() / 2
		dst.DrawTextCentered(mid-1, "Window too small")
		dst.DrawTextCentered(mid, fmt.Sprintf("need %dx%d, have %dx%d", l.needW, l.needH, dst.Width(), dst.Height()))
		return
	}

	dst.DrawBox(l.well)
	g.renderWell(dst, l)
	g.renderSidebar(dst, l)

	switch g.state.Phase() {
	case engine.PhaseGameOver:
		g.renderOverlay(dst, l, "Game Over", fmt.Sprintf("Score %d - R to restart", g.state.Score()))
	case engine.PhasePaused:
		g.renderOverlay(dst, l, "Paused", "Press P to continue")
	}
}

// cellOrigin returns the screen position of board cell (x, y).
func cellOrigin(l layout, x, y int) (int, int) {
	return l.well.X + 1 + x*cellWidth, l.well.Y + 1 + y
}

func (g *Game) renderWell(dst *core.Screen, l layout) {
	board := g.state.Display()

	for y := range board.Height() {
		for x := range board.Width() {
			sx, sy := cellOrigin(l, x, y)
			if k := board.At(x, y); k != engine.KindNone {
				drawBlock(dst, sx, sy, engine.ColorOf(k))
				continue
			}
			dst.SetColored(sx+1, sy, '.', core.ColorGray)
		}
	}

	if !g.cfg.Display.Ghost {
		return
	}
	ghost, ok := g.state.Ghost()
	if !ok {
		return
	}
	for dx, dy := range ghost.Shape.Cells() {
		x, y := ghost.X+dx, ghost.Y+dy
		if y < 0 || board.Filled(x, y) {
			continue
		}
		sx, sy := cellOrigin(l, x, y)
		dst.SetColored(sx, sy, ':', core.ColorGray)
		dst.SetColored(sx+1, sy, ':', core.ColorGray)
	}
}

func drawBlock(dst *core.Screen, x, y int, c core.Color) {
	dst.SetColored(x, y, '[', c)
	dst.SetColored(x+1, y, ']', c)
}

func (g *Game) renderSidebar(dst *core.Screen, l layout) {
	x, y := l.sidebarX, l.well.Y

	dst.DrawTextColored(x, y, g.Title(), core.ColorBrightWhite)
	y += 2
	dst.DrawText(x, y, fmt.Sprintf("Score  %d", g.state.Score()))
	dst.DrawText(x, y+1, fmt.Sprintf("Lines  %d", g.state.Lines()))
	dst.DrawText(x, y+2, fmt.Sprintf("Level  %d", g.state.Level()))
	y += 4

	if g.cfg.Display.Preview {
		dst.DrawText(x, y, "Next")
		box := core.NewRect(x, y+1, previewW, previewH)
		dst.DrawBox(box)
		shape, color := engine.ShapeOf(g.state.Next())
		at := core.NewRect(0, 0, shape.Width()*cellWidth, shape.Height()).CenterIn(box.Inset(1))
		for dx, dy := range shape.Cells() {
			drawBlock(dst, at.X+dx*cellWidth, at.Y+dy, color)
		}
		y += previewH + 2
	}

	for i, line := range helpLines {
		dst.DrawTextColored(x, y+i, line, core.ColorGray)
	}
}

// renderOverlay draws a centered two-line message box over the well.
func (g *Game) renderOverlay(dst *core.Screen, l layout, line1, line2 string) {
	width := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := core.NewRect(
		l.well.X+(l.well.W-width)/2,
		l.well.Y+(l.well.H-5)/2,
		width, 5,
	)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextColored(box.X+(width-len([]rune(line1)))/2, box.Y+1, line1, core.ColorBrightYellow)
	dst.DrawText(box.X+(width-len([]rune(line2)))/2, box.Y+3, line2)
}
