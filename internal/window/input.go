// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/wneessen/windviewer/internal/mapview"
)

// input is the decoded keyboard and mouse state of a single tick.
type input struct {
	panX, panY float64
	zoom       float64
	shiftDays  int
	load       bool
	toggle     bool
	dismiss    bool
}

func (in input) empty() bool {
	return in == input{}
}

func (g *Game) readInput() input {
	var in input

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		in.panX -= PanStep
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		in.panX += PanStep
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		in.panY -= PanStep
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		in.panY += PanStep
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		in.zoom++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		in.zoom--
	}
	if _, wheel := ebiten.Wheel(); wheel > 0 {
		in.zoom++
	} else if wheel < 0 {
		in.zoom--
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		in.shiftDays--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		in.shiftDays++
	}
	in.load = inpututil.IsKeyJustPressed(ebiten.KeyL)
	in.toggle = inpututil.IsKeyJustPressed(ebiten.KeyT)
	in.dismiss = inpututil.IsKeyJustPressed(ebiten.KeyEscape)

	dx, dy := g.drag(ebiten.CursorPosition())
	in.panX += dx
	in.panY += dy
	return in
}

// drag returns the map offset of a left button drag since the previous tick. Drags starting
// on an interactive overlay are ignored.
func (g *Game) drag(x, y int) (float64, float64) {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		pt := mapview.Point{X: float64(x), Y: float64(y)}
		g.dragging = !g.viewer.CapturesPointer(pt)
		g.dragX, g.dragY = x, y
		return 0, 0
	}
	if !g.dragging {
		return 0, 0
	}
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.dragging = false
		return 0, 0
	}
	dx, dy := float64(g.dragX-x), float64(g.dragY-y)
	g.dragX, g.dragY = x, y
	return dx, dy
}
