// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package window shows the viewer in a desktop window and maps keyboard and mouse input to
// viewer operations.
package window

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/wneessen/windviewer/internal/logger"
	"github.com/wneessen/windviewer/internal/presenter"
	"github.com/wneessen/windviewer/internal/viewer"
)

const (
	// PanStep is the distance in pixels an arrow key moves the map
	PanStep = 64

	ticksPerSecond = 30
	textMargin     = 8
	lineHeight     = 16
)

// Game implements ebiten.Game for a viewer.
type Game struct {
	ctx       context.Context
	viewer    *viewer.Viewer
	presenter *presenter.Presenter
	logger    *logger.Logger

	frame *ebiten.Image
	dirty atomic.Bool
	loads sync.WaitGroup

	dragging     bool
	dragX, dragY int
}

// New returns a Game for v. Loads started from the window are bound to ctx.
func New(ctx context.Context, v *viewer.Viewer, pres *presenter.Presenter, log *logger.Logger) *Game {
	g := &Game{ctx: ctx, viewer: v, presenter: pres, logger: log}
	g.dirty.Store(true)
	return g
}

// Run opens the window and blocks until it is closed or ctx is cancelled. Loads still in
// flight are awaited before returning.
func Run(g *Game, title string) error {
	width, height := g.viewer.Size()
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ticksPerSecond)

	err := ebiten.RunGame(g)
	g.loads.Wait()
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (g *Game) Update() error {
	select {
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}
	g.apply(g.readInput())
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	width, height := g.viewer.Size()
	if g.frame == nil || g.frame.Bounds().Dx() != width || g.frame.Bounds().Dy() != height {
		if g.frame != nil {
			g.frame.Deallocate()
		}
		g.frame = ebiten.NewImage(width, height)
		g.dirty.Store(true)
	}
	if g.dirty.Swap(false) {
		img := g.viewer.Render()
		g.frame.WritePixels(img.Pix)
	}
	screen.DrawImage(g.frame, nil)

	status := g.viewer.Status()
	ebitenutil.DebugPrintAt(screen, g.presenter.StatusLine(status), textMargin, textMargin)
	if status.Alert != nil {
		ebitenutil.DebugPrintAt(screen, "! "+status.Alert.Message+" [Esc]", textMargin,
			textMargin+lineHeight)
	}
}

// Layout resizes the map to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	width, height := g.viewer.Size()
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return width, height
	}
	if outsideWidth != width || outsideHeight != height {
		if err := g.viewer.Resize(outsideWidth, outsideHeight); err != nil {
			g.logger.Warn("failed to resize map", logger.Err(err))
			return width, height
		}
		g.dirty.Store(true)
	}
	return outsideWidth, outsideHeight
}

// apply runs the viewer operations for one tick of input.
func (g *Game) apply(in input) {
	if in.empty() {
		return
	}
	if in.panX != 0 || in.panY != 0 {
		g.viewer.Pan(in.panX, in.panY)
	}
	if in.zoom != 0 {
		g.viewer.Zoom(in.zoom)
	}
	if in.shiftDays != 0 {
		date := g.viewer.ShiftDate(in.shiftDays)
		g.logger.Debug("selected date changed", slog.String("date", date))
	}
	if in.toggle {
		g.viewer.ToggleOverlay()
	}
	if in.dismiss {
		g.viewer.DismissAlert()
	}
	if in.load {
		g.startLoad()
	}
	g.dirty.Store(true)
}

// startLoad loads the selected date in the background. Requests while a load is running are
// dropped.
func (g *Game) startLoad() {
	if g.viewer.Loading() {
		g.logger.Debug("load already in progress, ignoring request")
		return
	}
	g.loads.Add(1)
	go func() {
		defer g.loads.Done()
		defer g.dirty.Store(true)
		if err := g.viewer.Load(g.ctx); err != nil && !errors.Is(err, viewer.ErrLoadInProgress) {
			g.logger.Debug("window load failed", logger.Err(err))
		}
	}()
	g.dirty.Store(true)
}
