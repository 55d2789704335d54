// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package overlay draws the wind direction glyphs of a snapshot onto a raster surface that
// lives in the overlay pane of a map and follows its viewport.
package overlay

import (
	"errors"
	"image"
	"image/color"
	"log/slog"
	"math"

	"github.com/fogleman/gg"

	"github.com/wneessen/windviewer/internal/logger"
	"github.com/wneessen/windviewer/internal/mapview"
	"github.com/wneessen/windviewer/internal/wind"
)

const (
	// ArrowLength is the length of the glyph shaft in pixels
	ArrowLength = 15.0
	// HeadLength is the length of each arrow head segment in pixels
	HeadLength = 10.0
	// HeadAngle is the angle between the shaft and each head segment
	HeadAngle = math.Pi / 6
	// DotRadius is the radius of the dot marking the grid point
	DotRadius = 2.0
	// LineWidth is the stroke width of shaft and head
	LineWidth = 2.0
)

var ErrLayerRemoved = errors.New("overlay layer has been removed")

// State is the lifecycle state of a Layer.
type State int

const (
	StateDetached State = iota
	StateAttached
	StateRemoved
)

func (s State) String() string {
	switch s {
	case StateDetached:
		return "detached"
	case StateAttached:
		return "attached"
	case StateRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Stats counts what the last redraw did with the observations of the snapshot.
type Stats struct {
	Drawn     int `json:"drawn"`
	Missing   int `json:"missing"`
	Offscreen int `json:"offscreen"`
}

// Layer renders one snapshot. A Layer is attached to at most one map during its lifetime
// and is not safe for concurrent use.
type Layer struct {
	snapshot *wind.Snapshot
	logger   *logger.Logger

	m       *mapview.Map
	dc      *gg.Context
	subs    map[mapview.Event]mapview.ListenerID
	state   State
	visible bool
	stats   Stats
}

// New returns a detached layer for snap.
func New(snap *wind.Snapshot, log *logger.Logger) *Layer {
	return &Layer{
		snapshot: snap,
		logger:   log,
		visible:  true,
	}
}

// AddTo attaches the layer to m: it creates a surface of the viewport size, inserts it into
// the overlay pane, draws it and subscribes to viewport changes. Adding an attached layer
// again is a no-op.
func (l *Layer) AddTo(m *mapview.Map) error {
	switch l.state {
	case StateRemoved:
		return ErrLayerRemoved
	case StateAttached:
		return nil
	}

	l.m = m
	width, height := m.Size()
	l.dc = gg.NewContext(width, height)
	l.state = StateAttached
	if l.visible {
		m.OverlayPane().Append(l)
	}
	l.Redraw()

	l.subs = make(map[mapview.Event]mapview.ListenerID, 3)
	for _, event := range []mapview.Event{mapview.EventMove, mapview.EventZoom, mapview.EventResize} {
		l.subs[event] = m.On(event, l.Redraw)
	}
	return nil
}

// Remove detaches the layer for good. It releases exactly the subscriptions AddTo made,
// takes the surface out of the pane and drops it. Calling Remove more than once is safe.
func (l *Layer) Remove() {
	if l.state == StateRemoved {
		return
	}
	if l.m != nil {
		for event, id := range l.subs {
			l.m.Off(event, id)
		}
		l.m.OverlayPane().Remove(l)
	}
	l.subs = nil
	l.dc = nil
	l.m = nil
	l.state = StateRemoved
}

// Redraw clears the surface and draws a glyph for every valid observation inside the
// viewport. Without a surface Redraw does nothing.
func (l *Layer) Redraw() {
	if l.dc == nil || l.m == nil {
		return
	}

	width, height := l.m.Size()
	if l.dc.Width() != width || l.dc.Height() != height {
		l.dc = gg.NewContext(width, height)
	} else {
		l.dc.SetColor(color.Transparent)
		l.dc.Clear()
	}
	l.dc.SetLineWidth(LineWidth)
	l.dc.SetLineCapRound()

	var stats Stats
	if l.snapshot != nil {
		for _, obs := range l.snapshot.Observations {
			if obs.IsMissing() {
				stats.Missing++
				continue
			}
			pt := l.m.LatLngToContainerPoint(mapview.LatLng{Lat: obs.Lat, Lon: obs.Lon})
			if !l.m.Contains(pt) {
				stats.Offscreen++
				continue
			}
			drawGlyph(l.dc, pt.X, pt.Y, obs.Value)
			stats.Drawn++
		}
	}
	l.stats = stats
	if l.logger != nil {
		l.logger.Debug("overlay redrawn", slog.Int("drawn", stats.Drawn),
			slog.Int("missing", stats.Missing), slog.Int("offscreen", stats.Offscreen))
	}
}

// Hide takes the surface out of the pane. Subscriptions stay active, so the surface keeps
// following the viewport while hidden.
func (l *Layer) Hide() {
	if l.state != StateAttached || !l.visible {
		return
	}
	l.m.OverlayPane().Remove(l)
	l.visible = false
}

// Show puts the surface back into the pane and redraws it.
func (l *Layer) Show() {
	if l.state != StateAttached || l.visible {
		return
	}
	l.m.OverlayPane().Append(l)
	l.visible = true
	l.Redraw()
}

// Toggle switches between Hide and Show and returns the new visibility.
func (l *Layer) Toggle() bool {
	if l.visible {
		l.Hide()
	} else {
		l.Show()
	}
	return l.Visible()
}

func (l *Layer) Visible() bool            { return l.state == StateAttached && l.visible }
func (l *Layer) Attached() bool           { return l.state == StateAttached }
func (l *Layer) State() State             { return l.state }
func (l *Layer) Stats() Stats             { return l.stats }
func (l *Layer) Snapshot() *wind.Snapshot { return l.snapshot }

// Image returns the surface, or nil if the layer has none.
func (l *Layer) Image() image.Image {
	if l.dc == nil {
		return nil
	}
	return l.dc.Image()
}

// Interactive is always false; pointer input passes through the overlay to the map.
func (l *Layer) Interactive() bool {
	return false
}

// drawGlyph draws the arrow for direction at (x, y): a shaft pointing along the heading,
// two head segments leaving the tip and a dot on the grid point.
func drawGlyph(dc *gg.Context, x, y, direction float64) {
	theta := wind.Heading(direction)
	tipX := x + ArrowLength*math.Cos(theta)
	tipY := y + ArrowLength*math.Sin(theta)

	dc.SetColor(wind.BucketOf(direction).Color())
	dc.DrawLine(x, y, tipX, tipY)
	dc.DrawLine(tipX, tipY, x+HeadLength*math.Cos(theta-HeadAngle), y+HeadLength*math.Sin(theta-HeadAngle))
	dc.DrawLine(tipX, tipY, x+HeadLength*math.Cos(theta+HeadAngle), y+HeadLength*math.Sin(theta+HeadAngle))
	dc.Stroke()

	dc.DrawCircle(x, y, DotRadius)
	dc.Fill()
}
