// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package mapview implements a headless slippy map viewport: spherical Mercator projection,
// pan/zoom/resize with change notifications and an overlay pane that raster layers attach to.
//
// A Map is not safe for concurrent use. Callers serialize access the same way a UI thread
// would.
package mapview

import (
	"errors"
	"math"
)

var ErrInvalidSize = errors.New("viewport size must be positive")

// Options configures the zoom range of a Map.
type Options struct {
	MinZoom float64
	MaxZoom float64
}

// DefaultOptions matches the zoom range of the OpenStreetMap tile layer.
var DefaultOptions = Options{MinZoom: 0, MaxZoom: 19}

// Map is the viewport state: pixel size, geographic center and zoom level.
type Map struct {
	width   int
	height  int
	center  LatLng
	zoom    float64
	options Options

	overlayPane *Pane
	listeners   map[Event][]listener
	nextID      ListenerID
}

// New returns a Map of the given pixel size centered on center at zoom.
func New(width, height int, center LatLng, zoom float64, opts Options) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	if opts.MaxZoom < opts.MinZoom {
		opts.MinZoom, opts.MaxZoom = opts.MaxZoom, opts.MinZoom
	}
	m := &Map{
		width:       width,
		height:      height,
		center:      wrapLatLng(center),
		options:     opts,
		overlayPane: newPane(),
		listeners:   make(map[Event][]listener),
	}
	m.zoom = m.clampZoom(zoom)
	return m, nil
}

// Size returns the viewport size in pixels.
func (m *Map) Size() (width, height int) {
	return m.width, m.height
}

func (m *Map) Center() LatLng { return m.center }
func (m *Map) Zoom() float64  { return m.zoom }

// OverlayPane returns the pane that overlay layers insert their surfaces into.
func (m *Map) OverlayPane() *Pane {
	return m.overlayPane
}

// LatLngToContainerPoint converts a coordinate into viewport pixels for the current view.
func (m *Map) LatLngToContainerPoint(c LatLng) Point {
	return Project(c, m.zoom).Sub(m.pixelOrigin())
}

// ContainerPointToLatLng converts viewport pixels into a coordinate for the current view.
func (m *Map) ContainerPointToLatLng(p Point) LatLng {
	return Unproject(p.Add(m.pixelOrigin()), m.zoom)
}

// Bounds returns the geographic area currently visible.
func (m *Map) Bounds() LatLngBounds {
	return NewBounds(
		m.ContainerPointToLatLng(Point{X: 0, Y: float64(m.height)}),
		m.ContainerPointToLatLng(Point{X: float64(m.width), Y: 0}),
	)
}

// Contains reports whether p lies within the viewport rectangle, edges included.
func (m *Map) Contains(p Point) bool {
	return p.X >= 0 && p.X <= float64(m.width) && p.Y >= 0 && p.Y <= float64(m.height)
}

// PanBy moves the view by the given number of pixels and fires a move event. Panning past
// the antimeridian wraps the center longitude back into [-180, 180).
func (m *Map) PanBy(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	centerPx := Project(m.center, m.zoom).Add(Point{X: dx, Y: dy})
	center := Unproject(centerPx, m.zoom)
	if !isFinite(center.Lat) || !isFinite(center.Lon) {
		return
	}
	m.center = wrapLatLng(center)
	m.fire(EventMove)
}

// SetView changes center and zoom at once. A zoom event is fired if the zoom level
// changed, followed by a move event.
func (m *Map) SetView(center LatLng, zoom float64) {
	zoom = m.clampZoom(zoom)
	zoomChanged := zoom != m.zoom
	m.center = wrapLatLng(center)
	m.zoom = zoom
	if zoomChanged {
		m.fire(EventZoom)
	}
	m.fire(EventMove)
}

// SetZoom changes the zoom level while keeping the center.
func (m *Map) SetZoom(zoom float64) {
	if m.clampZoom(zoom) == m.zoom {
		return
	}
	m.SetView(m.center, zoom)
}

func (m *Map) ZoomIn(delta float64)  { m.SetZoom(m.zoom + delta) }
func (m *Map) ZoomOut(delta float64) { m.SetZoom(m.zoom - delta) }

// Resize changes the viewport size, keeps the center and fires a resize event.
func (m *Map) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidSize
	}
	if width == m.width && height == m.height {
		return nil
	}
	m.width = width
	m.height = height
	m.fire(EventResize)
	return nil
}

// BoundsZoom returns the largest integer zoom level at which bounds fit into the viewport
// shrunk by padding pixels on every side.
func (m *Map) BoundsZoom(bounds LatLngBounds, padding float64) float64 {
	availW := float64(m.width) - 2*padding
	availH := float64(m.height) - 2*padding
	if availW <= 0 || availH <= 0 {
		return m.options.MinZoom
	}

	ne := Project(bounds.NorthEast, 0)
	sw := Project(bounds.SouthWest, 0)
	boundsW := math.Abs(ne.X - sw.X)
	boundsH := math.Abs(sw.Y - ne.Y)
	if boundsW == 0 && boundsH == 0 {
		return m.options.MaxZoom
	}

	scale := math.Inf(1)
	if boundsW > 0 {
		scale = availW / boundsW
	}
	if boundsH > 0 {
		scale = math.Min(scale, availH/boundsH)
	}
	return m.clampZoom(math.Floor(math.Log2(scale)))
}

// FitBounds centers the view on bounds at the largest zoom level that shows all of it with
// padding pixels to spare on every side.
func (m *Map) FitBounds(bounds LatLngBounds, padding float64) {
	zoom := m.BoundsZoom(bounds, padding)
	mid := Project(bounds.SouthWest, zoom).Add(Project(bounds.NorthEast, zoom))
	center := Unproject(Point{X: mid.X / 2, Y: mid.Y / 2}, zoom)
	m.SetView(center, zoom)
}

// pixelOrigin is the world pixel position of the viewport's top left corner.
func (m *Map) pixelOrigin() Point {
	c := Project(m.center, m.zoom)
	return Point{X: c.X - float64(m.width)/2, Y: c.Y - float64(m.height)/2}
}

func (m *Map) clampZoom(zoom float64) float64 {
	return math.Max(m.options.MinZoom, math.Min(m.options.MaxZoom, zoom))
}

// wrapLatLng brings the longitude of c into [-180, 180).
func wrapLatLng(c LatLng) LatLng {
	if !isFinite(c.Lon) {
		return c
	}
	lon := math.Mod(c.Lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	c.Lon = lon - 180
	return c
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
