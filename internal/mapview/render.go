// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package mapview

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/fogleman/gg"
)

const (
	// minGraticuleSpacing is the minimum distance in pixels between two graticule lines
	minGraticuleSpacing = 80
)

var (
	BackgroundColor = color.RGBA{R: 0xE5, G: 0xE7, B: 0xEB, A: 0xFF}
	GraticuleColor  = color.RGBA{R: 0xC4, G: 0xCA, B: 0xD3, A: 0xFF}

	graticuleSteps = []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 15, 30, 45, 90}
)

// Render paints the base layer and every element of the overlay pane into a new image of
// the viewport size.
func (m *Map) Render() *image.RGBA {
	dc := gg.NewContext(m.width, m.height)
	dc.SetColor(BackgroundColor)
	dc.Clear()
	m.drawGraticule(dc)

	img := image.NewRGBA(image.Rect(0, 0, m.width, m.height))
	draw.Draw(img, img.Bounds(), dc.Image(), image.Point{}, draw.Src)
	for _, el := range m.overlayPane.elements {
		src := el.Image()
		if src == nil {
			continue
		}
		draw.Draw(img, img.Bounds(), src, image.Point{}, draw.Over)
	}
	return img
}

// GraticuleStep returns the spacing in degrees between graticule lines at the current zoom.
func (m *Map) GraticuleStep() float64 {
	degPerPx := 360 / Scale(m.zoom)
	for _, step := range graticuleSteps {
		if step/degPerPx >= minGraticuleSpacing {
			return step
		}
	}
	return graticuleSteps[len(graticuleSteps)-1]
}

func (m *Map) drawGraticule(dc *gg.Context) {
	step := m.GraticuleStep()
	bounds := m.Bounds()
	dc.SetColor(GraticuleColor)
	dc.SetLineWidth(1)

	// lines are at least stepPx apart, latitude lines only grow further apart off the equator
	stepPx := step * Scale(m.zoom) / 360
	maxCols := int(float64(m.width)/stepPx) + 2
	maxRows := int(float64(m.height)/stepPx) + 2

	first := math.Ceil(bounds.SouthWest.Lon/step) * step
	for i := 0; i < maxCols; i++ {
		lon := first + float64(i)*step
		if lon > bounds.NorthEast.Lon {
			break
		}
		x := m.LatLngToContainerPoint(LatLng{Lat: m.center.Lat, Lon: lon}).X
		dc.DrawLine(x, 0, x, float64(m.height))
	}
	first = math.Ceil(bounds.SouthWest.Lat/step) * step
	for i := 0; i < maxRows; i++ {
		lat := first + float64(i)*step
		if lat > bounds.NorthEast.Lat {
			break
		}
		y := m.LatLngToContainerPoint(LatLng{Lat: lat, Lon: m.center.Lon}).Y
		dc.DrawLine(0, y, float64(m.width), y)
	}
	dc.Stroke()
}
