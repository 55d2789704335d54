// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package mapview

import (
	"math"
)

const (
	// TileSize is the edge length of a map tile in pixels at integer zoom levels.
	TileSize = 256

	// MaxLatitude is the latitude limit of the spherical Mercator projection.
	MaxLatitude = 85.0511287798
)

// LatLng is a geographic coordinate in degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Point is a position in pixels. Container points have their origin at the top left
// corner of the viewport, with y growing downwards.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LatLngBounds is a rectangular geographic area.
type LatLngBounds struct {
	SouthWest LatLng `json:"south_west"`
	NorthEast LatLng `json:"north_east"`
}

// NewBounds returns bounds spanning both corners regardless of their order.
func NewBounds(a, b LatLng) LatLngBounds {
	return LatLngBounds{
		SouthWest: LatLng{Lat: math.Min(a.Lat, b.Lat), Lon: math.Min(a.Lon, b.Lon)},
		NorthEast: LatLng{Lat: math.Max(a.Lat, b.Lat), Lon: math.Max(a.Lon, b.Lon)},
	}
}

// Center returns the geographic midpoint of the bounds.
func (b LatLngBounds) Center() LatLng {
	return LatLng{
		Lat: (b.SouthWest.Lat + b.NorthEast.Lat) / 2,
		Lon: (b.SouthWest.Lon + b.NorthEast.Lon) / 2,
	}
}

// Contains reports whether c lies within the bounds, edges included.
func (b LatLngBounds) Contains(c LatLng) bool {
	return c.Lat >= b.SouthWest.Lat && c.Lat <= b.NorthEast.Lat &&
		c.Lon >= b.SouthWest.Lon && c.Lon <= b.NorthEast.Lon
}

func (p Point) Add(o Point) Point { return Point{X: p.X + o.X, Y: p.Y + o.Y} }
func (p Point) Sub(o Point) Point { return Point{X: p.X - o.X, Y: p.Y - o.Y} }

// Scale returns the world size in pixels at the given zoom level.
func Scale(zoom float64) float64 {
	return TileSize * math.Pow(2, zoom)
}

// Project converts a coordinate into absolute world pixels at the given zoom level using
// the spherical Mercator projection.
func Project(c LatLng, zoom float64) Point {
	scale := Scale(zoom)
	lat := math.Max(math.Min(c.Lat, MaxLatitude), -MaxLatitude)
	sin := math.Sin(lat * math.Pi / 180)
	return Point{
		X: scale * (c.Lon + 180) / 360,
		Y: scale * (0.5 - math.Log((1+sin)/(1-sin))/(4*math.Pi)),
	}
}

// Unproject converts absolute world pixels at the given zoom level back into a coordinate.
func Unproject(p Point, zoom float64) LatLng {
	scale := Scale(zoom)
	lon := p.X/scale*360 - 180
	n := math.Pi - 2*math.Pi*p.Y/scale
	lat := 180 / math.Pi * math.Atan(math.Sinh(n))
	return LatLng{Lat: lat, Lon: lon}
}
