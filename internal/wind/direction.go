// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package wind

import (
	"image/color"
	"math"

	"github.com/vorlif/spreak/localize"
)

// Bucket is one of the four direction classes a wind direction falls into.
type Bucket int

const (
	BucketNorth Bucket = iota
	BucketEast
	BucketSouth
	BucketWest
)

// Buckets lists all direction classes in legend order.
var Buckets = []Bucket{BucketNorth, BucketEast, BucketSouth, BucketWest}

var bucketColors = map[Bucket]color.RGBA{
	BucketNorth: {R: 0x3B, G: 0x82, B: 0xF6, A: 0xFF},
	BucketEast:  {R: 0x10, G: 0xB9, B: 0x81, A: 0xFF},
	BucketSouth: {R: 0xF5, G: 0x9E, B: 0x0B, A: 0xFF},
	BucketWest:  {R: 0xEF, G: 0x44, B: 0x44, A: 0xFF},
}

var bucketHex = map[Bucket]string{
	BucketNorth: "#3B82F6",
	BucketEast:  "#10B981",
	BucketSouth: "#F59E0B",
	BucketWest:  "#EF4444",
}

var bucketLabels = map[Bucket]localize.MsgID{
	BucketNorth: "North wind",
	BucketEast:  "East wind",
	BucketSouth: "South wind",
	BucketWest:  "West wind",
}

// MissingColor and MissingLabel describe missing observations in the legend. Missing
// observations are never drawn.
var (
	MissingColor                = color.RGBA{R: 0x9C, G: 0xA3, B: 0xAF, A: 0xFF}
	MissingHex                  = "#9CA3AF"
	MissingLabel localize.MsgID = "Missing data"
)

// Normalize maps any direction in degrees into [0, 360).
func Normalize(direction float64) float64 {
	return math.Mod(math.Mod(direction, 360)+360, 360)
}

// BucketOf classifies a direction in degrees.
func BucketOf(direction float64) Bucket {
	n := Normalize(direction)
	switch {
	case n < 90:
		return BucketNorth
	case n < 180:
		return BucketEast
	case n < 270:
		return BucketSouth
	default:
		return BucketWest
	}
}

// Heading converts a direction in degrees into the screen angle of its arrow glyph, in
// radians with 0 along +x and y growing downwards. The angle is the direction turned by
// half a circle.
func Heading(direction float64) float64 {
	return (direction + 180) * math.Pi / 180
}

// Color returns the drawing color of the bucket.
func (b Bucket) Color() color.RGBA {
	return bucketColors[b]
}

// Hex returns the drawing color of the bucket as #RRGGBB.
func (b Bucket) Hex() string {
	return bucketHex[b]
}

// Label returns the untranslated legend label of the bucket.
func (b Bucket) Label() localize.MsgID {
	return bucketLabels[b]
}

// Range returns the normalized degree interval [from, to) the bucket covers.
func (b Bucket) Range() (from, to float64) {
	from = float64(b) * 90
	return from, from + 90
}
