// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package wind holds the wind-direction grid data model and the direction classification
// used for drawing and for the legend.
package wind

import (
	"math"
	"time"
)

// MissingThreshold is the value from which on a grid value is the data source's
// "no observation" marker.
const MissingThreshold = 9.999e20

// Snapshot is one fetched grid sample for a single timestamp. A Snapshot is never
// modified after it has been decoded.
type Snapshot struct {
	Timestamp    string      `json:"timestamp"`
	Variable     string      `json:"variable"`
	BBox         BBox        `json:"bbox"`
	Resolution   Resolution  `json:"resolution"`
	Observations []GridPoint `json:"data"`
}

// BBox is the (west, south, east, north) extent of a snapshot in degrees.
type BBox [4]float64

// Resolution is the (lonStep, latStep) grid spacing in degrees.
type Resolution [2]float64

// GridPoint is a single observation. Value is the meteorological wind direction in degrees.
type GridPoint struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Value float64 `json:"value"`
}

// Corner is a latitude/longitude pair as used for fit-to-bounds targets.
type Corner struct {
	Lat float64
	Lon float64
}

func (b BBox) West() float64  { return b[0] }
func (b BBox) South() float64 { return b[1] }
func (b BBox) East() float64  { return b[2] }
func (b BBox) North() float64 { return b[3] }

// Corners returns the south-west and north-east corners of the box.
func (b BBox) Corners() (southWest, northEast Corner) {
	return Corner{Lat: b.South(), Lon: b.West()}, Corner{Lat: b.North(), Lon: b.East()}
}

// Bounds returns the fit-to-bounds target of the snapshot as [[south, west], [north, east]].
func (s *Snapshot) Bounds() [2][2]float64 {
	sw, ne := s.BBox.Corners()
	return [2][2]float64{{sw.Lat, sw.Lon}, {ne.Lat, ne.Lon}}
}

// Time parses the snapshot timestamp. ok is false if the timestamp is not RFC 3339.
func (s *Snapshot) Time() (t time.Time, ok bool) {
	t, err := time.Parse(time.RFC3339, s.Timestamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ValidCount returns the number of observations that carry a usable value.
func (s *Snapshot) ValidCount() int {
	if s == nil {
		return 0
	}
	count := 0
	for _, p := range s.Observations {
		if !p.IsMissing() {
			count++
		}
	}
	return count
}

// Total returns the number of grid points in the snapshot, missing ones included.
func (s *Snapshot) Total() int {
	if s == nil {
		return 0
	}
	return len(s.Observations)
}

// IsMissing reports whether the point carries the missing marker. Non-finite values
// cannot be classified either and count as missing.
func (p GridPoint) IsMissing() bool {
	return IsMissing(p.Value)
}

// IsMissing reports whether value is the data source's missing marker.
func IsMissing(value float64) bool {
	return value >= MissingThreshold || math.IsNaN(value) || math.IsInf(value, 0)
}
