// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package viewer

import (
	"time"

	"github.com/wneessen/windviewer/internal/mapview"
	"github.com/wneessen/windviewer/internal/overlay"
)

// Status is a point-in-time copy of the viewer state.
type Status struct {
	Date           string           `json:"date"`
	Loading        bool             `json:"loading"`
	OverlayLoaded  bool             `json:"overlay_loaded"`
	OverlayVisible bool             `json:"overlay_visible"`
	Snapshot       *SnapshotSummary `json:"snapshot,omitempty"`
	Stats          overlay.Stats    `json:"stats"`
	Alert          *Alert           `json:"alert,omitempty"`
	LoadID         string           `json:"load_id,omitempty"`
	LoadedAt       time.Time        `json:"loaded_at"`
	Map            MapState         `json:"map"`
}

// SnapshotSummary describes the snapshot of the current overlay.
type SnapshotSummary struct {
	Timestamp  string     `json:"timestamp"`
	Variable   string     `json:"variable"`
	ValidCount int        `json:"valid_count"`
	TotalGrids int        `json:"total_grids"`
	Resolution [2]float64 `json:"resolution"`
	Area       Area       `json:"area"`
}

// Area is a bounding box in degrees.
type Area struct {
	West  float64 `json:"west"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	North float64 `json:"north"`
}

// MapState is the current map viewport.
type MapState struct {
	Width  int            `json:"width"`
	Height int            `json:"height"`
	Center mapview.LatLng `json:"center"`
	Zoom   float64        `json:"zoom"`
}

// Status returns the current state of the viewer.
func (v *Viewer) Status() Status {
	v.mu.Lock()
	defer v.mu.Unlock()

	width, height := v.m.Size()
	status := Status{
		Date:     v.date,
		Loading:  v.loading,
		LoadID:   v.loadID,
		LoadedAt: v.loadedAt,
		Map: MapState{
			Width:  width,
			Height: height,
			Center: v.m.Center(),
			Zoom:   v.m.Zoom(),
		},
	}
	if v.alert != nil {
		alert := *v.alert
		status.Alert = &alert
	}
	if v.layer != nil {
		status.OverlayLoaded = true
		status.OverlayVisible = v.layer.Visible()
		status.Stats = v.layer.Stats()
	}
	if snap := v.snapshot; snap != nil {
		status.Snapshot = &SnapshotSummary{
			Timestamp:  snap.Timestamp,
			Variable:   snap.Variable,
			ValidCount: snap.ValidCount(),
			TotalGrids: snap.Total(),
			Resolution: snap.Resolution,
			Area: Area{
				West:  snap.BBox.West(),
				South: snap.BBox.South(),
				East:  snap.BBox.East(),
				North: snap.BBox.North(),
			},
		}
	}
	return status
}
