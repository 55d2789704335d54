// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package panel

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wneessen/windviewer/internal/fetcher"
	"github.com/wneessen/windviewer/internal/logger"
	"github.com/wneessen/windviewer/internal/viewer"
)

type dateRequest struct {
	Date string `json:"date" binding:"required,datetime=2006-01-02"`
}

type loadRequest struct {
	Date string `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

type panRequest struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

type zoomRequest struct {
	Delta float64  `json:"delta"`
	Zoom  *float64 `json:"zoom"`
}

type resizeRequest struct {
	Width  int `json:"width" binding:"required,min=1,max=8192"`
	Height int `json:"height" binding:"required,min=1,max=8192"`
}

type statusResponse struct {
	viewer.Status
	Summary string `json:"summary"`
}

// handleStatus returns the viewer state and the rendered summary
// GET /api/status
func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.statusResponse())
}

// handleSelectDate changes the date the next load requests
// PUT /api/date
func (s *Server) handleSelectDate(c *gin.Context) {
	var req dateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.viewer.SelectDate(req.Date)
	c.JSON(http.StatusOK, s.statusResponse())
}

// handleLoad loads the selected date, or the date given in the body
// POST /api/load
func (s *Server) handleLoad(c *gin.Context) {
	var req loadRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var err error
	if req.Date != "" {
		err = s.viewer.LoadDate(c.Request.Context(), req.Date)
	} else {
		err = s.viewer.Load(c.Request.Context())
	}
	if err != nil {
		c.JSON(loadErrorStatus(err), gin.H{"error": err.Error(), "status": s.statusResponse()})
		return
	}
	c.JSON(http.StatusOK, s.statusResponse())
}

// handleToggleOverlay hides or shows the overlay
// POST /api/overlay/toggle
func (s *Server) handleToggleOverlay(c *gin.Context) {
	visible := s.viewer.ToggleOverlay()
	c.JSON(http.StatusOK, gin.H{"overlay_visible": visible})
}

// handleDismissAlert clears the alert of the last failed load
// DELETE /api/alert
func (s *Server) handleDismissAlert(c *gin.Context) {
	s.viewer.DismissAlert()
	c.Status(http.StatusNoContent)
}

// handleLegend returns the legend entries
// GET /api/legend
func (s *Server) handleLegend(c *gin.Context) {
	entries := s.viewer.Legend()
	c.JSON(http.StatusOK, gin.H{
		"data": entries,
		"text": s.presenter.LegendText(entries),
	})
}

// handlePan moves the map by a pixel offset
// POST /api/map/pan
func (s *Server) handlePan(c *gin.Context) {
	var req panRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.viewer.Pan(req.DX, req.DY)
	c.JSON(http.StatusOK, s.viewer.Status().Map)
}

// handleZoom sets the zoom level or changes it by a delta
// POST /api/map/zoom
func (s *Server) handleZoom(c *gin.Context) {
	var req zoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Zoom != nil {
		s.viewer.SetZoom(*req.Zoom)
	} else {
		s.viewer.Zoom(req.Delta)
	}
	c.JSON(http.StatusOK, s.viewer.Status().Map)
}

// handleResize changes the viewport size
// POST /api/map/resize
func (s *Server) handleResize(c *gin.Context) {
	var req resizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.viewer.Resize(req.Width, req.Height); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.viewer.Status().Map)
}

// handleMapImage returns the composed map
// GET /map.png
func (s *Server) handleMapImage(c *gin.Context) {
	s.writePNG(c, s.viewer.Render())
}

// handleOverlayImage returns the overlay surface
// GET /overlay.png
func (s *Server) handleOverlayImage(c *gin.Context) {
	img, ok := s.viewer.OverlayImage()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no overlay loaded"})
		return
	}
	s.writePNG(c, img)
}

func (s *Server) writePNG(c *gin.Context, img image.Image) {
	buf := bytes.NewBuffer(nil)
	if err := png.Encode(buf, img); err != nil {
		s.logger.Error("failed to encode PNG", logger.Err(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to encode image"})
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (s *Server) statusResponse() statusResponse {
	status := s.viewer.Status()
	summary, err := s.presenter.Summary(status)
	if err != nil {
		s.logger.Error("failed to render summary", logger.Err(err))
	}
	return statusResponse{Status: status, Summary: summary}
}

func loadErrorStatus(err error) int {
	switch {
	case errors.Is(err, viewer.ErrLoadInProgress):
		return http.StatusConflict
	case errors.Is(err, fetcher.ErrInvalidDate):
		return http.StatusBadRequest
	case errors.Is(err, fetcher.ErrEmptyResult):
		return http.StatusNotFound
	case errors.Is(err, fetcher.ErrNetwork):
		return http.StatusBadGateway
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
