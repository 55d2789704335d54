// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package viewer ties the map viewport, the wind data fetcher and the direction overlay
// together. It holds the control state the front-ends operate on: the selected date, the
// loading flag, the current overlay and the last alert.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/vorlif/spreak"

	"github.com/wneessen/windviewer/internal/fetcher"
	"github.com/wneessen/windviewer/internal/legend"
	"github.com/wneessen/windviewer/internal/logger"
	"github.com/wneessen/windviewer/internal/mapview"
	"github.com/wneessen/windviewer/internal/overlay"
	"github.com/wneessen/windviewer/internal/wind"
)

const (
	// DefaultFitPadding is the space in pixels kept free around a snapshot's bounds
	DefaultFitPadding = 20

	reloadJobName = "wind_reload_job"
)

var ErrLoadInProgress = errors.New("wind data is already being loaded")

// Fetcher retrieves the snapshot for a date.
type Fetcher interface {
	Fetch(ctx context.Context, date string) (*wind.Snapshot, error)
}

// Options configures a Viewer.
type Options struct {
	FitPadding     float64
	ReloadInterval time.Duration
	Location       *time.Location
}

// Alert is a failed load as presented to the user.
type Alert struct {
	Message string    `json:"message"`
	Date    string    `json:"date"`
	LoadID  string    `json:"load_id"`
	Time    time.Time `json:"time"`
	Err     error     `json:"-"`
}

// Viewer is safe for concurrent use. Every access to the map and the overlay happens while
// holding the viewer lock; the network request of a load runs without it.
type Viewer struct {
	mu        sync.Mutex
	m         *mapview.Map
	fetcher   Fetcher
	logger    *logger.Logger
	localizer *spreak.Localizer
	opts      Options
	now       func() time.Time

	date     string
	loading  bool
	layer    *overlay.Layer
	snapshot *wind.Snapshot
	alert    *Alert
	loadID   string
	loadedAt time.Time
}

// New returns a Viewer for m that loads data with f. The selected date defaults to today.
func New(m *mapview.Map, f Fetcher, loc *spreak.Localizer, log *logger.Logger, opts Options) (*Viewer, error) {
	if opts.FitPadding <= 0 {
		opts.FitPadding = DefaultFitPadding
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}

	v := &Viewer{
		m:         m,
		fetcher:   f,
		logger:    log,
		localizer: loc,
		opts:      opts,
		now:       time.Now,
	}
	v.date = v.today()
	return v, nil
}

// Run starts the automatic reload, if configured, and blocks until ctx is cancelled. The
// reload scheduler only exists while Run is active.
func (v *Viewer) Run(ctx context.Context) error {
	if v.opts.ReloadInterval <= 0 {
		<-ctx.Done()
		return nil
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(v.opts.ReloadInterval),
		gocron.NewTask(v.reload),
		gocron.WithContext(ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName(reloadJobName),
	)
	if err != nil {
		return errors.Join(fmt.Errorf("failed to create %s: %w", reloadJobName, err), scheduler.Shutdown())
	}
	v.logger.Info("automatic reload enabled", slog.Duration("interval", v.opts.ReloadInterval))
	scheduler.Start()

	<-ctx.Done()
	return scheduler.Shutdown()
}

func (v *Viewer) reload(ctx context.Context) {
	if err := v.Load(ctx); errors.Is(err, ErrLoadInProgress) {
		v.logger.Debug("skipping automatic reload, load in progress")
	}
}

// SelectDate sets the date the next load requests. It may be changed while a load is in
// progress; the running load keeps the date it started with.
func (v *Viewer) SelectDate(date string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.date = date
}

// SelectedDate returns the date the next load requests.
func (v *Viewer) SelectedDate() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.date
}

// ShiftDate moves the selected date by days. A selected date that does not parse is
// replaced by today first.
func (v *Viewer) ShiftDate(days int) string {
	v.mu.Lock()
	defer v.mu.Unlock()
	t, err := time.ParseInLocation(fetcher.DateLayout, v.date, v.opts.Location)
	if err != nil {
		t, _ = time.ParseInLocation(fetcher.DateLayout, v.today(), v.opts.Location)
	}
	v.date = t.AddDate(0, 0, days).Format(fetcher.DateLayout)
	return v.date
}

// Loading reports whether a load is in progress.
func (v *Viewer) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

// Load fetches the snapshot for the selected date and replaces the overlay with it. While a
// load is in progress further calls fail with ErrLoadInProgress. A failed load keeps the
// current overlay and stores an alert.
func (v *Viewer) Load(ctx context.Context) error {
	v.mu.Lock()
	if v.loading {
		v.mu.Unlock()
		return ErrLoadInProgress
	}
	v.loading = true
	date := v.date
	loadID := uuid.NewString()
	v.mu.Unlock()

	log := v.logger.With(slog.String("load_id", loadID), slog.String("date", date))
	log.Info("loading wind data")
	start := time.Now()
	snap, err := v.fetcher.Fetch(ctx, date)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false
	v.loadID = loadID
	if err != nil {
		log.Error("failed to load wind data", logger.Err(err))
		v.alert = &Alert{
			Message: v.translate("Failed to load wind data") + ": " + err.Error(),
			Date:    date,
			LoadID:  loadID,
			Time:    v.now(),
			Err:     err,
		}
		return err
	}

	v.replaceLayer(snap)
	v.alert = nil
	v.loadedAt = v.now()
	log.Info("wind data loaded", slog.String("timestamp", snap.Timestamp),
		slog.Int("valid", snap.ValidCount()), slog.Int("total", snap.Total()),
		slog.Duration("took", time.Since(start)))
	return nil
}

// LoadDate selects date and loads it.
func (v *Viewer) LoadDate(ctx context.Context, date string) error {
	v.mu.Lock()
	if v.loading {
		v.mu.Unlock()
		return ErrLoadInProgress
	}
	v.date = date
	v.mu.Unlock()
	return v.Load(ctx)
}

// replaceLayer discards the current overlay, attaches one for snap and fits the map to the
// snapshot's bounding box. The caller holds the lock.
func (v *Viewer) replaceLayer(snap *wind.Snapshot) {
	if v.layer != nil {
		v.layer.Remove()
		v.layer = nil
	}
	layer := overlay.New(snap, v.logger)
	if err := layer.AddTo(v.m); err != nil {
		// a fresh layer is never in the removed state
		v.logger.Error("failed to attach overlay", logger.Err(err))
		return
	}
	v.layer = layer
	v.snapshot = snap

	b := snap.Bounds()
	v.m.FitBounds(mapview.NewBounds(
		mapview.LatLng{Lat: b[0][0], Lon: b[0][1]},
		mapview.LatLng{Lat: b[1][0], Lon: b[1][1]},
	), v.opts.FitPadding)
}

// ToggleOverlay hides a visible overlay or shows a hidden one and returns the new
// visibility. Without an overlay it does nothing and returns false.
func (v *Viewer) ToggleOverlay() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.layer == nil {
		return false
	}
	return v.layer.Toggle()
}

// ValidCount returns the number of observations with a value in the current snapshot.
func (v *Viewer) ValidCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshot.ValidCount()
}

// Snapshot returns the snapshot of the current overlay, or nil.
func (v *Viewer) Snapshot() *wind.Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshot
}

// Alert returns the alert of the last failed load, or nil if the last load succeeded.
func (v *Viewer) Alert() *Alert {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.alert
}

// DismissAlert clears the current alert.
func (v *Viewer) DismissAlert() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.alert = nil
}

// Legend returns the localized legend entries.
func (v *Viewer) Legend() []legend.Entry {
	return legend.Entries(v.localizer)
}

// Render returns the composed map image with the overlay and the legend box.
func (v *Viewer) Render() *image.RGBA {
	v.mu.Lock()
	defer v.mu.Unlock()
	img := v.m.Render()
	legend.Draw(img, v.translate(legend.Title), legend.Entries(v.localizer))
	return img
}

// OverlayImage returns a copy of the overlay surface. The second return value is false if
// no overlay is loaded.
func (v *Viewer) OverlayImage() (*image.RGBA, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.layer == nil {
		return nil, false
	}
	src := v.layer.Image()
	if src == nil {
		return nil, false
	}
	img := image.NewRGBA(src.Bounds())
	draw.Draw(img, img.Bounds(), src, src.Bounds().Min, draw.Src)
	return img, true
}

// Pan moves the map by the given number of pixels.
func (v *Viewer) Pan(dx, dy float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.m.PanBy(dx, dy)
}

// Zoom changes the zoom level by delta.
func (v *Viewer) Zoom(delta float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.m.ZoomIn(delta)
}

// SetZoom sets the zoom level.
func (v *Viewer) SetZoom(zoom float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.m.SetZoom(zoom)
}

// Resize changes the size of the map viewport.
func (v *Viewer) Resize(width, height int) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.m.Resize(width, height)
}

// Size returns the size of the map viewport.
func (v *Viewer) Size() (width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.m.Size()
}

// CapturesPointer reports whether pointer input at pt goes to an overlay instead of the map.
func (v *Viewer) CapturesPointer(pt mapview.Point) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.m.HitInteractive(pt)
}

func (v *Viewer) today() string {
	return v.now().In(v.opts.Location).Format(fetcher.DateLayout)
}

func (v *Viewer) translate(id string) string {
	if v.localizer == nil {
		return id
	}
	return v.localizer.Get(id)
}
