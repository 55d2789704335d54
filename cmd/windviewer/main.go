// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package main implements the windviewer application.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/vorlif/spreak"
	"golang.org/x/sync/errgroup"

	"github.com/wneessen/windviewer/internal/config"
	"github.com/wneessen/windviewer/internal/fetcher"
	"github.com/wneessen/windviewer/internal/http"
	"github.com/wneessen/windviewer/internal/i18n"
	"github.com/wneessen/windviewer/internal/logger"
	"github.com/wneessen/windviewer/internal/mapview"
	"github.com/wneessen/windviewer/internal/panel"
	"github.com/wneessen/windviewer/internal/presenter"
	"github.com/wneessen/windviewer/internal/viewer"
	"github.com/wneessen/windviewer/internal/window"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGABRT,
		os.Interrupt)
	defer cancel()

	// Initialize Logger
	log := logger.New(slog.LevelError)

	confPath := flag.String("config", "", "path to the config file")
	envFile := flag.String("env", ".env", "path to a dotenv file")
	openWindow := flag.Bool("window", false, "show the map in a desktop window")
	renderFile := flag.String("render", "", "load once, write the map to the given PNG file and exit")
	loadDate := flag.String("date", "", "date to load (YYYY-MM-DD), defaults to today")
	flag.Parse()

	conf, err := loadConfig(*envFile, *confPath)
	if err != nil {
		log.Error("failed to load config", logger.Err(err))
		os.Exit(1)
	}

	log = logger.New(conf.LogLevel)
	t, err := i18n.New(conf.Locale)
	if err != nil {
		log.Error("failed to initialize localizer", logger.Err(err))
		os.Exit(1)
	}

	view, pres, err := newViewer(conf, log, t)
	if err != nil {
		log.Error("failed to initialize wind viewer", logger.Err(err))
		os.Exit(1)
	}
	if *loadDate != "" {
		view.SelectDate(*loadDate)
	}

	log.Info(t.Get("starting windviewer"), slog.String("version", version),
		slog.String("commit", commit), slog.String("date", date))

	switch {
	case *renderFile != "":
		err = render(ctx, view, pres, *renderFile)
	case *openWindow:
		err = runWindow(ctx, view, pres, log)
	default:
		err = runPanel(ctx, conf, view, pres, log)
	}
	if err != nil {
		log.Error(t.Get("windviewer stopped with an error"), logger.Err(err))
		os.Exit(1)
	}
	log.Info(t.Get("shutting down windviewer"))
}

// loadConfig reads the dotenv file first so its variables can override config file values.
func loadConfig(envFile, confPath string) (*config.Config, error) {
	if err := config.LoadEnv(envFile); err != nil {
		return nil, err
	}
	if confPath != "" {
		return config.NewFromFile(filepath.Dir(confPath), filepath.Base(confPath))
	}
	return config.New()
}

func newViewer(conf *config.Config, log *logger.Logger, t *spreak.Localizer) (*viewer.Viewer, *presenter.Presenter, error) {
	f, err := fetcher.New(http.New(log), log, fetcher.Options{
		BaseURL:     conf.API.BaseURL,
		Timeout:     conf.API.Timeout,
		MaxFailures: conf.API.Breaker.MaxFailures,
		OpenTimeout: conf.API.Breaker.OpenTimeout,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create fetcher: %w", err)
	}

	var source viewer.Fetcher = f
	if conf.API.Cache.TTL > 0 || conf.API.Cache.MissTTL > 0 {
		source = fetcher.NewCachedFetcher(f, conf.API.Cache.TTL, conf.API.Cache.MissTTL, log)
	}

	m, err := mapview.New(conf.Map.Width, conf.Map.Height,
		mapview.LatLng{Lat: conf.Map.CenterLat, Lon: conf.Map.CenterLon}, conf.Map.Zoom,
		mapview.Options{MinZoom: conf.Map.MinZoom, MaxZoom: conf.Map.MaxZoom})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create map: %w", err)
	}

	view, err := viewer.New(m, source, t, log, viewer.Options{
		FitPadding:     conf.Map.FitPadding,
		ReloadInterval: conf.Reload.Interval,
		Location:       conf.Location(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create viewer: %w", err)
	}

	pres, err := presenter.New(conf, t)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create presenter: %w", err)
	}
	return view, pres, nil
}

func runPanel(ctx context.Context, conf *config.Config, view *viewer.Viewer, pres *presenter.Presenter, log *logger.Logger) error {
	srv := panel.New(panel.Options{Listen: conf.Panel.Listen, BearerToken: conf.Panel.BearerToken},
		view, pres, log)

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error { return view.Run(ctx) })
	group.Go(func() error { return srv.Run(ctx) })
	return group.Wait()
}

func runWindow(ctx context.Context, view *viewer.Viewer, pres *presenter.Presenter, log *logger.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		if err := view.Run(ctx); err != nil {
			log.Error("automatic reload stopped", logger.Err(err))
		}
	}()
	return window.Run(window.New(ctx, view, pres, log), "windviewer "+version)
}

func render(ctx context.Context, view *viewer.Viewer, pres *presenter.Presenter, file string) error {
	if err := view.Load(ctx); err != nil {
		return err
	}

	out, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err = png.Encode(out, view.Render()); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to encode map: %w", err)
	}
	if err = out.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	summary, err := pres.Summary(view.Status())
	if err != nil {
		return err
	}
	fmt.Println(summary)
	return nil
}
