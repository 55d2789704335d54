// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kkyr/fig"
)

const (
	configEnv         = "WINDVIEWER"
	DefaultSummaryTpl = "{{loc \"Date\"}}: {{.Date}}\n" +
		"{{if .Snapshot}}{{loc \"Timestamp\"}}: {{.Snapshot.Timestamp}}\n" +
		"{{loc \"Variable\"}}: {{.Snapshot.Variable}}\n" +
		"{{loc \"Valid grids\"}}: {{.Snapshot.ValidCount}} / {{.Snapshot.TotalGrids}}\n" +
		"{{loc \"Resolution\"}}: {{floatFormat (index .Snapshot.Resolution 0) 2}}° × {{floatFormat (index .Snapshot.Resolution 1) 2}}°\n" +
		"{{loc \"Area\"}}: {{floatFormat .Snapshot.Area.West 2}}, {{floatFormat .Snapshot.Area.South 2}} - " +
		"{{floatFormat .Snapshot.Area.East 2}}, {{floatFormat .Snapshot.Area.North 2}}\n" +
		"{{loc \"Loaded\"}}: {{natural .LoadedAt}}{{else}}{{loc \"No wind data loaded\"}}{{end}}"
)

// Config represents the application's configuration structure.
type Config struct {
	Locale   string     `fig:"locale"`
	LogLevel slog.Level `fig:"loglevel" default:"0"`
	Timezone string     `fig:"timezone" default:"UTC"`

	API struct {
		BaseURL string        `fig:"base_url" default:"http://bluemap.kr:21809"`
		Timeout time.Duration `fig:"timeout" default:"10s"`
		Breaker struct {
			MaxFailures uint32        `fig:"max_failures" default:"5"`
			OpenTimeout time.Duration `fig:"open_timeout" default:"1m"`
		} `fig:"breaker"`
		Cache struct {
			// Zero disables the snapshot cache
			TTL     time.Duration `fig:"ttl" default:"0s"`
			MissTTL time.Duration `fig:"miss_ttl" default:"0s"`
		} `fig:"cache"`
	} `fig:"api"`

	Map struct {
		Width      int     `fig:"width" default:"1024"`
		Height     int     `fig:"height" default:"768"`
		CenterLat  float64 `fig:"center_lat" default:"35.1"`
		CenterLon  float64 `fig:"center_lon" default:"129.05"`
		Zoom       float64 `fig:"zoom" default:"9"`
		MinZoom    float64 `fig:"min_zoom" default:"0"`
		MaxZoom    float64 `fig:"max_zoom" default:"19"`
		FitPadding float64 `fig:"fit_padding" default:"20"`
	} `fig:"map"`

	Panel struct {
		Listen      string `fig:"listen" default:"127.0.0.1:8080"`
		BearerToken string `fig:"bearer_token"`
	} `fig:"panel"`

	Reload struct {
		// Zero disables the automatic reload
		Interval time.Duration `fig:"interval" default:"0s"`
	} `fig:"reload"`

	Templates struct {
		Summary string `fig:"summary"`
	} `fig:"templates"`
}

func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read Config: %w", err)
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func New() (*Config, error) {
	conf := new(Config)
	if err := fig.Load(conf, fig.AllowNoFile(), fig.Dirs(DefaultDir()), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

// DefaultDir returns the directory New looks for a config file in.
func DefaultDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "windviewer")
}

// LoadEnv loads the variables of a dotenv file into the process environment. Variables that
// are already set take precedence. A missing file is not an error.
func LoadEnv(file string) error {
	if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Locale == "" {
		c.Locale = getLocale()
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone: %s", c.Timezone)
	}
	base, err := url.Parse(c.API.BaseURL)
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return fmt.Errorf("invalid API base URL: %s", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("invalid API timeout: %s", c.API.Timeout)
	}
	if c.API.Breaker.MaxFailures < 1 {
		return fmt.Errorf("invalid circuit breaker failure limit: %d", c.API.Breaker.MaxFailures)
	}
	if c.API.Cache.TTL < 0 || c.API.Cache.MissTTL < 0 {
		return fmt.Errorf("invalid cache TTL: %s/%s", c.API.Cache.TTL, c.API.Cache.MissTTL)
	}
	if c.Map.Width < 1 || c.Map.Height < 1 {
		return fmt.Errorf("invalid map size: %dx%d", c.Map.Width, c.Map.Height)
	}
	if c.Map.CenterLat < -90 || c.Map.CenterLat > 90 {
		return fmt.Errorf("invalid map center latitude: %f", c.Map.CenterLat)
	}
	if c.Map.CenterLon < -180 || c.Map.CenterLon > 180 {
		return fmt.Errorf("invalid map center longitude: %f", c.Map.CenterLon)
	}
	if c.Map.MinZoom < 0 || c.Map.MaxZoom < c.Map.MinZoom {
		return fmt.Errorf("invalid map zoom range: %g to %g", c.Map.MinZoom, c.Map.MaxZoom)
	}
	if c.Map.FitPadding < 0 {
		return fmt.Errorf("invalid fit padding: %g", c.Map.FitPadding)
	}
	if c.Reload.Interval < 0 {
		return fmt.Errorf("invalid reload interval: %s", c.Reload.Interval)
	}
	if c.Templates.Summary == "" {
		c.Templates.Summary = DefaultSummaryTpl
	}

	return nil
}

// Location returns the configured time zone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getLocale() string {
	locale := os.Getenv("LC_MESSAGES")
	if idx := strings.Index(locale, "."); idx != -1 {
		lang := locale[:idx]
		return strings.ReplaceAll(lang, "_", "-")
	}
	return locale
}
