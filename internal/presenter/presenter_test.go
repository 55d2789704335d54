// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/wneessen/windviewer/internal/config"
	"github.com/wneessen/windviewer/internal/i18n"
	"github.com/wneessen/windviewer/internal/legend"
	"github.com/wneessen/windviewer/internal/viewer"
)

var loadedStatus = viewer.Status{
	Date:           "2025-06-17",
	OverlayLoaded:  true,
	OverlayVisible: true,
	Snapshot: &viewer.SnapshotSummary{
		Timestamp:  "2025-06-17T06:00:00Z",
		Variable:   "windDirection",
		ValidCount: 3,
		TotalGrids: 4,
		Resolution: [2]float64{0.25, 0.25},
		Area:       viewer.Area{West: 128, South: 34, East: 130, North: 36},
	},
	LoadedAt: time.Now().Add(-time.Minute * 5),
}

func TestNew(t *testing.T) {
	t.Run("new presenter with default template succeeds", func(t *testing.T) {
		if _, err := New(testConfig(t, "en"), nil); err != nil {
			t.Fatalf("failed to create presenter: %s", err)
		}
	})
	t.Run("new presenter with broken template fails", func(t *testing.T) {
		conf := testConfig(t, "en")
		conf.Templates.Summary = "{{.Date"
		if _, err := New(conf, nil); err == nil {
			t.Error("expected presenter creation to fail")
		}
	})
}

func TestPresenter_Summary(t *testing.T) {
	t.Run("summary of a loaded snapshot", func(t *testing.T) {
		pres, err := New(testConfig(t, "en"), nil)
		if err != nil {
			t.Fatal(err)
		}
		got, err := pres.Summary(loadedStatus)
		if err != nil {
			t.Fatalf("failed to render summary: %s", err)
		}
		for _, want := range []string{
			"Date: 2025-06-17",
			"Timestamp: 2025-06-17T06:00:00Z",
			"Variable: windDirection",
			"Valid grids: 3 / 4",
			"Resolution: 0.25° × 0.25°",
			"Area: 128.00, 34.00 - 130.00, 36.00",
			"Loaded: ",
			"ago",
		} {
			if !strings.Contains(got, want) {
				t.Errorf("expected summary to contain %q, got:\n%s", want, got)
			}
		}
	})
	t.Run("summary without snapshot", func(t *testing.T) {
		pres, err := New(testConfig(t, "en"), nil)
		if err != nil {
			t.Fatal(err)
		}
		got, err := pres.Summary(viewer.Status{Date: "2025-06-17"})
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(got, "No wind data loaded") {
			t.Errorf("expected summary to mention missing data, got:\n%s", got)
		}
	})
	t.Run("summary is localized", func(t *testing.T) {
		loc, err := i18n.New("ko")
		if err != nil {
			t.Fatal(err)
		}
		pres, err := New(testConfig(t, "ko"), loc)
		if err != nil {
			t.Fatal(err)
		}
		got, err := pres.Summary(loadedStatus)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(got, "날짜: 2025-06-17") {
			t.Errorf("expected a Korean summary, got:\n%s", got)
		}
	})
	t.Run("custom templates can use the helper functions", func(t *testing.T) {
		conf := testConfig(t, "en")
		conf.Templates.Summary = `[{{pad .Date 12}}]{{uc .Snapshot.Variable}} {{timeFormat .LoadedAt "2006"}}`
		pres, err := New(conf, nil)
		if err != nil {
			t.Fatal(err)
		}
		got, err := pres.Summary(loadedStatus)
		if err != nil {
			t.Fatal(err)
		}
		want := "[2025-06-17  ]WINDDIRECTION " + loadedStatus.LoadedAt.UTC().Format("2006")
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})
	t.Run("template errors are reported", func(t *testing.T) {
		conf := testConfig(t, "en")
		conf.Templates.Summary = `{{.Snapshot.Variable}}`
		pres, err := New(conf, nil)
		if err != nil {
			t.Fatal(err)
		}
		if _, err = pres.Summary(viewer.Status{}); err == nil {
			t.Error("expected rendering a nil snapshot to fail")
		}
	})
}

func TestPresenter_StatusLine(t *testing.T) {
	pres, err := New(testConfig(t, "en"), nil)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name   string
		status viewer.Status
		want   string
	}{
		{"loaded", loadedStatus, "Date: 2025-06-17 | Valid grids: 3 / 4 | Overlay: visible"},
		{"loading", viewer.Status{Date: "2025-06-17", Loading: true}, "Date: 2025-06-17 | Loading..."},
		{"empty", viewer.Status{Date: "2025-06-17"}, "Date: 2025-06-17 | No wind data loaded"},
		{
			"hidden overlay",
			viewer.Status{Date: "2025-06-17", OverlayLoaded: true, Snapshot: loadedStatus.Snapshot},
			"Date: 2025-06-17 | Valid grids: 3 / 4 | Overlay: hidden",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := pres.StatusLine(tc.status); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestPresenter_LegendText(t *testing.T) {
	t.Run("legend lines are aligned", func(t *testing.T) {
		loc, err := i18n.New("ko")
		if err != nil {
			t.Fatal(err)
		}
		pres, err := New(testConfig(t, "ko"), loc)
		if err != nil {
			t.Fatal(err)
		}
		lines := strings.Split(strings.TrimSpace(pres.LegendText(legend.Entries(loc))), "\n")
		if len(lines) != 6 {
			t.Fatalf("expected a title and 5 entries, got %d lines", len(lines))
		}
		width := runewidth.StringWidth(lines[1])
		for _, line := range lines[2:5] {
			if runewidth.StringWidth(line) != width {
				t.Errorf("expected aligned lines, got %q (%d) and %q (%d)", lines[1], width, line,
					runewidth.StringWidth(line))
			}
		}
		if !strings.HasPrefix(lines[1], "#3B82F6  북풍") {
			t.Errorf("unexpected first entry: %q", lines[1])
		}
		if !strings.Contains(lines[5], "#9CA3AF") || strings.Contains(lines[5], "°") {
			t.Errorf("expected missing data entry without range, got %q", lines[5])
		}
	})
}

func testConfig(t *testing.T, locale string) *config.Config {
	t.Helper()
	conf, err := config.New()
	if err != nil {
		t.Fatalf("failed to load config: %s", err)
	}
	conf.Locale = locale
	return conf
}
