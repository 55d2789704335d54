// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/vorlif/humanize"
	"github.com/vorlif/spreak"

	"github.com/wneessen/windviewer/internal/config"
	"github.com/wneessen/windviewer/internal/i18n"
	"github.com/wneessen/windviewer/internal/legend"
	"github.com/wneessen/windviewer/internal/viewer"
)

// Presenter turns viewer state into text for people.
type Presenter struct {
	localizer *spreak.Localizer
	humanizer *humanize.Humanizer
	location  *time.Location
	summary   *template.Template
}

func New(conf *config.Config, loc *spreak.Localizer) (*Presenter, error) {
	p := &Presenter{
		localizer: loc,
		humanizer: humanize.MustNew().CreateHumanizer(i18n.Tag(conf.Locale)),
		location:  conf.Location(),
	}

	tpl, err := template.New("summary").Funcs(p.templateFuncMap()).Parse(conf.Templates.Summary)
	if err != nil {
		return nil, fmt.Errorf("failed to parse summary template: %w", err)
	}
	p.summary = tpl
	return p, nil
}

// Summary renders status with the summary template.
func (p *Presenter) Summary(status viewer.Status) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := p.summary.Execute(buf, status); err != nil {
		return "", fmt.Errorf("failed to render summary template: %w", err)
	}
	return buf.String(), nil
}

// StatusLine returns a single line describing the date, the load state and the overlay.
func (p *Presenter) StatusLine(status viewer.Status) string {
	parts := []string{p.loc("date") + ": " + status.Date}
	switch {
	case status.Loading:
		parts = append(parts, p.loc("loading")+"...")
	case status.Snapshot != nil:
		parts = append(parts, fmt.Sprintf("%s: %d / %d", p.loc("valid grids"), status.Snapshot.ValidCount,
			status.Snapshot.TotalGrids))
	default:
		parts = append(parts, p.loc("no wind data loaded"))
	}
	if status.OverlayLoaded {
		visibility := p.loc("hidden")
		if status.OverlayVisible {
			visibility = p.loc("visible")
		}
		parts = append(parts, p.loc("overlay")+": "+visibility)
	}
	return strings.Join(parts, " | ")
}

// LegendText renders entries as aligned lines of color, label and degree range. The missing
// data entry has no range.
func (p *Presenter) LegendText(entries []legend.Entry) string {
	width := 0
	for _, e := range entries {
		width = max(width, runewidth.StringWidth(e.Label))
	}

	var sb strings.Builder
	sb.WriteString(p.loc("legend"))
	sb.WriteString("\n")
	for _, e := range entries {
		sb.WriteString(e.Hex)
		sb.WriteString("  ")
		if e.Missing {
			sb.WriteString(e.Label)
		} else {
			sb.WriteString(runewidth.FillRight(e.Label, width))
			sb.WriteString(fmt.Sprintf("  %3.0f° - %3.0f°", e.From, e.To))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
