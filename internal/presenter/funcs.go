// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package presenter

import (
	"fmt"
	"math"
	"strings"
	"text/template"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/vorlif/humanize"
	"github.com/vorlif/spreak/localize"
)

var i18nVars = map[string]localize.MsgID{
	"date":                "Date",
	"timestamp":           "Timestamp",
	"variable":            "Variable",
	"valid grids":         "Valid grids",
	"resolution":          "Resolution",
	"area":                "Area",
	"loaded":              "Loaded",
	"no wind data loaded": "No wind data loaded",
	"overlay":             "Overlay",
	"visible":             "visible",
	"hidden":              "hidden",
	"loading":             "Loading",
	"legend":              "Legend",
	"wind direction":      "Wind direction",
}

func (p *Presenter) templateFuncMap() template.FuncMap {
	return template.FuncMap{
		"timeFormat":    p.timeFormat,
		"localizedTime": p.localizedTime,
		"natural":       p.natural,
		"floatFormat":   p.floatFormat,
		"loc":           p.loc,
		"pad":           pad,
		"lc":            strings.ToLower,
		"uc":            strings.ToUpper,
	}
}

func (p *Presenter) loc(val string) string {
	if raw, ok := i18nVars[strings.ToLower(val)]; ok {
		val = raw
	}
	if p.localizer == nil {
		return val
	}
	return p.localizer.Get(val)
}

func (p *Presenter) localizedTime(val time.Time) string {
	return p.humanizer.FormatTime(val.In(p.location), humanize.TimeFormat)
}

// natural returns how long ago val was, or "-" for the zero time.
func (p *Presenter) natural(val time.Time) string {
	if val.IsZero() {
		return "-"
	}
	return p.humanizer.NaturalTime(val)
}

func (p *Presenter) timeFormat(val time.Time, fmt string) string {
	return val.In(p.location).Format(fmt)
}

func (p *Presenter) floatFormat(val float64, precision int) string {
	pow := math.Pow(10, float64(precision))
	return fmt.Sprintf("%.*f", precision, math.Trunc(val*pow)/pow)
}

// pad fills val with spaces up to the given display width.
func pad(val string, width int) string {
	return runewidth.FillRight(val, width)
}
