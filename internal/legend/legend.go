// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package legend lists the direction classes of the overlay and draws them as a legend box
// onto rendered map images.
package legend

import (
	"image"
	"image/color"
	"image/draw"
	"unicode"

	"github.com/vorlif/spreak"
	"github.com/vorlif/spreak/localize"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"

	"github.com/wneessen/windviewer/internal/wind"
)

const (
	margin     = 10
	padding    = 6
	swatchSize = 7
	lineHeight = 10
	textGap    = 5
)

var (
	Title localize.MsgID = "Wind direction"

	boxColor    = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xE6}
	borderColor = color.RGBA{R: 0x6B, G: 0x72, B: 0x80, A: 0xFF}
	textColor   = color.RGBA{R: 0x11, G: 0x18, B: 0x27, A: 0xFF}
)

// Entry is one line of the legend.
type Entry struct {
	Label   string     `json:"label"`
	Source  string     `json:"-"`
	Hex     string     `json:"color"`
	Color   color.RGBA `json:"-"`
	From    float64    `json:"from"`
	To      float64    `json:"to"`
	Missing bool       `json:"missing,omitempty"`
}

// Entries returns the four direction classes followed by the missing data entry. Labels are
// translated with loc when it is not nil.
func Entries(loc *spreak.Localizer) []Entry {
	entries := make([]Entry, 0, len(wind.Buckets)+1)
	for _, bucket := range wind.Buckets {
		from, to := bucket.Range()
		entries = append(entries, Entry{
			Label:  translate(loc, bucket.Label()),
			Source: bucket.Label(),
			Hex:    bucket.Hex(),
			Color:  bucket.Color(),
			From:   from,
			To:     to,
		})
	}
	return append(entries, Entry{
		Label:   translate(loc, wind.MissingLabel),
		Source:  wind.MissingLabel,
		Hex:     wind.MissingHex,
		Color:   wind.MissingColor,
		Missing: true,
	})
}

// Draw paints a legend box for entries into the bottom left corner of img and returns the
// area it covers. The bitmap font only covers ASCII, so entries with other labels fall back
// to their untranslated text.
func Draw(img *image.RGBA, title string, entries []Entry) image.Rectangle {
	if !printable(title) {
		title = Title
	}
	lines := make([]string, len(entries))
	textWidth := lineWidth(title)
	for i, e := range entries {
		lines[i] = e.Label
		if !printable(lines[i]) {
			lines[i] = e.Source
		}
		if w := swatchSize + textGap + lineWidth(lines[i]); w > textWidth {
			textWidth = w
		}
	}

	width := 2*padding + textWidth
	height := 2*padding + lineHeight*(len(entries)+1)
	bounds := img.Bounds()
	box := image.Rect(bounds.Min.X+margin, bounds.Max.Y-margin-height, bounds.Min.X+margin+width,
		bounds.Max.Y-margin).Intersect(bounds)
	if box.Empty() {
		return box
	}

	draw.Draw(img, box, image.NewUniform(boxColor), image.Point{}, draw.Over)
	strokeRect(img, box, borderColor)

	d := &canvas{img: img}
	x := box.Min.X + padding
	y := box.Min.Y + padding
	tinyfont.WriteLine(d, &tinyfont.TomThumb, int16(x), int16(y+lineHeight-3), title, textColor)
	for i, e := range entries {
		y += lineHeight
		swatch := image.Rect(x, y+1, x+swatchSize, y+1+swatchSize)
		draw.Draw(img, swatch.Intersect(box), image.NewUniform(e.Color), image.Point{}, draw.Src)
		tinyfont.WriteLine(d, &tinyfont.TomThumb, int16(x+swatchSize+textGap), int16(y+lineHeight-3),
			lines[i], textColor)
	}
	return box
}

// canvas adapts an RGBA image to the display driver interface the bitmap font renders to.
type canvas struct {
	img *image.RGBA
}

var _ drivers.Displayer = (*canvas)(nil)

func (c *canvas) Size() (x, y int16) {
	b := c.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (c *canvas) SetPixel(x, y int16, col color.RGBA) {
	c.img.SetRGBA(int(x), int(y), col)
}

func (c *canvas) Display() error {
	return nil
}

func strokeRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.SetRGBA(x, r.Min.Y, c)
		img.SetRGBA(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.SetRGBA(r.Min.X, y, c)
		img.SetRGBA(r.Max.X-1, y, c)
	}
}

func lineWidth(s string) int {
	_, outbox := tinyfont.LineWidth(&tinyfont.TomThumb, s)
	return int(outbox)
}

func printable(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}

func translate(loc *spreak.Localizer, id localize.MsgID) string {
	if loc == nil {
		return id
	}
	return loc.Get(id)
}
