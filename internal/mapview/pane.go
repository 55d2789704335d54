// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package mapview

import (
	"image"
)

// Element is a raster surface inserted into a pane. Surfaces are anchored at the pane
// origin, which is the top left corner of the viewport.
type Element interface {
	Image() image.Image
	// Interactive reports whether the element captures pointer input. Non-interactive
	// elements let drags and clicks pass through to the map.
	Interactive() bool
}

// Pane is an ordered stack of elements, painted first to last.
type Pane struct {
	elements []Element
}

func newPane() *Pane {
	return &Pane{}
}

// Append puts e on top of the stack. Appending an element that is already part of the
// pane moves it to the top.
func (p *Pane) Append(e Element) {
	p.Remove(e)
	p.elements = append(p.elements, e)
}

// Remove takes e out of the pane and reports whether it was present.
func (p *Pane) Remove(e Element) bool {
	for i, el := range p.elements {
		if el == e {
			p.elements = append(p.elements[:i:i], p.elements[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether e is part of the pane.
func (p *Pane) Contains(e Element) bool {
	for _, el := range p.elements {
		if el == e {
			return true
		}
	}
	return false
}

// Elements returns a copy of the stack, bottom first.
func (p *Pane) Elements() []Element {
	return append([]Element(nil), p.elements...)
}

// HitInteractive reports whether an interactive element has a visible pixel at pt and
// would therefore capture pointer input there.
func (m *Map) HitInteractive(pt Point) bool {
	x, y := int(pt.X), int(pt.Y)
	for i := len(m.overlayPane.elements) - 1; i >= 0; i-- {
		el := m.overlayPane.elements[i]
		if !el.Interactive() {
			continue
		}
		img := el.Image()
		if img == nil || !(image.Point{X: x, Y: y}).In(img.Bounds()) {
			continue
		}
		if _, _, _, a := img.At(x, y).RGBA(); a > 0 {
			return true
		}
	}
	return false
}
