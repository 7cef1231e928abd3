// stampplace - content-aware stamp placement engine for paginated documents
// Copyright (C) 2026  stampplace contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package diagnostics renders the engine's optional diagnostics
// channel (spec.md §6) as a single overlay image: text in red, images
// in blue, QR codes in magenta, the chosen zone in green. This is
// tooling around the core, not the core itself — the engine never
// renders anything.
package diagnostics

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/piecemark/stampplace"
)

var (
	textColor  = color.RGBA{R: 220, A: 255}
	imageColor = color.RGBA{B: 220, A: 255}
	qrColor    = color.RGBA{R: 200, B: 200, A: 255}
	zoneColor  = color.RGBA{G: 180, A: 255}
)

// Render draws diag's masks over a grayscale copy of r as translucent
// tints, then outlines the chosen zone and labels the tier that
// produced it.
func Render(r stampplace.Raster, p stampplace.Placement, diag stampplace.Diagnostics) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.W, r.H))
	for y := 0; y < r.H; y++ {
		for x := 0; x < r.W; x++ {
			v := r.Pix[y*r.W+x]
			img.Set(x, y, color.Gray{Y: v})
		}
	}

	tint(img, diag.Text, textColor)
	tint(img, diag.Image, imageColor)
	tint(img, diag.QR, qrColor)

	outlineZone(img, int(p.X), int(p.Y), int(p.Zone), zoneColor)
	drawLabel(img, int(p.X)+4, int(p.Y)+14, string(diag.Tier))

	return img
}

// tint alpha-blends color c onto img wherever m is set, using
// draw.DrawMask so the call matches the stdlib idiom the pack's
// watermarking reference file uses for compositing text onto a base
// image, rather than a hand-rolled per-pixel blend loop.
func tint(img *image.RGBA, m stampplace.Mask, c color.RGBA) {
	if m.W != img.Bounds().Dx() || m.H != img.Bounds().Dy() {
		return
	}
	overlay := image.NewUniform(c)
	mask := &maskImage{m: m}
	draw.DrawMask(img, img.Bounds(), overlay, image.Point{}, mask, image.Point{}, draw.Over)
}

// maskImage adapts a stampplace.Mask to image.Image so it can serve
// as the alpha channel for draw.DrawMask: set pixels are partially
// opaque, clear pixels fully transparent.
type maskImage struct{ m stampplace.Mask }

func (mi *maskImage) ColorModel() color.Model { return color.AlphaModel }
func (mi *maskImage) Bounds() image.Rectangle { return image.Rect(0, 0, mi.m.W, mi.m.H) }
func (mi *maskImage) At(x, y int) color.Color {
	if mi.m.At(x, y) {
		return color.Alpha{A: 110}
	}
	return color.Alpha{A: 0}
}

// outlineZone draws a 2px rectangle border, since the overlay needs a
// crisp boundary for the chosen zone rather than a tinted fill.
func outlineZone(img *image.RGBA, x, y, size int, c color.RGBA) {
	for t := 0; t < 2; t++ {
		for i := x; i < x+size; i++ {
			img.Set(i, y+t, c)
			img.Set(i, y+size-1-t, c)
		}
		for j := y; j < y+size; j++ {
			img.Set(x+t, j, c)
			img.Set(x+size-1-t, j, c)
		}
	}
}

// drawLabel writes s starting at (x, y) using golang.org/x/image's
// basicfont fixed-width bitmap face; this is diagnostics tooling, not the font
// rendering the spec excludes from the core.
func drawLabel(img *image.RGBA, x, y int, s string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(s)
}
