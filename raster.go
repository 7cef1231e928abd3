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

package stampplace

import "fmt"

// Raster is a single-channel grayscale page image, row-major, one byte
// per pixel. 0 is black, 255 is white. A Raster is immutable for the
// duration of one Place call; callers must not mutate Pix while a call
// is in flight.
type Raster struct {
	W, H int
	Pix  []byte // len(Pix) == W*H
}

// NewRaster allocates a zeroed (black) raster of the given size.
func NewRaster(w, h int) Raster {
	return Raster{W: w, H: h, Pix: make([]byte, w*h)}
}

// At returns the intensity at (x, y). It does not bounds-check; callers
// operating inside the hot search loop are expected to stay in range by
// construction.
func (r Raster) At(x, y int) byte {
	return r.Pix[y*r.W+x]
}

func (r Raster) valid() error {
	if len(r.Pix) != r.W*r.H {
		return fmt.Errorf("raster: Pix has %d bytes, want %d (%dx%d)", len(r.Pix), r.W*r.H, r.W, r.H)
	}
	return nil
}

// Mask is a binary image, same shape as a Raster: a set pixel (255)
// means "true" according to the mask's role (forbidden, white, etc).
// Mask and Raster share a representation so detectors can be written
// generically over "image in, image out".
type Mask struct {
	W, H int
	Pix  []byte
}

// NewMask allocates a zeroed (all-clear) mask of the given size.
func NewMask(w, h int) Mask {
	return Mask{W: w, H: h, Pix: make([]byte, w*h)}
}

// Set marks (x, y) as forbidden/true.
func (m Mask) Set(x, y int) {
	m.Pix[y*m.W+x] = 255
}

// At reports whether (x, y) is set.
func (m Mask) At(x, y int) bool {
	return m.Pix[y*m.W+x] != 0
}

// anySet reports whether any pixel in the square [x..x+s) x [y..y+s) is
// set. This backs the search loop's strict "forbidden == 0" clean test.
func (m Mask) anySet(x, y, s int) bool {
	for row := y; row < y+s; row++ {
		base := row * m.W
		line := m.Pix[base+x : base+x+s]
		for _, v := range line {
			if v != 0 {
				return true
			}
		}
	}
	return false
}

// countSet returns the number of set pixels in the square
// [x..x+s) x [y..y+s).
func (m Mask) countSet(x, y, s int) int {
	n := 0
	for row := y; row < y+s; row++ {
		base := row * m.W
		line := m.Pix[base+x : base+x+s]
		for _, v := range line {
			if v != 0 {
				n++
			}
		}
	}
	return n
}

// or ORs src into m in place. Both must have identical dimensions.
func (m Mask) or(src Mask) {
	for i, v := range src.Pix {
		if v != 0 {
			m.Pix[i] = 255
		}
	}
}
