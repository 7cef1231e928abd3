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

// Thresholds and kernel sizes for the text detector (C2). These are
// fixed by the algorithm the engine reproduces, not tunable
// configuration: they encode an empirical balance between catching
// glyph strokes and not catching whole paragraphs.
const (
	textInkThreshold = 220

	textOpenHorizW, textOpenHorizH = 30, 1
	textOpenVertW, textOpenVertH  = 1, 15
	textCloseW, textCloseH        = 3, 3
	textDilateW, textDilateH      = 30, 15
)

// detectText produces a mask of text-like regions: thresholding at 220
// isolates ink, three small morphological operations (long-horizontal
// opening for baselines, long-vertical opening for column strokes, a
// small closing for isolated glyph fragments) are unioned, and the
// union is dilated once with an asymmetric kernel biased to the reading
// direction to create a safety halo.
func (e *Engine) detectText(r Raster) (Mask, error) {
	src, err := rasterToMat(r)
	if err != nil {
		return Mask{}, err
	}
	defer src.Close()

	ink := thresholdBinaryInv(src, textInkThreshold)
	defer ink.Close()

	horiz := e.morphOpen(ink, textOpenHorizW, textOpenHorizH)
	defer horiz.Close()
	vert := e.morphOpen(ink, textOpenVertW, textOpenVertH)
	defer vert.Close()
	closed := e.morphClose(ink, textCloseW, textCloseH)
	defer closed.Close()

	union := horiz.Clone()
	defer union.Close()
	bitwiseOrInto(&union, vert)
	bitwiseOrInto(&union, closed)

	dilated := e.dilateOnce(union, textDilateW, textDilateH)
	defer dilated.Close()

	return matToMask(dilated), nil
}
