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

import "gocv.io/x/gocv"

const lineInkThreshold = 200

// lineKernelLengths returns the progressively shorter opening lengths
// for one axis, keeping only lengths that fit within extent.
func lineKernelLengths(extent int, divisors []int, floors []int) []int {
	var out []int
	for i, div := range divisors {
		length := extent / div
		if length < floors[i] {
			length = floors[i]
		}
		if length <= extent {
			out = append(out, length)
		}
	}
	return out
}

// detectLines produces a mask of long horizontal and vertical rules.
// Table borders and separators survive an opening with a long kernel
// along the rule's own direction because an opening only keeps runs at
// least as long as the kernel; text does not survive because no glyph
// stroke is that long. Up to three kernel lengths horizontally and two
// vertically catch rules of different scales; a thin perpendicular dilation tightens the halo
// around each rule instead of ballooning it into a text-sized blob.
func (e *Engine) detectLines(r Raster) (Mask, error) {
	src, err := rasterToMat(r)
	if err != nil {
		return Mask{}, err
	}
	defer src.Close()

	ink := thresholdBinaryInv(src, lineInkThreshold)
	defer ink.Close()

	horizLengths := lineKernelLengths(r.W, []int{3, 5, 10}, []int{100, 60, 30})
	vertLengths := lineKernelLengths(r.H, []int{3, 5}, []int{100, 60})

	horiz := gocv.NewMat()
	defer horiz.Close()
	for _, length := range horizLengths {
		opened := e.morphOpen(ink, length, 1)
		bitwiseOrInto(&horiz, opened)
		opened.Close()
	}
	vert := gocv.NewMat()
	defer vert.Close()
	for _, length := range vertLengths {
		opened := e.morphOpen(ink, 1, length)
		bitwiseOrInto(&vert, opened)
		opened.Close()
	}

	result := gocv.NewMat()
	defer result.Close()

	if !horiz.Empty() {
		horizDilated := e.dilateOnce(horiz, 1, 15)
		defer horizDilated.Close()
		bitwiseOrInto(&result, horizDilated)
	}
	if !vert.Empty() {
		vertDilated := e.dilateOnce(vert, 15, 1)
		defer vertDilated.Close()
		bitwiseOrInto(&result, vertDilated)
	}

	if result.Empty() {
		return NewMask(r.W, r.H), nil
	}
	return matToMask(result), nil
}
