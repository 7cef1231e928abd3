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

import "testing"

func TestLineKernelLengthsFiltersOversizedKernels(t *testing.T) {
	lengths := lineKernelLengths(90, []int{3, 5, 10}, []int{100, 60, 30})
	for _, l := range lengths {
		if l > 90 {
			t.Fatalf("kernel length %d exceeds the extent 90", l)
		}
	}
	// 90/3=30 < floor 100 -> clamped to 100, exceeds 90, dropped.
	// 90/5=18 < floor 60 -> clamped to 60, fits.
	// 90/10=9 < floor 30 -> clamped to 30, fits.
	if len(lengths) != 2 || lengths[0] != 60 || lengths[1] != 30 {
		t.Fatalf("lengths = %v, want [60 30]", lengths)
	}
}

func TestDetectLinesFindsFullWidthRule(t *testing.T) {
	e := NewEngine(0)
	defer e.Close()

	r := NewRaster(1000, 600)
	for i := range r.Pix {
		r.Pix[i] = 255
	}
	fillRect(r, 0, 300, 1000, 301, 0) // a one-pixel-tall rule across the page

	mask, err := e.detectLines(r)
	if err != nil {
		t.Fatalf("detectLines failed: %v", err)
	}
	if !mask.anySet(400, 290, 20) {
		t.Fatal("expected the line detector to mark the region around the rule")
	}
}

func TestDetectLinesBlankPageIsClear(t *testing.T) {
	e := NewEngine(0)
	defer e.Close()

	r := NewRaster(300, 300)
	for i := range r.Pix {
		r.Pix[i] = 255
	}

	mask, err := e.detectLines(r)
	if err != nil {
		t.Fatalf("detectLines failed: %v", err)
	}
	if mask.anySet(0, 0, 300) {
		t.Fatal("a blank white page should produce an empty line mask")
	}
}
