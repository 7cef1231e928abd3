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

func TestMaskSetAt(t *testing.T) {
	m := NewMask(4, 4)
	if m.At(1, 1) {
		t.Fatal("fresh mask should have no set pixels")
	}
	m.Set(1, 1)
	if !m.At(1, 1) {
		t.Fatal("Set did not take effect")
	}
	if m.At(2, 2) {
		t.Fatal("Set affected an unrelated pixel")
	}
}

func TestMaskAnySetAndCountSet(t *testing.T) {
	m := NewMask(10, 10)
	m.Set(5, 5)

	if m.anySet(0, 0, 5) {
		t.Fatal("anySet found a pixel outside the set region")
	}
	if !m.anySet(3, 3, 4) {
		t.Fatal("anySet missed a pixel inside the region")
	}
	if got := m.countSet(0, 0, 10); got != 1 {
		t.Fatalf("countSet = %d, want 1", got)
	}
}

func TestMaskOr(t *testing.T) {
	a := NewMask(4, 4)
	a.Set(0, 0)
	b := NewMask(4, 4)
	b.Set(3, 3)

	a.or(b)

	if !a.At(0, 0) || !a.At(3, 3) {
		t.Fatal("or did not union both source pixels")
	}
	if a.countSet(0, 0, 4) != 2 {
		t.Fatalf("countSet after or = %d, want 2", a.countSet(0, 0, 4))
	}
}

func TestRasterValid(t *testing.T) {
	r := NewRaster(5, 3)
	if err := r.valid(); err != nil {
		t.Fatalf("freshly allocated raster should be valid: %v", err)
	}

	bad := Raster{W: 5, H: 3, Pix: make([]byte, 10)}
	if err := bad.valid(); err == nil {
		t.Fatal("expected an error for a mismatched buffer length")
	}
}

func TestRasterAt(t *testing.T) {
	r := NewRaster(3, 3)
	r.Pix[1*3+2] = 200
	if got := r.At(2, 1); got != 200 {
		t.Fatalf("At(2,1) = %d, want 200", got)
	}
}
