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

import (
	"errors"
	"testing"
)

func scenarioConfig() PlacementConfig {
	return PlacementConfig{StampMax: 300, StampMin: 200, MinMargin: 5}
}

func whiteRaster(w, h int) Raster {
	r := NewRaster(w, h)
	for i := range r.Pix {
		r.Pix[i] = 255
	}
	return r
}

func blackRaster(w, h int) Raster {
	return NewRaster(w, h) // zero-valued bytes are already black
}

func TestPlaceAllWhitePageReachesPrimaryStampMax(t *testing.T) {
	e := NewEngine(0)
	defer e.Close()

	p, diag, err := e.PlaceWithDiagnostics(whiteRaster(2100, 2970), scenarioConfig())
	if err != nil {
		t.Fatalf("Place returned an error for a well-formed all-white page: %v", err)
	}
	if diag.Tier != TierPrimary {
		t.Fatalf("tier = %s, want primary", diag.Tier)
	}
	if p.X != 0 || p.Y != 0 {
		t.Fatalf("placement = (%v,%v), want (0,0)", p.X, p.Y)
	}
	if p.Zone != 410 || p.Stamp != 300 {
		t.Fatalf("zone/stamp = %v/%v, want 410/300", p.Zone, p.Stamp)
	}
}

func TestPlaceAllBlackPageFallsToT4TopRight(t *testing.T) {
	e := NewEngine(0)
	defer e.Close()

	p, diag, err := e.PlaceWithDiagnostics(blackRaster(2100, 2970), scenarioConfig())
	if err != nil {
		t.Fatalf("Place returned an error for a well-formed all-black page: %v", err)
	}
	if diag.Tier != TierT4 {
		t.Fatalf("tier = %s, want t4", diag.Tier)
	}
	if p.Stamp != 200 {
		t.Fatalf("stamp = %v, want stamp_min = 200", p.Stamp)
	}
	wantZone := float64(scenarioConfig().withDefaults().sminZone())
	if p.Zone != wantZone {
		t.Fatalf("zone = %v, want %v", p.Zone, wantZone)
	}
	// T4 anchors top-right: x should be in the right half of the page.
	if p.X < 2100/2 {
		t.Fatalf("x = %v, expected the forced placement to sit in the right half of the page", p.X)
	}
}

func TestPlaceIsDeterministic(t *testing.T) {
	e := NewEngine(0)
	defer e.Close()

	r := whiteRaster(1000, 1400)
	p1, err := e.Place(r, scenarioConfig())
	if err != nil {
		t.Fatalf("first Place call failed: %v", err)
	}
	p2, err := e.Place(r, scenarioConfig())
	if err != nil {
		t.Fatalf("second Place call failed: %v", err)
	}
	if p1 != p2 {
		t.Fatalf("Place is not deterministic: %+v != %+v", p1, p2)
	}
}

func TestPlaceInvariantsHold(t *testing.T) {
	e := NewEngine(0)
	defer e.Close()

	for _, dims := range [][2]int{{2100, 2970}, {210, 210}, {600, 900}} {
		r := whiteRaster(dims[0], dims[1])
		p, err := e.Place(r, scenarioConfig())
		if err != nil {
			t.Fatalf("Place(%dx%d) returned an error: %v", dims[0], dims[1], err)
		}
		if p.X+p.Zone > float64(dims[0]) || p.Y+p.Zone > float64(dims[1]) {
			t.Fatalf("placement %+v escapes a %dx%d page", p, dims[0], dims[1])
		}
		if p.Stamp < 200 || p.Stamp > 300 {
			t.Fatalf("stamp %v outside [stamp_min, stamp_max]", p.Stamp)
		}
	}
}

func TestPlaceRejectsUndersizedRaster(t *testing.T) {
	e := NewEngine(0)
	defer e.Close()

	_, err := e.Place(whiteRaster(209, 209), scenarioConfig())
	if !errors.Is(err, ErrInvalidRaster) {
		t.Fatalf("err = %v, want ErrInvalidRaster", err)
	}
}

func TestPlaceRejectsInvalidConfig(t *testing.T) {
	e := NewEngine(0)
	defer e.Close()

	cfg := PlacementConfig{StampMax: 100, StampMin: 200}
	_, err := e.Place(whiteRaster(1000, 1000), cfg)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestPlaceBoundaryExactMinimumPage(t *testing.T) {
	e := NewEngine(0)
	defer e.Close()

	cfg := scenarioConfig().withDefaults()
	size := cfg.sminZone()
	p, err := e.Place(whiteRaster(size, size), scenarioConfig())
	if err != nil {
		t.Fatalf("Place on an exactly-minimum-size page failed: %v", err)
	}
	if p.X != 0 || p.Y != 0 {
		t.Fatalf("on a page exactly one zone wide, expected (0,0), got (%v,%v)", p.X, p.Y)
	}
}

func TestMaskUnionEqualsForbiddenMask(t *testing.T) {
	e := NewEngine(0)
	defer e.Close()

	r := whiteRaster(600, 800)
	_, diag, err := e.PlaceWithDiagnostics(r, scenarioConfig())
	if err != nil {
		t.Fatalf("PlaceWithDiagnostics failed: %v", err)
	}

	union := NewMask(r.W, r.H)
	union.or(diag.Text)
	union.or(diag.Line)
	union.or(diag.Image)
	union.or(diag.QR)

	for i := range union.Pix {
		if union.Pix[i] != diag.Forbidden.Pix[i] {
			t.Fatalf("union of detector masks differs from forbidden mask at index %d", i)
		}
	}
}
