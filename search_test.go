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

func testConfig() PlacementConfig {
	return PlacementConfig{StampMax: 300, StampMin: 200, MinMargin: 5}.withDefaults()
}

func TestPrimarySizesDescendingToSminZone(t *testing.T) {
	cfg := testConfig()
	sizes := primarySizes(cfg)

	if sizes[0] != cfg.s0() {
		t.Fatalf("first size = %d, want s0 = %d", sizes[0], cfg.s0())
	}
	if last := sizes[len(sizes)-1]; last != cfg.sminZone() {
		t.Fatalf("last size = %d, want sminZone = %d", last, cfg.sminZone())
	}
	for i := 1; i < len(sizes); i++ {
		if sizes[i-1] <= sizes[i] {
			t.Fatalf("sizes not strictly descending at index %d: %v", i, sizes)
		}
	}
}

func TestScanStepUsesCoarserThresholdNearMax(t *testing.T) {
	cfg := testConfig()
	floor := largeZoneFloor(cfg)

	step, theta := scanStep(cfg, floor)
	if theta != 0.95 {
		t.Fatalf("theta at the large-zone floor = %v, want 0.95", theta)
	}
	if step < 5 {
		t.Fatalf("step at the large-zone floor = %d, want >= 5", step)
	}

	step2, theta2 := scanStep(cfg, floor-1)
	if theta2 != 0.98 {
		t.Fatalf("theta just below the large-zone floor = %v, want 0.98", theta2)
	}
	if step2 < 10 {
		t.Fatalf("step just below the large-zone floor = %d, want >= 10", step2)
	}
}

func TestSearchPrimaryAllWhiteReachesStampMax(t *testing.T) {
	cfg := testConfig()
	w, h := 2100, 2970
	forbidden := NewMask(w, h)
	white := NewMask(w, h)
	for i := range white.Pix {
		white.Pix[i] = 255
	}

	cand, ok := searchPrimary(Raster{W: w, H: h}, cfg, forbidden, white)
	if !ok {
		t.Fatal("expected a clean candidate on an all-white page")
	}
	if cand.x != 0 || cand.y != 0 {
		t.Fatalf("first clean candidate should be (0,0), got (%d,%d)", cand.x, cand.y)
	}
	if stamp := cfg.stampForZone(cand.size); stamp != cfg.StampMax {
		t.Fatalf("stamp = %d, want stamp_max = %d", stamp, cfg.StampMax)
	}
}

func TestSearchPrimaryNoCleanRegionFails(t *testing.T) {
	cfg := testConfig()
	w, h := 250, 250
	forbidden := NewMask(w, h)
	for i := range forbidden.Pix {
		forbidden.Pix[i] = 255
	}
	white := NewMask(w, h)

	if _, ok := searchPrimary(Raster{W: w, H: h}, cfg, forbidden, white); ok {
		t.Fatal("a fully forbidden page should never yield a clean primary candidate")
	}
}

func TestSearchPrimaryAvoidsForbiddenBlock(t *testing.T) {
	cfg := testConfig()
	w, h := 2100, 2970
	forbidden := NewMask(w, h)
	white := NewMask(w, h)
	for i := range white.Pix {
		white.Pix[i] = 255
	}
	// Block out a band across the top of the page so (0,0) is no longer clean.
	for y := 0; y < 500; y++ {
		for x := 0; x < w; x++ {
			forbidden.Set(x, y)
		}
	}

	cand, ok := searchPrimary(Raster{W: w, H: h}, cfg, forbidden, white)
	if !ok {
		t.Fatal("expected a clean candidate below the forbidden band")
	}
	if cand.y < 500 {
		t.Fatalf("candidate y = %d overlaps the forbidden band", cand.y)
	}
}

func TestRefineLocalDoesNotMoveAnAlreadyAcceptedCandidate(t *testing.T) {
	cfg := testConfig()
	w, h := 2100, 2970
	forbidden := NewMask(w, h)
	white := NewMask(w, h)
	for i := range white.Pix {
		white.Pix[i] = 255
	}

	cand, ok := searchPrimary(Raster{W: w, H: h}, cfg, forbidden, white)
	if !ok {
		t.Fatal("expected a clean candidate on an all-white page")
	}

	refined := refineLocal(forbidden, white, cand)
	if refined != cand {
		t.Fatalf("refineLocal moved an already-accepted candidate: %+v -> %+v", cand, refined)
	}
}
