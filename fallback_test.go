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

func allWhite(w, h int) Mask {
	m := NewMask(w, h)
	for i := range m.Pix {
		m.Pix[i] = 255
	}
	return m
}

func TestForcedTopRightIsAlwaysInBounds(t *testing.T) {
	cfg := testConfig()
	cand := forcedTopRight(Raster{W: 1000, H: 1400}, cfg)

	if cand.x < 0 || cand.y < 0 || cand.x+cand.size > 1000 || cand.y+cand.size > 1400 {
		t.Fatalf("forced candidate %+v escapes the page bounds", cand)
	}
	if cand.size != cfg.sminZone() {
		t.Fatalf("forced zone size = %d, want sminZone = %d", cand.size, cfg.sminZone())
	}
}

func TestForcedTopRightClampsOnTinyPage(t *testing.T) {
	cfg := testConfig()
	tiny := cfg.sminZone() // exactly the minimum zone in both axes
	cand := forcedTopRight(Raster{W: tiny, H: tiny}, cfg)

	if cand.x != 0 || cand.y != 0 {
		t.Fatalf("on a page exactly the minimum zone size, expected (0,0), got (%d,%d)", cand.x, cand.y)
	}
}

func TestCornerTierSearchFindsCleanCorner(t *testing.T) {
	cfg := testConfig()
	w, h := 1000, 1400
	forbidden := NewMask(w, h)
	white := allWhite(w, h)

	cand, ok := cornerTierSearch(Raster{W: w, H: h}, cfg, forbidden, white, t1Corners(), 0.95, true)
	if !ok {
		t.Fatal("expected T1 to find a clean corner on an all-white page")
	}
	if got := cfg.stampForZone(cand.size); got != cfg.StampMax {
		t.Fatalf("T1 stamp = %d, want stamp_max = %d", got, cfg.StampMax)
	}
}

func TestCornerTierSearchFailsWhenCornersAreBlocked(t *testing.T) {
	cfg := testConfig()
	w, h := 1000, 1400
	forbidden := NewMask(w, h)
	for i := range forbidden.Pix {
		forbidden.Pix[i] = 255
	}
	white := allWhite(w, h)

	if _, ok := cornerTierSearch(Raster{W: w, H: h}, cfg, forbidden, white, t1Corners(), 0.95, true); ok {
		t.Fatal("a fully forbidden page should not produce a T1 candidate")
	}
}

func TestEmergencyTolerantAcceptsBoundedOverlap(t *testing.T) {
	cfg := testConfig()
	w, h := 1000, 1400
	forbidden := NewMask(w, h)
	white := allWhite(w, h)

	// Lightly stain every candidate emergency corner so T3a (zero overlap)
	// cannot succeed, but the stain stays within T3b's 10% budget.
	for _, cn := range t3Corners() {
		x, y, ok := cornerSquare(cn, w, h, cfg.sminZone())
		if !ok {
			continue
		}
		forbidden.Set(x, y)
	}

	if _, ok := emergencyStrict(Raster{W: w, H: h}, cfg, forbidden, white); ok {
		t.Fatal("T3a should fail once every emergency corner has any overlap")
	}

	cand, ok := emergencyTolerant(Raster{W: w, H: h}, cfg, forbidden, white)
	if !ok {
		t.Fatal("T3b should tolerate a single stained pixel well within its overlap budget")
	}
	if overlap := overlapRatio(forbidden, cand.x, cand.y, cand.size); overlap > cfg.OverlapBudgetFinal {
		t.Fatalf("T3b candidate overlap %v exceeds the budget %v", overlap, cfg.OverlapBudgetFinal)
	}
}

func TestFallbackSizesEndAtSminZone(t *testing.T) {
	cfg := testConfig()
	sizes := fallbackSizes(cfg)
	if last := sizes[len(sizes)-1]; last != cfg.sminZone() {
		t.Fatalf("last fallback size = %d, want sminZone = %d", last, cfg.sminZone())
	}
}
