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

// primarySizes enumerates zone sides from s0 down to sminZone in
// steps of 5, per spec.md §4.8's search space definition.
func primarySizes(cfg PlacementConfig) []int {
	var sizes []int
	minZone := cfg.sminZone()
	for s := cfg.s0(); s >= minZone; s -= 5 {
		sizes = append(sizes, s)
	}
	if len(sizes) == 0 || sizes[len(sizes)-1] != minZone {
		sizes = append(sizes, minZone)
	}
	return sizes
}

// largeZoneFloor is the zone side at or above which the scan uses the
// finer max(5, size/30) step and the looser 0.95 whiteness threshold.
func largeZoneFloor(cfg PlacementConfig) int {
	return cfg.StampMax + 2*cfg.MinMargin - 20
}

// scanStep returns the (x,y) stride and the whiteness ratio threshold
// for a given zone side, per spec.md §4.8.
func scanStep(cfg PlacementConfig, size int) (step int, whiteTheta float64) {
	if size >= largeZoneFloor(cfg) {
		step = size / 30
		if step < 5 {
			step = 5
		}
		return step, 0.95
	}
	step = size / 20
	if step < 10 {
		step = 10
	}
	return step, 0.98
}

// isClean reports whether the size x size square at (x,y) is free of
// forbidden content and at least whiteTheta white.
func isClean(forbidden, white Mask, x, y, size int, whiteTheta float64) bool {
	if forbidden.anySet(x, y, size) {
		return false
	}
	return whitenessRatio(white, x, y, size) >= whiteTheta
}

// searchPrimary performs the multi-scale scan of C8: sizes are tried
// largest first, so the first size that yields any clean position
// already has the largest achievable stamp — no smaller size can beat
// it, since stamp is a pure function of size. That collapses the
// scan to "first clean position at the first size that has one,"
// followed by local refinement when that stamp falls short of
// stamp_max.
func searchPrimary(r Raster, cfg PlacementConfig, forbidden, white Mask) (candidate, bool) {
	for _, size := range primarySizes(cfg) {
		if size > r.W || size > r.H {
			continue
		}
		step, theta := scanStep(cfg, size)
		searchHeight := r.H - size
		searchWidth := r.W - size

		found, fx, fy := false, 0, 0
		for y := 0; y < searchHeight && !found; y += step {
			for x := 0; x < searchWidth && !found; x += step {
				if isClean(forbidden, white, x, y, size, theta) {
					found, fx, fy = true, x, y
				}
			}
		}
		// The loop bounds are exclusive (y < searchHeight, not <=),
		// matching the original scan exactly: the bottom/right-most
		// valid offset (H-size, W-size) is never tried, and when size
		// equals the page's height or width no position at all is
		// scanned at that size.
		if !found {
			continue
		}

		cand := candidate{x: fx, y: fy, size: size}
		if cfg.stampForZone(size) >= cfg.StampMax {
			return cand, true
		}
		return refineLocal(forbidden, white, cand), true
	}
	return candidate{}, false
}

// refineLocal rescans a 11x11 box (step 2) around a sub-maximal clean
// candidate under the stricter 0.98 threshold. The stamp side is
// fixed by cand.size, so no rescan position can yield a larger stamp
// than cand itself; this mirrors the original implementation, where
// the refinement step is present but structurally unable to improve
// on the candidate it was handed.
func refineLocal(forbidden, white Mask, cand candidate) candidate {
	best := cand
	bestStamp := cand.size // proxy: stamp is monotonic in size, and size is fixed here
	for y := cand.y - 5; y <= cand.y+5; y += 2 {
		if y < 0 {
			continue
		}
		for x := cand.x - 5; x <= cand.x+5; x += 2 {
			if x < 0 {
				continue
			}
			if !isClean(forbidden, white, x, y, cand.size, 0.98) {
				continue
			}
			if cand.size > bestStamp {
				best = candidate{x: x, y: y, size: cand.size}
				bestStamp = cand.size
			}
		}
	}
	return best
}
