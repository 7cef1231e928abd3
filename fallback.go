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

// corner is an anchor point from which a fallback tier's candidate
// squares are measured, per spec.md §4.9 / §9's note that the exact
// offsets (20px, 50px) are preserved as-is from the source the spec
// was distilled from. Only the x anchor is offset by the square size
// (corner_x = baseX - size); y is used as-is — that asymmetry is the
// source's own, not an artifact of this port.
type corner struct {
	baseX, baseY func(w, h int) int
}

func c(x func(w, h int) int, y func(w, h int) int) corner {
	return corner{baseX: x, baseY: y}
}

func fixedX(v int) func(w, h int) int { return func(w, h int) int { return v } }
func fixedY(v int) func(w, h int) int { return func(w, h int) int { return v } }
func rightOf(offset int) func(w, h int) int { return func(w, h int) int { return w - offset } }
func bottomOf(offset int) func(w, h int) int { return func(w, h int) int { return h - offset } }
func halfW() func(w, h int) int { return func(w, h int) int { return w / 2 } }

// t1Corners are the seven anchors of the first fallback tier.
func t1Corners() []corner {
	return []corner{
		c(rightOf(20), fixedY(20)),    // top-right
		c(fixedX(20), fixedY(20)),     // top-left
		c(rightOf(20), bottomOf(20)),  // bottom-right
		c(fixedX(20), bottomOf(20)),   // bottom-left
		c(rightOf(50), fixedY(50)),    // top-right, wider margin
		c(fixedX(50), fixedY(50)),     // top-left, wider margin
		c(halfW(), fixedY(20)),        // top-center
	}
}

// t2Corners are the six secondary anchors of the second fallback tier.
func t2Corners() []corner {
	return []corner{
		c(rightOf(50), fixedY(50)),
		c(fixedX(50), fixedY(50)),
		c(rightOf(50), bottomOf(50)),
		c(fixedX(50), bottomOf(50)),
		c(halfW(), fixedY(50)),
		c(halfW(), bottomOf(50)),
	}
}

// t3Corners are the four strict-priority emergency anchors shared by
// T3a and T3b.
func t3Corners() []corner {
	return []corner{
		c(rightOf(20), bottomOf(20)),
		c(fixedX(20), bottomOf(20)),
		c(rightOf(20), fixedY(20)),
		c(fixedX(20), fixedY(20)),
	}
}

// fallbackSizes steps from the primary scan's largest size down to
// sminZone in strides of 50 — the tier controller trades search
// granularity for speed since corners narrow the position space
// already. minZone is always appended if the stride skipped past it.
func fallbackSizes(cfg PlacementConfig) []int {
	minZone := cfg.sminZone()
	var sizes []int
	for s := cfg.s0(); s >= minZone; s -= 50 {
		sizes = append(sizes, s)
	}
	if len(sizes) == 0 {
		sizes = append(sizes, minZone)
	} else if sizes[len(sizes)-1] != minZone {
		sizes = append(sizes, minZone)
	}
	return sizes
}

// cornerSquare resolves a corner anchor and a square size to a
// top-left (x, y), or ok=false if the square would leave the page.
func cornerSquare(cn corner, w, h, size int) (x, y int, ok bool) {
	x = cn.baseX(w, h) - size
	y = cn.baseY(w, h)
	if x < 0 || y < 0 || x+size > w || y+size > h {
		return 0, 0, false
	}
	return x, y, true
}

// runFallback drives C9's tier state machine: PRIMARY has already
// failed by the time this is called, so it tries T1, T2, T3a, T3b,
// and finally the unconditional T4 in order, returning as soon as one
// succeeds.
func (e *Engine) runFallback(r Raster, cfg PlacementConfig, forbidden, white Mask) (Placement, Tier, float64, float64) {
	if cand, ok := cornerTierSearch(r, cfg, forbidden, white, t1Corners(), 0.95, true); ok {
		return cand.placement(cfg), TierT1, 0, whitenessRatio(white, cand.x, cand.y, cand.size)
	}
	if cand, ok := cornerTierSearch(r, cfg, forbidden, white, t2Corners(), 0.95, false); ok {
		return cand.placement(cfg), TierT2, 0, whitenessRatio(white, cand.x, cand.y, cand.size)
	}
	if cand, ok := emergencyStrict(r, cfg, forbidden, white); ok {
		return cand.placement(cfg), TierT3a, 0, whitenessRatio(white, cand.x, cand.y, cand.size)
	}
	if cand, ok := emergencyTolerant(r, cfg, forbidden, white); ok {
		overlap := overlapRatio(forbidden, cand.x, cand.y, cand.size)
		return cand.placement(cfg), TierT3b, overlap, whitenessRatio(white, cand.x, cand.y, cand.size)
	}
	cand := forcedTopRight(r, cfg)
	overlap := overlapRatio(forbidden, cand.x, cand.y, cand.size)
	return cand.placement(cfg), TierT4, overlap, whitenessRatio(white, cand.x, cand.y, cand.size)
}

// cornerTierSearch implements the shared shape of T1 and T2: try
// fallbackSizes largest-first, across the given corner set, keeping
// the candidate with the largest stamp (ties broken by higher
// whiteness). earlyExitAtMax mirrors T1's "stop immediately on
// reaching stamp_max" behavior; with it false (T2) the size loop stops
// after the first size that produced any candidate, since every
// accepted candidate already has a stamp at or above stamp_min.
func cornerTierSearch(r Raster, cfg PlacementConfig, forbidden, white Mask, corners []corner, whiteTheta float64, earlyExitAtMax bool) (candidate, bool) {
	var best candidate
	found := false
	bestStamp := 0
	bestWhite := 0.0

	for _, size := range fallbackSizes(cfg) {
		if found && earlyExitAtMax && bestStamp >= cfg.StampMax {
			break
		}
		if found && !earlyExitAtMax && bestStamp >= cfg.StampMin {
			break
		}
		for _, cn := range corners {
			x, y, ok := cornerSquare(cn, r.W, r.H, size)
			if !ok {
				continue
			}
			if forbidden.anySet(x, y, size) {
				continue
			}
			whiteRatio := whitenessRatio(white, x, y, size)
			if whiteRatio < whiteTheta {
				continue
			}
			stamp := cfg.stampForZone(size)
			if stamp < cfg.StampMin {
				continue
			}
			if stamp >= cfg.StampMax {
				best, found, bestStamp, bestWhite = candidate{x: x, y: y, size: size}, true, stamp, whiteRatio
				break
			}
			if stamp > bestStamp || (stamp == bestStamp && whiteRatio > bestWhite) {
				best, found, bestStamp, bestWhite = candidate{x: x, y: y, size: size}, true, stamp, whiteRatio
			}
		}
	}
	return best, found
}

// emergencyStrict is T3a: the four emergency corners, full fine size
// sweep (reusing primarySizes — same "stamp_max+2margin or 410 down to
// sminZone by 5" list the primary scan uses), zero tolerated overlap.
func emergencyStrict(r Raster, cfg PlacementConfig, forbidden, white Mask) (candidate, bool) {
	var best candidate
	found := false
	bestStamp := 0
	bestWhite := 0.0

	for _, size := range primarySizes(cfg) {
		for _, cn := range t3Corners() {
			x, y, ok := cornerSquare(cn, r.W, r.H, size)
			if !ok {
				continue
			}
			if forbidden.anySet(x, y, size) {
				continue
			}
			whiteRatio := whitenessRatio(white, x, y, size)
			if whiteRatio < 0.95 {
				continue
			}
			stamp := cfg.stampForZone(size)
			if stamp < cfg.StampMin {
				continue
			}
			if stamp > bestStamp || (stamp == bestStamp && whiteRatio > bestWhite) {
				best, found, bestStamp, bestWhite = candidate{x: x, y: y, size: size}, true, stamp, whiteRatio
			}
		}
	}
	return best, found
}

// emergencyTolerant is T3b: the same four emergency corners, same
// fine size sweep, but tolerating overlap up to cfg.OverlapBudgetFinal
// and relaxing whiteness to 0.90. Selection priority is stamp desc,
// then overlap asc, then whiteness desc.
func emergencyTolerant(r Raster, cfg PlacementConfig, forbidden, white Mask) (candidate, bool) {
	var best candidate
	found := false
	bestStamp := 0
	bestOverlap := 1.0
	bestWhite := 0.0

	for _, size := range primarySizes(cfg) {
		for _, cn := range t3Corners() {
			x, y, ok := cornerSquare(cn, r.W, r.H, size)
			if !ok {
				continue
			}
			overlap := overlapRatio(forbidden, x, y, size)
			if overlap > cfg.OverlapBudgetFinal {
				continue
			}
			whiteRatio := whitenessRatio(white, x, y, size)
			if whiteRatio < 0.90 {
				continue
			}
			stamp := cfg.stampForZone(size)
			if stamp < cfg.StampMin {
				continue
			}

			better := false
			switch {
			case stamp > bestStamp:
				better = true
			case stamp == bestStamp && overlap < bestOverlap:
				better = true
			case stamp == bestStamp && overlap == bestOverlap && whiteRatio > bestWhite:
				better = true
			}
			if better {
				best, found = candidate{x: x, y: y, size: size}, true
				bestStamp, bestOverlap, bestWhite = stamp, overlap, whiteRatio
			}
		}
	}
	return best, found
}

// forcedTopRight is T4: the unconditional, always-valid terminal
// tier. Its zone is exactly stamp_min + 2*min_margin, anchored 20px
// from the top-right corner and clamped fully inside the page.
func forcedTopRight(r Raster, cfg PlacementConfig) candidate {
	size := cfg.sminZone()
	x := r.W - size - 20
	if x < 0 {
		x = 0
	}
	y := 20

	if x+size > r.W {
		x = r.W - size
		if x < 0 {
			x = 0
		}
	}
	if y+size > r.H {
		y = r.H - size
		if y < 0 {
			y = 0
		}
	}
	return candidate{x: x, y: y, size: size}
}
