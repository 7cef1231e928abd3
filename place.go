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
	"fmt"
	"time"
)

// ErrInvalidRaster is returned when a raster is smaller than the
// smallest permissible search zone in either axis.
var ErrInvalidRaster = errors.New("stampplace: raster smaller than minimum zone")

// ErrInvalidConfig is returned when a PlacementConfig violates its own
// invariants (stamp_min > stamp_max, or a negative margin).
var ErrInvalidConfig = errors.New("stampplace: invalid placement configuration")

// PlacementConfig holds the tunables spec.md enumerates. Zero-value
// fields that have a documented default are filled in by Place via
// the withDefaults helper; there is no implicit default for StampMin.
type PlacementConfig struct {
	StampMax           int     // largest permitted stamp side, px (default 300)
	StampMin           int     // smallest permitted stamp side, px (no default)
	MinMargin          int     // inner margin between zone and stamp, px (default 5)
	WhiteThreshold     int     // grayscale cutoff defining "white" (default 245)
	OverlapBudgetFinal float64 // max forbidden ratio accepted in the last tier (default 0.10)
	KernelCacheSize    int     // ambient, defaulted to 32; Place does not read it (the cache bound is NewEngine's argument)
}

const (
	defaultStampMax           = 300
	defaultMinMargin          = 5
	defaultOverlapBudgetFinal = 0.10
)

// withDefaults fills in every field that has a spec-documented default
// and leaves StampMin untouched (it has none).
func (cfg PlacementConfig) withDefaults() PlacementConfig {
	if cfg.StampMax == 0 {
		cfg.StampMax = defaultStampMax
	}
	if cfg.MinMargin == 0 {
		cfg.MinMargin = defaultMinMargin
	}
	if cfg.WhiteThreshold == 0 {
		cfg.WhiteThreshold = defaultWhiteThreshold
	}
	if cfg.OverlapBudgetFinal == 0 {
		cfg.OverlapBudgetFinal = defaultOverlapBudgetFinal
	}
	if cfg.KernelCacheSize == 0 {
		cfg.KernelCacheSize = defaultKernelCacheSize
	}
	return cfg
}

func (cfg PlacementConfig) validate() error {
	if cfg.StampMin > cfg.StampMax {
		return fmt.Errorf("%w: stamp_min %d > stamp_max %d", ErrInvalidConfig, cfg.StampMin, cfg.StampMax)
	}
	if cfg.MinMargin < 0 {
		return fmt.Errorf("%w: min_margin %d < 0", ErrInvalidConfig, cfg.MinMargin)
	}
	return nil
}

// whiteThresholdOrDefault returns the configured white threshold as a
// byte, falling back to the spec default when unset.
func (cfg PlacementConfig) whiteThresholdOrDefault() byte {
	if cfg.WhiteThreshold <= 0 {
		return defaultWhiteThreshold
	}
	if cfg.WhiteThreshold > 255 {
		return 255
	}
	return byte(cfg.WhiteThreshold)
}

// sminZone is the smallest zone side the search considers: a stamp at
// StampMin plus the margin on both sides.
func (cfg PlacementConfig) sminZone() int {
	return cfg.StampMin + 2*cfg.MinMargin
}

// s0 is the largest zone side the primary scan starts from.
func (cfg PlacementConfig) s0() int {
	v := cfg.StampMax + 2*cfg.MinMargin
	if v < 410 {
		return 410
	}
	return v
}

// stampForZone applies the zone-to-stamp formula from the data model.
func (cfg PlacementConfig) stampForZone(zone int) int {
	s := zone - 2*cfg.MinMargin
	if s > cfg.StampMax {
		s = cfg.StampMax
	}
	return s
}

// Placement is the engine's sole output: the top-left corner of the
// chosen square zone, the zone's side, and the effective stamp side.
// Emitted as floating-point so the caller can composite at subpixel
// precision; the engine itself always produces integer-valued floats.
type Placement struct {
	X, Y, Zone, Stamp float64
}

// Tier names the search strategy that produced a Placement.
type Tier string

const (
	TierPrimary Tier = "primary"
	TierT1      Tier = "t1"
	TierT2      Tier = "t2"
	TierT3a     Tier = "t3a"
	TierT3b     Tier = "t3b"
	TierT4      Tier = "t4"
)

// Diagnostics is the optional side channel spec.md §6 describes: the
// per-class masks, the forbidden/white composites, and the tier that
// produced the Placement. The engine never renders this itself.
type Diagnostics struct {
	Text, Line, Image, QR Mask
	Forbidden, White      Mask
	Tier                  Tier
	OverlapRatio           float64
	WhitenessRatio         float64
}

// Engine owns the long-lived kernel cache shared across pages; the
// rest of a placement query is stack-scope state that does not
// outlive the call. Its only other mutable state is the optional
// metrics recorder, whose counters are safe for concurrent updates, so
// Place is safe for concurrent use by multiple callers placing
// different pages; EnableMetrics itself is not synchronized with Place.
type Engine struct {
	kernels *kernelCache
	metrics *metricsRecorder
}

// NewEngine constructs an Engine with a kernel cache bounded to
// cacheSize entries (0 selects the spec default of 32).
func NewEngine(cacheSize int) *Engine {
	return &Engine{kernels: newKernelCache(cacheSize)}
}

// Close releases the Engine's cgo-backed kernel cache. Callers that
// create an Engine per worker and discard it should Close it first.
func (e *Engine) Close() {
	e.kernels.close()
}

// Place runs the full pipeline (C2..C10) and returns a Placement. It
// is total: every well-formed raster/config pair yields a Placement,
// never an error, because tier T4 is a forced, always-valid fallback.
func (e *Engine) Place(r Raster, cfg PlacementConfig) (Placement, error) {
	p, _, err := e.place(r, cfg)
	return p, err
}

// PlaceWithDiagnostics is Place plus the optional diagnostics channel
// from spec.md §6: per-detector masks and the tier that fired.
func (e *Engine) PlaceWithDiagnostics(r Raster, cfg PlacementConfig) (Placement, Diagnostics, error) {
	return e.place(r, cfg)
}

func (e *Engine) place(r Raster, cfg PlacementConfig) (Placement, Diagnostics, error) {
	if err := r.valid(); err != nil {
		return Placement{}, Diagnostics{}, fmt.Errorf("%w: %v", ErrInvalidRaster, err)
	}
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return Placement{}, Diagnostics{}, err
	}
	if r.W < cfg.sminZone() || r.H < cfg.sminZone() {
		return Placement{}, Diagnostics{}, fmt.Errorf("%w: %dx%d smaller than zone %d", ErrInvalidRaster, r.W, r.H, cfg.sminZone())
	}

	started := time.Now()

	dm, forbidden, white, err := e.detectAll(r, cfg)
	if err != nil {
		return Placement{}, Diagnostics{}, err
	}

	diag := Diagnostics{
		Text: dm.text, Line: dm.line, Image: dm.image, QR: dm.qr,
		Forbidden: forbidden, White: white,
	}

	if cand, ok := searchPrimary(r, cfg, forbidden, white); ok {
		diag.Tier = TierPrimary
		diag.OverlapRatio = 0
		diag.WhitenessRatio = whitenessRatio(white, cand.x, cand.y, cand.size)
		e.metrics.observe(diag.Tier, time.Since(started))
		return cand.placement(cfg), diag, nil
	}

	p, tier, overlap, whiteness := e.runFallback(r, cfg, forbidden, white)
	diag.Tier = tier
	diag.OverlapRatio = overlap
	diag.WhitenessRatio = whiteness
	e.metrics.observe(diag.Tier, time.Since(started))
	return p, diag, nil
}

// candidate is a zone found during search, before it is converted to
// a Placement via the stamp formula.
type candidate struct {
	x, y, size int
}

func (c candidate) placement(cfg PlacementConfig) Placement {
	return Placement{
		X:    float64(c.x),
		Y:    float64(c.y),
		Zone: float64(c.size),
		Stamp: float64(cfg.stampForZone(c.size)),
	}
}

// whitenessRatio reports the fraction of set pixels in white within
// the given square, in [0,1].
func whitenessRatio(white Mask, x, y, size int) float64 {
	if size <= 0 {
		return 0
	}
	return float64(white.countSet(x, y, size)) / float64(size*size)
}

// overlapRatio reports the fraction of set pixels in forbidden within
// the given square, in [0,1].
func overlapRatio(forbidden Mask, x, y, size int) float64 {
	if size <= 0 {
		return 0
	}
	return float64(forbidden.countSet(x, y, size)) / float64(size*size)
}
