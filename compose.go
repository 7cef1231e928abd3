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

// detectorMasks holds the output of C2..C5, kept around so diagnostics
// can report per-class masks instead of only their union.
type detectorMasks struct {
	text, line, image, qr Mask
}

// compose unions the four detector masks into the forbidden mask (C6).
// Bitwise OR over four already-materialized byte buffers needs no
// OpenCV call; gocv.BitwiseOr would only add round-trips through cgo
// for work four nested loops do just as well.
func (dm detectorMasks) compose() Mask {
	forbidden := NewMask(dm.text.W, dm.text.H)
	forbidden.or(dm.text)
	forbidden.or(dm.line)
	forbidden.or(dm.image)
	forbidden.or(dm.qr)
	return forbidden
}

// defaultWhiteThreshold is the grayscale cutoff defining "white" (spec
// default for PlacementConfig.WhiteThreshold).
const defaultWhiteThreshold = 245

// whitenessMask marks pixels at or above threshold as white (255).
// A simple per-pixel comparison; again, not worth a detour through
// gocv for a single scalar threshold already expressed in plain bytes.
func whitenessMask(r Raster, threshold byte) Mask {
	m := NewMask(r.W, r.H)
	for i, v := range r.Pix {
		if v >= threshold {
			m.Pix[i] = 255
		}
	}
	return m
}

// detectAll runs C2..C7 and returns the detector masks, the composed
// forbidden mask, and the whiteness mask.
func (e *Engine) detectAll(r Raster, cfg PlacementConfig) (detectorMasks, Mask, Mask, error) {
	text, err := e.detectText(r)
	if err != nil {
		return detectorMasks{}, Mask{}, Mask{}, err
	}
	line, err := e.detectLines(r)
	if err != nil {
		return detectorMasks{}, Mask{}, Mask{}, err
	}
	img, err := e.detectImage(r)
	if err != nil {
		return detectorMasks{}, Mask{}, Mask{}, err
	}
	qr, err := e.detectQR(r)
	if err != nil {
		return detectorMasks{}, Mask{}, Mask{}, err
	}

	dm := detectorMasks{text: text, line: line, image: img, qr: qr}
	forbidden := dm.compose()
	white := whitenessMask(r, cfg.whiteThresholdOrDefault())

	return dm, forbidden, white, nil
}
