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

// rasterToMat copies a Raster into a single-channel 8-bit gocv.Mat. The
// caller owns the returned Mat and must Close() it.
func rasterToMat(r Raster) (gocv.Mat, error) {
	return gocv.NewMatFromBytes(r.H, r.W, gocv.MatTypeCV8UC1, r.Pix)
}

// matToMask copies a single-channel 8-bit gocv.Mat into a Mask. It does
// not take ownership of m.
func matToMask(m gocv.Mat) Mask {
	return Mask{W: m.Cols(), H: m.Rows(), Pix: m.ToBytes()}
}

// thresholdBinary returns a Mat where pixels <= thresh become 0, others
// 255 — i.e. cv2.threshold(..., THRESH_BINARY) restricted to the case
// stampplace needs (thresh comparisons are always "is this pixel dark
// enough to be ink" or "is this pixel bright enough to be white").
func thresholdBinary(src gocv.Mat, thresh float32) gocv.Mat {
	dst := gocv.NewMat()
	gocv.Threshold(src, &dst, thresh, 255, gocv.ThresholdBinary)
	return dst
}

// thresholdBinaryInv is thresholdBinary with the polarity flipped:
// pixels <= thresh become 255 (ink), others 0.
func thresholdBinaryInv(src gocv.Mat, thresh float32) gocv.Mat {
	dst := gocv.NewMat()
	gocv.Threshold(src, &dst, thresh, 255, gocv.ThresholdBinaryInv)
	return dst
}

// morphOpen opens src with a w x h rectangular structuring element
// drawn from the engine's kernel cache.
func (e *Engine) morphOpen(src gocv.Mat, w, h int) gocv.Mat {
	kernel := e.kernels.get(w, h)
	dst := gocv.NewMat()
	gocv.MorphologyEx(src, &dst, gocv.MorphOpen, kernel)
	return dst
}

// morphClose closes src with a w x h rectangular structuring element.
func (e *Engine) morphClose(src gocv.Mat, w, h int) gocv.Mat {
	kernel := e.kernels.get(w, h)
	dst := gocv.NewMat()
	gocv.MorphologyEx(src, &dst, gocv.MorphClose, kernel)
	return dst
}

// dilateOnce dilates src once with a w x h rectangular structuring
// element ("iterations=1" in the original's cv2.dilate calls).
func (e *Engine) dilateOnce(src gocv.Mat, w, h int) gocv.Mat {
	kernel := e.kernels.get(w, h)
	dst := gocv.NewMat()
	gocv.Dilate(src, &dst, kernel)
	return dst
}

// bitwiseOrInto ORs src into dst in place, growing dst from zero if it
// is still empty (Cols()==0), so callers can fold an unbounded list of
// masks without a special case for the first one.
func bitwiseOrInto(dst *gocv.Mat, src gocv.Mat) {
	if dst.Empty() {
		*dst = src.Clone()
		return
	}
	out := gocv.NewMat()
	gocv.BitwiseOr(*dst, src, &out)
	dst.Close()
	*dst = out
}
