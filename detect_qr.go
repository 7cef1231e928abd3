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
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"
)

const (
	qrBinaryThreshold      = 128
	qrMinContourArea       = 1000
	qrMaxContourArea       = 50000
	qrAspectLow            = 0.7
	qrAspectHigh           = 1.3
	qrMinStdDev            = 40
	qrDilateW, qrDilateH   = 40, 40
)

// detectQR produces a mask of dense square patterns resembling QR
// codes: contours whose bounding box is near-square and whose
// intensities are strongly bimodal (high standard deviation, since a QR
// module grid is close to half black, half white) pass; everything else
// — including large uniform dark regions, which are square but not
// bimodal — does not.
func (e *Engine) detectQR(r Raster) (Mask, error) {
	src, err := rasterToMat(r)
	if err != nil {
		return Mask{}, err
	}
	defer src.Close()

	binary := gocv.NewMat()
	defer binary.Close()
	gocv.Threshold(src, &binary, qrBinaryThreshold, 255, gocv.ThresholdBinary)

	contours, hierarchy := gocv.FindContoursWithParams(binary, gocv.RetrievalTree, gocv.ChainApproxSimple)
	defer contours.Close()
	defer hierarchy.Close()

	mask := gocv.NewMatWithSize(r.H, r.W, gocv.MatTypeCV8UC1)
	defer mask.Close()

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	any := false
	for i := 0; i < contours.Size(); i++ {
		ct := contours.At(i)
		area := gocv.ContourArea(ct)
		if area <= qrMinContourArea || area >= qrMaxContourArea {
			continue
		}

		box := gocv.BoundingRect(ct)
		if box.Dy() == 0 {
			continue
		}
		aspect := float64(box.Dx()) / float64(box.Dy())
		if aspect <= qrAspectLow || aspect >= qrAspectHigh {
			continue
		}

		if stdDevInRect(r, box) <= qrMinStdDev {
			continue
		}

		poly := gocv.NewPointsVectorFromPoints([][]image.Point{ct.ToPoints()})
		gocv.FillPoly(&mask, poly, white)
		poly.Close()
		any = true
	}

	if !any {
		return NewMask(r.W, r.H), nil
	}

	dilated := e.dilateOnce(mask, qrDilateW, qrDilateH)
	defer dilated.Close()

	return matToMask(dilated), nil
}

// stdDevInRect computes the population standard deviation of raster
// intensities inside rect, clamped to the raster bounds.
func stdDevInRect(r Raster, rect image.Rectangle) float64 {
	x0, y0 := max(rect.Min.X, 0), max(rect.Min.Y, 0)
	x1, y1 := min(rect.Max.X, r.W), min(rect.Max.Y, r.H)
	if x1 <= x0 || y1 <= y0 {
		return 0
	}

	var sum, sumSq float64
	n := 0
	for y := y0; y < y1; y++ {
		base := y * r.W
		for x := x0; x < x1; x++ {
			v := float64(r.Pix[base+x])
			sum += v
			sumSq += v * v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	mean := sum / float64(n)
	variance := sumSq/float64(n) - mean*mean
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}
