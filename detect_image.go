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

	"gocv.io/x/gocv"
)

const (
	imageHighFreqThreshold = 30
	imageMinContourArea    = 5000
	imageDilateW, imageDilateH = 30, 30
)

// detectImage produces a mask of high-variance regions: photographs and
// diagrams. A Gaussian blur suppresses single-pixel noise, an absolute
// Laplacian turns local variance into a high-frequency map, and an area
// threshold on the resulting contours discriminates real figures from
// isolated glyph noise that text detection already covers.
func (e *Engine) detectImage(r Raster) (Mask, error) {
	src, err := rasterToMat(r)
	if err != nil {
		return Mask{}, err
	}
	defer src.Close()

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(src, &blurred, image.Pt(5, 5), 0, 0, gocv.BorderDefault)

	lap := gocv.NewMat()
	defer lap.Close()
	gocv.Laplacian(blurred, &lap, gocv.MatTypeCV64F, 1, 1, 0, gocv.BorderDefault)

	lapAbs := gocv.NewMat()
	defer lapAbs.Close()
	gocv.ConvertScaleAbs(lap, &lapAbs, 1, 0)

	highFreq := gocv.NewMat()
	defer highFreq.Close()
	gocv.Threshold(lapAbs, &highFreq, imageHighFreqThreshold, 255, gocv.ThresholdBinary)

	contours := gocv.FindContours(highFreq, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	mask := gocv.NewMatWithSize(r.H, r.W, gocv.MatTypeCV8UC1)
	defer mask.Close()

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	for i := 0; i < contours.Size(); i++ {
		ct := contours.At(i)
		if gocv.ContourArea(ct) <= imageMinContourArea {
			continue
		}
		poly := gocv.NewPointsVectorFromPoints([][]image.Point{ct.ToPoints()})
		gocv.FillPoly(&mask, poly, white)
		poly.Close()
	}

	dilated := e.dilateOnce(mask, imageDilateW, imageDilateH)
	defer dilated.Close()

	return matToMask(dilated), nil
}
