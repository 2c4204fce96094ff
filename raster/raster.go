// Package raster implements the pixel-level primitives behind connecting-rod
// inspection: grayscale histograms and automatic thresholding, binary masks,
// mathematical morphology, connected-component labeling, border following and
// chamfer distance transforms. Everything in here is deterministic: the same
// input raster always produces the same labels in the same order.
package raster

import (
	"image"

	"github.com/disintegration/imaging"
)

// FromImage converts any image into an 8-bit grayscale raster anchored at the
// origin. Color inputs are reduced with the same luminance weighting imaging
// uses elsewhere in the pipeline, so repeated conversions agree.
func FromImage(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok && g.Bounds().Min == image.ZP && g.Stride == g.Bounds().Dx() {
		out := image.NewGray(g.Bounds())
		copy(out.Pix, g.Pix)
		return out
	}
	flat := imaging.Grayscale(img)
	b := flat.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			// Grayscale output has R == G == B, take the red channel.
			out.Pix[y*out.Stride+x] = flat.Pix[y*flat.Stride+x*4]
		}
	}
	return out
}
