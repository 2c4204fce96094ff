package raster

import "image"

// Binarize thresholds img into a foreground mask. With darkForeground set,
// pixels at or below the threshold become foreground, which matches dark
// parts lying on a bright backlight; otherwise pixels strictly above the
// threshold do. The mask is anchored at the origin regardless of img's
// bounds.
func Binarize(img *image.Gray, threshold uint8, darkForeground bool) *Mask {
	b := img.Bounds()
	m := NewMask(b.Dx(), b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := img.GrayAt(x, y).Y
			fg := v > threshold
			if darkForeground {
				fg = v <= threshold
			}
			m.Set(x-b.Min.X, y-b.Min.Y, fg)
		}
	}
	return m
}
