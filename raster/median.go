package raster

import "image"

// MedianFilter3 runs a 3x3 median filter over img for the given number of
// passes and returns the result as a new raster; img itself is never written.
// Neighborhoods are clamped at the frame border, so edge pixels replicate
// their nearest in-frame samples. passes <= 0 returns a plain copy.
func MedianFilter3(img *image.Gray, passes int) *image.Gray {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	cur := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cur.SetGray(x, y, img.GrayAt(b.Min.X+x, b.Min.Y+y))
		}
	}
	if passes <= 0 {
		return cur
	}

	next := image.NewGray(image.Rect(0, 0, w, h))
	for p := 0; p < passes; p++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				next.Pix[y*next.Stride+x] = medianAt(cur, x, y, w, h)
			}
		}
		cur, next = next, cur
	}
	return cur
}

func medianAt(img *image.Gray, x, y, w, h int) uint8 {
	var window [9]uint8
	i := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			sx, sy := clamp(x+dx, w), clamp(y+dy, h)
			window[i] = img.Pix[sy*img.Stride+sx]
			i++
		}
	}
	// insertion sort, the window is tiny
	for a := 1; a < 9; a++ {
		v := window[a]
		b := a - 1
		for b >= 0 && window[b] > v {
			window[b+1] = window[b]
			b--
		}
		window[b+1] = v
	}
	return window[4]
}

func clamp(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}
