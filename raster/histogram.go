package raster

import (
	"fmt"
	"image"
)

// Histogram counts the 256 intensity bins of img. Coordinates follow
// img.Bounds(), so subimages are handled correctly.
func Histogram(img *image.Gray) [256]int {
	var hist [256]int
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			hist[img.GrayAt(x, y).Y]++
		}
	}
	return hist
}

// DegenerateImageError reports a frame whose intensity distribution has no
// two populations to separate, such as an empty backlight with nothing on it.
type DegenerateImageError struct {
	MinIntensity uint8
	MaxIntensity uint8
}

func (e *DegenerateImageError) Error() string {
	return fmt.Sprintf("degenerate image: intensity range [%d, %d] too narrow to split into foreground and background",
		e.MinIntensity, e.MaxIntensity)
}

// OtsuThreshold picks the threshold t maximizing the between-class variance of
// the two populations {0..t} and {t+1..255}. Ties resolve to the lowest such
// t. If the occupied intensity range is narrower than minContrast the
// histogram is considered unimodal and a DegenerateImageError comes back
// instead of an arbitrary split.
func OtsuThreshold(hist [256]int, minContrast int) (uint8, error) {
	total := 0
	lo, hi := -1, -1
	for i, c := range hist {
		total += c
		if c > 0 {
			if lo < 0 {
				lo = i
			}
			hi = i
		}
	}
	if total == 0 || hi-lo < minContrast {
		e := &DegenerateImageError{}
		if lo >= 0 {
			e.MinIntensity = uint8(lo)
			e.MaxIntensity = uint8(hi)
		}
		return 0, e
	}

	sum := 0.0
	for i, c := range hist {
		sum += float64(i) * float64(c)
	}

	var (
		sumB, maxVar float64
		wB           int
		threshold    int
		found        bool
	)
	for t := 0; t < 256; t++ {
		wB += hist[t]
		if wB == 0 {
			continue
		}
		wF := total - wB
		if wF == 0 {
			break
		}
		sumB += float64(t) * float64(hist[t])
		mB := sumB / float64(wB)
		mF := (sum - sumB) / float64(wF)
		variance := float64(wB) * float64(wF) * (mB - mF) * (mB - mF)
		if variance > maxVar {
			maxVar = variance
			threshold = t
			found = true
		}
	}
	if !found {
		return 0, &DegenerateImageError{MinIntensity: uint8(lo), MaxIntensity: uint8(hi)}
	}
	return uint8(threshold), nil
}
