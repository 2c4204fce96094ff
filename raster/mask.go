package raster

import "image"

// Mask is a binary raster addressed like an image.Gray, with (0, 0) the
// top-left corner. True pixels are foreground.
type Mask struct {
	width, height int
	bits          []bool
}

// NewMask returns an all-background mask of the given size.
func NewMask(width, height int) *Mask {
	if width <= 0 || height <= 0 {
		panic("raster: mask dimensions must be positive")
	}
	return &Mask{width: width, height: height, bits: make([]bool, width*height)}
}

func (m *Mask) kxy(x, y int) int {
	return (y * m.width) + x
}

// Width returns the horizontal extent of the mask.
func (m *Mask) Width() int {
	return m.width
}

// Height returns the vertical extent of the mask.
func (m *Mask) Height() int {
	return m.height
}

// Bounds returns the mask extent as a rectangle anchored at the origin.
func (m *Mask) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.width, m.height)
}

// In reports whether (x, y) lies inside the mask.
func (m *Mask) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.width && y < m.height
}

// Get reports whether the pixel at (x, y) is foreground. Out-of-bounds reads
// come back as background so neighborhood scans need no edge cases.
func (m *Mask) Get(x, y int) bool {
	if !m.In(x, y) {
		return false
	}
	return m.bits[m.kxy(x, y)]
}

// Set writes the pixel at (x, y), which must be in bounds.
func (m *Mask) Set(x, y int, v bool) {
	m.bits[m.kxy(x, y)] = v
}

// Area returns the number of foreground pixels.
func (m *Mask) Area() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the mask.
func (m *Mask) Clone() *Mask {
	out := &Mask{width: m.width, height: m.height, bits: make([]bool, len(m.bits))}
	copy(out.bits, m.bits)
	return out
}
