package raster

// DistMap is an integer chamfer distance field over a mask, weighted 3 per
// axial step and 4 per diagonal one, about three times the Euclidean pixel
// distance. Background pixels hold 0.
type DistMap struct {
	width, height int
	data          []int32
}

const chamferInf = int32(1) << 30

// DistanceTransform computes for every foreground pixel of m its 3-4 chamfer
// distance to the nearest background pixel, with the classic forward and
// backward sweeps. Everything beyond the frame counts as background, so the
// field is finite even when the mask is solid foreground.
func DistanceTransform(m *Mask) *DistMap {
	d := &DistMap{width: m.width, height: m.height, data: make([]int32, len(m.bits))}
	w, h := m.width, m.height

	// out-of-bounds neighbors read as distance 0
	at := func(x, y int) int32 {
		if x < 0 || y < 0 || x >= w || y >= h {
			return 0
		}
		return d.data[d.kxy(x, y)]
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			k := d.kxy(x, y)
			if !m.bits[k] {
				continue
			}
			v := chamferInf
			v = min32(v, at(x-1, y)+3)
			v = min32(v, at(x, y-1)+3)
			v = min32(v, at(x-1, y-1)+4)
			v = min32(v, at(x+1, y-1)+4)
			d.data[k] = v
		}
	}

	for y := h - 1; y >= 0; y-- {
		for x := w - 1; x >= 0; x-- {
			k := d.kxy(x, y)
			if !m.bits[k] {
				continue
			}
			v := d.data[k]
			v = min32(v, at(x+1, y)+3)
			v = min32(v, at(x, y+1)+3)
			v = min32(v, at(x+1, y+1)+4)
			v = min32(v, at(x-1, y+1)+4)
			d.data[k] = v
		}
	}
	return d
}

func (d *DistMap) kxy(x, y int) int {
	return (y * d.width) + x
}

// Width returns the horizontal extent of the field.
func (d *DistMap) Width() int {
	return d.width
}

// Height returns the vertical extent of the field.
func (d *DistMap) Height() int {
	return d.height
}

// At returns the chamfer distance at (x, y), 0 for background or out of
// bounds.
func (d *DistMap) At(x, y int) int32 {
	if x < 0 || y < 0 || x >= d.width || y >= d.height {
		return 0
	}
	return d.data[d.kxy(x, y)]
}

// Max returns the largest distance in the field.
func (d *DistMap) Max() int32 {
	var m int32
	for _, v := range d.data {
		if v > m {
			m = v
		}
	}
	return m
}

func min32(a, b int32) int32 {
	if b < a {
		return b
	}
	return a
}
