package raster

import "image"

// diskOffsets returns the offsets (dx, dy) with dx*dx+dy*dy <= r*r, a digital
// disk usable as a structuring element.
func diskOffsets(radius int) []image.Point {
	offsets := make([]image.Point, 0, (2*radius+1)*(2*radius+1))
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				offsets = append(offsets, image.Point{dx, dy})
			}
		}
	}
	return offsets
}

// Erode shrinks foreground by a disk of the given radius: a pixel survives
// only if every disk sample inside the frame is foreground. Samples falling
// past the frame do not count against survival, so shapes cropped by the
// frame are not eaten from the cropped side. radius <= 0 is a no-op copy.
func Erode(m *Mask, radius int) *Mask {
	if radius <= 0 {
		return m.Clone()
	}
	offsets := diskOffsets(radius)
	out := NewMask(m.width, m.height)
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if !m.bits[m.kxy(x, y)] {
				continue
			}
			keep := true
			for _, off := range offsets {
				sx, sy := x+off.X, y+off.Y
				if !m.In(sx, sy) {
					continue
				}
				if !m.bits[m.kxy(sx, sy)] {
					keep = false
					break
				}
			}
			out.bits[out.kxy(x, y)] = keep
		}
	}
	return out
}

// Dilate grows foreground by a disk of the given radius. radius <= 0 is a
// no-op copy.
func Dilate(m *Mask, radius int) *Mask {
	if radius <= 0 {
		return m.Clone()
	}
	offsets := diskOffsets(radius)
	out := NewMask(m.width, m.height)
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if !m.bits[m.kxy(x, y)] {
				continue
			}
			for _, off := range offsets {
				sx, sy := x+off.X, y+off.Y
				if m.In(sx, sy) {
					out.bits[out.kxy(sx, sy)] = true
				}
			}
		}
	}
	return out
}

// Open erodes then dilates with the same disk, wiping speckles and necks
// thinner than the structuring element while leaving larger shapes intact.
func Open(m *Mask, radius int) *Mask {
	if radius <= 0 {
		return m.Clone()
	}
	return Dilate(Erode(m, radius), radius)
}
