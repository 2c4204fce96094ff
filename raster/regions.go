package raster

import (
	"image"

	"github.com/golang/geo/r2"
)

// Region is a connected pocket of background completely surrounded by
// foreground.
type Region struct {
	Area     int
	Centroid r2.Point
	BBox     image.Rectangle
	// Touch is the foreground pixel directly above the region's first
	// pixel in raster order. Callers use it to look up which shape the
	// region is punched out of.
	Touch image.Point
}

// FindEnclosedRegions returns the 4-connected background regions of m that do
// not reach the frame border, ordered by the raster position of their first
// pixel. Flood fills run over background, so foreground topology is left
// alone.
func FindEnclosedRegions(m *Mask) []Region {
	w, h := m.width, m.height
	seen := make([]bool, len(m.bits))
	var regions []Region
	var queue []image.Point

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			k := m.kxy(x, y)
			if m.bits[k] || seen[k] {
				continue
			}

			anchor := image.Point{x, y}
			queue = queue[:0]
			queue = append(queue, anchor)
			seen[k] = true

			touchesFrame := false
			area := 0
			sumX, sumY := 0, 0
			box := image.Rect(x, y, x+1, y+1)
			for len(queue) > 0 {
				p := queue[len(queue)-1]
				queue = queue[:len(queue)-1]
				area++
				sumX += p.X
				sumY += p.Y
				box = box.Union(image.Rect(p.X, p.Y, p.X+1, p.Y+1))
				if p.X == 0 || p.Y == 0 || p.X == w-1 || p.Y == h-1 {
					touchesFrame = true
				}
				for _, off := range [4]image.Point{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
					n := p.Add(off)
					if !m.In(n.X, n.Y) {
						continue
					}
					nk := m.kxy(n.X, n.Y)
					if m.bits[nk] || seen[nk] {
						continue
					}
					seen[nk] = true
					queue = append(queue, n)
				}
			}

			if touchesFrame {
				continue
			}
			regions = append(regions, Region{
				Area:     area,
				Centroid: r2.Point{X: float64(sumX) / float64(area), Y: float64(sumY) / float64(area)},
				BBox:     box,
				// the pixel above the anchor cannot be part of the
				// region, or the anchor would not be first in raster
				// order
				Touch: image.Point{anchor.X, anchor.Y - 1},
			})
		}
	}
	return regions
}
