// Package separation splits a connected component suspected of holding
// several touching rods into per-rod masks. The chamfer distance field of the
// component acts as a terrain: every rod contributes a ridge, ridge peaks
// become markers, and flooding the markers outward partitions the pixels
// along the valley between the rods.
package separation

import (
	"image"

	"go.rodworks.dev/rodvision/raster"
)

// Params tunes seed detection and the ambiguity test.
type Params struct {
	// MinSeedArea drops candidate seeds whose peak plateau covers fewer
	// pixels than this, which kills the speckle maxima a rough outline
	// produces.
	MinSeedArea int
	// MinPeakSeparation is the minimum distance in pixels between two
	// seeds. Closer pairs keep only the seed discovered first.
	MinPeakSeparation int
	// AmbiguityRatio controls when two grown regions count as not clearly
	// separated: if the saddle height between them reaches this fraction
	// of the lower peak, the split is ambiguous.
	AmbiguityRatio float64
}

// Seed is one detected ridge peak.
type Seed struct {
	// Peak is the first plateau pixel in raster order.
	Peak image.Point
	// Height is the chamfer distance at the plateau.
	Height int32
	// Area is the plateau size in pixels.
	Area int
}

// Assignment is an exact partition of a component's foreground into rod
// regions.
type Assignment struct {
	Width, Height int
	// Regions counts the rod regions, numbered 1..Regions.
	Regions int
	// Index holds the region per pixel, 0 for background.
	Index []int32
	// Seeds are the peaks the regions grew from, seed i labeling region
	// i+1. Collapsed ambiguous splits keep their seeds for reporting.
	Seeds []Seed
	// Ambiguous reports that distinct peaks were found but the valley
	// between them was too shallow to trust, so the component was kept
	// whole.
	Ambiguous bool

	// saddles tracks the highest recorded pass between each region pair.
	saddles []int32
}

// At returns the region at (x, y), 0 for background or out of bounds.
func (a *Assignment) At(x, y int) int32 {
	if x < 0 || y < 0 || x >= a.Width || y >= a.Height {
		return 0
	}
	return a.Index[y*a.Width+x]
}

// RegionMask extracts one region as a mask with the assignment's geometry.
func (a *Assignment) RegionMask(region int32) *raster.Mask {
	m := raster.NewMask(a.Width, a.Height)
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			if a.Index[y*a.Width+x] == region {
				m.Set(x, y, true)
			}
		}
	}
	return m
}

func (a *Assignment) recordSaddle(r1, r2, h int32) {
	if r2 < r1 {
		r1, r2 = r2, r1
	}
	k := int(r1)*(a.Regions+1) + int(r2)
	if h > a.saddles[k] {
		a.saddles[k] = h
	}
}

func (a *Assignment) saddleBetween(r1, r2 int32) int32 {
	if r2 < r1 {
		r1, r2 = r2, r1
	}
	return a.saddles[int(r1)*(a.Regions+1)+int(r2)]
}

// Whole wraps m as a single-region assignment, the no-split case.
func Whole(m *raster.Mask) *Assignment {
	a := &Assignment{
		Width:  m.Width(),
		Height: m.Height(),
		Index:  make([]int32, m.Width()*m.Height()),
	}
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			if m.Get(x, y) {
				a.Index[y*a.Width+x] = 1
				a.Regions = 1
			}
		}
	}
	return a
}

// Split partitions the foreground of m into per-rod regions. m must hold a
// single 8-connected component; pixels unreachable from any seed would
// otherwise stay unassigned. Fewer than two usable seeds collapse to one
// region covering the whole component, and so do peaks whose shared valley is
// too shallow, the latter with Ambiguous set.
func Split(m *raster.Mask, p Params) *Assignment {
	dist := raster.DistanceTransform(m)
	seeds, peak := findSeeds(dist, p)
	if len(seeds) < 2 {
		a := Whole(m)
		a.Seeds = seeds
		return a
	}

	a := grow(m, dist, seeds, peak)
	if a.anyAmbiguousPair(p.AmbiguityRatio) {
		collapsed := Whole(m)
		collapsed.Seeds = seeds
		collapsed.Ambiguous = true
		return collapsed
	}
	return a
}

// findSeeds locates the ridge peaks of the distance field: local maxima under
// a window derived from MinPeakSeparation, clustered into plateaus, filtered
// by plateau area and then by pairwise peak distance in discovery order. The
// returned bitmap marks every local-maximum pixel so growth can reconstruct
// the plateaus without re-deriving them.
func findSeeds(dist *raster.DistMap, p Params) ([]Seed, []bool) {
	w, h := dist.Width(), dist.Height()
	win := p.MinPeakSeparation / 2
	if win < 1 {
		win = 1
	}

	peak := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := dist.At(x, y)
			if v <= 0 {
				continue
			}
			isMax := true
			for dy := -win; dy <= win && isMax; dy++ {
				for dx := -win; dx <= win; dx++ {
					if dist.At(x+dx, y+dy) > v {
						isMax = false
						break
					}
				}
			}
			peak[y*w+x] = isMax
		}
	}

	// cluster 8-connected plateau pixels; adjacent maxima are necessarily
	// equal in height, so a cluster has one well-defined peak value
	var seeds []Seed
	seen := make([]bool, w*h)
	var queue []image.Point
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			k := y*w + x
			if !peak[k] || seen[k] {
				continue
			}
			s := Seed{Peak: image.Point{x, y}, Height: dist.At(x, y)}
			queue = queue[:0]
			queue = append(queue, s.Peak)
			seen[k] = true
			for len(queue) > 0 {
				q := queue[len(queue)-1]
				queue = queue[:len(queue)-1]
				s.Area++
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := q.X+dx, q.Y+dy
						if nx < 0 || ny < 0 || nx >= w || ny >= h {
							continue
						}
						nk := ny*w + nx
						if !peak[nk] || seen[nk] {
							continue
						}
						seen[nk] = true
						queue = append(queue, image.Point{nx, ny})
					}
				}
			}
			if s.Area >= p.MinSeedArea {
				seeds = append(seeds, s)
			}
		}
	}

	// enforce peak separation, earliest discovery wins
	minSq := p.MinPeakSeparation * p.MinPeakSeparation
	kept := seeds[:0]
	for _, s := range seeds {
		ok := true
		for _, g := range kept {
			d := s.Peak.Sub(g.Peak)
			if d.X*d.X+d.Y*d.Y < minSq {
				ok = false
				break
			}
		}
		if ok {
			kept = append(kept, s)
		}
	}
	return kept, peak
}

// grow floods the seed plateaus outward over the foreground with one shared
// FIFO frontier, so regions expand at the same rate and contested pixels go
// to the earliest seed reaching them. Saddle heights between touching regions
// are collected on the way.
func grow(m *raster.Mask, dist *raster.DistMap, seeds []Seed, peak []bool) *Assignment {
	w, h := m.Width(), m.Height()
	a := &Assignment{
		Width:   w,
		Height:  h,
		Regions: len(seeds),
		Index:   make([]int32, w*h),
		Seeds:   seeds,
		saddles: make([]int32, (len(seeds)+1)*(len(seeds)+1)),
	}

	// plateaus are disjoint 8-connected clusters of the peak bitmap, so
	// re-flooding them from each kept seed cannot collide
	var frontier []image.Point
	for i, s := range seeds {
		region := int32(i + 1)
		var plateau []image.Point
		plateau = append(plateau, s.Peak)
		a.Index[s.Peak.Y*w+s.Peak.X] = region
		for len(plateau) > 0 {
			q := plateau[len(plateau)-1]
			plateau = plateau[:len(plateau)-1]
			frontier = append(frontier, q)
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := q.X+dx, q.Y+dy
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					nk := ny*w + nx
					if !peak[nk] || a.Index[nk] != 0 {
						continue
					}
					a.Index[nk] = region
					plateau = append(plateau, image.Point{nx, ny})
				}
			}
		}
	}

	for head := 0; head < len(frontier); head++ {
		q := frontier[head]
		region := a.Index[q.Y*w+q.X]
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				nx, ny := q.X+dx, q.Y+dy
				if !m.Get(nx, ny) {
					continue
				}
				nk := ny*w + nx
				other := a.Index[nk]
				if other == 0 {
					a.Index[nk] = region
					frontier = append(frontier, image.Point{nx, ny})
					continue
				}
				if other != region {
					// the lower of the two sides bounds the
					// pass height between the regions
					a.recordSaddle(region, other, min32(dist.At(q.X, q.Y), dist.At(nx, ny)))
				}
			}
		}
	}
	return a
}

// anyAmbiguousPair reports whether some pair of grown regions meets over a
// saddle so high, relative to the lower of the two peaks, that the valley
// cannot be trusted as a rod boundary.
func (a *Assignment) anyAmbiguousPair(ratio float64) bool {
	for i := 0; i < len(a.Seeds); i++ {
		for j := i + 1; j < len(a.Seeds); j++ {
			sd := a.saddleBetween(int32(i+1), int32(j+1))
			if sd == 0 {
				continue
			}
			lower := a.Seeds[i].Height
			if a.Seeds[j].Height < lower {
				lower = a.Seeds[j].Height
			}
			if float64(sd) >= ratio*float64(lower) {
				return true
			}
		}
	}
	return false
}

func min32(a, b int32) int32 {
	if b < a {
		return b
	}
	return a
}
