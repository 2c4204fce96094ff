package raster

import "image"

// ComponentStat summarizes one labeled component.
type ComponentStat struct {
	Label int32
	Area  int
	BBox  image.Rectangle
}

// Labels is a dense labeling of the 8-connected foreground components of a
// mask. Background pixels hold 0; components are numbered from 1 in order of
// first appearance in raster scan, so the numbering is stable across runs.
type Labels struct {
	width, height int
	data          []int32
	stats         []ComponentStat
}

// LabelComponents labels the 8-connected foreground components of m with the
// classic two-pass union-find sweep.
func LabelComponents(m *Mask) *Labels {
	l := &Labels{
		width:  m.width,
		height: m.height,
		data:   make([]int32, len(m.bits)),
	}

	// provisional labels, parent[0] unused
	parent := make([]int32, 1, 64)

	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if !m.bits[m.kxy(x, y)] {
				continue
			}
			// already-scanned neighbors under 8-connectivity
			best := int32(0)
			for _, off := range [4]image.Point{{-1, 0}, {-1, -1}, {0, -1}, {1, -1}} {
				nx, ny := x+off.X, y+off.Y
				if !m.In(nx, ny) {
					continue
				}
				n := l.data[l.kxy(nx, ny)]
				if n == 0 {
					continue
				}
				if best == 0 {
					best = n
					continue
				}
				best = union(parent, best, n)
			}
			if best == 0 {
				parent = append(parent, int32(len(parent)))
				best = int32(len(parent) - 1)
			}
			l.data[l.kxy(x, y)] = best
		}
	}

	// second pass: resolve roots and renumber by first appearance
	final := make([]int32, len(parent))
	for i := range l.data {
		p := l.data[i]
		if p == 0 {
			continue
		}
		root := find(parent, p)
		lab := final[root]
		if lab == 0 {
			l.stats = append(l.stats, ComponentStat{Label: int32(len(l.stats) + 1)})
			lab = int32(len(l.stats))
			final[root] = lab
		}
		l.data[i] = lab

		st := &l.stats[lab-1]
		x, y := i%l.width, i/l.width
		px := image.Rect(x, y, x+1, y+1)
		if st.Area == 0 {
			st.BBox = px
		} else {
			st.BBox = st.BBox.Union(px)
		}
		st.Area++
	}
	return l
}

func find(parent []int32, x int32) int32 {
	for parent[x] != x {
		parent[x] = parent[parent[x]]
		x = parent[x]
	}
	return x
}

// union merges the sets of a and b; the smaller root wins so the final
// renumbering stays scan-ordered.
func union(parent []int32, a, b int32) int32 {
	ra, rb := find(parent, a), find(parent, b)
	if ra == rb {
		return ra
	}
	if rb < ra {
		ra, rb = rb, ra
	}
	parent[rb] = ra
	return ra
}

func (l *Labels) kxy(x, y int) int {
	return (y * l.width) + x
}

// Width returns the horizontal extent of the labeling.
func (l *Labels) Width() int {
	return l.width
}

// Height returns the vertical extent of the labeling.
func (l *Labels) Height() int {
	return l.height
}

// At returns the label at (x, y), 0 for background or out of bounds.
func (l *Labels) At(x, y int) int32 {
	if x < 0 || y < 0 || x >= l.width || y >= l.height {
		return 0
	}
	return l.data[l.kxy(x, y)]
}

// Count returns the number of components.
func (l *Labels) Count() int {
	return len(l.stats)
}

// Stats returns per-component summaries indexed by Label-1.
func (l *Labels) Stats() []ComponentStat {
	return l.stats
}

// ComponentMask extracts the pixels of one component as a mask local to its
// bounding box, returning the mask and the box origin in labeling
// coordinates.
func (l *Labels) ComponentMask(label int32) (*Mask, image.Point) {
	if label < 1 || int(label) > len(l.stats) {
		panic("raster: no such component label")
	}
	box := l.stats[label-1].BBox
	m := NewMask(box.Dx(), box.Dy())
	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			if l.data[l.kxy(x, y)] == label {
				m.Set(x-box.Min.X, y-box.Min.Y, true)
			}
		}
	}
	return m, box.Min
}
