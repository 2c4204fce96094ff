package raster

import (
	"image"
	"math"
)

// BorderType distinguishes the two kinds of borders a binary raster has.
type BorderType int

const (
	// Hole marks a border between a shape and a background region it
	// encloses.
	Hole BorderType = iota + 1
	// Outer marks a border between a shape and the background enclosing it.
	Outer
)

func (t BorderType) String() string {
	switch t {
	case Hole:
		return "hole"
	case Outer:
		return "outer"
	default:
		return "unknown"
	}
}

// Contour is one closed border traced out of a mask. Its points live in the
// owning ContourSet's arena. Depth counts real ancestors in the containment
// tree, so outer borders sit at even depths and hole borders at odd ones.
type Contour struct {
	Type  BorderType
	Depth int

	start, end int
}

// Node ties a contour into the containment tree. Fields are indices into
// ContourSet.Hierarchy: index 0 is the virtual frame node and contour i sits
// at index i+1. Absent links are -1.
type Node struct {
	Parent      int
	FirstChild  int
	NextSibling int
}

// ContourSet holds every border of a mask plus the containment hierarchy
// between them. Contours appear in the order their first pixel is met in
// raster scan.
type ContourSet struct {
	Points    []image.Point
	Contours  []Contour
	Hierarchy []Node
}

// Len returns the number of contours, the frame node not included.
func (cs *ContourSet) Len() int {
	return len(cs.Contours)
}

// PointsOf returns the traced points of contour i in following order. The
// slice aliases the arena and must not be modified.
func (cs *ContourSet) PointsOf(i int) []image.Point {
	c := cs.Contours[i]
	return cs.Points[c.start:c.end]
}

// Perimeter measures contour i by summing the traced steps, 1 per axial move
// and √2 per diagonal one, closing step included. A single-point contour has
// perimeter 0.
func (cs *ContourSet) Perimeter(i int) float64 {
	pts := cs.PointsOf(i)
	if len(pts) < 2 {
		return 0
	}
	total := 0.0
	for j := range pts {
		a := pts[j]
		b := pts[(j+1)%len(pts)]
		if a.X != b.X && a.Y != b.Y {
			total += math.Sqrt2
		} else if a != b {
			total++
		}
	}
	return total
}

// neighbors8 lists the 8-neighborhood in clockwise order starting west, with
// image y growing downward.
var neighbors8 = [8]image.Point{
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1},
}

func dirIndex(d image.Point) int {
	for i, n := range neighbors8 {
		if n == d {
			return i
		}
	}
	panic("raster: not a neighbor offset")
}

// FindContours traces every border of m with the Suzuki-Abe border following
// scheme and reconstructs the containment hierarchy between them. The virtual
// frame counts as a hole border enclosing everything, so a shape lying on the
// open background gets an Outer contour at depth 0 and each of its holes a
// Hole contour at depth 1.
func FindContours(m *Mask) *ContourSet {
	w, h := m.width, m.height
	pw := w + 2
	// padded grid: 0 background, 1 unvisited foreground, ±NBD visited
	f := make([]int32, pw*(h+2))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if m.bits[m.kxy(x, y)] {
				f[(y+1)*pw+(x+1)] = 1
			}
		}
	}

	cs := &ContourSet{}
	// per-border bookkeeping indexed by NBD; the frame is NBD 1
	types := []BorderType{0, Hole}
	parents := []int32{0, 0}
	starts := []int{0, 0}
	ends := []int{0, 0}

	nbd := int32(1)
	for py := 1; py <= h; py++ {
		lnbd := int32(1)
		for px := 1; px <= w; px++ {
			fij := f[py*pw+px]
			if fij == 0 {
				continue
			}

			var from image.Point
			var bt BorderType
			start := false
			switch {
			case fij == 1 && f[py*pw+px-1] == 0:
				bt = Outer
				from = image.Point{px - 1, py}
				start = true
			case fij >= 1 && f[py*pw+px+1] == 0:
				bt = Hole
				from = image.Point{px + 1, py}
				if fij > 1 {
					lnbd = fij
				}
				start = true
			}

			if start {
				nbd++
				parent := lnbd
				if types[lnbd] == bt {
					parent = parents[lnbd]
				}
				types = append(types, bt)
				parents = append(parents, parent)
				starts = append(starts, len(cs.Points))
				followBorder(f, pw, image.Point{px, py}, from, nbd, &cs.Points)
				ends = append(ends, len(cs.Points))
			}

			if v := f[py*pw+px]; v != 1 {
				lnbd = abs32(v)
			}
		}
	}

	// assemble contours and hierarchy, NBD order is discovery order
	n := int(nbd) - 1
	cs.Contours = make([]Contour, 0, n)
	cs.Hierarchy = make([]Node, n+1)
	for i := range cs.Hierarchy {
		cs.Hierarchy[i] = Node{Parent: -1, FirstChild: -1, NextSibling: -1}
	}
	lastChild := make([]int, n+1)
	depths := make([]int, n+1)
	depths[0] = -1
	for id := int32(2); id <= nbd; id++ {
		self := int(id) - 1
		parent := int(parents[id]) - 1
		depths[self] = depths[parent] + 1
		cs.Contours = append(cs.Contours, Contour{
			Type:  types[id],
			Depth: depths[self],
			start: starts[id],
			end:   ends[id],
		})
		cs.Hierarchy[self].Parent = parent
		if cs.Hierarchy[parent].FirstChild < 0 {
			cs.Hierarchy[parent].FirstChild = self
		} else {
			cs.Hierarchy[lastChild[parent]].NextSibling = self
		}
		lastChild[parent] = self
	}
	return cs
}

// followBorder walks one border starting at p, whose neighbor from is known
// background, marking visited pixels in f and appending traced points (in
// unpadded coordinates) to arena.
func followBorder(f []int32, pw int, p, from image.Point, nbd int32, arena *[]image.Point) {
	at := func(q image.Point) int32 { return f[q.Y*pw+q.X] }
	set := func(q image.Point, v int32) { f[q.Y*pw+q.X] = v }
	record := func(q image.Point) { *arena = append(*arena, image.Point{q.X - 1, q.Y - 1}) }

	// clockwise from the known background neighbor to the first foreground one
	start := dirIndex(from.Sub(p))
	var p1 image.Point
	found := false
	for i := 0; i < 8; i++ {
		q := p.Add(neighbors8[(start+i)%8])
		if at(q) != 0 {
			p1 = q
			found = true
			break
		}
	}
	if !found {
		// isolated pixel
		set(p, -nbd)
		record(p)
		return
	}

	p2, p3 := p1, p
	for {
		// counterclockwise from past p2 to the next foreground neighbor,
		// noting whether the east neighbor was examined while background
		start = dirIndex(p2.Sub(p3))
		east := p3.Add(image.Point{1, 0})
		examinedEast := false
		var p4 image.Point
		for i := 1; i <= 8; i++ {
			q := p3.Add(neighbors8[((start-i)%8+8)%8])
			if at(q) != 0 {
				p4 = q
				break
			}
			if q == east {
				examinedEast = true
			}
		}

		switch {
		case examinedEast:
			set(p3, -nbd)
		case at(p3) == 1:
			set(p3, nbd)
		}
		record(p3)

		if p4 == p && p3 == p1 {
			return
		}
		p2, p3 = p3, p4
	}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
