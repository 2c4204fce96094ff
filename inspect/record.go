package inspect

import (
	"fmt"
	"math"
	"strings"

	"github.com/golang/geo/r2"
)

// RodType is the model of connecting rod a hole count maps to.
type RodType int

const (
	// TypeUnknown covers rods whose hole count matches no known model.
	TypeUnknown RodType = iota
	// TypeA rods carry one hole.
	TypeA
	// TypeB rods carry two holes.
	TypeB
)

func (t RodType) String() string {
	switch t {
	case TypeA:
		return "A"
	case TypeB:
		return "B"
	default:
		return "unknown"
	}
}

// ClassifyHoleCount maps a hole count to the rod model carrying it. Counts
// with no model come back as TypeUnknown, never an error.
func ClassifyHoleCount(holes int) RodType {
	switch holes {
	case 1:
		return TypeA
	case 2:
		return TypeB
	default:
		return TypeUnknown
	}
}

// Hole is one through-hole of a rod.
type Hole struct {
	// Center is the hole centroid in frame coordinates.
	Center r2.Point
	// Diameter is that of the disk with the hole's pixel area.
	Diameter float64
	// Area is the hole size in pixels.
	Area int
}

// RodRecord is the full description of one detected rod. Coordinates are
// frame pixels with y growing downward; angles are radians in [0, π) measured
// from the positive x axis.
type RodRecord struct {
	Type RodType
	// Component is the label of the cleaned-mask component the rod came
	// from, for tracing results back to diagnostics.
	Component int32
	Centroid  r2.Point
	// Orientation is the major-axis angle of the rod.
	Orientation float64
	// Length and Width are the extents of the minimum enclosing rectangle
	// oriented along the major axis.
	Length float64
	Width  float64
	// BarycenterWidth is the rod width measured at the barycenter,
	// between the two boundary points nearest the minor axis on either
	// side of the major one.
	BarycenterWidth float64
	// Elongation is the slenderness √(λmax/λmin) of the second moments,
	// 1 for a disk.
	Elongation float64
	// MER holds the corners of the oriented minimum enclosing rectangle
	// in traversal order.
	MER [4]r2.Point
	// WBPoints are the boundary points realizing BarycenterWidth.
	WBPoints [2]r2.Point
	Holes    []Hole
	// Area is the rod size in pixels.
	Area int
	// Ambiguous marks rods assembled from a component whose separation
	// was not trusted and collapsed back to a single mask.
	Ambiguous bool
}

func (r *RodRecord) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "rod %s at (%.1f, %.1f)", r.Type, r.Centroid.X, r.Centroid.Y)
	fmt.Fprintf(&b, ": angle %.3f rad", r.Orientation)
	fmt.Fprintf(&b, ", length %.1f, width %.1f, wb %.1f, area %d", r.Length, r.Width, r.BarycenterWidth, r.Area)
	fmt.Fprintf(&b, ", %d hole(s)", len(r.Holes))
	for i := range r.Holes {
		h := &r.Holes[i]
		fmt.Fprintf(&b, " [center (%.1f, %.1f) diameter %.1f]", h.Center.X, h.Center.Y, h.Diameter)
	}
	if r.Ambiguous {
		b.WriteString(" (ambiguous separation)")
	}
	return b.String()
}

// ByPosition orders records top to bottom, ties left to right, for operators
// reading a report against the frame.
func ByPosition(a, b *RodRecord) bool {
	if a.Centroid.Y != b.Centroid.Y {
		return a.Centroid.Y < b.Centroid.Y
	}
	return a.Centroid.X < b.Centroid.X
}

// quadrantAngle normalizes an angle into [0, π), the identification range of
// an unoriented axis.
func quadrantAngle(theta float64) float64 {
	for theta < 0 {
		theta += math.Pi
	}
	for theta >= math.Pi {
		theta -= math.Pi
	}
	return theta
}
