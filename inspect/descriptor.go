package inspect

import (
	"image"
	"math"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"

	"go.rodworks.dev/rodvision/raster"
)

// describeRod measures the rod pixels of m, placed at origin in the frame,
// into a record with centroid, axis, extents and barycenter width filled in.
// Hole attachment and type classification stay with the caller.
func describeRod(m *raster.Mask, origin image.Point) (*RodRecord, error) {
	mo := computeMoments(m, origin)
	if mo.area == 0 {
		return nil, &DegenerateShapeError{Reason: "no pixels"}
	}
	theta, err := mo.orientation()
	if err != nil {
		return nil, err
	}
	elong, err := mo.elongation()
	if err != nil {
		return nil, err
	}

	cs := raster.FindContours(m)
	var boundary []image.Point
	for i := range cs.Contours {
		if cs.Contours[i].Type == raster.Outer {
			boundary = cs.PointsOf(i)
			break
		}
	}
	if len(boundary) == 0 {
		return nil, errors.New("rod mask traced no outer boundary")
	}

	c := mo.centroid()
	u := r2.Point{X: math.Cos(theta), Y: math.Sin(theta)}
	v := r2.Point{X: -u.Y, Y: u.X}

	rec := &RodRecord{
		Centroid:    c,
		Orientation: theta,
		Elongation:  elong,
		Area:        mo.area,
	}

	sMin, sMax := math.Inf(1), math.Inf(-1)
	tMin, tMax := math.Inf(1), math.Inf(-1)
	// nearest boundary point to the minor axis on each side of the major
	// axis; together they realize the barycenter width
	bestPos, bestNeg := math.Inf(1), math.Inf(1)
	var posPt, negPt r2.Point
	havePos, haveNeg := false, false
	for _, bp := range boundary {
		p := r2.Point{X: float64(bp.X + origin.X), Y: float64(bp.Y + origin.Y)}
		d := p.Sub(c)
		s := d.Dot(u)
		t := d.Dot(v)
		sMin, sMax = math.Min(sMin, s), math.Max(sMax, s)
		tMin, tMax = math.Min(tMin, t), math.Max(tMax, t)
		switch {
		case t > 0:
			if math.Abs(s) < bestPos {
				bestPos = math.Abs(s)
				posPt = p
				havePos = true
			}
		case t < 0:
			if math.Abs(s) < bestNeg {
				bestNeg = math.Abs(s)
				negPt = p
				haveNeg = true
			}
		}
	}

	rec.Length = sMax - sMin
	rec.Width = tMax - tMin
	rec.MER = [4]r2.Point{
		c.Add(u.Mul(sMin)).Add(v.Mul(tMin)),
		c.Add(u.Mul(sMax)).Add(v.Mul(tMin)),
		c.Add(u.Mul(sMax)).Add(v.Mul(tMax)),
		c.Add(u.Mul(sMin)).Add(v.Mul(tMax)),
	}
	if havePos && haveNeg {
		rec.BarycenterWidth = posPt.Sub(negPt).Norm()
		rec.WBPoints = [2]r2.Point{posPt, negPt}
	}
	return rec, nil
}
