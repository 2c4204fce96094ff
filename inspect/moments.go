package inspect

import (
	"fmt"
	"image"
	"math"

	"github.com/golang/geo/r2"
	"gonum.org/v1/gonum/mat"

	"go.rodworks.dev/rodvision/raster"
)

// DegenerateShapeError reports a pixel set whose second-order moments admit
// no principal axis, such as a disk or a perfect square, for which an
// orientation would be arbitrary.
type DegenerateShapeError struct {
	Reason string
}

func (e *DegenerateShapeError) Error() string {
	return fmt.Sprintf("degenerate shape: %s", e.Reason)
}

// isotropyEps is the relative tolerance under which the central moments count
// as rotation invariant.
const isotropyEps = 1e-9

// moments are the raw and central moments of a pixel set, accumulated in
// frame coordinates.
type moments struct {
	area             int
	cx, cy           float64
	mu20, mu11, mu02 float64
}

// computeMoments accumulates moments over the foreground of m shifted by
// origin. The caller guarantees at least one foreground pixel.
func computeMoments(m *raster.Mask, origin image.Point) moments {
	var n int
	var sx, sy, sxx, sxy, syy int64
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if !m.Get(x, y) {
				continue
			}
			gx, gy := int64(x+origin.X), int64(y+origin.Y)
			n++
			sx += gx
			sy += gy
			sxx += gx * gx
			sxy += gx * gy
			syy += gy * gy
		}
	}
	mo := moments{area: n}
	fn := float64(n)
	mo.cx = float64(sx) / fn
	mo.cy = float64(sy) / fn
	mo.mu20 = float64(sxx) - fn*mo.cx*mo.cx
	mo.mu11 = float64(sxy) - fn*mo.cx*mo.cy
	mo.mu02 = float64(syy) - fn*mo.cy*mo.cy
	return mo
}

func (mo moments) centroid() r2.Point {
	return r2.Point{X: mo.cx, Y: mo.cy}
}

// orientation returns the major-axis angle in [0, π), measured from the
// positive x axis with y growing downward. Rotation-invariant shapes have no
// major axis and come back as a DegenerateShapeError.
func (mo moments) orientation() (float64, error) {
	spread := mo.mu20 + mo.mu02
	if math.Abs(mo.mu20-mo.mu02) <= isotropyEps*spread && math.Abs(2*mo.mu11) <= isotropyEps*spread {
		return 0, &DegenerateShapeError{Reason: "second moments are rotation invariant, no major axis"}
	}
	theta := 0.5 * math.Atan2(2*mo.mu11, mo.mu20-mo.mu02)
	return quadrantAngle(theta), nil
}

// elongation returns √(λmax/λmin) of the second-moment matrix, 1 for a disk
// and growing with slenderness. A vanishing minor eigenvalue, as with a
// one-pixel-wide line, reads as +Inf.
func (mo moments) elongation() (float64, error) {
	cov := mat.NewSymDense(2, []float64{mo.mu20, mo.mu11, mo.mu11, mo.mu02})
	var eig mat.EigenSym
	if ok := eig.Factorize(cov, false); !ok {
		return 0, &DegenerateShapeError{Reason: "second-moment eigendecomposition failed"}
	}
	vals := eig.Values(nil)
	lo, hi := vals[0], vals[1]
	if hi <= 0 {
		// a single pixel has no spread at all
		return 1, nil
	}
	if lo <= 0 {
		return math.Inf(1), nil
	}
	return math.Sqrt(hi / lo), nil
}
