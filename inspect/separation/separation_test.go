package separation

import (
	"image"
	"testing"

	"go.viam.com/test"

	"go.rodworks.dev/rodvision/raster"
)

func maskFrom(rows ...string) *raster.Mask {
	m := raster.NewMask(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, c := range row {
			if c == 'x' {
				m.Set(x, y, true)
			}
		}
	}
	return m
}

// two blocks joined by a one-pixel neck, the easy split
func dumbbellThin() *raster.Mask {
	return maskFrom(
		"xxxxx...xxxxx",
		"xxxxx...xxxxx",
		"xxxxxxxxxxxxx",
		"xxxxx...xxxxx",
		"xxxxx...xxxxx",
	)
}

// two blocks joined by a three-row waist, the shallow valley
func dumbbellThick() *raster.Mask {
	return maskFrom(
		"xxxxx...xxxxx",
		"xxxxxxxxxxxxx",
		"xxxxxxxxxxxxx",
		"xxxxxxxxxxxxx",
		"xxxxx...xxxxx",
	)
}

func TestSplitTwoBlocks(t *testing.T) {
	m := dumbbellThin()
	a := Split(m, Params{MinSeedArea: 1, MinPeakSeparation: 4, AmbiguityRatio: 0.8})

	test.That(t, a.Regions, test.ShouldEqual, 2)
	test.That(t, a.Ambiguous, test.ShouldBeFalse)
	test.That(t, a.Seeds, test.ShouldResemble, []Seed{
		{Peak: image.Point{2, 2}, Height: 9, Area: 1},
		{Peak: image.Point{10, 2}, Height: 9, Area: 1},
	})

	// the blocks keep their pixels and the tied neck pixel goes to the
	// earlier seed
	test.That(t, a.At(0, 0), test.ShouldEqual, 1)
	test.That(t, a.At(4, 4), test.ShouldEqual, 1)
	test.That(t, a.At(6, 2), test.ShouldEqual, 1)
	test.That(t, a.At(7, 2), test.ShouldEqual, 2)
	test.That(t, a.At(12, 0), test.ShouldEqual, 2)

	// exact partition of the foreground
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if m.Get(x, y) {
				test.That(t, a.At(x, y), test.ShouldBeGreaterThan, 0)
			} else {
				test.That(t, a.At(x, y), test.ShouldEqual, 0)
			}
		}
	}
	test.That(t, a.RegionMask(1).Area(), test.ShouldEqual, 27)
	test.That(t, a.RegionMask(2).Area(), test.ShouldEqual, 26)
}

func TestSplitAmbiguityRatio(t *testing.T) {
	m := dumbbellThick()

	// the waist carries a saddle of 6 against peaks of 9, so a strict
	// ratio collapses the split and a lax one keeps it
	a := Split(m, Params{MinSeedArea: 1, MinPeakSeparation: 4, AmbiguityRatio: 0.5})
	test.That(t, a.Regions, test.ShouldEqual, 1)
	test.That(t, a.Ambiguous, test.ShouldBeTrue)
	test.That(t, a.Seeds, test.ShouldHaveLength, 2)
	test.That(t, a.At(0, 0), test.ShouldEqual, 1)
	test.That(t, a.At(6, 2), test.ShouldEqual, 1)
	test.That(t, a.At(12, 4), test.ShouldEqual, 1)

	a = Split(m, Params{MinSeedArea: 1, MinPeakSeparation: 4, AmbiguityRatio: 0.8})
	test.That(t, a.Regions, test.ShouldEqual, 2)
	test.That(t, a.Ambiguous, test.ShouldBeFalse)
	test.That(t, a.RegionMask(1).Area(), test.ShouldEqual, 31)
	test.That(t, a.RegionMask(2).Area(), test.ShouldEqual, 28)
}

func TestSplitSingleBlob(t *testing.T) {
	a := Split(maskFrom(
		"xxxxx",
		"xxxxx",
		"xxxxx",
		"xxxxx",
		"xxxxx",
	), Params{MinSeedArea: 1, MinPeakSeparation: 4, AmbiguityRatio: 0.8})

	test.That(t, a.Regions, test.ShouldEqual, 1)
	test.That(t, a.Ambiguous, test.ShouldBeFalse)
	test.That(t, a.Seeds, test.ShouldResemble, []Seed{{Peak: image.Point{2, 2}, Height: 9, Area: 1}})
}

func TestSplitSeedAreaFilter(t *testing.T) {
	// single-pixel plateaus fall below the area floor, so no split happens
	a := Split(dumbbellThin(), Params{MinSeedArea: 2, MinPeakSeparation: 4, AmbiguityRatio: 0.8})
	test.That(t, a.Regions, test.ShouldEqual, 1)
	test.That(t, a.Seeds, test.ShouldBeEmpty)
	test.That(t, a.Ambiguous, test.ShouldBeFalse)
}

func TestSplitPeakSeparationGate(t *testing.T) {
	// peaks sit 8 apart, so demanding 9 keeps only the first of them
	a := Split(dumbbellThin(), Params{MinSeedArea: 1, MinPeakSeparation: 9, AmbiguityRatio: 0.8})
	test.That(t, a.Regions, test.ShouldEqual, 1)
	test.That(t, a.Seeds, test.ShouldHaveLength, 1)
	test.That(t, a.Seeds[0].Peak, test.ShouldResemble, image.Point{2, 2})
}

func TestSeedPlateau(t *testing.T) {
	// a squat rectangle has a six-pixel ridge plateau, clustered into one
	// seed anchored at its first pixel
	a := Split(maskFrom(
		"xxxxx",
		"xxxxx",
		"xxxxx",
		"xxxxx",
	), Params{MinSeedArea: 1, MinPeakSeparation: 2, AmbiguityRatio: 0.8})

	test.That(t, a.Regions, test.ShouldEqual, 1)
	test.That(t, a.Seeds, test.ShouldResemble, []Seed{{Peak: image.Point{1, 1}, Height: 6, Area: 6}})
}

func TestWhole(t *testing.T) {
	m := maskFrom(
		"x..",
		".x.",
	)
	a := Whole(m)
	test.That(t, a.Regions, test.ShouldEqual, 1)
	test.That(t, a.At(0, 0), test.ShouldEqual, 1)
	test.That(t, a.At(1, 1), test.ShouldEqual, 1)
	test.That(t, a.At(2, 0), test.ShouldEqual, 0)
	test.That(t, a.At(-1, 0), test.ShouldEqual, 0)

	empty := Whole(raster.NewMask(2, 2))
	test.That(t, empty.Regions, test.ShouldEqual, 0)
}
