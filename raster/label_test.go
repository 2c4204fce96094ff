package raster

import (
	"image"
	"testing"

	"go.viam.com/test"
)

func TestLabelDiagonalConnectivity(t *testing.T) {
	m := maskFromStrings(
		"x.",
		".x",
	)
	l := LabelComponents(m)
	test.That(t, l.Count(), test.ShouldEqual, 1)
	test.That(t, l.At(0, 0), test.ShouldEqual, 1)
	test.That(t, l.At(1, 1), test.ShouldEqual, 1)
	test.That(t, l.At(1, 0), test.ShouldEqual, 0)

	st := l.Stats()[0]
	test.That(t, st.Area, test.ShouldEqual, 2)
	test.That(t, st.BBox, test.ShouldResemble, image.Rect(0, 0, 2, 2))
}

func TestLabelScanOrder(t *testing.T) {
	m := maskFromStrings(
		"......x",
		"xx....x",
		"xx.....",
	)
	l := LabelComponents(m)
	test.That(t, l.Count(), test.ShouldEqual, 2)
	// the blob whose first pixel scans earlier gets the lower label
	test.That(t, l.At(6, 0), test.ShouldEqual, 1)
	test.That(t, l.At(0, 1), test.ShouldEqual, 2)
}

func TestLabelMergesArms(t *testing.T) {
	// the two arms get provisional labels that only meet at the bottom
	m := maskFromStrings(
		"x.x",
		"x.x",
		"xxx",
	)
	l := LabelComponents(m)
	test.That(t, l.Count(), test.ShouldEqual, 1)
	st := l.Stats()[0]
	test.That(t, st.Area, test.ShouldEqual, 7)
	test.That(t, st.BBox, test.ShouldResemble, image.Rect(0, 0, 3, 3))
}

func TestLabelEmptyMask(t *testing.T) {
	l := LabelComponents(NewMask(4, 4))
	test.That(t, l.Count(), test.ShouldEqual, 0)
	test.That(t, l.Stats(), test.ShouldBeEmpty)
}

func TestComponentMask(t *testing.T) {
	m := maskFromStrings(
		".....",
		".xx..",
		".x...",
		"....x",
	)
	l := LabelComponents(m)
	test.That(t, l.Count(), test.ShouldEqual, 2)

	sub, origin := l.ComponentMask(1)
	test.That(t, origin, test.ShouldResemble, image.Point{1, 1})
	test.That(t, sub.Bounds(), test.ShouldResemble, image.Rect(0, 0, 2, 2))
	test.That(t, sub.Get(0, 0), test.ShouldBeTrue)
	test.That(t, sub.Get(1, 0), test.ShouldBeTrue)
	test.That(t, sub.Get(0, 1), test.ShouldBeTrue)
	test.That(t, sub.Get(1, 1), test.ShouldBeFalse)

	sub, origin = l.ComponentMask(2)
	test.That(t, origin, test.ShouldResemble, image.Point{4, 3})
	test.That(t, sub.Area(), test.ShouldEqual, 1)
}

func TestLabelOutOfBounds(t *testing.T) {
	l := LabelComponents(maskFromStrings("x"))
	test.That(t, l.At(-1, 0), test.ShouldEqual, 0)
	test.That(t, l.At(0, -1), test.ShouldEqual, 0)
	test.That(t, l.At(1, 0), test.ShouldEqual, 0)
}
