package raster

import (
	"testing"

	"go.viam.com/test"
)

func TestDiskOffsets(t *testing.T) {
	test.That(t, diskOffsets(1), test.ShouldHaveLength, 5)
	test.That(t, diskOffsets(2), test.ShouldHaveLength, 13)
}

func TestErode(t *testing.T) {
	m := maskFromStrings(
		".......",
		".xxxxx.",
		".xxxxx.",
		".xxxxx.",
		".xxxxx.",
		".xxxxx.",
		".......",
	)
	e := Erode(m, 1)
	// only pixels whose whole cross lies inside the block survive
	test.That(t, e.Area(), test.ShouldEqual, 9)
	for y := 2; y <= 4; y++ {
		for x := 2; x <= 4; x++ {
			test.That(t, e.Get(x, y), test.ShouldBeTrue)
		}
	}
	test.That(t, e.Get(1, 1), test.ShouldBeFalse)
}

func TestErodeAtFrame(t *testing.T) {
	// out-of-frame samples do not count against survival
	m := maskFromStrings(
		"xxx",
		"xxx",
		"xxx",
	)
	e := Erode(m, 1)
	test.That(t, e.Area(), test.ShouldEqual, 9)
}

func TestDilate(t *testing.T) {
	m := maskFromStrings(
		".....",
		".....",
		"..x..",
		".....",
		".....",
	)
	d := Dilate(m, 1)
	test.That(t, d.Area(), test.ShouldEqual, 5)
	test.That(t, d.Get(2, 1), test.ShouldBeTrue)
	test.That(t, d.Get(1, 2), test.ShouldBeTrue)
	test.That(t, d.Get(3, 2), test.ShouldBeTrue)
	test.That(t, d.Get(2, 3), test.ShouldBeTrue)
	test.That(t, d.Get(1, 1), test.ShouldBeFalse)

	corner := NewMask(3, 3)
	corner.Set(0, 0, true)
	d = Dilate(corner, 1)
	test.That(t, d.Area(), test.ShouldEqual, 3)
}

func TestOpenRemovesSpeckKeepsBlock(t *testing.T) {
	m := maskFromStrings(
		".........",
		".xxxxx...",
		".xxxxx...",
		".xxxxx.x.",
		".xxxxx...",
		".xxxxx...",
		".........",
	)
	o := Open(m, 1)
	// the lone speck is gone
	test.That(t, o.Get(7, 3), test.ShouldBeFalse)
	// the block keeps everything but its corners
	test.That(t, o.Area(), test.ShouldEqual, 21)
	test.That(t, o.Get(1, 1), test.ShouldBeFalse)
	test.That(t, o.Get(5, 5), test.ShouldBeFalse)
	test.That(t, o.Get(3, 3), test.ShouldBeTrue)
	test.That(t, o.Get(1, 3), test.ShouldBeTrue)
}

func TestOpenZeroRadius(t *testing.T) {
	m := maskFromStrings(
		"x.",
		".x",
	)
	o := Open(m, 0)
	test.That(t, o.Area(), test.ShouldEqual, 2)
	// a copy, not the same mask
	o.Set(1, 0, true)
	test.That(t, m.Get(1, 0), test.ShouldBeFalse)
}
