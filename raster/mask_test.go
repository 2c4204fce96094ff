package raster

import (
	"image"
	"image/color"
	"testing"

	"go.viam.com/test"
)

// maskFromStrings builds a mask from rows of '.' (background) and 'x'
// (foreground).
func maskFromStrings(rows ...string) *Mask {
	m := NewMask(len(rows[0]), len(rows))
	for y, row := range rows {
		for x := 0; x < len(row); x++ {
			if row[x] == 'x' {
				m.Set(x, y, true)
			}
		}
	}
	return m
}

func TestMaskBasics(t *testing.T) {
	m := NewMask(4, 3)
	test.That(t, m.Width(), test.ShouldEqual, 4)
	test.That(t, m.Height(), test.ShouldEqual, 3)
	test.That(t, m.Bounds(), test.ShouldResemble, image.Rect(0, 0, 4, 3))
	test.That(t, m.Area(), test.ShouldEqual, 0)

	m.Set(1, 2, true)
	test.That(t, m.Get(1, 2), test.ShouldBeTrue)
	test.That(t, m.Get(2, 1), test.ShouldBeFalse)
	test.That(t, m.Area(), test.ShouldEqual, 1)

	// out of bounds reads as background
	test.That(t, m.Get(-1, 0), test.ShouldBeFalse)
	test.That(t, m.Get(4, 0), test.ShouldBeFalse)
	test.That(t, m.Get(0, 3), test.ShouldBeFalse)
}

func TestMaskClone(t *testing.T) {
	m := maskFromStrings(
		"xx.",
		".x.",
	)
	c := m.Clone()
	test.That(t, c.Area(), test.ShouldEqual, 3)
	c.Set(2, 1, true)
	test.That(t, c.Area(), test.ShouldEqual, 4)
	test.That(t, m.Area(), test.ShouldEqual, 3)
}

func TestBinarize(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	img.Pix[0], img.Pix[1] = 10, 20
	img.Pix[img.Stride], img.Pix[img.Stride+1] = 30, 40

	dark := Binarize(img, 20, true)
	test.That(t, dark.Get(0, 0), test.ShouldBeTrue)
	test.That(t, dark.Get(1, 0), test.ShouldBeTrue) // at threshold counts as dark
	test.That(t, dark.Get(0, 1), test.ShouldBeFalse)
	test.That(t, dark.Get(1, 1), test.ShouldBeFalse)

	light := Binarize(img, 20, false)
	test.That(t, light.Get(0, 0), test.ShouldBeFalse)
	test.That(t, light.Get(1, 0), test.ShouldBeFalse)
	test.That(t, light.Get(0, 1), test.ShouldBeTrue)
	test.That(t, light.Get(1, 1), test.ShouldBeTrue)
}

func TestBinarizeSubImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	img.SetGray(2, 2, color.Gray{Y: 10})

	sub, ok := img.SubImage(image.Rect(1, 1, 4, 4)).(*image.Gray)
	test.That(t, ok, test.ShouldBeTrue)
	m := Binarize(sub, 100, true)
	test.That(t, m.Bounds(), test.ShouldResemble, image.Rect(0, 0, 3, 3))
	test.That(t, m.Get(1, 1), test.ShouldBeTrue)
	test.That(t, m.Area(), test.ShouldEqual, 1)
}
