package raster

import (
	"image"
	"image/color"
	"testing"

	"go.viam.com/test"
)

func TestFromImageGrayCopies(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 3, 2))
	for i := range src.Pix {
		src.Pix[i] = uint8(40 * i)
	}
	out := FromImage(src)
	test.That(t, out.Bounds(), test.ShouldResemble, src.Bounds())
	test.That(t, out.Pix, test.ShouldResemble, src.Pix)

	out.Pix[0] = 99
	test.That(t, src.Pix[0], test.ShouldEqual, 0)
}

func TestFromImageColor(t *testing.T) {
	// neutral colors survive the luminance weighting untouched
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i, v := range []uint8{0, 85, 170, 255} {
		src.Set(i%2, i/2, color.NRGBA{R: v, G: v, B: v, A: 255})
	}
	out := FromImage(src)
	test.That(t, out.GrayAt(0, 0).Y, test.ShouldEqual, 0)
	test.That(t, out.GrayAt(1, 0).Y, test.ShouldEqual, 85)
	test.That(t, out.GrayAt(0, 1).Y, test.ShouldEqual, 170)
	test.That(t, out.GrayAt(1, 1).Y, test.ShouldEqual, 255)
}

func TestFromImageSubImage(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.SetGray(x, y, color.Gray{Y: uint8(16*y + 4*x)})
		}
	}
	sub, ok := src.SubImage(image.Rect(1, 1, 3, 3)).(*image.Gray)
	test.That(t, ok, test.ShouldBeTrue)

	out := FromImage(sub)
	test.That(t, out.Bounds(), test.ShouldResemble, image.Rect(0, 0, 2, 2))
	test.That(t, out.GrayAt(0, 0).Y, test.ShouldEqual, 20)
	test.That(t, out.GrayAt(1, 1).Y, test.ShouldEqual, 40)

	// a zero-anchored crop keeps the parent stride and must not be copied
	// linearly
	sub, ok = src.SubImage(image.Rect(0, 0, 2, 2)).(*image.Gray)
	test.That(t, ok, test.ShouldBeTrue)
	out = FromImage(sub)
	test.That(t, out.GrayAt(0, 1).Y, test.ShouldEqual, 16)
	test.That(t, out.GrayAt(1, 1).Y, test.ShouldEqual, 20)
}
