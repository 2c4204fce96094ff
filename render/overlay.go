// Package render draws inspection results back onto the inspected frame for
// bench review and demos.
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/gofont/goregular"

	"go.rodworks.dev/rodvision/inspect"
)

var font *truetype.Font

// init sets up the font used for rod labels.
func init() {
	var err error
	font, err = truetype.Parse(goregular.TTF)
	if err != nil {
		panic(err)
	}
}

// DrawString writes text to the context at p.
func DrawString(dc *gg.Context, text string, p image.Point, c color.Color, size float64) {
	dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: size}))
	dc.SetColor(c)
	dc.DrawStringWrapped(text, float64(p.X), float64(p.Y), 0, 0, float64(dc.Width()), 1, 0)
}

// Overlay paints each typed rod over the frame in its own warm color: the
// oriented enclosing rectangle, the major axis, the barycenter width segment,
// the centroid, the hole outlines and the type letter. The input raster is
// only read.
func Overlay(img *image.Gray, res *inspect.Result) image.Image {
	dc := gg.NewContextForImage(img)
	palette := colorful.FastWarmPalette(len(res.Rods))

	for i := range res.Rods {
		rod := &res.Rods[i]
		col := palette[i%len(palette)]
		dc.SetColor(col)
		dc.SetLineWidth(1.5)

		// oriented enclosing rectangle
		dc.MoveTo(rod.MER[0].X, rod.MER[0].Y)
		for _, p := range rod.MER[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.ClosePath()
		dc.Stroke()

		// major axis through the centroid
		half := rod.Length / 2
		ux, uy := math.Cos(rod.Orientation), math.Sin(rod.Orientation)
		dc.DrawLine(
			rod.Centroid.X-half*ux, rod.Centroid.Y-half*uy,
			rod.Centroid.X+half*ux, rod.Centroid.Y+half*uy,
		)
		dc.Stroke()

		// width at the barycenter
		if rod.BarycenterWidth > 0 {
			dc.SetLineWidth(1)
			dc.DrawLine(rod.WBPoints[0].X, rod.WBPoints[0].Y, rod.WBPoints[1].X, rod.WBPoints[1].Y)
			dc.Stroke()
		}

		dc.DrawPoint(rod.Centroid.X, rod.Centroid.Y, 2.5)
		dc.Fill()

		for _, hole := range rod.Holes {
			dc.SetLineWidth(1.5)
			dc.DrawCircle(hole.Center.X, hole.Center.Y, hole.Diameter/2)
			dc.Stroke()
			dc.DrawPoint(hole.Center.X, hole.Center.Y, 1.5)
			dc.Fill()
		}

		DrawString(dc, rod.Type.String(),
			image.Point{int(rod.Centroid.X) + 6, int(rod.Centroid.Y) - 18}, col, 16)
	}
	return dc.Image()
}
