// Package raster holds the small set of single-channel image helpers shared
// by the marker, grid and sheet packages.
//
// All marker sheet imagery is 8-bit grayscale ([*image.Gray]). The imaging
// library returns [*image.NRGBA] from its transforms, so results are brought
// back to grayscale with [Gray] before they cross a package boundary.
package raster

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// White and Black are the two levels used for paper and ink.
var (
	White = color.Gray{Y: 0xff}
	Black = color.Gray{Y: 0x00}
)

// Filled returns a w×h grayscale image with every pixel set to c.
func Filled(w, h int, c color.Gray) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	if c.Y != 0 {
		for i := range img.Pix {
			img.Pix[i] = c.Y
		}
	}
	return img
}

// Gray converts img to a grayscale image anchored at the origin.
// A *image.Gray already anchored at the origin is returned unchanged.
func Gray(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok && g.Rect.Min == (image.Point{}) {
		return g
	}
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// Equal reports whether a and b have the same size and pixel values.
func Equal(a, b *image.Gray) bool {
	if a.Bounds().Size() != b.Bounds().Size() {
		return false
	}
	w, h := a.Bounds().Dx(), a.Bounds().Dy()
	for y := 0; y < h; y++ {
		ra := a.Pix[y*a.Stride : y*a.Stride+w]
		rb := b.Pix[y*b.Stride : y*b.Stride+w]
		for x := range ra {
			if ra[x] != rb[x] {
				return false
			}
		}
	}
	return true
}

// Uniform reports whether every pixel of img inside r equals c.
// The rectangle is clipped to the image bounds.
func Uniform(img *image.Gray, r image.Rectangle, c color.Gray) bool {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.GrayAt(x, y) != c {
				return false
			}
		}
	}
	return true
}
