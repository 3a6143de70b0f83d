package io

import (
	"image"
	"io"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/markercube/pkg/errors"
)

// EncodePNG writes img to w as PNG. A *image.Gray is stored as an 8-bit
// grayscale PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "encode png")
	}
	return nil
}
