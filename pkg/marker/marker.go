// Package marker renders one fiducial marker into a square tile.
//
// A tile is a tileSize×tileSize grayscale image: white paper, a margin-wide
// white border on every side, and the marker bitmap from a
// [fiducial.Generator] centred inside.
//
//	r := marker.NewRenderer(catalogue, fiducial.DefaultDictionary)
//	tile, err := r.Render(100, 3, marker.Margin(100))
package marker

import (
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/markercube/pkg/errors"
	"github.com/matzehuels/markercube/pkg/fiducial"
	"github.com/matzehuels/markercube/pkg/raster"
)

// MarginRatio is the white border of a tile as a fraction of its side.
const MarginRatio = 0.3

// MirrorTiles flips every tile left to right after the marker is placed.
// Composing a sheet transposes each tile, which on its own would print the
// marker as its mirror image. Mirror then transpose is a quarter turn, so
// the printed marker is a rotation of the dictionary pattern and a detector
// reads the right id.
const MirrorTiles = true

// Margin returns the margin used for a tile of the given side: MarginRatio
// of the side, rounded to the nearest pixel.
func Margin(tileSize int) int {
	return int(math.Round(MarginRatio * float64(tileSize)))
}

// Validate checks that a tile of tileSize with the given margin leaves a
// marker region of at least one pixel.
func Validate(tileSize, margin int) error {
	if tileSize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "tile size must be positive, got %d", tileSize)
	}
	if margin < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "margin must not be negative, got %d", margin)
	}
	if 2*margin >= tileSize {
		return errors.New(errors.ErrCodeInvalidConfig,
			"margin %d leaves no room for a marker in a %dpx tile", margin, tileSize)
	}
	return nil
}

// Renderer draws markers from one dictionary.
type Renderer struct {
	gen        fiducial.Generator
	dictionary string
}

// NewRenderer creates a renderer drawing from the named dictionary of gen.
func NewRenderer(gen fiducial.Generator, dictionary string) *Renderer {
	return &Renderer{gen: gen, dictionary: dictionary}
}

// Dictionary returns the name of the dictionary markers are drawn from.
func (r *Renderer) Dictionary() string { return r.dictionary }

// Render returns a tileSize×tileSize tile holding marker id, centred with a
// margin-wide white border.
func (r *Renderer) Render(tileSize, id, margin int) (*image.Gray, error) {
	if err := Validate(tileSize, margin); err != nil {
		return nil, err
	}
	if id < 0 {
		return nil, errors.New(errors.ErrCodeGenerator, "marker id must not be negative, got %d", id)
	}

	side := tileSize - 2*margin
	bitmap, err := r.gen.Marker(r.dictionary, id, side)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeGenerator, err, "generate marker %d of %s", id, r.dictionary)
	}
	if got := bitmap.Bounds().Size(); got != image.Pt(side, side) {
		return nil, errors.New(errors.ErrCodeGenerator,
			"generator returned a %dx%d bitmap for marker %d, want %dx%d", got.X, got.Y, id, side, side)
	}

	tile := imaging.New(tileSize, tileSize, raster.White)
	tile = imaging.Paste(tile, bitmap, image.Pt(margin, margin))
	if MirrorTiles {
		tile = imaging.FlipH(tile)
	}
	return raster.Gray(tile), nil
}
