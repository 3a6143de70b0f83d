package fiducial

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/markercube/pkg/errors"
	"github.com/matzehuels/markercube/pkg/raster"
)

// Generator produces a side×side grayscale bitmap of marker id from the
// named dictionary.
type Generator interface {
	Marker(dictionary string, id, side int) (*image.Gray, error)
}

// Dictionary is a named, ordered set of codewords. The index of a codeword is
// its marker id.
type Dictionary struct {
	Name       string
	MarkerSize int
	Codes      []Code
}

// Len returns the number of markers in the dictionary.
func (d *Dictionary) Len() int { return len(d.Codes) }

// Cells returns the number of cells per side of a drawn marker, including
// the black border.
func (d *Dictionary) Cells() int { return d.MarkerSize + 2 }

// Validate checks the marker size and that every code is in range and
// distinct.
func (d *Dictionary) Validate() error {
	if d.Name == "" {
		return errors.New(errors.ErrCodeInvalidDictionary, "dictionary name cannot be empty")
	}
	if d.MarkerSize < MinMarkerSize || d.MarkerSize > MaxMarkerSize {
		return errors.New(errors.ErrCodeInvalidDictionary,
			"dictionary %s: marker size %d outside [%d, %d]", d.Name, d.MarkerSize, MinMarkerSize, MaxMarkerSize)
	}
	if len(d.Codes) == 0 {
		return errors.New(errors.ErrCodeInvalidDictionary, "dictionary %s has no codes", d.Name)
	}
	mask := codeMask(d.MarkerSize)
	seen := make(map[Code]int, len(d.Codes))
	for id, c := range d.Codes {
		if c&^mask != 0 {
			return errors.New(errors.ErrCodeInvalidDictionary,
				"dictionary %s: code %d uses bits beyond %d cells", d.Name, id, d.MarkerSize*d.MarkerSize)
		}
		if prev, ok := seen[c]; ok {
			return errors.New(errors.ErrCodeInvalidDictionary,
				"dictionary %s: codes %d and %d are identical", d.Name, prev, id)
		}
		seen[c] = id
	}
	return nil
}

// Marker implements [Generator] for this dictionary alone.
func (d *Dictionary) Marker(dictionary string, id, side int) (*image.Gray, error) {
	if dictionary != d.Name {
		return nil, errors.New(errors.ErrCodeGenerator,
			"dictionary %s cannot draw markers of %s", d.Name, dictionary)
	}
	return d.Draw(id, side)
}

// Draw renders marker id as a side×side bitmap: the codeword cells inside a
// one-cell black border, scaled up with nearest-neighbour sampling so every
// pixel is pure black or pure white.
func (d *Dictionary) Draw(id, side int) (*image.Gray, error) {
	if id < 0 || id >= len(d.Codes) {
		return nil, errors.New(errors.ErrCodeGenerator,
			"marker id %d out of range for %s (%d markers)", id, d.Name, len(d.Codes))
	}
	cells := d.Cells()
	if side < cells {
		return nil, errors.New(errors.ErrCodeGenerator,
			"marker side %dpx is smaller than the %d cells of a %s marker", side, cells, d.Name)
	}

	small := raster.Filled(cells, cells, raster.Black)
	code := d.Codes[id]
	for r := 0; r < d.MarkerSize; r++ {
		for c := 0; c < d.MarkerSize; c++ {
			if code.Cell(d.MarkerSize, r, c) {
				small.SetGray(c+1, r+1, raster.White)
			}
		}
	}
	if side == cells {
		return small, nil
	}
	return raster.Gray(imaging.Resize(small, side, side, imaging.NearestNeighbor)), nil
}
