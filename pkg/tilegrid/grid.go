// Package tilegrid holds a fixed rows×cols grid of equal square tiles and
// composes them into one image.
//
// # Composition
//
// [Grid.Compose] lays the tiles of grid row i side by side as a vertical band
// at x = i*tileSize, stacking the tiles of that row top to bottom, and then
// transposes the whole strip. The result is rows*tileSize pixels tall and
// cols*tileSize wide: tile (i, j) lands in block row i, block column j,
// itself transposed.
package tilegrid

import (
	"image"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"github.com/matzehuels/markercube/pkg/errors"
	"github.com/matzehuels/markercube/pkg/raster"
)

// Grid is a rows×cols collection of tileSize×tileSize grayscale tiles.
// Every tile starts out solid white.
type Grid struct {
	rows, cols int
	tileSize   int
	tiles      [][]*image.Gray
}

// New allocates a grid of white tiles.
func New(rows, cols, tileSize int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "grid must have at least one cell, got %dx%d", rows, cols)
	}
	if tileSize <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "tile size must be positive, got %d", tileSize)
	}

	g := &Grid{rows: rows, cols: cols, tileSize: tileSize, tiles: make([][]*image.Gray, rows)}
	for r := range g.tiles {
		g.tiles[r] = make([]*image.Gray, cols)
		for c := range g.tiles[r] {
			g.tiles[r][c] = raster.Filled(tileSize, tileSize, raster.White)
		}
	}
	return g, nil
}

// Rows returns the number of grid rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of grid columns.
func (g *Grid) Cols() int { return g.cols }

// TileSize returns the side of every tile in pixels.
func (g *Grid) TileSize() int { return g.tileSize }

// Tile returns the tile at (row, col). The returned image is owned by the
// grid.
func (g *Grid) Tile(row, col int) (*image.Gray, error) {
	if err := g.checkCell(row, col); err != nil {
		return nil, err
	}
	return g.tiles[row][col], nil
}

// SetTile replaces the tile at (row, col) with a copy of tile. The tile must
// be exactly tileSize×tileSize.
func (g *Grid) SetTile(row, col int, tile *image.Gray) error {
	if err := g.checkCell(row, col); err != nil {
		return err
	}
	if got := tile.Bounds().Size(); got != image.Pt(g.tileSize, g.tileSize) {
		return errors.New(errors.ErrCodeShapeMismatch,
			"tile for cell (%d,%d) is %dx%d, want %dx%d", row, col, got.X, got.Y, g.tileSize, g.tileSize)
	}

	dst := image.NewGray(image.Rect(0, 0, g.tileSize, g.tileSize))
	draw.Copy(dst, image.Point{}, tile, tile.Bounds(), draw.Src, nil)
	g.tiles[row][col] = dst
	return nil
}

// Compose merges the grid into one image of rows*tileSize × cols*tileSize
// (height × width). It does not modify the grid.
func (g *Grid) Compose() *image.Gray {
	t := g.tileSize
	strip := image.NewGray(image.Rect(0, 0, g.rows*t, g.cols*t))
	for r, row := range g.tiles {
		for c, tile := range row {
			draw.Copy(strip, image.Pt(r*t, c*t), tile, tile.Bounds(), draw.Src, nil)
		}
	}
	return raster.Gray(imaging.Transpose(strip))
}

func (g *Grid) checkCell(row, col int) error {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return errors.New(errors.ErrCodeShapeMismatch,
			"cell (%d,%d) outside %dx%d grid", row, col, g.rows, g.cols)
	}
	return nil
}
