package cubenet

import (
	"context"
	"fmt"
	"image"
	"time"

	"golang.org/x/image/draw"

	"github.com/matzehuels/markercube/pkg/errors"
	"github.com/matzehuels/markercube/pkg/marker"
	"github.com/matzehuels/markercube/pkg/observability"
	"github.com/matzehuels/markercube/pkg/tilegrid"
)

// DefaultTileSize is the tile side in pixels when none is configured.
const DefaultTileSize = 100

// Metadata is the face→id record written next to the images.
type Metadata struct {
	Dictionary string
	Markers    []Assignment
}

// Sheet is the output of one build.
type Sheet struct {
	TileSize int

	// Composed is the cube net, Rows*TileSize tall and Cols*TileSize wide.
	Composed *image.Gray

	// Square is Composed centred horizontally on a black square canvas of
	// side Rows*TileSize.
	Square *image.Gray

	Metadata Metadata
}

// ValidateTileSize checks that tileSize yields a usable tile with the
// standard margin.
func ValidateTileSize(tileSize int) error {
	return marker.Validate(tileSize, marker.Margin(tileSize))
}

// Build renders the six markers with r and assembles the sheet.
func Build(ctx context.Context, r *marker.Renderer, tileSize int) (sheet *Sheet, err error) {
	if err := ValidateTileSize(tileSize); err != nil {
		return nil, err
	}
	margin := marker.Margin(tileSize)

	hooks := observability.Sheet()
	hooks.OnSheetStart(ctx, tileSize, r.Dictionary())
	start := time.Now()
	defer func() { hooks.OnSheetComplete(ctx, time.Since(start), err) }()

	grid, err := tilegrid.New(Rows, Cols, tileSize)
	if err != nil {
		return nil, err
	}

	assignments := Assign()
	for _, a := range assignments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		tile, err := r.Render(tileSize, a.ID, margin)
		if err != nil {
			return nil, fmt.Errorf("face %s: %w", a.Face, err)
		}
		if err := grid.SetTile(a.Cell.Row, a.Cell.Col, tile); err != nil {
			return nil, fmt.Errorf("face %s: %w", a.Face, err)
		}
		hooks.OnTileRendered(ctx, string(a.Face), a.ID, a.Cell.Row, a.Cell.Col)
	}

	composed := grid.Compose()
	square, err := Square(composed, tileSize)
	if err != nil {
		return nil, err
	}

	return &Sheet{
		TileSize: tileSize,
		Composed: composed,
		Square:   square,
		Metadata: Metadata{Dictionary: r.Dictionary(), Markers: assignments},
	}, nil
}

// SquareOffset is the left edge of the composed net on the square canvas.
// The canvas is one tile wider than the net, so half a tile on the left
// centres the net for printing on a square template.
func SquareOffset(tileSize int) int {
	return tileSize / 2
}

// Square copies composed onto a zero-filled canvas of side Rows*tileSize,
// starting at column SquareOffset(tileSize). composed must be the
// Rows*tileSize × Cols*tileSize output of a cube-net grid.
func Square(composed *image.Gray, tileSize int) (*image.Gray, error) {
	side := Rows * tileSize
	want := image.Pt(Cols*tileSize, Rows*tileSize)
	if got := composed.Bounds().Size(); got != want {
		return nil, errors.New(errors.ErrCodeShapeMismatch,
			"composed image is %dx%d, want %dx%d", got.X, got.Y, want.X, want.Y)
	}

	canvas := image.NewGray(image.Rect(0, 0, side, side))
	draw.Copy(canvas, image.Pt(SquareOffset(tileSize), 0), composed, composed.Bounds(), draw.Src, nil)
	return canvas, nil
}
