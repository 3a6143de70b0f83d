// Package cubenet lays six fiducial markers out as the net of a cube.
//
// # Layout
//
// The sheet is a 4×3 grid of tiles. A cell is active, and receives a marker,
// when it is in the middle row or the middle column:
//
//	    . X .        row 0
//	    X X X        row 1
//	    . X .        row 2
//	    . X .        row 3
//
// Cut out and folded, the six active tiles form a cube. Cells are visited in
// row-major order; the k-th active cell gets marker id k and the k-th name
// of [Faces]. That pairing of grid position and face name is what a
// consumer of marker_info.yml relies on, so the order never changes:
//
//	left   -> (0,1)    bottom -> (1,0)    front -> (1,1)
//	top    -> (1,2)    back   -> (2,1)    right -> (3,1)
//
// # Pipeline
//
// [Build] validates the tile size, renders each active tile, composes the
// grid, pads the result to a square and returns a [Sheet]. Any failure
// aborts the whole build; a sheet missing a face is never returned.
package cubenet
