package cubenet

// Grid dimensions of the cube net.
const (
	Rows = 4
	Cols = 3
)

// Face names a side of the folded cube.
type Face string

// Cube faces.
const (
	FaceLeft   Face = "left"
	FaceBottom Face = "bottom"
	FaceFront  Face = "front"
	FaceTop    Face = "top"
	FaceBack   Face = "back"
	FaceRight  Face = "right"
)

// Faces lists the faces in the order they are assigned to active cells.
var Faces = [...]Face{FaceLeft, FaceBottom, FaceFront, FaceTop, FaceBack, FaceRight}

// Cell is a (row, column) position in the grid.
type Cell struct {
	Row, Col int
}

// Assignment binds a face to its marker id and grid cell.
type Assignment struct {
	Face Face
	ID   int
	Cell Cell
}

// Active reports whether (row, col) holds a marker: the middle row or the
// middle column of the grid.
func Active(row, col int) bool {
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return false
	}
	return row == 1 || col == 1
}

// ActiveCells returns the active cells in row-major order.
func ActiveCells() []Cell {
	var cells []Cell
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if Active(r, c) {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// Assign pairs active cells with faces and sequential ids starting at 0.
func Assign() []Assignment {
	cells := ActiveCells()
	out := make([]Assignment, len(cells))
	for i, cell := range cells {
		out[i] = Assignment{Face: Faces[i], ID: i, Cell: cell}
	}
	return out
}
