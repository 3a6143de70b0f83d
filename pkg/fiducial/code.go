package fiducial

import (
	"math/bits"
	"strings"

	"github.com/matzehuels/markercube/pkg/errors"
)

const (
	// MinMarkerSize and MaxMarkerSize bound the number of data cells per side.
	// A code must fit in 64 bits.
	MinMarkerSize = 2
	MaxMarkerSize = 8
)

// Code is a marker codeword: MarkerSize×MarkerSize cells in row-major order,
// bit (row*n + col) set for a white cell.
type Code uint64

// Cell reports whether the cell at (row, col) is white.
func (c Code) Cell(n, row, col int) bool {
	return c&(1<<uint(row*n+col)) != 0
}

// Rotate returns the code rotated 90 degrees clockwise.
func (c Code) Rotate(n int) Code {
	var out Code
	for r := 0; r < n; r++ {
		for col := 0; col < n; col++ {
			// new[r][col] = old[n-1-col][r]
			if c.Cell(n, n-1-col, r) {
				out |= 1 << uint(r*n+col)
			}
		}
	}
	return out
}

// Distance is the smallest Hamming distance between c and any rotation of o.
func (c Code) Distance(o Code, n int) int {
	best := bits.OnesCount64(uint64(c ^ o))
	for k := 1; k < 4; k++ {
		o = o.Rotate(n)
		if d := bits.OnesCount64(uint64(c ^ o)); d < best {
			best = d
		}
	}
	return best
}

// SelfDistance is the smallest Hamming distance between c and its own
// non-trivial rotations. Zero means the code is rotationally symmetric and a
// detector could not recover its orientation.
func (c Code) SelfDistance(n int) int {
	best := n * n
	r := c
	for k := 1; k < 4; k++ {
		r = r.Rotate(n)
		if d := bits.OnesCount64(uint64(c ^ r)); d < best {
			best = d
		}
	}
	return best
}

// Format renders the code as a row-major string of '0' and '1'.
func (c Code) Format(n int) string {
	var b strings.Builder
	b.Grow(n * n)
	for i := 0; i < n*n; i++ {
		if c&(1<<uint(i)) != 0 {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// ParseCode parses a row-major '0'/'1' string of length n*n.
func ParseCode(s string, n int) (Code, error) {
	if len(s) != n*n {
		return 0, errors.New(errors.ErrCodeInvalidDictionary,
			"code %q has %d cells, want %d", s, len(s), n*n)
	}
	var c Code
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '1':
			c |= 1 << uint(i)
		case '0':
		default:
			return 0, errors.New(errors.ErrCodeInvalidDictionary,
				"code %q has invalid cell %q at %d", s, s[i], i)
		}
	}
	return c, nil
}

func codeMask(n int) Code {
	if n*n == 64 {
		return ^Code(0)
	}
	return Code(1)<<uint(n*n) - 1
}
