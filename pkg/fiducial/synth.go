package fiducial

import (
	"math/bits"
	"math/rand/v2"

	"github.com/matzehuels/markercube/pkg/errors"
)

const (
	// DefaultSeed seeds the codeword stream of every built-in dictionary.
	DefaultSeed = uint64(42)

	// SynthesisVersion changes whenever Synthesize would produce different
	// codes for the same inputs. It is part of the cache key.
	SynthesisVersion = 1

	// maxUnproductive is the number of consecutive rejected candidates after
	// which the acceptance threshold is lowered.
	maxUnproductive = 5000

	// maxCandidates bounds the total work of one synthesis.
	maxCandidates = 50_000_000
)

// Synthesize builds a dictionary of count codewords with markerSize×markerSize
// cells.
//
// Candidates are drawn from a PCG stream seeded by seed and markerSize. A
// candidate is accepted when its distance to itself under rotation and to
// every accepted code under all rotations reaches the current threshold. The
// threshold starts at two thirds of the cell count and drops by one after
// maxUnproductive consecutive rejections, never below one. Acceptance does
// not depend on count, so a smaller dictionary is a prefix of a larger one.
func Synthesize(name string, markerSize, count int, seed uint64) (*Dictionary, error) {
	if markerSize < MinMarkerSize || markerSize > MaxMarkerSize {
		return nil, errors.New(errors.ErrCodeInvalidDictionary,
			"marker size %d outside [%d, %d]", markerSize, MinMarkerSize, MaxMarkerSize)
	}
	if count <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidDictionary, "dictionary size must be positive, got %d", count)
	}

	n := markerSize
	mask := codeMask(n)
	rng := rand.New(rand.NewPCG(seed, uint64(n)))

	threshold := n * n * 2 / 3
	if threshold < 1 {
		threshold = 1
	}

	codes := make([]Code, 0, count)
	rotations := make([][4]Code, 0, count)
	unproductive := 0
	for tries := 0; len(codes) < count; tries++ {
		if tries >= maxCandidates {
			return nil, errors.New(errors.ErrCodeInvalidDictionary,
				"could not find %d distinct %dx%d codes (found %d)", count, n, n, len(codes))
		}

		candidate := Code(rng.Uint64()) & mask
		if accept(candidate, rotations, n, threshold) {
			codes = append(codes, candidate)
			rotations = append(rotations, rotationsOf(candidate, n))
			unproductive = 0
			continue
		}

		unproductive++
		if unproductive >= maxUnproductive && threshold > 1 {
			threshold--
			unproductive = 0
		}
	}

	return &Dictionary{Name: name, MarkerSize: n, Codes: codes}, nil
}

func accept(candidate Code, accepted [][4]Code, n, threshold int) bool {
	if candidate.SelfDistance(n) < threshold {
		return false
	}
	for _, rots := range accepted {
		for _, r := range rots {
			if bits.OnesCount64(uint64(candidate^r)) < threshold {
				return false
			}
		}
	}
	return true
}

func rotationsOf(c Code, n int) [4]Code {
	var out [4]Code
	out[0] = c
	for k := 1; k < 4; k++ {
		out[k] = out[k-1].Rotate(n)
	}
	return out
}

// MinDistance returns the smallest rotation-aware distance between any two
// codes of d, or between a code and its own rotations.
func MinDistance(d *Dictionary) int {
	n := d.MarkerSize
	best := n * n
	for i, a := range d.Codes {
		if s := a.SelfDistance(n); s < best {
			best = s
		}
		for _, b := range d.Codes[i+1:] {
			if s := a.Distance(b, n); s < best {
				best = s
			}
		}
	}
	return best
}
