// Package fiducial produces square fiducial marker bitmaps.
//
// # Overview
//
// A fiducial marker is a grid of black and white cells surrounded by a one
// cell black border. The cell pattern is a codeword taken from a
// [Dictionary]; the codeword's index in the dictionary is the marker id a
// detector reports.
//
// The rest of markercube only sees the [Generator] interface:
//
//	img, err := gen.Marker("GEN_4X4_250", 3, 40)
//
// which returns a side×side grayscale bitmap. Swapping the pattern source
// (a different dictionary family, a table exported from another toolkit)
// never touches the grid or sheet code.
//
// # Dictionaries
//
// Built-in dictionaries (see [Builtins]) are synthesized deterministically
// by [Synthesize]: the same name always yields the same codewords, and a
// smaller dictionary of a family is a prefix of a larger one.
//
// Codeword tables can also be read from YAML with [Load], which is how an
// exact table from another toolkit is used:
//
//	name: 4X4_250
//	marker_size: 4
//	codes:
//	  - "1011010100110010"
//	  - ...
//
// Each code is row-major, one character per cell, "1" for a white cell.
//
// # Catalogue
//
// [Catalogue] implements [Generator] over a set of named dictionaries,
// synthesizing built-ins on first use and keeping them in a [cache.Cache].
package fiducial
