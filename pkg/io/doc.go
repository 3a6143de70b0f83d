// Package io writes a cube-net sheet to disk.
//
// # Artifacts
//
// A sheet produces three files in the output directory:
//
//   - marker_tile.png: the composed cube net, 8-bit grayscale
//   - marker_tiles_square.png: the net centred on a square black canvas
//   - marker_info.yml: the dictionary name and the face→id mapping
//
// # Metadata Format
//
// marker_info.yml lists faces in assignment order:
//
//	aruco_dict: GEN_4X4_250
//	markers:
//	  left: 0
//	  bottom: 1
//	  front: 2
//	  top: 3
//	  back: 4
//	  right: 5
//
// # Atomicity
//
// [WriteArtifacts] encodes every artifact into a hidden staging directory
// inside the output directory and only then moves them into place. If
// anything fails, no artifact of the failed run is left behind.
package io
