package io

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/markercube/pkg/cubenet"
	"github.com/matzehuels/markercube/pkg/errors"
	"github.com/matzehuels/markercube/pkg/fiducial"
	"github.com/matzehuels/markercube/pkg/marker"
	"github.com/matzehuels/markercube/pkg/raster"
)

func testSheet(t *testing.T, tileSize int) *cubenet.Sheet {
	t.Helper()
	d, err := fiducial.Synthesize("GEN_4X4_250", 4, 6, fiducial.DefaultSeed)
	if err != nil {
		t.Fatal(err)
	}
	sheet, err := cubenet.Build(context.Background(), marker.NewRenderer(d, d.Name), tileSize)
	if err != nil {
		t.Fatal(err)
	}
	return sheet
}

func TestWriteMetadata(t *testing.T) {
	m := cubenet.Metadata{Dictionary: "GEN_4X4_250", Markers: cubenet.Assign()}

	var buf bytes.Buffer
	if err := WriteMetadata(&buf, m); err != nil {
		t.Fatalf("WriteMetadata error: %v", err)
	}

	want := `aruco_dict: GEN_4X4_250
markers:
  left: 0
  bottom: 1
  front: 2
  top: 3
  back: 4
  right: 5
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("WriteMetadata mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteMetadataQuotesNumericName(t *testing.T) {
	m := cubenet.Metadata{Dictionary: "250", Markers: cubenet.Assign()}

	var buf bytes.Buffer
	if err := WriteMetadata(&buf, m); err != nil {
		t.Fatal(err)
	}
	got, err := ReadMetadata(&buf)
	if err != nil {
		t.Fatalf("ReadMetadata error: %v", err)
	}
	if got.Dictionary != "250" {
		t.Errorf("Dictionary = %q, want %q", got.Dictionary, "250")
	}
}

func TestReadMetadata(t *testing.T) {
	m := cubenet.Metadata{Dictionary: "4X4_250", Markers: cubenet.Assign()}

	var buf bytes.Buffer
	if err := WriteMetadata(&buf, m); err != nil {
		t.Fatal(err)
	}
	got, err := ReadMetadata(&buf)
	if err != nil {
		t.Fatalf("ReadMetadata error: %v", err)
	}
	if diff := cmp.Diff(m, got); diff != "" {
		t.Errorf("ReadMetadata mismatch (-want +got):\n%s", diff)
	}
}

func TestReadMetadataErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing markers", "aruco_dict: x\n"},
		{"markers not mapping", "aruco_dict: x\nmarkers: [1, 2]\n"},
		{"unknown face", "aruco_dict: x\nmarkers:\n  side: 0\n"},
		{"non-integer id", "aruco_dict: x\nmarkers:\n  left: zero\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadMetadata(strings.NewReader(tt.doc)); !errors.Is(err, errors.ErrCodeIO) {
				t.Errorf("ReadMetadata error = %v, want IO_FAILED", err)
			}
		})
	}
}

func TestEncodePNGGray(t *testing.T) {
	src := raster.Filled(4, 3, raster.White)
	src.SetGray(1, 1, raster.Black)

	var buf bytes.Buffer
	if err := EncodePNG(&buf, src); err != nil {
		t.Fatalf("EncodePNG error: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode error: %v", err)
	}
	gray, ok := img.(*image.Gray)
	if !ok {
		t.Fatalf("decoded %T, want *image.Gray", img)
	}
	if !raster.Equal(gray, src) {
		t.Error("decoded PNG differs from source")
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	sheet := testSheet(t, 40)

	paths, err := WriteArtifacts(dir, sheet)
	if err != nil {
		t.Fatalf("WriteArtifacts error: %v", err)
	}
	want := []string{
		filepath.Join(dir, TileImageFile),
		filepath.Join(dir, SquareImageFile),
		filepath.Join(dir, MetadataFile),
	}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}

	for name, wantSize := range map[string]image.Point{
		TileImageFile:   image.Pt(120, 160),
		SquareImageFile: image.Pt(160, 160),
	} {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		cfg, err := png.DecodeConfig(f)
		f.Close()
		if err != nil {
			t.Fatalf("DecodeConfig(%s) error: %v", name, err)
		}
		if got := image.Pt(cfg.Width, cfg.Height); got != wantSize {
			t.Errorf("%s size = %v, want %v", name, got, wantSize)
		}
	}

	f, err := os.Open(filepath.Join(dir, MetadataFile))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	m, err := ReadMetadata(f)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(sheet.Metadata, m); diff != "" {
		t.Errorf("metadata mismatch (-want +got):\n%s", diff)
	}

	// The staging directory is gone.
	entries, _ := os.ReadDir(dir)
	if len(entries) != 3 {
		t.Errorf("output directory has %d entries, want 3", len(entries))
	}
}

func TestWriteArtifactsInvalidDir(t *testing.T) {
	sheet := testSheet(t, 20)

	missing := filepath.Join(t.TempDir(), "missing")
	if _, err := WriteArtifacts(missing, sheet); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("WriteArtifacts(missing) error = %v, want INVALID_PATH", err)
	}

	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := WriteArtifacts(file, sheet); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("WriteArtifacts(file) error = %v, want INVALID_PATH", err)
	}
}

func TestWriteArtifactsLeavesNothingOnFailure(t *testing.T) {
	dir := t.TempDir()
	sheet := testSheet(t, 20)

	// A directory occupying the metadata name makes the final move fail.
	if err := os.Mkdir(filepath.Join(dir, MetadataFile), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, MetadataFile, "keep"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := WriteArtifacts(dir, sheet); !errors.Is(err, errors.ErrCodeIO) {
		t.Fatalf("WriteArtifacts error = %v, want IO_FAILED", err)
	}

	for _, name := range []string{TileImageFile, SquareImageFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
			t.Errorf("%s should not exist after a failed write", name)
		}
	}
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), stagingPrefix) {
			t.Errorf("staging directory %s left behind", e.Name())
		}
	}
}
