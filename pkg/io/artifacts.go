package io

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/matzehuels/markercube/pkg/cubenet"
	"github.com/matzehuels/markercube/pkg/errors"
)

// Artifact file names.
const (
	TileImageFile   = "marker_tile.png"
	SquareImageFile = "marker_tiles_square.png"
	MetadataFile    = "marker_info.yml"
)

// stagingPrefix names the hidden directory artifacts are assembled in.
const stagingPrefix = ".markercube-"

// CheckDir verifies that dir exists and is a directory.
func CheckDir(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return errors.New(errors.ErrCodeInvalidPath, "output directory %s does not exist", dir)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "stat %s", dir)
	}
	if !info.IsDir() {
		return errors.New(errors.ErrCodeInvalidPath, "%s is not a directory", dir)
	}
	return nil
}

type artifact struct {
	name  string
	write func(io.Writer) error
}

func artifactsOf(sheet *cubenet.Sheet) []artifact {
	return []artifact{
		{TileImageFile, func(w io.Writer) error { return EncodePNG(w, sheet.Composed) }},
		{SquareImageFile, func(w io.Writer) error { return EncodePNG(w, sheet.Square) }},
		{MetadataFile, func(w io.Writer) error { return WriteMetadata(w, sheet.Metadata) }},
	}
}

// WriteArtifacts writes the sheet's three artifacts into dir and returns
// their paths. Either all three are written or none is.
func WriteArtifacts(dir string, sheet *cubenet.Sheet) ([]string, error) {
	if err := CheckDir(dir); err != nil {
		return nil, err
	}

	staging := filepath.Join(dir, stagingPrefix+uuid.NewString())
	if err := os.Mkdir(staging, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "create staging directory")
	}
	defer os.RemoveAll(staging)

	arts := artifactsOf(sheet)
	for _, a := range arts {
		if err := writeFile(filepath.Join(staging, a.name), a.write); err != nil {
			return nil, err
		}
	}

	var placed []string
	for _, a := range arts {
		dst := filepath.Join(dir, a.name)
		if err := os.Rename(filepath.Join(staging, a.name), dst); err != nil {
			for _, p := range placed {
				_ = os.Remove(p)
			}
			return nil, errors.Wrap(errors.ErrCodeIO, err, "move %s into place", a.name)
		}
		placed = append(placed, dst)
	}
	return placed, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", filepath.Base(path))
	}
	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", filepath.Base(path))
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "close %s", filepath.Base(path))
	}
	return nil
}
