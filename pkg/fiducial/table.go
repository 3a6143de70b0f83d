package fiducial

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/markercube/pkg/errors"
)

// table is the YAML form of a dictionary.
type table struct {
	Name       string   `yaml:"name"`
	MarkerSize int      `yaml:"marker_size"`
	Codes      []string `yaml:"codes"`
}

// Read decodes a YAML codeword table and validates it.
func Read(r io.Reader) (*Dictionary, error) {
	var t table
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDictionary, err, "decode codeword table")
	}
	if t.MarkerSize < MinMarkerSize || t.MarkerSize > MaxMarkerSize {
		return nil, errors.New(errors.ErrCodeInvalidDictionary,
			"dictionary %s: marker size %d outside [%d, %d]", t.Name, t.MarkerSize, MinMarkerSize, MaxMarkerSize)
	}

	d := &Dictionary{Name: t.Name, MarkerSize: t.MarkerSize, Codes: make([]Code, len(t.Codes))}
	for i, s := range t.Codes {
		c, err := ParseCode(s, t.MarkerSize)
		if err != nil {
			return nil, fmt.Errorf("dictionary %s code %d: %w", t.Name, i, err)
		}
		d.Codes[i] = c
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Write encodes d as a YAML codeword table.
func Write(w io.Writer, d *Dictionary) error {
	t := table{Name: d.Name, MarkerSize: d.MarkerSize, Codes: make([]string, len(d.Codes))}
	for i, c := range d.Codes {
		t.Codes[i] = c.Format(d.MarkerSize)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}

// Load reads a codeword table from path.
func Load(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDictionary, err, "read %s", path)
	}
	return Read(bytes.NewReader(data))
}

// Save writes d as a codeword table to path.
func Save(path string, d *Dictionary) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", path)
	}
	if err := Write(f, d); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "close %s", path)
	}
	return nil
}
