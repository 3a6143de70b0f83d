package io

import (
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/markercube/pkg/cubenet"
	"github.com/matzehuels/markercube/pkg/errors"
)

// Top-level keys of marker_info.yml.
const (
	keyDictionary = "aruco_dict"
	keyMarkers    = "markers"
)

// WriteMetadata encodes m as a YAML document with faces in assignment order.
func WriteMetadata(w io.Writer, m cubenet.Metadata) error {
	markers := &yaml.Node{Kind: yaml.MappingNode}
	for _, a := range m.Markers {
		markers.Content = append(markers.Content,
			scalar("!!str", string(a.Face)),
			scalar("!!int", strconv.Itoa(a.ID)),
		)
	}
	doc := &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			scalar("!!str", keyDictionary), scalar("!!str", m.Dictionary),
			scalar("!!str", keyMarkers), markers,
		},
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "encode metadata")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "encode metadata")
	}
	return nil
}

// ReadMetadata decodes a marker_info.yml document. Faces keep their order
// in the document; cells are filled in from the cube-net layout.
func ReadMetadata(r io.Reader) (cubenet.Metadata, error) {
	var doc struct {
		Dictionary string    `yaml:"aruco_dict"`
		Markers    yaml.Node `yaml:"markers"`
	}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return cubenet.Metadata{}, errors.Wrap(errors.ErrCodeIO, err, "decode metadata")
	}
	if doc.Markers.Kind != yaml.MappingNode {
		return cubenet.Metadata{}, errors.New(errors.ErrCodeIO, "metadata %q is not a mapping", keyMarkers)
	}

	cells := make(map[cubenet.Face]cubenet.Cell)
	for _, a := range cubenet.Assign() {
		cells[a.Face] = a.Cell
	}

	m := cubenet.Metadata{Dictionary: doc.Dictionary}
	content := doc.Markers.Content
	for i := 0; i+1 < len(content); i += 2 {
		face := cubenet.Face(content[i].Value)
		var id int
		if err := content[i+1].Decode(&id); err != nil {
			return cubenet.Metadata{}, errors.Wrap(errors.ErrCodeIO, err, "face %s", face)
		}
		cell, ok := cells[face]
		if !ok {
			return cubenet.Metadata{}, errors.New(errors.ErrCodeIO, "unknown face %q", face)
		}
		m.Markers = append(m.Markers, cubenet.Assignment{Face: face, ID: id, Cell: cell})
	}
	return m, nil
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}
