// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package document provides an editable representation of JSON and
// YAML manifest files. A manifest is parsed as a tree of yaml.Node
// instances (regardless of its format) which keeps the order of all
// mapping keys, their scalar literals, and (for YAML) their comments.
// Callers may query and update a few string fields and then marshal the
// whole document again, so the fields which are unknown to them are
// preserved intact and rewriting a document without changing it yields
// a stable output.
//
// JSON documents are written with two spaces of indentation, without
// escaping the non-ASCII or HTML characters, and with a single trailing
// newline. YAML documents are written by the yaml.v3 encoder with two
// spaces of indentation.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the serialization format of a manifest document.
type Format int

// Supported manifest formats.
const (
	JSON Format = iota
	YAML
)

// String returns the lowercase name of f format.
func (f Format) String() string {
	if f == YAML {
		return "yaml"
	}
	return "json"
}

// FormatOf detects the manifest format from the path file extension.
// The .yaml and .yml extensions denote YAML and all other files are
// taken as JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	default:
		return JSON
	}
}

// Document is a parsed manifest whose top-level value is a mapping.
type Document struct {
	format Format
	root   *yaml.Node // a yaml.MappingNode
}

// Parse parses data with the f format. The top-level value must be
// a mapping (i.e., a JSON object).
func Parse(data []byte, f Format) (*Document, error) {
	var root *yaml.Node
	var err error
	switch f {
	case YAML:
		root, err = parseYAML(data)
	default:
		root, err = parseJSON(data)
	}
	if err != nil {
		return nil, err
	}
	if root.Kind != yaml.MappingNode {
		return nil, errors.New("top-level value is not a mapping")
	}
	return &Document{format: f, root: root}, nil
}

func parseYAML(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, errors.New("empty yaml document")
	}
	return doc.Content[0], nil
}

// Format returns the format which d was parsed with.
func (d *Document) Format() Format {
	return d.format
}

// Root returns the top-level mapping of d.
func (d *Document) Root() Map {
	return Map{n: d.root}
}

// Marshal serializes the whole document with its original format.
// The output always ends with a single newline character.
func (d *Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	switch d.format {
	case YAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(d.root); err != nil {
			return nil, fmt.Errorf("encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("closing yaml encoder: %w", err)
		}
	default:
		if err := writeJSON(&buf, d.root, 0); err != nil {
			return nil, fmt.Errorf("encoding json: %w", err)
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// Map is a mapping node of a document.
type Map struct {
	n *yaml.Node
}

// lookup returns the value node of the key field or nil if m has no
// such key.
func (m Map) lookup(key string) *yaml.Node {
	for i := 0; i+1 < len(m.n.Content); i += 2 {
		if m.n.Content[i].Value == key {
			return m.n.Content[i+1]
		}
	}
	return nil
}

// String returns the literal value of the key field. The found result
// is false if m has no such key. Non-string scalars (e.g., an unquoted
// 1.0 version in a YAML manifest) are returned with their literal form,
// while nulls, lists, and mappings yield an error.
func (m Map) String(key string) (value string, found bool, err error) {
	v := m.lookup(key)
	if v == nil {
		return "", false, nil
	}
	if v.Kind != yaml.ScalarNode || v.ShortTag() == "!!null" {
		return "", true, fmt.Errorf("field %q is not a string", key)
	}
	return v.Value, true, nil
}

// SetString updates the key field value to the given string value.
// If m has no key field, it is appended as the last field.
// Comments of an existing field are kept and an existing scalar which
// has the same literal value is not touched at all.
func (m Map) SetString(key, value string) {
	if v := m.lookup(key); v != nil {
		if v.Kind == yaml.ScalarNode && v.Value == value {
			return
		}
		hc, lc, fc := v.HeadComment, v.LineComment, v.FootComment
		*v = yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!str",
			Value: value,
			Style: v.Style & (yaml.DoubleQuotedStyle | yaml.SingleQuotedStyle),
		}
		v.HeadComment, v.LineComment, v.FootComment = hc, lc, fc
		return
	}
	m.n.Content = append(m.n.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value},
	)
}

// Maps returns the mapping items of the key field which must be
// a sequence of mappings. The found result is false if m has no such
// key.
func (m Map) Maps(key string) (items []Map, found bool, err error) {
	v := m.lookup(key)
	if v == nil {
		return nil, false, nil
	}
	if v.Kind != yaml.SequenceNode {
		return nil, true, fmt.Errorf("field %q is not a list", key)
	}
	items = make([]Map, 0, len(v.Content))
	for i, item := range v.Content {
		if item.Kind != yaml.MappingNode {
			return nil, true, fmt.Errorf(
				"item %d of field %q is not a mapping", i, key,
			)
		}
		items = append(items, Map{n: item})
	}
	return items, true, nil
}
