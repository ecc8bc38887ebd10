// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// parseJSON decodes data as a single JSON value and converts it to
// a tree of yaml.Node instances, keeping the objects keys order and
// the literal form of numbers. The decoder tokens do not check the
// separators between values, so data is validated as a whole first.
func parseJSON(data []byte) (*yaml.Node, error) {
	if !json.Valid(data) {
		return nil, errors.New("parsing json: invalid syntax")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	n, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("parsing json: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("parsing json: trailing data after value")
	}
	return n, nil
}

func decodeValue(dec *json.Decoder) (*yaml.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	case string:
		return scalar("!!str", t), nil
	case json.Number:
		tag := "!!int"
		if strings.ContainsAny(string(t), ".eE") {
			tag = "!!float"
		}
		// the decoder may share t with its read buffer
		return scalar(tag, strings.Clone(string(t))), nil
	case float64:
		return scalar("!!float", strconv.FormatFloat(t, 'g', -1, 64)), nil
	case bool:
		return scalar("!!bool", strconv.FormatBool(t)), nil
	case nil:
		return scalar("!!null", "null"), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeObject(dec *json.Decoder) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key %v is not a string", tok)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		n.Content = append(n.Content, scalar("!!str", key), v)
	}
	if _, err := dec.Token(); err != nil { // the closing '}'
		return nil, err
	}
	return n, nil
}

func decodeArray(dec *json.Decoder) (*yaml.Node, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for i := 0; dec.More(); i++ {
		v, err := decodeValue(dec)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		n.Content = append(n.Content, v)
	}
	if _, err := dec.Token(); err != nil { // the closing ']'
		return nil, err
	}
	return n, nil
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

const indentUnit = "  "

// writeJSON writes n as an indented JSON value into buf, assuming that
// n starts at the given nesting depth.
func writeJSON(buf *bytes.Buffer, n *yaml.Node, depth int) error {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) != 1 {
			return errors.New("empty document node")
		}
		return writeJSON(buf, n.Content[0], depth)
	case yaml.MappingNode:
		if len(n.Content) == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteString("{\n")
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteString(",\n")
			}
			buf.WriteString(strings.Repeat(indentUnit, depth+1))
			if err := writeString(buf, n.Content[i].Value); err != nil {
				return err
			}
			buf.WriteString(": ")
			if err := writeJSON(buf, n.Content[i+1], depth+1); err != nil {
				return err
			}
		}
		buf.WriteString("\n" + strings.Repeat(indentUnit, depth) + "}")
		return nil
	case yaml.SequenceNode:
		if len(n.Content) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteString("[\n")
		for i, item := range n.Content {
			if i > 0 {
				buf.WriteString(",\n")
			}
			buf.WriteString(strings.Repeat(indentUnit, depth+1))
			if err := writeJSON(buf, item, depth+1); err != nil {
				return err
			}
		}
		buf.WriteString("\n" + strings.Repeat(indentUnit, depth) + "]")
		return nil
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!int", "!!float", "!!bool":
			buf.WriteString(n.Value)
		case "!!null":
			buf.WriteString("null")
		default:
			return writeString(buf, n.Value)
		}
		return nil
	default:
		return fmt.Errorf("unsupported yaml node kind %d", n.Kind)
	}
}

// writeString writes s as a quoted JSON string without escaping the
// HTML characters (like <, >, and &) and non-ASCII characters.
func writeString(buf *bytes.Buffer, s string) error {
	b, err := json.MarshalNoEscape(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
