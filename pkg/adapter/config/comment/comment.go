// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package comment carries the comments of a parsed YAML tree over to
// another tree with the same layout. The configuration files are
// decoded into structs, which drop comments, and later encoded again
// from structs, e.g., by the config command. Comments are recorded by
// the path of their nodes, so they are restored wherever the encoded
// tree still has a node at the same path.
package comment

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Comment holds the head, line, and foot comments of a YAML tree.
// A nil *Comment holds no comments.
type Comment struct {
	notes map[string]note
}

type note struct {
	head, line, foot string
}

// LoadFrom records the comments of the n mapping or sequence node and
// of all of its descendants. A document node holding such a collection
// is also accepted, its head comment is kept as a part of the head
// comment of its collection.
func LoadFrom(n *yaml.Node) (*Comment, error) {
	var docHead string
	if n.Kind == yaml.DocumentNode && len(n.Content) == 1 {
		docHead, n = n.HeadComment, n.Content[0]
	}
	if err := expectCollection(n); err != nil {
		return nil, err
	}
	c := &Comment{notes: make(map[string]note)}
	walk(n, "", func(path string, n *yaml.Node) {
		nt := note{n.HeadComment, n.LineComment, n.FootComment}
		if nt != (note{}) {
			c.notes[path] = nt
		}
	})
	if docHead != "" {
		nt := c.notes[""]
		if nt.head != "" {
			docHead += "\n\n" + nt.head
		}
		nt.head = docHead
		c.notes[""] = nt
	}
	return c, nil
}

// SaveInto writes the recorded comments into the matching nodes of the
// n mapping or sequence node. Nodes without a recorded comment are not
// modified, and recorded comments without a matching node are skipped.
func (c *Comment) SaveInto(n *yaml.Node) error {
	if err := expectCollection(n); err != nil {
		return err
	}
	if c == nil || len(c.notes) == 0 {
		return nil
	}
	walk(n, "", func(path string, n *yaml.Node) {
		if nt, ok := c.notes[path]; ok {
			n.HeadComment, n.LineComment, n.FootComment =
				nt.head, nt.line, nt.foot
		}
	})
	return nil
}

// Len returns the number of nodes which had a comment.
func (c *Comment) Len() int {
	if c == nil {
		return 0
	}
	return len(c.notes)
}

func expectCollection(n *yaml.Node) error {
	switch n.Kind {
	case yaml.MappingNode, yaml.SequenceNode:
		return nil
	default:
		return fmt.Errorf(
			"expected a mapping or sequence node (kind=%d)", n.Kind,
		)
	}
}

// walk calls visit for n and its descendants in document order. Keys
// and values of a mapping are both visited, since yaml.v3 attaches the
// head comment of an entry to its key and the line comment of a scalar
// entry to its value.
func walk(n *yaml.Node, path string, visit func(string, *yaml.Node)) {
	visit(path, n)
	switch n.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			p := path + "." + strconv.Quote(k.Value)
			visit(p+"#key", k)
			walk(v, p, visit)
		}
	case yaml.SequenceNode:
		for i, item := range n.Content {
			walk(item, path+"["+strconv.Itoa(i)+"]", visit)
		}
	}
}
