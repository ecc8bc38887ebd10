// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package comment_test

import (
	"fmt"
	"testing"

	"github.com/momeni/pvctl/pkg/adapter/config/comment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func parse(t require.TestingT, src string) *yaml.Node {
	n := &yaml.Node{}
	require.NoError(t, yaml.Unmarshal([]byte(src), n))
	require.Len(t, n.Content, 1)
	return n.Content[0]
}

func TestRoundTrip(t *testing.T) {
	src := `registry:
  # relative to the root
  path: plugins.json
units:
  - name: alpha # first
  # then beta
  - name: beta
`
	c, err := comment.LoadFrom(parse(t, src))
	require.NoError(t, err)
	assert.NotZero(t, c.Len())

	var v struct {
		Registry struct {
			Path string `yaml:"path"`
		} `yaml:"registry"`
		Units []struct {
			Name string `yaml:"name"`
		} `yaml:"units"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(src), &v))
	v.Registry.Path = "registry.json"
	n := &yaml.Node{}
	require.NoError(t, n.Encode(&v))
	require.NoError(t, c.SaveInto(n))
	b, err := yaml.Marshal(n)
	require.NoError(t, err)
	assert.Contains(t, string(b), "# relative to the root\n")
	assert.Contains(t, string(b), "path: registry.json\n")
	assert.Contains(t, string(b), "alpha # first\n")
	assert.Contains(t, string(b), "# then beta\n")
}

func TestMissingNodesAreSkipped(t *testing.T) {
	c, err := comment.LoadFrom(parse(t, "a:\n  # gone\n  b: 1\n"))
	require.NoError(t, err)

	n := parse(t, "a: 1\nc: 2\n")
	require.NoError(t, c.SaveInto(n))
	b, err := yaml.Marshal(n)
	require.NoError(t, err)
	assert.Equal(t, "a: 1\nc: 2\n", string(b))
}

func TestScalarsAreRejected(t *testing.T) {
	_, err := comment.LoadFrom(parse(t, "plain"))
	assert.Error(t, err)
	_, err = comment.LoadFrom(&yaml.Node{Kind: yaml.DocumentNode})
	assert.Error(t, err)

	var c *comment.Comment
	assert.NoError(t, c.SaveInto(parse(t, "a: 1")))
	assert.Error(t, c.SaveInto(parse(t, "plain")))
	assert.Zero(t, c.Len())
}

func ExampleComment_SaveInto() {
	src := &yaml.Node{}
	if err := yaml.Unmarshal([]byte("# the port\nport: 80\n"), src); err != nil {
		panic(err)
	}
	c, err := comment.LoadFrom(src)
	if err != nil {
		panic(err)
	}
	dst := &yaml.Node{}
	if err := dst.Encode(map[string]int{"port": 8080}); err != nil {
		panic(err)
	}
	if err := c.SaveInto(dst); err != nil {
		panic(err)
	}
	b, err := yaml.Marshal(dst)
	if err != nil {
		panic(err)
	}
	fmt.Print(string(b))
	// Output:
	// # the port
	// port: 8080
}
