// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/momeni/pvctl/pkg/core/cerr"
	"github.com/momeni/pvctl/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseVersion(t *testing.T) {
	for _, tc := range []struct {
		in       string
		expected model.SemVer
		prefixed bool
	}{
		{in: "1.2.3", expected: model.SemVer{1, 2, 3}},
		{in: "v1.2", expected: model.SemVer{1, 2, 0}, prefixed: true},
		{in: "1.2.3.4", expected: model.SemVer{1, 2, 3}},
		{in: "1.2.3.x", expected: model.SemVer{1, 2, 3}},
		{in: "7", expected: model.SemVer{7, 0, 0}},
		{in: "v0.0.0", expected: model.SemVer{0, 0, 0}, prefixed: true},
		{in: "10.20.30", expected: model.SemVer{10, 20, 30}},
	} {
		t.Run(tc.in, func(t *testing.T) {
			v, err := model.ParseVersion(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, v.SemVer)
			assert.Equal(t, tc.prefixed, v.Prefixed)
		})
	}
}

func TestParseVersionFailure(t *testing.T) {
	for _, tc := range []struct {
		in, component string
	}{
		{in: "", component: ""},
		{in: "v", component: ""},
		{in: "1.x.3", component: "x"},
		{in: "1.2.3-beta", component: "3-beta"},
		{in: "-1.0.0", component: "-1"},
		{in: "vv1.0.0", component: "v1"},
		{in: "1..3", component: ""},
	} {
		t.Run(tc.in, func(t *testing.T) {
			_, err := model.ParseVersion(tc.in)
			var pe *cerr.ParseError
			require.True(t, errors.As(err, &pe), "expected *cerr.ParseError")
			assert.Equal(t, tc.in, pe.Input)
			assert.Equal(t, tc.component, pe.Component)
		})
	}
}

func TestCompare(t *testing.T) {
	for _, tc := range []struct {
		a, b     string
		expected int
	}{
		{a: "1.10.0", b: "1.2.3", expected: 1},
		{a: "1.2.3", b: "1.10.0", expected: -1},
		{a: "2.0.0", b: "1.99.99", expected: 1},
		{a: "1.0.0", b: "v1.0.0", expected: 0},
		{a: "1.2", b: "1.2.0", expected: 0},
		{a: "0.0.9", b: "0.0.10", expected: -1},
	} {
		t.Run(fmt.Sprintf("%s vs %s", tc.a, tc.b), func(t *testing.T) {
			a := model.MustParseVersion(tc.a)
			b := model.MustParseVersion(tc.b)
			assert.Equal(t, tc.expected, a.Compare(b))
			assert.Equal(t, -tc.expected, b.Compare(a), "not antisymmetric")
		})
	}
}

func TestIncrement(t *testing.T) {
	for _, tc := range []struct {
		in       string
		c        model.Component
		expected string
	}{
		{in: "2.3.9", c: model.ComponentPatch, expected: "2.3.10"},
		{in: "2.3.9", c: model.ComponentMinor, expected: "2.4.0"},
		{in: "2.3.9", c: model.ComponentMajor, expected: "3.0.0"},
		{in: "v1.0.0", c: model.ComponentPatch, expected: "v1.0.1"},
		{in: "v1.2", c: model.ComponentMinor, expected: "v1.3.0"},
		{in: "1.2.3.4", c: model.ComponentPatch, expected: "1.2.4"},
	} {
		t.Run(fmt.Sprintf("%s+%s", tc.in, tc.c), func(t *testing.T) {
			v := model.MustParseVersion(tc.in)
			assert.Equal(t, tc.expected, v.Increment(tc.c).String())
		})
	}
	assert.Panics(t, func() {
		model.MustParseVersion("1.0.0").Increment("build")
	})
}

func TestParseComponent(t *testing.T) {
	for _, s := range []string{"major", "minor", "patch"} {
		c, err := model.ParseComponent(s)
		require.NoError(t, err)
		assert.Equal(t, model.Component(s), c)
	}
	for _, s := range []string{"", "MAJOR", "build", "pre"} {
		_, err := model.ParseComponent(s)
		assert.Error(t, err, "component %q must be rejected", s)
	}
}

func ExampleSemVer_UnmarshalText() {
	var v struct {
		Config model.SemVer `yaml:"config"`
	}
	if err := yaml.Unmarshal([]byte("config: v1.2"), &v); err != nil {
		panic(err)
	}
	fmt.Println(v.Config)
	// Output:
	// 1.2.0
}
