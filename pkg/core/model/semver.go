// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/momeni/pvctl/pkg/core/cerr"
)

// SemVer represents the numeric part of a plugin version, consisting of
// three components. First component indicates the major version.
// Incrementing it represents backward-incompatible changes. Second
// component is the minor version which represents backward compatible
// feature additions. The last component is the patch version.
//
// No pre-release or build metadata is considered because registry and
// unit manifests only declare released versions.
type SemVer [3]uint

// UnmarshalText deserializes text byte slice using the ParseVersion
// rules and fills the sv SemVer instance. The cosmetic prefix is
// dropped since SemVer does not record it. In case of errors, sv will
// be left unchanged.
func (sv *SemVer) UnmarshalText(text []byte) error {
	v, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*sv = v.SemVer
	return nil
}

// MarshalText implements encoding.TextMarshaler interface and
// serializes `sv` semantic version as its string representation.
func (sv *SemVer) MarshalText() ([]byte, error) {
	return []byte(sv.String()), nil
}

// String returns the sv semantic version as a dot-separated string
// consisting of three numbers like major.minor.patch where all numbers
// are non-negative.
func (sv SemVer) String() string {
	return fmt.Sprintf("%d.%d.%d", sv[0], sv[1], sv[2])
}

// VersionPrefix is the single cosmetic character which may precede
// a version string, as in v1.2.3.
const VersionPrefix = "v"

// Version is a parsed version string. It keeps the numeric triple which
// is used for all ordering decisions and remembers if the original
// string carried the cosmetic VersionPrefix, so String reproduces the
// original style.
type Version struct {
	SemVer
	Prefixed bool
}

// ParseVersion parses s into a Version. One leading VersionPrefix is
// stripped, the rest is split on dots, and at most three components are
// considered. Each considered component must be a non-negative decimal
// integer, otherwise, a *cerr.ParseError is returned.
//
// The policy is lenient on purpose and kept for compatibility with the
// existing manifests: components after the third are ignored without
// being parsed at all (1.2.3.4 is 1.2.3 and 1.2.3.x is 1.2.3 too), and
// missing trailing components are taken as zero (v1.2 is v1.2.0).
// A stricter validation should be added as a distinct function instead
// of changing this one.
func ParseVersion(s string) (Version, error) {
	v := Version{}
	rest := s
	if strings.HasPrefix(rest, VersionPrefix) {
		v.Prefixed = true
		rest = rest[len(VersionPrefix):]
	}
	parts := strings.Split(rest, ".")
	if len(parts) > len(v.SemVer) {
		parts = parts[:len(v.SemVer)]
	}
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 0)
		if err != nil {
			return Version{}, &cerr.ParseError{
				Input: s, Component: p, Err: err,
			}
		}
		v.SemVer[i] = uint(n)
	}
	return v, nil
}

// MustParseVersion is like ParseVersion but panics on errors.
// It simplifies the definition of constant versions in tests.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String formats v as major.minor.patch, prefixed by VersionPrefix if
// the parsed string was prefixed too.
func (v Version) String() string {
	if v.Prefixed {
		return VersionPrefix + v.SemVer.String()
	}
	return v.SemVer.String()
}

// Compare returns -1, 0, or +1 if v is less than, equal to, or greater
// than o respectively. Only the numeric triples participate, so the
// cosmetic prefix never affects the result and 1.10.0 > 1.2.3 holds.
func (v Version) Compare(o Version) int {
	return v.semver().Compare(o.semver())
}

func (v Version) semver() *semver.Version {
	sv, err := semver.NewVersion(v.SemVer.String())
	if err != nil {
		// three non-negative integers are always a valid semver
		panic(fmt.Sprintf("unexpected semver failure: %v", err))
	}
	return sv
}

// Increment returns a new Version which is obtained by incrementing the
// c component of v and resetting all components with less significance.
// The Prefixed flag of v is preserved.
func (v Version) Increment(c Component) Version {
	switch c {
	case ComponentMajor:
		v.SemVer = SemVer{v.SemVer[0] + 1, 0, 0}
	case ComponentMinor:
		v.SemVer = SemVer{v.SemVer[0], v.SemVer[1] + 1, 0}
	case ComponentPatch:
		v.SemVer[2]++
	default:
		panic("unexpected version component: " + string(c))
	}
	return v
}

// Component identifies one of the three SemVer components.
type Component string

// Supported components which may be incremented by a bump operation.
const (
	ComponentMajor Component = "major"
	ComponentMinor Component = "minor"
	ComponentPatch Component = "patch"
)

// ParseComponent converts s to a Component if it names one of the
// major, minor, or patch components.
func ParseComponent(s string) (Component, error) {
	switch c := Component(s); c {
	case ComponentMajor, ComponentMinor, ComponentPatch:
		return c, nil
	default:
		return "", fmt.Errorf(
			"invalid version component %q (want major, minor, or patch)",
			s,
		)
	}
}
