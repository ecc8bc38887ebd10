// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

// VersionNotFound is the sentinel version of a unit record whose
// manifest exists but has no version field. It is distinct from an
// absent unit record which has no manifest at all.
const VersionNotFound = "NOT_FOUND"

// RegistryEntry is one managed plugin as declared by the central
// registry manifest.
type RegistryEntry struct {
	Name    string
	Version string
}

// Registry is the ordered list of registry entries. The order is the
// declaration order of the registry manifest and must be preserved when
// it is written back. Entry names are unique.
//
// This model layer struct is independent of the registry manifest
// format. A repository package is responsible to convert between them
// and to preserve the manifest fields which are not represented here.
type Registry struct {
	Entries []RegistryEntry
}

// Lookup returns the index of the entry which is named name, or -1 if
// there is no such entry.
func (r *Registry) Lookup(name string) int {
	for i, e := range r.Entries {
		if e.Name == name {
			return i
		}
	}
	return -1
}

// Names returns the entry names in their declaration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		names = append(names, e.Name)
	}
	return names
}

// UnitRecord is the version which a plugin declares for itself in its
// own sidecar manifest.
type UnitRecord struct {
	Version string
}

// HasVersion reports if the unit manifest had a version field.
func (ur UnitRecord) HasVersion() bool {
	return ur.Version != VersionNotFound
}
