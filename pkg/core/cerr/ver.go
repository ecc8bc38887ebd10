// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cerr

import (
	"fmt"
)

// ParseError indicates that a version string could not be parsed since
// one of its considered components was not a non-negative integer.
// It is fatal for the operation which needed that version, but other
// entries of a sync or bump-all pass are processed independently.
type ParseError struct {
	Input     string // the whole version string
	Component string // the offending component
	Err       error  // the underlying strconv error
}

// Error returns a string representation of `pe` error instance.
func (pe *ParseError) Error() string {
	return fmt.Sprintf(
		"invalid version %q: component %q is not a non-negative integer",
		pe.Input, pe.Component,
	)
}

func (pe *ParseError) Unwrap() error {
	return pe.Err
}

// RegistryUnreadableError indicates that the registry manifest is
// missing, corrupt, or does not follow the expected structure.
// It aborts the whole invocation.
type RegistryUnreadableError struct {
	Path string
	Err  error
}

// Error returns a string representation of `rue` error instance.
func (rue *RegistryUnreadableError) Error() string {
	return fmt.Sprintf("registry %q is unreadable: %v", rue.Path, rue.Err)
}

func (rue *RegistryUnreadableError) Unwrap() error {
	return rue.Err
}

// PluginNotFoundError indicates that a bump target has no entry in the
// registry manifest.
type PluginNotFoundError struct {
	Name string
}

// Error returns a string representation of `pnfe` error instance.
func (pnfe *PluginNotFoundError) Error() string {
	return fmt.Sprintf("plugin not found in registry: %s", pnfe.Name)
}

// UnitUnreadableError indicates that a unit manifest exists, but it
// could not be read or parsed. An absent unit manifest is not an error.
type UnitUnreadableError struct {
	Name string
	Path string
	Err  error
}

// Error returns a string representation of `uue` error instance.
func (uue *UnitUnreadableError) Error() string {
	return fmt.Sprintf(
		"unit manifest of %s (%q) is unreadable: %v",
		uue.Name, uue.Path, uue.Err,
	)
}

func (uue *UnitUnreadableError) Unwrap() error {
	return uue.Err
}
