// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package settings holds the building blocks which every configuration
// format version shares. A setting is kept as a pointer while it is
// optional, so nil stands for "not given in the file" until Default
// fills it. Command line flags are applied afterwards with Override.
package settings

// Default points *dst to a copy of v unless *dst was already set.
func Default[T any](dst **T, v T) {
	if *dst == nil {
		*dst = &v
	}
}

// Override points *dst to a copy of v, dropping the previous value.
// The previous T instance is left untouched, so other holders of that
// pointer keep seeing the loaded value.
func Override[T any](dst **T, v T) {
	*dst = &v
}
