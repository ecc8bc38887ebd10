// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

import (
	"cmp"
	"fmt"
)

// Bounds is an inclusive range of acceptable values for a setting.
// A nil Min or Max leaves that side of the range open.
type Bounds[T cmp.Ordered] struct {
	Min, Max *T
}

// RangeError reports a setting whose value falls outside of its Bounds.
type RangeError[T cmp.Ordered] struct {
	Setting string
	Value   T
	Bounds  Bounds[T]
}

func (e *RangeError[T]) Error() string {
	b := e.Bounds
	switch {
	case b.Min != nil && b.Max != nil:
		return fmt.Sprintf(
			"%s: %v is out of range [%v, %v]",
			e.Setting, e.Value, *b.Min, *b.Max,
		)
	case b.Min != nil:
		return fmt.Sprintf(
			"%s: %v is less than %v", e.Setting, e.Value, *b.Min,
		)
	default:
		return fmt.Sprintf(
			"%s: %v is greater than %v", e.Setting, e.Value, *b.Max,
		)
	}
}

// Check returns a *RangeError if v is set and lies outside of b.
// The setting argument names v in the returned error. Bounds with a
// Min greater than their Max are rejected regardless of v.
func (b Bounds[T]) Check(setting string, v *T) error {
	if b.Min != nil && b.Max != nil && *b.Min > *b.Max {
		return fmt.Errorf(
			"%s: empty range [%v, %v]", setting, *b.Min, *b.Max,
		)
	}
	if v == nil {
		return nil
	}
	if (b.Min != nil && *v < *b.Min) || (b.Max != nil && *v > *b.Max) {
		return &RangeError[T]{Setting: setting, Value: *v, Bounds: b}
	}
	return nil
}
