// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

import (
	"log/slog"
	"strings"
	"time"
)

// Duration is a time.Duration setting which is written back into the
// configuration files in its shortest form, e.g., 5m instead of 5m0s.
type Duration time.Duration

// String formats d like time.Duration.String but drops the zero minutes
// and seconds which trail a non-zero hours or minutes component.
func (d Duration) String() string {
	s := time.Duration(d).String()
	if t, ok := strings.CutSuffix(s, "m0s"); ok {
		s = t + "m"
	}
	if t, ok := strings.CutSuffix(s, "h0m"); ok {
		s = t + "h"
	}
	return s
}

// Marshal returns d.String() in a newly allocated string, or nil if
// d is nil, so an unset setting stays unset in the serialized form.
func (d *Duration) Marshal() *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

// MarshalText encodes d using its String method.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText accepts the time.ParseDuration format. The d receiver
// is only updated when data could be parsed.
func (d *Duration) UnmarshalText(data []byte) error {
	td, err := time.ParseDuration(string(data))
	if err != nil {
		return err
	}
	*d = Duration(td)
	return nil
}

// LogValue logs d as a slog duration value.
func (d Duration) LogValue() slog.Value {
	return slog.DurationValue(time.Duration(d))
}
