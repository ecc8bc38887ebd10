// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package log

import (
	"log/slog"
)

// Err returns an Attr for the given error value.
// The error value is resolved as a string by its Error() method.
// If error value is nil, the constant "no-error" value will be used.
func Err(key string, value error) slog.Attr {
	if value == nil {
		return slog.String(key, "no-error")
	}
	return slog.String(key, value.Error())
}

// Plugin returns an Attr for the name of a registry entry.
func Plugin(name string) slog.Attr {
	return slog.String("plugin", name)
}

// Transition returns a group Attr reporting a version change from the
// `from` version to the `to` version.
func Transition(from, to string) slog.Attr {
	return slog.Group("version",
		slog.String("from", from),
		slog.String("to", to),
	)
}

// DryRun returns an Attr for the dry-run mode of an operation.
func DryRun(dryRun bool) slog.Attr {
	return slog.Bool("dry_run", dryRun)
}

// String returns an Attr for a plain string value.
func String(key, value string) slog.Attr {
	return slog.String(key, value)
}

// Invocation returns an Attr which identifies all records of one
// command or request invocation.
func Invocation(id string) slog.Attr {
	return slog.String("invocation", id)
}
