// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/momeni/pvctl/pkg/core/model"
)

// Units is the per-plugin sidecar manifests store, keyed by the plugin
// name.
//
// Load returns found=false (and a nil error) if the named unit has no
// manifest at all, since absence is a normal and reportable condition.
// A manifest which exists without a version field is returned with the
// model.VersionNotFound sentinel. Only a manifest which exists but can
// not be read or parsed yields an error (*cerr.UnitUnreadableError).
//
// Save rewrites the whole manifest of an existing unit, preserving its
// other fields and appending a single trailing newline.
type Units interface {
	Load(ctx context.Context, name string) (
		rec model.UnitRecord, found bool, err error,
	)
	Save(ctx context.Context, name string, rec model.UnitRecord) error
}
