// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package repo defines the repository interfaces which the use cases
// layer expects from the adapters layer. Use cases only depend on these
// interfaces, so the manifests storage format may change freely.
package repo

import (
	"context"

	"github.com/momeni/pvctl/pkg/core/model"
)

// Registry is the central registry manifest store.
//
// Load reads the whole manifest and returns its entries in the
// declaration order. A missing, corrupt, or malformed manifest must be
// reported as a *cerr.RegistryUnreadableError.
//
// Save rewrites the whole manifest (not patching it incrementally),
// keeping the entries order and appending a single trailing newline.
// Manifest fields which are not represented by model.Registry must be
// preserved as they were loaded by the last Load call.
type Registry interface {
	Load(ctx context.Context) (*model.Registry, error)
	Save(ctx context.Context, r *model.Registry) error
}
