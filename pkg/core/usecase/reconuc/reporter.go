// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package reconuc

import (
	"context"

	"github.com/momeni/pvctl/pkg/core/model"
)

// Reporter is the boundary which receives the pure report of each
// operation. Rendering (as text or json), coloring, and mapping of the
// reports to process exit codes are performed by its implementations
// in the adapters layer, so use cases remain renderer-agnostic.
type Reporter interface {
	ReportValidation(ctx context.Context, r *model.ValidationReport) error
	ReportSync(ctx context.Context, r *model.SyncReport) error
	ReportBump(ctx context.Context, r *model.BumpReport) error
	ReportBumpAll(ctx context.Context, r *model.BumpAllReport) error
}

type nopReporter struct{}

func (nopReporter) ReportValidation(context.Context, *model.ValidationReport) error {
	return nil
}

func (nopReporter) ReportSync(context.Context, *model.SyncReport) error {
	return nil
}

func (nopReporter) ReportBump(context.Context, *model.BumpReport) error {
	return nil
}

func (nopReporter) ReportBumpAll(context.Context, *model.BumpAllReport) error {
	return nil
}
