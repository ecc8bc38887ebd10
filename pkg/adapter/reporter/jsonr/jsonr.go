// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package jsonr implements the reconuc.Reporter interface by writing
// each report as one indented JSON document. The same DTO types are
// used by the RESTful API, so both outputs are kept consistent.
package jsonr

import (
	"context"
	"io"

	"github.com/goccy/go-json"
	"github.com/momeni/pvctl/pkg/core/model"
	"github.com/momeni/pvctl/pkg/core/usecase/reconuc"
)

// Reporter writes the reports as JSON documents into its writer.
type Reporter struct {
	w io.Writer
}

var _ reconuc.Reporter = (*Reporter)(nil)

// New instantiates a JSON Reporter which writes into w.
func New(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

func (r *Reporter) encode(v any) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// ReportValidation writes the rep as a Validation document.
func (r *Reporter) ReportValidation(
	_ context.Context, rep *model.ValidationReport,
) error {
	return r.encode(NewValidation(rep))
}

// ReportSync writes the rep as a Sync document.
func (r *Reporter) ReportSync(_ context.Context, rep *model.SyncReport) error {
	return r.encode(NewSync(rep))
}

// ReportBump writes the rep as a Bump document.
func (r *Reporter) ReportBump(_ context.Context, rep *model.BumpReport) error {
	return r.encode(NewBump(rep))
}

// ReportBumpAll writes the rep as a BumpAll document.
func (r *Reporter) ReportBumpAll(
	_ context.Context, rep *model.BumpAllReport,
) error {
	return r.encode(NewBumpAll(rep))
}
