// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package jsonr_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/goccy/go-json"
	"github.com/momeni/pvctl/pkg/adapter/reporter/jsonr"
	"github.com/momeni/pvctl/pkg/core/model"
	"github.com/momeni/pvctl/pkg/core/usecase/reconuc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ExampleReporter_ReportBump() {
	r := jsonr.New(os.Stdout)
	_ = r.ReportBump(context.Background(), &model.BumpReport{
		Name:      "gamma",
		Component: model.ComponentPatch,
		From:      "0.1.0",
		To:        "0.1.1",
		DryRun:    true,
		Warning:   reconuc.UnitNotFoundWarning,
	})
	// Output:
	// {
	//   "plugin": "gamma",
	//   "component": "patch",
	//   "from": "0.1.0",
	//   "to": "0.1.1",
	//   "dry_run": true,
	//   "registry_updated": false,
	//   "plugin_json_found": false,
	//   "plugin_json_updated": false,
	//   "warning": "unit manifest not found, only the registry was updated"
	// }
}

func TestReportValidation(t *testing.T) {
	var buf bytes.Buffer
	err := jsonr.New(&buf).ReportValidation(context.Background(),
		&model.ValidationReport{
			Results: []model.ValidationResult{
				{
					Name: "a<b>", RegistryVersion: "1.0.0",
					UnitVersion: "1.0.0", Status: model.EntryMatch,
				},
				{
					Name: "c", RegistryVersion: "1.0.0",
					UnitVersion: model.VersionNotFound,
					Status:      model.EntryUnreadable,
					Err:         errors.New("corrupt"),
				},
			},
			Counts: model.ValidationCounts{Total: 2, Matching: 1, Unreadable: 1},
			Status: model.ValidationUnreadableFailure,
		},
	)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"plugin": "a<b>"`, "html is not escaped")

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "unreadable-failure", got["status"])
	assert.Equal(t, map[string]any{
		"total": 2.0, "matching": 1.0, "mismatched": 0.0,
		"missing": 0.0, "unreadable": 1.0,
	}, got["summary"])
	results := got["validation_results"].([]any)
	require.Len(t, results, 2)
	assert.Equal(t, map[string]any{
		"plugin":              "c",
		"marketplace_version": "1.0.0",
		"plugin_json_version": "NOT_FOUND",
		"status":              "UNREADABLE",
		"error":               "corrupt",
	}, results[1])
	assert.NotContains(t, results[0], "error")
}

func TestReportSync(t *testing.T) {
	var buf bytes.Buffer
	err := jsonr.New(&buf).ReportSync(context.Background(), &model.SyncReport{
		DryRun: true,
		Results: []model.SyncResult{
			{Name: "a", RegistryVersion: "1.0.0", UnitVersion: "1.0.0", Action: model.SyncInSync},
			{Name: "b", RegistryVersion: "1.0.0", UnitVersion: "2.0.0", Winner: "2.0.0", Action: model.SyncRegistryUpdated},
		},
		Synced: 1,
	})
	require.NoError(t, err)
	var got jsonr.Sync
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.True(t, got.DryRun)
	require.Len(t, got.Results, 2, "in-sync entries are listed too")
	assert.Equal(t, "registry-updated", got.Results[1].Action)
	assert.Equal(t, "2.0.0", got.Results[1].Winner)
	assert.Equal(t, 1, got.Synced)
}

func TestReportBumpAll(t *testing.T) {
	var buf bytes.Buffer
	err := jsonr.New(&buf).ReportBumpAll(context.Background(), &model.BumpAllReport{
		Component: model.ComponentMinor,
		Outcomes: []model.BumpOutcome{
			{Name: "a", Report: &model.BumpReport{Name: "a", From: "1.0.0", To: "1.1.0"}},
			{Name: "b", Err: errors.New("invalid version")},
		},
		Succeeded: 1,
		Failed:    1,
	})
	require.NoError(t, err)
	var got jsonr.BumpAll
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "minor", got.Component)
	require.Len(t, got.Outcomes, 2)
	require.NotNil(t, got.Outcomes[0].Result)
	assert.Equal(t, "1.1.0", got.Outcomes[0].Result.To)
	assert.Nil(t, got.Outcomes[1].Result)
	assert.Equal(t, "invalid version", got.Outcomes[1].Error)
}
