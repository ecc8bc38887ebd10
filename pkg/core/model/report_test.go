// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"testing"

	"github.com/momeni/pvctl/pkg/core/model"
	"github.com/stretchr/testify/assert"
)

func TestNewValidationStatus(t *testing.T) {
	for _, tc := range []struct {
		name     string
		statuses []model.EntryStatus
		expected model.ValidationStatus
	}{
		{
			name:     "empty registry",
			expected: model.ValidationSuccess,
		},
		{
			name:     "all matching",
			statuses: []model.EntryStatus{model.EntryMatch, model.EntryMatch},
			expected: model.ValidationSuccess,
		},
		{
			name: "mismatch dominates missing",
			statuses: []model.EntryStatus{
				model.EntryMatch, model.EntryMismatch,
				model.EntryMissing, model.EntryMissing,
			},
			expected: model.ValidationMismatchFailure,
		},
		{
			name: "unreadable dominates missing",
			statuses: []model.EntryStatus{
				model.EntryMissing, model.EntryUnreadable,
			},
			expected: model.ValidationUnreadableFailure,
		},
		{
			name: "mismatch dominates unreadable",
			statuses: []model.EntryStatus{
				model.EntryUnreadable, model.EntryMismatch,
			},
			expected: model.ValidationMismatchFailure,
		},
		{
			name:     "missing only",
			statuses: []model.EntryStatus{model.EntryMatch, model.EntryMissing},
			expected: model.ValidationMissingFailure,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var vc model.ValidationCounts
			for _, s := range tc.statuses {
				vc.Add(s)
			}
			assert.Equal(t, len(tc.statuses), vc.Total)
			assert.Equal(t, tc.expected, model.NewValidationStatus(vc))
		})
	}
}

func TestRegistryLookup(t *testing.T) {
	reg := &model.Registry{Entries: []model.RegistryEntry{
		{Name: "alpha", Version: "1.0.0"},
		{Name: "beta", Version: "v2.0.0"},
	}}
	assert.Equal(t, 1, reg.Lookup("beta"))
	assert.Equal(t, -1, reg.Lookup("gamma"))
	assert.Equal(t, []string{"alpha", "beta"}, reg.Names())
}

func TestSyncResultChanged(t *testing.T) {
	for a, changed := range map[model.SyncAction]bool{
		model.SyncInSync:          false,
		model.SyncSkipped:         false,
		model.SyncFailed:          false,
		model.SyncUnitUpdated:     true,
		model.SyncRegistryUpdated: true,
	} {
		assert.Equal(t, changed, model.SyncResult{Action: a}.Changed(), a)
	}
}
