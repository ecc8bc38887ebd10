// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

// EntryStatus classifies a registry entry against its unit record.
type EntryStatus string

// Supported entry statuses of a validation report.
const (
	EntryMatch      EntryStatus = "MATCH"      // identical strings
	EntryMismatch   EntryStatus = "MISMATCH"   // both present, differ
	EntryMissing    EntryStatus = "MISSING"    // no unit manifest
	EntryUnreadable EntryStatus = "UNREADABLE" // corrupt unit manifest
)

// ValidationStatus is the overall outcome of a validation.
type ValidationStatus string

// Supported validation statuses. See NewValidationStatus for their
// priorities.
const (
	ValidationSuccess           ValidationStatus = "success"
	ValidationMismatchFailure   ValidationStatus = "mismatch-failure"
	ValidationUnreadableFailure ValidationStatus = "unreadable-failure"
	ValidationMissingFailure    ValidationStatus = "missing-failure"
)

// ValidationResult is the validation outcome of one registry entry.
// UnitVersion is VersionNotFound if the unit manifest is absent, or if
// it exists but has no version field.
type ValidationResult struct {
	Name            string
	RegistryVersion string
	UnitVersion     string
	Status          EntryStatus
	Err             error // non-nil for EntryUnreadable
}

// ValidationCounts aggregates the validation results by their status.
type ValidationCounts struct {
	Total      int
	Matching   int
	Mismatched int
	Missing    int
	Unreadable int
}

// Add counts one more result with the s status.
func (vc *ValidationCounts) Add(s EntryStatus) {
	vc.Total++
	switch s {
	case EntryMatch:
		vc.Matching++
	case EntryMismatch:
		vc.Mismatched++
	case EntryMissing:
		vc.Missing++
	case EntryUnreadable:
		vc.Unreadable++
	}
}

// ValidationReport is the renderer-agnostic result of a validation.
type ValidationReport struct {
	Results []ValidationResult
	Counts  ValidationCounts
	Status  ValidationStatus
}

// NewValidationStatus computes the overall status from vc counts with
// a fixed priority: mismatches dominate everything (regardless of the
// counts), then unreadable unit manifests, and then missing ones.
func NewValidationStatus(vc ValidationCounts) ValidationStatus {
	switch {
	case vc.Mismatched > 0:
		return ValidationMismatchFailure
	case vc.Unreadable > 0:
		return ValidationUnreadableFailure
	case vc.Missing > 0:
		return ValidationMissingFailure
	default:
		return ValidationSuccess
	}
}

// SyncAction describes what a sync pass did (or would do in a dry-run)
// for one registry entry.
type SyncAction string

// Supported sync actions.
const (
	SyncInSync          SyncAction = "in-sync"
	SyncSkipped         SyncAction = "skipped"
	SyncUnitUpdated     SyncAction = "unit-updated"
	SyncRegistryUpdated SyncAction = "registry-updated"
	SyncFailed          SyncAction = "failed"
)

// SyncResult is the sync outcome of one registry entry. The versions
// are the values before the sync and Winner is the literal version
// which both sides take (empty unless one side is updated).
type SyncResult struct {
	Name            string
	RegistryVersion string
	UnitVersion     string
	Winner          string
	Action          SyncAction
	Err             error // non-nil for SyncFailed
}

// Changed reports if sr updates one of the manifests.
func (sr SyncResult) Changed() bool {
	return sr.Action == SyncUnitUpdated ||
		sr.Action == SyncRegistryUpdated
}

// SyncReport is the renderer-agnostic result of a sync pass.
type SyncReport struct {
	DryRun  bool
	Results []SyncResult
	Synced  int
	Skipped int
	Failed  int
}

// BumpReport is the renderer-agnostic result of bumping one entry.
// In a dry-run, RegistryUpdated and UnitUpdated are false and UnitFound
// tells if the unit manifest would be updated too.
type BumpReport struct {
	Name            string
	Component       Component
	From            string
	To              string
	DryRun          bool
	RegistryUpdated bool
	UnitFound       bool
	UnitUpdated     bool
	Warning         string
}

// BumpOutcome keeps the report or error of a single bump as part of a
// bump-all operation. Report may be non-nil even if Err is not nil when
// the registry was updated but the unit manifest could not be written.
type BumpOutcome struct {
	Name   string
	Report *BumpReport
	Err    error
}

// BumpAllReport is the renderer-agnostic result of bumping all entries.
type BumpAllReport struct {
	Component Component
	DryRun    bool
	Outcomes  []BumpOutcome
	Succeeded int
	Failed    int
}
