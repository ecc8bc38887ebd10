// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package jsonr

import (
	"github.com/momeni/pvctl/pkg/core/model"
)

// ValidationResult is the serializable form of model.ValidationResult.
type ValidationResult struct {
	Plugin             string `json:"plugin"`
	MarketplaceVersion string `json:"marketplace_version"`
	PluginJSONVersion  string `json:"plugin_json_version"`
	Status             string `json:"status"`
	Error              string `json:"error,omitempty"`
}

// Summary holds the validation counters.
type Summary struct {
	Total      int `json:"total"`
	Matching   int `json:"matching"`
	Mismatched int `json:"mismatched"`
	Missing    int `json:"missing"`
	Unreadable int `json:"unreadable"`
}

// Validation is the serializable form of model.ValidationReport.
type Validation struct {
	ValidationResults []ValidationResult `json:"validation_results"`
	Summary           Summary            `json:"summary"`
	Status            string             `json:"status"`
}

// NewValidation converts rep to a Validation DTO.
func NewValidation(rep *model.ValidationReport) *Validation {
	v := &Validation{
		ValidationResults: make([]ValidationResult, 0, len(rep.Results)),
		Summary: Summary{
			Total:      rep.Counts.Total,
			Matching:   rep.Counts.Matching,
			Mismatched: rep.Counts.Mismatched,
			Missing:    rep.Counts.Missing,
			Unreadable: rep.Counts.Unreadable,
		},
		Status: string(rep.Status),
	}
	for _, res := range rep.Results {
		v.ValidationResults = append(v.ValidationResults, ValidationResult{
			Plugin:             res.Name,
			MarketplaceVersion: res.RegistryVersion,
			PluginJSONVersion:  res.UnitVersion,
			Status:             string(res.Status),
			Error:              errString(res.Err),
		})
	}
	return v
}

// SyncResult is the serializable form of model.SyncResult.
type SyncResult struct {
	Plugin             string `json:"plugin"`
	MarketplaceVersion string `json:"marketplace_version"`
	PluginJSONVersion  string `json:"plugin_json_version"`
	Winner             string `json:"winner,omitempty"`
	Action             string `json:"action"`
	Error              string `json:"error,omitempty"`
}

// Sync is the serializable form of model.SyncReport.
type Sync struct {
	DryRun  bool         `json:"dry_run"`
	Results []SyncResult `json:"sync_results"`
	Synced  int          `json:"synced"`
	Skipped int          `json:"skipped"`
	Failed  int          `json:"failed"`
}

// NewSync converts rep to a Sync DTO.
func NewSync(rep *model.SyncReport) *Sync {
	s := &Sync{
		DryRun:  rep.DryRun,
		Results: make([]SyncResult, 0, len(rep.Results)),
		Synced:  rep.Synced,
		Skipped: rep.Skipped,
		Failed:  rep.Failed,
	}
	for _, res := range rep.Results {
		s.Results = append(s.Results, SyncResult{
			Plugin:             res.Name,
			MarketplaceVersion: res.RegistryVersion,
			PluginJSONVersion:  res.UnitVersion,
			Winner:             res.Winner,
			Action:             string(res.Action),
			Error:              errString(res.Err),
		})
	}
	return s
}

// Bump is the serializable form of model.BumpReport.
type Bump struct {
	Plugin          string `json:"plugin"`
	Component       string `json:"component"`
	From            string `json:"from"`
	To              string `json:"to"`
	DryRun          bool   `json:"dry_run"`
	RegistryUpdated bool   `json:"registry_updated"`
	UnitFound       bool   `json:"plugin_json_found"`
	UnitUpdated     bool   `json:"plugin_json_updated"`
	Warning         string `json:"warning,omitempty"`
}

// NewBump converts rep to a Bump DTO.
func NewBump(rep *model.BumpReport) *Bump {
	return &Bump{
		Plugin:          rep.Name,
		Component:       string(rep.Component),
		From:            rep.From,
		To:              rep.To,
		DryRun:          rep.DryRun,
		RegistryUpdated: rep.RegistryUpdated,
		UnitFound:       rep.UnitFound,
		UnitUpdated:     rep.UnitUpdated,
		Warning:         rep.Warning,
	}
}

// BumpOutcome is the serializable form of model.BumpOutcome.
// Exactly one of the Result and Error fields is populated.
type BumpOutcome struct {
	Plugin string `json:"plugin"`
	Result *Bump  `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// BumpAll is the serializable form of model.BumpAllReport.
type BumpAll struct {
	Component string        `json:"component"`
	DryRun    bool          `json:"dry_run"`
	Outcomes  []BumpOutcome `json:"outcomes"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
}

// NewBumpAll converts rep to a BumpAll DTO.
func NewBumpAll(rep *model.BumpAllReport) *BumpAll {
	ba := &BumpAll{
		Component: string(rep.Component),
		DryRun:    rep.DryRun,
		Outcomes:  make([]BumpOutcome, 0, len(rep.Outcomes)),
		Succeeded: rep.Succeeded,
		Failed:    rep.Failed,
	}
	for _, o := range rep.Outcomes {
		bo := BumpOutcome{Plugin: o.Name, Error: errString(o.Err)}
		if o.Err == nil && o.Report != nil {
			bo.Result = NewBump(o.Report)
		}
		ba.Outcomes = append(ba.Outcomes, bo)
	}
	return ba
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
