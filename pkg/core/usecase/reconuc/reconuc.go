// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package reconuc contains the version reconciliation UseCase which
// keeps the central registry manifest and the per-plugin unit manifests
// consistent. Four use cases are supported:
//  1. Validating that every registry entry matches its unit manifest,
//  2. Syncing both sides of every entry to the higher of their versions,
//  3. Bumping the version of one entry (and its unit manifest),
//  4. Bumping the versions of all entries with isolated failures.
//
// Each operation loads both stores freshly, works on the loaded models
// in memory, persists the changed manifests (unless asked to run in the
// dry-run mode), and returns a renderer-agnostic report which is also
// emitted to the configured Reporter.
//
// No locking is performed on the stores. Two concurrent invocations may
// overwrite each other's changes, so callers which may run concurrently
// have to serialize their invocations.
package reconuc

import (
	"context"
	"errors"
	"fmt"

	"github.com/momeni/pvctl/pkg/core/cerr"
	"github.com/momeni/pvctl/pkg/core/log"
	"github.com/momeni/pvctl/pkg/core/model"
	"github.com/momeni/pvctl/pkg/core/repo"
)

// UnitNotFoundWarning is recorded in a BumpReport when the registry was
// bumped, but the plugin had no unit manifest to be updated.
const UnitNotFoundWarning = "unit manifest not found, only the registry was updated"

// UseCase represents the version reconciliation use case. It holds the
// registry and units repositories and an optional reporter.
type UseCase struct {
	registry repo.Registry
	units    repo.Units
	reporter Reporter
}

// New instantiates a reconciliation use case.
// Required parameters are passed individually, while optional ones are
// passed as a series of functional options.
func New(r repo.Registry, u repo.Units, opts ...Option) (*UseCase, error) {
	uc := &UseCase{registry: r, units: u}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if uc.reporter == nil {
		uc.reporter = nopReporter{}
	}
	return uc, nil
}

// Validate classifies every registry entry against its unit record as
// MATCH (identical version strings), MISMATCH (both present but
// different), MISSING (no unit manifest), or UNREADABLE (a unit
// manifest which can not be parsed). Only a registry loading error is
// returned as an error, all other conditions are reported.
func (uc *UseCase) Validate(ctx context.Context) (*model.ValidationReport, error) {
	reg, err := uc.registry.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading registry: %w", err)
	}
	rep := &model.ValidationReport{
		Results: make([]model.ValidationResult, 0, len(reg.Entries)),
	}
	for _, e := range reg.Entries {
		res := model.ValidationResult{
			Name:            e.Name,
			RegistryVersion: e.Version,
			UnitVersion:     model.VersionNotFound,
		}
		rec, found, err := uc.units.Load(ctx, e.Name)
		switch {
		case err != nil:
			res.Status = model.EntryUnreadable
			res.Err = err
			log.Warn(ctx, "unit manifest is unreadable",
				log.Plugin(e.Name), log.Err("err", err),
			)
		case !found:
			res.Status = model.EntryMissing
		case rec.Version == e.Version:
			res.UnitVersion = rec.Version
			res.Status = model.EntryMatch
		default:
			res.UnitVersion = rec.Version
			res.Status = model.EntryMismatch
		}
		rep.Counts.Add(res.Status)
		rep.Results = append(rep.Results, res)
	}
	rep.Status = model.NewValidationStatus(rep.Counts)
	if err := uc.reporter.ReportValidation(ctx, rep); err != nil {
		return rep, fmt.Errorf("reporting validation: %w", err)
	}
	return rep, nil
}

// Sync converges every registry entry and its unit record to the higher
// of their two versions, never downgrading any of them. The winner's
// literal string is copied to the other side, so both sides become
// byte-identical. Entries without a unit manifest are skipped.
//
// Unless dryRun is true, the unit manifests are written immediately
// (one write per updated unit) while the registry is written once after
// the whole pass and only if some registry entry was changed. Therefore,
// an interruption in the middle of a pass may leave the registry behind
// a few already updated units. Running Sync again completes it.
func (uc *UseCase) Sync(ctx context.Context, dryRun bool) (*model.SyncReport, error) {
	ctx = log.WithAttrs(ctx, log.DryRun(dryRun))
	reg, err := uc.registry.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading registry: %w", err)
	}
	rep := &model.SyncReport{
		DryRun:  dryRun,
		Results: make([]model.SyncResult, 0, len(reg.Entries)),
	}
	registryChanged := false
	for i := range reg.Entries {
		e := &reg.Entries[i]
		res := uc.syncEntry(ctx, e, dryRun)
		switch res.Action {
		case model.SyncRegistryUpdated:
			rep.Synced++
			if !dryRun {
				e.Version = res.Winner
				registryChanged = true
			}
		case model.SyncUnitUpdated:
			rep.Synced++
		case model.SyncSkipped:
			rep.Skipped++
		case model.SyncFailed:
			rep.Failed++
		}
		rep.Results = append(rep.Results, res)
	}
	if registryChanged {
		if err := uc.registry.Save(ctx, reg); err != nil {
			return rep, fmt.Errorf("saving registry: %w", err)
		}
		log.Info(ctx, "registry saved")
	}
	if err := uc.reporter.ReportSync(ctx, rep); err != nil {
		return rep, fmt.Errorf("reporting sync: %w", err)
	}
	return rep, nil
}

// syncEntry decides about one registry entry and (unless in dry-run)
// writes its unit record if the registry version wins. The registry
// entry itself is left for the caller to be updated.
func (uc *UseCase) syncEntry(
	ctx context.Context, e *model.RegistryEntry, dryRun bool,
) model.SyncResult {
	res := model.SyncResult{
		Name:            e.Name,
		RegistryVersion: e.Version,
		UnitVersion:     model.VersionNotFound,
	}
	rec, found, err := uc.units.Load(ctx, e.Name)
	switch {
	case err != nil:
		res.Action, res.Err = model.SyncFailed, err
		return res
	case !found:
		res.Action = model.SyncSkipped
		log.Warn(ctx, "skipping plugin without unit manifest",
			log.Plugin(e.Name),
		)
		return res
	}
	res.UnitVersion = rec.Version
	if !rec.HasVersion() || rec.Version == e.Version {
		res.Action = model.SyncInSync
		return res
	}
	winner, err := higherVersion(e.Version, rec)
	if err != nil {
		res.Action, res.Err = model.SyncFailed, err
		return res
	}
	res.Winner = winner
	if winner != e.Version {
		res.Action = model.SyncRegistryUpdated
		log.Info(ctx, "registry entry is behind its unit manifest",
			log.Plugin(e.Name), log.Transition(e.Version, winner),
		)
		return res
	}
	res.Action = model.SyncUnitUpdated
	if dryRun {
		return res
	}
	rec.Version = winner
	if err := uc.units.Save(ctx, e.Name, rec); err != nil {
		res.Action = model.SyncFailed
		res.Err = fmt.Errorf("saving unit manifest: %w", err)
		return res
	}
	log.Info(ctx, "unit manifest saved",
		log.Plugin(e.Name), log.Transition(res.UnitVersion, winner),
	)
	return res
}

// higherVersion returns the literal version string which should be
// taken by both sides of an entry whose registry version (rv) differs
// from its unit record. The registry version is authoritative if both
// versions are equal numerically (e.g., 1.0.0 and v1.0.0).
func higherVersion(rv string, rec model.UnitRecord) (string, error) {
	r, err := model.ParseVersion(rv)
	if err != nil {
		return "", fmt.Errorf("parsing registry version: %w", err)
	}
	u, err := model.ParseVersion(rec.Version)
	if err != nil {
		return "", fmt.Errorf("parsing unit version: %w", err)
	}
	if u.Compare(r) > 0 {
		return rec.Version, nil
	}
	return rv, nil
}

// Bump increments the c component of the name registry entry version.
// The new version keeps the cosmetic prefix style of the registry entry.
// If dryRun is true, the would-be change is reported without writing
// anything. Otherwise, the registry is written unconditionally and then
// the unit manifest is updated only if it exists. A missing unit
// manifest is not an error, it is reported as a warning and leaves the
// registry and unit intentionally divergent until a future sync.
//
// Since the registry is written first, a failure in writing the unit
// manifest leaves the registry updated. In that case, the report and
// the error are both returned.
func (uc *UseCase) Bump(
	ctx context.Context, name string, c model.Component, dryRun bool,
) (*model.BumpReport, error) {
	rep, err := uc.bump(ctx, name, c, dryRun)
	if err != nil {
		return rep, err
	}
	if err := uc.reporter.ReportBump(ctx, rep); err != nil {
		return rep, fmt.Errorf("reporting bump: %w", err)
	}
	return rep, nil
}

func (uc *UseCase) bump(
	ctx context.Context, name string, c model.Component, dryRun bool,
) (*model.BumpReport, error) {
	ctx = log.WithAttrs(ctx, log.Plugin(name), log.DryRun(dryRun))
	if _, err := model.ParseComponent(string(c)); err != nil {
		return nil, cerr.BadRequest(err)
	}
	reg, err := uc.registry.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading registry: %w", err)
	}
	i := reg.Lookup(name)
	if i < 0 {
		return nil, cerr.NotFound(&cerr.PluginNotFoundError{Name: name})
	}
	e := &reg.Entries[i]
	v, err := model.ParseVersion(e.Version)
	if err != nil {
		return nil, cerr.Unprocessable(
			fmt.Errorf("parsing registry version: %w", err),
		)
	}
	rep := &model.BumpReport{
		Name:      name,
		Component: c,
		From:      e.Version,
		To:        v.Increment(c).String(),
		DryRun:    dryRun,
	}
	rec, found, err := uc.units.Load(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("loading unit manifest: %w", err)
	}
	rep.UnitFound = found
	if !found {
		rep.Warning = UnitNotFoundWarning
	}
	if dryRun {
		return rep, nil
	}
	e.Version = rep.To
	if err := uc.registry.Save(ctx, reg); err != nil {
		return nil, fmt.Errorf("saving registry: %w", err)
	}
	rep.RegistryUpdated = true
	log.Info(ctx, "registry saved", log.Transition(rep.From, rep.To))
	if !found {
		log.Warn(ctx, UnitNotFoundWarning)
		return rep, nil
	}
	rec.Version = rep.To
	if err := uc.units.Save(ctx, name, rec); err != nil {
		return rep, fmt.Errorf("saving unit manifest: %w", err)
	}
	rep.UnitUpdated = true
	log.Info(ctx, "unit manifest saved", log.Transition(rep.From, rep.To))
	return rep, nil
}

// BumpAll applies Bump to every registry entry in their declaration
// order. A failure in bumping one entry is recorded and the remaining
// entries are still attempted. Only a registry loading error aborts the
// operation, returning the outcomes which were collected so far.
func (uc *UseCase) BumpAll(
	ctx context.Context, c model.Component, dryRun bool,
) (*model.BumpAllReport, error) {
	if _, err := model.ParseComponent(string(c)); err != nil {
		return nil, cerr.BadRequest(err)
	}
	reg, err := uc.registry.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading registry: %w", err)
	}
	rep := &model.BumpAllReport{Component: c, DryRun: dryRun}
	for _, name := range reg.Names() {
		r, err := uc.bump(ctx, name, c, dryRun)
		rep.Outcomes = append(rep.Outcomes, model.BumpOutcome{
			Name: name, Report: r, Err: err,
		})
		if IsFatal(err) {
			return rep, err
		}
		if err != nil {
			rep.Failed++
			log.Error(ctx, "bump failed", log.Plugin(name), log.Err("err", err))
			continue
		}
		rep.Succeeded++
	}
	if err := uc.reporter.ReportBumpAll(ctx, rep); err != nil {
		return rep, fmt.Errorf("reporting bump-all: %w", err)
	}
	return rep, nil
}

// IsFatal reports if err should abort a whole invocation, that is,
// if the registry manifest could not be loaded.
func IsFatal(err error) bool {
	var rue *cerr.RegistryUnreadableError
	return errors.As(err, &rue)
}
