// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package reconuc_test

import (
	"context"
	"errors"

	"github.com/momeni/pvctl/pkg/core/cerr"
	"github.com/momeni/pvctl/pkg/core/model"
)

// memRegistry is an in-memory repo.Registry which counts its saves.
type memRegistry struct {
	entries []model.RegistryEntry
	loadErr error
	saves   int
}

func (mr *memRegistry) Load(context.Context) (*model.Registry, error) {
	if mr.loadErr != nil {
		return nil, &cerr.RegistryUnreadableError{Path: "mem", Err: mr.loadErr}
	}
	es := make([]model.RegistryEntry, len(mr.entries))
	copy(es, mr.entries)
	return &model.Registry{Entries: es}, nil
}

func (mr *memRegistry) Save(_ context.Context, r *model.Registry) error {
	mr.saves++
	mr.entries = append([]model.RegistryEntry(nil), r.Entries...)
	return nil
}

func (mr *memRegistry) version(name string) string {
	for _, e := range mr.entries {
		if e.Name == name {
			return e.Version
		}
	}
	return ""
}

// memUnits is an in-memory repo.Units. Units which are listed in the
// unreadable set fail to load and the ones in readOnly fail to save.
type memUnits struct {
	versions   map[string]string
	unreadable map[string]bool
	readOnly   map[string]bool
	saves      map[string]int
}

func newMemUnits(versions map[string]string) *memUnits {
	return &memUnits{
		versions:   versions,
		unreadable: map[string]bool{},
		readOnly:   map[string]bool{},
		saves:      map[string]int{},
	}
}

func (mu *memUnits) Load(_ context.Context, name string) (
	model.UnitRecord, bool, error,
) {
	if mu.unreadable[name] {
		return model.UnitRecord{}, true, &cerr.UnitUnreadableError{
			Name: name, Path: "mem/" + name, Err: errors.New("corrupt"),
		}
	}
	v, ok := mu.versions[name]
	if !ok {
		return model.UnitRecord{}, false, nil
	}
	return model.UnitRecord{Version: v}, true, nil
}

func (mu *memUnits) Save(_ context.Context, name string, rec model.UnitRecord) error {
	if mu.readOnly[name] {
		return errors.New("read-only file system")
	}
	mu.saves[name]++
	mu.versions[name] = rec.Version
	return nil
}

func (mu *memUnits) totalSaves() int {
	n := 0
	for _, c := range mu.saves {
		n += c
	}
	return n
}

// recorder is a reconuc.Reporter which keeps the last reports.
type recorder struct {
	validation *model.ValidationReport
	sync       *model.SyncReport
	bump       *model.BumpReport
	bumpAll    *model.BumpAllReport
}

func (r *recorder) ReportValidation(_ context.Context, rep *model.ValidationReport) error {
	r.validation = rep
	return nil
}

func (r *recorder) ReportSync(_ context.Context, rep *model.SyncReport) error {
	r.sync = rep
	return nil
}

func (r *recorder) ReportBump(_ context.Context, rep *model.BumpReport) error {
	r.bump = rep
	return nil
}

func (r *recorder) ReportBumpAll(_ context.Context, rep *model.BumpAllReport) error {
	r.bumpAll = rep
	return nil
}
