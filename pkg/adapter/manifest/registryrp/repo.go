// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package registryrp implements the repo.Registry interface over
// a registry manifest file, e.g., a marketplace.json file with a list
// of plugins, each having a unique name and a version string.
package registryrp

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/momeni/pvctl/pkg/adapter/manifest/document"
	"github.com/momeni/pvctl/pkg/core/cerr"
	"github.com/momeni/pvctl/pkg/core/model"
	"github.com/momeni/pvctl/pkg/core/repo"
)

// DefaultEntriesKey is the top-level field of the registry manifest
// which holds the list of entries, unless configured otherwise.
const DefaultEntriesKey = "plugins"

// entry is the validated form of one item of the entries list.
type entry struct {
	Name    string `validate:"required"`
	Version string `validate:"required"`
}

type entries struct {
	Items []entry `validate:"unique=Name,dive"`
}

// Repo is a file-backed registry repository. Each Load call reads the
// registry manifest entirely and keeps its document, so the following
// Save call may rewrite it while preserving the fields which are not
// represented by the model.Registry.
type Repo struct {
	path       string
	entriesKey string
	validate   *validator.Validate

	doc   *document.Document
	items []document.Map
}

var _ repo.Registry = (*Repo)(nil)

// New instantiates a registry repository for the manifest file at path.
// The list of entries is expected in the entriesKey top-level field
// (or DefaultEntriesKey if entriesKey is empty). The file format is
// detected based on the path extension.
func New(path, entriesKey string) *Repo {
	if entriesKey == "" {
		entriesKey = DefaultEntriesKey
	}
	return &Repo{
		path:       path,
		entriesKey: entriesKey,
		validate:   validator.New(),
	}
}

// Path returns the registry manifest file path.
func (r *Repo) Path() string {
	return r.path
}

// Load reads the registry manifest and returns its entries. All errors
// are reported as *cerr.RegistryUnreadableError instances.
func (r *Repo) Load(_ context.Context) (*model.Registry, error) {
	reg, err := r.load()
	if err != nil {
		return nil, &cerr.RegistryUnreadableError{Path: r.path, Err: err}
	}
	return reg, nil
}

func (r *Repo) load() (*model.Registry, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("reading registry: %w", err)
	}
	doc, err := document.Parse(data, document.FormatOf(r.path))
	if err != nil {
		return nil, err
	}
	items, found, err := doc.Root().Maps(r.entriesKey)
	switch {
	case err != nil:
		return nil, err
	case !found:
		return nil, fmt.Errorf("field %q is missing", r.entriesKey)
	}
	es := entries{Items: make([]entry, 0, len(items))}
	for i, item := range items {
		var e entry
		if e.Name, _, err = item.String("name"); err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", r.entriesKey, i, err)
		}
		if e.Version, _, err = item.String("version"); err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", r.entriesKey, i, err)
		}
		es.Items = append(es.Items, e)
	}
	if err := r.validate.Struct(es); err != nil {
		return nil, describe(r.entriesKey, err)
	}
	reg := &model.Registry{
		Entries: make([]model.RegistryEntry, 0, len(es.Items)),
	}
	for _, e := range es.Items {
		reg.Entries = append(reg.Entries, model.RegistryEntry{
			Name: e.Name, Version: e.Version,
		})
	}
	r.doc, r.items = doc, items
	return reg, nil
}

// describe converts the validator errors to a readable error which
// names the offending entries.
func describe(key string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	var errs []error
	for _, fe := range verrs {
		switch fe.Tag() {
		case "unique":
			errs = append(errs, fmt.Errorf("%s: duplicate entry names", key))
		case "required":
			errs = append(errs, fmt.Errorf(
				"%s: %s is required (%s)",
				key, fe.Field(), fe.Namespace(),
			))
		default:
			errs = append(errs, fe)
		}
	}
	return errors.Join(errs...)
}

// Save rewrites the registry manifest entirely, updating the version of
// every entry and keeping all other fields as they were read by the last
// Load call. The reg entries must match the loaded entries one by one,
// since entries may not be added, removed, or reordered.
func (r *Repo) Save(_ context.Context, reg *model.Registry) error {
	if r.doc == nil {
		return errors.New("registry must be loaded before being saved")
	}
	if len(reg.Entries) != len(r.items) {
		return fmt.Errorf(
			"registry has %d entries, but %d entries were loaded",
			len(reg.Entries), len(r.items),
		)
	}
	for i, e := range reg.Entries {
		name, _, _ := r.items[i].String("name")
		if name != e.Name {
			return fmt.Errorf(
				"entry %d is %q, but %q was loaded", i, e.Name, name,
			)
		}
		r.items[i].SetString("version", e.Version)
	}
	data, err := r.doc.Marshal()
	if err != nil {
		return fmt.Errorf("marshaling registry: %w", err)
	}
	if err := document.WriteFile(r.path, data); err != nil {
		return fmt.Errorf("writing registry: %w", err)
	}
	return nil
}
