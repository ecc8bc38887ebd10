// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package unitsrp implements the repo.Units interface over the
// per-plugin sidecar manifest files, e.g., one plugin.json file in the
// directory of each plugin.
package unitsrp

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/momeni/pvctl/pkg/adapter/manifest/document"
	"github.com/momeni/pvctl/pkg/core/cerr"
	"github.com/momeni/pvctl/pkg/core/model"
	"github.com/momeni/pvctl/pkg/core/repo"
)

// NamePlaceholder is replaced by the plugin name in a path template.
const NamePlaceholder = "{name}"

// DefaultPathTemplate locates the unit manifest of each plugin, unless
// configured otherwise. It is relative to the workspace root.
const DefaultPathTemplate = "plugins/" + NamePlaceholder +
	"/.claude-plugin/plugin.json"

// Repo is a file-backed units repository. Every Load call reads a unit
// manifest entirely and keeps its document, so a following Save call
// for the same unit may rewrite it with all of its other fields. A kept
// document is dropped by Save, and by a Load which finds no readable
// manifest, so only loaded and not yet saved units are held.
type Repo struct {
	root     string
	template string
	docs     map[string]*document.Document
}

var _ repo.Units = (*Repo)(nil)

// New instantiates a units repository which finds the manifest of each
// unit by replacing NamePlaceholder in the template path with the unit
// name. Relative templates are resolved against the root directory.
func New(root, template string) (*Repo, error) {
	if template == "" {
		template = DefaultPathTemplate
	}
	if !strings.Contains(template, NamePlaceholder) {
		return nil, fmt.Errorf(
			"unit path template %q has no %s placeholder",
			template, NamePlaceholder,
		)
	}
	return &Repo{
		root:     root,
		template: template,
		docs:     make(map[string]*document.Document),
	}, nil
}

// PathOf returns the unit manifest file path of the name plugin.
func (r *Repo) PathOf(name string) string {
	p := filepath.FromSlash(strings.ReplaceAll(r.template, NamePlaceholder, name))
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(r.root, p)
}

// Load reads the unit manifest of the name plugin. A missing manifest
// file is reported with found=false and a nil error.
func (r *Repo) Load(_ context.Context, name string) (
	rec model.UnitRecord, found bool, err error,
) {
	delete(r.docs, name)
	path := r.PathOf(name)
	if err := validateName(name); err != nil {
		return model.UnitRecord{}, true, &cerr.UnitUnreadableError{
			Name: name, Path: path, Err: err,
		}
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return model.UnitRecord{}, false, nil
	case err != nil:
		return model.UnitRecord{}, true, &cerr.UnitUnreadableError{
			Name: name, Path: path, Err: err,
		}
	}
	doc, err := document.Parse(data, document.FormatOf(path))
	if err != nil {
		return model.UnitRecord{}, true, &cerr.UnitUnreadableError{
			Name: name, Path: path, Err: err,
		}
	}
	v, ok, err := doc.Root().String("version")
	switch {
	case err != nil:
		return model.UnitRecord{}, true, &cerr.UnitUnreadableError{
			Name: name, Path: path, Err: err,
		}
	case !ok:
		v = model.VersionNotFound
	}
	r.docs[name] = doc
	return model.UnitRecord{Version: v}, true, nil
}

// validateName ensures that a plugin name can not escape its directory
// when it is substituted in the path template.
func validateName(name string) error {
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("plugin name %q is not a valid path element", name)
	}
	return nil
}

// Save rewrites the unit manifest of the name plugin, which must have
// been loaded before, with the rec version. Each Load allows one Save.
func (r *Repo) Save(_ context.Context, name string, rec model.UnitRecord) error {
	doc, ok := r.docs[name]
	if !ok {
		return fmt.Errorf("unit %q must be loaded before being saved", name)
	}
	delete(r.docs, name)
	doc.Root().SetString("version", rec.Version)
	data, err := doc.Marshal()
	if err != nil {
		return fmt.Errorf("marshaling unit manifest: %w", err)
	}
	if err := document.WriteFile(r.PathOf(name), data); err != nil {
		return fmt.Errorf("writing unit manifest: %w", err)
	}
	return nil
}
