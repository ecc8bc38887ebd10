// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package config finds and loads the pvctl configuration file. The file
// format is versioned, each major version being kept in its own
// sub-package (currently cfg1), and the versions block of a file is
// read first in order to pick the matching format. The loaded settings
// know how to build the repositories and use cases which they describe.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/momeni/pvctl/pkg/adapter/config/cfg1"
	"github.com/momeni/pvctl/pkg/adapter/config/vers"
)

const (
	// DefaultName is the configuration file name which is looked up in
	// the workspace root directory.
	DefaultName = "pvctl.yaml"
	// PathEnv is the environment variable which may hold the path of
	// the configuration file.
	PathEnv = "CONFIG_FILE"
)

// Source identifies a configuration file. An Optional file may be
// absent, standing for the default settings.
type Source struct {
	Path     string
	Optional bool
}

// Locate picks the configuration file of the root workspace. An
// explicit path (e.g., from the --config flag) takes precedence over
// the PathEnv environment variable, and both of them must exist.
// Otherwise, DefaultName in the root directory is used if it exists.
func Locate(path, root string) Source {
	if path != "" {
		return Source{Path: path}
	}
	if path, ok := os.LookupEnv(PathEnv); ok {
		return Source{Path: path}
	}
	return Source{Path: filepath.Join(root, DefaultName), Optional: true}
}

// Load reads, validates, and normalizes the s configuration file.
// Its major version must match cfg1.Major.
func (s Source) Load() (*cfg1.Config, error) {
	data, err := os.ReadFile(s.Path)
	switch {
	case s.Optional && errors.Is(err, fs.ErrNotExist):
		return cfg1.Default(), nil
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	v, err := vers.Peek(data)
	if err != nil {
		return nil, fmt.Errorf("loading versions: %w", err)
	}
	if v[0] != cfg1.Major {
		return nil, fmt.Errorf("unexpected config version: %s", v)
	}
	c, err := cfg1.Load(data)
	if err != nil {
		return nil, fmt.Errorf("loading cfg1.Config: %w", err)
	}
	return c, nil
}
