// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package vers handles the versions block which every pvctl
// configuration file carries, e.g.,
//
//	versions:
//	  config: 1.0.0
//
// The block layout is shared by all configuration formats, so it can
// be read before the format of the other settings is known.
package vers

import (
	"fmt"

	"github.com/momeni/pvctl/pkg/core/model"
	"gopkg.in/yaml.v3"
)

// Config is embedded inline by every configuration format struct.
type Config struct {
	Versions Versions `yaml:"versions"`
}

// Versions lists the versioned parts of a configuration file.
type Versions struct {
	Config model.SemVer `yaml:"config"`
}

// Marshalled is the encodable form of Config.
type Marshalled struct {
	Versions struct {
		Config string `yaml:"config"`
	} `yaml:"versions"`
}

// Marshal returns the encodable form of vc.
func (vc *Config) Marshal() *Marshalled {
	m := &Marshalled{}
	m.Versions.Config = vc.Versions.Config.String()
	return m
}

// Peek returns the configuration format version of the data file,
// ignoring all of its other settings.
func Peek(data []byte) (model.SemVer, error) {
	var vc Config
	if err := yaml.Unmarshal(data, &vc); err != nil {
		return model.SemVer{}, err
	}
	return vc.Versions.Config, nil
}

// Validate checks that a loader for the major.minor format can read vc.
// Files with an older minor version are accepted, since minor releases
// only add optional settings.
func (vc *Config) Validate(major, minor uint) error {
	switch v := vc.Versions.Config; {
	case v[0] != major:
		return fmt.Errorf("incompatible major version: %d", v[0])
	case v[1] > minor:
		return fmt.Errorf("unsupported minor version: %d", v[1])
	}
	return nil
}
