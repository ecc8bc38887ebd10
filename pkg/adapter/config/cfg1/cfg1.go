// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cfg1 makes it possible to load configuration settings with
// version 1.x.y since all minor and patch versions (which are known)
// with the same major version, can be loaded with one implementation.
// When trying to serialize and write out settings, the latest known
// minor and patch version will be used since older versions (with the
// same major version) can ignore the extra fields too.
package cfg1

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/momeni/pvctl/pkg/adapter/config/comment"
	"github.com/momeni/pvctl/pkg/adapter/config/settings"
	"github.com/momeni/pvctl/pkg/adapter/config/vers"
	"github.com/momeni/pvctl/pkg/adapter/manifest/registryrp"
	"github.com/momeni/pvctl/pkg/adapter/manifest/unitsrp"
	"github.com/momeni/pvctl/pkg/adapter/restful/gin"
	"github.com/momeni/pvctl/pkg/core/log"
	"github.com/momeni/pvctl/pkg/core/model"
	"github.com/momeni/pvctl/pkg/core/usecase/reconuc"
	"gopkg.in/yaml.v3"
)

// These constants define the major, minor, and patch version of the
// configuration settings which are supported by the Config struct.
const (
	Major = 1
	Minor = 0
	Patch = 0
)

// Version is the semantic version of Config struct.
var Version = model.SemVer{Major, Minor, Patch}

// Default values of the optional settings.
const (
	DefaultRegistryPath      = ".claude-plugin/marketplace.json"
	DefaultColor             = "auto"
	DefaultOutputFormat      = "text"
	DefaultLogLevel          = "warn"
	DefaultLogFormat         = "text"
	DefaultAddr              = "127.0.0.1:8080"
	DefaultReadHeaderTimeout = 10 * time.Second
)

// Boundary values of the server read-header-timeout setting.
var (
	MinReadHeaderTimeout = settings.Duration(time.Second)
	MaxReadHeaderTimeout = settings.Duration(5 * time.Minute)
)

// Config contains all settings which are required by different parts
// of the project following the v1.x.y format, such as adapters or
// use cases. All settings are optional and the missing ones take their
// default values when ValidateAndNormalize is called. It is preferred
// to implement Config with primitive fields or other structs which are
// defined locally, not models which are defined in lower layers, so the
// configuration can be versioned and kept intact while other layers can
// change freely.
type Config struct {
	Registry Registry // registry manifest location
	Units    Units    // unit manifests location
	Output   Output   // reports rendering settings
	Log      Log      // structured logging settings
	Server   Server   // RESTful server settings

	// Vers contains the configuration file version corresponding to
	// this Config instance.
	Vers vers.Config `yaml:",inline"`

	// Comments holds the comments of the configuration file (if any).
	// MarshalYAML writes them back, so printing the effective settings
	// keeps them.
	Comments *comment.Comment `yaml:"-"`
}

// Registry contains the registry manifest settings.
type Registry struct {
	// Path of the registry manifest, relative to the workspace root
	// unless it is absolute. Its extension selects the JSON or YAML
	// format.
	Path *string `validate:"required,min=1"`

	// EntriesKey is the top-level field which holds the entries list.
	EntriesKey *string `yaml:"entries-key" validate:"required,min=1"`
}

// Units contains the unit manifests settings.
type Units struct {
	// PathTemplate locates the manifest of each plugin by replacing
	// its {name} placeholder with the plugin name.
	PathTemplate *string `yaml:"path-template" validate:"required,contains={name}"`
}

// Output contains the settings of rendering the reports.
type Output struct {
	Color  *string `validate:"required,oneof=auto always never"`
	Format *string `validate:"required,oneof=text json"`
}

// Log contains the structured logging settings.
type Log struct {
	Level  *string `validate:"required,oneof=debug info warn error"`
	Format *string `validate:"required,oneof=text json"`
}

// Server contains the RESTful server and Gin-Gonic settings.
type Server struct {
	Addr              *string            `validate:"required,hostname_port"`
	ReadHeaderTimeout *settings.Duration `yaml:"read-header-timeout"`
	Logger            *bool              // whether to use gin.Logger()
	Recovery          *bool              // whether to use gin.Recovery()
}

// Default returns a Config instance which is filled by the default
// values of all settings, as used when no configuration file exists.
func Default() *Config {
	c := &Config{}
	c.Vers.Versions.Config = Version
	if err := c.ValidateAndNormalize(); err != nil {
		panic(fmt.Errorf("default settings are invalid: %w", err))
	}
	return c
}

// Load deserializes the data byte slice, validates it, and fills the
// missing settings with their default values. Comments of the
// data are kept in the Comments field.
func Load(data []byte) (*Config, error) {
	n := &yaml.Node{}
	if err := yaml.Unmarshal(data, n); err != nil {
		return nil, fmt.Errorf("unmarshalling yaml: %w", err)
	}
	if l := len(n.Content); l != 1 {
		return nil, fmt.Errorf(
			"found %d children nodes, instead of 1 mapping child", l,
		)
	}
	c := &Config{}
	if err := n.Decode(c); err != nil {
		return nil, fmt.Errorf("decoding yaml node: %w", err)
	}
	if err := c.ValidateAndNormalize(); err != nil {
		return nil, fmt.Errorf("validating configs: %w", err)
	}
	cmnts, err := comment.LoadFrom(n)
	if err != nil {
		return nil, fmt.Errorf("parsing comments: %w", err)
	}
	c.Comments = cmnts
	return c, nil
}

// ValidateAndNormalize validates the configuration version and settings
// after filling the nil settings with their default values.
func (c *Config) ValidateAndNormalize() error {
	if err := c.Vers.Validate(Major, Minor); err != nil {
		return fmt.Errorf(
			"expecting version v%d.%d: %w", Major, Minor, err,
		)
	}
	settings.Default(&c.Registry.Path, DefaultRegistryPath)
	settings.Default(&c.Registry.EntriesKey, registryrp.DefaultEntriesKey)
	settings.Default(&c.Units.PathTemplate, unitsrp.DefaultPathTemplate)
	settings.Default(&c.Output.Color, DefaultColor)
	settings.Default(&c.Output.Format, DefaultOutputFormat)
	settings.Default(&c.Log.Level, DefaultLogLevel)
	settings.Default(&c.Log.Format, DefaultLogFormat)
	settings.Default(&c.Server.Addr, DefaultAddr)
	settings.Default(
		&c.Server.ReadHeaderTimeout,
		settings.Duration(DefaultReadHeaderTimeout),
	)
	settings.Default(&c.Server.Logger, true)
	settings.Default(&c.Server.Recovery, true)
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validating settings: %w", err)
	}
	readHeaderTimeout := settings.Bounds[settings.Duration]{
		Min: &MinReadHeaderTimeout, Max: &MaxReadHeaderTimeout,
	}
	return readHeaderTimeout.Check(
		"read-header-timeout", c.Server.ReadHeaderTimeout,
	)
}

// NewRegistryRepo instantiates the registry repository, resolving its
// relative path against the root workspace directory.
func (c *Config) NewRegistryRepo(root string) *registryrp.Repo {
	p := filepath.FromSlash(*c.Registry.Path)
	if !filepath.IsAbs(p) {
		p = filepath.Join(root, p)
	}
	return registryrp.New(p, *c.Registry.EntriesKey)
}

// NewUnitsRepo instantiates the units repository, resolving its
// relative path template against the root workspace directory.
func (c *Config) NewUnitsRepo(root string) (*unitsrp.Repo, error) {
	return unitsrp.New(root, *c.Units.PathTemplate)
}

// NewUseCase instantiates the reconciliation use case over the registry
// and units repositories of the root workspace directory. The opts are
// passed to the use case as is, e.g., in order to configure a reporter.
func (c *Config) NewUseCase(
	root string, opts ...reconuc.Option,
) (*reconuc.UseCase, error) {
	units, err := c.NewUnitsRepo(root)
	if err != nil {
		return nil, fmt.Errorf("creating units repo: %w", err)
	}
	return reconuc.New(c.NewRegistryRepo(root), units, opts...)
}

// NewHandler creates a slog.Handler which writes into w with the
// configured level and format.
func (l Log) NewHandler(w io.Writer) (slog.Handler, error) {
	return log.NewHandler(w, *l.Level, *l.Format)
}

// NewEngine instantiates a new gin-gonic engine, while configuring
// its middlewares based on the Logger and Recovery settings.
func (s Server) NewEngine() *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 2)
	if *s.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	if *s.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	return gin.New(middlewares...)
}

// Marshalled is an alternative form of Config struct which replaces
// its non-primitive fields by their string representation, so it can
// be serialized instead of the Config struct itself.
type Marshalled struct {
	Registry Registry
	Units    Units
	Output   Output
	Log      Log
	Server   struct {
		Addr              *string
		ReadHeaderTimeout *string `yaml:"read-header-timeout"`
		Logger            *bool
		Recovery          *bool
	}
	Vers *vers.Marshalled `yaml:",inline"`
}

// MarshalYAML computes a Marshalled instance from the `c` Config and
// encodes it as a yaml.Node while restoring the loaded comments.
func (c *Config) MarshalYAML() (interface{}, error) {
	m := c.Marshal()
	n := &yaml.Node{}
	if err := n.Encode(m); err != nil {
		return nil, fmt.Errorf("encoding *Marshalled as YAML: %w", err)
	}
	if err := c.Comments.SaveInto(n); err != nil {
		return nil, fmt.Errorf("saving YAML nodes comments: %w", err)
	}
	return n, nil
}

// Marshal creates and returns a Marshalled instance representing the
// `c` Config instance.
func (c *Config) Marshal() *Marshalled {
	m := &Marshalled{
		Registry: c.Registry,
		Units:    c.Units,
		Output:   c.Output,
		Log:      c.Log,
	}
	m.Server.Addr = c.Server.Addr
	m.Server.ReadHeaderTimeout = c.Server.ReadHeaderTimeout.Marshal()
	m.Server.Logger = c.Server.Logger
	m.Server.Recovery = c.Server.Recovery
	m.Vers = c.Vers.Marshal()
	return m
}
