// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package unitsrp_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/momeni/pvctl/pkg/adapter/manifest/unitsrp"
	"github.com/momeni/pvctl/pkg/core/cerr"
	"github.com/momeni/pvctl/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeUnit(t *testing.T, r *unitsrp.Repo, name, data string) string {
	t.Helper()
	path := r.PathOf(name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestNew(t *testing.T) {
	_, err := unitsrp.New(".", "plugins/plugin.json")
	assert.ErrorContains(t, err, "{name}")

	r, err := unitsrp.New("/ws", "")
	require.NoError(t, err)
	assert.Equal(t,
		filepath.FromSlash("/ws/plugins/alpha/.claude-plugin/plugin.json"),
		r.PathOf("alpha"),
	)
	r, err = unitsrp.New("/ws", "/etc/units/{name}.yaml")
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("/etc/units/alpha.yaml"), r.PathOf("alpha"))
}

func TestLoadSave(t *testing.T) {
	ctx := context.Background()
	r, err := unitsrp.New(t.TempDir(), "")
	require.NoError(t, err)
	data := `{
  "name": "alpha",
  "version": "1.0.0",
  "author": {
    "name": "Zoë"
  }
}
`
	path := writeUnit(t, r, "alpha", data)

	rec, found, err := r.Load(ctx, "alpha")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, model.UnitRecord{Version: "1.0.0"}, rec)

	require.NoError(t, r.Save(ctx, "alpha", model.UnitRecord{Version: "1.0.1"}))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{
  "name": "alpha",
  "version": "1.0.1",
  "author": {
    "name": "Zoë"
  }
}
`, string(b))
}

func TestDocumentsAreReleased(t *testing.T) {
	ctx := context.Background()
	r, err := unitsrp.New(t.TempDir(), "")
	require.NoError(t, err)
	path := writeUnit(t, r, "alpha", `{"version": "1.0.0"}`)

	_, _, err = r.Load(ctx, "alpha")
	require.NoError(t, err)
	require.NoError(t, r.Save(ctx, "alpha", model.UnitRecord{Version: "1.0.1"}))
	assert.ErrorContains(t,
		r.Save(ctx, "alpha", model.UnitRecord{Version: "1.0.2"}),
		"must be loaded", "a saved document is not kept",
	)

	_, _, err = r.Load(ctx, "alpha")
	require.NoError(t, err)
	require.NoError(t, os.Remove(path))
	_, found, err := r.Load(ctx, "alpha")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Error(t,
		r.Save(ctx, "alpha", model.UnitRecord{Version: "1.0.2"}),
		"an absent unit drops the previously loaded document",
	)
	assert.NoFileExists(t, path)
}

func TestAbsentAndNotFound(t *testing.T) {
	ctx := context.Background()
	r, err := unitsrp.New(t.TempDir(), "")
	require.NoError(t, err)

	_, found, err := r.Load(ctx, "ghost")
	assert.NoError(t, err, "absence is not an error")
	assert.False(t, found)
	assert.Error(t, r.Save(ctx, "ghost", model.UnitRecord{Version: "1"}))

	writeUnit(t, r, "bare", `{"name": "bare"}`)
	rec, found, err := r.Load(ctx, "bare")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, model.VersionNotFound, rec.Version)
	assert.False(t, rec.HasVersion())
}

func TestUnreadable(t *testing.T) {
	ctx := context.Background()
	r, err := unitsrp.New(t.TempDir(), "")
	require.NoError(t, err)
	writeUnit(t, r, "corrupt", `{"name": `)
	writeUnit(t, r, "listed", `["a"]`)
	writeUnit(t, r, "nullver", `{"version": null}`)
	nocolon := writeUnit(t, r, "nocolon", `{"version" "0.9.0"}`)

	for _, name := range []string{
		"corrupt", "listed", "nullver", "nocolon", "..", "a/b",
	} {
		t.Run(name, func(t *testing.T) {
			_, found, err := r.Load(ctx, name)
			assert.True(t, found, "unreadable is not absent")
			var uue *cerr.UnitUnreadableError
			require.True(t, errors.As(err, &uue), "got %v", err)
			assert.Equal(t, name, uue.Name)
		})
	}
	b, err := os.ReadFile(nocolon)
	require.NoError(t, err)
	assert.Equal(t, `{"version" "0.9.0"}`, string(b))
}

func TestYAMLUnit(t *testing.T) {
	ctx := context.Background()
	r, err := unitsrp.New(t.TempDir(), "units/{name}/unit.yml")
	require.NoError(t, err)
	path := writeUnit(t, r, "gamma", "name: gamma\nversion: \"0.9\"\n")

	rec, found, err := r.Load(ctx, "gamma")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "0.9", rec.Version)

	require.NoError(t, r.Save(ctx, "gamma", model.UnitRecord{Version: "0.10.0"}))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "name: gamma\nversion: \"0.10.0\"\n", string(b))
}
