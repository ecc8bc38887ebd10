// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package log_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/goccy/go-json"
	"github.com/momeni/pvctl/pkg/core/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextAttrs(t *testing.T) {
	var buf bytes.Buffer
	h, err := log.NewHandler(&buf, "info", "json")
	require.NoError(t, err)
	prev := slog.Default()
	slog.SetDefault(slog.New(h))
	defer slog.SetDefault(prev)

	ctx := log.WithAttrs(context.Background(), log.Invocation("abc"))
	child := log.WithAttrs(ctx, log.Plugin("alpha"))
	log.Debug(child, "hidden")
	log.Warn(child, "bumped",
		log.Transition("1.0.0", "1.0.1"), log.Err("err", errors.New("boom")),
	)
	log.Info(ctx, "parent", log.DryRun(true), log.Err("err", nil))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2, "debug records must be skipped")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &rec))
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "bumped", rec["msg"])
	assert.Equal(t, "abc", rec["invocation"])
	assert.Equal(t, "alpha", rec["plugin"])
	assert.Equal(t, "boom", rec["err"])
	assert.Equal(t, map[string]any{"from": "1.0.0", "to": "1.0.1"}, rec["version"])

	rec = nil
	require.NoError(t, json.Unmarshal(lines[1], &rec))
	assert.Equal(t, "abc", rec["invocation"])
	assert.NotContains(t, rec, "plugin", "child attrs must not leak")
	assert.Equal(t, true, rec["dry_run"])
	assert.Equal(t, "no-error", rec["err"])
}

func TestNewHandler(t *testing.T) {
	for _, tc := range []struct {
		level, format string
		ok            bool
	}{
		{level: "debug", format: "text", ok: true},
		{level: "WARN", format: "json", ok: true},
		{level: "error", format: "", ok: true},
		{level: "trace", format: "text"},
		{level: "info", format: "xml"},
	} {
		_, err := log.NewHandler(&bytes.Buffer{}, tc.level, tc.format)
		assert.Equal(t, tc.ok, err == nil, "%s/%s: %v", tc.level, tc.format, err)
	}
}
