// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package text implements the reconuc.Reporter interface by rendering
// the reports as aligned human-readable tables and log-like lines.
// Colors are optional and must be asked for explicitly, since the
// terminal detection belongs to the caller (e.g., the CLI), not here.
package text

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/momeni/pvctl/pkg/core/model"
	"github.com/momeni/pvctl/pkg/core/usecase/reconuc"
	"github.com/muesli/termenv"
)

// Reporter renders reports as text into its writer.
type Reporter struct {
	w     io.Writer
	color bool
	quiet bool
	p     palette
}

var _ reconuc.Reporter = (*Reporter)(nil)

// Option is a functional option for the text Reporter.
type Option func(r *Reporter)

// WithColor enables or disables the ANSI colors.
// Colors are disabled by default.
func WithColor(enabled bool) Option {
	return func(r *Reporter) {
		r.color = enabled
	}
}

// WithQuiet hides the matching entries of validation reports, so only
// the problematic entries and the summary are rendered.
func WithQuiet(quiet bool) Option {
	return func(r *Reporter) {
		r.quiet = quiet
	}
}

// New instantiates a text Reporter which writes into w.
func New(w io.Writer, opts ...Option) *Reporter {
	r := &Reporter{w: w}
	for _, opt := range opts {
		opt(r)
	}
	r.p = newPalette(w, r.color)
	return r
}

type style func(string) string

// palette holds the styles which are used for rendering. All of them
// return their argument intact when colors are disabled.
type palette struct {
	bold, red, green, yellow, blue style
}

func newPalette(w io.Writer, color bool) palette {
	if !color {
		plain := func(s string) string { return s }
		return palette{plain, plain, plain, plain, plain}
	}
	re := lipgloss.NewRenderer(w)
	re.SetColorProfile(termenv.ANSI)
	fg := func(c string) style {
		render := re.NewStyle().Foreground(lipgloss.Color(c)).Render
		return func(s string) string { return render(s) }
	}
	bold := re.NewStyle().Bold(true).Render
	return palette{
		bold:   func(s string) string { return bold(s) },
		red:    fg("1"),
		green:  fg("2"),
		yellow: fg("3"),
		blue:   fg("4"),
	}
}

// cell renders s with the st style and pads it with spaces to width
// runes (keeping at least one space), so styled cells remain aligned.
func cell(st style, s string, width int) string {
	pad := width - utf8.RuneCountInString(s)
	if pad < 1 {
		pad = 1
	}
	return st(s) + strings.Repeat(" ", pad)
}

func (r *Reporter) printf(format string, args ...any) error {
	_, err := fmt.Fprintf(r.w, format, args...)
	return err
}

func (r *Reporter) info(msg string) error {
	return r.printf("%s %s\n", r.p.blue("[INFO]"), msg)
}

func (r *Reporter) ok(msg string) error {
	return r.printf("%s %s\n", r.p.green("[OK]"), msg)
}

func (r *Reporter) warn(msg string) error {
	return r.printf("%s %s\n", r.p.yellow("[WARN]"), msg)
}

func (r *Reporter) fail(msg string) error {
	return r.printf("%s %s\n", r.p.red("[ERROR]"), msg)
}

// ReportValidation renders a validation table and its summary.
func (r *Reporter) ReportValidation(
	_ context.Context, rep *model.ValidationReport,
) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", r.p.bold("=== Plugin Version Validation ==="))
	fmt.Fprintf(&b, "%-35s %-15s %-15s %s\n",
		"PLUGIN", "REGISTRY", "UNIT", "STATUS",
	)
	b.WriteString(strings.Repeat("-", 80) + "\n")
	for _, res := range rep.Results {
		if r.quiet && res.Status == model.EntryMatch {
			continue
		}
		fmt.Fprintf(&b, "%s%-15s %-15s %s\n",
			cell(r.p.bold, res.Name, 36),
			res.RegistryVersion, res.UnitVersion,
			r.statusStyle(res.Status)(string(res.Status)),
		)
	}
	c := rep.Counts
	fmt.Fprintf(&b, "\n%s\n", r.p.bold("=== Summary ==="))
	fmt.Fprintf(&b, "Total plugins: %d\n", c.Total)
	fmt.Fprintf(&b, "Matching:      %s\n", r.p.green(fmt.Sprint(c.Matching)))
	fmt.Fprintf(&b, "Mismatched:    %s\n", r.p.red(fmt.Sprint(c.Mismatched)))
	fmt.Fprintf(&b, "Missing:       %s\n", r.p.yellow(fmt.Sprint(c.Missing)))
	if c.Unreadable > 0 {
		fmt.Fprintf(&b, "Unreadable:    %s\n",
			r.p.red(fmt.Sprint(c.Unreadable)),
		)
	}
	b.WriteString("\n")
	if err := r.printf("%s", b.String()); err != nil {
		return err
	}
	if rep.Status == model.ValidationSuccess {
		return r.ok("All versions are in sync!")
	}
	return r.fail(fmt.Sprintf("Version validation failed (%s)", rep.Status))
}

func (r *Reporter) statusStyle(s model.EntryStatus) style {
	switch s {
	case model.EntryMatch:
		return r.p.green
	case model.EntryMissing:
		return r.p.yellow
	default:
		return r.p.red
	}
}

// ReportSync renders the entries which were (or would be) updated,
// skipped, or failed. Entries which are already in sync are omitted.
func (r *Reporter) ReportSync(_ context.Context, rep *model.SyncReport) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", r.p.bold("=== Version Sync ==="))
	fmt.Fprintf(&b, "%-35s %-12s %-12s %s\n",
		"PLUGIN", "REGISTRY", "UNIT", "ACTION",
	)
	b.WriteString(strings.Repeat("-", 95) + "\n")
	for _, res := range rep.Results {
		var action string
		var st style
		switch res.Action {
		case model.SyncInSync:
			continue
		case model.SyncSkipped:
			action, st = "skipped (no unit manifest)", r.p.yellow
		case model.SyncUnitUpdated:
			action, st = "unit -> "+res.Winner, r.p.green
		case model.SyncRegistryUpdated:
			action, st = "registry -> "+res.Winner, r.p.green
		default:
			action, st = "failed: "+errString(res.Err), r.p.red
		}
		fmt.Fprintf(&b, "%-35s %-12s %-12s %s\n",
			res.Name, res.RegistryVersion, res.UnitVersion, st(action),
		)
	}
	b.WriteString("\n")
	if err := r.printf("%s", b.String()); err != nil {
		return err
	}
	if rep.DryRun {
		return r.info(fmt.Sprintf("[DRY-RUN] Would sync %d plugins", rep.Synced))
	}
	if rep.Failed > 0 {
		return r.fail(fmt.Sprintf(
			"Synced %d plugins, %d failed", rep.Synced, rep.Failed,
		))
	}
	return r.ok(fmt.Sprintf("Synced %d plugins", rep.Synced))
}

// ReportBump renders the outcome of a single bump.
func (r *Reporter) ReportBump(_ context.Context, rep *model.BumpReport) error {
	return r.bump(rep)
}

func (r *Reporter) bump(rep *model.BumpReport) error {
	if rep.DryRun {
		msg := fmt.Sprintf("[DRY-RUN] Would bump %s: %s -> %s",
			rep.Name, rep.From, rep.To,
		)
		if err := r.info(msg); err != nil {
			return err
		}
		if rep.Warning != "" {
			return r.warn(rep.Warning)
		}
		return nil
	}
	if err := r.info(fmt.Sprintf(
		"Bumping %s: %s -> %s", rep.Name, rep.From, rep.To,
	)); err != nil {
		return err
	}
	if rep.RegistryUpdated {
		if err := r.ok("Updated registry"); err != nil {
			return err
		}
	}
	if rep.UnitUpdated {
		if err := r.ok("Updated unit manifest of " + rep.Name); err != nil {
			return err
		}
	}
	if rep.Warning != "" {
		if err := r.warn(rep.Warning); err != nil {
			return err
		}
	}
	return r.printf("%s\n", r.p.green(fmt.Sprintf(
		"Successfully bumped %s to %s", rep.Name, rep.To,
	)))
}

// ReportBumpAll renders every bump outcome followed by a summary.
func (r *Reporter) ReportBumpAll(
	_ context.Context, rep *model.BumpAllReport,
) error {
	if err := r.info(fmt.Sprintf(
		"Bumping %s version for all %d plugins...",
		rep.Component, len(rep.Outcomes),
	)); err != nil {
		return err
	}
	for _, o := range rep.Outcomes {
		if err := r.printf("\n"); err != nil {
			return err
		}
		if o.Err != nil {
			if err := r.fail(fmt.Sprintf(
				"Bumping %s failed: %v", o.Name, o.Err,
			)); err != nil {
				return err
			}
			continue
		}
		if err := r.bump(o.Report); err != nil {
			return err
		}
	}
	return r.printf("\n%s\nSuccessful: %s\nFailed:     %s\n",
		r.p.bold("=== Bump Summary ==="),
		r.p.green(fmt.Sprint(rep.Succeeded)),
		r.p.red(fmt.Sprint(rep.Failed)),
	)
}

func errString(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
