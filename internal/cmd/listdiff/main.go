// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// listdiff compares two snapshot files and prints the changes that transform the first snapshot
// into the second.
//
// Usage:
//
//	listdiff [flags] OLD NEW
//
// Snapshots are read as text, TOML or YAML depending on the file extension. If both snapshots are
// flat lists of items, the items are compared directly. If either of them is divided into
// sections, the sections are compared first and then the items of all sections that exist in
// both snapshots.
package main

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/pflag"
	"znkr.io/listdiff"
	"znkr.io/listdiff/internal/snapshot"
)

type config struct {
	format   string
	content  bool
	parallel int
	strict   bool
	verbose  bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var cfg config
	flags := pflag.NewFlagSet("listdiff", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&cfg.format, "format", "f", "text", "output format, one of text or toml")
	flags.BoolVarP(&cfg.content, "content", "c", false, "print a unified diff for the content of every updated item")
	flags.IntVarP(&cfg.parallel, "parallel", "p", 1, "number of sections to compare in parallel")
	flags.BoolVar(&cfg.strict, "strict", false, "fail if an identity occurs more than once in a snapshot")
	flags.BoolVarP(&cfg.verbose, "verbose", "v", false, "log diagnostics to stderr")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: listdiff [flags] OLD NEW\n\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 2 {
		flags.Usage()
		return fmt.Errorf("expected 2 arguments, got %d", flags.NArg())
	}
	if cfg.format != "text" && cfg.format != "toml" {
		return fmt.Errorf("unknown output format %q", cfg.format)
	}

	level := slog.LevelWarn
	if cfg.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	old, err := snapshot.Load(flags.Arg(0))
	if err != nil {
		return fmt.Errorf("loading old snapshot: %w", err)
	}
	new, err := snapshot.Load(flags.Arg(1))
	if err != nil {
		return fmt.Errorf("loading new snapshot: %w", err)
	}

	var opts []listdiff.Option
	if cfg.strict {
		opts = append(opts, listdiff.StrictIdentities())
	}

	d := differ{cfg: &cfg, log: log, stdout: stdout, old: old, new: new}
	switch {
	case !old.Sectioned() && !new.Sectioned():
		return d.linear(opts)
	case old.Sectioned() && len(new.Items) > 0, new.Sectioned() && len(old.Items) > 0:
		return errors.New("cannot compare a flat snapshot with a sectioned snapshot")
	default:
		return d.sectioned(append(opts, listdiff.Parallel(cfg.parallel)))
	}
}

type differ struct {
	cfg      *config
	log      *slog.Logger
	stdout   io.Writer
	old, new *snapshot.Snapshot
}

func (d *differ) linear(opts []listdiff.Option) (err error) {
	defer recoverStrict(&err)

	start := time.Now()
	cs := listdiff.Diff[string](d.old.Items, d.new.Items, opts...)
	d.log.Debug("compared items",
		"old", len(d.old.Items),
		"new", len(d.new.Items),
		"changes", count(cs.All()),
		"duration", time.Since(start))

	switch d.cfg.format {
	case "toml":
		err = d.writeTOML(linearReport{Changes: changesOf(cs)})
	default:
		_, err = io.WriteString(d.stdout, cs.String())
	}
	if err != nil || !d.cfg.content {
		return err
	}
	for _, u := range cs.Updates {
		from := fmt.Sprintf("old/%d", u.Old)
		to := fmt.Sprintf("new/%d", u.New)
		if err := d.writeContent(from, to, d.old.Items[u.Old], d.new.Items[u.New]); err != nil {
			return err
		}
	}
	return nil
}

func (d *differ) sectioned(opts []listdiff.Option) (err error) {
	defer recoverStrict(&err)

	x, y := d.old.ListSections(), d.new.ListSections()
	start := time.Now()
	cs := listdiff.DiffSections[string](x, y, opts...)
	d.log.Debug("compared sections",
		"old", len(x),
		"new", len(y),
		"section_changes", count(cs.Sections.All()),
		"item_changes", count(cs.Items.All()),
		"duration", time.Since(start))

	switch d.cfg.format {
	case "toml":
		err = d.writeTOML(sectionedReport{
			Sections: changesOf(listdiff.IndexChangeset{
				Inserts:    cs.Sections.Inserts,
				Deletes:    cs.Sections.Deletes,
				Updates:    cs.Sections.Updates,
				Moves:      cs.Sections.Moves,
				NewIndices: cs.Sections.NewIndices,
			}),
			Items:    pathChangesOf(cs.Items),
		})
	default:
		_, err = io.WriteString(d.stdout, cs.String())
	}
	if err != nil || !d.cfg.content {
		return err
	}
	for _, u := range cs.Items.Updates {
		from, to := "old/"+u.Old.String(), "new/"+u.New.String()
		a := x[u.Old.Section].Items[u.Old.Item]
		b := y[u.New.Section].Items[u.New.Item]
		if err := d.writeContent(from, to, a, b); err != nil {
			return err
		}
	}
	return nil
}

func (d *differ) writeTOML(v any) error {
	enc := toml.NewEncoder(d.stdout)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode changeset: %w", err)
	}
	return nil
}

func (d *differ) writeContent(from, to string, a, b snapshot.Item) error {
	err := difflib.WriteUnifiedDiff(d.stdout, difflib.UnifiedDiff{
		A:        difflib.SplitLines(a.Content),
		B:        difflib.SplitLines(b.Content),
		FromFile: from + " (" + a.ID + ")",
		ToFile:   to + " (" + b.ID + ")",
		Context:  3,
	})
	if err != nil {
		return fmt.Errorf("failed to write content diff: %w", err)
	}
	return nil
}

// recoverStrict turns the panic raised for duplicate identities in strict mode into an error.
func recoverStrict(err *error) {
	r := recover()
	if r == nil {
		return
	}
	msg, ok := r.(string)
	if !ok {
		panic(r)
	}
	*err = errors.New(msg)
}

func count[T any](seq iter.Seq[T]) int {
	n := 0
	for range seq {
		n++
	}
	return n
}
