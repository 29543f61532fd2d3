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

package listdiff_test

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/tools/txtar"
	"znkr.io/listdiff"
	"znkr.io/listdiff/internal/replay"
	"znkr.io/listdiff/internal/snapshot"
)

var update = flag.Bool("update", false, "update golden files")

// TestGolden compares the changesets for the snapshots in testdata/*.txtar. Every file has an old,
// a new and a changeset section. Snapshots use the text format of internal/snapshot.
func TestGolden(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	if err != nil {
		t.Fatalf("failed to list golden files: %v", err)
	}
	if len(files) == 0 {
		t.Fatalf("no golden files found")
	}

	for _, filename := range files {
		name := filepath.Base(filename)
		t.Run(name, func(t *testing.T) {
			ar, err := txtar.ParseFile(filename)
			if err != nil {
				t.Fatalf("failed to parse golden file: %v", err)
			}
			parts := make(map[string]*txtar.File, len(ar.Files))
			for i := range ar.Files {
				parts[ar.Files[i].Name] = &ar.Files[i]
			}
			for _, section := range []string{"old", "new", "changeset"} {
				if parts[section] == nil {
					t.Fatalf("golden file is missing section %q", section)
				}
			}

			x, err := snapshot.Parse(parts["old"].Data, snapshot.Text)
			if err != nil {
				t.Fatalf("failed to parse old snapshot: %v", err)
			}
			y, err := snapshot.Parse(parts["new"].Data, snapshot.Text)
			if err != nil {
				t.Fatalf("failed to parse new snapshot: %v", err)
			}

			var got string
			if x.Sectioned() || y.Sectioned() {
				xs, ys := x.ListSections(), y.ListSections()
				cs := listdiff.DiffSections[string](xs, ys)
				applied, err := replay.ApplySections(xs, ys, cs)
				if err != nil {
					t.Fatalf("failed to apply changeset: %v", err)
				}
				if diff := cmp.Diff(ys, applied, cmpopts.EquateEmpty()); diff != "" {
					t.Errorf("applying the changeset doesn't produce the new snapshot [-want,+got]:\n%s", diff)
				}
				got = cs.String()
			} else {
				cs := listdiff.Diff[string](x.Items, y.Items)
				applied, err := replay.Apply(x.Items, y.Items, cs)
				if err != nil {
					t.Fatalf("failed to apply changeset: %v", err)
				}
				if diff := cmp.Diff(y.Items, applied, cmpopts.EquateEmpty()); diff != "" {
					t.Errorf("applying the changeset doesn't produce the new snapshot [-want,+got]:\n%s", diff)
				}
				got = cs.String()
			}

			want := string(parts["changeset"].Data)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("changeset is different [-want,+got]:\n%s", diff)
			}

			if *update && got != want {
				parts["changeset"].Data = []byte(got)
				if err := os.WriteFile(filename, txtar.Format(ar), 0o644); err != nil {
					t.Fatalf("error writing golden file: %v", err)
				}
			}
		})
	}
}
