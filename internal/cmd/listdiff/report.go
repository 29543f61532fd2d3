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

package main

import "znkr.io/listdiff"

// The report types define the TOML output of a changeset.

type linearReport struct {
	Changes changes[int] `toml:"changes"`
}

type sectionedReport struct {
	Sections changes[int]    `toml:"sections"`
	Items    changes[string] `toml:"items"`
}

type changes[T any] struct {
	Deletes    []T       `toml:"deletes,omitempty"`
	Moves      []pair[T] `toml:"moves,omitempty"`
	Updates    []pair[T] `toml:"updates,omitempty"`
	Inserts    []T       `toml:"inserts,omitempty"`
	NewIndices []int     `toml:"new_indices,omitempty"`
}

type pair[T any] struct {
	Old T `toml:"old"`
	New T `toml:"new"`
}

func changesOf(cs listdiff.IndexChangeset) changes[int] {
	return changes[int]{
		Deletes:    cs.Deletes,
		Moves:      pairs(cs.Moves),
		Updates:    pairs(cs.Updates),
		Inserts:    cs.Inserts,
		NewIndices: cs.NewIndices,
	}
}

func pairs(ps []listdiff.IndexPair) []pair[int] {
	var out []pair[int]
	for _, p := range ps {
		out = append(out, pair[int]{p.Old, p.New})
	}
	return out
}

// Index paths are written as "section.item".
func pathChangesOf(cs listdiff.IndexPathChangeset) changes[string] {
	var out changes[string]
	for _, p := range cs.Deletes {
		out.Deletes = append(out.Deletes, p.String())
	}
	for _, p := range cs.Moves {
		out.Moves = append(out.Moves, pair[string]{p.Old.String(), p.New.String()})
	}
	for _, p := range cs.Updates {
		out.Updates = append(out.Updates, pair[string]{p.Old.String(), p.New.String()})
	}
	for _, p := range cs.Inserts {
		out.Inserts = append(out.Inserts, p.String())
	}
	return out
}
