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

// Package replay applies changesets to the old collection to reconstruct the new collection.
//
// This package is only for validation.
package replay

import (
	"fmt"
	"slices"

	"znkr.io/listdiff"
)

// Apply applies cs to x and returns the result. Inserted elements and the new content of updated
// elements are taken from y.
//
// The changes are applied in the order deletes, moves, updates, inserts. Elements of x that are
// neither deleted nor moved keep their relative order and fill the positions that are not the
// destination of a move or an insert.
func Apply[T any](x, y []T, cs listdiff.IndexChangeset) ([]T, error) {
	if len(cs.NewIndices) != len(x) {
		return nil, fmt.Errorf("changeset has %d new indices for %d elements", len(cs.NewIndices), len(x))
	}
	n := len(x) - len(cs.Deletes) + len(cs.Inserts)
	if n != len(y) {
		return nil, fmt.Errorf("changeset produces %d elements, want %d", n, len(y))
	}

	out := make([]T, n)
	origin := make([]int, n) // index into x for every element in out, -1 for insertions
	filled := make([]bool, n)
	removed := make([]bool, len(x))

	remove := func(s int) error {
		if s < 0 || s >= len(x) {
			return fmt.Errorf("old index %d out of range", s)
		}
		if removed[s] {
			return fmt.Errorf("old index %d is used more than once", s)
		}
		removed[s] = true
		return nil
	}
	place := func(t int, e T, s int) error {
		if t < 0 || t >= n {
			return fmt.Errorf("new index %d out of range", t)
		}
		if filled[t] {
			return fmt.Errorf("new index %d is used more than once", t)
		}
		filled[t] = true
		out[t] = e
		origin[t] = s
		return nil
	}

	for _, s := range cs.Deletes {
		if err := remove(s); err != nil {
			return nil, fmt.Errorf("delete: %w", err)
		}
	}
	for _, mv := range cs.Moves {
		if err := remove(mv.Old); err != nil {
			return nil, fmt.Errorf("move: %w", err)
		}
		if err := place(mv.New, x[mv.Old], mv.Old); err != nil {
			return nil, fmt.Errorf("move: %w", err)
		}
	}
	for _, t := range cs.Inserts {
		if err := place(t, y[t], -1); err != nil {
			return nil, fmt.Errorf("insert: %w", err)
		}
	}

	// Fill the remaining positions with the elements that stay in place.
	s := 0
	for t := range out {
		if filled[t] {
			continue
		}
		for s < len(x) && removed[s] {
			s++
		}
		if s == len(x) {
			return nil, fmt.Errorf("no element left for new index %d", t)
		}
		out[t] = x[s]
		origin[t] = s
		s++
	}

	for _, up := range cs.Updates {
		if up.New < 0 || up.New >= n {
			return nil, fmt.Errorf("update: new index %d out of range", up.New)
		}
		if origin[up.New] != up.Old {
			return nil, fmt.Errorf("update: element at new index %d comes from old index %d, not %d", up.New, origin[up.New], up.Old)
		}
		out[up.New] = y[up.New]
	}

	// Every element needs to end up where NewIndices says it does.
	for t, s := range origin {
		if s >= 0 && cs.NewIndices[s] != t {
			return nil, fmt.Errorf("old index %d ends up at new index %d, but new indices say %d", s, t, cs.NewIndices[s])
		}
	}
	return out, nil
}

// ApplySections applies cs to the sections x and returns the result. Inserted sections, inserted
// items and the new content of updated items are taken from y.
func ApplySections[K comparable, T any](x, y []listdiff.Section[K, T], cs listdiff.SectionedChangeset) ([]listdiff.Section[K, T], error) {
	sections, err := Apply(x, y, listdiff.IndexChangeset{
		Inserts:    cs.Sections.Inserts,
		Deletes:    cs.Sections.Deletes,
		Updates:    cs.Sections.Updates,
		Moves:      cs.Sections.Moves,
		NewIndices: cs.Sections.NewIndices,
	})
	if err != nil {
		return nil, fmt.Errorf("sections: %w", err)
	}

	// Split the item changes by pair of sections.
	type pair struct{ from, to int }
	items := make(map[pair]*listdiff.IndexChangeset)
	get := func(from, to int) (*listdiff.IndexChangeset, error) {
		if from < 0 || from >= len(x) || to < 0 || to >= len(y) {
			return nil, fmt.Errorf("section pair %d -> %d out of range", from, to)
		}
		if cs.Sections.NewIndices[from] != to {
			return nil, fmt.Errorf("section %d doesn't become section %d", from, to)
		}
		p := pair{from, to}
		c, ok := items[p]
		if !ok {
			c = &listdiff.IndexChangeset{}
			items[p] = c
		}
		return c, nil
	}
	for _, p := range cs.Items.Deletes {
		if p.Section < 0 || p.Section >= len(x) {
			return nil, fmt.Errorf("item delete: section %d out of range", p.Section)
		}
		c, err := get(p.Section, cs.Sections.NewIndices[p.Section])
		if err != nil {
			return nil, fmt.Errorf("item delete: %w", err)
		}
		c.Deletes = append(c.Deletes, p.Item)
	}
	for _, p := range cs.Items.Inserts {
		s := slices.Index(cs.Sections.NewIndices, p.Section)
		if s < 0 {
			return nil, fmt.Errorf("item insert: section %d is inserted", p.Section)
		}
		c, err := get(s, p.Section)
		if err != nil {
			return nil, fmt.Errorf("item insert: %w", err)
		}
		c.Inserts = append(c.Inserts, p.Item)
	}
	for _, p := range cs.Items.Moves {
		c, err := get(p.Old.Section, p.New.Section)
		if err != nil {
			return nil, fmt.Errorf("item move: %w", err)
		}
		c.Moves = append(c.Moves, listdiff.IndexPair{Old: p.Old.Item, New: p.New.Item})
	}
	for _, p := range cs.Items.Updates {
		c, err := get(p.Old.Section, p.New.Section)
		if err != nil {
			return nil, fmt.Errorf("item update: %w", err)
		}
		c.Updates = append(c.Updates, listdiff.IndexPair{Old: p.Old.Item, New: p.New.Item})
	}

	for s, t := range cs.Sections.NewIndices {
		if t < 0 {
			continue
		}
		c := items[pair{s, t}]
		if c == nil {
			c = &listdiff.IndexChangeset{}
		}
		c.NewIndices = newIndices(len(x[s].Items), c)
		applied, err := Apply(x[s].Items, y[t].Items, *c)
		if err != nil {
			return nil, fmt.Errorf("items of section %d -> %d: %w", s, t, err)
		}
		sections[t].Items = applied
	}
	return sections, nil
}

// newIndices reconstructs the index mapping for items, which isn't part of a path changeset.
func newIndices(n int, c *listdiff.IndexChangeset) []int {
	if n == 0 {
		return nil
	}
	out := make([]int, n)
	deleted := make([]bool, n)
	moved := make([]bool, n)
	for _, s := range c.Deletes {
		if s >= 0 && s < n {
			deleted[s] = true
			out[s] = -1
		}
	}
	for _, mv := range c.Moves {
		if mv.Old >= 0 && mv.Old < n {
			moved[mv.Old] = true
			out[mv.Old] = mv.New
		}
	}
	inserted := make(map[int]bool, len(c.Inserts))
	for _, t := range c.Inserts {
		inserted[t] = true
	}
	taken := make(map[int]bool, len(c.Moves))
	for _, mv := range c.Moves {
		taken[mv.New] = true
	}
	t := 0
	for s := range out {
		if deleted[s] || moved[s] {
			continue
		}
		for inserted[t] || taken[t] {
			t++
		}
		out[s] = t
		t++
	}
	return out
}
