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

package snapshot

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

// RandomParams controls the shape of random snapshots.
type RandomParams struct {
	Sections  int     // Number of sections, 0 for a flat snapshot
	Items     int     // Maximum number of items in a flat snapshot or per section
	IDs       int     // Number of distinct item identities, small values produce duplicates
	Anonymous float64 // Probability that an item has no identity
	Rate      float64 // Probability of every kind of change in Mutate
}

// Random returns a random snapshot.
func Random(rng *rand.Rand, p RandomParams) *Snapshot {
	var s Snapshot
	if p.Sections == 0 {
		s.Items = randomItems(rng, p, rng.IntN(p.Items+1))
		return &s
	}
	s.Sections = make([]Section, p.Sections)
	for i := range s.Sections {
		s.Sections[i] = Section{
			ID:    fmt.Sprintf("s%d", i),
			Items: randomItems(rng, p, rng.IntN(p.Items+1)),
		}
	}
	return &s
}

// Mutate returns a random modification of s. Items and sections are deleted, inserted, updated and
// swapped with probability p.Rate. s is not modified.
func Mutate(rng *rand.Rand, s *Snapshot, p RandomParams) *Snapshot {
	var out Snapshot
	if !s.Sectioned() {
		out.Items = mutateItems(rng, s.Items, p)
		return &out
	}

	// Section IDs stay unique, inserted sections get IDs that aren't used in s.
	used := make(map[string]bool, len(s.Sections))
	for _, sec := range s.Sections {
		used[sec.ID] = true
	}
	next := len(s.Sections)
	for _, sec := range s.Sections {
		if rng.Float64() < p.Rate {
			continue
		}
		out.Sections = append(out.Sections, Section{ID: sec.ID, Items: mutateItems(rng, sec.Items, p)})
	}
	for range len(s.Sections) {
		if rng.Float64() < p.Rate {
			for used[fmt.Sprintf("s%d", next)] {
				next++
			}
			id := fmt.Sprintf("s%d", next)
			used[id] = true
			i := rng.IntN(len(out.Sections) + 1)
			sec := Section{ID: id, Items: randomItems(rng, p, rng.IntN(p.Items+1))}
			out.Sections = slices.Insert(out.Sections, i, sec)
		}
	}
	swap(rng, out.Sections, p.Rate)
	return &out
}

func mutateItems(rng *rand.Rand, items []Item, p RandomParams) []Item {
	var out []Item
	for _, it := range items {
		switch r := rng.Float64(); {
		case r < p.Rate:
			continue // delete
		case r < 2*p.Rate:
			it.Content = randomContent(rng)
		}
		out = append(out, it)
	}
	for range len(items) {
		if rng.Float64() < p.Rate {
			out = slices.Insert(out, rng.IntN(len(out)+1), randomItem(rng, p))
		}
	}
	swap(rng, out, p.Rate)
	return out
}

func swap[T any](rng *rand.Rand, s []T, rate float64) {
	if len(s) < 2 {
		return
	}
	for range len(s) {
		if rng.Float64() < rate {
			i, j := rng.IntN(len(s)), rng.IntN(len(s))
			s[i], s[j] = s[j], s[i]
		}
	}
}

func randomItems(rng *rand.Rand, p RandomParams, n int) []Item {
	if n == 0 {
		return nil
	}
	out := make([]Item, n)
	for i := range out {
		out[i] = randomItem(rng, p)
	}
	return out
}

func randomItem(rng *rand.Rand, p RandomParams) Item {
	it := Item{Content: randomContent(rng)}
	if rng.Float64() >= p.Anonymous {
		it.ID = fmt.Sprintf("i%d", rng.IntN(max(1, p.IDs)))
	}
	return it
}

func randomContent(rng *rand.Rand) string {
	return fmt.Sprintf("c%d", rng.IntN(4))
}
