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

package listdiff

import (
	"fmt"

	"znkr.io/listdiff/internal/config"
	"znkr.io/listdiff/internal/impl"
)

// Diff compares the elements of x and y by identity and returns the changes necessary to convert
// from one to the other.
//
// Elements of x and y that share the same identity are matched. Matched elements with different
// content are reported as updates; matched elements that don't end up at their position as a side
// effect of the deletions and insertions are reported as moves. All other elements are deleted or
// inserted.
//
// The type parameter K can't be inferred and has to be provided explicitly:
//
//	cs := listdiff.Diff[string](x, y)
//
// The following option is supported: [listdiff.StrictIdentities]
func Diff[K comparable, T Diffable[K, T]](x, y []T, opts ...Option) IndexChangeset {
	return DiffFunc(x, y, identity[K, T], contentEqual[K, T], opts...)
}

// DiffFunc compares the elements of x and y by identity and returns the changes necessary to
// convert from one to the other.
//
// key returns the identity of an element or false if the element has no identity. eq reports if
// two elements with the same identity have the same content, the element from x is passed as a.
//
// The following option is supported: [listdiff.StrictIdentities]
func DiffFunc[T any, K comparable](x, y []T, key func(T) (K, bool), eq func(a, b T) bool, opts ...Option) IndexChangeset {
	cfg := config.FromOptions(opts, config.StrictIdentities)
	return diff(x, y, key, eq, cfg)
}

func diff[T any, K comparable](x, y []T, key func(T) (K, bool), eq func(a, b T) bool, cfg config.Config) IndexChangeset {
	m := impl.Match(x, y, key, eq)
	if cfg.StrictIdentities && m.DuplicatesX+m.DuplicatesY > 0 {
		panic(fmt.Sprintf("listdiff: found %d duplicate identities in old and %d in new collection", m.DuplicatesX, m.DuplicatesY))
	}
	return changeset(m)
}

func identity[K comparable, T Diffable[K, T]](e T) (K, bool) { return e.DiffIdentity() }

func contentEqual[K comparable, T Diffable[K, T]](a, b T) bool { return a.IsContentEqual(b) }

// changeset classifies the matching into deletions, insertions, updates and moves.
func changeset(m impl.Matching) IndexChangeset {
	n, k := len(m.OldToNew), len(m.NewToOld)

	// offsets[s] is the number of deletions before x[s], offsets[n+t] the number of insertions
	// before y[t].
	offsets := make([]int, n+k)

	var cs IndexChangeset
	deleted := 0
	for s, t := range m.OldToNew {
		offsets[s] = deleted
		if t < 0 {
			cs.Deletes = append(cs.Deletes, s)
			deleted++
		}
	}
	inserted := 0
	for t, s := range m.NewToOld {
		offsets[n+t] = inserted
		if s < 0 {
			cs.Inserts = append(cs.Inserts, t)
			inserted++
		}
	}

	for t, s := range m.NewToOld {
		if s < 0 {
			continue
		}
		if m.Updated[t] {
			cs.Updates = append(cs.Updates, IndexPair{s, t})
		}
		// Where would x[s] end up if only the deletions and insertions were applied?
		if s-offsets[s]+offsets[n+t] != t {
			cs.Moves = append(cs.Moves, IndexPair{s, t})
		}
	}

	if n > 0 {
		cs.NewIndices = m.OldToNew
	}

	if n+len(cs.Inserts)-len(cs.Deletes) != k {
		panic(fmt.Sprintf("listdiff: inconsistent changeset: %d old + %d inserts - %d deletes != %d new", n, len(cs.Inserts), len(cs.Deletes), k))
	}
	return cs
}
