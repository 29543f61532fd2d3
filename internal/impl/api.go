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

// Package impl matches the elements of two slices by identity. The matching is the internal
// representation that's translated into the user facing changesets.
package impl

// Matching is the result of matching the elements of x and y by identity.
type Matching struct {
	// OldToNew[s] is the index into y that x[s] was matched with or -1 if x[s] wasn't matched.
	OldToNew []int

	// NewToOld[t] is the index into x that y[t] was matched with or -1 if y[t] wasn't matched.
	NewToOld []int

	// Updated[t] is set if y[t] was matched and its content differs from the matching element in x.
	Updated []bool

	// Number of elements in x and y whose identity was already used by an earlier element of the
	// same slice.
	DuplicatesX, DuplicatesY int
}

// entry tracks all occurrences of a single identity.
type entry struct {
	head int // Top of the stack of unmatched indices into x or -1 if the stack is empty.
}

// Match matches the elements of x and y that share the same identity.
//
// Elements for which key reports no identity are never matched. If an identity appears more than
// once, the occurrences are matched in order: the first occurrence in x matches the first
// occurrence in y and so on. Remaining occurrences stay unmatched.
//
// eq is only called for matched pairs, with the element from x as the first argument.
func Match[T any, K comparable](x, y []T, key func(T) (K, bool), eq func(a, b T) bool) Matching {
	n, m := len(x), len(y)

	// Allocate all index vectors at once.
	buf := make([]int, 2*n+2*m)
	var oldToNew, newToOld, next, ids []int
	oldToNew, buf = buf[:n:n], buf[n:]
	next, buf = buf[:n:n], buf[n:]
	newToOld, buf = buf[:m:m], buf[m:]
	ids, buf = buf[:m:m], buf[m:]
	if len(buf) != 0 && cap(buf) != 0 {
		panic("something went wrong during buffer assignments")
	}

	var res Matching
	idx := make(map[K]int, m) // map from identity to entry
	entries := make([]entry, 0, m)

	// Pass 1: Create an entry for every identity in y. ids[t] is the entry for y[t] or -1 if y[t]
	// has no identity.
	for t, e := range y {
		k, ok := key(e)
		if !ok {
			ids[t] = -1
			continue
		}
		id, found := idx[k]
		if found {
			res.DuplicatesY++
		} else {
			id = len(entries)
			idx[k] = id
			entries = append(entries, entry{head: -1})
		}
		ids[t] = id
	}

	// Pass 2: Walk x backwards and push every index on the stack of its entry. The stacks are
	// linked through next, popping them yields the indices in increasing order. Identities that
	// only appear in x still get an entry to detect duplicates.
	for s := n - 1; s >= 0; s-- {
		oldToNew[s] = -1
		next[s] = -1
		k, ok := key(x[s])
		if !ok {
			continue
		}
		id, found := idx[k]
		if !found {
			id = len(entries)
			idx[k] = id
			entries = append(entries, entry{head: -1})
		} else if entries[id].head >= 0 {
			res.DuplicatesX++
		}
		next[s] = entries[id].head
		entries[id].head = s
	}

	// Pass 3: Walk y forward and pop the next unmatched index into x for every element.
	updated := make([]bool, m)
	for t := range y {
		newToOld[t] = -1
		id := ids[t]
		if id < 0 {
			continue
		}
		s := entries[id].head
		if s < 0 {
			continue // all occurrences in x are used up, this is an insertion
		}
		entries[id].head = next[s]
		newToOld[t] = s
		oldToNew[s] = t
		updated[t] = !eq(x[s], y[t])
	}

	res.OldToNew = oldToNew
	res.NewToOld = newToOld
	res.Updated = updated
	return res
}
