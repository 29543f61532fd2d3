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
	"iter"
	"slices"
	"strings"
)

// Kind describes the kind of a change.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Kind
type Kind int

// The kinds are listed in the order in which changes have to be applied.
const (
	Delete Kind = iota // An element of the old collection is removed
	Move               // An element is moved to a new position
	Update             // The content of an element is replaced in place
	Insert             // An element of the new collection is added
)

// IndexPair is a pair of indices, one into the old and one into the new collection.
type IndexPair struct {
	Old, New int
}

// IndexPath is a two-dimensional index into a collection of sections.
type IndexPath struct {
	Section, Item int
}

func (p IndexPath) String() string { return fmt.Sprintf("%d.%d", p.Section, p.Item) }

// IndexPathPair is a pair of index paths, one into the old and one into the new collection.
type IndexPathPair struct {
	Old, New IndexPath
}

// Change describes a single change in an [IndexChangeset] or [IndexSetChangeset].
//
//   - For Delete, Old is the index of the removed element and New is -1.
//   - For Insert, New is the index of the inserted element and Old is -1.
//   - For Move and Update, Old and New are the indices of the element before and after.
type Change struct {
	Kind     Kind
	Old, New int
}

func (c Change) String() string {
	switch c.Kind {
	case Delete:
		return fmt.Sprintf("delete %d", c.Old)
	case Insert:
		return fmt.Sprintf("insert %d", c.New)
	default:
		return fmt.Sprintf("%s %d -> %d", strings.ToLower(c.Kind.String()), c.Old, c.New)
	}
}

// PathChange describes a single change in an [IndexPathChangeset]. The fields are set like the
// fields of [Change], unset index paths are {-1, -1}.
type PathChange struct {
	Kind     Kind
	Old, New IndexPath
}

func (c PathChange) String() string {
	switch c.Kind {
	case Delete:
		return fmt.Sprintf("delete %v", c.Old)
	case Insert:
		return fmt.Sprintf("insert %v", c.New)
	default:
		return fmt.Sprintf("%s %v -> %v", strings.ToLower(c.Kind.String()), c.Old, c.New)
	}
}

var noPath = IndexPath{-1, -1}

// IndexChangeset describes the changes necessary to transform one collection into another.
//
// Deletes refer to indices in the old collection, inserts refer to indices in the new collection.
// Updates and moves refer to both. The changes need to be applied in the order deletes, moves,
// updates and inserts.
type IndexChangeset struct {
	Inserts []int       // Indices of elements that only exist in the new collection
	Deletes []int       // Indices of elements that only exist in the old collection
	Updates []IndexPair // Matched elements with different content
	Moves   []IndexPair // Matched elements that aren't at their expected position

	// NewIndices maps every index of the old collection to its index in the new collection or
	// -1 if the element was removed.
	NewIndices []int
}

// NewIndex returns the index in the new collection for the element at index i in the old
// collection. It returns false if the element was removed.
func (c IndexChangeset) NewIndex(i int) (int, bool) {
	j := c.NewIndices[i]
	return j, j >= 0
}

// IsEmpty reports whether the changeset contains no changes.
func (c IndexChangeset) IsEmpty() bool {
	return len(c.Inserts) == 0 && len(c.Deletes) == 0 && len(c.Updates) == 0 && len(c.Moves) == 0
}

// All returns all changes in the order they need to be applied.
func (c IndexChangeset) All() iter.Seq[Change] {
	return changes(c.Deletes, c.Moves, c.Updates, c.Inserts)
}

func (c IndexChangeset) String() string { return render(c.All()) }

// Paths lifts the changeset into two-dimensional coordinates. Indices into the old collection are
// placed in fromSection and indices into the new collection in toSection.
func (c IndexChangeset) Paths(fromSection, toSection int) IndexPathChangeset {
	var out IndexPathChangeset
	if len(c.Inserts) > 0 {
		out.Inserts = make([]IndexPath, len(c.Inserts))
		for i, t := range c.Inserts {
			out.Inserts[i] = IndexPath{toSection, t}
		}
	}
	if len(c.Deletes) > 0 {
		out.Deletes = make([]IndexPath, len(c.Deletes))
		for i, s := range c.Deletes {
			out.Deletes[i] = IndexPath{fromSection, s}
		}
	}
	out.Updates = liftPairs(c.Updates, fromSection, toSection)
	out.Moves = liftPairs(c.Moves, fromSection, toSection)
	return out
}

func liftPairs(pairs []IndexPair, fromSection, toSection int) []IndexPathPair {
	if len(pairs) == 0 {
		return nil
	}
	out := make([]IndexPathPair, len(pairs))
	for i, p := range pairs {
		out[i] = IndexPathPair{IndexPath{fromSection, p.Old}, IndexPath{toSection, p.New}}
	}
	return out
}

// IndexPathChangeset describes changes to items in a collection of sections.
type IndexPathChangeset struct {
	Inserts []IndexPath
	Deletes []IndexPath
	Updates []IndexPathPair
	Moves   []IndexPathPair
}

// IsEmpty reports whether the changeset contains no changes.
func (c IndexPathChangeset) IsEmpty() bool {
	return len(c.Inserts) == 0 && len(c.Deletes) == 0 && len(c.Updates) == 0 && len(c.Moves) == 0
}

// Concat returns a changeset with the changes of c followed by the changes of other.
func (c IndexPathChangeset) Concat(other IndexPathChangeset) IndexPathChangeset {
	return ConcatPaths(c, other)
}

// ConcatPaths concatenates changesets into one changeset.
func ConcatPaths(cs ...IndexPathChangeset) IndexPathChangeset {
	var ni, nd, nu, nm int
	for _, c := range cs {
		ni += len(c.Inserts)
		nd += len(c.Deletes)
		nu += len(c.Updates)
		nm += len(c.Moves)
	}
	var out IndexPathChangeset
	if ni > 0 {
		out.Inserts = make([]IndexPath, 0, ni)
	}
	if nd > 0 {
		out.Deletes = make([]IndexPath, 0, nd)
	}
	if nu > 0 {
		out.Updates = make([]IndexPathPair, 0, nu)
	}
	if nm > 0 {
		out.Moves = make([]IndexPathPair, 0, nm)
	}
	for _, c := range cs {
		out.Inserts = append(out.Inserts, c.Inserts...)
		out.Deletes = append(out.Deletes, c.Deletes...)
		out.Updates = append(out.Updates, c.Updates...)
		out.Moves = append(out.Moves, c.Moves...)
	}
	return out
}

// All returns all changes in the order they need to be applied.
func (c IndexPathChangeset) All() iter.Seq[PathChange] {
	return func(yield func(PathChange) bool) {
		for _, p := range c.Deletes {
			if !yield(PathChange{Delete, p, noPath}) {
				return
			}
		}
		for _, p := range c.Moves {
			if !yield(PathChange{Move, p.Old, p.New}) {
				return
			}
		}
		for _, p := range c.Updates {
			if !yield(PathChange{Update, p.Old, p.New}) {
				return
			}
		}
		for _, p := range c.Inserts {
			if !yield(PathChange{Insert, noPath, p}) {
				return
			}
		}
	}
}

func (c IndexPathChangeset) String() string { return render(c.All()) }

// IndexSet is a set of indices, sorted in increasing order.
type IndexSet []int

// Contains reports whether i is in the set.
func (s IndexSet) Contains(i int) bool {
	_, found := slices.BinarySearch(s, i)
	return found
}

// Len returns the number of indices in the set.
func (s IndexSet) Len() int { return len(s) }

// IndexSetChangeset describes the changes necessary to transform one collection of sections into
// another. It has the same semantics as [IndexChangeset].
type IndexSetChangeset struct {
	Inserts IndexSet
	Deletes IndexSet
	Updates []IndexPair
	Moves   []IndexPair

	// NewIndices maps every index of the old collection to its index in the new collection or
	// -1 if the section was removed.
	NewIndices []int
}

// NewIndex returns the index in the new collection for the section at index i in the old
// collection. It returns false if the section was removed.
func (c IndexSetChangeset) NewIndex(i int) (int, bool) {
	j := c.NewIndices[i]
	return j, j >= 0
}

// IsEmpty reports whether the changeset contains no changes.
func (c IndexSetChangeset) IsEmpty() bool {
	return len(c.Inserts) == 0 && len(c.Deletes) == 0 && len(c.Updates) == 0 && len(c.Moves) == 0
}

// All returns all changes in the order they need to be applied.
func (c IndexSetChangeset) All() iter.Seq[Change] {
	return changes(c.Deletes, c.Moves, c.Updates, c.Inserts)
}

func (c IndexSetChangeset) String() string { return render(c.All()) }

// SectionedChangeset combines the changes to sections with the changes to the items inside of
// sections that exist in both collections.
type SectionedChangeset struct {
	Sections IndexSetChangeset
	Items    IndexPathChangeset
}

// IsEmpty reports whether the changeset contains no changes.
func (c SectionedChangeset) IsEmpty() bool {
	return c.Sections.IsEmpty() && c.Items.IsEmpty()
}

func (c SectionedChangeset) String() string {
	var sb strings.Builder
	for ch := range c.Sections.All() {
		sb.WriteString("section ")
		sb.WriteString(ch.String())
		sb.WriteByte('\n')
	}
	for ch := range c.Items.All() {
		sb.WriteString("item ")
		sb.WriteString(ch.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

func changes(deletes []int, moves, updates []IndexPair, inserts []int) iter.Seq[Change] {
	return func(yield func(Change) bool) {
		for _, s := range deletes {
			if !yield(Change{Delete, s, -1}) {
				return
			}
		}
		for _, p := range moves {
			if !yield(Change{Move, p.Old, p.New}) {
				return
			}
		}
		for _, p := range updates {
			if !yield(Change{Update, p.Old, p.New}) {
				return
			}
		}
		for _, t := range inserts {
			if !yield(Change{Insert, -1, t}) {
				return
			}
		}
	}
}

func render[C fmt.Stringer](seq iter.Seq[C]) string {
	var sb strings.Builder
	for c := range seq {
		sb.WriteString(c.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
