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

// Package listdiff provides functions to compare two snapshots of a collection of identifiable
// elements, for example the rows of a list or the cells of a grid, and compute the inserts,
// deletes, updates and moves that transform one into the other.
//
// Unlike a line-based diff, elements are matched by identity, not by content. An element that
// keeps its identity but changes its content is an update, an element that keeps its identity but
// changes its position is a move. This is what a user interface needs to animate the transition
// between two snapshots.
//
// The main functions are [Diff], which compares two slices of [Diffable] elements, and
// [DiffSections], which compares two slices of [Section]s and the items in them. [DiffFunc] and
// [DiffSectionsFunc] do the same for arbitrary element types using identity and equality
// functions.
//
// Changesets have to be applied in the order: deletes, moves, updates, inserts. Deletes and the
// sources of moves and updates refer to the old collection, inserts and the destinations of moves
// and updates refer to the new collection.
//
// Performance: The time and space complexity is O(N) where N = len(x) + len(y), assuming O(1) map
// operations on identities.
package listdiff
