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

// Diffable is implemented by elements that can be compared with [Diff] and [DiffSections].
type Diffable[K comparable, T any] interface {
	// DiffIdentity returns the identity of the element. Elements with the same identity are the
	// same logical element, even if their content differs. If the second result is false, the
	// element has no identity and is never matched with another element.
	DiffIdentity() (K, bool)

	// IsContentEqual reports whether the element has the same content as other. It's only called
	// for elements with the same identity.
	IsContentEqual(other T) bool
}

// Section is an ordered group of items with its own identity.
type Section[K comparable, T any] struct {
	ID    K
	Items []T
}
