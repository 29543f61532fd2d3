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
	"crypto/sha256"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type section = Section[string, item]

func TestDiffSections(t *testing.T) {
	tests := []struct {
		name string
		x, y []section
		want SectionedChangeset
	}{
		{
			name: "empty",
			want: SectionedChangeset{},
		},
		{
			name: "identical",
			x:    []section{{"S1", items("a b")}, {"S2", items("c")}},
			y:    []section{{"S1", items("a b")}, {"S2", items("c")}},
			want: SectionedChangeset{
				Sections: IndexSetChangeset{NewIndices: []int{0, 1}},
			},
		},
		{
			name: "delete-insert-retain",
			x:    []section{{"S1", items("a b")}, {"S2", items("c")}},
			y:    []section{{"S2", items("c d")}, {"S3", items("e")}},
			want: SectionedChangeset{
				Sections: IndexSetChangeset{
					Inserts:    IndexSet{1},
					Deletes:    IndexSet{0},
					NewIndices: []int{-1, 0},
				},
				Items: IndexPathChangeset{
					Inserts: []IndexPath{{0, 1}},
				},
			},
		},
		{
			name: "moved-sections-with-moved-items",
			x:    []section{{"A", items("a b")}, {"B", items("c")}},
			y:    []section{{"B", items("c")}, {"A", items("b a")}},
			want: SectionedChangeset{
				Sections: IndexSetChangeset{
					Moves:      []IndexPair{{1, 0}, {0, 1}},
					NewIndices: []int{1, 0},
				},
				Items: IndexPathChangeset{
					Moves: []IndexPathPair{
						{IndexPath{0, 1}, IndexPath{1, 0}},
						{IndexPath{0, 0}, IndexPath{1, 1}},
					},
				},
			},
		},
		{
			name: "item-update",
			x:    []section{{"A", items("a1 b")}},
			y:    []section{{"A", items("a2 b")}},
			want: SectionedChangeset{
				Sections: IndexSetChangeset{NewIndices: []int{0}},
				Items: IndexPathChangeset{
					Updates: []IndexPathPair{{IndexPath{0, 0}, IndexPath{0, 0}}},
				},
			},
		},
		{
			name: "items-of-replaced-sections-are-not-compared",
			x:    []section{{"A", items("a")}},
			y:    []section{{"B", items("a")}},
			want: SectionedChangeset{
				Sections: IndexSetChangeset{
					Inserts:    IndexSet{0},
					Deletes:    IndexSet{0},
					NewIndices: []int{-1},
				},
			},
		},
		{
			name: "items-concatenated-in-old-section-order",
			x:    []section{{"A", items("a")}, {"B", items("b")}},
			y:    []section{{"B", items("b c")}, {"A", items("x")}},
			want: SectionedChangeset{
				Sections: IndexSetChangeset{
					Moves:      []IndexPair{{1, 0}, {0, 1}},
					NewIndices: []int{1, 0},
				},
				Items: IndexPathChangeset{
					Inserts: []IndexPath{{1, 0}, {0, 1}},
					Deletes: []IndexPath{{0, 0}},
				},
			},
		},
		{
			name: "items-do-not-move-between-sections",
			x:    []section{{"A", items("a b")}, {"B", items("c")}},
			y:    []section{{"A", items("a")}, {"B", items("b c")}},
			want: SectionedChangeset{
				Sections: IndexSetChangeset{NewIndices: []int{0, 1}},
				Items: IndexPathChangeset{
					Inserts: []IndexPath{{1, 0}},
					Deletes: []IndexPath{{0, 1}},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, opts := range [][]Option{nil, {Parallel(4)}} {
				t.Run(fmt.Sprintf("opts=%d", len(opts)), func(t *testing.T) {
					got := DiffSections[string](tt.x, tt.y, opts...)
					if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
						t.Errorf("DiffSections(...) result is different [-want,+got]:\n%s", diff)
					}

					got = DiffSectionsFunc(tt.x, tt.y, item.DiffIdentity, item.IsContentEqual, opts...)
					if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
						t.Errorf("DiffSectionsFunc(...) result is different [-want,+got]:\n%s", diff)
					}
				})
			}
		})
	}
}

func TestDiffSectionsStrictIdentities(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("DiffSections(...) did not panic for duplicate section identities")
		}
	}()
	x := []section{{"A", items("a")}, {"A", items("b")}}
	DiffSections[string](x, x, StrictIdentities())
}

func TestDiffSectionsStrictItemsInParallel(t *testing.T) {
	x := []section{{"A", items("a")}, {"B", items("b b")}, {"C", items("c")}}
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("DiffSections(...) did not panic for duplicate item identities")
		}
		want := "listdiff: found 1 duplicate identities in old and 1 in new collection"
		if r != want {
			t.Errorf("DiffSections(...) panicked with %v, want %q", r, want)
		}
	}()
	DiffSections[string](x, x, StrictIdentities(), Parallel(2))
}

func TestDiffSectionsParallelIsDeterministic(t *testing.T) {
	rng := rand.New(rand.NewChaCha8(sha256.Sum256([]byte(t.Name()))))
	randomSections := func() []section {
		perm := rng.Perm(40)
		out := make([]section, 30)
		for i := range out {
			out[i] = section{fmt.Sprint(perm[i]), randomItems(rng, rng.IntN(20), 8)}
		}
		return out
	}
	x, y := randomSections(), randomSections()

	want := DiffSections[string](x, y)
	for _, n := range []int{2, 3, 16} {
		got := DiffSections[string](x, y, Parallel(n))
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("DiffSections(..., Parallel(%d)) differs from sequential result [-want,+got]:\n%s", n, diff)
		}
	}
}
