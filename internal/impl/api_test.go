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

package impl

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// parse turns a compact notation into elements. Every element is a letter, optionally followed by
// a digit for its content. A '_' is an element without identity.
func parse(s string) []string {
	return strings.Fields(s)
}

func key(e string) (string, bool) {
	if e == "_" {
		return "", false
	}
	return e[:1], true
}

func eq(a, b string) bool { return a == b }

func TestMatch(t *testing.T) {
	tests := []struct {
		name string
		x, y string
		want Matching
	}{
		{
			name: "empty",
			want: Matching{},
		},
		{
			name: "x-empty",
			y:    "a b",
			want: Matching{
				NewToOld: []int{-1, -1},
				Updated:  []bool{false, false},
			},
		},
		{
			name: "y-empty",
			x:    "a b",
			want: Matching{
				OldToNew: []int{-1, -1},
			},
		},
		{
			name: "identical",
			x:    "a b c",
			y:    "a b c",
			want: Matching{
				OldToNew: []int{0, 1, 2},
				NewToOld: []int{0, 1, 2},
				Updated:  []bool{false, false, false},
			},
		},
		{
			name: "reorder",
			x:    "a b c",
			y:    "c a b",
			want: Matching{
				OldToNew: []int{1, 2, 0},
				NewToOld: []int{2, 0, 1},
				Updated:  []bool{false, false, false},
			},
		},
		{
			name: "update",
			x:    "a1 b1",
			y:    "a1 b2",
			want: Matching{
				OldToNew: []int{0, 1},
				NewToOld: []int{0, 1},
				Updated:  []bool{false, true},
			},
		},
		{
			name: "no-identity",
			x:    "_ a",
			y:    "a _",
			want: Matching{
				OldToNew: []int{-1, 0},
				NewToOld: []int{1, -1},
				Updated:  []bool{false, false},
			},
		},
		{
			name: "duplicates-in-order",
			x:    "a1 b a2 a3",
			y:    "a1 a3 b",
			want: Matching{
				OldToNew:    []int{0, 2, 1, -1},
				NewToOld:    []int{0, 2, 1},
				Updated:     []bool{false, true, false},
				DuplicatesX: 2,
				DuplicatesY: 1,
			},
		},
		{
			name: "duplicates-excess-in-y",
			x:    "a",
			y:    "a a a",
			want: Matching{
				OldToNew:    []int{0},
				NewToOld:    []int{0, -1, -1},
				Updated:     []bool{false, false, false},
				DuplicatesY: 2,
			},
		},
		{
			name: "duplicates-only-in-x",
			x:    "b b",
			y:    "a",
			want: Matching{
				OldToNew:    []int{-1, -1},
				NewToOld:    []int{-1},
				Updated:     []bool{false},
				DuplicatesX: 1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Match(parse(tt.x), parse(tt.y), key, eq)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Match(...) differs [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestMatchEqArguments(t *testing.T) {
	x := []string{"a1"}
	y := []string{"a2"}
	var calls [][2]string
	Match(x, y, key, func(a, b string) bool {
		calls = append(calls, [2]string{a, b})
		return false
	})
	want := [][2]string{{"a1", "a2"}}
	if diff := cmp.Diff(want, calls); diff != "" {
		t.Errorf("eq calls differ [-want,+got]:\n%s", diff)
	}
}
