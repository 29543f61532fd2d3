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

	"golang.org/x/sync/errgroup"
	"znkr.io/listdiff/internal/config"
)

// DiffSections compares two collections of sections and returns the changes necessary to convert
// from one to the other.
//
// Sections are matched by their ID, a section is never updated, only inserted, deleted or moved.
// The items of every section that exists in both collections are compared with [Diff] and the
// result is combined in the order of the sections in x. Items of inserted or deleted sections are
// not compared.
//
// The type parameter IK can't be inferred and has to be provided explicitly:
//
//	cs := listdiff.DiffSections[string](x, y)
//
// The following options are supported: [listdiff.StrictIdentities], [listdiff.Parallel]
func DiffSections[IK, SK comparable, T Diffable[IK, T]](x, y []Section[SK, T], opts ...Option) SectionedChangeset {
	return DiffSectionsFunc(x, y, identity[IK, T], contentEqual[IK, T], opts...)
}

// DiffSectionsFunc compares two collections of sections and returns the changes necessary to
// convert from one to the other. Items are compared using key and eq as described in [DiffFunc].
//
// The following options are supported: [listdiff.StrictIdentities], [listdiff.Parallel]
func DiffSectionsFunc[T any, SK, IK comparable](x, y []Section[SK, T], key func(T) (IK, bool), eq func(a, b T) bool, opts ...Option) SectionedChangeset {
	cfg := config.FromOptions(opts, config.StrictIdentities|config.Parallel)

	sections := diff(x, y, sectionID[SK, T], sectionEqual[SK, T], cfg)

	// Compare the items of all sections that survived.
	items := make([]IndexPathChangeset, len(x))
	compare := func(s int) {
		t := sections.NewIndices[s]
		items[s] = diff(x[s].Items, y[t].Items, key, eq, cfg).Paths(s, t)
	}
	if cfg.Parallel > 1 {
		var g errgroup.Group
		g.SetLimit(cfg.Parallel)
		for s, t := range sections.NewIndices {
			if t < 0 {
				continue
			}
			g.Go(func() (err error) {
				defer func() {
					if r := recover(); r != nil {
						err = recovered{r}
					}
				}()
				compare(s)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			// Panics are forwarded to the calling goroutine.
			panic(err.(recovered).value)
		}
	} else {
		for s, t := range sections.NewIndices {
			if t >= 0 {
				compare(s)
			}
		}
	}

	return SectionedChangeset{
		Sections: IndexSetChangeset{
			Inserts:    sections.Inserts,
			Deletes:    sections.Deletes,
			Updates:    sections.Updates,
			Moves:      sections.Moves,
			NewIndices: sections.NewIndices,
		},
		Items: ConcatPaths(items...),
	}
}

// recovered carries a panic out of an errgroup goroutine.
type recovered struct{ value any }

func (r recovered) Error() string { return fmt.Sprint(r.value) }

func sectionID[K comparable, T any](s Section[K, T]) (K, bool) { return s.ID, true }

// Sections are equal if they have the same identity. Changes to the items are reported separately.
func sectionEqual[K comparable, T any](a, b Section[K, T]) bool { return true }
