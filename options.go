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

import "znkr.io/listdiff/internal/config"

// Option configures the behavior of comparison functions.
type Option = config.Option

// StrictIdentities makes comparison functions panic if an identity occurs more than once in the
// same input.
//
// Identities are expected to be unique within a collection. Without this option, duplicates are
// matched in order of appearance: the first occurrence in the old collection matches the first
// occurrence in the new collection and so on. Excess occurrences are deleted or inserted.
func StrictIdentities() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.StrictIdentities = true
		return config.StrictIdentities
	}
}

// Parallel compares up to n pairs of sections concurrently in [DiffSections] and
// [DiffSectionsFunc]. The result doesn't depend on n. The default is 1.
func Parallel(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Parallel = max(1, n)
		return config.Parallel
	}
}
