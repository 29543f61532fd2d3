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

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"znkr.io/listdiff/internal/snapshot"
)

var testParams = snapshot.RandomParams{
	Items:     30,
	IDs:       20,
	Anonymous: 0.1,
	Rate:      0.2,
}

func TestGenerateIsReproducible(t *testing.T) {
	for i := range 20 {
		a := generate(42, i, testParams)
		b := generate(42, i, testParams)
		require.Equal(t, a, b, "iteration %d", i)
	}
}

func TestEvaluate(t *testing.T) {
	kinds := map[string]int{}
	for i := range 300 {
		c := generate(7, i, testParams)
		res, err := evaluate(c)
		require.NoError(t, err, "iteration %d", i)
		assert.Equal(t, i, res.iteration)
		kinds[res.kind]++
	}
	assert.Positive(t, kinds["flat"])
	assert.Positive(t, kinds["sectioned"])
}

func TestRunWritesStats(t *testing.T) {
	stats := filepath.Join(t.TempDir(), "stats.csv")
	cfg := config{
		iterations: 50,
		parallel:   4,
		seed:       1,
		stats:      stats,
		params:     testParams,
	}
	require.NoError(t, run(&cfg))

	data, err := os.ReadFile(stats)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, "iteration,kind,N,M,D,duration_ns", lines[0])
	assert.Len(t, lines, 51)
}
