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

// eval validates the diffing algorithm by comparing random snapshots, replaying the resulting
// changesets and checking that they produce the new snapshot again.
package main

import (
	"bufio"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"runtime"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
	"znkr.io/listdiff"
	"znkr.io/listdiff/internal/replay"
	"znkr.io/listdiff/internal/snapshot"
)

type config struct {
	iterations int
	parallel   int
	seed       uint64
	stats      string
	params     snapshot.RandomParams
}

func main() {
	var cfg config
	pflag.IntVarP(&cfg.iterations, "iterations", "n", 10000, "number of snapshot pairs to evaluate")
	pflag.IntVarP(&cfg.parallel, "parallel", "p", runtime.GOMAXPROCS(0), "number of evaluations to run in parallel")
	pflag.Uint64Var(&cfg.seed, "seed", uint64(time.Now().UnixNano()), "seed for the random snapshots")
	pflag.StringVar(&cfg.stats, "stats", "", "file to store stats in")
	pflag.IntVar(&cfg.params.Items, "max-len", 200, "maximum number of items in a flat snapshot or section")
	pflag.IntVar(&cfg.params.Sections, "sections", 0, "number of sections, 0 for a mix of flat and sectioned snapshots")
	pflag.IntVar(&cfg.params.IDs, "ids", 0, "number of distinct item identities, 0 for twice the max length")
	pflag.Float64Var(&cfg.params.Anonymous, "anonymous", 0.05, "probability of an item without identity")
	pflag.Float64Var(&cfg.params.Rate, "rate", 0.1, "probability of every kind of change")
	pflag.Parse()

	if pflag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "error: unexpected command line arguments: %v\n", pflag.Args())
		os.Exit(1)
	}
	if cfg.params.IDs == 0 {
		cfg.params.IDs = 2 * cfg.params.Items
	}

	if err := run(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

var bars = []string{
	" ",
	"▏",
	"▎",
	"▍",
	"▌",
	"▋",
	"▊",
	"▉",
	"█",
}

type note struct {
	prefix string
	msg    string
}

type result struct {
	iteration int
	kind      string
	N, M      int
	D         int
	duration  time.Duration
}

// evalCase is a single pair of snapshots.
type evalCase struct {
	iteration int
	seed      uint64
	old, new  *snapshot.Snapshot
}

// generate returns the snapshot pair for an iteration. Every iteration has its own random source,
// this allows to reproduce a failure from the seed that's reported with it.
func generate(seed uint64, iteration int, p snapshot.RandomParams) evalCase {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], seed)
	binary.LittleEndian.PutUint64(buf[8:], uint64(iteration))
	rng := rand.New(rand.NewChaCha8(sha256.Sum256(buf[:])))
	if p.Sections == 0 && rng.IntN(2) == 0 {
		p.Sections = 1 + rng.IntN(16)
	}
	old := snapshot.Random(rng, p)
	return evalCase{
		iteration: iteration,
		seed:      seed,
		old:       old,
		new:       snapshot.Mutate(rng, old, p),
	}
}

// evaluate compares a snapshot pair and validates the result.
func evaluate(c evalCase) (result, error) {
	res := result{iteration: c.iteration}
	if !c.old.Sectioned() && !c.new.Sectioned() {
		res.kind = "flat"
		res.N, res.M = len(c.old.Items), len(c.new.Items)
		start := time.Now()
		cs := listdiff.Diff[string](c.old.Items, c.new.Items)
		res.duration = time.Since(start)
		res.D = len(cs.Deletes) + len(cs.Inserts) + len(cs.Moves) + len(cs.Updates)

		got, err := replay.Apply(c.old.Items, c.new.Items, cs)
		if err != nil {
			return res, fmt.Errorf("invalid changeset: %w\n%s", err, spew.Sdump(c.old, c.new, cs))
		}
		if !slices.Equal(got, c.new.Items) {
			return res, fmt.Errorf("replay differs from new snapshot\n%s", spew.Sdump(c.old, c.new, cs, got))
		}
		return res, nil
	}

	res.kind = "sectioned"
	x, y := c.old.ListSections(), c.new.ListSections()
	res.N, res.M = len(x), len(y)
	start := time.Now()
	cs := listdiff.DiffSections[string](x, y)
	res.duration = time.Since(start)
	res.D = len(cs.Sections.Deletes) + len(cs.Sections.Inserts) + len(cs.Sections.Moves) +
		len(cs.Items.Deletes) + len(cs.Items.Inserts) + len(cs.Items.Moves) + len(cs.Items.Updates)

	got, err := replay.ApplySections(x, y, cs)
	if err != nil {
		return res, fmt.Errorf("invalid changeset: %w\n%s", err, spew.Sdump(c.old, c.new, cs))
	}
	for i := range y {
		if got[i].ID != y[i].ID || !slices.Equal(got[i].Items, y[i].Items) {
			return res, fmt.Errorf("replay differs from new snapshot in section %d\n%s", i, spew.Sdump(c.old, c.new, cs, got))
		}
	}
	return res, nil
}

func run(cfg *config) error {
	start := time.Now()
	notes := make(chan note)
	done := make(chan struct{})
	var processed atomic.Int64
	var failed atomic.Int64

	var stats *os.File
	if cfg.stats != "" {
		var err error
		stats, err = os.Create(cfg.stats)
		if err != nil {
			return fmt.Errorf("creating stats file: %w", err)
		}
		defer stats.Close()
	}

	// Generate cases.
	cases := make(chan evalCase)
	go func() {
		defer close(cases)
		for i := range cfg.iterations {
			cases <- generate(cfg.seed, i, cfg.params)
		}
	}()

	// Process cases.
	var g errgroup.Group
	var results chan result
	if cfg.stats != "" {
		results = make(chan result)
	}
	for range max(1, cfg.parallel) {
		g.Go(func() error {
			for c := range cases {
				res, err := evaluate(c)
				if err != nil {
					failed.Add(1)
					notes <- note{
						prefix: fmt.Sprintf("seed %d, iteration %d", c.seed, c.iteration),
						msg:    err.Error(),
					}
				}
				if results != nil {
					results <- res
				}
				processed.Add(1)
			}
			return nil
		})
	}

	// Render progress
	var renderWG, statsWG sync.WaitGroup
	render := func() {
		const width = 60
		processed := processed.Load()
		progress := float64(processed) / float64(max(1, cfg.iterations))
		whole := int(progress * width)
		remainder := math.Mod(progress*width, 1)
		last := bars[max(0, min(len(bars)-1, int(remainder*float64(len(bars)))))]
		if width-whole < 1 {
			last = ""
		}
		bar := strings.Repeat(bars[len(bars)-1], whole) + last
		var evalsPerSec int
		if processed > 0 {
			evalsPerSec = int((time.Duration(processed) * time.Second) / time.Since(start))
		}
		fmt.Printf("\r[%-*s] % 3.1f%% (%d evals/s, %d failed) ", width, bar, 100*progress, evalsPerSec, failed.Load())
	}
	renderWG.Add(1)
	go func() {
		defer renderWG.Done()
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case note := <-notes:
				fmt.Printf("\r%s: %s\n", note.prefix, note.msg)
				render()

			case <-ticker.C:
				render()

			case <-done:
				render()
				fmt.Printf("\n")
				return
			}
		}
	}()
	if results != nil {
		statsWG.Add(1)
		go func() {
			defer statsWG.Done()
			w := bufio.NewWriter(stats)
			w.WriteString("iteration,kind,N,M,D,duration_ns\n")
			for result := range results {
				_, err := fmt.Fprintf(w, "%d,%s,%d,%d,%d,%d\n", result.iteration, result.kind, result.N, result.M, result.D, result.duration.Nanoseconds())
				if err != nil {
					notes <- note{
						prefix: fmt.Sprintf("iteration %d", result.iteration),
						msg:    fmt.Sprintf("failed to write stats: %v", err),
					}
				}
			}
			if err := w.Flush(); err != nil {
				notes <- note{
					prefix: "",
					msg:    fmt.Sprintf("failed to flush stats: %v", err),
				}
			}
		}()
	}

	// Shutdown. The stats writer might still send notes, it has to finish before the renderer.
	g.Wait()
	if results != nil {
		close(results)
	}
	statsWG.Wait()
	close(done)
	renderWG.Wait()

	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d of %d evaluations failed", n, cfg.iterations)
	}
	return nil
}
