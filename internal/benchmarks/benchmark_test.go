package benchmarks

import (
	"crypto/sha256"
	"fmt"
	"math/rand/v2"
	"testing"

	"znkr.io/listdiff/internal/snapshot"
)

type testdata struct {
	name string
	x, y []snapshot.Item
}

// generateTestdata creates snapshot pairs of increasing size. The identity space is twice the size
// of the snapshot, so duplicates are rare but not absent.
func generateTestdata() []testdata {
	var tests []testdata
	for _, n := range []int{100, 1000, 10000} {
		for _, rate := range []float64{0.01, 0.1, 0.5} {
			name := fmt.Sprintf("n=%d/rate=%v", n, rate)
			rng := rand.New(rand.NewChaCha8(sha256.Sum256([]byte(name))))
			p := snapshot.RandomParams{Items: n, IDs: 2 * n, Rate: rate}
			x := snapshot.Random(rng, p)
			y := snapshot.Mutate(rng, x, p)
			tests = append(tests, testdata{name: name, x: x.Items, y: y.Items})
		}
	}
	return tests
}

func TestImplsAgreeOnIdentical(t *testing.T) {
	td := generateTestdata()[0]
	for _, impl := range Impls {
		if got := impl.Edits(td.x, td.x); got != 0 {
			t.Errorf("%s: got %d edits for identical inputs, want 0", impl.Name, got)
		}
	}
}

func BenchmarkDiffs(b *testing.B) {
	tests := generateTestdata()
	for _, impl := range Impls {
		b.Run("impl="+impl.Name, func(b *testing.B) {
			for _, td := range tests {
				b.Run(td.name, func(b *testing.B) {
					for b.Loop() {
						_ = impl.Edits(td.x, td.y)
					}
					b.StopTimer()
					b.ReportMetric(float64(impl.Edits(td.x, td.y)), "edits")
				})
			}
		})
	}
}
