package benchmarks

import (
	"bytes"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	godebug "github.com/kylelemons/godebug/diff"
	mb0 "github.com/mb0/diff"
	gointernal "github.com/rogpeppe/go-internal/diff"
	"github.com/sergi/go-diff/diffmatchpatch"
	"znkr.io/listdiff"
	"znkr.io/listdiff/internal/snapshot"
)

// Impl is a diff implementation that reports the number of edits necessary to transform x into y.
//
// The line based implementations treat every item as a line consisting of its ID and content. They
// can't express moves or updates, a moved or updated item is always a deletion and an insertion.
type Impl struct {
	Name  string
	Edits func(x, y []snapshot.Item) int
}

var Impls = []Impl{
	{
		Name: "listdiff",
		Edits: func(x, y []snapshot.Item) int {
			cs := listdiff.Diff[string](x, y)
			return len(cs.Deletes) + len(cs.Moves) + len(cs.Updates) + len(cs.Inserts)
		},
	},
	{
		Name: "go-internal",
		Edits: func(x, y []snapshot.Item) int {
			return countLines(gointernal.Diff("x", lines(x), "y", lines(y)))
		},
	},
	{
		Name: "diffmatchpatch",
		Edits: func(x, y []snapshot.Item) int {
			dmp := diffmatchpatch.New()
			rx, ry, lineArray := dmp.DiffLinesToRunes(string(lines(x)), string(lines(y)))
			diffs := dmp.DiffMainRunes(rx, ry, false)
			diffs = dmp.DiffCharsToLines(diffs, lineArray)

			edits := 0
			for _, diff := range diffs {
				if diff.Type == diffmatchpatch.DiffEqual {
					continue
				}
				edits += strings.Count(diff.Text, "\n")
			}
			return edits
		},
	},
	{
		Name: "godebug",
		Edits: func(x, y []snapshot.Item) int {
			return countLines([]byte(godebug.Diff(string(lines(x)), string(lines(y)))))
		},
	},
	{
		Name: "mb0",
		Edits: func(x, y []snapshot.Item) int {
			edits := 0
			for _, ch := range mb0.Diff(len(x), len(y), mb0items{x, y}) {
				edits += ch.Del + ch.Ins
			}
			return edits
		},
	},
	{
		Name: "udiff",
		Edits: func(x, y []snapshot.Item) int {
			return countLines([]byte(udiff.Unified("x", "y", string(lines(x)), string(lines(y)))))
		},
	},
}

type mb0items struct {
	x, y []snapshot.Item
}

func (d mb0items) Equal(i, j int) bool { return d.x[i] == d.y[j] }

func lines(items []snapshot.Item) []byte {
	var buf bytes.Buffer
	for _, it := range items {
		buf.WriteString(it.ID)
		buf.WriteByte(' ')
		buf.WriteString(it.Content)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// countLines counts the inserted and deleted lines in a unified diff.
func countLines(unified []byte) int {
	edits := 0
	for _, line := range bytes.Split(unified, []byte("\n")) {
		if bytes.HasPrefix(line, []byte("+++")) || bytes.HasPrefix(line, []byte("---")) {
			continue
		}
		if bytes.HasPrefix(line, []byte{'+'}) || bytes.HasPrefix(line, []byte{'-'}) {
			edits++
		}
	}
	return edits
}
