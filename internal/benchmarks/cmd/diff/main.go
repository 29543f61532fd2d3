// diff is a small CLI to manually run the diffing implementations used for benchmarking.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"znkr.io/listdiff/internal/benchmarks"
	"znkr.io/listdiff/internal/snapshot"
)

type config struct {
	lib  string
	x, y string
}

func main() {
	var cfg config
	pflag.StringVar(&cfg.lib, "lib", "", "library to use for diffing, all libraries if empty")
	pflag.Parse()

	if pflag.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "error: usage: diff [--lib <name>] <x> <y>\n")
		os.Exit(1)
	}
	cfg.x = pflag.Arg(0)
	cfg.y = pflag.Arg(1)

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config) error {
	var libs []benchmarks.Impl
	for _, l := range benchmarks.Impls {
		if cfg.lib == "" || l.Name == cfg.lib {
			libs = append(libs, l)
		}
	}
	if len(libs) == 0 {
		return fmt.Errorf("lib not found %q", cfg.lib)
	}

	x, err := snapshot.Load(cfg.x)
	if err != nil {
		return err
	}
	y, err := snapshot.Load(cfg.y)
	if err != nil {
		return err
	}
	if x.Sectioned() || y.Sectioned() {
		return fmt.Errorf("only flat snapshots are supported")
	}

	for _, l := range libs {
		fmt.Printf("%-16s %d\n", l.Name, l.Edits(x.Items, y.Items))
	}
	return nil
}
