package main

import (
	"fmt"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/zephyrtronium/calctree"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "build a tree through the cursor and time each strategy",
	Long: `
Build the right-leaning product 2*(2*(...*(2*2))) with --depth multiplications
(at least 1) using cursor operations, then evaluate it --runs times with each
strategy and report the result and latency quantiles.
`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

var demoConfig struct {
	depth int
	runs  int
}

func runDemo(cmd *cobra.Command, args []string) error {
	ss, err := strategies()
	if err != nil {
		return err
	}
	if demoConfig.runs < 1 {
		return errors.Newf("--runs must be at least 1, got %d", demoConfig.runs)
	}
	t, err := buildChain(demoConfig.depth)
	if err != nil {
		return err
	}

	if dump {
		fmt.Print(t.DumpString())
	}
	opts := evalOptions()
	lat := newLatencies()
	for _, s := range ss {
		for i := 0; i < demoConfig.runs; i++ {
			start := time.Now()
			r, err := calctree.Evaluate(t, s, opts...)
			lat.record(s.String(), time.Since(start))
			if err != nil {
				lat.setResult(s.String(), err.Error())
				break
			}
			lat.setResult(s.String(), fmt.Sprintf(verb, r))
		}
	}
	lat.render(os.Stdout)
	return nil
}

// buildChain builds 2*(2*(...*(2*2))) with depth multiplications through the
// cursor, leaving the cursor at the root.
func buildChain(depth int) (*calctree.Tree, error) {
	if depth < 1 {
		return nil, errors.Newf("--depth must be at least 1, got %d", depth)
	}
	t := calctree.NewTree()
	t.SetCurrent(calctree.Op(calctree.Mul))
	if err := t.SetChildLeft(calctree.Num(2)); err != nil {
		return nil, err
	}
	for i := 1; i < depth; i++ {
		if err := t.SetChildRight(calctree.Op(calctree.Mul)); err != nil {
			return nil, err
		}
		if err := t.GoRight(); err != nil {
			return nil, err
		}
		if err := t.SetChildLeft(calctree.Num(2)); err != nil {
			return nil, err
		}
	}
	if err := t.SetChildRight(calctree.Num(2)); err != nil {
		return nil, err
	}
	t.SelectRoot()
	return t, nil
}
