package main

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/kr/pretty"
	"github.com/spf13/cobra"
	"github.com/zephyrtronium/calctree"
)

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "cross-check strategies on random trees",
	Long: `
Generate random well-formed trees and evaluate each with the selected
strategies. The command fails if any two strategies disagree.
`,
	Args: cobra.NoArgs,
	RunE: runRandom,
}

var randomConfig struct {
	depth    int
	seed     uint64
	count    int
	integers bool
	arena    bool
}

func runRandom(cmd *cobra.Command, args []string) error {
	ss, err := strategies()
	if err != nil {
		return err
	}
	g := calctree.NewGenerator(randomConfig.seed)
	g.Integers = randomConfig.integers
	opts := evalOptions()
	for i := 0; i < randomConfig.count; i++ {
		t := g.Generate(randomConfig.depth)
		if randomConfig.arena {
			pretty.Println(t)
		}
		if dump {
			fmt.Print(t.DumpString())
		}
		fmt.Printf("%d: %v\n", i, t)
		var first float64
		for k, s := range ss {
			r, err := calctree.Evaluate(t, s, opts...)
			if err != nil {
				return errors.Wrapf(err, "tree %d, %s", i, s)
			}
			fmt.Printf("\t%s: "+verb+"\n", s, r)
			if k == 0 {
				first = r
				continue
			}
			if !agree(first, r) {
				return errors.Newf("tree %d: %s gave %g but %s gave %g", i, ss[0], first, s, r)
			}
		}
	}
	return nil
}

// agree returns whether two results are equal within a relative tolerance.
// NaNs agree with each other.
func agree(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	if a == b {
		return true
	}
	return math.Abs(a-b) <= 1e-9*math.Max(math.Abs(a), math.Abs(b))
}
