package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/zephyrtronium/calctree"
)

var (
	strategy      string
	dump          bool
	trace         bool
	registerLimit int
	verb          string
)

var rootCmd = &cobra.Command{
	Use:   "calctree [command] (flags)",
	Short: "expression tree evaluator",
	Long:  ``,
}

func main() {
	log.SetFlags(0)

	cobra.EnableCommandSorting = false
	rootCmd.AddCommand(
		evalCmd,
		demoCmd,
		randomCmd,
	)

	for _, cmd := range []*cobra.Command{evalCmd, demoCmd, randomCmd} {
		cmd.Flags().StringVarP(
			&strategy, "strategy", "s", "all", "evaluation strategy (recursive, two-stack, registers, all)")
		cmd.Flags().BoolVarP(
			&dump, "dump", "d", false, "print each tree before evaluating it")
		cmd.Flags().BoolVarP(
			&trace, "trace", "t", false, "log each evaluation step")
		cmd.Flags().IntVar(
			&registerLimit, "register-limit", 0, "maximum registers for the registers strategy (0, no limit)")
		cmd.Flags().StringVar(
			&verb, "fmt", "%g", "result formatting string")
	}

	evalCmd.Flags().StringVar(
		&evalConfig.in, "in", "", "input file (default stdin if no args given)")
	evalCmd.Flags().BoolVarP(
		&evalConfig.lines, "lines", "n", false, "parse separate input lines as separate expressions")
	evalCmd.Flags().BoolVar(
		&evalConfig.echo, "echo", false, "print parse trees in infix form")

	demoCmd.Flags().IntVar(
		&demoConfig.depth, "depth", 5, "number of nested multiplications (at least 1)")
	demoCmd.Flags().IntVar(
		&demoConfig.runs, "runs", 1000, "number of evaluations per strategy")

	randomCmd.Flags().IntVar(
		&randomConfig.depth, "depth", 8, "maximum depth of generated trees")
	randomCmd.Flags().Uint64Var(
		&randomConfig.seed, "seed", 1, "random seed")
	randomCmd.Flags().IntVarP(
		&randomConfig.count, "count", "c", 1, "number of trees to generate")
	randomCmd.Flags().BoolVar(
		&randomConfig.integers, "integers", false, "generate only integer leaves")
	randomCmd.Flags().BoolVar(
		&randomConfig.arena, "arena", false, "print the raw arena of each tree")

	if err := rootCmd.Execute(); err != nil {
		// Cobra has already printed the error message.
		os.Exit(1)
	}
}

// strategies returns the strategies selected by the --strategy flag.
func strategies() ([]calctree.Strategy, error) {
	if strategy == "all" {
		return calctree.Strategies(), nil
	}
	s, err := calctree.ParseStrategy(strategy)
	if err != nil {
		return nil, err
	}
	return []calctree.Strategy{s}, nil
}

// evalOptions returns the evaluation options selected by flags.
func evalOptions() []calctree.EvalOption {
	opts := []calctree.EvalOption{calctree.RegisterLimit(registerLimit)}
	if trace {
		opts = append(opts, calctree.Trace(calctree.DefaultLogger{}))
	}
	return opts
}
