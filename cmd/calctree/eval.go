package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/zephyrtronium/calctree"
)

var evalCmd = &cobra.Command{
	Use:   "eval [expr...]",
	Short: "evaluate expressions",
	Long: `
Parse and evaluate arithmetic expressions given as arguments, read from the
file named by --in, or read from stdin if there are no arguments. With --lines,
each line of input is a separate expression.

Expressions use + - * / on real numbers, grouped with (), [] or {}.
`,
	RunE: runEval,
}

var evalConfig struct {
	in    string
	lines bool
	echo  bool
}

func runEval(cmd *cobra.Command, args []string) error {
	ss, err := strategies()
	if err != nil {
		return err
	}
	var ins []io.RuneScanner
	f, closer, err := infile(evalConfig.in, len(args) == 0)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}
	if f != nil {
		ins = append(ins, f)
	}
	for _, arg := range args {
		ins = append(ins, strings.NewReader(arg))
	}

	var opts []calctree.ParseOption
	if evalConfig.lines {
		opts = append(opts, calctree.StopOn('\n'))
	}
	var trees []*calctree.Tree
	for _, in := range ins {
		for {
			// First check whether we're done with the input.
			if _, _, err := in.ReadRune(); err != nil {
				if err == io.EOF {
					break
				}
				return err
			}
			if err := in.UnreadRune(); err != nil {
				return err
			}
			t, err := calctree.Parse(in, opts...)
			if err != nil {
				return errors.Wrapf(err, "expression %d", len(trees)+1)
			}
			trees = append(trees, t)
		}
	}

	for _, t := range trees {
		if evalConfig.echo {
			fmt.Printf("%v : ", t)
		}
		if dump {
			fmt.Println()
			fmt.Print(t.DumpString())
		}
		evaluate(t, ss)
	}
	return nil
}

// evaluate prints the result of each strategy on t.
func evaluate(t *calctree.Tree, ss []calctree.Strategy) {
	opts := evalOptions()
	for _, s := range ss {
		r, err := calctree.Evaluate(t, s, opts...)
		if len(ss) > 1 {
			fmt.Printf("%s: ", s)
		}
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Printf(verb+"\n", r)
	}
}

func infile(inname string, std bool) (io.RuneScanner, io.Closer, error) {
	switch {
	case inname != "" && inname != "-":
		f, err := os.Open(inname)
		if err != nil {
			return nil, nil, err
		}
		return bufio.NewReader(f), f, nil
	case inname == "-", std:
		return bufio.NewReader(os.Stdin), nil, nil
	}
	return nil, nil, nil
}
