package calctree

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
)

// parseValue parses a value as written in test files: an operator symbol, a
// number, or "none" for the empty value.
func parseValue(s string) (Value, error) {
	switch s {
	case "+":
		return Op(Add), nil
	case "-":
		return Op(Sub), nil
	case "*":
		return Op(Mul), nil
	case "/":
		return Op(Div), nil
	case "none":
		return Value{}, nil
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value{}, err
	}
	return Num(x), nil
}

// runCursorOp runs one line of a build command against t.
func runCursorOp(t *Tree, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	var v Value
	if len(fields) > 1 {
		var err error
		if v, err = parseValue(fields[1]); err != nil {
			return err
		}
	}
	switch fields[0] {
	case "set":
		t.SetCurrent(v)
		return nil
	case "set-left":
		return t.SetChildLeft(v)
	case "set-right":
		return t.SetChildRight(v)
	case "push-left":
		return t.PushLeft(v)
	case "push-right":
		return t.PushRight(v)
	case "left":
		return t.GoLeft()
	case "right":
		return t.GoRight()
	case "up":
		return t.GoUp()
	case "root":
		t.SelectRoot()
		return nil
	default:
		return fmt.Errorf("unknown cursor op %q", fields[0])
	}
}

func TestTreeDataDriven(t *testing.T) {
	var tr *Tree
	datadriven.RunTest(t, "testdata/tree", func(t *testing.T, d *datadriven.TestData) string {
		switch d.Cmd {
		case "reset":
			tr = NewTree()
			return "ok"

		case "build":
			// Each line is a cursor operation. Errors are reported inline and
			// do not stop the build.
			var b strings.Builder
			for _, line := range strings.Split(d.Input, "\n") {
				if err := runCursorOp(tr, line); err != nil {
					fmt.Fprintf(&b, "%s: %v\n", strings.TrimSpace(line), err)
				}
			}
			if err := tr.Validate(); err != nil {
				d.Fatalf(t, "invalid tree: %v", err)
			}
			if tr.Empty() {
				b.WriteString("tree: empty\n")
			} else {
				fmt.Fprintf(&b, "tree: %s\n", tr)
			}
			cur, err := tr.Current()
			if err != nil {
				fmt.Fprintf(&b, "cursor: %v\n", err)
			} else {
				fmt.Fprintf(&b, "cursor: %v\n", cur)
			}
			return b.String()

		case "parse":
			var err error
			tr, err = ParseString(strings.TrimSpace(d.Input))
			if err != nil {
				tr = NewTree()
				return fmt.Sprintf("error: %v\n", err)
			}
			return tr.String() + "\n"

		case "dump":
			s := tr.DumpString()
			if s == "" {
				return "empty\n"
			}
			return s

		case "check":
			if err := tr.Check(); err != nil {
				return fmt.Sprintf("error: %v\n", err)
			}
			return "ok"

		case "eval":
			strategies := Strategies()
			if d.HasArg("strategy") {
				var name string
				d.ScanArgs(t, "strategy", &name)
				s, err := ParseStrategy(name)
				if err != nil {
					d.Fatalf(t, "%v", err)
				}
				strategies = []Strategy{s}
			}
			var opts []EvalOption
			if d.HasArg("limit") {
				var limit int
				d.ScanArgs(t, "limit", &limit)
				opts = append(opts, RegisterLimit(limit))
			}
			var b strings.Builder
			for _, s := range strategies {
				r, err := Evaluate(tr, s, opts...)
				if err != nil {
					fmt.Fprintf(&b, "%s: error: %v\n", s, err)
					continue
				}
				fmt.Fprintf(&b, "%s: %s\n", s, strconv.FormatFloat(r, 'g', -1, 64))
			}
			return b.String()

		default:
			return fmt.Sprintf("unknown command: %s", d.Cmd)
		}
	})
}
