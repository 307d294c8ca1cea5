package calctree

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Strategy selects an evaluation algorithm. All strategies give the same
// result on a well-formed tree.
type Strategy int8

const (
	// Recursive evaluates by post-order recursion.
	Recursive Strategy = iota
	// TwoStack walks the tree in pre-order, pushing values onto a stack and
	// reducing operator-number-number runs as they appear.
	TwoStack
	// Registers walks the tree keeping subtree results in a register file.
	Registers

	numStrategies
)

// Strategies returns every strategy.
func Strategies() []Strategy {
	return []Strategy{Recursive, TwoStack, Registers}
}

func (s Strategy) String() string {
	switch s {
	case Recursive:
		return "recursive"
	case TwoStack:
		return "two-stack"
	case Registers:
		return "registers"
	default:
		return "Strategy(" + strconv.Itoa(int(s)) + ")"
	}
}

// SafeValue implements redact.SafeValue.
func (Strategy) SafeValue() {}

// ParseStrategy returns the strategy with the given name.
func ParseStrategy(name string) (Strategy, error) {
	for s := Strategy(0); s < numStrategies; s++ {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, errors.Newf("calctree: unknown strategy %q", name)
}

// EvalOption is an option for evaluation.
type EvalOption interface {
	evalOption()
}

type (
	traceopt struct{ log Logger }
	limitopt int
)

func (traceopt) evalOption() {}
func (limitopt) evalOption() {}

// Trace logs each step of evaluation to l.
func Trace(l Logger) EvalOption {
	return traceopt{l}
}

// RegisterLimit bounds the number of partial results the Registers strategy
// may hold at once. Evaluating a tree that needs more fails with ErrBadTree.
// A limit of zero or less means no bound beyond the size of the tree, which
// can never be reached. Other strategies ignore it.
func RegisterLimit(n int) EvalOption {
	return limitopt(n)
}

// evalctx holds the options for one evaluation.
type evalctx struct {
	log   Logger
	limit int
}

func newEvalctx(opts []EvalOption) evalctx {
	var c evalctx
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case traceopt:
			c.log = opt.log
		case limitopt:
			c.limit = int(opt)
		default:
			panic("calctree: unknown option type")
		}
	}
	return c
}

func (c *evalctx) tracef(format string, args ...interface{}) {
	if c.log != nil {
		c.log.Infof(format, args...)
	}
}

// Evaluate evaluates the tree with the given strategy. Evaluation does not move
// the cursor.
func Evaluate(t *Tree, s Strategy, opts ...EvalOption) (float64, error) {
	switch s {
	case Recursive:
		return EvalRecursive(t, opts...)
	case TwoStack:
		return EvalTwoStack(t, opts...)
	case Registers:
		return EvalRegisters(t, opts...)
	default:
		return 0, errors.Newf("calctree: invalid strategy %d", int(s))
	}
}

// EvalString is a shortcut to parse and evaluate an expression.
func EvalString(src string, s Strategy, opts ...EvalOption) (float64, error) {
	t, err := Parse(strings.NewReader(src))
	if err != nil {
		return 0, err
	}
	return Evaluate(t, s, opts...)
}

// EvalRecursive evaluates the tree by recursion. An operator missing a child
// treats that operand as 0, so Mul with only a left child evaluates to 0
// rather than failing; use Check first to reject such trees.
func EvalRecursive(t *Tree, opts ...EvalOption) (float64, error) {
	c := newEvalctx(opts)
	if t.head == noNode {
		return 0, errors.Wrap(ErrBadTree, "empty tree")
	}
	return t.evalrec(&c, t.head)
}

func (t *Tree) evalrec(c *evalctx, id nodeID) (float64, error) {
	v, err := t.value(id)
	if err != nil {
		return 0, err
	}
	if v.kind == KindNumber {
		return v.num, nil
	}
	n := t.node(id)
	var l, r float64
	if n.left != noNode {
		if l, err = t.evalrec(c, n.left); err != nil {
			return 0, err
		}
	}
	if n.right != noNode {
		if r, err = t.evalrec(c, n.right); err != nil {
			return 0, err
		}
	}
	x := v.op.Evaluate(l, r)
	c.tracef("recursive: node %d: %g %v %g = %g", id, l, v.op, r, x)
	return x, nil
}

// EvalTwoStack evaluates the tree without recursion. It visits nodes in
// pre-order, keeping the values seen on one stack and the nodes whose right
// subtrees are still pending on another. Whenever the top of the value stack
// is an operator followed by two numbers, they are replaced by the result.
func EvalTwoStack(t *Tree, opts ...EvalOption) (float64, error) {
	c := newEvalctx(opts)
	if t.head == noNode {
		return 0, errors.Wrap(ErrBadTree, "empty tree")
	}
	var vals []Value
	var ptrs []nodeID
	cur := t.head
	for {
		v, err := t.value(cur)
		if err != nil {
			return 0, err
		}
		vals = c.collapse(append(vals, v))
		n := t.node(cur)
		if n.left != noNode {
			ptrs = append(ptrs, cur)
			cur = n.left
			continue
		}
		if len(ptrs) == 0 {
			break
		}
		up := ptrs[len(ptrs)-1]
		ptrs = ptrs[:len(ptrs)-1]
		cur = t.node(up).right
		if cur == noNode {
			return 0, errors.Wrapf(ErrBadTree, "node %d has no right operand", up)
		}
	}
	if len(vals) == 1 {
		if x, ok := vals[0].Number(); ok {
			return x, nil
		}
	}
	return 0, errors.Wrapf(ErrBadTree, "%d values left after reduction", len(vals))
}

// collapse repeatedly replaces an operator and two numbers at the top of vals
// with the operator's result.
func (c *evalctx) collapse(vals []Value) []Value {
	for len(vals) >= 3 {
		k := len(vals) - 3
		op, ok := vals[k].Operator()
		if !ok {
			break
		}
		l, ok := vals[k+1].Number()
		if !ok {
			break
		}
		r, ok := vals[k+2].Number()
		if !ok {
			break
		}
		x := op.Evaluate(l, r)
		c.tracef("two-stack: %g %v %g = %g (depth %d)", l, op, r, x, k)
		vals = append(vals[:k], Num(x))
	}
	return vals
}

// register holds the result of the subtree rooted at node.
type register struct {
	node nodeID
	x    float64
}

// registers is a register file. The first two registers need no allocation;
// more spill onto the heap, up to limit.
type registers struct {
	buf   [2]register
	regs  []register
	limit int
}

func (r *registers) init(limit int) {
	r.regs = r.buf[:0]
	r.limit = limit
}

func (r *registers) push(id nodeID, x float64) error {
	if len(r.regs) >= r.limit {
		return errors.Wrapf(ErrBadTree, "register file overflow: %d registers in use at node %d", len(r.regs), id)
	}
	r.regs = append(r.regs, register{node: id, x: x})
	return nil
}

// holds returns whether the most recently filled register holds the result of
// the subtree at id.
func (r *registers) holds(id nodeID) bool {
	return len(r.regs) > 0 && r.regs[len(r.regs)-1].node == id
}

func (r *registers) pop() register {
	reg := r.regs[len(r.regs)-1]
	r.regs = r.regs[:len(r.regs)-1]
	return reg
}

// EvalRegisters evaluates the tree without recursion or a value stack. At each
// operator it classifies both operands: numbers are used directly, operators
// must already have their results in a register, otherwise the walk descends
// into the first unresolved operand. A resolved operator stores its result in
// a register and the walk returns to the parent.
//
// Results are consumed in the order they are produced, so when a result is
// stored, the registers already in use belong to left siblings of the path to
// it. A tree needs one register more than the most operator left siblings on
// any path to an operator with two number operands. A tree whose operators all
// have a number operand never needs more than one. The RegisterLimit option
// rejects trees that need more than a given number.
func EvalRegisters(t *Tree, opts ...EvalOption) (float64, error) {
	c := newEvalctx(opts)
	if t.head == noNode {
		return 0, errors.Wrap(ErrBadTree, "empty tree")
	}
	limit := c.limit
	if limit <= 0 {
		limit = t.Len()
	}
	var regs registers
	regs.init(limit)
	var ptrs []nodeID
	cur := t.head
	for {
		v, err := t.value(cur)
		if err != nil {
			return 0, err
		}
		if v.kind == KindNumber {
			// Only the root is ever visited as a number.
			return v.num, nil
		}
		n := t.node(cur)
		if n.left == noNode || n.right == noNode {
			return 0, errors.Wrapf(ErrBadTree, "operator %v at node %d is missing an operand", v, cur)
		}
		lv, err := t.value(n.left)
		if err != nil {
			return 0, err
		}
		rv, err := t.value(n.right)
		if err != nil {
			return 0, err
		}
		var l, r float64
		switch {
		case lv.kind == KindNumber && rv.kind == KindNumber:
			l, r = lv.num, rv.num
		case lv.kind == KindOperator && rv.kind == KindNumber:
			if !regs.holds(n.left) {
				ptrs = append(ptrs, cur)
				cur = n.left
				continue
			}
			l, r = regs.pop().x, rv.num
		case lv.kind == KindNumber && rv.kind == KindOperator:
			if !regs.holds(n.right) {
				ptrs = append(ptrs, cur)
				cur = n.right
				continue
			}
			l, r = lv.num, regs.pop().x
		default:
			switch {
			case regs.holds(n.right):
				r = regs.pop().x
				if !regs.holds(n.left) {
					return 0, errors.Wrapf(ErrBadTree, "register for left operand of node %d is missing", cur)
				}
				l = regs.pop().x
			case regs.holds(n.left):
				ptrs = append(ptrs, cur)
				cur = n.right
				continue
			default:
				ptrs = append(ptrs, cur)
				cur = n.left
				continue
			}
		}
		x := v.op.Evaluate(l, r)
		c.tracef("registers: node %d: %g %v %g = %g (%d registers)", cur, l, v.op, r, x, len(regs.regs))
		if len(ptrs) == 0 {
			return x, nil
		}
		if err := regs.push(cur, x); err != nil {
			return 0, err
		}
		cur = ptrs[len(ptrs)-1]
		ptrs = ptrs[:len(ptrs)-1]
	}
}
