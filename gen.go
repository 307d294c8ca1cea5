package calctree

import (
	"math"

	"golang.org/x/exp/rand"
)

// DefaultGeneratorStddev is the default standard deviation used when
// generating random numbers.
const DefaultGeneratorStddev = 10

// A Generator generates random well-formed trees.
type Generator struct {
	// Rand is the source of randomness. If nil, a source seeded with 1 is
	// created on first use.
	Rand *rand.Rand

	// If Integers is set, all numbers are integers.
	Integers bool

	// Stddev specifies the standard deviation for generating random numbers
	// on a normal distribution. If this is 0, DefaultGeneratorStddev is used.
	Stddev float64

	// OperatorBias is the probability in [0, 1] of an operator where a node
	// could be either an operator or a number. If this is 0, the chance
	// falls with the remaining depth.
	OperatorBias float64
}

// NewGenerator returns a generator seeded with seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{Rand: rand.New(rand.NewSource(seed))}
}

// Generate generates a random tree with a given maximum depth. If maxDepth is
// 0, the result is a single number. The cursor is left at the root.
//
// The tree is built through the cursor, half the time by creating an operator
// and filling its children, half the time by building the left operand first
// and pushing the operator above it.
func (g *Generator) Generate(maxDepth int) *Tree {
	t := NewTree()
	g.fill(t, maxDepth)
	t.SelectRoot()
	return t
}

// fill generates a subtree at the cursor and leaves the cursor at its root.
func (g *Generator) fill(t *Tree, depth int) {
	if !g.operator(depth) {
		t.SetCurrent(Num(g.number()))
		return
	}
	op := Op(Operator(g.rng().Intn(int(numOperators))))
	if g.rng().Intn(2) == 0 {
		t.SetCurrent(op)
		must(t.SetChildLeft(Value{}))
		must(t.GoLeft())
		g.fill(t, depth-1)
		must(t.GoUp())
	} else {
		g.fill(t, depth-1)
		must(t.PushLeft(op))
		must(t.GoUp())
	}
	must(t.SetChildRight(Value{}))
	must(t.GoRight())
	g.fill(t, depth-1)
	must(t.GoUp())
}

func (g *Generator) operator(depth int) bool {
	if depth <= 0 {
		return false
	}
	if g.OperatorBias > 0 {
		return g.rng().Float64() < g.OperatorBias
	}
	return g.rng().Intn(depth+1) != 0
}

func (g *Generator) number() float64 {
	s := g.Stddev
	if s == 0 {
		s = DefaultGeneratorStddev
	}
	x := g.rng().NormFloat64() * s
	if g.Integers {
		return math.Round(x)
	}
	return x
}

func (g *Generator) rng() *rand.Rand {
	if g.Rand == nil {
		g.Rand = rand.New(rand.NewSource(1))
	}
	return g.Rand
}
