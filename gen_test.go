package calctree

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateDepth(t *testing.T) {
	g := NewGenerator(5)
	tr := g.Generate(0)
	require.Equal(t, 1, tr.Len())
	v, err := tr.Current()
	require.NoError(t, err)
	require.Equal(t, KindNumber, v.Kind())

	full := &Generator{Rand: NewGenerator(5).Rand, OperatorBias: 1}
	for depth := 1; depth <= 6; depth++ {
		tr := full.Generate(depth)
		require.Equal(t, 1<<(depth+1)-1, tr.Len(), "depth %d", depth)
		require.True(t, tr.AtRoot())
		require.NoError(t, tr.Validate())
		require.NoError(t, tr.Check())
	}
}

func TestGenerateIntegers(t *testing.T) {
	g := &Generator{Rand: NewGenerator(9).Rand, Integers: true, Stddev: 100}
	tr := g.Generate(8)
	for _, n := range tr.nodes {
		if x, ok := n.val.Number(); ok {
			require.Equal(t, math.Round(x), x)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := NewGenerator(42).Generate(8)
	b := NewGenerator(42).Generate(8)
	require.Equal(t, a.String(), b.String())
	var zero Generator
	require.NotPanics(t, func() { zero.Generate(3) })
}
