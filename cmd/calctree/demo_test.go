package main

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/zephyrtronium/calctree"
)

func TestBuildChain(t *testing.T) {
	for depth := 1; depth <= 6; depth++ {
		tr, err := buildChain(depth)
		require.NoError(t, err)
		require.Equal(t, 2*depth+1, tr.Len())
		require.True(t, tr.AtRoot())
		for _, s := range calctree.Strategies() {
			r, err := calctree.Evaluate(tr, s, calctree.RegisterLimit(1))
			require.NoError(t, err, s.String())
			require.Equal(t, math.Pow(2, float64(depth+1)), r, s.String())
		}
	}
	for _, depth := range []int{0, -1} {
		_, err := buildChain(depth)
		require.Error(t, err)
		require.Contains(t, err.Error(), "--depth")
	}
}

func TestLatencyTable(t *testing.T) {
	lat := newLatencies()
	lat.record("recursive", 100*time.Nanosecond)
	lat.record("recursive", 0)
	lat.record("registers", time.Minute)
	lat.setResult("recursive", "20")
	lat.setResult("registers", "20")
	var b bytes.Buffer
	lat.render(&b)
	out := b.String()
	require.Contains(t, out, "STRATEGY")
	require.Contains(t, out, "recursive")
	require.Contains(t, out, "registers")
	// Out-of-range samples are clamped rather than rejected.
	require.Equal(t, int64(2), lat.hists["recursive"].TotalCount())
	require.LessOrEqual(t, lat.hists["registers"].Max(), int64(2*maxLatency))
	require.Equal(t, 1, strings.Count(out, "recursive"))
}
