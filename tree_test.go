package calctree

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/kr/pretty"
	"github.com/stretchr/testify/require"
)

// build20 builds Mul(Add(2, 3), 4) top-down and returns the cursor to the
// root.
func build20(t *testing.T) *Tree {
	t.Helper()
	tr := NewTree()
	tr.SetCurrent(Op(Mul))
	require.NoError(t, tr.SetChildLeft(Op(Add)))
	require.NoError(t, tr.SetChildRight(Num(4)))
	require.NoError(t, tr.GoLeft())
	require.NoError(t, tr.SetChildLeft(Num(2)))
	require.NoError(t, tr.SetChildRight(Num(3)))
	tr.SelectRoot()
	return tr
}

func TestEmptyTree(t *testing.T) {
	tr := NewTree()
	require.True(t, tr.Empty())
	require.False(t, tr.AtRoot())
	require.NoError(t, tr.Validate())

	ops := []struct {
		name string
		f    func() error
	}{
		{"set-left", func() error { return tr.SetChildLeft(Num(1)) }},
		{"set-right", func() error { return tr.SetChildRight(Num(1)) }},
		{"push-left", func() error { return tr.PushLeft(Op(Add)) }},
		{"push-right", func() error { return tr.PushRight(Op(Add)) }},
		{"go-left", tr.GoLeft},
		{"go-right", tr.GoRight},
		{"go-up", tr.GoUp},
		{"current", func() error { _, err := tr.Current(); return err }},
		{"left", func() error { _, err := tr.Left(); return err }},
		{"right", func() error { _, err := tr.Right(); return err }},
	}
	for _, op := range ops {
		t.Run(op.name, func(t *testing.T) {
			err := op.f()
			require.ErrorIs(t, err, ErrOpOnNone)
			require.True(t, IsTreeError(err))
			require.False(t, IsEvalError(err))
		})
	}
	// SelectRoot on an empty tree is not an error.
	tr.SelectRoot()
	require.True(t, tr.Empty())
	require.Equal(t, 0, tr.Len())
}

func TestSetCurrent(t *testing.T) {
	tr := NewTree()
	tr.SetCurrent(Num(1))
	require.True(t, tr.AtRoot())
	require.Equal(t, 1, tr.Len())
	tr.SetCurrent(Num(2))
	require.Equal(t, 1, tr.Len())
	v, err := tr.Current()
	require.NoError(t, err)
	require.Equal(t, Num(2), v)

	// Clearing leaves an empty slot.
	tr.SetCurrent(Value{})
	v, err = tr.Current()
	require.NoError(t, err)
	require.True(t, v.IsZero())
}

func TestSetChild(t *testing.T) {
	tr := NewTree()
	tr.SetCurrent(Op(Sub))
	require.NoError(t, tr.SetChildLeft(Num(1)))
	require.NoError(t, tr.SetChildRight(Num(2)))
	require.Equal(t, 3, tr.Len())

	// Occupied slots are overwritten in place.
	require.NoError(t, tr.SetChildLeft(Num(10)))
	require.NoError(t, tr.SetChildRight(Num(20)))
	require.Equal(t, 3, tr.Len())
	l, err := tr.Left()
	require.NoError(t, err)
	require.Equal(t, Num(10), l)
	r, err := tr.Right()
	require.NoError(t, err)
	require.Equal(t, Num(20), r)

	require.NoError(t, tr.GoLeft())
	_, err = tr.Left()
	require.ErrorIs(t, err, ErrOpOnNone)
	require.NoError(t, tr.GoUp())
	require.True(t, tr.AtRoot())
	require.NoError(t, tr.Validate())
}

func TestNavigationDeadEnd(t *testing.T) {
	tr := NewTree()
	tr.SetCurrent(Num(1))
	for name, f := range map[string]func() error{"left": tr.GoLeft, "right": tr.GoRight, "up": tr.GoUp} {
		err := f()
		require.ErrorIs(t, err, ErrDeadEnd, name)
		require.True(t, IsTreeError(err))
		require.Contains(t, err.Error(), "go "+name)
	}
	// The cursor stays put after a failed move.
	require.True(t, tr.AtRoot())
}

func TestPushLeftNonRoot(t *testing.T) {
	tr := build20(t)
	require.NoError(t, tr.GoRight())
	// Splice Sub above the 4 with the 4 as its right child, then fill its
	// left side.
	require.NoError(t, tr.PushRight(Op(Sub)))
	v, err := tr.Current()
	require.NoError(t, err)
	require.Equal(t, Num(4), v, "cursor must not move")
	require.NoError(t, tr.GoUp())
	v, err = tr.Current()
	require.NoError(t, err)
	require.Equal(t, Op(Sub), v)
	require.NoError(t, tr.SetChildLeft(Num(10)))
	require.NoError(t, tr.Validate())
	require.Equal(t, "([(2) + (3)] * [(10) - (4)])", tr.String())

	// After PushLeft, GoUp reaches the new node and GoLeft returns to the old
	// cursor. From the grandparent, the old cursor's side now holds the new
	// node.
	require.NoError(t, tr.GoLeft())
	require.NoError(t, tr.PushLeft(Num(7)))
	require.NoError(t, tr.GoUp())
	v, err = tr.Current()
	require.NoError(t, err)
	require.Equal(t, Num(7), v)
	require.NoError(t, tr.GoLeft())
	v, err = tr.Current()
	require.NoError(t, err)
	require.Equal(t, Num(10), v)
	require.NoError(t, tr.GoUp())
	require.NoError(t, tr.GoUp())
	v, err = tr.Current()
	require.NoError(t, err)
	require.Equal(t, Op(Sub), v)
	l, err := tr.Left()
	require.NoError(t, err)
	require.Equal(t, Num(7), l, "spliced node must take the cursor's side")
	require.NoError(t, tr.Validate())
}

func TestPushAtRootMovesHead(t *testing.T) {
	for _, push := range []struct {
		name string
		f    func(*Tree, Value) error
		dir  func(*Tree) error
	}{
		{"left", (*Tree).PushLeft, (*Tree).GoLeft},
		{"right", (*Tree).PushRight, (*Tree).GoRight},
	} {
		t.Run(push.name, func(t *testing.T) {
			tr := NewTree()
			tr.SetCurrent(Num(1))
			require.NoError(t, push.f(tr, Op(Add)))
			require.False(t, tr.AtRoot())
			tr.SelectRoot()
			v, err := tr.Current()
			require.NoError(t, err)
			require.Equal(t, Op(Add), v)
			require.ErrorIs(t, tr.GoUp(), ErrDeadEnd)
			require.NoError(t, push.dir(tr))
			v, err = tr.Current()
			require.NoError(t, err)
			require.Equal(t, Num(1), v)
			require.NoError(t, tr.Validate())
		})
	}
}

func TestResetReleasesNodes(t *testing.T) {
	tr := build20(t)
	require.Equal(t, 5, tr.Len())
	tr.Reset()
	require.True(t, tr.Empty())
	require.Equal(t, 0, tr.Len())
	require.NoError(t, tr.Validate())
	require.ErrorIs(t, tr.GoLeft(), ErrOpOnNone)
	tr.SetCurrent(Num(1))
	require.Equal(t, 1, tr.Len())
	require.True(t, tr.AtRoot())
}

func TestValidateCatchesBrokenLinks(t *testing.T) {
	tr := build20(t)
	require.NoError(t, tr.Validate())

	broken := build20(t)
	broken.node(broken.node(broken.head).left).parent = noNode
	err := broken.Validate()
	require.Error(t, err)
	require.True(t, errors.HasAssertionFailure(err))
	require.Contains(t, err.Error(), "links up to")

	orphan := build20(t)
	orphan.alloc(Num(9), orphan.head)
	err = orphan.Validate()
	require.True(t, errors.HasAssertionFailure(err))
	require.Contains(t, err.Error(), "unreachable")
}

func TestCheck(t *testing.T) {
	require.NoError(t, build20(t).Check())

	cases := []struct {
		name  string
		build func(*Tree)
		msg   string
	}{
		{"empty", func(tr *Tree) {}, "empty tree"},
		{"missing-right", func(tr *Tree) {
			tr.SetCurrent(Op(Add))
			tr.SetChildLeft(Num(1))
		}, "missing an operand"},
		{"number-with-child", func(tr *Tree) {
			tr.SetCurrent(Num(1))
			tr.SetChildLeft(Num(2))
		}, "has children"},
		{"empty-slot", func(tr *Tree) {
			tr.SetCurrent(Op(Add))
			tr.SetChildLeft(Num(1))
			tr.SetChildRight(Value{})
		}, "has no value"},
		{"invalid-operator", func(tr *Tree) {
			tr.SetCurrent(Op(numOperators))
		}, "invalid operator"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tr := NewTree()
			c.build(tr)
			err := tr.Check()
			require.ErrorIs(t, err, ErrBadTree)
			require.Contains(t, err.Error(), c.msg)
		})
	}
}

// TestBuildOrders checks that building top-down with child setters and
// bottom-up with pushes produce the same arena links.
func TestBuildOrders(t *testing.T) {
	top := build20(t)

	bottom := NewTree()
	bottom.SetCurrent(Num(2))
	require.NoError(t, bottom.PushLeft(Op(Add)))
	require.NoError(t, bottom.GoUp())
	require.NoError(t, bottom.SetChildRight(Num(3)))
	require.NoError(t, bottom.PushLeft(Op(Mul)))
	require.NoError(t, bottom.GoUp())
	require.NoError(t, bottom.SetChildRight(Num(4)))
	require.NoError(t, bottom.Validate())

	require.Equal(t, top.String(), bottom.String())
	require.Equal(t, top.DumpString(), bottom.DumpString())
	// Node ids differ with allocation order, so compare shapes.
	if diff := pretty.Diff(shape(top, top.head), shape(bottom, bottom.head)); len(diff) > 0 {
		t.Errorf("shapes differ:\n%s", strings.Join(diff, "\n"))
	}
}

type shapeNode struct {
	Val         string
	Left, Right *shapeNode
}

func shape(t *Tree, id nodeID) *shapeNode {
	if id == noNode {
		return nil
	}
	n := t.node(id)
	return &shapeNode{Val: n.val.String(), Left: shape(t, n.left), Right: shape(t, n.right)}
}
