// Package calctree evaluates arithmetic expressions held in an explicit binary
// tree.
//
// A Tree is built and inspected through a cursor: SetCurrent, SetChildLeft and
// SetChildRight write values, PushLeft and PushRight splice a new node above
// the cursor, and GoLeft, GoRight, GoUp and SelectRoot move it. Parse builds a
// Tree from text like "(2+3)*4" using only those calls.
//
// Finished trees are evaluated by one of three strategies which agree on every
// well-formed tree: plain recursion, an iterative walk over a value stack and
// a pointer stack, and an iterative walk that keeps partial results in a small
// register file.
package calctree
