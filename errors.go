package calctree

import "github.com/cockroachdb/errors"

// Navigation and mutation errors. Errors returned by Tree methods wrap one of
// these; test with errors.Is.
var (
	// ErrDeadEnd means the requested link from the cursor is absent.
	ErrDeadEnd = errors.New("calctree: dead end")
	// ErrOpOnNone means the operation needs a cursor or a relative node that
	// is unset.
	ErrOpOnNone = errors.New("calctree: operation on none")
)

// Evaluation errors.
var (
	// ErrBadTree means an evaluator visited a node with no value or reached a
	// structure it cannot evaluate.
	ErrBadTree = errors.New("calctree: bad tree")
	// ErrUnexpectedOp means an operator appeared where a leaf was required.
	// No evaluator currently returns it.
	ErrUnexpectedOp = errors.New("calctree: unexpected operator")
)

// IsTreeError returns whether err is a navigation or mutation error.
func IsTreeError(err error) bool {
	return errors.IsAny(err, ErrDeadEnd, ErrOpOnNone)
}

// IsEvalError returns whether err is an evaluation error.
func IsEvalError(err error) bool {
	return errors.IsAny(err, ErrBadTree, ErrUnexpectedOp)
}
