package calctree

import "github.com/cockroachdb/redact"

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
//
// Input errors are redact.SafeFormatters: positions and the shape of the
// problem are safe, while text copied from the input is redactable.
type InputError interface {
	error
	redact.SafeFormatter
	// Pos returns the column of the error, counting runes from 1.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*TermError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
)

// LexError indicates text that is not a token of the grammar.
type LexError struct {
	// Text is what the lexer had scanned of the token, up to and including the
	// offending rune.
	Text string
	// Kind is "number" or "identifier" if the lexer had decided the token
	// kind, otherwise empty.
	Kind string
	// Col is the column just past the offending rune.
	Col int
}

func (err *LexError) Error() string { return redact.StringWithoutMarkers(err) }

// SafeFormat implements redact.SafeFormatter.
func (err *LexError) SafeFormat(w redact.SafePrinter, _ rune) {
	if err.Kind == "" {
		w.Printf("invalid token at column %d: %s", redact.Safe(err.Col), err.Text)
		return
	}
	w.Printf("invalid %s token at column %d: %s", redact.SafeString(err.Kind), redact.Safe(err.Col), err.Text)
}

func (err *LexError) Pos() int { return err.Col }

// OperatorError indicates an operator where an operand was expected, as in
// "-1" or "2*/3". Every operator is binary.
type OperatorError struct {
	Col      int
	Operator string
}

func (err *OperatorError) Error() string { return redact.StringWithoutMarkers(err) }

// SafeFormat implements redact.SafeFormatter.
func (err *OperatorError) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("%d: unary operator %q is not supported", redact.Safe(err.Col), err.Operator)
}

func (err *OperatorError) Pos() int { return err.Col }

// BracketError indicates an unmatched bracket. Left is empty for a close
// bracket with nothing to close; Right is empty when the input ended inside a
// group.
type BracketError struct {
	Col   int
	Left  string
	Right string
}

func (err *BracketError) Error() string { return redact.StringWithoutMarkers(err) }

// SafeFormat implements redact.SafeFormatter. Brackets are grammar, not
// data, so they print safely.
func (err *BracketError) SafeFormat(w redact.SafePrinter, _ rune) {
	l, r := redact.SafeString(err.Left), redact.SafeString(err.Right)
	switch {
	case err.Left == "":
		w.Printf("%d: close bracket %s with no open bracket", redact.Safe(err.Col), r)
	case err.Right == "":
		w.Printf("%d: open bracket %s with no close bracket", redact.Safe(err.Col), l)
	default:
		w.Printf("%d: mismatched bracket: %sexpr%s", redact.Safe(err.Col), l, r)
	}
}

func (err *BracketError) Pos() int { return err.Col }

// TermError indicates a term where an operator was expected, as in "2 3" or
// "2 (3)". Text is the first token of the term.
type TermError struct {
	Col  int
	Text string
}

func (err *TermError) Error() string { return redact.StringWithoutMarkers(err) }

// SafeFormat implements redact.SafeFormatter.
func (err *TermError) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("%d: expected operator before %q", redact.Safe(err.Col), err.Text)
}

func (err *TermError) Pos() int { return err.Col }

// EmptyExpressionError indicates a missing operand or an empty group. End is
// the close bracket that ended it, or empty at the end of input.
type EmptyExpressionError struct {
	Col int
	End string
}

func (err *EmptyExpressionError) Error() string { return redact.StringWithoutMarkers(err) }

// SafeFormat implements redact.SafeFormatter.
func (err *EmptyExpressionError) SafeFormat(w redact.SafePrinter, _ rune) {
	switch {
	case err.End != "":
		w.Printf("%d: no expression up to %q", redact.Safe(err.Col), redact.SafeString(err.End))
	case err.Col <= 1:
		w.Printf("%d: no expression", redact.Safe(err.Col))
	default:
		w.Printf("%d: no expression at end", redact.Safe(err.Col))
	}
}

func (err *EmptyExpressionError) Pos() int { return err.Col }
