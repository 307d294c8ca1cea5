package calctree

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Expr = num | Add | Sub | Mul | Div | '(' Expr ')' | '[' Expr ']' | '{' Expr '}'
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr | Expr '×' Expr
// Div = Expr '/' Expr | Expr '÷' Expr
//
// The parser builds the tree through the cursor. A term is parsed into the
// node under the cursor, and the cursor is left on the root of the term. A
// binary operator splices itself above the term parsed so far with PushLeft,
// then parses its right operand into a new empty right child.

// Parse parses an expression into a tree, leaving the cursor at the root. The
// given options are applied in order.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Tree, error) {
	scan := lex(src)
	var p parsectx
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	t := NewTree()
	if err := parseterm(scan, &p, t, exprprec); err != nil {
		return nil, err
	}
	if tok := scan.must(); tok.kind != tokenEOF {
		return nil, itShouldNotHaveEndedThisWay(tok, "")
	}
	t.SelectRoot()
	return t, nil
}

// ParseString is a shortcut to parse an expression from a string.
func ParseString(src string, opts ...ParseOption) (*Tree, error) {
	return Parse(strings.NewReader(src), opts...)
}

// parseterm parses a term into the cursor's node. If there is no error, then
// the cursor is at the root of the term and parseterm pushes the last token it
// scans, including EOF.
func parseterm(scan *lexer, p *parsectx, t *Tree, until operator) error {
	if err := parselhs(scan, p, t); err != nil {
		return err
	}
	for {
		tok, err := scan.next(p.wseof)
		if err != nil {
			return err
		}
		switch tok.kind {
		case tokenOp:
			prec := binop(tok.text)
			if prec.prec == 0 {
				panic("calctree: unknown operator token: " + tok.String())
			}
			if !prec.moreBinding(until) {
				scan.push(tok)
				return nil
			}
			// (parsed) op rhs: the parsed term becomes the left operand.
			must(t.PushLeft(Op(prec.op)))
			must(t.GoUp())
			must(t.SetChildRight(Value{}))
			must(t.GoRight())
			if err := parseterm(scan, p, t, prec); err != nil {
				return err
			}
			must(t.GoUp())
		case tokenNum, tokenOpen:
			return &TermError{Col: tok.pos, Text: tok.text}
		case tokenClose, tokenEOF:
			// End of expression.
			scan.push(tok)
			return nil
		default:
			panic("calctree: unknown token: " + tok.String())
		}
	}
}

// parselhs parses the first component of a term into the cursor's node.
// Whitespace normally lexed as EOF is ignored.
func parselhs(scan *lexer, p *parsectx, t *Tree) error {
	// Don't use EOF whitespace for LHS.
	tok, err := scan.next("")
	if err != nil {
		return err
	}
	switch tok.kind {
	case tokenNum:
		x, err := parsenum(tok)
		if err != nil {
			return err
		}
		t.SetCurrent(Num(x))
	case tokenOp:
		return &OperatorError{Col: tok.pos, Operator: tok.text}
	case tokenOpen:
		if err := parseterm(scan, p, t, exprprec); err != nil {
			return err
		}
		end := scan.must()
		if end.kind != tokenClose || end.text != closers[tok.text] {
			return itShouldNotHaveEndedThisWay(end, tok.text)
		}
	case tokenClose:
		return &EmptyExpressionError{Col: tok.pos, End: tok.text}
	case tokenEOF:
		return &EmptyExpressionError{Col: tok.pos, End: ""}
	default:
		panic("calctree: unknown token: " + tok.String())
	}
	return nil
}

// parsenum converts a number token to its value. Literals too large to
// represent are infinite.
func parsenum(tok lexToken) (float64, error) {
	if infinity[tok.text] {
		return math.Inf(1), nil
	}
	x, err := strconv.ParseFloat(tok.text, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return x, nil
		}
		return 0, &LexError{Text: tok.text, Kind: "number", Col: tok.pos}
	}
	return x, nil
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression. open is the bracket that began the
// subexpression, or empty at the top level.
func itShouldNotHaveEndedThisWay(tok lexToken, open string) error {
	switch tok.kind {
	case tokenEOF:
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: tok.pos, Left: open, Right: ""}
	case tokenClose:
		// A bracket could be the wrong bracket for the opening brace or any
		// bracket at the end of an input.
		return &BracketError{Col: tok.pos, Left: open, Right: tok.text}
	default:
		panic("calctree: it really should not have ended this way: " + tok.String())
	}
}

type operator struct {
	// prec is the precedence value. Higher is more binding. Zero means no
	// operator.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the tree operator to use when this operator is selected.
	op Operator
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has a prec of 0.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, Add}
	case "-":
		return operator{1, false, Sub}
	case "*", "×":
		return operator{5, false, Mul}
	case "/", "÷":
		return operator{5, false, Div}
	default:
		return operator{}
	}
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{-128, true, Add}
