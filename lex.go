package calctree

import (
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is a real number, including infinity.
	tokenNum
	// tokenOp is one of the four binary operators.
	tokenOp
	// tokenOpen is an open bracket, e.g. (.
	tokenOpen
	// tokenClose is a close bracket, e.g. ).
	tokenClose
)

//go:generate go mod edit -require=golang.org/x/tools@v0.1.0
//go:generate go mod download
//go:generate go run golang.org/x/tools/cmd/stringer -type=tokenKind -trimprefix=token
//go:generate go mod tidy

// symbols holds every single-rune token. × and ÷ are spellings of * and /.
var symbols = map[rune]lexToken{
	'+': {text: "+", kind: tokenOp},
	'-': {text: "-", kind: tokenOp},
	'*': {text: "*", kind: tokenOp},
	'×': {text: "×", kind: tokenOp},
	'/': {text: "/", kind: tokenOp},
	'÷': {text: "÷", kind: tokenOp},
	'(': {text: "(", kind: tokenOpen},
	'[': {text: "[", kind: tokenOpen},
	'{': {text: "{", kind: tokenOpen},
	')': {text: ")", kind: tokenClose},
	']': {text: "]", kind: tokenClose},
	'}': {text: "}", kind: tokenClose},
}

// closers maps each open bracket to the close bracket that ends its group.
var closers = map[string]string{"(": ")", "[": "]", "{": "}"}

// infinity holds the words and symbols that lex as +Inf.
var infinity = map[string]bool{"inf": true, "Inf": true, "∞": true}

type lexer struct {
	src io.RuneScanner
	buf strings.Builder
	// col is the column of the next rune, counting from 1.
	col int
	// p is the pushed token, if any.
	p   lexToken
	eof bool
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{src: src, col: 1}
}

// push unreads a token so that it is the next token returned from next. Panics
// if there is already a pushed token.
func (l *lexer) push(tok lexToken) {
	if l.p.kind != tokenNone {
		panic("calctree: double push")
	}
	l.p = tok
}

// must takes the pushed token. Panics if there is none.
func (l *lexer) must() lexToken {
	tok := l.p
	if tok.kind == tokenNone {
		panic("calctree: no pushed token")
	}
	l.p = lexToken{}
	return tok
}

// read reads a rune. At the end of input, ok is false and err is nil.
func (l *lexer) read() (r rune, ok bool, err error) {
	r, sz, err := l.src.ReadRune()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, false, nil
		}
		return 0, false, err
	}
	if sz > 0 {
		l.col++
	}
	return r, true, nil
}

// unread steps back over the last rune read. Panics if the source refuses.
func (l *lexer) unread() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.col--
}

// next scans the next token. Whitespace runes in wseof end the input as if at
// EOF. The first end of input gives an EOF token with a nil error; after that,
// unless the EOF token was pushed back, next returns io.EOF.
//
// On an invalid token, the result holds only the position and the error is a
// *LexError. Scanning may continue after it.
func (l *lexer) next(wseof string) (lexToken, error) {
	if l.p.kind != tokenNone {
		return l.must(), nil
	}
	if l.eof {
		return lexToken{}, io.EOF
	}
	defer l.buf.Reset()
	at := l.col
	for {
		r, ok, err := l.read()
		if err != nil {
			return lexToken{pos: at}, err
		}
		if !ok || strings.ContainsRune(wseof, r) && unicode.IsSpace(r) {
			l.eof = true
			return lexToken{kind: tokenEOF, pos: at}, nil
		}
		if unicode.IsSpace(r) {
			at++
			continue
		}
		if tok, ok := symbols[r]; ok {
			tok.pos = at
			return tok, nil
		}
		var scan func() error
		switch {
		case '0' <= r && r <= '9', r == '.':
			scan = l.number
		case r == '_', r == '∞', unicode.IsLetter(r):
			scan = l.word
		default:
			l.buf.WriteRune(r)
			return lexToken{pos: at}, l.error("")
		}
		l.unread()
		if err := scan(); err != nil {
			return lexToken{pos: at}, err
		}
		return lexToken{text: l.buf.String(), kind: tokenNum, pos: at}, nil
	}
}

// numState is the part of a decimal literal being scanned.
type numState int8

const (
	numInt     numState = iota // digits before the point
	numFrac                    // digits after the point
	numExpMark                 // just after e or E
	numExpSign                 // just after the exponent's sign
	numExp                     // exponent digits
)

// number scans a decimal literal: digits with at most one point, then an
// optional exponent. A sign ends the literal unless it directly follows the
// exponent marker.
func (l *lexer) number() error {
	st := numInt
	var digits bool
	for {
		r, ok, err := l.read()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if st == numExpMark && (r == '+' || r == '-') {
			l.buf.WriteRune(r)
			st = numExpSign
			continue
		}
		if _, sym := symbols[r]; sym || unicode.IsSpace(r) {
			l.unread()
			break
		}
		l.buf.WriteRune(r)
		switch {
		case '0' <= r && r <= '9':
			if st < numExpMark {
				digits = true
			} else {
				st = numExp
			}
		case r == '.' && st == numInt:
			st = numFrac
		case (r == 'e' || r == 'E') && digits && st < numExpMark:
			st = numExpMark
		default:
			return l.error("number")
		}
	}
	if !digits || st == numExpMark || st == numExpSign {
		return l.error("number")
	}
	return nil
}

// word scans a run of letters, digits and underscores, or a lone ∞. Only the
// spellings of infinity are valid; anything else is an identifier, which the
// grammar has no use for.
func (l *lexer) word() error {
	for {
		r, ok, err := l.read()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if r == '∞' && l.buf.Len() == 0 {
			l.buf.WriteRune(r)
			break
		}
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			l.unread()
			break
		}
		l.buf.WriteRune(r)
	}
	if !infinity[l.buf.String()] {
		return l.error("identifier")
	}
	return nil
}

func (l *lexer) error(kind string) error {
	return &LexError{Text: l.buf.String(), Kind: kind, Col: l.col}
}
