package calctree

import (
	"strconv"

	"github.com/cockroachdb/redact"
)

// Operator is a binary arithmetic operator.
type Operator int8

const (
	Add Operator = iota
	Sub
	Mul
	Div

	numOperators
)

// Evaluate applies the operator under IEEE-754 double precision rules.
// Division by zero gives an infinity or NaN. Panics if op is not one of the
// defined operators.
func (op Operator) Evaluate(left, right float64) float64 {
	switch op {
	case Add:
		return left + right
	case Sub:
		return left - right
	case Mul:
		return left * right
	case Div:
		return left / right
	default:
		panic("calctree: invalid operator " + strconv.Itoa(int(op)))
	}
}

// Valid returns whether op is one of the defined operators.
func (op Operator) Valid() bool {
	return 0 <= op && op < numOperators
}

func (op Operator) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	default:
		return "Operator(" + strconv.Itoa(int(op)) + ")"
	}
}

// SafeValue implements redact.SafeValue.
func (Operator) SafeValue() {}

// Kind is the tag of a Value.
type Kind int8

const (
	// KindNone is the kind of the zero Value, an empty slot.
	KindNone Kind = iota
	// KindNumber is a numeric leaf.
	KindNumber
	// KindOperator is a binary operator.
	KindOperator
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindNumber:
		return "Number"
	case KindOperator:
		return "Operator"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// SafeValue implements redact.SafeValue.
func (Kind) SafeValue() {}

// Value is the payload of a tree node: either a number or an operator. The
// zero Value holds neither and marks an empty slot.
type Value struct {
	kind Kind
	op   Operator
	num  float64
}

// Num returns a number value.
func Num(x float64) Value {
	return Value{kind: KindNumber, num: x}
}

// Op returns an operator value.
func Op(op Operator) Value {
	return Value{kind: KindOperator, op: op}
}

// Kind returns the value's tag.
func (v Value) Kind() Kind {
	return v.kind
}

// IsZero returns whether v is the empty value.
func (v Value) IsZero() bool {
	return v.kind == KindNone
}

// Number returns the value's number and whether it is a number.
func (v Value) Number() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// Operator returns the value's operator and whether it is an operator.
func (v Value) Operator() (Operator, bool) {
	return v.op, v.kind == KindOperator
}

func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindOperator:
		return v.op.String()
	default:
		return "None"
	}
}

// SafeFormat implements redact.SafeFormatter.
func (v Value) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Print(redact.SafeString(v.String()))
}
