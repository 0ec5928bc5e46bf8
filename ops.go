package maths

import (
	"math"
	"strconv"
)

// Operator is a binary operator, or one of the two bracket sentinels which
// group subexpressions until conversion to postfix.
type Operator int8

const (
	opNone Operator = iota

	Add        // +
	Subtract   // -
	Multiply   // *
	Divide     // /
	Modulo     // %
	Exponent   // **
	BitAnd     // &
	Xor        // ^
	BitOr      // |
	LeftParen  // (
	RightParen // )
)

var opstrs = [...]string{
	opNone:     "",
	Add:        "+",
	Subtract:   "-",
	Multiply:   "*",
	Divide:     "/",
	Modulo:     "%",
	Exponent:   "**",
	BitAnd:     "&",
	Xor:        "^",
	BitOr:      "|",
	LeftParen:  "(",
	RightParen: ")",
}

func (op Operator) String() string {
	if op <= opNone || int(op) >= len(opstrs) {
		return "Operator(" + strconv.Itoa(int(op)) + ")"
	}
	return opstrs[op]
}

// Prec returns the precedence of the operator. Higher is more binding. The
// bracket sentinels have precedence 0.
func (op Operator) Prec() int {
	switch op {
	case Exponent:
		return 6
	case Multiply, Divide, Modulo:
		return 5
	case Add, Subtract:
		return 4
	case BitAnd:
		return 3
	case Xor:
		return 2
	case BitOr:
		return 1
	default:
		return 0
	}
}

// Apply computes a op b. Bitwise operators truncate their operands toward
// zero to 64-bit integers. Panics if op is a bracket.
func (op Operator) Apply(a, b float64) float64 {
	switch op {
	case Add:
		return a + b
	case Subtract:
		return a - b
	case Multiply:
		return a * b
	case Divide:
		return a / b
	case Modulo:
		return math.Mod(a, b)
	case Exponent:
		return math.Pow(a, b)
	case BitAnd:
		return float64(trunc(a) & trunc(b))
	case Xor:
		return float64(trunc(a) ^ trunc(b))
	case BitOr:
		return float64(trunc(a) | trunc(b))
	default:
		panic("maths: apply " + op.String())
	}
}

// trunc converts x to an integer, rounding toward zero. NaN is 0 and values
// outside the range of int64 saturate.
func trunc(x float64) int64 {
	switch {
	case math.IsNaN(x):
		return 0
	case x >= math.MaxInt64:
		return math.MaxInt64
	case x <= math.MinInt64:
		return math.MinInt64
	default:
		return int64(x)
	}
}
