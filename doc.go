// Package maths implements a calculator for arithmetic expressions over
// float64.
//
// An expression is one line of numbers, names, operators, brackets, and
// function calls. Numbers may be decimal ("12.5"), hexadecimal ("0xc.8"), or
// binary ("0b1100.1"). A minus sign directly before a number is always part of
// the number, so "2*-3" is -6, and subtraction of a literal needs a space:
// "3 - 1" is 2, but "3-1" is the two values 3 and -1 and fails to evaluate.
//
// The binary operators, from most to least binding, are
//
//	**          exponentiation
//	*  /  %     multiplication, division, remainder
//	+  -        addition, subtraction
//	&           bitwise and
//	^           bitwise exclusive or
//	|           bitwise or
//
// All operators are left-associative, so "2 ** 3 ** 2" is 64. Bitwise
// operators truncate their operands to integers. Parentheses group
// subexpressions. A name followed by an open parenthesis is a function call,
// with arguments separated by commas. Besides the functions installed in a
// Context, log_N(x) computes the logarithm of x in any base N written in
// decimal, and log_B(x, b) in base b.
//
// Parse resolves no names, so a parsed expression can be evaluated in many
// contexts. The names pi, e, inf, true, and false are always defined.
package maths
