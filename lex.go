package maths

import (
	"errors"
	"iter"
	"strconv"
	"strings"
	"unicode"
)

type lexToken struct {
	kind tokenKind
	span span
	// text is the source text of the token.
	text string
	// num and radix are the value and radix of a number token.
	num   float64
	radix Radix
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + t.span.String()
}

// span is a half-open range [start, end) of rune offsets into a line.
type span struct {
	start, end int
}

func (s span) String() string {
	return strconv.Itoa(s.start) + ".." + strconv.Itoa(s.end)
}

// col is the 1-based column of the start of the span.
func (s span) col() int {
	return s.start + 1
}

type tokenKind int8

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is a decimal, hexadecimal, or binary number.
	tokenNum
	// tokenIdent is a variable or function name.
	tokenIdent
	// tokenLet is the reserved word let.
	tokenLet
	tokenNewline
	// tokenInvalid is a rune or number that can't start any token.
	tokenInvalid

	tokenAdd    // +
	tokenSub    // -
	tokenMul    // *
	tokenDiv    // /
	tokenMod    // %
	tokenPow    // **
	tokenXor    // ^
	tokenAnd    // &
	tokenOr     // |
	tokenComma  // ,
	tokenLParen // (
	tokenRParen // )
	tokenLCurly // {
	tokenRCurly // }
	tokenLSquare
	tokenRSquare
)

var tokenNames = [...]string{
	tokenNone:    "None",
	tokenEOF:     "EOF",
	tokenNum:     "Num",
	tokenIdent:   "Ident",
	tokenLet:     "Let",
	tokenNewline: "Newline",
	tokenInvalid: "Invalid",
	tokenAdd:     "Add",
	tokenSub:     "Sub",
	tokenMul:     "Mul",
	tokenDiv:     "Div",
	tokenMod:     "Mod",
	tokenPow:     "Pow",
	tokenXor:     "Xor",
	tokenAnd:     "And",
	tokenOr:      "Or",
	tokenComma:   "Comma",
	tokenLParen:  "LParen",
	tokenRParen:  "RParen",
	tokenLCurly:  "LCurly",
	tokenRCurly:  "RCurly",
	tokenLSquare: "LSquare",
	tokenRSquare: "RSquare",
}

func (k tokenKind) String() string {
	if k < 0 || int(k) >= len(tokenNames) {
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
	return tokenNames[k]
}

// operator gets the operator a token denotes, if any.
func (k tokenKind) operator() (Operator, bool) {
	switch k {
	case tokenAdd:
		return Add, true
	case tokenSub:
		return Subtract, true
	case tokenMul:
		return Multiply, true
	case tokenDiv:
		return Divide, true
	case tokenMod:
		return Modulo, true
	case tokenPow:
		return Exponent, true
	case tokenXor:
		return Xor, true
	case tokenAnd:
		return BitAnd, true
	case tokenOr:
		return BitOr, true
	case tokenLParen:
		return LeftParen, true
	case tokenRParen:
		return RightParen, true
	default:
		return opNone, false
	}
}

// symbols maps single-rune tokens to their kinds. * is handled separately
// because of **.
var symbols = map[rune]tokenKind{
	'+':  tokenAdd,
	'-':  tokenSub,
	'*':  tokenMul,
	'/':  tokenDiv,
	'%':  tokenMod,
	'^':  tokenXor,
	'&':  tokenAnd,
	'|':  tokenOr,
	',':  tokenComma,
	'(':  tokenLParen,
	')':  tokenRParen,
	'{':  tokenLCurly,
	'}':  tokenRCurly,
	'[':  tokenLSquare,
	']':  tokenRSquare,
	'\n': tokenNewline,
}

// Radix is the base of a numeric literal.
type Radix int8

const (
	Decimal Radix = iota
	Hexadecimal
	Binary
)

// Base returns the numeric base of the radix.
func (r Radix) Base() int {
	switch r {
	case Hexadecimal:
		return 16
	case Binary:
		return 2
	default:
		return 10
	}
}

func (r Radix) String() string {
	switch r {
	case Decimal:
		return "dec"
	case Hexadecimal:
		return "hex"
	case Binary:
		return "bin"
	default:
		return "Radix(" + strconv.Itoa(int(r)) + ")"
	}
}

// digit returns the value of c as a digit in the radix, or -1 if c is not a
// valid digit.
func (r Radix) digit(c rune) int {
	var d int
	switch {
	case '0' <= c && c <= '9':
		d = int(c - '0')
	case 'a' <= c && c <= 'f':
		d = int(c-'a') + 10
	case 'A' <= c && c <= 'F':
		d = int(c-'A') + 10
	default:
		return -1
	}
	if d >= r.Base() {
		return -1
	}
	return d
}

// parse converts the digits of a literal, without any radix prefix, to a
// value. The second result is false if s has no digits.
func (r Radix) parse(s string) (float64, bool) {
	if r == Decimal {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, false
		}
		return v, true
	}
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return 0, false
	}
	base := float64(r.Base())
	var v float64
	for _, c := range whole {
		v = v*base + float64(r.digit(c))
	}
	// Accumulate the fraction from its last digit so each digit is divided
	// by the radix once per position.
	var f float64
	for i := len(frac) - 1; i >= 0; i-- {
		f = (f + float64(r.digit(rune(frac[i])))) / base
	}
	return v + f, true
}

type lexer struct {
	src []rune
	pos int
	eof bool
}

func lex(src string) *lexer {
	return &lexer{src: []rune(src)}
}

// tokens returns the sequence of tokens in src. Each iteration scans src from
// the start. The sequence always ends with exactly one EOF token.
func tokens(src string) iter.Seq[lexToken] {
	return func(yield func(lexToken) bool) {
		l := lex(src)
		for tok, ok := l.next(); ok; tok, ok = l.next() {
			if !yield(tok) {
				return
			}
		}
	}
}

// next scans the next token from the input. After the EOF token has been
// returned, the second result is false.
func (l *lexer) next() (lexToken, bool) {
	if l.eof {
		return lexToken{}, false
	}
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.src) {
		l.eof = true
		return lexToken{kind: tokenEOF, span: span{l.pos, l.pos + 1}}, true
	}
	tok := l.scan()
	tok.text = string(l.src[tok.span.start:tok.span.end])
	return tok, true
}

func (l *lexer) scan() lexToken {
	start := l.pos
	r := l.src[start]
	switch {
	case r == '-' && l.startsNum(start+1):
		// A minus directly before a number is always its sign, even after an
		// operand. Subtraction needs a space: "3 - 1".
		l.pos++
		tok := l.scanNum(start)
		tok.num = -tok.num
		return tok
	case l.startsNum(start):
		return l.scanNum(start)
	case r == '_' || isLetter(r):
		return l.scanIdent(start)
	case r == '*' && l.peek(1) == '*':
		l.pos += 2
		return lexToken{kind: tokenPow, span: span{start, l.pos}}
	}
	l.pos++
	k, ok := symbols[r]
	if !ok {
		k = tokenInvalid
	}
	return lexToken{kind: k, span: span{start, l.pos}}
}

// peek returns the rune k positions after the current one, or 0 if that is
// past the end of the input.
func (l *lexer) peek(k int) rune {
	if l.pos+k >= len(l.src) {
		return 0
	}
	return l.src[l.pos+k]
}

// startsNum returns whether a number literal starts at position i.
func (l *lexer) startsNum(i int) bool {
	if i >= len(l.src) {
		return false
	}
	if isDigit(l.src[i]) {
		return true
	}
	return l.src[i] == '.' && i+1 < len(l.src) && isDigit(l.src[i+1])
}

// scanNum scans a number literal beginning at the current position. start is
// the position of the token, which may include a sign.
func (l *lexer) scanNum(start int) lexToken {
	radix := Decimal
	if l.src[l.pos] == '0' {
		switch l.peek(1) {
		case 'x':
			radix = Hexadecimal
			l.pos += 2
		case 'b':
			radix = Binary
			l.pos += 2
		}
	}
	digits := l.pos
	dot := false
	for l.pos < len(l.src) {
		r := l.src[l.pos]
		if r == '.' {
			if dot {
				break
			}
			dot = true
		} else if radix.digit(r) < 0 {
			break
		}
		l.pos++
	}
	tok := lexToken{kind: tokenNum, span: span{start, l.pos}, radix: radix}
	v, ok := radix.parse(string(l.src[digits:l.pos]))
	if !ok {
		tok.kind = tokenInvalid
		return tok
	}
	tok.num = v
	return tok
}

func (l *lexer) scanIdent(start int) lexToken {
	for l.pos < len(l.src) {
		r := l.src[l.pos]
		if r != '_' && !isLetter(r) && !isDigit(r) {
			break
		}
		l.pos++
	}
	tok := lexToken{kind: tokenIdent, span: span{start, l.pos}}
	if string(l.src[start:l.pos]) == "let" {
		tok.kind = tokenLet
	}
	return tok
}

// IsName reports whether s is a name that can be used for a variable or
// function, with no surrounding space.
func IsName(s string) bool {
	l := lex(s)
	tok, _ := l.next()
	if tok.kind != tokenIdent || tok.text != s {
		return false
	}
	tok, _ = l.next()
	return tok.kind == tokenEOF
}

// isSpace reports whether r is insignificant whitespace. Newlines are tokens.
func isSpace(r rune) bool {
	return r != '\n' && unicode.IsSpace(r)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}
