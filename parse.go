package maths

import (
	"slices"
)

// Expr is a parsed expression that can be evaluated with a context.
type Expr struct {
	// n is the root sequence of the expression.
	n *node
}

// Parse parses one line of input into an expression. Parse does no
// evaluation, so names of variables and functions are not resolved until the
// expression is evaluated.
func Parse(src string) (*Expr, error) {
	b := builder{src: []rune(src)}
	toks := slices.Collect(tokens(src))
	toks = slices.DeleteFunc(toks, func(t lexToken) bool { return t.kind == tokenNewline })
	n, err := b.build(toks)
	if err != nil {
		return nil, trace(err, "while parsing", src)
	}
	return &Expr{n: n}, nil
}

// builder builds expression trees from tokens.
type builder struct {
	// src is the text being parsed, for annotating errors.
	src []rune
}

// build builds one sequence from toks, which ends at the first EOF or at the
// end of the slice. toks contains no newlines. Operator precedence is not
// resolved here.
func (b *builder) build(toks []lexToken) (*node, error) {
	seq := &node{kind: nodeSeq}
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		var n *node
		switch tok.kind {
		case tokenEOF:
			return seq, nil
		case tokenNum:
			n = &node{kind: nodeNum, num: tok.num}
		case tokenIdent:
			if i+1 < len(toks) && toks[i+1].kind == tokenLParen {
				call, end, err := b.call(toks, i)
				if err != nil {
					return nil, err
				}
				n = call
				i = end
				break
			}
			n = &node{kind: nodeVar, name: tok.text}
		case tokenComma:
			return nil, &SeparatorError{Col: tok.span.col(), Sep: tok.text}
		case tokenLCurly, tokenRCurly, tokenLSquare, tokenRSquare, tokenLet:
			return nil, &UnsupportedError{Col: tok.span.col(), Text: tok.text}
		case tokenInvalid:
			return nil, &LexError{Col: tok.span.col(), Text: tok.text}
		default:
			op, ok := tok.kind.operator()
			if !ok {
				panic("maths: unknown token: " + tok.String())
			}
			n = &node{kind: nodeOp, op: op}
		}
		seq.list = append(seq.list, n)
	}
	return seq, nil
}

// call builds a function call whose name is toks[at] and whose open bracket
// is toks[at+1]. The second result is the index of the closing bracket.
func (b *builder) call(toks []lexToken, at int) (*node, int, error) {
	name, open := toks[at], toks[at+1]
	n := &node{kind: nodeCall, name: name.text}
	start := at + 2
	depth := 0
	for i := start; i < len(toks); i++ {
		tok := toks[i]
		switch {
		case tok.kind == tokenEOF:
			return nil, 0, &BracketError{Col: open.span.col(), Left: open.text, Func: name.text}
		case tok.kind == tokenLParen:
			depth++
		case tok.kind == tokenRParen && depth > 0:
			depth--
		case tok.kind == tokenRParen, tok.kind == tokenComma && depth == 0:
			arg := toks[start:i]
			if tok.kind == tokenRParen && len(n.list) == 0 && len(arg) == 0 {
				// Niladic call.
				return n, i, nil
			}
			a, err := b.build(arg)
			if err != nil {
				return nil, 0, trace(err, "while parsing", string(b.src[name.span.start:tok.span.end]))
			}
			n.list = append(n.list, a)
			if tok.kind == tokenRParen {
				return n, i, nil
			}
			start = i + 1
		}
	}
	// Arguments passed to build have balanced brackets, so only a call at
	// the top level can run out of tokens.
	return nil, 0, &BracketError{Col: open.span.col(), Left: open.text, Func: name.text}
}

// String formats the expression as a space-separated infix sequence.
func (e *Expr) String() string {
	if e == nil || e.n == nil {
		return ""
	}
	return e.n.String()
}

// Vars returns the sorted names referenced as variables in the expression,
// including names of constants.
func (e *Expr) Vars() []string {
	if e == nil || e.n == nil {
		return nil
	}
	m := make(map[string]bool)
	e.n.vars(m)
	if len(m) == 0 {
		return nil
	}
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}
