package maths

import (
	"strconv"
	"strings"
)

// LexError indicates a rune or number literal that the tokenizer could not
// understand. It implements InputError.
type LexError struct {
	// Col is the position of the invalid token.
	Col int
	// Text is the invalid token.
	Text string
}

func (err *LexError) Error() string {
	return errpos(err.Col, "invalid token "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}

// BracketError is an error indicating mismatched brackets. Brackets found
// mismatched only during evaluation have no position. It implements
// InputError.
type BracketError struct {
	// Col is the position of the unmatched bracket, or 0 if unknown.
	Col int
	// Left is the opening bracket.
	Left string
	// Right is the mismatched closing bracket.
	Right string
	// Func is the name of the function whose argument list is unterminated,
	// if any.
	Func string
}

func (err *BracketError) Error() string {
	switch {
	case err.Func != "":
		return errpos(err.Col, "unterminated call to "+err.Func+": open bracket "+err.Left+" with no close bracket")
	case err.Left == "":
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	case err.Right == "":
		return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
	}
	return errpos(err.Col, "mismatched bracket: "+err.Left+"expr"+err.Right)
}

func (err *BracketError) Pos() int {
	return err.Col
}

// SeparatorError is an error indicating a comma outside a function's argument
// list. It implements InputError.
type SeparatorError struct {
	// Col is the position of the separator.
	Col int
	// Sep is the separator.
	Sep string
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, "invalid occurrence of separator "+strconv.Quote(err.Sep))
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

// UnsupportedError is an error indicating a token which is reserved but has
// no meaning yet, either a curly or square bracket outside a function's
// argument list or the keyword let. It implements InputError.
type UnsupportedError struct {
	// Col is the position of the token.
	Col int
	// Text is the token.
	Text string
}

func (err *UnsupportedError) Error() string {
	if err.Text == "let" {
		return errpos(err.Col, "let declarations are not supported")
	}
	return errpos(err.Col, "unexpected token "+strconv.Quote(err.Text))
}

func (err *UnsupportedError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	if pos <= 0 {
		return msg
	}
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// parsing invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the 1-based column of the start of the token that caused
	// the error, or 0 if the error has no position.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*UnsupportedError)(nil)
)

// TraceError is an error annotated with the text of each expression that was
// being parsed or evaluated when it occurred, innermost first. Consecutive
// identical annotations appear once. Errors returned
// from Parse and Context.Eval are usually TraceErrors; use errors.As to find
// the underlying cause.
type TraceError struct {
	// Err is the original error.
	Err error
	// Trace is the list of annotations.
	Trace []string
}

func (err *TraceError) Error() string {
	var b strings.Builder
	b.WriteString(err.Err.Error())
	for _, t := range err.Trace {
		b.WriteString("\n\t")
		b.WriteString(t)
	}
	return b.String()
}

func (err *TraceError) Unwrap() error {
	return err.Err
}

// trace annotates err as having happened while doing what to text. An
// annotation identical to the previous one is dropped.
func trace(err error, what, text string) error {
	line := what + ": `" + text + "`"
	te, ok := err.(*TraceError)
	if !ok {
		return &TraceError{Err: err, Trace: []string{line}}
	}
	if k := len(te.Trace); k > 0 && te.Trace[k-1] == line {
		return te
	}
	te.Trace = append(te.Trace, line)
	return te
}
