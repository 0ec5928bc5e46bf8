package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/fatih/color"

	"github.com/zephyrtronium/maths"
	"github.com/zephyrtronium/maths/internal/render"
)

// ans is the variable holding the result of the last successful line.
const ans = "ans"

// session evaluates lines in a shared context.
type session struct {
	ctx   *maths.Context
	radix maths.Radix
	quiet bool

	out  io.Writer
	errw io.Writer
	red  *color.Color

	// failed is the number of lines that failed.
	failed int
}

func newSession(ctx *maths.Context, out, errw io.Writer) *session {
	return &session{
		ctx:  ctx,
		out:  out,
		errw: errw,
		red:  color.New(color.FgRed),
	}
}

// line evaluates one expression and prints its result or error. Blank lines
// are ignored.
func (s *session) line(src string) {
	if strings.TrimSpace(src) == "" {
		return
	}
	e, err := maths.Parse(src)
	if err != nil {
		s.fail(err)
		return
	}
	r, err := s.ctx.Eval(e)
	if err != nil {
		s.fail(err)
		return
	}
	s.ctx.Set(ans, r)
	if s.quiet {
		fmt.Fprintln(s.out, render.Float(r, s.radix))
		return
	}
	fmt.Fprintf(s.out, "%v = %s\n", e, render.Float(r, s.radix))
}

func (s *session) fail(err error) {
	s.failed++
	s.red.Fprintln(s.errw, err)
}

// lines evaluates each line of r, joining continued lines.
func (s *session) lines(r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), math.MaxInt32)
	var j joiner
	for sc.Scan() {
		if src, ok := j.add(sc.Text()); ok {
			s.line(src)
		}
	}
	if src, ok := j.flush(); ok {
		s.line(src)
	}
	return sc.Err()
}

// joiner joins lines ending in a backslash with the lines after them.
type joiner struct {
	b    strings.Builder
	cont bool
}

// add adds a line. If the line completes an expression, add returns it.
func (j *joiner) add(line string) (string, bool) {
	if rest, ok := strings.CutSuffix(line, `\`); ok {
		j.b.WriteString(rest)
		j.cont = true
		return "", false
	}
	j.b.WriteString(line)
	return j.flush()
}

// flush returns any pending text, even if its last line was continued.
func (j *joiner) flush() (string, bool) {
	if j.b.Len() == 0 && !j.cont {
		return "", false
	}
	src := j.b.String()
	j.reset()
	return src, true
}

// pending reports whether the last line was continued.
func (j *joiner) pending() bool {
	return j.cont
}

func (j *joiner) reset() {
	j.b.Reset()
	j.cont = false
}
