package maths

import (
	"math"
	"strconv"
	"strings"
)

// Func is a function from reals to reals. A Func receives its arguments
// unevaluated, so it controls whether and in which order they are evaluated,
// using ctx.Eval. Functions may but generally should not look up variables.
type Func interface {
	// Call evaluates the function. args has a length for which CanCall
	// returned true.
	Call(ctx *Context, args []*Expr) (float64, error)

	// CanCall returns whether the function can be called with n arguments.
	// Calls with other numbers of arguments fail with a CallError.
	CanCall(n int) bool
}

// Usager is implemented by functions which can describe how to call them. The
// description is included in CallErrors.
type Usager interface {
	Usage(name string) string
}

var globalfuncs = map[string]Func{
	"ln":  Monadic(math.Log),
	"log": Monadic(math.Log10),

	"sin":   Monadic(math.Sin),
	"cos":   Monadic(math.Cos),
	"tan":   Monadic(math.Tan),
	"asin":  Monadic(math.Asin),
	"acos":  Monadic(math.Acos),
	"atan":  Monadic(math.Atan),
	"sinh":  Monadic(math.Sinh),
	"cosh":  Monadic(math.Cosh),
	"tanh":  Monadic(math.Tanh),
	"asinh": Monadic(math.Asinh),
	"acosh": Monadic(math.Acosh),
	"atanh": Monadic(math.Atanh),

	"sqrt":  Monadic(math.Sqrt),
	"cbrt":  Monadic(math.Cbrt),
	"floor": Monadic(math.Floor),
	"ceil":  Monadic(math.Ceil),
	"round": Monadic(math.Round),
	"abs":   Monadic(math.Abs),

	"gcd": Fold(gcd),
}

type monadic struct {
	f func(float64) float64
}

func (m monadic) Call(ctx *Context, args []*Expr) (float64, error) {
	x, err := ctx.Eval(args[0])
	if err != nil {
		return 0, err
	}
	return m.f(x), nil
}

func (monadic) CanCall(n int) bool {
	return n == 1
}

func (monadic) Usage(name string) string {
	return name + "(x)"
}

// Monadic wraps a function of one variable into a Func.
func Monadic(f func(float64) float64) Func {
	return monadic{f}
}

type fold struct {
	f func(acc, x float64) float64
}

func (m fold) Call(ctx *Context, args []*Expr) (float64, error) {
	r, err := ctx.Eval(args[0])
	if err != nil {
		return 0, err
	}
	for _, arg := range args[1:] {
		x, err := ctx.Eval(arg)
		if err != nil {
			return 0, err
		}
		r = m.f(r, x)
	}
	return r, nil
}

func (fold) CanCall(n int) bool {
	return n >= 1
}

func (fold) Usage(name string) string {
	return name + "(x, ...)"
}

// Fold wraps a binary function into a Func of one or more arguments. The
// arguments are evaluated in order, and the result is f applied pairwise from
// the left: f(f(f(a, b), c), d).
func Fold(f func(acc, x float64) float64) Func {
	return fold{f}
}

// gcd computes the greatest common divisor of a and b by Euclid's algorithm.
func gcd(a, b float64) float64 {
	if a == 0 {
		return b
	}
	for b > 0 {
		a, b = b, math.Mod(a, b)
	}
	return a
}

// call dispatches a function call: first to the context's functions, then to
// the log_ forms.
func (ctx *Context) call(n *node) (float64, error) {
	args := make([]*Expr, len(n.list))
	for i, a := range n.list {
		args[i] = &Expr{n: a}
	}
	if fn := ctx.funcs[n.name]; fn != nil {
		if !fn.CanCall(len(args)) {
			err := CallError{Func: n.name, Len: len(args)}
			if u, ok := fn.(Usager); ok {
				err.Usage = u.Usage(n.name)
			}
			return 0, &err
		}
		return fn.Call(ctx, args)
	}
	if base, ok := strings.CutPrefix(n.name, "log_"); ok {
		return ctx.logn(n.name, base, args)
	}
	return 0, &FuncError{Name: n.name}
}

// logn evaluates log_<base>(x) for a base written in decimal, or
// log_B(x, base).
func (ctx *Context) logn(name, base string, args []*Expr) (float64, error) {
	if b, err := strconv.ParseFloat(base, 64); err == nil {
		if len(args) != 1 {
			return 0, &CallError{Func: name, Len: len(args), Usage: name + "(x)"}
		}
		x, err := ctx.Eval(args[0])
		if err != nil {
			return 0, err
		}
		return logb(x, b), nil
	}
	if base != "B" {
		return 0, &LogBaseError{Base: base}
	}
	if len(args) != 2 {
		return 0, &CallError{Func: name, Len: len(args), Usage: name + "(x, base)"}
	}
	x, err := ctx.Eval(args[0])
	if err != nil {
		return 0, err
	}
	b, err := ctx.Eval(args[1])
	if err != nil {
		return 0, err
	}
	return logb(x, b), nil
}

// logb computes the logarithm of x in base b.
func logb(x, b float64) float64 {
	switch b {
	case 2:
		return math.Log2(x)
	case 10:
		return math.Log10(x)
	default:
		return math.Log(x) / math.Log(b)
	}
}

// CallError is an error indicating a function call with the wrong number of
// arguments.
type CallError struct {
	// Func is the function name that was called.
	Func string
	// Len is the number of arguments in the call.
	Len int
	// Usage describes how the function is called, if known.
	Usage string
}

func (err *CallError) Error() string {
	s := "cannot call " + err.Func + " with " + strconv.Itoa(err.Len) + " arguments"
	if err.Usage != "" {
		s += "; usage: " + err.Usage
	}
	return s
}

// FuncError is an error indicating a call to a function that does not exist.
type FuncError struct {
	// Name is the name of the function.
	Name string
}

func (err *FuncError) Error() string {
	return "unknown function " + strconv.Quote(err.Name)
}

// LogBaseError is an error indicating a log_ function whose base is neither a
// decimal number nor B.
type LogBaseError struct {
	// Base is the text after log_.
	Base string
}

func (err *LogBaseError) Error() string {
	return "invalid log base " + strconv.Quote(err.Base) + "; write the base in decimal, e.g. log_2(x), or use log_B(x, base)"
}
