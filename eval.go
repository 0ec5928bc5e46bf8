package maths

import (
	"math"
	"slices"
	"strconv"
)

// Context is a context for evaluating expressions. It holds constants,
// variables, and functions. Evaluating an expression never changes a Context.
// It is not safe to use a Context concurrently.
type Context struct {
	consts map[string]float64
	names  map[string]float64
	funcs  map[string]Func
}

// constants are the names which are always defined. They take precedence over
// variables of the same name.
var constants = map[string]float64{
	"pi":    math.Pi,
	"e":     math.E,
	"inf":   math.Inf(1),
	"true":  1,
	"false": 0,
}

// Constant returns the value of a named constant. If there is no constant with
// the name, the second result is false.
func Constant(name string) (float64, bool) {
	v, ok := constants[name]
	return v, ok
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	varopt struct {
		name string
		val  float64
	}
	varsopt map[string]float64
	funcopt struct {
		name string
		fn   Func
	}
	funcsopt map[string]Func
)

func (varopt) ctxOption()   {}
func (varsopt) ctxOption()  {}
func (funcopt) ctxOption()  {}
func (funcsopt) ctxOption() {}

// SetVar sets the value of a variable in the context.
func SetVar(name string, val float64) ContextOption {
	return varopt{name, val}
}

// SetVars sets the values of any number of variables in the context.
func SetVars(vars map[string]float64) ContextOption {
	return varsopt(vars)
}

// SetFunc registers a function in the context. To disable a function, pass
// nil for fn.
func SetFunc(name string, fn Func) ContextOption {
	return funcopt{name, fn}
}

// SetFuncs registers a group of functions in the context. To disable any
// function, set it to nil.
func SetFuncs(fns map[string]Func) ContextOption {
	return funcsopt(fns)
}

// DisableDefaultFuncs disables all default functions. The log_ forms are
// still available.
func DisableDefaultFuncs() ContextOption {
	m := make(funcsopt, len(globalfuncs))
	for k := range globalfuncs {
		m[k] = nil
	}
	return m
}

// NewContext creates a new evaluation context with the default constants and
// functions and no variables.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{consts: constants, funcs: globalfuncs}
	return ctx.Clone(opts...)
}

// Clone creates a copy of a context and applies options to it. Changes to the
// variables of either context do not affect the other.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		consts: ctx.consts,
		names:  make(map[string]float64, len(ctx.names)),
		funcs:  ctx.funcs,
	}
	for k, v := range ctx.names {
		n.names[k] = v
	}
	cloned := false
	setfn := func(name string, fn Func) {
		if !cloned {
			// Functions are shared until an option changes them.
			m := make(map[string]Func, len(n.funcs)+1)
			for k, v := range n.funcs {
				m[k] = v
			}
			n.funcs = m
			cloned = true
		}
		n.funcs[name] = fn
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			n.names[opt.name] = opt.val
		case varsopt:
			for k, v := range opt {
				n.names[k] = v
			}
		case funcopt:
			setfn(opt.name, opt.fn)
		case funcsopt:
			for k, v := range opt {
				setfn(k, v)
			}
		default:
			panic("maths: unknown option type")
		}
	}
	return &n
}

// Set sets the value of a variable. Returns ctx for chaining. A variable with
// the name of a constant is shadowed by the constant.
func (ctx *Context) Set(name string, value float64) *Context {
	if ctx.names == nil {
		ctx.names = make(map[string]float64)
	}
	ctx.names[name] = value
	return ctx
}

// Lookup returns the value of a variable. If there is no such variable in the
// context, then the second result is false.
func (ctx *Context) Lookup(name string) (float64, bool) {
	v, ok := ctx.names[name]
	return v, ok
}

// Names returns the sorted names of the context's variables.
func (ctx *Context) Names() []string {
	names := make([]string, 0, len(ctx.names))
	for k := range ctx.names {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// Eval evaluates an expression and returns the result. Evaluating the same
// expression with an unchanged context always gives the same result. A nil or
// zero Expr is an empty expression.
func (ctx *Context) Eval(e *Expr) (float64, error) {
	if e == nil || e.n == nil {
		return 0, &ExprError{Len: 0}
	}
	return ctx.eval(e.n)
}

// eval computes the value of any operand node.
func (ctx *Context) eval(n *node) (float64, error) {
	switch n.kind {
	case nodeNum:
		return n.num, nil
	case nodeVar:
		return ctx.lookup(n.name)
	case nodeSeq:
		r, err := ctx.infix(n.list)
		if err != nil {
			return 0, trace(err, "while evaluating", n.String())
		}
		return r, nil
	case nodeCall:
		r, err := ctx.call(n)
		if err != nil {
			return 0, trace(err, "while evaluating", n.String())
		}
		return r, nil
	case nodeOp:
		// Can't happen for expressions from Parse, but Eval doesn't assume
		// that.
		return 0, &OperatorError{Op: n.op}
	default:
		panic("maths: invalid node kind " + n.kind.String())
	}
}

// lookup gets the value of a constant or, failing that, a variable.
func (ctx *Context) lookup(name string) (float64, error) {
	if v, ok := ctx.consts[name]; ok {
		return v, nil
	}
	if v, ok := ctx.names[name]; ok {
		return v, nil
	}
	return 0, &NameError{Name: name}
}

// infix evaluates an infix sequence by converting it to postfix and running
// it on a stack.
func (ctx *Context) infix(seq []*node) (float64, error) {
	pf, err := postfix(seq)
	if err != nil {
		return 0, err
	}
	stack := make([]*node, 0, len(pf))
	for _, n := range pf {
		if n.operand() {
			stack = append(stack, n)
			continue
		}
		if len(stack) < 2 {
			return 0, &OperandError{Op: n.op}
		}
		a, b := stack[len(stack)-2], stack[len(stack)-1]
		stack = stack[:len(stack)-2]
		x, err := ctx.eval(a)
		if err != nil {
			return 0, trace(err, "while evaluating operand", a.String())
		}
		y, err := ctx.eval(b)
		if err != nil {
			return 0, trace(err, "while evaluating operand", b.String())
		}
		stack = append(stack, &node{kind: nodeNum, num: n.op.Apply(x, y)})
	}
	if len(stack) != 1 {
		return 0, &ExprError{Len: len(stack)}
	}
	return ctx.eval(stack[0])
}

// postfix converts an infix sequence to postfix using the shunting-yard
// algorithm. Every operator pops those of equal or higher precedence, so all
// operators, including **, are left-associative. The result contains no
// bracket sentinels.
func postfix(seq []*node) ([]*node, error) {
	out := make([]*node, 0, len(seq))
	var ops []*node
	pop := func() *node {
		n := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		return n
	}
	for _, n := range seq {
		if n.operand() {
			out = append(out, n)
			continue
		}
		switch n.op {
		case LeftParen:
			ops = append(ops, n)
		case RightParen:
			for {
				if len(ops) == 0 {
					return nil, &BracketError{Right: n.op.String()}
				}
				top := pop()
				if top.op == LeftParen {
					break
				}
				out = append(out, top)
			}
		default:
			p := n.op.Prec()
			for len(ops) > 0 && p <= ops[len(ops)-1].op.Prec() {
				out = append(out, pop())
			}
			ops = append(ops, n)
		}
	}
	for len(ops) > 0 {
		top := pop()
		if top.op == LeftParen {
			return nil, &BracketError{Left: top.op.String()}
		}
		out = append(out, top)
	}
	return out, nil
}

// EvalString is a shortcut to parse and evaluate an expression in a new
// context.
func EvalString(src string, opts ...ContextOption) (float64, error) {
	a, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return NewContext(opts...).Eval(a)
}

// NameError is an error from a lookup for a variable that is neither a
// constant nor defined in the evaluation context.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undeclared variable or constant " + strconv.Quote(err.Name)
}

// OperandError is an error indicating an operator without two operands.
type OperandError struct {
	// Op is the operator.
	Op Operator
}

func (err *OperandError) Error() string {
	return "missing operand for " + strconv.Quote(err.Op.String())
}

// OperatorError is an error indicating an operator where a value was
// required.
type OperatorError struct {
	// Op is the operator.
	Op Operator
}

func (err *OperatorError) Error() string {
	return "expected expression, found operator " + strconv.Quote(err.Op.String())
}

// ExprError is an error indicating an expression that does not reduce to
// exactly one value, such as two terms with no operator between them.
type ExprError struct {
	// Len is the number of values the expression reduced to.
	Len int
}

func (err *ExprError) Error() string {
	if err.Len == 0 {
		return "empty expression"
	}
	return "invalid expression: " + strconv.Itoa(err.Len) + " values with no operator between them"
}
