package maths_test

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"testing"

	"github.com/zephyrtronium/bigfloat"
	"github.com/zephyrtronium/maths"
)

const prec = 128

func bf(x float64) *big.Float {
	return new(big.Float).SetPrec(prec).SetFloat64(x)
}

// near reports whether got is within a relative tolerance of want.
func near(got float64, want *big.Float, tol float64) bool {
	w, _ := want.Float64()
	if got == w {
		return true
	}
	return math.Abs(got-w) <= tol*math.Abs(w)
}

func TestLogBases(t *testing.T) {
	bases := []float64{3, 5, 7, 16, 100}
	xs := []float64{2, 100, 1e10, 0.125}
	ctx := maths.NewContext()
	for _, b := range bases {
		for _, x := range xs {
			src := "log_" + strconv.FormatFloat(b, 'f', -1, 64) + "(" + strconv.FormatFloat(x, 'f', -1, 64) + ")"
			a, err := maths.Parse(src)
			if err != nil {
				t.Errorf("%q failed to parse: %v", src, err)
				continue
			}
			got, err := ctx.Eval(a)
			if err != nil {
				t.Errorf("%q failed to evaluate: %v", src, err)
				continue
			}
			lx := bigfloat.Log(bf(0), bf(x))
			lb := bigfloat.Log(bf(0), bf(b))
			want := new(big.Float).SetPrec(prec).Quo(lx, lb)
			if !near(got, want, 1e-15) {
				t.Errorf("%s: want %v, got %v", src, want, got)
			}
			// log_B agrees with the fixed-base form.
			c, err := maths.EvalString("log_B(x, b)", maths.SetVars(map[string]float64{"x": x, "b": b}))
			if err != nil || c != got {
				t.Errorf("log_B(%v, %v) gave %v, %v; log_%v gave %v", x, b, c, err, b, got)
			}
		}
	}
}

func TestPowOracle(t *testing.T) {
	cases := []struct {
		x, y float64
	}{
		{2, 0.5},
		{10, 1.5},
		{3, 20},
		{0.5, -3},
		{2, -0.5},
		{9, 0.25},
	}
	a, err := maths.Parse("x ** y")
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range cases {
		ctx := maths.NewContext(maths.SetVar("x", c.x), maths.SetVar("y", c.y))
		got, err := ctx.Eval(a)
		if err != nil {
			t.Errorf("%v ** %v: %v", c.x, c.y, err)
			continue
		}
		want := bigfloat.Pow(bf(0), bf(c.x), bf(c.y))
		if !near(got, want, 1e-15) {
			t.Errorf("%v ** %v: want %v, got %v", c.x, c.y, want, got)
		}
	}
}

func TestExpOracle(t *testing.T) {
	a, err := maths.Parse("e ** x")
	if err != nil {
		t.Fatal(err)
	}
	for _, x := range []float64{-2, 0.5, 1, 10, 30} {
		got, err := maths.NewContext(maths.SetVar("x", x)).Eval(a)
		if err != nil {
			t.Errorf("e ** %v: %v", x, err)
			continue
		}
		want := bigfloat.Exp(bf(0), bf(x))
		if !near(got, want, 1e-14) {
			t.Errorf("e ** %v: want %v, got %v", x, want, got)
		}
	}
}

func TestCallErrorMessage(t *testing.T) {
	cases := []struct {
		src string
		msg string
	}{
		{"sin()", "cannot call sin with 0 arguments; usage: sin(x)"},
		{"gcd()", "cannot call gcd with 0 arguments; usage: gcd(x, ...)"},
		{"log_B(1, 2, 3)", "cannot call log_B with 3 arguments; usage: log_B(x, base)"},
		{"f(1)", "cannot call f with 1 arguments"},
	}
	ctx := maths.NewContext(maths.SetFunc("f", nargs(0)))
	for _, c := range cases {
		a, err := maths.Parse(c.src)
		if err != nil {
			t.Errorf("%q failed to parse: %v", c.src, err)
			continue
		}
		_, err = ctx.Eval(a)
		var ce *maths.CallError
		if !errors.As(err, &ce) {
			t.Errorf("%q: want CallError, got %v", c.src, err)
			continue
		}
		if ce.Error() != c.msg {
			t.Errorf("%q: wrong message: want %q, got %q", c.src, c.msg, ce.Error())
		}
	}
}

// nargs is a function that accepts only n arguments and evaluates none.
type nargs int

func (n nargs) Call(ctx *maths.Context, args []*maths.Expr) (float64, error) {
	return float64(n), nil
}

func (n nargs) CanCall(k int) bool {
	return k == int(n)
}

func TestFoldOrder(t *testing.T) {
	var seen []float64
	record := maths.Fold(func(acc, x float64) float64 {
		seen = append(seen, x)
		return acc - x
	})
	r, err := maths.EvalString("sub(10, 1, 2 * 2)", maths.SetFunc("sub", record))
	if err != nil {
		t.Fatal(err)
	}
	if r != 5 {
		t.Errorf("wrong result: want 5, got %g", r)
	}
	if len(seen) != 2 || seen[0] != 1 || seen[1] != 4 {
		t.Errorf("wrong fold order: %v", seen)
	}
}

func TestFoldStopsOnError(t *testing.T) {
	n := 0
	count := maths.Fold(func(acc, x float64) float64 {
		n++
		return acc + x
	})
	_, err := maths.EvalString("count(1, 2, y, 3)", maths.SetFunc("count", count))
	var ne *maths.NameError
	if !errors.As(err, &ne) || ne.Name != "y" {
		t.Errorf("wrong error: %v", err)
	}
	if n != 1 {
		t.Errorf("fold called %d times before the error, want 1", n)
	}
}

func TestNiladic(t *testing.T) {
	r, err := maths.EvalString("zero() + 1", maths.SetFunc("zero", nargs(0)))
	if err != nil || r != 1 {
		t.Errorf("zero() + 1 gave %g, %v", r, err)
	}
}

func TestGCD(t *testing.T) {
	cases := []struct {
		src string
		r   float64
	}{
		{"gcd(3, 6, 54)", 3},
		{"gcd(0, 7)", 7},
		{"gcd(7, 0)", 7},
		{"gcd(0, 0)", 0},
		{"gcd(48, 180)", 12},
		{"gcd(17, 5)", 1},
		{"gcd(0.5, 0.25)", 0.25},
		{"gcd(2 ** 10, 2 ** 6 * 3)", 64},
	}
	for _, c := range cases {
		r, err := maths.EvalString(c.src)
		if err != nil {
			t.Errorf("%q: %v", c.src, err)
			continue
		}
		if r != c.r {
			t.Errorf("%q: want %g, got %g", c.src, c.r, r)
		}
	}
}
