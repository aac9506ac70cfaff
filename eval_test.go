package calcterm_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/zephyrtronium/calcterm"
)

// same reports whether two results are identical, including the sign of zero.
// All NaNs are the same.
func same(a, b float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	return math.Float64bits(a) == math.Float64bits(b)
}

var evalCases = []struct {
	name string
	src  string
	vars []float64
	r    float64
}{
	{"num", "1", nil, 1},
	{"prec", "1+2*3", nil, 7},
	{"prec-sub-div", "8-6/2", nil, 5},
	{"prec-div-add", "8/2+2", nil, 6},
	{"prec-mul-sub", "2*3-4", nil, 2},
	{"paren", "(1+2)*3", nil, 9},
	{"sub-left", "10-4-3", nil, 3},
	{"div-left", "64/4/2", nil, 8},
	{"pow", "2^10", nil, 1024},
	{"pow-left", "2^3^2", nil, 64},
	{"pow-right-paren", "2^(3^2)", nil, 512},
	{"neg-pow", "-2^2", nil, 4},
	{"neg-paren-pow", "-(2^2)", nil, -4},
	{"pow-neg", "2^-1", nil, 0.5},
	{"plus", "+3", nil, 3},
	{"neg", "-3", nil, -3},
	{"mul-neg", "2*-3", nil, -6},
	{"sin", "SIN(0)", nil, 0},
	{"cos", "COS(0)", nil, 1},
	{"pi", "PI", nil, math.Pi},
	{"e", "e", nil, math.E},
	{"exp", "exp(1)", nil, math.Exp(1)},
	{"log", "log(1)", nil, 0},
	{"log10", "log10(1000)", nil, math.Log10(1000)},
	{"sqrt", "sqrt(16)", nil, 4},
	{"floor", "floor(-1.5)", nil, -2},
	{"ceil", "ceil(1.25)", nil, 2},
	{"fmod", "fmod(7, 3)", nil, 1},
	{"pow-func", "pow(2, 0.5)", nil, math.Pow(2, 0.5)},
	{"atan2", "atan2(1, 1)", nil, math.Atan2(1, 1)},
	{"arctan2", "ARCTAN2(1, 1)", nil, math.Atan2(1, 1)},
	{"exp-literal", "2.5e2", nil, 250},
	{"xyz", "X+Y+Z", []float64{1, 2, 3}, 6},
	{"x", "x*x", []float64{3}, 9},
	{"xy", "atan2(y, x)", []float64{0, 1}, math.Pi / 2},
	{"unused-x", "x", nil, math.Inf(1)},
	{"unused-z", "z", []float64{1, 2}, math.Inf(1)},
	{"unused-neg", "-y", []float64{1}, math.Inf(-1)},
	{"div-zero", "1/0", nil, math.Inf(1)},
	{"div-neg-zero", "1/-0", nil, math.Inf(-1)},
	{"nan", "0/0", nil, math.NaN()},
	{"sqrt-neg", "sqrt(-1)", nil, math.NaN()},
	{"zero-sub", "0-0", nil, 0},
	{"zero-neg", "-0", nil, 0},
	{"zero-mul", "0*-1", nil, 0},
	{"zero-var", "-x", []float64{0}, 0},
	{"zero-sin", "sin(-0)", nil, 0},
}

func TestEval(t *testing.T) {
	for _, c := range evalCases {
		t.Run(c.name, func(t *testing.T) {
			r, err := calcterm.Eval(c.src, c.vars...)
			require.NoError(t, err)
			assert.True(t, same(c.r, r), "%s = %v, want %v", c.src, r, c.r)
		})
	}
}

func TestRun(t *testing.T) {
	for _, c := range evalCases {
		t.Run(c.name, func(t *testing.T) {
			p, err := calcterm.Build(c.src)
			require.NoError(t, err)
			r, err := p.Run(c.vars...)
			require.NoError(t, err)
			assert.True(t, same(c.r, r), "%s = %v, want %v", c.src, r, c.r)
			d, err := calcterm.EvalVars(c.src, calcterm.Bind(c.vars...))
			require.NoError(t, err)
			assert.True(t, same(d, r), "compiled %v, direct %v", r, d)
		})
	}
}

func TestRunRepeated(t *testing.T) {
	p, err := calcterm.Build("x*x + y")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		x := float64(i)
		r, err := p.Run(x, 1)
		require.NoError(t, err)
		assert.Equal(t, x*x+1, r)
	}
	// Omitted variables do not remember earlier runs.
	r, err := p.Run(2)
	require.NoError(t, err)
	assert.Equal(t, math.Inf(1), r)
}

func TestEvalNoStaleVars(t *testing.T) {
	r, err := calcterm.Eval("x+y", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3.0, r)
	r, err = calcterm.Eval("y")
	require.NoError(t, err)
	assert.Equal(t, calcterm.Unused, r)
}

func TestBind(t *testing.T) {
	u := calcterm.Unused
	assert.Equal(t, calcterm.Vars{X: u, Y: u, Z: u}, calcterm.Bind())
	assert.Equal(t, calcterm.Vars{X: 1, Y: u, Z: u}, calcterm.Bind(1))
	assert.Equal(t, calcterm.Vars{X: 1, Y: 2, Z: u}, calcterm.Bind(1, 2))
	assert.Equal(t, calcterm.Vars{X: 1, Y: 2, Z: 3}, calcterm.Bind(1, 2, 3))
	assert.Panics(t, func() { calcterm.Bind(1, 2, 3, 4) })
}

func TestTooManyVars(t *testing.T) {
	r, err := calcterm.Eval("x+y+z", 1, 2, 3, 4)
	assert.Equal(t, 0.0, r)
	assert.Equal(t, &calcterm.VarsError{Len: 4}, err)
	var ie calcterm.InputError
	assert.False(t, errors.As(err, &ie))

	p, err := calcterm.Build("x")
	require.NoError(t, err)
	r, err = p.Run(1, 2, 3, 4, 5)
	assert.Equal(t, 0.0, r)
	assert.Equal(t, &calcterm.VarsError{Len: 5}, err)
	assert.EqualError(t, err, "too many variables: 5 values for X, Y, Z")
}

func TestEvalErrorKinds(t *testing.T) {
	_, err := calcterm.Eval("SQRT(")
	var be *calcterm.BracketError
	assert.ErrorAs(t, err, &be)
	_, err = calcterm.Eval("FOO(1)")
	var ne *calcterm.NameError
	assert.ErrorAs(t, err, &ne)
	assert.False(t, errors.As(err, &be))
}

func TestRunConcurrent(t *testing.T) {
	p, err := calcterm.Build("x*y - z")
	require.NoError(t, err)
	var g errgroup.Group
	for i := 0; i < 32; i++ {
		i := float64(i)
		g.Go(func() error {
			for j := 0; j < 1000; j++ {
				r, err := p.Run(i, float64(j), 1)
				if err != nil {
					return err
				}
				if want := i*float64(j) - 1; r != want {
					return fmt.Errorf("run(%v, %v, 1) = %v, want %v", i, j, r, want)
				}
			}
			return nil
		})
	}
	assert.NoError(t, g.Wait())
}

func BenchmarkEval(b *testing.B) {
	const src = "sin(x)^2 + cos(y)^2 * z"
	b.Run("direct", func(b *testing.B) {
		b.ReportAllocs()
		v := calcterm.Bind(1, 2, 3)
		for i := 0; i < b.N; i++ {
			calcterm.EvalVars(src, v)
		}
	})
	b.Run("compiled", func(b *testing.B) {
		b.ReportAllocs()
		p, err := calcterm.Build(src)
		if err != nil {
			b.Fatal(err)
		}
		v := calcterm.Bind(1, 2, 3)
		for i := 0; i < b.N; i++ {
			p.RunVars(v)
		}
	})
}

func Example() {
	p, err := calcterm.Build("x^3/2 - x")
	if err != nil {
		panic(err)
	}
	for i := 0; i < 4; i++ {
		x := float64(i)
		y, _ := p.Run(x)
		fmt.Printf("x = %g   y = %g\n", x, y)
	}

	// Output:
	// x = 0   y = 0
	// x = 1   y = -0.5
	// x = 2   y = 2
	// x = 3   y = 10.5
}

func ExampleEval() {
	r, _ := calcterm.Eval("2^3^2")
	fmt.Println(r)
	r, _ = calcterm.Eval("x^2 + y^2", 3, 4)
	fmt.Println(r)
	_, err := calcterm.Eval("sqrt(2")
	fmt.Println(err)

	// Output:
	// 64
	// 25
	// 7: missing ) for ( at 5
}

func ExampleProgram_String() {
	p, _ := calcterm.Build("-2^x + sin(pi*y)")
	fmt.Println(p)
	fmt.Println(p.Vars())

	// Output:
	// 2 NEG X ^ PI Y * SIN +
	// [X Y]
}
