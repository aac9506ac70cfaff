package calcterm

import (
	"math"
	"sort"
	"strings"
)

// Func is a native computation that a name in a term refers to. Every Func
// is exactly one of Niladic, Monadic, or Dyadic; the parser and the
// executor select on that type.
type Func interface {
	// Arity returns the number of arguments the function takes: 0, 1, or 2.
	Arity() int

	isFunc()
}

// Niladic is a function of no arguments. Constants and the variable slots
// are niladic; v holds the variables of the evaluation in progress.
type Niladic func(v Vars) float64

// Monadic is a function of one argument.
type Monadic func(x float64) float64

// Dyadic is a function of two arguments.
type Dyadic func(x, y float64) float64

func (Niladic) Arity() int { return 0 }
func (Monadic) Arity() int { return 1 }
func (Dyadic) Arity() int  { return 2 }

func (Niladic) isFunc() {}
func (Monadic) isFunc() {}
func (Dyadic) isFunc()  {}

type funcEntry struct {
	name string
	fn   Func
}

// functab must stay sorted by name. lookup is a binary search.
var functab = [...]funcEntry{
	{"ACOS", Monadic(math.Acos)},
	{"ARCCOS", Monadic(math.Acos)},
	{"ARCSIN", Monadic(math.Asin)},
	{"ARCTAN", Monadic(math.Atan)},
	{"ARCTAN2", Dyadic(math.Atan2)},
	{"ASIN", Monadic(math.Asin)},
	{"ATAN", Monadic(math.Atan)},
	{"ATAN2", Dyadic(math.Atan2)},
	{"CEIL", Monadic(math.Ceil)},
	{"COS", Monadic(math.Cos)},
	{"COSH", Monadic(math.Cosh)},
	{"E", Niladic(func(Vars) float64 { return math.E })},
	{"EXP", Monadic(math.Exp)},
	{"FLOOR", Monadic(math.Floor)},
	{"FMOD", Dyadic(math.Mod)},
	{"LOG", Monadic(math.Log)},
	{"LOG10", Monadic(math.Log10)},
	{"PI", Niladic(func(Vars) float64 { return math.Pi })},
	{"POW", Dyadic(math.Pow)},
	{"SIN", Monadic(math.Sin)},
	{"SINH", Monadic(math.Sinh)},
	{"SQRT", Monadic(math.Sqrt)},
	{"TAN", Monadic(math.Tan)},
	{"TANH", Monadic(math.Tanh)},
	{"X", Niladic(func(v Vars) float64 { return v.X })},
	{"Y", Niladic(func(v Vars) float64 { return v.Y })},
	{"Z", Niladic(func(v Vars) float64 { return v.Z })},
}

// lookup finds a function by its upper-case name.
func lookup(name string) (Func, bool) {
	i := sort.Search(len(functab), func(i int) bool { return functab[i].name >= name })
	if i < len(functab) && functab[i].name == name {
		return functab[i].fn, true
	}
	return nil, false
}

// Resolve returns the function that a name refers to in terms. The name is
// case-insensitive. If there is no such function, the error is a
// *NameError.
func Resolve(name string) (Func, error) {
	fn, ok := lookup(strings.ToUpper(name))
	if !ok {
		return nil, &NameError{Name: name}
	}
	return fn, nil
}

// Names returns the names of all functions, constants, and variables that
// terms may use, in sorted order.
func Names() []string {
	r := make([]string, len(functab))
	for i, e := range functab {
		r[i] = e.name
	}
	return r
}

// Operators compile to table-style functions as well, so that direct
// evaluation and programs compute with identical code. The conversions
// round each result, which keeps the compiler from fusing a product into a
// following sum in one strategy but not the other.
var (
	opNeg = Monadic(func(x float64) float64 { return -x })
	opAdd = Dyadic(func(x, y float64) float64 { return float64(x + y) })
	opSub = Dyadic(func(x, y float64) float64 { return float64(x - y) })
	opMul = Dyadic(func(x, y float64) float64 { return float64(x * y) })
	opDiv = Dyadic(func(x, y float64) float64 { return float64(x / y) })
	opPow = Dyadic(math.Pow)
)
