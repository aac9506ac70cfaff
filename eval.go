package calcterm

import "math"

// Vars holds the values of the variable slots X, Y, and Z for one
// evaluation.
type Vars struct {
	X, Y, Z float64
}

// Unused is the value of variable slots that a caller does not supply.
// Terms that read an unused slot compute with +Inf.
var Unused = math.Inf(1)

// Bind creates Vars from up to three values, in the order X, Y, Z. Slots
// without a value are Unused. Panics if given more than three values.
func Bind(xyz ...float64) Vars {
	v := Vars{X: Unused, Y: Unused, Z: Unused}
	switch len(xyz) {
	case 3:
		v.Z = xyz[2]
		fallthrough
	case 2:
		v.Y = xyz[1]
		fallthrough
	case 1:
		v.X = xyz[0]
	case 0: // do nothing
	default:
		panic("calcterm: too many variables")
	}
	return v
}

// evaluator is a sink that computes each operation as soon as the parser
// recognizes it.
type evaluator struct {
	vars Vars
}

func (e *evaluator) num(x float64) float64 {
	return x
}

func (e *evaluator) call0(name string, f Niladic) float64 {
	return f(e.vars)
}

func (e *evaluator) call1(name string, f Monadic, x float64) float64 {
	return f(x)
}

func (e *evaluator) call2(name string, f Dyadic, x, y float64) float64 {
	return f(x, y)
}

// Eval parses and evaluates a term in one pass, with up to three values for
// the variables X, Y, and Z as in Bind. It is a shortcut for EvalVars with
// the default options. More than three values is a *VarsError.
func Eval(src string, xyz ...float64) (float64, error) {
	if len(xyz) > 3 {
		return 0, &VarsError{Len: len(xyz)}
	}
	return EvalVars(src, Bind(xyz...))
}

// EvalVars parses and evaluates a term in one pass. If the term is invalid,
// the error is an InputError. A result of zero is always positive zero.
func EvalVars(src string, v Vars, opts ...Option) (float64, error) {
	r, err := parse[float64](src, &evaluator{vars: v}, options(opts))
	if err != nil {
		return 0, err
	}
	return poszero(r), nil
}

// poszero turns negative zero into positive zero.
func poszero(x float64) float64 {
	if x == 0 {
		return 0
	}
	return x
}
