package calcterm

import (
	"slices"
	"strconv"
	"strings"
)

// instr is one instruction of a compiled program.
type instr struct {
	kind instrKind
	// name is the source name of the function or operator, for printing.
	name string
	num  float64

	f0 Niladic
	f1 Monadic
	f2 Dyadic
}

type instrKind int8

const (
	instrNone instrKind = iota

	instrNum   // push num
	instrCall0 // push f0(vars)
	instrCall1 // pop a, push f1(a)
	instrCall2 // pop b, pop a, push f2(a, b)
)

func (k instrKind) String() string {
	switch k {
	case instrNone:
		return "None"
	case instrNum:
		return "Num"
	case instrCall0:
		return "Call0"
	case instrCall1:
		return "Call1"
	case instrCall2:
		return "Call2"
	default:
		return "instrKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Program is a compiled term. It is immutable, so any number of goroutines
// may Run the same Program at once.
type Program struct {
	// code is the term in postfix order.
	code []instr
	// depth is the largest number of values on the stack while running.
	depth int
	// vars is the sorted list of variable slots the program reads.
	vars []string
}

// compiler is a sink that records operations as instructions.
type compiler struct {
	code []instr
	// height and depth track the current and maximum stack size.
	height, depth int
	// reads marks the variable slots X, Y, Z that the term reads.
	reads [3]bool
}

func (c *compiler) emit(in instr, delta int) struct{} {
	c.code = append(c.code, in)
	c.height += delta
	if c.height > c.depth {
		c.depth = c.height
	}
	return struct{}{}
}

func (c *compiler) num(x float64) struct{} {
	return c.emit(instr{kind: instrNum, num: x}, 1)
}

func (c *compiler) call0(name string, f Niladic) struct{} {
	switch name {
	case "X":
		c.reads[0] = true
	case "Y":
		c.reads[1] = true
	case "Z":
		c.reads[2] = true
	}
	return c.emit(instr{kind: instrCall0, name: name, f0: f}, 1)
}

func (c *compiler) call1(name string, f Monadic, x struct{}) struct{} {
	return c.emit(instr{kind: instrCall1, name: name, f1: f}, 0)
}

func (c *compiler) call2(name string, f Dyadic, x, y struct{}) struct{} {
	return c.emit(instr{kind: instrCall2, name: name, f2: f}, -1)
}

// Build compiles a term into a program that can be run many times. If the
// term is invalid, the error is an InputError.
func Build(src string, opts ...Option) (*Program, error) {
	var c compiler
	if _, err := parse[struct{}](src, &c, options(opts)); err != nil {
		return nil, err
	}
	p := Program{
		code:  slices.Clip(c.code),
		depth: c.depth,
	}
	for i, ok := range c.reads {
		if ok {
			p.vars = append(p.vars, string(rune('X'+i)))
		}
	}
	return &p, nil
}

// Run executes the program with up to three values for the variables X, Y,
// and Z as in Bind. More than three values is a *VarsError.
func (p *Program) Run(xyz ...float64) (float64, error) {
	if len(xyz) > 3 {
		return 0, &VarsError{Len: len(xyz)}
	}
	return p.RunVars(Bind(xyz...))
}

// RunVars executes the program with the given variables. Programs from Build
// always produce a result; the zero Program and programs damaged some other
// way fail with a *StackError or *ProgramError. A result of zero is always
// positive zero.
func (p *Program) RunVars(v Vars) (float64, error) {
	var buf [16]float64
	stack := buf[:0]
	if p.depth > len(buf) {
		stack = make([]float64, 0, p.depth)
	}
	for i := range p.code {
		in := &p.code[i]
		switch in.kind {
		case instrNum:
			stack = append(stack, in.num)
		case instrCall0:
			stack = append(stack, in.f0(v))
		case instrCall1:
			if len(stack) < 1 {
				return 0, &StackError{Index: i, Op: in.name, Need: 1, Have: len(stack)}
			}
			k := len(stack) - 1
			stack[k] = in.f1(stack[k])
		case instrCall2:
			if len(stack) < 2 {
				return 0, &StackError{Index: i, Op: in.name, Need: 2, Have: len(stack)}
			}
			k := len(stack) - 2
			stack[k] = in.f2(stack[k], stack[k+1])
			stack = stack[:k+1]
		default:
			panic("calcterm: invalid instruction " + in.kind.String() + " at " + strconv.Itoa(i))
		}
	}
	if len(stack) != 1 {
		return 0, &ProgramError{Len: len(stack)}
	}
	return poszero(stack[0]), nil
}

// Len returns the number of instructions in the program.
func (p *Program) Len() int {
	return len(p.code)
}

// Vars returns the names of the variable slots the program reads, in sorted
// order.
func (p *Program) Vars() []string {
	return append(([]string)(nil), p.vars...)
}

// String formats the program in postfix order, e.g. "2 X ^ 1 +".
func (p *Program) String() string {
	var b strings.Builder
	for i, in := range p.code {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch in.kind {
		case instrNum:
			b.WriteString(strconv.FormatFloat(in.num, 'g', -1, 64))
		case instrCall0, instrCall1, instrCall2:
			b.WriteString(in.name)
		default:
			b.WriteString("$" + in.kind.String() + "$")
		}
	}
	return b.String()
}
