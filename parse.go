package calcterm

// Sum     = Product { ('+' | '-') Product }
// Product = Power { ('*' | '/') Power }
// Power   = Unary { '^' Unary }
// Unary   = [ '+' | '-' ] Primary
// Primary = num | name | name '(' Sum ')' | name '(' Sum ',' Sum ')' | '(' Sum ')'
//
// Every binary operator is left-associative, including '^'. The sign in
// Unary applies to a Primary, so -2^2 is (-2)^2.

// sink receives the operations of a term in postfix order as the parser
// recognizes them. T is the result of each grammar rule: a value when the
// sink evaluates immediately, or nothing when it records a program.
type sink[T any] interface {
	num(x float64) T
	call0(name string, f Niladic) T
	call1(name string, f Monadic, x T) T
	call2(name string, f Dyadic, x, y T) T
}

// parser holds the state of one parse. It is discarded at the end.
type parser[T any] struct {
	c   cursor
	s   sink[T]
	lim limits
	// open holds the byte offsets of the open parentheses enclosing the
	// current position, innermost last.
	open []int
	// n is the number of operations sent to the sink.
	n int
}

// parse parses a complete term, sending its operations to s.
func parse[T any](src string, s sink[T], lim limits) (T, error) {
	p := parser[T]{c: cursor{src: src}, s: s, lim: lim}
	r, err := p.sum()
	if err != nil {
		return r, err
	}
	if !p.c.done() {
		var zero T
		return zero, &TrailingError{Col: p.c.col(), Text: p.c.src[p.c.pos:]}
	}
	return r, nil
}

// count records one more operation and checks the length limit.
func (p *parser[T]) count() error {
	p.n++
	if p.lim.length > 0 && p.n > p.lim.length {
		return &TooLargeError{Col: p.c.col(), Limit: "length", Max: p.lim.length}
	}
	return nil
}

// enter consumes an open parenthesis and checks the depth limit.
func (p *parser[T]) enter() error {
	if p.lim.depth > 0 && len(p.open) >= p.lim.depth {
		return &TooLargeError{Col: p.c.col(), Limit: "depth", Max: p.lim.depth}
	}
	p.open = append(p.open, p.c.pos)
	p.c.advance()
	return nil
}

// unclosed returns a BracketError at the current position for the innermost
// open parenthesis.
func (p *parser[T]) unclosed() error {
	return &BracketError{Col: p.c.col(), Open: p.c.colAt(p.open[len(p.open)-1])}
}

// leave consumes the close parenthesis matching the innermost open one.
func (p *parser[T]) leave() error {
	if p.c.peek() != ')' {
		return p.unclosed()
	}
	p.c.advance()
	p.open = p.open[:len(p.open)-1]
	return nil
}

func (p *parser[T]) sum() (T, error) {
	a, err := p.product()
	if err != nil {
		return a, err
	}
	for {
		var (
			name string
			op   Dyadic
		)
		switch p.c.peek() {
		case '+':
			name, op = "+", opAdd
		case '-':
			name, op = "-", opSub
		default:
			return a, nil
		}
		p.c.advance()
		b, err := p.product()
		if err != nil {
			return b, err
		}
		if err := p.count(); err != nil {
			return a, err
		}
		a = p.s.call2(name, op, a, b)
	}
}

func (p *parser[T]) product() (T, error) {
	a, err := p.power()
	if err != nil {
		return a, err
	}
	for {
		var (
			name string
			op   Dyadic
		)
		switch p.c.peek() {
		case '*':
			name, op = "*", opMul
		case '/':
			name, op = "/", opDiv
		default:
			return a, nil
		}
		p.c.advance()
		b, err := p.power()
		if err != nil {
			return b, err
		}
		if err := p.count(); err != nil {
			return a, err
		}
		a = p.s.call2(name, op, a, b)
	}
}

func (p *parser[T]) power() (T, error) {
	a, err := p.unary()
	if err != nil {
		return a, err
	}
	for p.c.peek() == '^' {
		p.c.advance()
		b, err := p.unary()
		if err != nil {
			return b, err
		}
		if err := p.count(); err != nil {
			return a, err
		}
		a = p.s.call2("^", opPow, a, b)
	}
	return a, nil
}

func (p *parser[T]) unary() (T, error) {
	switch p.c.peek() {
	case '+':
		p.c.advance()
	case '-':
		p.c.advance()
		a, err := p.primary()
		if err != nil {
			return a, err
		}
		if err := p.count(); err != nil {
			return a, err
		}
		return p.s.call1("NEG", opNeg, a), nil
	}
	return p.primary()
}

func (p *parser[T]) primary() (T, error) {
	var zero T
	r := p.c.peek()
	switch {
	case r == '(':
		if err := p.enter(); err != nil {
			return zero, err
		}
		a, err := p.sum()
		if err != nil {
			return a, err
		}
		if err := p.leave(); err != nil {
			return zero, err
		}
		return a, nil
	case isDigit(r):
		if err := p.count(); err != nil {
			return zero, err
		}
		return p.s.num(p.c.num()), nil
	case isLetter(r):
		return p.call()
	case p.c.done():
		if len(p.open) > 0 {
			return zero, p.unclosed()
		}
		return zero, &CharError{Col: p.c.col()}
	default:
		return zero, &CharError{Col: p.c.col(), Char: p.c.char()}
	}
}

// call parses a name and, depending on the arity of the function it names,
// its parenthesized arguments.
func (p *parser[T]) call() (T, error) {
	var zero T
	off := p.c.pos
	name := p.c.ident()
	fn, ok := lookup(name)
	if !ok {
		return zero, &NameError{Col: p.c.colAt(off), Name: name}
	}
	switch fn := fn.(type) {
	case Niladic:
		if err := p.count(); err != nil {
			return zero, err
		}
		return p.s.call0(name, fn), nil
	case Monadic:
		if err := p.args(name, 1); err != nil {
			return zero, err
		}
		a, err := p.sum()
		if err != nil {
			return a, err
		}
		if p.c.peek() == ',' {
			return zero, &CallError{Col: p.c.col(), Func: name, Arity: 1, Len: 2}
		}
		if err := p.leave(); err != nil {
			return zero, err
		}
		if err := p.count(); err != nil {
			return zero, err
		}
		return p.s.call1(name, fn, a), nil
	case Dyadic:
		if err := p.args(name, 2); err != nil {
			return zero, err
		}
		a, err := p.sum()
		if err != nil {
			return a, err
		}
		switch {
		case p.c.peek() == ',':
			p.c.advance()
		case p.c.peek() == ')':
			return zero, &CallError{Col: p.c.col(), Func: name, Arity: 2, Len: 1}
		case p.c.done():
			return zero, p.unclosed()
		default:
			return zero, &SeparatorError{Col: p.c.col(), Func: name}
		}
		b, err := p.sum()
		if err != nil {
			return b, err
		}
		if p.c.peek() == ',' {
			return zero, &CallError{Col: p.c.col(), Func: name, Arity: 2, Len: 3}
		}
		if err := p.leave(); err != nil {
			return zero, err
		}
		if err := p.count(); err != nil {
			return zero, err
		}
		return p.s.call2(name, fn, a, b), nil
	default:
		panic("calcterm: unknown function type for " + name)
	}
}

// args opens the argument list of a call to a function of the given arity.
func (p *parser[T]) args(name string, arity int) error {
	if p.c.peek() != '(' {
		return &CallError{Col: p.c.col(), Func: name, Arity: arity, Len: 0}
	}
	return p.enter()
}
