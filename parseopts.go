package calcterm

// Option is an option for Build and EvalVars.
type Option interface {
	option(limits) limits
}

// limits holds the size limits for parsing. A limit of zero or less is no
// limit.
type limits struct {
	// depth is the maximum nesting of parentheses and argument lists.
	depth int
	// length is the maximum number of operations in a term, which is the
	// number of instructions in its program.
	length int
}

const (
	// DefaultMaxDepth is the nesting limit used when no MaxDepth option is
	// given.
	DefaultMaxDepth = 1000
	// DefaultMaxLen is the length limit used when no MaxLen option is given.
	DefaultMaxLen = 1 << 20
)

type (
	depthopt int
	lenopt   int
)

// MaxDepth limits how deeply parentheses and function arguments may nest.
// Terms which nest deeper fail with a *TooLargeError. n <= 0 removes the
// limit, in which case very deep terms may exhaust the goroutine stack.
func MaxDepth(n int) Option {
	return depthopt(n)
}

func (o depthopt) option(l limits) limits {
	l.depth = int(o)
	return l
}

// MaxLen limits the number of operations in a term, counting each literal,
// name, operator, and function call once. Terms which are longer fail with
// a *TooLargeError. n <= 0 removes the limit.
func MaxLen(n int) Option {
	return lenopt(n)
}

func (o lenopt) option(l limits) limits {
	l.length = int(o)
	return l
}

// options applies opts in order over the defaults.
func options(opts []Option) limits {
	l := limits{depth: DefaultMaxDepth, length: DefaultMaxLen}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		l = opt.option(l)
	}
	return l
}
