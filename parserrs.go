package calcterm

import "strconv"

// CharError is an error indicating a character that cannot begin a term
// where the parser expected one. It implements InputError.
type CharError struct {
	// Col is the position of the character.
	Col int
	// Char is the offending character, or the empty string if the input
	// ended where a term was expected.
	Char string
}

func (err *CharError) Error() string {
	if err.Char == "" {
		return errpos(err.Col, "unexpected end of input")
	}
	return errpos(err.Col, "unexpected character "+strconv.Quote(err.Char))
}

func (err *CharError) Pos() int {
	return err.Col
}

// NameError is an error indicating a name that is not a known function,
// constant, or variable. It implements InputError.
type NameError struct {
	// Col is the position of the start of the name, or 0 if the name did not
	// come from a term.
	Col int
	// Name is the name as it was looked up.
	Name string
}

func (err *NameError) Error() string {
	msg := "unknown identifier " + strconv.Quote(err.Name)
	if err.Col <= 0 {
		return msg
	}
	return errpos(err.Col, msg)
}

func (err *NameError) Pos() int {
	return err.Col
}

// CallError is an error indicating a function call with the wrong number of
// arguments, including a call with no argument list at all. It implements
// InputError.
type CallError struct {
	// Col is the position where the argument list went wrong.
	Col int
	// Func is the function name that was called.
	Func string
	// Arity is the number of arguments the function takes.
	Arity int
	// Len is the number of arguments the call tried to pass.
	Len int
}

func (err *CallError) Error() string {
	return errpos(err.Col, "cannot call "+err.Func+" with "+strconv.Itoa(err.Len)+" arguments (takes "+strconv.Itoa(err.Arity)+")")
}

func (err *CallError) Pos() int {
	return err.Col
}

// BracketError is an error indicating an open parenthesis with no matching
// close parenthesis. It implements InputError.
type BracketError struct {
	// Col is the position where the close parenthesis was expected.
	Col int
	// Open is the position of the unmatched open parenthesis.
	Open int
}

func (err *BracketError) Error() string {
	return errpos(err.Col, "missing ) for ( at "+strconv.Itoa(err.Open))
}

func (err *BracketError) Pos() int {
	return err.Col
}

// SeparatorError is an error indicating a missing comma between the two
// arguments of a dyadic function. It implements InputError.
type SeparatorError struct {
	// Col is the position where the comma was expected.
	Col int
	// Func is the function name that was called.
	Func string
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, "expected , between arguments to "+err.Func)
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

// TrailingError is an error indicating input left over after a complete
// term. It implements InputError.
type TrailingError struct {
	// Col is the position of the first unparsed character.
	Col int
	// Text is the unparsed input.
	Text string
}

func (err *TrailingError) Error() string {
	return errpos(err.Col, "unexpected "+strconv.Quote(err.Text)+" after term")
}

func (err *TrailingError) Pos() int {
	return err.Col
}

// TooLargeError is an error indicating a term that exceeds a limit set with
// MaxDepth or MaxLen. It implements InputError.
type TooLargeError struct {
	// Col is the position at which the limit was exceeded.
	Col int
	// Limit names the limit, either "depth" or "length".
	Limit string
	// Max is the value of the limit.
	Max int
}

func (err *TooLargeError) Error() string {
	return errpos(err.Col, "term exceeds maximum "+err.Limit+" of "+strconv.Itoa(err.Max))
}

func (err *TooLargeError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the character that caused the error.
	Pos() int
}

var (
	_ InputError = (*CharError)(nil)
	_ InputError = (*NameError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*TrailingError)(nil)
	_ InputError = (*TooLargeError)(nil)
)

// StackError is an error indicating that an instruction of a program found
// fewer operands on the stack than it consumes. Programs from Build never
// produce it.
type StackError struct {
	// Index is the position of the instruction in the program.
	Index int
	// Op is the instruction's name.
	Op string
	// Need is the number of operands the instruction consumes.
	Need int
	// Have is the number of values that were on the stack.
	Have int
}

func (err *StackError) Error() string {
	return "stack underflow at instruction " + strconv.Itoa(err.Index) + " (" + err.Op + "): need " + strconv.Itoa(err.Need) + " operands, have " + strconv.Itoa(err.Have)
}

// ProgramError is an error indicating that a program did not leave exactly
// one value on the stack. Programs from Build never produce it.
type ProgramError struct {
	// Len is the number of values left on the stack.
	Len int
}

func (err *ProgramError) Error() string {
	return "malformed program: " + strconv.Itoa(err.Len) + " values on stack at end"
}

// VarsError is an error indicating a call to Eval or Run with more values
// than there are variable slots.
type VarsError struct {
	// Len is the number of values given.
	Len int
}

func (err *VarsError) Error() string {
	return "too many variables: " + strconv.Itoa(err.Len) + " values for X, Y, Z"
}
