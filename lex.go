package calcterm

import (
	"math"
	"unicode/utf8"
)

// cursor scans a term one byte at a time. Whitespace is invisible to it:
// peek skips any run of whitespace before reporting the current byte, even
// in the middle of a number or name.
type cursor struct {
	src string
	pos int
}

// isSpace matches the whitespace that cursors skip.
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

// peek returns the current non-whitespace byte without consuming it. At the
// end of the input, the result is 0.
func (c *cursor) peek() byte {
	for c.pos < len(c.src) && isSpace(c.src[c.pos]) {
		c.pos++
	}
	if c.pos >= len(c.src) {
		return 0
	}
	return c.src[c.pos]
}

// advance consumes one byte.
func (c *cursor) advance() {
	c.pos++
}

// done reports whether only whitespace remains.
func (c *cursor) done() bool {
	c.peek()
	return c.pos >= len(c.src)
}

// col returns the rune column of the current position, counting from 1.
// It is linear in the position, so only errors should call it.
func (c *cursor) col() int {
	return c.colAt(c.pos)
}

// colAt returns the rune column of a byte offset into the source.
func (c *cursor) colAt(off int) int {
	return utf8.RuneCountInString(c.src[:off]) + 1
}

// char returns the full character at the current position for messages.
func (c *cursor) char() string {
	c.peek()
	if c.pos >= len(c.src) {
		return ""
	}
	_, sz := utf8.DecodeRuneInString(c.src[c.pos:])
	return c.src[c.pos : c.pos+sz]
}

// ident scans a name: a letter followed by letters and digits. The result
// is upper case. The current byte must be a letter.
func (c *cursor) ident() string {
	var b []byte
	for r := c.peek(); isLetter(r) || isDigit(r); r = c.peek() {
		if 'a' <= r && r <= 'z' {
			r -= 'a' - 'A'
		}
		b = append(b, r)
		c.advance()
	}
	return string(b)
}

// num scans a decimal literal with an optional exponent. The current byte
// must be a digit.
//
// The exponent is read the same way as the mantissa, so it may have a
// fraction, and an exponent marker with no digits after it is an exponent
// of zero.
func (c *cursor) num() float64 {
	a := c.decimal()
	if r := c.peek(); r == 'e' || r == 'E' {
		c.advance()
		sign := 1.0
		switch c.peek() {
		case '-':
			c.advance()
			sign = -1
		case '+':
			c.advance()
		}
		b := c.decimal()
		a *= math.Pow(10, b*sign)
	}
	return a
}

// decimal scans digits with an optional fraction. Digits accumulate one at a
// time in floating point rather than through a correctly rounded
// conversion, so long literals round the way repeated multiply-and-add
// does.
func (c *cursor) decimal() float64 {
	var a float64
	for r := c.peek(); isDigit(r); r = c.peek() {
		a = float64(a*10) + float64(r-'0')
		c.advance()
	}
	if c.peek() == '.' {
		c.advance()
		var b float64
		i := 10.0
		for r := c.peek(); isDigit(r); r = c.peek() {
			b += float64(r-'0') / i
			i *= 10
			c.advance()
		}
		a += b
	}
	return a
}
