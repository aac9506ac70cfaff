// Package calcterm evaluates floating-point terms such as "SIN(X)^2 + 1/Y".
//
// Terms use the four arithmetic operators, "^" for exponentiation,
// parentheses, decimal literals, and the names listed by Names. Names are
// case-insensitive. X, Y, and Z read the three variable slots.
//
// Exponentiation is left-associative and binds tighter than the unary
// signs only on its right: "2^3^2" is "(2^3)^2" and "-2^2" is "(-2)^2".
//
// Eval parses and evaluates a term in one pass. Build compiles a term once
// into a Program, which can then be Run any number of times with different
// variable values, including concurrently from several goroutines. Both
// give identical results for identical inputs.
package calcterm
