// Package euclid provides integer greatest-common-divisor arithmetic with an
// explicit contract for zero and negative arguments.
package euclid

// GCD returns the greatest common divisor of a and b.
// Negative arguments are reduced by their absolute value, so the result is never negative.
// GCD(0, n) = |n|, and GCD(0, 0) = 0.
func GCD(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LCM returns the least common multiple of a and b.
// LCM with a zero argument is 0. The result is never negative.
func LCM(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	l := a / GCD(a, b) * b
	if l < 0 {
		l = -l
	}
	return l
}
