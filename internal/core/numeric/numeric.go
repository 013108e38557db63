// Package numeric interprets tokens as numeric values for tolerant comparison.
package numeric

import "strconv"

// Parse attempts to interpret a token as a decimal floating-point value.
// The second return value reports whether the token parsed at all; tokens
// that do not parse carry no value and are never numerically comparable.
func Parse(token string) (float64, bool) {
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Equal reports whether two tokens both parse numerically and denote the same
// value. "3.0" and "3.00" are equal; two unparsable tokens never are.
func Equal(a, b string) bool {
	av, aok := Parse(a)
	if !aok {
		return false
	}
	bv, bok := Parse(b)
	if !bok {
		return false
	}
	return av == bv
}
