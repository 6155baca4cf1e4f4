// SPDX-License-Identifier: EPL-2.0

package utils

// SafeDiv divides a by b. A zero denominator yields 0 instead of Inf or NaN,
// so a degenerate canvas or an empty track never produces unusable geometry.
func SafeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}

	return a / b
}

// SafeDivInt is SafeDiv for int operands, returning a float quotient.
func SafeDivInt(a, b int) float64 {
	if b == 0 {
		return 0
	}

	return float64(a) / float64(b)
}

// SafeDivInt64 is SafeDiv for int64 operands, returning a float quotient.
func SafeDivInt64(a, b int64) float64 {
	if b == 0 {
		return 0
	}

	return float64(a) / float64(b)
}
