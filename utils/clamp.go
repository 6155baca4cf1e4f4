// SPDX-License-Identifier: EPL-2.0

package utils

import "cmp"

// Clamp coerces v into [lo, hi]. When lo > hi the lower bound wins.
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}

	return v
}
