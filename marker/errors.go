// SPDX-License-Identifier: EPL-2.0

package marker

import "errors"

var (
	ErrIndexOutOfRange   = errors.New("marker index out of range")
	ErrInvalidWindowSize = errors.New("window size must be within [0, 1]")
)
