// SPDX-License-Identifier: EPL-2.0

package segment

import "errors"

var (
	ErrIndexOutOfRange = errors.New("segment index out of range")
	ErrNoActiveSegment = errors.New("no active segment")
)
