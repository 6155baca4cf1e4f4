// SPDX-License-Identifier: EPL-2.0

package waveform

import "errors"

var (
	ErrUnknownAmplitudeType = errors.New("unknown amplitude type")
	ErrUnknownAlignment     = errors.New("unknown waveform alignment")
)
