// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile       = errors.New("not a WAV file")
	ErrNotPCM           = errors.New("only integer PCM WAV is supported")
	ErrNoPCMData        = errors.New("WAV file has no data chunk")
	ErrInvalidChannels  = errors.New("channel count must be positive")
	ErrInvalidFrameSize = errors.New("sample count is not a whole number of frames")
)
