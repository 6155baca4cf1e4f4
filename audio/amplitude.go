// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audwave/utils"
)

// DefaultAmplitudesPerSecond is the extraction resolution used by ReadAmplitudes
// callers that have no preference.
const DefaultAmplitudesPerSecond = 100

// maxEmptyReads is how many consecutive (0, nil) reads are tolerated before
// a source is considered stuck.
const maxEmptyReads = 100

// Amplitudes is the per-window loudness of a stream.
type Amplitudes struct {
	// Values are mean absolute sample values on the 16-bit scale.
	Values     []int
	DurationMs int64
	SampleRate int
	Frames     int64
}

// ReadAmplitudes drains src and reports one amplitude per 1/perSecond of a
// second. The final window may be shorter. src is not closed.
func ReadAmplitudes(src Source, perSecond int) (Amplitudes, error) {
	rate := src.SampleRate()
	if rate <= 0 {
		return Amplitudes{}, fmt.Errorf("%w: %d", ErrInvalidSampleRate, rate)
	}
	if perSecond <= 0 {
		return Amplitudes{}, fmt.Errorf("%w: %d", ErrInvalidWindowRate, perSecond)
	}

	window := max(rate/perSecond, 1)
	mono := NewMonoMixer(src)

	out := Amplitudes{SampleRate: rate}
	if total := mono.Frames(); total > 0 {
		out.Values = make([]int, 0, int(total)/window+1)
	}

	bufSize := src.BufSize()
	if bufSize <= 0 {
		bufSize = 4096
	}
	buf := make([]float32, bufSize)

	var sum, count, empty int
	flush := func() {
		if count == 0 {
			return
		}
		out.Values = append(out.Values, sum/count)
		sum, count = 0, 0
	}

	for {
		n, err := mono.ReadSamples(buf)
		for _, v := range buf[:n] {
			sum += utils.Magnitude16(v)
			count++
			if count == window {
				flush()
			}
		}
		out.Frames += int64(n)

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Amplitudes{}, fmt.Errorf("read amplitudes: %w", err)
		}
		if n > 0 {
			empty = 0
			continue
		}

		empty++
		if empty >= maxEmptyReads {
			return Amplitudes{}, fmt.Errorf("read amplitudes: %w", io.ErrNoProgress)
		}
	}
	flush()

	out.DurationMs = out.Frames * 1000 / int64(rate)

	return out, nil
}
