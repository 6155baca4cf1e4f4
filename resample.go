// SPDX-License-Identifier: EPL-2.0

package audwave

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audwave/audio"
	"github.com/ik5/audwave/utils"
)

var ErrInvalidRate = errors.New("target sample rate must be positive")

// ResampleToMono16 drains src through a mono mix and a resampler and returns
// the result as 16-bit PCM at targetRate. bufferSize sets the read chunk.
func ResampleToMono16(src audio.Source, targetRate, bufferSize int) ([]int16, int, error) {
	if targetRate <= 0 {
		return nil, 0, fmt.Errorf("%w: %d", ErrInvalidRate, targetRate)
	}
	if bufferSize <= 0 {
		bufferSize = 4096
	}

	pipeline := audio.NewResampler(audio.NewMonoMixer(src), targetRate)

	var pcm []int16
	if frames := pipeline.Frames(); frames > 0 {
		pcm = make([]int16, 0, frames)
	}
	buf := make([]float32, bufferSize)

	for {
		n, err := pipeline.ReadSamples(buf)
		for _, v := range buf[:n] {
			pcm = append(pcm, utils.Float32ToInt16(v))
		}

		if errors.Is(err, io.EOF) {
			return pcm, targetRate, nil
		}
		if err != nil {
			return nil, targetRate, fmt.Errorf("resample: %w", err)
		}
	}
}
