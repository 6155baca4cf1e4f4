// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"

	"github.com/ik5/audwave/audio"
	"github.com/ik5/audwave/formats/internal/intpcm"
)

const pcmFormat = 1

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		if err := dec.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
		}
		return nil, ErrNotWavFile
	}
	if dec.WavAudioFormat != pcmFormat {
		return nil, fmt.Errorf("%w: format tag %d", ErrNotPCM, dec.WavAudioFormat)
	}

	if err := dec.FwdToPCM(); err != nil || dec.PCMChunk == nil {
		return nil, ErrNoPCMData
	}

	bitDepth := int(dec.BitDepth)
	channels := int(dec.NumChans)
	frames := int64(-1)
	if frameBytes := int64(bitDepth / 8 * channels); frameBytes > 0 {
		frames = dec.PCMLen() / frameBytes
	}

	src, err := intpcm.New(dec, dec.Format(), bitDepth, intpcm.Unsigned(), intpcm.Frames(frames))
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}

	return src, nil
}
