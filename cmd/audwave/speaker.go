// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

const speakerLatency = 100 * time.Millisecond

// speakerOutput sends player streams to the default audio device.
type speakerOutput struct {
	rate beep.SampleRate
}

func newSpeaker(rate int) (*speakerOutput, error) {
	sr := beep.SampleRate(rate)
	if err := speaker.Init(sr, sr.N(speakerLatency)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}

	return &speakerOutput{rate: sr}, nil
}

func (s *speakerOutput) SampleRate() beep.SampleRate { return s.rate }
func (s *speakerOutput) Play(st ...beep.Streamer)    { speaker.Play(st...) }
func (s *speakerOutput) Clear()                      { speaker.Clear() }
func (s *speakerOutput) Lock()                       { speaker.Lock() }
func (s *speakerOutput) Unlock()                     { speaker.Unlock() }
