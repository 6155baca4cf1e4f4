// SPDX-License-Identifier: EPL-2.0

package audwave_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/audwave"
	"github.com/ik5/audwave/formats/wav"
	"github.com/ik5/audwave/timeline"
	"github.com/ik5/audwave/waveform"
)

func Example() {
	dir, err := os.MkdirTemp("", "audwave")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "beep.wav")
	f, err := os.Create(path)
	if err != nil {
		fmt.Println(err)
		return
	}
	// Half a second at full scale, then half a second of silence.
	samples := make([]int16, 8000)
	for i := range 4000 {
		samples[i] = 32767
	}
	if err := wav.WriteWAV16(f, 8000, samples); err != nil {
		fmt.Println(err)
		return
	}
	f.Close()

	track := audwave.Load(path)
	heights := waveform.Reduce(track.Levels(40), 4, waveform.MAX, 1, 40)
	m := timeline.NewMapper(400, track.DurationMs)

	fmt.Println(track.DurationMs, heights, m.ToPx(250))
	// Output: 1000 [40 40 1 1] 100
}

func ExampleLoad_missing() {
	track := audwave.Load("does-not-exist.ogg")
	fmt.Println(len(track.Amplitudes), track.DurationMs)
	// Output: 0 0
}
