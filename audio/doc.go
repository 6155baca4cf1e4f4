// SPDX-License-Identifier: EPL-2.0

// Package audio holds the streaming primitives shared by the decoders, the
// player and the waveform loader.
//
// # Sources
//
// Every decoder yields a Source of interleaved float32 samples in [-1, 1].
// Reads return io.EOF at the end of the stream, possibly together with the
// last samples. Sources that know their length also implement Lengther.
//
// # Registry
//
// A Registry maps format names and file extensions to decoders:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{}, ".wav", ".wave")
//	reg.Register("mp3", mp3.Decoder{}, ".mp3")
//
//	format, dec, err := reg.Lookup("take.wav")
//	if err != nil {
//		return err // ErrUnsupportedFormat for unknown extensions
//	}
//	src, err := dec.Decode(file)
//
// # Pipelines
//
// Sources chain. A Resampler changes the rate with cubic interpolation and
// a MonoMixer averages the channels:
//
//	mono := audio.NewMonoMixer(audio.NewResampler(src, 16000))
//
//	buf := make([]float32, 4096)
//	n, err := mono.ReadSamples(buf)
//
// # Amplitudes
//
// ReadAmplitudes drains a source into per-window loudness values on the
// 16-bit scale, the input of waveform.Reduce and waveform.Layout:
//
//	amps, err := audio.ReadAmplitudes(src, audio.DefaultAmplitudesPerSecond)
//	if err != nil {
//		return err
//	}
//
//	fmt.Println(amps.DurationMs, len(amps.Values))
//
//	bars := waveform.Layout(amps.Values, waveform.DefaultStyle(), 360, 48)
//
// Values above the drawing height are clamped by the reducer, so callers
// usually rescale them first (see audwave.Track.Levels).
package audio
