// SPDX-License-Identifier: EPL-2.0

// Package audwave turns audio files into the data behind a waveform editor:
// per-window amplitudes, the track duration and WAV exports of edited
// segments.
//
// # Supported Formats
//
// Formats are picked by file extension from an audio.Registry.
// DefaultRegistry knows:
//   - WAV (.wav, .wave) via formats/wav
//   - AIFF (.aiff, .aif) via formats/aiff
//   - MP3 (.mp3) via formats/mp3
//   - Ogg Vorbis (.ogg, .oga) via formats/vorbis
//
// A custom registry is passed with WithRegistry.
//
// # Quick Start
//
// Decode a file, scale its amplitudes to the drawing height and lay the
// spikes out on a canvas:
//
//	track, err := audwave.Decode("take.wav")
//	if err != nil {
//		return err
//	}
//
//	// 16-bit amplitudes rescaled onto [0, 48]
//	levels := track.Levels(48)
//
//	// one bar per spike that fits a 360x48 canvas
//	bars := waveform.Layout(levels, waveform.DefaultStyle(), 360, 48)
//
// When only the heights are needed, Reduce is the step Layout runs
// internally:
//
//	heights := waveform.Reduce(levels, 72, waveform.AVG, 1, 48)
//
// # Decode and Load
//
// Decode fails loudly. Load logs the failure through the configured zap
// logger and returns an empty track, so a caller can still render a flat
// waveform:
//
//	track := audwave.Load("broken.mp3", audwave.WithLogger(logger))
//	if track.Empty() {
//		// draw placeholder bars
//	}
//
// The extraction resolution defaults to audio.DefaultAmplitudesPerSecond
// and is changed with WithAmplitudesPerSecond.
//
// # Mapping Time
//
// A timeline.Mapper converts between canvas pixels and track milliseconds:
//
//	m := timeline.NewMapper(360, track.DurationMs)
//	ms := m.ToMs(120)
//	x := m.ToPx(track.DurationMs / 2)
//
// # Exporting Segments
//
// Edited segments are cut from the source file, mixed to mono, resampled
// and written as 16-bit WAV files, one per segment:
//
//	segs := []segment.Segment{{Start: 0, End: 1500}, {Start: 4000, End: 6000}}
//	files, err := audwave.ExportSegments(ctx, "take.wav", segs, "out", 16000)
//
// Files are named <base>_<NN>_<start>-<end>.wav.
//
// # Resampling
//
// ResampleToMono16 runs the same pipeline on any audio.Source:
//
//	src, _, _ := audwave.Open("take.ogg")
//	defer src.Close()
//	samples, rate, err := audwave.ResampleToMono16(src, 8000, 4096)
//
// See the player, segment and marker packages for playback and editing.
package audwave
