// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes RIFF/WAVE files through go-audio/wav.
//
// The decoder accepts integer PCM at 8, 16, 24 or 32 bits and any channel
// count. Inputs that are not seekable are buffered in memory first.
//
//	src, err := wav.Decoder{}.Decode(f)
//
// Encode writes 16-bit PCM to a seekable writer such as an *os.File.
// WriteWAV16 produces the same layout on any io.Writer.
package wav
