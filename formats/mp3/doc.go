// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III through hajimehoshi/go-mp3.
//
// go-mp3 always produces interleaved 16-bit stereo, so every source from
// this package reports two channels regardless of the file's own layout.
package mp3
