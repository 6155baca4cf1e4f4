// SPDX-License-Identifier: EPL-2.0

// Package player plays an audio.Source through a beep output and reports the
// playback position while it runs.
//
// A Player moves between four states:
//
//	Idle --Play--> Playing --Pause--> Paused --Play--> Playing
//	Playing --end of stream--> Ended --Play--> Playing (from the start)
//
// Stop returns to Idle from any state. The position is polled every
// PollInterval while playing and drops back to 0 on Ended and Idle.
package player
