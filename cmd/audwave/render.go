// SPDX-License-Identifier: EPL-2.0

package main

import (
	"math"
	"strings"

	"github.com/ik5/audwave/segment"
	"github.com/ik5/audwave/timeline"
	"github.com/ik5/audwave/utils"
	"github.com/ik5/audwave/waveform"
)

const (
	cellBar    = '█'
	cellEmpty  = ' '
	cellTrack  = '·'
	cellSeg    = '='
	cellActive = '#'
	cellMarker = '|'
)

var sparks = []rune("▁▂▃▄▅▆▇█")

// renderBars draws one spike per column on a cols x rows grid. levels must
// already be scaled onto [0, rows].
func renderBars(levels []int, style waveform.Style, cols, rows int) []string {
	if cols <= 0 || rows <= 0 {
		return nil
	}

	style.SpikeWidth = 1
	style.SpikePadding = 0
	bars := waveform.Layout(levels, style, float64(cols), float64(rows))

	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(string(cellEmpty), cols))
	}

	for i, b := range bars {
		if i >= cols {
			break
		}

		top := utils.Clamp(int(math.Round(b.Y)), 0, rows-1)
		bottom := utils.Clamp(int(math.Round(b.Y+b.Height)), top+1, rows)

		for r := top; r < bottom; r++ {
			grid[r][i] = cellBar
		}
	}

	lines := make([]string, rows)
	for r, row := range grid {
		lines[r] = string(row)
	}

	return lines
}

// renderTimeline draws segments across cols columns. The active segment is
// filled differently; cursor, when >= 0, is a position in ms.
func renderTimeline(segs []segment.Segment, active int, m timeline.Mapper, cols int, cursor int64) string {
	if cols <= 0 {
		return ""
	}

	line := []rune(strings.Repeat(string(cellTrack), cols))
	col := func(ms int64) int {
		return utils.Clamp(int(m.ToPx(ms)), 0, cols-1)
	}

	for i, s := range segs {
		fill := cellSeg
		if i == active {
			fill = cellActive
		}

		lo, hi := col(s.Start), col(s.End)
		for c := lo; c <= hi; c++ {
			line[c] = fill
		}
		line[lo] = '['
		line[hi] = ']'
	}

	if cursor >= 0 {
		line[col(cursor)] = cellMarker
	}

	return string(line)
}

// renderMarkers puts a tick at every position in [0,1] across cols columns.
func renderMarkers(positions []float64, cols int) string {
	if cols <= 0 {
		return ""
	}

	line := []rune(strings.Repeat(string(cellTrack), cols))
	for _, p := range positions {
		c := utils.Clamp(int(p*float64(cols)), 0, cols-1)
		line[c] = cellMarker
	}

	return string(line)
}

// renderWindow marks the zoomed window on the overview row.
func renderWindow(line string, offset, size float64) string {
	runes := []rune(line)
	cols := len(runes)
	if cols == 0 {
		return line
	}

	lo := utils.Clamp(int(offset*float64(cols)), 0, cols-1)
	hi := utils.Clamp(int((offset+size)*float64(cols)), lo, cols-1)

	if runes[lo] != cellMarker {
		runes[lo] = '['
	}
	if runes[hi] != cellMarker {
		runes[hi] = ']'
	}

	return string(runes)
}

// sparkline maps values onto eight block heights with top as the ceiling.
func sparkline(values []float64, top float64) string {
	var sb strings.Builder

	last := float64(len(sparks) - 1)
	for _, v := range values {
		level := int(math.Round(utils.Clamp(utils.SafeDiv(v, top), 0, 1) * last))
		sb.WriteRune(sparks[level])
	}

	return sb.String()
}
