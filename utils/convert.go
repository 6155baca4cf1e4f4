// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 converts a [-1,1] sample to 16-bit PCM, clamping overs.
func Float32ToInt16(x float32) int16 {
	return int16(Clamp(x, -1, 1) * 32767.0)
}

// Magnitude16 returns |x| on the 16-bit amplitude scale [0, 32767].
func Magnitude16(x float32) int {
	if x < 0 {
		x = -x
	}

	return int(Clamp(x, 0, 1) * 32767.0)
}

// CubicInterpolate evaluates a Catmull-Rom spline through y0..y3 at x in
// [0,1] between y1 and y2.
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	b := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	c := -0.5*y0 + 0.5*y2

	return ((a*x+b)*x+c)*x + y1
}
