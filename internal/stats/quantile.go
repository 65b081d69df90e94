package stats

import "math"

// Quantile computes the q-th quantile of an ascending-sorted slice using
// linear interpolation: pos = (n-1)*q, interpolating between floor(pos) and
// the next element by the fractional part. This matches the "linear"
// interpolation convention, not the nearest-rank one.
//
// The second return value is false when the slice is empty.
func Quantile(sorted []float64, q float64) (float64, bool) {
	n := len(sorted)
	if n == 0 {
		return 0, false
	}

	pos := float64(n-1) * q
	base := int(math.Floor(pos))
	rest := pos - float64(base)

	if base+1 < n {
		return sorted[base] + rest*(sorted[base+1]-sorted[base]), true
	}
	return sorted[base], true
}
