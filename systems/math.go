package systems

import "math"

// modInt returns a mod m in [0, m). Go's % can return negative.
func modInt(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// wrapFloat returns v mod m in [0, m).
func wrapFloat(v, m float64) float64 {
	r := math.Mod(v, m)
	if r < 0 {
		r += m
	}
	// -tiny + m rounds up to m
	if r >= m {
		r = 0
	}
	return r
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
