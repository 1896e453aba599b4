package vmath

// Clamp restricts v to the closed range [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampInt restricts v to the closed range [lo, hi]
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates linearly between a and b by t in [0,1]
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
