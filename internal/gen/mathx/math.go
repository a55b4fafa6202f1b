package mathx

import "math"

// FloorDiv is integer division rounded toward negative infinity.
func FloorDiv(a, b int) int {
	// b > 0
	q := a / b
	r := a % b
	if r < 0 {
		q--
	}
	return q
}

// Mod is the floored modulo; the result is always in [0, b).
func Mod(a, b int) int {
	// b > 0
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func AbsInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Smoothstep is the cubic Hermite ramp on an already clamped t.
func Smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

// LerpInt interpolates from a to b and rounds half toward positive infinity.
func LerpInt(a, b int, t float64) int {
	return Round(float64(a) + float64(b-a)*t)
}

// Round rounds half toward positive infinity, so -2.5 becomes -2.
func Round(v float64) int {
	return int(math.Floor(v + 0.5))
}

// Dist is the euclidean distance between two columns.
func Dist(x0, z0, x1, z1 int) float64 {
	dx := float64(x1 - x0)
	dz := float64(z1 - z0)
	return math.Sqrt(dx*dx + dz*dz)
}
