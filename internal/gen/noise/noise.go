// Package noise is seeded 2D gradient noise and its fractal sums. Nothing is
// precomputed: every lattice corner is hashed on demand.
package noise

import (
	"math"

	"terracity.io/internal/gen/mathx"
)

// octaveStride decorrelates octaves of one fbm.
const octaveStride = 1013

// Noise is gradient noise on the unit lattice, in [-1, 1].
func Noise(seed int64, x, z float64) float64 {
	x0 := int(math.Floor(x))
	z0 := int(math.Floor(z))

	xf := x - float64(x0)
	zf := z - float64(z0)

	u := fade(xf)
	v := fade(zf)

	n00 := grad(mathx.Hash2(seed, x0, z0), xf, zf)
	n10 := grad(mathx.Hash2(seed, x0+1, z0), xf-1, zf)
	n01 := grad(mathx.Hash2(seed, x0, z0+1), xf, zf-1)
	n11 := grad(mathx.Hash2(seed, x0+1, z0+1), xf-1, zf-1)

	nx0 := lerp(n00, n10, u)
	nx1 := lerp(n01, n11, u)
	return math.Max(-1, math.Min(1, lerp(nx0, nx1, v)))
}

// FBM sums octaves of Noise and normalizes by the total amplitude.
func FBM(seed int64, x, z float64, octaves int, lacunarity, gain float64) float64 {
	amp := 1.0
	freq := 1.0
	sum := 0.0
	norm := 0.0
	for i := 0; i < octaves; i++ {
		sum += Noise(seed+int64(i)*octaveStride, x*freq, z*freq) * amp
		norm += amp
		amp *= gain
		freq *= lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

// Ridged is 1-|fbm|: sharp maxima along the zero set of the field.
func Ridged(seed int64, x, z float64, octaves int, lacunarity, gain float64) float64 {
	return 1 - math.Abs(FBM(seed, x, z, octaves, lacunarity, gain))
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func grad(h uint64, x, z float64) float64 {
	switch h & 7 {
	case 0:
		return x + z
	case 1:
		return x - z
	case 2:
		return -x + z
	case 3:
		return -x - z
	case 4:
		return x
	case 5:
		return -x
	case 6:
		return z
	default:
		return -z
	}
}
