package noise

import (
	"math"
	"math/rand"
	"testing"
)

func TestNoiseDeterministicForRandomLocations(t *testing.T) {
	src := rand.New(rand.NewSource(1337))
	for i := 0; i < 2000; i++ {
		x := src.Float64()*2_000_000 - 1_000_000
		z := src.Float64()*2_000_000 - 1_000_000
		a := Noise(424242, x, z)
		b := Noise(424242, x, z)
		if a != b {
			t.Fatalf("location %d (%f,%f): %v vs %v", i, x, z, a, b)
		}
		if a < -1 || a > 1 {
			t.Fatalf("location %d: noise %v out of [-1,1]", i, a)
		}
	}
}

func TestNoiseZeroOnLatticePoints(t *testing.T) {
	for x := -5; x <= 5; x++ {
		for z := -5; z <= 5; z++ {
			if v := Noise(7, float64(x), float64(z)); v != 0 {
				t.Fatalf("gradient noise at lattice (%d,%d) = %v, want 0", x, z, v)
			}
		}
	}
}

func TestNoiseContinuousAcrossCellEdges(t *testing.T) {
	const eps = 1e-9
	for _, x := range []float64{-3, -1, 0, 1, 2} {
		left := Noise(11, x-eps, 0.37)
		right := Noise(11, x+eps, 0.37)
		if math.Abs(left-right) > 1e-6 {
			t.Fatalf("discontinuity at x=%v: %v vs %v", x, left, right)
		}
	}
}

func TestFBMNormalizedAndSeedSensitive(t *testing.T) {
	var diff int
	for i := 0; i < 200; i++ {
		x := float64(i)*0.731 - 50
		z := float64(i)*0.419 + 13
		v := FBM(5, x, z, 6, 2, 0.5)
		if v < -1 || v > 1 {
			t.Fatalf("fbm out of range: %v", v)
		}
		if v != FBM(6, x, z, 6, 2, 0.5) {
			diff++
		}
	}
	if diff < 150 {
		t.Fatalf("fbm barely depends on seed: only %d of 200 samples differ", diff)
	}
	if FBM(5, 1.5, 2.5, 0, 2, 0.5) != 0 {
		t.Fatalf("zero octaves should yield 0")
	}
}

func TestFBMSingleOctaveEqualsNoise(t *testing.T) {
	if FBM(9, 3.3, -4.1, 1, 2, 0.5) != Noise(9, 3.3, -4.1) {
		t.Fatalf("one-octave fbm should equal the base noise")
	}
}

func TestRidgedRange(t *testing.T) {
	for i := 0; i < 500; i++ {
		v := Ridged(3, float64(i)*0.173, float64(-i)*0.291, 3, 2, 0.5)
		if v < 0 || v > 1 {
			t.Fatalf("ridged out of [0,1]: %v", v)
		}
	}
}
