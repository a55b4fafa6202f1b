package terrain

import (
	"math"

	"terracity.io/internal/gen/mathx"
	"terracity.io/internal/gen/noise"
)

const (
	ridgeSeedOffset     = 7777
	continentSeedOffset = 99991
	warpXSeedOffset     = 31001
	warpZSeedOffset     = 31002
	riverSeedOffset     = 424242
	warpMagnitude       = 220.0

	temperatureSaltMul = 101
	humiditySaltMul    = 131

	steepnessProbe = 6
	steepnessNorm  = 60.0
)

// Height is the natural column height, before any settlement blending.
// The stages run in a fixed order; each consumes the previous result.
func (p Params) Height(seed int64, x, z int) int {
	s := seed + p.SeedSalt
	fx, fz := float64(x), float64(z)

	n := noise.FBM(s, fx*p.Scale, fz*p.Scale, 4, 2, 0.5)
	ridged := noise.Ridged(s+ridgeSeedOffset, fx*p.Scale*0.75, fz*p.Scale*0.75, 3, 2, 0.5)
	ridged *= ridged
	signal := (1-p.RidgeWeight)*n + p.RidgeWeight*(ridged*2-1)

	cont := p.continent01(s, x, z)
	signal = signal*0.80 + (cont*2-1)*0.20

	h := p.BaseHeight + mathx.Round(signal*float64(p.Amplitude))

	if cont < p.OceanThreshold {
		t := (p.OceanThreshold - cont) / math.Max(1e-6, p.OceanThreshold)
		h -= mathx.Round(t * t * float64(p.OceanDepth))
	}

	if river := p.riverMask01(s, x, z); river > 0 && h > p.SeaLevel-2 {
		h -= mathx.Round(river * float64(p.RiverDepth))
	}

	if v, ok := p.VolcanoAt(seed, x, z); ok {
		if t := v.FactorAt(x, z); t > 0 {
			h += mathx.Round(t * t * float64(p.Volcano.Height))
			if c := v.CraterFactorAt(x, z); c > 0 {
				h -= mathx.Round(c * float64(p.Volcano.CraterRadius) * 1.35)
			}
		}
	}

	if floor := p.SeaLevel - 12; h < floor {
		// fold the excess depth by half
		h = floor + (h-floor)/2
	}
	return h
}

// Continent01 is the macro land/ocean field in [0, 1].
func (p Params) Continent01(seed int64, x, z int) float64 {
	return p.continent01(seed+p.SeedSalt, x, z)
}

func (p Params) continent01(s int64, x, z int) float64 {
	c := noise.FBM(s+continentSeedOffset, float64(x)*p.OceanScale, float64(z)*p.OceanScale, 3, 2, 0.5)
	return mathx.Clamp01((c + 1) * 0.5)
}

// RiverMask is 1 on a river centerline and 0 away from it.
func (p Params) RiverMask(seed int64, x, z int) float64 {
	return p.riverMask01(seed+p.SeedSalt, x, z)
}

func (p Params) riverMask01(s int64, x, z int) float64 {
	fx, fz := float64(x), float64(z)
	wx := noise.FBM(s+warpXSeedOffset, fx*p.RiverWarpScale, fz*p.RiverWarpScale, 2, 2, 0.5)
	wz := noise.FBM(s+warpZSeedOffset, (fx+1000)*p.RiverWarpScale, (fz-1000)*p.RiverWarpScale, 2, 2, 0.5)

	xw := fx + wx*warpMagnitude
	zw := fz + wz*warpMagnitude

	r := math.Abs(noise.FBM(s+riverSeedOffset, xw*p.RiverScale, zw*p.RiverScale, 3, 2, 0.5))
	line := 1 - mathx.Clamp01(r)

	t := mathx.Clamp01((line - (1 - p.RiverWidth)) / math.Max(1e-6, p.RiverWidth))
	return mathx.Smoothstep(t)
}

func (p Params) Temperature(seed int64, x, z int) float64 {
	s := seed + p.SeedSalt*temperatureSaltMul
	return noise.FBM(s, float64(x)*p.TemperatureScale, float64(z)*p.TemperatureScale, 3, 2, 0.5)
}

func (p Params) Humidity(seed int64, x, z int) float64 {
	s := seed + p.SeedSalt*humiditySaltMul
	return noise.FBM(s, float64(x)*p.HumidityScale, float64(z)*p.HumidityScale, 3, 2, 0.5)
}

// Steepness compares natural heights six blocks out on each axis; 1 is a
// drop of 60 blocks summed over both axes.
func (p Params) Steepness(seed int64, x, z int) float64 {
	h := p.Height(seed, x, z)
	dx := max(
		mathx.AbsInt(p.Height(seed, x+steepnessProbe, z)-h),
		mathx.AbsInt(p.Height(seed, x-steepnessProbe, z)-h),
	)
	dz := max(
		mathx.AbsInt(p.Height(seed, x, z+steepnessProbe)-h),
		mathx.AbsInt(p.Height(seed, x, z-steepnessProbe)-h),
	)
	return mathx.Clamp01(float64(dx+dz) / steepnessNorm)
}
