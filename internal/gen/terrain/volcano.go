package terrain

import (
	"math"

	"terracity.io/internal/gen/mathx"
)

const volcanoSaltMask = 0xBADC0FF

type Volcano struct {
	CenterX, CenterZ int
	Radius           int
	CraterRadius     int
	RegionX, RegionZ int
}

// VolcanoAt resolves the volcano owning the region cell of (x, z), if any.
func (p Params) VolcanoAt(seed int64, x, z int) (Volcano, bool) {
	size := p.Volcano.RegionSize
	return p.VolcanoInRegion(seed, mathx.RegionOf(x, size), mathx.RegionOf(z, size))
}

func (p Params) VolcanoInRegion(seed int64, rx, rz int) (Volcano, bool) {
	vp := p.Volcano
	if vp.RegionSize <= 0 {
		return Volcano{}, false
	}
	r := mathx.NewRand(mathx.Mix(seed, rx, rz, p.SeedSalt^volcanoSaltMask))
	if r.Float64() > vp.Chance {
		return Volcano{}, false
	}
	cx := mathx.JitterCenter(&r, rx*vp.RegionSize, vp.RegionSize)
	cz := mathx.JitterCenter(&r, rz*vp.RegionSize, vp.RegionSize)
	return Volcano{
		CenterX:      cx,
		CenterZ:      cz,
		Radius:       vp.Radius,
		CraterRadius: vp.CraterRadius,
		RegionX:      rx,
		RegionZ:      rz,
	}, true
}

// FactorAt is the cone weight: 1 at the center, 0 at Radius and beyond.
func (v Volcano) FactorAt(x, z int) float64 {
	d := mathx.Dist(v.CenterX, v.CenterZ, x, z)
	return mathx.Clamp01(1 - d/math.Max(1, float64(v.Radius)))
}

// CraterFactorAt is the squared radial falloff inside CraterRadius.
func (v Volcano) CraterFactorAt(x, z int) float64 {
	d := mathx.Dist(v.CenterX, v.CenterZ, x, z)
	t := mathx.Clamp01(1 - d/math.Max(1, float64(v.CraterRadius)))
	return t * t
}
