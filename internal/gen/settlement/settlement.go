// Package settlement places cities on a region grid and lays out their road
// and plot grids. Cities are recomputed from the seed on every query.
package settlement

import (
	"terracity.io/internal/gen/mathx"
)

// HeightSource supplies natural terrain height at a column.
type HeightSource interface {
	Height(seed int64, x, z int) int
}

type Params struct {
	Enabled       bool
	SeedSalt      int64
	RegionSize    int
	Chance        float64
	Radius        int
	Blend         int
	BaseHeightMin int
	SeaLevel      int

	RoadSpacing int
	RoadWidth   int
	PlotSize    int
	PlotMargin  int
}

func DefaultParams() Params {
	return Params{
		Enabled:       true,
		SeedSalt:      1337,
		RegionSize:    512,
		Chance:        0.35,
		Radius:        120,
		Blend:         40,
		BaseHeightMin: 80,
		SeaLevel:      63,

		RoadSpacing: 32,
		RoadWidth:   5,
		PlotSize:    16,
		PlotMargin:  2,
	}
}

type City struct {
	CenterX, CenterZ int
	Radius           int
	Blend            int
	BaseHeight       int
	RegionX, RegionZ int
}

// CityAt resolves the city of the region cell enclosing (x, z), if any.
func (p Params) CityAt(seed int64, x, z int, hs HeightSource) (City, bool) {
	if !p.Enabled || p.RegionSize <= 0 {
		return City{}, false
	}
	return p.CityInRegion(seed, mathx.RegionOf(x, p.RegionSize), mathx.RegionOf(z, p.RegionSize), hs)
}

func (p Params) CityInRegion(seed int64, rx, rz int, hs HeightSource) (City, bool) {
	if !p.Enabled || p.RegionSize <= 0 {
		return City{}, false
	}
	r := mathx.NewRand(mathx.Mix(seed, rx, rz, p.SeedSalt))
	if r.Float64() > p.Chance {
		return City{}, false
	}
	cx := mathx.JitterCenter(&r, rx*p.RegionSize, p.RegionSize)
	cz := mathx.JitterCenter(&r, rz*p.RegionSize, p.RegionSize)

	natural := hs.Height(seed, cx, cz)
	base := max(p.BaseHeightMin, p.SeaLevel+10, natural)
	base = mathx.ClampInt(base, p.BaseHeightMin, p.BaseHeightMin+60)

	return City{
		CenterX:    cx,
		CenterZ:    cz,
		Radius:     p.Radius,
		Blend:      p.Blend,
		BaseHeight: base,
		RegionX:    rx,
		RegionZ:    rz,
	}, true
}

// CitiesTouching returns the cities whose home cells overlap the inclusive
// rectangle [x0,x1]x[z0,z1], ordered by cell (x, then z).
func (p Params) CitiesTouching(seed int64, x0, z0, x1, z1 int, hs HeightSource) []City {
	if !p.Enabled || p.RegionSize <= 0 {
		return nil
	}
	var out []City
	for rx := mathx.RegionOf(x0, p.RegionSize); rx <= mathx.RegionOf(x1, p.RegionSize); rx++ {
		for rz := mathx.RegionOf(z0, p.RegionSize); rz <= mathx.RegionOf(z1, p.RegionSize); rz++ {
			if c, ok := p.CityInRegion(seed, rx, rz, hs); ok {
				out = append(out, c)
			}
		}
	}
	return out
}

// BlendAt is the blend factor of the city owning (x, z), or 0.
func (p Params) BlendAt(seed int64, x, z int, hs HeightSource) (City, float64) {
	c, ok := p.CityAt(seed, x, z, hs)
	if !ok {
		return City{}, 0
	}
	return c, c.BlendFactor(x, z)
}

// BlendFactor is 1 inside Radius, ramps linearly to 0 across Blend, and is 0
// beyond. A non-positive Blend is a hard edge.
func (c City) BlendFactor(x, z int) float64 {
	d := mathx.Dist(c.CenterX, c.CenterZ, x, z)
	r := float64(c.Radius)
	if d <= r {
		return 1
	}
	if c.Blend <= 0 {
		return 0
	}
	b := float64(c.Blend)
	if d >= r+b {
		return 0
	}
	return mathx.Clamp01(1 - (d-r)/b)
}

func (c City) Dist(x, z int) float64 {
	return mathx.Dist(c.CenterX, c.CenterZ, x, z)
}
