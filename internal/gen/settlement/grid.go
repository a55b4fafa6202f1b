package settlement

import (
	"sort"

	"terracity.io/internal/gen/mathx"
)

// Plot is an accepted plot origin in world coordinates.
type Plot struct {
	X, Z int
	City City
}

func (p Params) roadBand(c City, x, z, extra int) bool {
	half := p.RoadWidth/2 + extra
	mx := mathx.Mod(mathx.AbsInt(x-c.CenterX), p.RoadSpacing)
	mz := mathx.Mod(mathx.AbsInt(z-c.CenterZ), p.RoadSpacing)
	return mx <= half || mz <= half
}

func (p Params) IsRoad(c City, x, z int) bool {
	return p.roadBand(c, x, z, 0)
}

// IsNearRoad widens the road band by dist on both axes.
func (p Params) IsNearRoad(c City, x, z, dist int) bool {
	return p.roadBand(c, x, z, dist)
}

func (p Params) IsPlotOrigin(c City, x, z int) bool {
	return mathx.Mod(x-c.CenterX, p.PlotSize) == 0 && mathx.Mod(z-c.CenterZ, p.PlotSize) == 0
}

// InCore keeps plots off the blended rim of the city.
func (p Params) InCore(c City, x, z int) bool {
	return c.Dist(x, z) <= float64(c.Radius-max(8, c.Blend/2))
}

// BuildableOrigin is a plot origin inside the core and clear of the road
// margin.
func (p Params) BuildableOrigin(c City, x, z int) bool {
	return p.IsPlotOrigin(c, x, z) && p.InCore(c, x, z) && !p.IsNearRoad(c, x, z, p.PlotMargin)
}

// PlotOriginsIn lists buildable origins inside the inclusive rectangle,
// x-major then z. Each origin uses the city of its own region cell.
func (p Params) PlotOriginsIn(seed int64, x0, z0, x1, z1 int, hs HeightSource) []Plot {
	var out []Plot
	for _, c := range p.CitiesTouching(seed, x0, z0, x1, z1, hs) {
		rx0 := c.RegionX * p.RegionSize
		rz0 := c.RegionZ * p.RegionSize
		ax, az := max(x0, rx0), max(z0, rz0)
		bx, bz := min(x1, rx0+p.RegionSize-1), min(z1, rz0+p.RegionSize-1)

		// first grid-aligned column at or after ax
		sx := ax + mathx.Mod(c.CenterX-ax, p.PlotSize)
		sz := az + mathx.Mod(c.CenterZ-az, p.PlotSize)
		for x := sx; x <= bx; x += p.PlotSize {
			for z := sz; z <= bz; z += p.PlotSize {
				if p.BuildableOrigin(c, x, z) {
					out = append(out, Plot{X: x, Z: z, City: c})
				}
			}
		}
	}
	sortPlots(out)
	return out
}

func sortPlots(ps []Plot) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].X != ps[j].X {
			return ps[i].X < ps[j].X
		}
		return ps[i].Z < ps[j].Z
	})
}
