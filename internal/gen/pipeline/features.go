package pipeline

import (
	"terracity.io/internal/gen/mathx"
	"terracity.io/internal/gen/settlement"
	"terracity.io/internal/gen/terrain"
)

// Cities lists the cities whose home cells overlap the inclusive block
// rectangle [x0,x1]x[z0,z1], ordered by cell (x, then z).
func (g *Generator) Cities(seed int64, x0, z0, x1, z1 int) []settlement.City {
	x0, x1 = order(x0, x1)
	z0, z1 = order(z0, z1)
	return g.p.Settlement.CitiesTouching(seed, x0, z0, x1, z1, g.p.Terrain)
}

// Volcanoes is the volcano counterpart of Cities.
func (g *Generator) Volcanoes(seed int64, x0, z0, x1, z1 int) []terrain.Volcano {
	size := g.p.Terrain.Volcano.RegionSize
	if size <= 0 {
		return nil
	}
	x0, x1 = order(x0, x1)
	z0, z1 = order(z0, z1)
	var out []terrain.Volcano
	for rx := mathx.RegionOf(x0, size); rx <= mathx.RegionOf(x1, size); rx++ {
		for rz := mathx.RegionOf(z0, size); rz <= mathx.RegionOf(z1, size); rz++ {
			if v, ok := g.p.Terrain.VolcanoInRegion(seed, rx, rz); ok {
				out = append(out, v)
			}
		}
	}
	return out
}

func order(a, b int) (int, int) {
	if b < a {
		return b, a
	}
	return a, b
}
