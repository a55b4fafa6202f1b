package pipeline

import (
	"terracity.io/internal/gen/biome"
	"terracity.io/internal/gen/material"
	"terracity.io/internal/gen/settlement"
	"terracity.io/internal/gen/terrain"
)

// ColumnInfo is a diagnostic breakdown of one column, for tools and the
// preview transport.
type ColumnInfo struct {
	X, Z        int
	Natural     int
	Height      int
	Temperature float64
	Humidity    float64
	Continent   float64
	River       float64
	Biome       biome.Label
	BiomeRule   string
	Surface     material.ID

	City      *settlement.City
	CityBlend float64
	Volcano   *terrain.Volcano
}

func (g *Generator) Probe(seed int64, x, z int) ColumnInfo {
	tp := g.p.Terrain
	s := g.sample(seed, x, z)
	label, rule := biome.Explain(s)
	info := ColumnInfo{
		X:           x,
		Z:           z,
		Natural:     tp.Height(seed, x, z),
		Height:      s.Height,
		Temperature: s.Temperature,
		Humidity:    s.Humidity,
		Continent:   tp.Continent01(seed, x, z),
		River:       tp.RiverMask(seed, x, z),
		Biome:       label,
		BiomeRule:   rule,
		Surface:     g.SurfaceAt(seed, x, z),
		CityBlend:   s.CityBlend,
	}
	if c, ok := g.CityAt(seed, x, z); ok {
		info.City = &c
	}
	if v, ok := g.VolcanoAt(seed, x, z); ok {
		info.Volcano = &v
	}
	return info
}

// SurfaceAt is the block GenerateColumn leaves on top of the column before
// structures, computed without a buffer. Columns under crater lava report
// lava.
func (g *Generator) SurfaceAt(seed int64, x, z int) material.ID {
	tp := g.p.Terrain
	h := g.BaseHeight(seed, x, z)
	if v, ok := tp.VolcanoAt(seed, x, z); ok && v.CraterFactorAt(x, z) > craterLavaAbove && tp.Volcano.LavaLevel > h {
		return material.Lava
	}
	if id, ok := g.overlayMaterial(seed, x, z); ok {
		return id
	}
	top, _ := g.surfaceMaterials(seed, x, z, h)
	return top
}
