// Package vegetation decorates a generated chunk with trees, flora clusters
// and ground cover. All reads and writes go through a Window clipped to the
// chunk, so the result depends only on the chunk's own terrain.
package vegetation

import (
	"terracity.io/internal/gen/material"
)

const (
	treeSalt  = 0xC0FFEE
	floraSalt = 0xF10DA
	coverSalt = 0xC0BE4
)

// Accessor is a world-coordinate block view. HighestBlockY is the y of the
// highest non-air block, or MinY()-1 for an empty column.
type Accessor interface {
	MinY() int
	MaxY() int
	Get(x, y, z int) material.ID
	Set(x, y, z int, id material.ID)
	HighestBlockY(x, z int) int
}

// Env is the per-column climate and settlement view the passes consult.
type Env interface {
	Temperature(seed int64, x, z int) float64
	Humidity(seed int64, x, z int) float64
	CityBlend(seed int64, x, z int) float64
}

type Params struct {
	SeaLevel int
	SnowLine int

	TreesEnabled bool
	TreeAttempts int
	TreeMinY     int
	TreeMaxY     int
	// trees are skipped where the city blend exceeds this
	TreeCityBlendMax float64

	FloraEnabled  bool
	FloraAttempts int
	PalmChance    float64
	PineChance    float64
	JungleChance  float64

	CoverEnabled bool
	CoverDensity float64
	CoverScale   float64
}

func DefaultParams() Params {
	return Params{
		SeaLevel: 63,
		SnowLine: 150,

		TreesEnabled:     true,
		TreeAttempts:     10,
		TreeMinY:         -64,
		TreeMaxY:         320,
		TreeCityBlendMax: 0.15,

		FloraEnabled:  true,
		FloraAttempts: 4,
		PalmChance:    0.45,
		PineChance:    0.30,
		JungleChance:  0.25,

		CoverEnabled: true,
		CoverDensity: 0.35,
		CoverScale:   0.045,
	}
}

// Decorate runs the tree, flora and ground-cover passes for one chunk, in
// that order.
func (p Params) Decorate(seed int64, chunkX, chunkZ int, env Env, acc Accessor) {
	w := NewWindow(acc, chunkX, chunkZ)
	if p.TreesEnabled {
		p.treePass(seed, chunkX, chunkZ, env, w)
	}
	if p.FloraEnabled {
		p.floraPass(seed, chunkX, chunkZ, env, w)
	}
	if p.CoverEnabled {
		p.coverPass(seed, chunkX, chunkZ, env, w)
	}
}
