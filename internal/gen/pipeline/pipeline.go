// Package pipeline runs the generation stages for a chunk and exposes the
// query surfaces hosts call: BaseHeight, GenerateColumn, ClassifyBiome,
// ListBiomes and DecorateChunk.
//
// A Generator holds only immutable Params, so every method is safe for
// concurrent use.
package pipeline

import (
	"terracity.io/internal/gen/biome"
	"terracity.io/internal/gen/material"
	"terracity.io/internal/gen/mathx"
	"terracity.io/internal/gen/settlement"
	"terracity.io/internal/gen/structure"
	"terracity.io/internal/gen/terrain"
	"terracity.io/internal/gen/vegetation"
)

const ChunkSize = 16

// BlockBuffer is a caller-owned chunk in local coordinates: x and z in
// [0, ChunkSize), y in [MinY(), MaxY()).
type BlockBuffer interface {
	MinY() int
	MaxY() int
	Get(x, y, z int) material.ID
	Set(x, y, z int, id material.ID)
}

// BlockAccessor is a caller-owned world view in world coordinates.
type BlockAccessor = vegetation.Accessor

type SurfaceParams struct {
	Road     material.ID
	Sidewalk material.ID
	// Strata bands andesite, diorite and tuff into deep stone.
	Strata bool
}

type Params struct {
	// World height range; BaseHeight clamps to [MinY+1, MaxY-1] the same
	// way GenerateColumn clamps to its buffer.
	MinY int
	MaxY int

	Terrain    terrain.Params
	Settlement settlement.Params
	Surface    SurfaceParams
	Structure  structure.Params
	Vegetation vegetation.Params
}

func DefaultParams() Params {
	return Params{
		MinY:       -64,
		MaxY:       320,
		Terrain:    terrain.DefaultParams(),
		Settlement: settlement.DefaultParams(),
		Surface: SurfaceParams{
			Road:     material.StoneBricks,
			Sidewalk: material.Andesite,
			Strata:   true,
		},
		Structure:  structure.DefaultParams(),
		Vegetation: vegetation.DefaultParams(),
	}
}

type Generator struct {
	p Params
}

func New(p Params) *Generator {
	return &Generator{p: p}
}

func (g *Generator) Params() Params {
	return g.p
}

// elevation is the natural height pulled toward the plateau of the city
// owning the column.
func (g *Generator) elevation(seed int64, x, z int) int {
	natural := g.p.Terrain.Height(seed, x, z)
	city, blend := g.p.Settlement.BlendAt(seed, x, z, g.p.Terrain)
	if blend <= 0 {
		return natural
	}
	return mathx.LerpInt(natural, city.BaseHeight, blend)
}

// BaseHeight is the height GenerateColumn writes for the column when the
// buffer spans [Params.MinY, Params.MaxY).
func (g *Generator) BaseHeight(seed int64, x, z int) int {
	return mathx.ClampInt(g.elevation(seed, x, z), g.p.MinY+1, g.p.MaxY-1)
}

func (g *Generator) CityBlend(seed int64, x, z int) float64 {
	_, blend := g.p.Settlement.BlendAt(seed, x, z, g.p.Terrain)
	return blend
}

func (g *Generator) CityAt(seed int64, x, z int) (settlement.City, bool) {
	return g.p.Settlement.CityAt(seed, x, z, g.p.Terrain)
}

func (g *Generator) VolcanoAt(seed int64, x, z int) (terrain.Volcano, bool) {
	return g.p.Terrain.VolcanoAt(seed, x, z)
}

func (g *Generator) sample(seed int64, x, z int) biome.Sample {
	return biome.Sample{
		Height:      g.BaseHeight(seed, x, z),
		Temperature: g.p.Terrain.Temperature(seed, x, z),
		Humidity:    g.p.Terrain.Humidity(seed, x, z),
		SeaLevel:    g.p.Terrain.SeaLevel,
		SnowLine:    g.p.Terrain.SnowLine,
		CityBlend:   g.CityBlend(seed, x, z),
	}
}

// ClassifyBiome labels a column. y is accepted for host compatibility; the
// classification is per column.
func (g *Generator) ClassifyBiome(seed int64, x, y, z int) biome.Label {
	return biome.Classify(g.sample(seed, x, z))
}

func (g *Generator) ListBiomes() []biome.Label {
	return biome.All()
}

// DecorateChunk runs the vegetation passes for a chunk whose terrain stages
// have completed. Only the chunk's own blocks are read or written.
func (g *Generator) DecorateChunk(seed int64, chunkX, chunkZ int, acc BlockAccessor) {
	g.p.Vegetation.Decorate(seed, chunkX, chunkZ, climate{g}, acc)
}

// climate adapts a Generator to vegetation.Env.
type climate struct{ g *Generator }

func (c climate) Temperature(seed int64, x, z int) float64 {
	return c.g.p.Terrain.Temperature(seed, x, z)
}

func (c climate) Humidity(seed int64, x, z int) float64 {
	return c.g.p.Terrain.Humidity(seed, x, z)
}

func (c climate) CityBlend(seed int64, x, z int) float64 {
	return c.g.CityBlend(seed, x, z)
}
