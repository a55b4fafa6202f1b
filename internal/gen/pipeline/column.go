package pipeline

import (
	"github.com/aquilax/go-perlin"

	"terracity.io/internal/gen/material"
	"terracity.io/internal/gen/mathx"
)

const (
	riverFillAbove  = 0.55
	craterLavaAbove = 0.55

	strataSalt      = 0x57A7A
	strataBand      = 6
	strataScale     = 0.013
	strataWarp      = 9.0
	strataClearance = 4
)

// GenerateColumn fills a chunk buffer: elevation, column fill, surface
// dressing, settlement overlay, then structures. Chunks are independent; a
// building that crosses a chunk border is written by every chunk it touches.
func (g *Generator) GenerateColumn(seed int64, chunkX, chunkZ int, buf BlockBuffer) {
	minY, maxY := buf.MinY(), buf.MaxY()
	var strata *perlin.Perlin
	if g.p.Surface.Strata {
		strata = perlin.NewPerlin(2, 2, 3, seed^strataSalt)
	}

	for lx := 0; lx < ChunkSize; lx++ {
		for lz := 0; lz < ChunkSize; lz++ {
			wx := chunkX*ChunkSize + lx
			wz := chunkZ*ChunkSize + lz
			h := mathx.ClampInt(g.elevation(seed, wx, wz), minY+1, maxY-1)
			g.fillColumn(seed, wx, wz, lx, lz, h, buf, strata)
			g.dressColumn(seed, wx, wz, lx, lz, buf)
		}
	}

	g.placeStructures(seed, chunkX, chunkZ, buf)
}

func (g *Generator) fillColumn(seed int64, wx, wz, lx, lz, h int, buf BlockBuffer, strata *perlin.Perlin) {
	tp := g.p.Terrain
	minY, maxY := buf.MinY(), buf.MaxY()

	for y := minY; y <= h; y++ {
		buf.Set(lx, y, lz, material.Stone)
	}
	if strata != nil {
		// bands tilt with a low-frequency perlin field
		off := mathx.Round(strata.Noise2D(float64(wx)*strataScale, float64(wz)*strataScale) * strataWarp)
		for y := minY; y < h-strataClearance; y++ {
			if id := strataAt(seed, mathx.FloorDiv(y+off, strataBand)); id != material.Stone {
				buf.Set(lx, y, lz, id)
			}
		}
	}

	for y := h + 1; y <= tp.SeaLevel && y < maxY; y++ {
		buf.Set(lx, y, lz, material.Water)
	}

	if tp.RiverMask(seed, wx, wz) > riverFillAbove && h >= tp.SeaLevel-2 {
		top := min(maxY-1, h+2)
		for y := h + 1; y <= top; y++ {
			buf.Set(lx, y, lz, material.Water)
		}
	}

	if v, ok := tp.VolcanoAt(seed, wx, wz); ok && v.CraterFactorAt(wx, wz) > craterLavaAbove {
		lava := mathx.ClampInt(tp.Volcano.LavaLevel, minY+1, maxY-1)
		for y := h + 1; y <= lava; y++ {
			buf.Set(lx, y, lz, material.Lava)
		}
	}
}

// strataAt picks the stone variant of a band; most bands stay plain stone.
func strataAt(seed int64, band int) material.ID {
	switch mathx.Hash2(seed^strataSalt, band, 0) % 8 {
	case 0:
		return material.Andesite
	case 1:
		return material.Diorite
	case 2:
		return material.Tuff
	default:
		return material.Stone
	}
}

func topSolidY(buf BlockBuffer, lx, lz int) int {
	for y := buf.MaxY() - 1; y >= buf.MinY(); y-- {
		if material.IsSolid(buf.Get(lx, y, lz)) {
			return y
		}
	}
	return buf.MinY() - 1
}

func (g *Generator) dressColumn(seed int64, wx, wz, lx, lz int, buf BlockBuffer) {
	minY := buf.MinY()
	topY := topSolidY(buf, lx, lz)
	if topY < minY {
		return
	}

	top, under := g.surfaceMaterials(seed, wx, wz, topY)
	buf.Set(lx, topY, lz, top)
	for y := topY - 1; y >= topY-3 && y >= minY; y-- {
		if buf.Get(lx, y, lz) == material.Stone {
			buf.Set(lx, y, lz, under)
		}
	}

	if id, ok := g.overlayMaterial(seed, wx, wz); ok {
		buf.Set(lx, topY, lz, id)
	}
}

// surfaceMaterials is the natural top and subsurface block of a column whose
// highest solid block is at topY. Later rules override earlier ones.
func (g *Generator) surfaceMaterials(seed int64, wx, wz, topY int) (top, under material.ID) {
	tp := g.p.Terrain
	sea := tp.SeaLevel
	top, under = material.GrassBlock, material.Dirt

	temp := tp.Temperature(seed, wx, wz)
	hum := tp.Humidity(seed, wx, wz)
	desert := temp > 0.35 && hum < 0.15
	snowy := temp < -0.35 || topY >= tp.SnowLine

	switch {
	case topY <= sea+2, desert:
		top, under = material.Sand, material.Sandstone
	case snowy:
		top, under = material.SnowBlock, material.Dirt
	case hum > 0.45 && temp < 0.2:
		top, under = material.Podzol, material.Dirt
	}

	if topY > sea+10 && tp.Steepness(seed, wx, wz) >= tp.CliffThreshold {
		top, under = material.Stone, material.Stone
	}

	if v, ok := tp.VolcanoAt(seed, wx, wz); ok {
		if vf := v.FactorAt(wx, wz); vf > 0.15 && topY > sea+6 {
			top, under = material.Stone, material.Stone
			switch {
			case vf > 0.78:
				top = material.Blackstone
			case vf > 0.65:
				top = material.Basalt
			}
		}
	}

	if topY >= sea-2 && tp.RiverMask(seed, wx, wz) > riverFillAbove {
		top, under = material.Gravel, material.Dirt
		if topY <= sea+1 {
			top = material.Sand
		}
	}
	return top, under
}

// overlayMaterial is the paved or planted city surface at a column, if the
// column lies in a city's blend zone.
func (g *Generator) overlayMaterial(seed int64, wx, wz int) (material.ID, bool) {
	sp := g.p.Settlement
	city, blend := sp.BlendAt(seed, wx, wz, g.p.Terrain)
	if blend <= 0 {
		return 0, false
	}
	if sp.IsRoad(city, wx, wz) {
		return g.p.Surface.Road, true
	}
	if blend >= 0.85 || sp.IsNearRoad(city, wx, wz, 2) {
		return g.p.Surface.Sidewalk, true
	}
	return material.GrassBlock, true
}
