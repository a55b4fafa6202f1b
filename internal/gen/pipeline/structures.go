package pipeline

import (
	"terracity.io/internal/gen/material"
	"terracity.io/internal/gen/mathx"
	"terracity.io/internal/gen/structure"
)

// chunkClip writes world coordinates into one chunk buffer, dropping writes
// outside it.
type chunkClip struct {
	buf    BlockBuffer
	x0, z0 int
}

func (c chunkClip) Set(x, y, z int, id material.ID) {
	lx, lz := x-c.x0, z-c.z0
	if lx < 0 || lx >= ChunkSize || lz < 0 || lz >= ChunkSize {
		return
	}
	if y < c.buf.MinY() || y >= c.buf.MaxY() {
		return
	}
	c.buf.Set(lx, y, lz, id)
}

// Buildings plans the buildings whose plot origins lie in chunk (chunkX,
// chunkZ), with the per-chunk cap applied.
func (g *Generator) Buildings(seed int64, chunkX, chunkZ, minY, maxY int) []structure.Building {
	sp := g.p.Settlement
	x0, z0 := chunkX*ChunkSize, chunkZ*ChunkSize
	plots := sp.PlotOriginsIn(seed, x0, z0, x0+ChunkSize-1, z0+ChunkSize-1, g.p.Terrain)
	if len(plots) == 0 {
		return nil
	}
	ground := func(x, z int) (int, bool) {
		y := mathx.ClampInt(g.elevation(seed, x, z), minY+1, maxY-1)
		return y, y >= minY+2
	}
	return g.p.Structure.ChunkBuildings(seed, plots, ground)
}

func (g *Generator) placeStructures(seed int64, chunkX, chunkZ int, buf BlockBuffer) {
	x0, z0 := chunkX*ChunkSize, chunkZ*ChunkSize
	x1, z1 := x0+ChunkSize-1, z0+ChunkSize-1
	clip := chunkClip{buf: buf, x0: x0, z0: z0}

	// structure.MaxExtent < ChunkSize, so only this chunk and its -x/-z
	// neighbours can own buildings that reach here.
	for ocx := chunkX - 1; ocx <= chunkX; ocx++ {
		for ocz := chunkZ - 1; ocz <= chunkZ; ocz++ {
			for _, b := range g.Buildings(seed, ocx, ocz, buf.MinY(), buf.MaxY()) {
				if b.Overlaps(x0, z0, x1, z1) {
					g.p.Structure.Render(b, clip)
				}
			}
		}
	}
}
