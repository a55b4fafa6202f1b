package store

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"sync"
	"sync/atomic"

	"terracity.io/internal/gen/material"
	"terracity.io/internal/gen/pipeline"
)

const chunkSize = pipeline.ChunkSize

type ChunkKey struct {
	CX int
	CZ int
}

func (k ChunkKey) String() string { return fmt.Sprintf("%d,%d", k.CX, k.CZ) }

// Chunk is a 16 x height x 16 column of block ids. Blocks is laid out
// y-major, then z, then x (x fastest). Writes must not overlap other
// access; Digest may be called from several goroutines once writes stop.
type Chunk struct {
	CX, CZ int
	Blocks []uint16

	minY   int
	height int

	dirty  atomic.Bool
	hashMu sync.Mutex
	hash   [32]byte
}

func NewChunk(cx, cz, minY, maxY int) *Chunk {
	if maxY <= minY {
		panic(fmt.Sprintf("store: empty chunk height range [%d,%d)", minY, maxY))
	}
	h := maxY - minY
	return &Chunk{
		CX:     cx,
		CZ:     cz,
		Blocks: make([]uint16, chunkSize*chunkSize*h),
		minY:   minY,
		height: h,
	}
}

func (c *Chunk) Key() ChunkKey { return ChunkKey{CX: c.CX, CZ: c.CZ} }
func (c *Chunk) MinY() int     { return c.minY }
func (c *Chunk) MaxY() int     { return c.minY + c.height }
func (c *Chunk) Height() int   { return c.height }

func (c *Chunk) index(x, y, z int) int {
	if x < 0 || x >= chunkSize || z < 0 || z >= chunkSize || y < c.minY || y >= c.minY+c.height {
		panic(fmt.Sprintf("store: block %d,%d,%d outside chunk %d,%d (y range [%d,%d))", x, y, z, c.CX, c.CZ, c.minY, c.minY+c.height))
	}
	return (y-c.minY)*chunkSize*chunkSize + z*chunkSize + x
}

func (c *Chunk) Get(x, y, z int) material.ID {
	return material.ID(c.Blocks[c.index(x, y, z)])
}

func (c *Chunk) Set(x, y, z int, id material.ID) {
	i := c.index(x, y, z)
	if c.Blocks[i] == uint16(id) {
		return
	}
	c.Blocks[i] = uint16(id)
	c.dirty.Store(true)
}

// HighestBlockY returns the topmost non-air y of a local column, or
// MinY()-1 for an empty column.
func (c *Chunk) HighestBlockY(x, z int) int {
	for y := c.MaxY() - 1; y >= c.minY; y-- {
		if c.Get(x, y, z) != material.Air {
			return y
		}
	}
	return c.minY - 1
}

func (c *Chunk) Digest() [32]byte {
	c.hashMu.Lock()
	defer c.hashMu.Unlock()
	if c.dirty.Load() || c.hash == ([32]byte{}) {
		h := sha256.New()
		var tmp [2]byte
		for _, v := range c.Blocks {
			binary.LittleEndian.PutUint16(tmp[:], v)
			h.Write(tmp[:])
		}
		copy(c.hash[:], h.Sum(nil))
		c.dirty.Store(false)
	}
	return c.hash
}

func (c *Chunk) DigestHex() string {
	d := c.Digest()
	return hex.EncodeToString(d[:])
}

// chunkView exposes one chunk in world coordinates for the decoration
// passes. Reads outside the chunk return Void and writes are dropped.
type chunkView struct{ c *Chunk }

func (v chunkView) local(x, z int) (int, int, bool) {
	lx, lz := x-v.c.CX*chunkSize, z-v.c.CZ*chunkSize
	return lx, lz, lx >= 0 && lx < chunkSize && lz >= 0 && lz < chunkSize
}

func (v chunkView) MinY() int { return v.c.MinY() }
func (v chunkView) MaxY() int { return v.c.MaxY() }

func (v chunkView) Get(x, y, z int) material.ID {
	lx, lz, ok := v.local(x, z)
	if !ok || y < v.c.MinY() || y >= v.c.MaxY() {
		return material.Void
	}
	return v.c.Get(lx, y, lz)
}

func (v chunkView) Set(x, y, z int, id material.ID) {
	lx, lz, ok := v.local(x, z)
	if !ok || y < v.c.MinY() || y >= v.c.MaxY() {
		return
	}
	v.c.Set(lx, y, lz, id)
}

func (v chunkView) HighestBlockY(x, z int) int {
	lx, lz, ok := v.local(x, z)
	if !ok {
		return v.c.MinY() - 1
	}
	return v.c.HighestBlockY(lx, lz)
}
