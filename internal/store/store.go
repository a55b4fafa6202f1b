// Package store is an in-memory chunk host for the generator. Chunks are
// generated on first access and kept until the store is dropped.
package store

import (
	"sort"
	"sync"
	"time"

	"terracity.io/internal/gen/material"
	"terracity.io/internal/gen/mathx"
	"terracity.io/internal/gen/pipeline"
)

// ChunkStore lookups and inserts are safe for concurrent use. Block writes
// into a chunk are not synchronized with reads of the same chunk.
type ChunkStore struct {
	Gen  *pipeline.Generator
	Seed int64

	minY, maxY int

	// OnGenerated, if set, is called by GenerateArea workers for every chunk
	// they insert, with the time spent generating it. It must be safe for
	// concurrent use.
	OnGenerated func(ch *Chunk, took time.Duration)

	mu     sync.Mutex
	chunks map[ChunkKey]*Chunk
}

func NewChunkStore(gen *pipeline.Generator, seed int64) *ChunkStore {
	p := gen.Params()
	return &ChunkStore{
		Gen:    gen,
		Seed:   seed,
		minY:   p.MinY,
		maxY:   p.MaxY,
		chunks: map[ChunkKey]*Chunk{},
	}
}

func (s *ChunkStore) MinY() int { return s.minY }
func (s *ChunkStore) MaxY() int { return s.maxY }

func (s *ChunkStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.chunks)
}

func (s *ChunkStore) LoadedChunkKeys() []ChunkKey {
	s.mu.Lock()
	keys := make([]ChunkKey, 0, len(s.chunks))
	for k := range s.chunks {
		keys = append(keys, k)
	}
	s.mu.Unlock()
	sortKeys(keys)
	return keys
}

func sortKeys(keys []ChunkKey) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].CX != keys[j].CX {
			return keys[i].CX < keys[j].CX
		}
		return keys[i].CZ < keys[j].CZ
	})
}

// Chunk returns a loaded chunk without generating it.
func (s *ChunkStore) Chunk(cx, cz int) (*Chunk, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.chunks[ChunkKey{CX: cx, CZ: cz}]
	return ch, ok
}

// GetOrGenChunk returns the chunk, generating and decorating it on first
// use. Generation runs outside the lock; if two callers race, the first
// insert wins and both get the same chunk.
func (s *ChunkStore) GetOrGenChunk(cx, cz int) *Chunk {
	k := ChunkKey{CX: cx, CZ: cz}
	s.mu.Lock()
	if ch, ok := s.chunks[k]; ok {
		s.mu.Unlock()
		return ch
	}
	s.mu.Unlock()

	ch := s.GenerateChunk(cx, cz)

	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.chunks[k]; ok {
		return prev
	}
	s.chunks[k] = ch
	return ch
}

// GenerateChunk builds a chunk without storing it: terrain stages, then the
// decoration passes through a view limited to the chunk.
func (s *ChunkStore) GenerateChunk(cx, cz int) *Chunk {
	ch := NewChunk(cx, cz, s.minY, s.maxY)
	s.Gen.GenerateColumn(s.Seed, cx, cz, ch)
	s.Gen.DecorateChunk(s.Seed, cx, cz, chunkView{ch})
	_ = ch.Digest()
	return ch
}

func (s *ChunkStore) put(ch *Chunk) {
	s.mu.Lock()
	s.chunks[ch.Key()] = ch
	s.mu.Unlock()
}

func locate(x, z int) (cx, cz, lx, lz int) {
	return mathx.FloorDiv(x, chunkSize), mathx.FloorDiv(z, chunkSize), mathx.Mod(x, chunkSize), mathx.Mod(z, chunkSize)
}

// GetBlock reads a block in world coordinates. Heights outside the world
// range read as air.
func (s *ChunkStore) GetBlock(x, y, z int) material.ID {
	if y < s.minY || y >= s.maxY {
		return material.Air
	}
	cx, cz, lx, lz := locate(x, z)
	return s.GetOrGenChunk(cx, cz).Get(lx, y, lz)
}

// SetBlock writes a block in world coordinates; writes outside the world
// height range are ignored.
func (s *ChunkStore) SetBlock(x, y, z int, id material.ID) {
	if y < s.minY || y >= s.maxY {
		return
	}
	cx, cz, lx, lz := locate(x, z)
	s.GetOrGenChunk(cx, cz).Set(lx, y, lz, id)
}

func (s *ChunkStore) HighestBlockY(x, z int) int {
	cx, cz, lx, lz := locate(x, z)
	return s.GetOrGenChunk(cx, cz).HighestBlockY(lx, lz)
}

// Get and Set let the store stand in as a world-coordinate block accessor.
func (s *ChunkStore) Get(x, y, z int) material.ID     { return s.GetBlock(x, y, z) }
func (s *ChunkStore) Set(x, y, z int, id material.ID) { s.SetBlock(x, y, z, id) }

// Surface is the topmost non-air block of a column and its height.
type Surface struct {
	Y     int
	Block material.ID
}

func (s *ChunkStore) SurfaceAt(x, z int) Surface {
	cx, cz, lx, lz := locate(x, z)
	ch := s.GetOrGenChunk(cx, cz)
	y := ch.HighestBlockY(lx, lz)
	if y < s.minY {
		return Surface{Y: y, Block: material.Air}
	}
	return Surface{Y: y, Block: ch.Get(lx, y, lz)}
}
