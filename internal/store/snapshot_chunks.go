package store

import (
	"fmt"

	snapv1 "terracity.io/internal/persistence/snapshot"
)

// ExportChunks converts loaded chunks into snapshot chunks, in key order.
// Keys that are not loaded are skipped.
func (s *ChunkStore) ExportChunks(keys []ChunkKey) []snapv1.ChunkV1 {
	out := make([]snapv1.ChunkV1, 0, len(keys))
	for _, k := range keys {
		ch, ok := s.Chunk(k.CX, k.CZ)
		if !ok {
			continue
		}
		blocks := make([]uint16, len(ch.Blocks))
		copy(blocks, ch.Blocks)
		out = append(out, snapv1.ChunkV1{
			CX:     k.CX,
			CZ:     k.CZ,
			MinY:   ch.MinY(),
			Height: ch.Height(),
			Blocks: blocks,
			Digest: ch.DigestHex(),
		})
	}
	return out
}

// ImportChunks loads snapshot chunks into the store, replacing loaded ones.
// Every chunk must match the store's height range and its recorded digest.
func (s *ChunkStore) ImportChunks(chunks []snapv1.ChunkV1) error {
	for _, in := range chunks {
		if in.MinY != s.minY || in.Height != s.maxY-s.minY {
			return fmt.Errorf("snapshot chunk %d,%d height mismatch: got [%d,+%d) want [%d,+%d)", in.CX, in.CZ, in.MinY, in.Height, s.minY, s.maxY-s.minY)
		}
		if want := chunkSize * chunkSize * in.Height; len(in.Blocks) != want {
			return fmt.Errorf("snapshot chunk %d,%d blocks length mismatch: got %d want %d", in.CX, in.CZ, len(in.Blocks), want)
		}
		ch := NewChunk(in.CX, in.CZ, s.minY, s.maxY)
		copy(ch.Blocks, in.Blocks)
		if in.Digest != "" && ch.DigestHex() != in.Digest {
			return fmt.Errorf("snapshot chunk %d,%d digest mismatch", in.CX, in.CZ)
		}
		s.put(ch)
	}
	return nil
}
