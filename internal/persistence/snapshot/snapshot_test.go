package snapshot

import (
	"os"
	"path/filepath"
	"testing"
)

func sampleSnapshot() SnapshotV1 {
	blocks := make([]uint16, 16*16*4)
	for i := range blocks {
		blocks[i] = uint16(i % 7)
	}
	return SnapshotV1{
		Header: Header{Seed: 42, CreatedAt: "2026-01-02T03:04:05Z", Bounds: [4]int{-1, -1, 0, 0}},
		MinY:   -2,
		Height: 4,
		Tuning: map[string]string{"city.region-size": "512"},
		Palette: []string{
			"AIR", "STONE",
		},
		PaletteDigest: "abc",
		Chunks: []ChunkV1{
			{CX: -1, CZ: 0, MinY: -2, Height: 4, Blocks: blocks, Digest: "d1"},
		},
		Features: []FeatureV1{
			{Kind: "city", RegionX: 0, RegionZ: 0, CenterX: 259, CenterZ: 260, Radius: 120, Height: 80},
		},
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "area.snap.zst")
	in := sampleSnapshot()
	if err := WriteSnapshot(path, in); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if out.Header.Version != Version || out.Header.Chunks != 1 || out.Header.Seed != 42 {
		t.Fatalf("unexpected header: %+v", out.Header)
	}
	if out.MinY != -2 || out.Height != 4 || len(out.Chunks) != 1 {
		t.Fatalf("unexpected body: min_y=%d height=%d chunks=%d", out.MinY, out.Height, len(out.Chunks))
	}
	got := out.Chunks[0]
	if got.CX != -1 || got.Digest != "d1" || len(got.Blocks) != 16*16*4 {
		t.Fatalf("unexpected chunk: cx=%d digest=%s blocks=%d", got.CX, got.Digest, len(got.Blocks))
	}
	for i, b := range got.Blocks {
		if b != uint16(i%7) {
			t.Fatalf("block %d: got %d want %d", i, b, i%7)
		}
	}
	if out.Tuning["city.region-size"] != "512" {
		t.Fatalf("tuning not preserved: %v", out.Tuning)
	}
	if len(out.Features) != 1 || out.Features[0].CenterX != 259 {
		t.Fatalf("features not preserved: %+v", out.Features)
	}
}

func TestReadHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "area.snap.zst")
	if err := WriteSnapshot(path, sampleSnapshot()); err != nil {
		t.Fatalf("write: %v", err)
	}
	h, err := ReadHeader(path)
	if err != nil {
		t.Fatalf("read header: %v", err)
	}
	if h.Seed != 42 || h.Chunks != 1 || h.Bounds != [4]int{-1, -1, 0, 0} {
		t.Fatalf("unexpected header: %+v", h)
	}
}

func TestReadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.snap.zst")
	if err := os.WriteFile(path, []byte("not zstd"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadSnapshot(path); err == nil {
		t.Fatalf("expected error for garbage input")
	}
}
