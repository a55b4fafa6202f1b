package atlas

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func TestAtlasRecordsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index", "atlas.sqlite")
	a, err := OpenSQLite(path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if err := a.UpsertMeta(map[string]string{"seed": "42", "city.region-size": "512"}); err != nil {
		t.Fatalf("meta: %v", err)
	}
	for _, f := range []Feature{
		{Seed: 42, Kind: KindCity, RegionX: 0, RegionZ: 0, CenterX: 259, CenterZ: 260, Radius: 120, Height: 80, Biome: "urban-plains"},
		{Seed: 42, Kind: KindVolcano, RegionX: -1, RegionZ: 2, CenterX: -700, CenterZ: 3800, Radius: 220, Height: 110},
		// replaces the first row
		{Seed: 42, Kind: KindCity, RegionX: 0, RegionZ: 0, CenterX: 259, CenterZ: 260, Radius: 120, Height: 85, Biome: "urban-plains"},
		{Seed: 7, Kind: KindCity, RegionX: 3, RegionZ: 3},
	} {
		if err := a.RecordFeature(f); err != nil {
			t.Fatalf("record feature: %v", err)
		}
	}
	for cx := 0; cx < 3; cx++ {
		if err := a.RecordChunk(Chunk{Seed: 42, CX: cx, CZ: -1, Digest: "d", Biome: "plains", MinHeight: 60, MaxHeight: 70}); err != nil {
			t.Fatalf("record chunk: %v", err)
		}
	}
	if err := a.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := a.RecordChunk(Chunk{Seed: 42}); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed after close, got %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()
	ctx := context.Background()

	feats, err := QueryFeatures(ctx, db, 42, "", 0)
	if err != nil {
		t.Fatalf("features: %v", err)
	}
	if len(feats) != 2 {
		t.Fatalf("features: got %d want 2", len(feats))
	}
	if feats[0].Kind != KindCity || feats[0].Height != 85 {
		t.Fatalf("city row not replaced: %+v", feats[0])
	}
	cities, err := QueryFeatures(ctx, db, 42, KindVolcano, 10)
	if err != nil || len(cities) != 1 || cities[0].CenterZ != 3800 {
		t.Fatalf("volcano filter: %v %+v", err, cities)
	}

	chunks, err := QueryChunks(ctx, db, 42, 2)
	if err != nil {
		t.Fatalf("chunks: %v", err)
	}
	if len(chunks) != 2 || chunks[0].CX != 0 || chunks[1].CX != 1 {
		t.Fatalf("unexpected chunks: %+v", chunks)
	}

	meta, err := QueryMeta(ctx, db)
	if err != nil {
		t.Fatalf("meta: %v", err)
	}
	if meta["seed"] != "42" || meta["city.region-size"] != "512" {
		t.Fatalf("unexpected meta: %v", meta)
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := OpenSQLite("", nil); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestUpsertMetaAfterQueuedRows(t *testing.T) {
	a, err := OpenSQLite(filepath.Join(t.TempDir(), "atlas.sqlite"), nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer a.Close()

	if err := a.RecordFeature(Feature{Seed: 1, Kind: KindCity, RegionX: 2, RegionZ: 3, CenterX: 10, CenterZ: 20}); err != nil {
		t.Fatalf("record feature: %v", err)
	}
	if err := a.RecordChunk(Chunk{Seed: 1, CX: 4, CZ: 5, Digest: "d"}); err != nil {
		t.Fatalf("record chunk: %v", err)
	}
	// Let the writer open its batch transaction before the meta write.
	time.Sleep(100 * time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- a.UpsertMeta(map[string]string{"render.last": "x"}) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("meta: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("UpsertMeta did not return")
	}

	// Rows queued before the meta write are committed with it.
	ctx := context.Background()
	feats, err := QueryFeatures(ctx, a.db, 1, "", 0)
	if err != nil || len(feats) != 1 || feats[0].CenterZ != 20 {
		t.Fatalf("features: %v %+v", err, feats)
	}
	chunks, err := QueryChunks(ctx, a.db, 1, 0)
	if err != nil || len(chunks) != 1 {
		t.Fatalf("chunks: %v %+v", err, chunks)
	}
	meta, err := QueryMeta(ctx, a.db)
	if err != nil || meta["render.last"] != "x" {
		t.Fatalf("meta: %v %v", err, meta)
	}
}

func TestIdleBatchIsCommitted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atlas.sqlite")
	a, err := OpenSQLite(path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer a.Close()
	if err := a.RecordChunk(Chunk{Seed: 9, CX: 1, CZ: 1, Digest: "d"}); err != nil {
		t.Fatalf("record chunk: %v", err)
	}

	// The single connection is held by the batch until the writer
	// commits it on its own.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	chunks, err := QueryChunks(ctx, a.db, 9, 0)
	if err != nil || len(chunks) != 1 {
		t.Fatalf("idle batch never committed: %v %+v", err, chunks)
	}
}
