package main

import (
	"bytes"
	"context"
	"database/sql"
	"log"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"terracity.io/internal/gen/pipeline"
	"terracity.io/internal/persistence/atlas"
	"terracity.io/internal/persistence/eventlog"
	"terracity.io/internal/persistence/snapshot"
	"terracity.io/internal/transport/preview"
	"terracity.io/internal/tuning"
)

func TestParseRect(t *testing.T) {
	got, err := parseRect(" 5,-3 : -1,7 ")
	if err != nil {
		t.Fatalf("parseRect: %v", err)
	}
	if got != [4]int{-1, -3, 5, 7} {
		t.Fatalf("unexpected rect: %v", got)
	}
	for _, bad := range []string{"", "1,2", "1,2:3", "a,b:c,d", "1,2,3:4,5"} {
		if _, err := parseRect(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestSurveyMatchesGenerator(t *testing.T) {
	p := pipeline.DefaultParams()
	p.Settlement.Chance = 1
	gen := pipeline.New(p)

	feats := survey(gen, 42, [4]int{0, 0, 511, 511})
	var cities int
	for _, f := range feats {
		switch f.Kind {
		case atlas.KindCity:
			cities++
			c, ok := gen.CityAt(42, f.CenterX, f.CenterZ)
			if !ok || c.CenterX != f.CenterX || c.BaseHeight != f.Height {
				t.Fatalf("city feature %+v does not match CityAt", f)
			}
		case atlas.KindVolcano:
			if _, ok := gen.VolcanoAt(42, f.CenterX, f.CenterZ); !ok {
				t.Fatalf("volcano feature %+v does not match VolcanoAt", f)
			}
		default:
			t.Fatalf("unexpected kind %q", f.Kind)
		}
		if f.Biome == "" {
			t.Fatalf("feature without biome: %+v", f)
		}
	}
	if cities != 1 {
		t.Fatalf("forced cities in one cell: got %d want 1", cities)
	}
}

func smallGenerator() *pipeline.Generator {
	p := pipeline.DefaultParams()
	p.MinY = -16
	p.MaxY = 200
	p.Vegetation.TreeMinY = p.MinY
	p.Vegetation.TreeMaxY = p.MaxY
	return pipeline.New(p)
}

func TestRenderWritesSnapshotAtlasAndEvents(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "index", "atlas.sqlite")
	a, err := atlas.OpenSQLite(dbPath, nil)
	if err != nil {
		t.Fatalf("open atlas: %v", err)
	}
	ev := eventlog.NewChunkLogger(dir)
	gen := smallGenerator()
	tun := tuning.Defaults()

	var logBuf bytes.Buffer
	opts := renderOpts{
		Seed:    9,
		Chunks:  [4]int{0, 0, 1, 0},
		Workers: 2,
		Out:     defaultRenderPath(dir, 9, [4]int{0, 0, 1, 0}),
		Atlas:   a,
		Events:  ev,
	}
	snap, err := render(context.Background(), tun, gen, opts, log.New(&logBuf, "", 0))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("close atlas: %v", err)
	}
	if err := ev.Close(); err != nil {
		t.Fatalf("close events: %v", err)
	}

	onDisk, err := snapshot.ReadSnapshot(opts.Out)
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if onDisk.Header.Chunks != 2 || onDisk.Header.Seed != 9 || onDisk.TuningDigest != tun.Digest() {
		t.Fatalf("unexpected snapshot header: %+v digest=%s", onDisk.Header, onDisk.TuningDigest)
	}
	if onDisk.MinY != -16 || onDisk.Height != 216 {
		t.Fatalf("unexpected height range: %d +%d", onDisk.MinY, onDisk.Height)
	}
	bad, err := verifySnapshot(gen, onDisk, true)
	if err != nil || len(bad) != 0 {
		t.Fatalf("verify: bad=%v err=%v", bad, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	chunks, err := atlas.QueryChunks(context.Background(), db, 9, 0)
	if err != nil {
		t.Fatalf("query chunks: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("atlas chunks: got %d want 2", len(chunks))
	}
	for i, c := range chunks {
		if c.Digest != snap.Chunks[i].Digest {
			t.Fatalf("chunk %d,%d digest differs between atlas and snapshot", c.CX, c.CZ)
		}
		if c.MinHeight > c.MaxHeight || c.Biome == "" {
			t.Fatalf("bad chunk summary: %+v", c)
		}
	}
	meta, err := atlas.QueryMeta(context.Background(), db)
	if err != nil {
		t.Fatalf("query meta: %v", err)
	}
	if meta["render.last"] != opts.Out || meta["tuning_digest"] != tun.Digest() || meta["tuning.city.region-size"] != "512" {
		t.Fatalf("unexpected meta: last=%q digest=%q", meta["render.last"], meta["tuning_digest"])
	}

	lines, err := tailEvents(filepath.Join(dir, "events"), "chunks", 0)
	if err != nil {
		t.Fatalf("tail events: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("chunk events: got %d want 2", len(lines))
	}
	last, _ := tailEvents(filepath.Join(dir, "events"), "chunks", 1)
	if len(last) != 1 || last[0] != lines[1] {
		t.Fatalf("limit 1 should return the newest line: %v", last)
	}
}

func TestVerifySnapshotDetectsDrift(t *testing.T) {
	gen := smallGenerator()
	dir := t.TempDir()
	opts := renderOpts{Seed: 3, Chunks: [4]int{0, 0, 0, 0}, Out: filepath.Join(dir, "a.snap.zst")}
	snap, err := render(context.Background(), tuning.Defaults(), gen, opts, log.New(&bytes.Buffer{}, "", 0))
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	// Same blocks, claimed to come from another seed.
	snap.Header.Seed = 4
	bad, err := verifySnapshot(gen, snap, true)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if len(bad) != 1 {
		t.Fatalf("expected the regenerated chunk to differ, got %v", bad)
	}
}

func TestFetchStatus(t *testing.T) {
	srv := preview.NewServer(pipeline.New(pipeline.DefaultParams()), preview.Config{Seed: 77, TuningDigest: "td"}, nil)
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) { rw.WriteHeader(200) })
	mux.HandleFunc("/v1/bootstrap", srv.BootstrapHandler())
	ts := httptest.NewServer(mux)
	defer ts.Close()

	st, err := fetchStatus(ts.Client(), ts.URL+"/")
	if err != nil {
		t.Fatalf("fetchStatus: %v", err)
	}
	if !st.Healthy || st.Seed != 77 || st.TuningDigest != "td" || st.Biomes == 0 || st.Blocks == 0 {
		t.Fatalf("unexpected status: %+v", st)
	}
}
