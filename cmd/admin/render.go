package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"terracity.io/internal/gen/material"
	"terracity.io/internal/gen/pipeline"
	"terracity.io/internal/persistence/archive"
	"terracity.io/internal/persistence/atlas"
	"terracity.io/internal/persistence/eventlog"
	"terracity.io/internal/persistence/snapshot"
	"terracity.io/internal/store"
	"terracity.io/internal/tuning"
)

type renderOpts struct {
	Seed    int64
	Chunks  [4]int // inclusive chunk rectangle cx0,cz0,cx1,cz1
	Workers int
	Out     string

	// Optional sinks.
	Atlas  *atlas.SQLiteAtlas
	Events *eventlog.ChunkLogger
}

func renderCmd(args []string) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	wf := addWorldFlags(fs)
	rectStr := fs.String("chunks", "-2,-2:1,1", "chunk rectangle cx0,cz0:cx1,cz1 (inclusive)")
	workers := fs.Int("workers", 0, "generation workers (default GOMAXPROCS)")
	maxChunks := fs.Int("max_chunks", 4096, "refuse larger renders")
	outPath := fs.String("out", "", "snapshot path (default: <data>/renders/seed_<seed>/<rect>.snap.zst)")
	dbPath := fs.String("db", "", "atlas sqlite path (default: <data>/index/atlas.sqlite)")
	disableDB := fs.Bool("disable_db", false, "do not record features and chunk digests in the atlas")
	disableEvents := fs.Bool("disable_events", false, "do not write per-chunk events")
	doArchive := fs.Bool("archive", false, "copy the snapshot into <data>/archives")
	_ = fs.Parse(args)

	rect, err := parseRect(*rectStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bad -chunks:", err)
		os.Exit(2)
	}
	if n := (rect[2] - rect[0] + 1) * (rect[3] - rect[1] + 1); n > *maxChunks {
		fmt.Fprintf(os.Stderr, "render of %d chunks exceeds -max_chunks=%d\n", n, *maxChunks)
		os.Exit(2)
	}

	logger := newLogger("render")
	tun, gen := wf.load()

	// Runs after the sinks below are closed.
	failed := false
	defer func() {
		if failed {
			os.Exit(1)
		}
	}()
	logger.Printf("tuning: %s", tun.Summary())

	opts := renderOpts{Seed: *wf.seed, Chunks: rect, Workers: *workers, Out: *outPath}
	if opts.Out == "" {
		opts.Out = defaultRenderPath(*wf.data, opts.Seed, rect)
	}
	if !*disableDB {
		a, err := atlas.OpenSQLite(wf.atlasPath(*dbPath), newLogger("atlas"))
		if err != nil {
			fmt.Fprintln(os.Stderr, "open atlas:", err)
			os.Exit(1)
		}
		defer func() {
			if err := a.Close(); err != nil {
				logger.Printf("close atlas: %v", err)
			}
		}()
		opts.Atlas = a
	}
	if !*disableEvents {
		ev := eventlog.NewChunkLogger(*wf.data)
		defer func() {
			if err := ev.Close(); err != nil {
				logger.Printf("close events: %v", err)
			}
		}()
		opts.Events = ev
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	snap, err := render(ctx, tun, gen, opts, logger)
	if err != nil {
		logger.Printf("render: %v", err)
		failed = true
		return
	}
	if *doArchive {
		dst, err := archive.ArchiveRender(*wf.data, opts.Out, snap)
		if err != nil {
			logger.Printf("archive: %v", err)
			failed = true
			return
		}
		logger.Printf("archived to %s", dst)
	}
	printJSON(snap.Header)
}

func defaultRenderPath(dataDir string, seed int64, rect [4]int) string {
	return filepath.Join(dataDir, "renders", fmt.Sprintf("seed_%d", seed),
		fmt.Sprintf("%d_%d_%d_%d.snap.zst", rect[0], rect[1], rect[2], rect[3]))
}

// render generates the chunk rectangle, writes it to opts.Out and feeds the
// optional sinks. The returned snapshot is what was written.
func render(ctx context.Context, tun tuning.Tuning, gen *pipeline.Generator, opts renderOpts, logger *log.Logger) (snapshot.SnapshotV1, error) {
	rect := opts.Chunks
	st := store.NewChunkStore(gen, opts.Seed)
	st.OnGenerated = func(ch *store.Chunk, took time.Duration) {
		sum := summarizeChunk(gen, opts.Seed, ch)
		if opts.Atlas != nil {
			if err := opts.Atlas.RecordChunk(sum); err != nil {
				logger.Printf("atlas chunk %v: %v", ch.Key(), err)
			}
		}
		if opts.Events != nil {
			err := opts.Events.WriteChunk(eventlog.ChunkEvent{
				Seed:      opts.Seed,
				CX:        ch.CX,
				CZ:        ch.CZ,
				Digest:    sum.Digest,
				Buildings: sum.Buildings,
				Millis:    took.Milliseconds(),
			})
			if err != nil {
				logger.Printf("event chunk %v: %v", ch.Key(), err)
			}
		}
	}

	keys := store.AreaKeys(rect[0], rect[1], rect[2], rect[3])
	start := time.Now()
	if err := st.GenerateArea(ctx, keys, opts.Workers, logger); err != nil {
		return snapshot.SnapshotV1{}, fmt.Errorf("generate: %w", err)
	}
	logger.Printf("generated %d chunks in %s", len(keys), time.Since(start).Round(time.Millisecond))

	const n = pipeline.ChunkSize
	feats := survey(gen, opts.Seed, [4]int{rect[0] * n, rect[1] * n, rect[2]*n + n - 1, rect[3]*n + n - 1})
	snap := snapshot.SnapshotV1{
		Header: snapshot.Header{
			Version:   snapshot.Version,
			Seed:      opts.Seed,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
			Bounds:    rect,
		},
		MinY:          st.MinY(),
		Height:        st.MaxY() - st.MinY(),
		Tuning:        tun.Flatten(),
		TuningDigest:  tun.Digest(),
		Palette:       material.Palette(),
		PaletteDigest: material.PaletteDigest(),
		Chunks:        st.ExportChunks(keys),
		Features:      snapshotFeatures(feats),
	}
	snap.Header.Chunks = len(snap.Chunks)
	if err := snapshot.WriteSnapshot(opts.Out, snap); err != nil {
		return snap, fmt.Errorf("write snapshot: %w", err)
	}
	logger.Printf("wrote %s (%d chunks, %d features)", opts.Out, len(snap.Chunks), len(snap.Features))

	if opts.Atlas != nil {
		if err := recordFeatures(opts.Atlas, tun, feats); err != nil {
			return snap, fmt.Errorf("atlas: %w", err)
		}
		if err := opts.Atlas.UpsertMeta(map[string]string{"render.last": opts.Out}); err != nil {
			return snap, fmt.Errorf("atlas: %w", err)
		}
	}
	return snap, nil
}

// summarizeChunk is the atlas row of a generated chunk. Heights are the
// topmost non-air blocks, so trees and buildings count.
func summarizeChunk(gen *pipeline.Generator, seed int64, ch *store.Chunk) atlas.Chunk {
	const n = pipeline.ChunkSize
	lo, hi := ch.MaxY(), ch.MinY()-1
	for lz := 0; lz < n; lz++ {
		for lx := 0; lx < n; lx++ {
			y := ch.HighestBlockY(lx, lz)
			lo = min(lo, y)
			hi = max(hi, y)
		}
	}
	x, z := ch.CX*n+n/2, ch.CZ*n+n/2
	return atlas.Chunk{
		Seed:      seed,
		CX:        ch.CX,
		CZ:        ch.CZ,
		Digest:    ch.DigestHex(),
		Biome:     centerBiome(gen, seed, x, z),
		MinHeight: lo,
		MaxHeight: hi,
		Buildings: len(gen.Buildings(seed, ch.CX, ch.CZ, ch.MinY(), ch.MaxY())),
	}
}

func snapshotFeatures(feats []atlas.Feature) []snapshot.FeatureV1 {
	out := make([]snapshot.FeatureV1, 0, len(feats))
	for _, f := range feats {
		out = append(out, snapshot.FeatureV1{
			Kind:    f.Kind,
			RegionX: f.RegionX,
			RegionZ: f.RegionZ,
			CenterX: f.CenterX,
			CenterZ: f.CenterZ,
			Radius:  f.Radius,
			Height:  f.Height,
		})
	}
	return out
}
