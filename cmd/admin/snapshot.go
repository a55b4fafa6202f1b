package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"terracity.io/internal/gen/pipeline"
	"terracity.io/internal/persistence/snapshot"
	"terracity.io/internal/store"
)

func snapshotCmd(args []string) {
	fs := flag.NewFlagSet("snapshot", flag.ExitOnError)
	wf := addWorldFlags(fs)
	chunks := fs.Bool("chunks", false, "print per-chunk digests")
	verify := fs.Bool("verify", false, "check stored digests against the block data")
	regen := fs.Bool("regen", false, "regenerate every chunk with -config and compare digests")
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "missing snapshot path")
		os.Exit(2)
	}
	path := strings.TrimSpace(fs.Arg(0))

	if !*chunks && !*verify && !*regen {
		h, err := snapshot.ReadHeader(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, "read header:", err)
			os.Exit(1)
		}
		printJSON(h)
		return
	}

	snap, err := snapshot.ReadSnapshot(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read snapshot:", err)
		os.Exit(1)
	}
	printJSON(snap.Header)
	if *chunks {
		for _, c := range snap.Chunks {
			fmt.Printf("%d,%d %s\n", c.CX, c.CZ, c.Digest)
		}
	}
	if !*verify && !*regen {
		return
	}

	var gen *pipeline.Generator
	if *regen {
		tun, g := wf.load()
		if d := tun.Digest(); snap.TuningDigest != "" && d != snap.TuningDigest {
			fmt.Fprintf(os.Stderr, "warning: tuning digest %s differs from snapshot %s\n", d, snap.TuningDigest)
		}
		gen = g
	} else {
		p := pipeline.DefaultParams()
		p.MinY, p.MaxY = snap.MinY, snap.MinY+snap.Height
		gen = pipeline.New(p)
	}
	bad, err := verifySnapshot(gen, snap, *regen)
	if err != nil {
		fmt.Fprintln(os.Stderr, "verify:", err)
		os.Exit(1)
	}
	for _, b := range bad {
		fmt.Println("mismatch", b)
	}
	if len(bad) > 0 {
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "verified %d chunks\n", len(snap.Chunks))
}

// verifySnapshot loads the snapshot chunks into a store, which checks every
// stored digest. With regen it also regenerates each chunk and returns the
// keys whose digests differ.
func verifySnapshot(gen *pipeline.Generator, snap snapshot.SnapshotV1, regen bool) ([]store.ChunkKey, error) {
	loaded := store.NewChunkStore(gen, snap.Header.Seed)
	if err := loaded.ImportChunks(snap.Chunks); err != nil {
		return nil, err
	}
	if !regen {
		return nil, nil
	}
	var bad []store.ChunkKey
	for _, c := range snap.Chunks {
		fresh := loaded.GenerateChunk(c.CX, c.CZ)
		if fresh.DigestHex() != c.Digest {
			bad = append(bad, fresh.Key())
		}
	}
	return bad, nil
}
