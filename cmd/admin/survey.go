package main

import (
	"flag"
	"fmt"
	"os"

	"terracity.io/internal/gen/material"
	"terracity.io/internal/gen/pipeline"
	"terracity.io/internal/persistence/atlas"
	"terracity.io/internal/tuning"
)

func surveyCmd(args []string) {
	fs := flag.NewFlagSet("survey", flag.ExitOnError)
	wf := addWorldFlags(fs)
	rectStr := fs.String("rect", "-2048,-2048:2047,2047", "block rectangle x0,z0:x1,z1 (inclusive)")
	dbPath := fs.String("db", "", "atlas sqlite path (default: <data>/index/atlas.sqlite)")
	dry := fs.Bool("dry", false, "print features without writing the atlas")
	_ = fs.Parse(args)

	rect, err := parseRect(*rectStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bad -rect:", err)
		os.Exit(2)
	}
	tun, gen := wf.load()
	feats := survey(gen, *wf.seed, rect)

	if !*dry {
		a, err := atlas.OpenSQLite(wf.atlasPath(*dbPath), newLogger("atlas"))
		if err != nil {
			fmt.Fprintln(os.Stderr, "open atlas:", err)
			os.Exit(1)
		}
		err = recordFeatures(a, tun, feats)
		if cerr := a.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "record:", err)
			os.Exit(1)
		}
	}
	for _, f := range feats {
		printJSON(f)
	}
	fmt.Fprintf(os.Stderr, "survey: %d features in %v\n", len(feats), rect)
}

// survey lists the cities and volcanoes whose home cells overlap the block
// rectangle, cities first.
func survey(gen *pipeline.Generator, seed int64, rect [4]int) []atlas.Feature {
	var out []atlas.Feature
	for _, c := range gen.Cities(seed, rect[0], rect[1], rect[2], rect[3]) {
		out = append(out, atlas.Feature{
			Seed:    seed,
			Kind:    atlas.KindCity,
			RegionX: c.RegionX,
			RegionZ: c.RegionZ,
			CenterX: c.CenterX,
			CenterZ: c.CenterZ,
			Radius:  c.Radius,
			Height:  c.BaseHeight,
			Biome:   centerBiome(gen, seed, c.CenterX, c.CenterZ),
		})
	}
	vh := gen.Params().Terrain.Volcano.Height
	for _, v := range gen.Volcanoes(seed, rect[0], rect[1], rect[2], rect[3]) {
		out = append(out, atlas.Feature{
			Seed:    seed,
			Kind:    atlas.KindVolcano,
			RegionX: v.RegionX,
			RegionZ: v.RegionZ,
			CenterX: v.CenterX,
			CenterZ: v.CenterZ,
			Radius:  v.Radius,
			Height:  vh,
			Biome:   centerBiome(gen, seed, v.CenterX, v.CenterZ),
		})
	}
	return out
}

func centerBiome(gen *pipeline.Generator, seed int64, x, z int) string {
	return string(gen.ClassifyBiome(seed, x, gen.BaseHeight(seed, x, z), z))
}

func recordFeatures(a *atlas.SQLiteAtlas, tun tuning.Tuning, feats []atlas.Feature) error {
	for _, f := range feats {
		if err := a.RecordFeature(f); err != nil {
			return err
		}
	}
	return a.UpsertMeta(tuningMeta(tun))
}

// tuningMeta is the atlas meta row set describing how the rows were made.
func tuningMeta(tun tuning.Tuning) map[string]string {
	flat := tun.Flatten()
	kv := make(map[string]string, len(flat)+2)
	for k, v := range flat {
		kv["tuning."+k] = v
	}
	kv["tuning_digest"] = tun.Digest()
	kv["palette_digest"] = material.PaletteDigest()
	return kv
}
