package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"

	"terracity.io/internal/persistence/atlas"
	"terracity.io/internal/tuning"
)

func dbCmd(args []string) {
	fs := flag.NewFlagSet("db", flag.ExitOnError)
	wf := addWorldFlags(fs)
	dbPath := fs.String("db", "", "atlas sqlite path (default: <data>/index/atlas.sqlite)")
	kind := fs.String("kind", "", "feature kind filter: city|volcano (features)")
	limit := fs.Int("limit", 20, "result limit (0 for all)")
	_ = fs.Parse(args)

	q := "features"
	if fs.NArg() > 0 {
		q = strings.TrimSpace(fs.Arg(0))
	}

	path := wf.atlasPath(*dbPath)
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintln(os.Stderr, "atlas:", err)
		os.Exit(1)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open:", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx := context.Background()
	switch q {
	case "features":
		fts, err := atlas.QueryFeatures(ctx, db, *wf.seed, strings.TrimSpace(*kind), *limit)
		if err != nil {
			fmt.Fprintln(os.Stderr, "query:", err)
			os.Exit(1)
		}
		for _, f := range fts {
			printJSON(f)
		}
	case "chunks":
		chs, err := atlas.QueryChunks(ctx, db, *wf.seed, *limit)
		if err != nil {
			fmt.Fprintln(os.Stderr, "query:", err)
			os.Exit(1)
		}
		for _, c := range chs {
			printJSON(c)
		}
	case "meta":
		kv, err := atlas.QueryMeta(ctx, db)
		if err != nil {
			fmt.Fprintln(os.Stderr, "query:", err)
			os.Exit(1)
		}
		for _, k := range tuning.SortedKeys(kv) {
			fmt.Printf("%s=%s\n", k, kv[k])
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown query %q (want features|chunks|meta)\n", q)
		os.Exit(2)
	}
}
