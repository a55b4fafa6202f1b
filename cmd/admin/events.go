package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"terracity.io/internal/persistence/eventlog"
)

func eventsCmd(args []string) {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	dataDir := fs.String("data", "./data", "runtime data directory")
	kind := fs.String("kind", "chunks", "event stream: chunks|tiles")
	limit := fs.Int("limit", 20, "print the last N events (0 for all)")
	_ = fs.Parse(args)

	if *kind != "chunks" && *kind != "tiles" {
		fmt.Fprintf(os.Stderr, "unknown -kind %q\n", *kind)
		os.Exit(2)
	}
	lines, err := tailEvents(filepath.Join(*dataDir, "events"), *kind, *limit)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read events:", err)
		os.Exit(1)
	}
	for _, l := range lines {
		fmt.Println(l)
	}
}

// tailEvents returns the last limit lines across the rotated files of a
// stream, oldest first.
func tailEvents(dir, prefix string, limit int) ([]string, error) {
	files, err := eventlog.Files(dir, prefix)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, f := range files {
		err := eventlog.ReadFile(f, func(line []byte) error {
			out = append(out, string(line))
			if limit > 0 && len(out) > limit {
				out = out[1:]
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
	}
	return out, nil
}
