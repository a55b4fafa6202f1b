package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"terracity.io/internal/gen/pipeline"
	"terracity.io/internal/tuning"
)

const usage = `usage: admin <command> [flags]

commands:
  info      print the flattened worldgen configuration
  height    probe one column (-x -z)
  biome     print the biome of one column (-x -z)
  survey    record cities and volcanoes of a block rectangle in the atlas
  render    generate a chunk rectangle into a snapshot
  db        query the atlas (features|chunks|meta)
  snapshot  print a snapshot header and chunk digests
  events    print render and preview event logs
  status    query a running preview server`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	args := os.Args[2:]
	switch os.Args[1] {
	case "info":
		infoCmd(args)
	case "height":
		heightCmd(args)
	case "biome":
		biomeCmd(args)
	case "survey":
		surveyCmd(args)
	case "render":
		renderCmd(args)
	case "db":
		dbCmd(args)
	case "snapshot":
		snapshotCmd(args)
	case "events":
		eventsCmd(args)
	case "status":
		statusCmd(args)
	case "-h", "-help", "--help", "help":
		fmt.Println(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s\n", os.Args[1], usage)
		os.Exit(2)
	}
}

// worldFlags are shared by every command that needs a generator.
type worldFlags struct {
	seed   *int64
	config *string
	data   *string
}

func addWorldFlags(fs *flag.FlagSet) worldFlags {
	return worldFlags{
		seed:   fs.Int64("seed", 42, "world seed"),
		config: fs.String("config", "./configs/worldgen.yaml", "path to worldgen.yaml (defaults are used when the file does not exist)"),
		data:   fs.String("data", "./data", "runtime data directory"),
	}
}

func (w worldFlags) load() (tuning.Tuning, *pipeline.Generator) {
	tun, err := loadTuning(*w.config)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load tuning:", err)
		os.Exit(1)
	}
	for _, m := range tun.UnknownMaterials() {
		fmt.Fprintf(os.Stderr, "warning: unknown material %s, using fallback\n", m)
	}
	return tun, pipeline.New(tun.Resolve())
}

func (w worldFlags) atlasPath(override string) string {
	if p := strings.TrimSpace(override); p != "" {
		return p
	}
	return filepath.Join(*w.data, "index", "atlas.sqlite")
}

func loadTuning(path string) (tuning.Tuning, error) {
	path = strings.TrimSpace(path)
	if path != "" {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			path = ""
		}
	}
	return tuning.Load(path)
}

// parseRect parses "x0,z0:x1,z1" into an ordered inclusive rectangle.
func parseRect(s string) (rect [4]int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return rect, fmt.Errorf("expected x0,z0:x1,z1")
	}
	a, err := parseVec2(parts[0])
	if err != nil {
		return rect, err
	}
	b, err := parseVec2(parts[1])
	if err != nil {
		return rect, err
	}
	for i := 0; i < 2; i++ {
		if a[i] <= b[i] {
			rect[i], rect[i+2] = a[i], b[i]
		} else {
			rect[i], rect[i+2] = b[i], a[i]
		}
	}
	return rect, nil
}

func parseVec2(s string) ([2]int, error) {
	var v [2]int
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return v, fmt.Errorf("expected x,z")
	}
	for i := 0; i < 2; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return v, err
		}
		v[i] = n
	}
	return v, nil
}

func newLogger(name string) *log.Logger {
	return log.New(os.Stderr, "["+name+"] ", log.LstdFlags|log.Lmicroseconds)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
