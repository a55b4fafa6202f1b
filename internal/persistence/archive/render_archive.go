package archive

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"terracity.io/internal/persistence/snapshot"
)

// RenderMeta describes one archived render next to its snapshot copy.
type RenderMeta struct {
	Seed          int64  `json:"seed"`
	Bounds        [4]int `json:"bounds"`
	Chunks        int    `json:"chunks"`
	Snapshot      string `json:"snapshot"`
	TuningDigest  string `json:"tuning_digest,omitempty"`
	PaletteDigest string `json:"palette_digest"`
	CreatedAt     string `json:"created_at"`
}

// Dir is the archive directory of one render: archives/seed_<seed>/<bounds>.
func Dir(dataDir string, seed int64, bounds [4]int) string {
	return filepath.Join(dataDir, "archives", fmt.Sprintf("seed_%d", seed),
		fmt.Sprintf("%d_%d_%d_%d", bounds[0], bounds[1], bounds[2], bounds[3]))
}

// ArchiveRender copies a written render snapshot into the archive tree and
// writes meta.json beside it. Re-archiving the same seed and bounds
// replaces the previous copy.
func ArchiveRender(dataDir, snapshotPath string, snap snapshot.SnapshotV1) (string, error) {
	dir := Dir(dataDir, snap.Header.Seed, snap.Header.Bounds)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	dst := filepath.Join(dir, filepath.Base(snapshotPath))
	if err := copyFile(snapshotPath, dst); err != nil {
		return "", err
	}

	meta := RenderMeta{
		Seed:          snap.Header.Seed,
		Bounds:        snap.Header.Bounds,
		Chunks:        len(snap.Chunks),
		Snapshot:      filepath.Base(dst),
		TuningDigest:  snap.TuningDigest,
		PaletteDigest: snap.PaletteDigest,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339Nano),
	}
	b, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, "meta.json"), b, 0o644); err != nil {
		return "", err
	}
	return dst, nil
}

// List returns the archived renders of a seed ordered by bounds.
func List(dataDir string, seed int64) ([]RenderMeta, error) {
	paths, err := filepath.Glob(filepath.Join(dataDir, "archives", fmt.Sprintf("seed_%d", seed), "*", "meta.json"))
	if err != nil {
		return nil, err
	}
	out := make([]RenderMeta, 0, len(paths))
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		var m RenderMeta
		if err := json.Unmarshal(b, &m); err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		for k := 0; k < 4; k++ {
			if out[i].Bounds[k] != out[j].Bounds[k] {
				return out[i].Bounds[k] < out[j].Bounds[k]
			}
		}
		return false
	})
	return out, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
