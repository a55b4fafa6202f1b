package snapshot

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

const Version = 1

// Header is written as a JSON line ahead of the gob body so tools can
// identify a snapshot without decoding the chunks.
type Header struct {
	Version   int    `json:"version"`
	Seed      int64  `json:"seed"`
	CreatedAt string `json:"created_at"`
	Chunks    int    `json:"chunks"`
	// Bounds is the inclusive chunk rectangle cx0,cz0,cx1,cz1.
	Bounds [4]int `json:"bounds"`
}

type SnapshotV1 struct {
	Header Header `json:"header"`

	MinY   int `json:"min_y"`
	Height int `json:"height"`

	// Flattened worldgen tuning the chunks were generated with.
	Tuning       map[string]string `json:"tuning,omitempty"`
	TuningDigest string            `json:"tuning_digest,omitempty"`

	Palette       []string `json:"palette"`
	PaletteDigest string   `json:"palette_digest"`

	Chunks   []ChunkV1   `json:"chunks"`
	Features []FeatureV1 `json:"features,omitempty"`
}

type ChunkV1 struct {
	CX     int      `json:"cx"`
	CZ     int      `json:"cz"`
	MinY   int      `json:"min_y"`
	Height int      `json:"height"`
	Blocks []uint16 `json:"blocks"`
	Digest string   `json:"digest"`
}

// FeatureV1 is a city or volcano that overlaps the snapshot area.
type FeatureV1 struct {
	Kind    string `json:"kind"`
	RegionX int    `json:"region_x"`
	RegionZ int    `json:"region_z"`
	CenterX int    `json:"center_x"`
	CenterZ int    `json:"center_z"`
	Radius  int    `json:"radius"`
	Height  int    `json:"height,omitempty"`
}

func WriteSnapshot(path string, snap SnapshotV1) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}

	if snap.Header.Version == 0 {
		snap.Header.Version = Version
	}
	snap.Header.Chunks = len(snap.Chunks)

	bw := bufio.NewWriterSize(enc, 256*1024)
	hb, _ := json.Marshal(snap.Header)
	if _, err := bw.Write(hb); err != nil {
		_ = enc.Close()
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		_ = enc.Close()
		return err
	}
	if err := gob.NewEncoder(bw).Encode(&snap); err != nil {
		_ = enc.Close()
		return fmt.Errorf("gob encode: %w", err)
	}
	if err := bw.Flush(); err != nil {
		_ = enc.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return f.Sync()
}

func ReadSnapshot(path string) (SnapshotV1, error) {
	var snap SnapshotV1
	f, err := os.Open(path)
	if err != nil {
		return snap, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return snap, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)

	// The gob body repeats the header.
	if _, err := br.ReadBytes('\n'); err != nil {
		return snap, fmt.Errorf("read header: %w", err)
	}
	if err := gob.NewDecoder(br).Decode(&snap); err != nil {
		return snap, fmt.Errorf("gob decode: %w", err)
	}
	if snap.Header.Version != Version {
		return snap, fmt.Errorf("unsupported snapshot version %d", snap.Header.Version)
	}
	return snap, nil
}

// ReadHeader decodes only the leading JSON header line.
func ReadHeader(path string) (Header, error) {
	var h Header
	f, err := os.Open(path)
	if err != nil {
		return h, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return h, err
	}
	defer dec.Close()

	line, err := bufio.NewReader(dec).ReadBytes('\n')
	if err != nil {
		return h, fmt.Errorf("read header: %w", err)
	}
	if err := json.Unmarshal(line, &h); err != nil {
		return h, fmt.Errorf("decode header: %w", err)
	}
	return h, nil
}
