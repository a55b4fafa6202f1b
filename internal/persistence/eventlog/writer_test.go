package eventlog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
)

func TestWriterRotatesHourlyAndReadsBack(t *testing.T) {
	dir := t.TempDir()
	w := NewJSONLZstdWriter(dir, "chunks")
	clock := time.Date(2026, 3, 1, 10, 59, 0, 0, time.UTC)
	w.now = func() time.Time { return clock }

	for i := 0; i < 3; i++ {
		if err := w.Write(ChunkEvent{Seed: 1, CX: i, Digest: "d"}); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	clock = clock.Add(2 * time.Minute)
	if err := w.Write(ChunkEvent{Seed: 1, CX: 99}); err != nil {
		t.Fatalf("write after rotation: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	files, err := Files(dir, "chunks")
	if err != nil {
		t.Fatalf("files: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 hourly files, got %v", files)
	}
	if filepath.Base(files[0]) != "chunks-2026-03-01-10.jsonl.zst" {
		t.Fatalf("unexpected first file %s", files[0])
	}

	var got []ChunkEvent
	if err := ReadFile(files[0], func(line []byte) error {
		var e ChunkEvent
		if err := json.Unmarshal(line, &e); err != nil {
			return err
		}
		got = append(got, e)
		return nil
	}); err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 3 || got[2].CX != 2 {
		t.Fatalf("unexpected events: %+v", got)
	}
}

func TestAppendAcrossSessions(t *testing.T) {
	dir := t.TempDir()
	clock := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for session := 0; session < 2; session++ {
		w := NewJSONLZstdWriter(dir, "tiles")
		w.now = func() time.Time { return clock }
		if err := w.Write(TileEvent{Session: "s", CX: session}); err != nil {
			t.Fatalf("write: %v", err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	}
	files, _ := Files(dir, "tiles")
	if len(files) != 1 {
		t.Fatalf("expected one file, got %v", files)
	}
	n := 0
	if err := ReadFile(files[0], func([]byte) error { n++; return nil }); err != nil {
		t.Fatalf("read: %v", err)
	}
	if n != 2 {
		t.Fatalf("lines: got %d want 2", n)
	}
}

func TestReadFileKeepsUnterminatedLastLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chunks-2026-03-01-10.jsonl.zst")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := enc.Write([]byte("{\"cx\":1}\n\n{\"cx\":2}")); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	var got []string
	if err := ReadFile(path, func(line []byte) error {
		got = append(got, string(line))
		return nil
	}); err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 2 || got[0] != `{"cx":1}` || got[1] != `{"cx":2}` {
		t.Fatalf("unexpected lines: %q", got)
	}
}
