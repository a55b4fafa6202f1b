package eventlog

import "path/filepath"

// ChunkEvent is one generated chunk of an admin render.
type ChunkEvent struct {
	Seed      int64  `json:"seed"`
	CX        int    `json:"cx"`
	CZ        int    `json:"cz"`
	Digest    string `json:"digest"`
	Buildings int    `json:"buildings"`
	Millis    int64  `json:"ms"`
}

// TileEvent is one tile served by the preview transport.
type TileEvent struct {
	Time    string `json:"time"`
	Session string `json:"session"`
	Seed    int64  `json:"seed"`
	CX      int    `json:"cx"`
	CZ      int    `json:"cz"`
	Micros  int64  `json:"us"`
}

type ChunkLogger struct{ w *JSONLZstdWriter }

func NewChunkLogger(dataDir string) *ChunkLogger {
	return &ChunkLogger{w: NewJSONLZstdWriter(filepath.Join(dataDir, "events"), "chunks")}
}

func (l *ChunkLogger) WriteChunk(e ChunkEvent) error { return l.w.Write(e) }
func (l *ChunkLogger) Close() error                  { return l.w.Close() }

type TileLogger struct{ w *JSONLZstdWriter }

func NewTileLogger(dataDir string) *TileLogger {
	return &TileLogger{w: NewJSONLZstdWriter(filepath.Join(dataDir, "events"), "tiles")}
}

func (l *TileLogger) WriteTile(e TileEvent) error { return l.w.Write(e) }
func (l *TileLogger) Close() error                { return l.w.Close() }
