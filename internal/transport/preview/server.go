// Package preview serves a read-only terrain preview: a JSON bootstrap
// document and a WebSocket session that answers tile requests with
// per-chunk height, biome and surface maps.
package preview

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"terracity.io/internal/gen/biome"
	"terracity.io/internal/gen/material"
	"terracity.io/internal/gen/pipeline"
	"terracity.io/internal/persistence/eventlog"
	"terracity.io/internal/previewproto"
	"terracity.io/internal/store"
)

type Config struct {
	Seed         int64
	TuningDigest string

	// Tiles receives one event per served tile. Optional.
	Tiles *eventlog.TileLogger
}

type Server struct {
	gen *pipeline.Generator
	cfg Config
	log *log.Logger

	biomeIndex map[biome.Label]uint16
	upgrader   websocket.Upgrader
	sessions   atomic.Int64
}

func NewServer(gen *pipeline.Generator, cfg Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	idx := map[biome.Label]uint16{}
	for i, l := range gen.ListBiomes() {
		idx[l] = uint16(i)
	}
	return &Server{
		gen:        gen,
		cfg:        cfg,
		log:        logger,
		biomeIndex: idx,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

// ActiveSessions is the number of open WebSocket sessions.
func (s *Server) ActiveSessions() int64 { return s.sessions.Load() }

func (s *Server) worldParams() previewproto.WorldParams {
	p := s.gen.Params()
	return previewproto.WorldParams{
		Seed:      s.cfg.Seed,
		ChunkSize: pipeline.ChunkSize,
		MinY:      p.MinY,
		MaxY:      p.MaxY,
		SeaLevel:  p.Terrain.SeaLevel,
	}
}

func (s *Server) Bootstrap() previewproto.BootstrapResponse {
	labels := s.gen.ListBiomes()
	biomes := make([]string, len(labels))
	for i, l := range labels {
		biomes[i] = string(l)
	}
	return previewproto.BootstrapResponse{
		ProtocolVersion: previewproto.Version,
		WorldParams:     s.worldParams(),
		BiomePalette:    biomes,
		BlockPalette:    material.Palette(),
		PaletteDigest:   material.PaletteDigest(),
		TuningDigest:    s.cfg.TuningDigest,
	}
}

func (s *Server) BootstrapHandler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			rw.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		rw.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(rw).Encode(s.Bootstrap())
	}
}

// Tile computes the preview maps of one chunk from the pipeline queries.
// Heights are BaseHeight, so structures and trees do not show.
func (s *Server) Tile(reqID string, cx, cz int) previewproto.TileMsg {
	const n = pipeline.ChunkSize
	p := s.gen.Params()
	seed := s.cfg.Seed
	heights := make([]int, n*n)
	biomes := make([]uint16, n*n)
	surfaces := make([]uint16, n*n)
	for lz := 0; lz < n; lz++ {
		for lx := 0; lx < n; lx++ {
			x, z := cx*n+lx, cz*n+lz
			h := s.gen.BaseHeight(seed, x, z)
			i := lz*n + lx
			heights[i] = h
			biomes[i] = s.biomeIndex[s.gen.ClassifyBiome(seed, x, h, z)]
			surfaces[i] = uint16(s.gen.SurfaceAt(seed, x, z))
		}
	}
	return previewproto.TileMsg{
		Type:            previewproto.TypeTile,
		ProtocolVersion: previewproto.Version,
		ReqID:           reqID,
		CX:              cx,
		CZ:              cz,
		Heights:         previewproto.EncodeHeights(heights, p.MinY),
		Biomes:          previewproto.EncodeRLE(biomes),
		Surfaces:        previewproto.EncodeRLE(surfaces),
	}
}

func (s *Server) WSHandler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		sid, out := s.handshake(conn)
		if sid == "" {
			return
		}
		s.sessions.Add(1)
		defer s.sessions.Add(-1)
		s.log.Printf("session %s opened from %s", sid, r.RemoteAddr)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Writer goroutine.
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case b := <-out:
					_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						cancel()
						return
					}
				}
			}
		}()

		send := func(v any) bool {
			b, err := json.Marshal(v)
			if err != nil {
				return false
			}
			select {
			case out <- b:
				return true
			case <-ctx.Done():
				return false
			}
		}

		// Reader loop. Tiles are computed here, so a session serves one
		// request at a time.
		served := 0
		for ctx.Err() == nil {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				break
			}
			base, err := previewproto.DecodeBase(msg)
			if err != nil {
				send(previewproto.NewError("", previewproto.ErrBadRequest, "bad json"))
				continue
			}
			if base.Type != previewproto.TypeTileReq {
				send(previewproto.NewError("", previewproto.ErrBadRequest, fmt.Sprintf("unexpected message type %q", base.Type)))
				continue
			}
			var req previewproto.TileReqMsg
			if err := json.Unmarshal(msg, &req); err != nil {
				send(previewproto.NewError("", previewproto.ErrBadRequest, "bad TILE_REQ"))
				continue
			}
			if req.ProtocolVersion != previewproto.Version {
				send(previewproto.NewError(req.ReqID, previewproto.ErrBadVersion, "bad protocol_version"))
				continue
			}
			keys, ok := requestKeys(req)
			if !ok {
				send(previewproto.NewError(req.ReqID, previewproto.ErrTooLarge, fmt.Sprintf("request exceeds %d chunks", previewproto.MaxChunksPerRequest)))
				continue
			}
			for i, k := range keys {
				start := time.Now()
				tile := s.Tile(req.ReqID, k.CX, k.CZ)
				tile.Last = i == len(keys)-1
				s.recordTile(sid, k, time.Since(start))
				if !send(tile) {
					break
				}
				served++
			}
		}
		s.log.Printf("session %s closed after %d tiles", sid, served)
	}
}

func requestKeys(req previewproto.TileReqMsg) ([]store.ChunkKey, bool) {
	w, ok := span(req.CX0, req.CX1)
	if !ok {
		return nil, false
	}
	h, ok := span(req.CZ0, req.CZ1)
	if !ok || w*h > previewproto.MaxChunksPerRequest {
		return nil, false
	}
	return store.AreaKeys(req.CX0, req.CZ0, req.CX1, req.CZ1), true
}

func (s *Server) recordTile(sid string, k store.ChunkKey, d time.Duration) {
	if s.cfg.Tiles == nil {
		return
	}
	err := s.cfg.Tiles.WriteTile(eventlog.TileEvent{
		Time:    time.Now().UTC().Format(time.RFC3339Nano),
		Session: sid,
		Seed:    s.cfg.Seed,
		CX:      k.CX,
		CZ:      k.CZ,
		Micros:  d.Microseconds(),
	})
	if err != nil {
		s.log.Printf("tile log: %v", err)
	}
}

func (s *Server) handshake(conn *websocket.Conn) (string, chan []byte) {
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return "", nil
	}

	base, err := previewproto.DecodeBase(msg)
	if err != nil || base.Type != previewproto.TypeHello {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "expected HELLO"), time.Now().Add(time.Second))
		return "", nil
	}
	var hello previewproto.HelloMsg
	if err := json.Unmarshal(msg, &hello); err != nil {
		return "", nil
	}
	if hello.ProtocolVersion != previewproto.Version {
		_ = writeJSON(conn, previewproto.NewError("", previewproto.ErrBadVersion, "bad protocol_version"))
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "bad protocol_version"), time.Now().Add(time.Second))
		return "", nil
	}

	maxQ := hello.MaxQueue
	if maxQ <= 0 {
		maxQ = 8
	}
	if maxQ > 64 {
		maxQ = 64
	}

	sid := uuid.NewString()
	welcome := previewproto.WelcomeMsg{
		Type:            previewproto.TypeWelcome,
		ProtocolVersion: previewproto.Version,
		SessionID:       sid,
		WorldParams:     s.worldParams(),
		MaxChunks:       previewproto.MaxChunksPerRequest,
	}
	if err := writeJSON(conn, welcome); err != nil {
		return "", nil
	}
	return sid, make(chan []byte, maxQ)
}

func writeJSON(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, b)
}

// span is the inclusive length of [a,b] when it fits one request.
// The difference is taken unsigned so extreme bounds cannot wrap.
func span(a, b int) (int, bool) {
	if b < a {
		a, b = b, a
	}
	d := uint64(b) - uint64(a)
	if d >= previewproto.MaxChunksPerRequest {
		return 0, false
	}
	return int(d) + 1, true
}
