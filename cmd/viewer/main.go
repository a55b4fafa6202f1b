// Command viewer connects to a preview server, streams the tiles of a chunk
// rectangle and prints them as a text map.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"terracity.io/internal/gen/material"
	"terracity.io/internal/previewproto"
)

func main() {
	var (
		url     = flag.String("url", "ws://localhost:8080/v1/ws", "ws url")
		name    = flag.String("name", "viewer", "client name")
		chunks  = flag.String("chunks", "-2,-2:1,1", "chunk rectangle cx0,cz0:cx1,cz1 (inclusive)")
		step    = flag.Int("step", 2, "blocks per character")
		timeout = flag.Duration("timeout", 30*time.Second, "overall timeout")
	)
	flag.Parse()

	logger := log.New(os.Stderr, "[viewer] ", log.LstdFlags|log.Lmicroseconds)
	rect, err := parseChunkRect(*chunks)
	if err != nil {
		logger.Fatalf("bad -chunks: %v", err)
	}

	conn, _, err := websocket.DefaultDialer.Dial(*url, nil)
	if err != nil {
		logger.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	welcome, tiles, err := fetchTiles(conn, *name, rect, time.Now().Add(*timeout))
	if err != nil {
		logger.Fatalf("fetch: %v", err)
	}
	logger.Printf("WELCOME session=%s seed=%d sea_level=%d, %d tiles", welcome.SessionID, welcome.WorldParams.Seed, welcome.WorldParams.SeaLevel, len(tiles))
	if err := writeMap(os.Stdout, welcome.WorldParams, rect, tiles, *step); err != nil {
		logger.Fatalf("map: %v", err)
	}
}

// fetchTiles runs one session: HELLO, WELCOME, then a single TILE_REQ whose
// tiles are collected until the last one arrives.
func fetchTiles(conn *websocket.Conn, name string, rect [4]int, deadline time.Time) (previewproto.WelcomeMsg, []previewproto.TileMsg, error) {
	var welcome previewproto.WelcomeMsg
	_ = conn.SetReadDeadline(deadline)

	hello := previewproto.HelloMsg{
		Type:            previewproto.TypeHello,
		ProtocolVersion: previewproto.Version,
		ClientName:      name,
		MaxQueue:        32,
	}
	if err := conn.WriteJSON(hello); err != nil {
		return welcome, nil, fmt.Errorf("send HELLO: %w", err)
	}
	req := previewproto.TileReqMsg{
		Type:            previewproto.TypeTileReq,
		ProtocolVersion: previewproto.Version,
		ReqID:           "map",
		CX0:             rect[0],
		CZ0:             rect[1],
		CX1:             rect[2],
		CZ1:             rect[3],
	}

	var tiles []previewproto.TileMsg
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return welcome, tiles, err
		}
		base, err := previewproto.DecodeBase(msg)
		if err != nil {
			continue
		}
		switch base.Type {
		case previewproto.TypeWelcome:
			if err := json.Unmarshal(msg, &welcome); err != nil {
				return welcome, nil, fmt.Errorf("decode WELCOME: %w", err)
			}
			if err := conn.WriteJSON(req); err != nil {
				return welcome, nil, fmt.Errorf("send TILE_REQ: %w", err)
			}
		case previewproto.TypeTile:
			var t previewproto.TileMsg
			if err := json.Unmarshal(msg, &t); err != nil {
				return welcome, tiles, fmt.Errorf("decode TILE: %w", err)
			}
			tiles = append(tiles, t)
			if t.Last {
				return welcome, tiles, nil
			}
		case previewproto.TypeError:
			var e previewproto.ErrorMsg
			_ = json.Unmarshal(msg, &e)
			return welcome, tiles, fmt.Errorf("%s: %s", e.Code, e.Message)
		}
	}
}

// writeMap prints one character per step x step blocks, north (low z) at
// the top. Each cell shows its top-left column.
func writeMap(w io.Writer, wp previewproto.WorldParams, rect [4]int, tiles []previewproto.TileMsg, step int) error {
	n := wp.ChunkSize
	if n <= 0 {
		n = 16
	}
	if step <= 0 {
		step = 1
	}
	type column struct {
		h       int
		surface material.ID
	}
	cols := map[[2]int]column{}
	for _, t := range tiles {
		hs, err := previewproto.DecodeHeights(t.Heights, wp.MinY, n*n)
		if err != nil {
			return fmt.Errorf("tile %d,%d heights: %w", t.CX, t.CZ, err)
		}
		ss, err := previewproto.DecodeRLE(t.Surfaces, n*n)
		if err != nil {
			return fmt.Errorf("tile %d,%d surfaces: %w", t.CX, t.CZ, err)
		}
		if len(hs) != n*n || len(ss) != n*n {
			return fmt.Errorf("tile %d,%d: short tile", t.CX, t.CZ)
		}
		for i := range hs {
			x, z := t.CX*n+i%n, t.CZ*n+i/n
			cols[[2]int{x, z}] = column{h: hs[i], surface: material.ID(ss[i])}
		}
	}

	x0, z0 := rect[0]*n, rect[1]*n
	x1, z1 := (rect[2]+1)*n, (rect[3]+1)*n
	var b strings.Builder
	for z := z0; z < z1; z += step {
		for x := x0; x < x1; x += step {
			c, ok := cols[[2]int{x, z}]
			if !ok {
				b.WriteByte(' ')
				continue
			}
			b.WriteByte(glyph(c.surface, c.h, wp.SeaLevel))
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func glyph(id material.ID, h, sea int) byte {
	switch id {
	case material.Water:
		return '~'
	case material.Lava:
		return '!'
	case material.Sand, material.RedSand, material.Sandstone:
		return ':'
	case material.SnowBlock:
		return '*'
	case material.StoneBricks, material.Andesite:
		return '#'
	}
	switch {
	case h >= sea+60:
		return '^'
	case h >= sea+25:
		return 'n'
	default:
		return '.'
	}
}

func parseChunkRect(s string) ([4]int, error) {
	var rect [4]int
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return rect, fmt.Errorf("expected cx0,cz0:cx1,cz1")
	}
	var vals []int
	for _, p := range parts {
		xz := strings.Split(strings.TrimSpace(p), ",")
		if len(xz) != 2 {
			return rect, fmt.Errorf("expected cx,cz")
		}
		for _, v := range xz {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return rect, err
			}
			vals = append(vals, n)
		}
	}
	rect = [4]int{min(vals[0], vals[2]), min(vals[1], vals[3]), max(vals[0], vals[2]), max(vals[1], vals[3])}
	return rect, nil
}
