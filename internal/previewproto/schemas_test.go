package previewproto_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"terracity.io/internal/previewproto"
)

func compile(t *testing.T, name string) *jsonschema.Schema {
	t.Helper()
	s, err := jsonschema.Compile(filepath.Join("schemas", name))
	if err != nil {
		t.Fatalf("compile %s: %v", name, err)
	}
	return s
}

// asDoc mirrors what a client sees on the wire.
func asDoc(t *testing.T, v any) any {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return doc
}

func TestSchemas_ValidateMessages(t *testing.T) {
	wp := previewproto.WorldParams{Seed: 42, ChunkSize: 16, MinY: -64, MaxY: 320, SeaLevel: 63}
	cases := []struct {
		schema string
		msg    any
	}{
		{"hello.schema.json", previewproto.HelloMsg{Type: previewproto.TypeHello, ProtocolVersion: previewproto.Version, ClientName: "viewer", MaxQueue: 8}},
		{"welcome.schema.json", previewproto.WelcomeMsg{Type: previewproto.TypeWelcome, ProtocolVersion: previewproto.Version, SessionID: "s1", WorldParams: wp, MaxChunks: previewproto.MaxChunksPerRequest}},
		{"bootstrap.schema.json", previewproto.BootstrapResponse{ProtocolVersion: previewproto.Version, WorldParams: wp, BiomePalette: []string{"plains"}, BlockPalette: []string{"AIR"}, PaletteDigest: "abc"}},
		{"tile_req.schema.json", previewproto.TileReqMsg{Type: previewproto.TypeTileReq, ProtocolVersion: previewproto.Version, ReqID: "r1", CX0: -1, CZ0: -1, CX1: 0, CZ1: 0}},
		{"tile.schema.json", previewproto.TileMsg{Type: previewproto.TypeTile, ProtocolVersion: previewproto.Version, ReqID: "r1", CX: 3, CZ: -2, Heights: previewproto.EncodeHeights([]int{62, 62}, -64), Biomes: previewproto.EncodeRLE([]uint16{0, 0}), Surfaces: previewproto.EncodeRLE([]uint16{3, 3}), Last: true}},
		{"error.schema.json", previewproto.NewError("r1", previewproto.ErrTooLarge, "too many chunks")},
	}
	for _, tc := range cases {
		s := compile(t, tc.schema)
		if err := s.Validate(asDoc(t, tc.msg)); err != nil {
			t.Fatalf("%s: validate: %v", tc.schema, err)
		}
	}
}

func TestSchemas_RejectBadMessages(t *testing.T) {
	hello := compile(t, "hello.schema.json")
	var doc any
	_ = json.Unmarshal([]byte(`{"type":"HELLO","protocol_version":"0.1","agent_name":"bot"}`), &doc)
	if err := hello.Validate(doc); err == nil {
		t.Fatalf("expected unknown field to be rejected")
	}

	req := compile(t, "tile_req.schema.json")
	_ = json.Unmarshal([]byte(`{"type":"TILE_REQ","protocol_version":"0.1","req_id":"r","cx0":"a","cz0":0,"cx1":0,"cz1":0}`), &doc)
	if err := req.Validate(doc); err == nil {
		t.Fatalf("expected string coordinate to be rejected")
	}
}

func TestDecodeBase(t *testing.T) {
	base, err := previewproto.DecodeBase([]byte(`{"type":"TILE_REQ","protocol_version":"0.1","cx0":1}`))
	if err != nil {
		t.Fatalf("DecodeBase: %v", err)
	}
	if base.Type != previewproto.TypeTileReq || base.ProtocolVersion != previewproto.Version {
		t.Fatalf("unexpected base: %+v", base)
	}
	if _, err := previewproto.DecodeBase([]byte(`not json`)); err == nil {
		t.Fatalf("expected decode error")
	}
}
