// Package previewproto defines the JSON messages of the preview transport:
// an HTTP bootstrap document and a WebSocket session that streams terrain
// tiles one chunk at a time.
package previewproto

import "encoding/json"

const Version = "0.1"

// Message types.
const (
	TypeHello   = "HELLO"
	TypeWelcome = "WELCOME"
	TypeTileReq = "TILE_REQ"
	TypeTile    = "TILE"
	TypeError   = "ERROR"
)

// Error codes carried by ERROR messages.
const (
	ErrBadRequest = "E_BAD_REQUEST"
	ErrTooLarge   = "E_TOO_LARGE"
	ErrBadVersion = "E_BAD_VERSION"
)

// MaxChunksPerRequest caps the rectangle of a single TILE_REQ.
const MaxChunksPerRequest = 256

// BaseMessage lets us route unknown JSON messages by type.
type BaseMessage struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version,omitempty"`
}

func DecodeBase(b []byte) (BaseMessage, error) {
	var m BaseMessage
	err := json.Unmarshal(b, &m)
	return m, err
}

// HTTP response for GET /v1/bootstrap.
type BootstrapResponse struct {
	ProtocolVersion string      `json:"protocol_version"`
	WorldParams     WorldParams `json:"world_params"`
	BiomePalette    []string    `json:"biome_palette"`
	BlockPalette    []string    `json:"block_palette"`
	PaletteDigest   string      `json:"palette_digest"`
	TuningDigest    string      `json:"tuning_digest,omitempty"`
}

type WorldParams struct {
	Seed      int64 `json:"seed"`
	ChunkSize int   `json:"chunk_size"`
	MinY      int   `json:"min_y"`
	MaxY      int   `json:"max_y"`
	SeaLevel  int   `json:"sea_level"`
}

// HELLO (client -> server)
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ClientName      string `json:"client_name,omitempty"`
	// MaxQueue bounds the outgoing message queue of the session.
	MaxQueue int `json:"max_queue,omitempty"`
}

// WELCOME (server -> client)
type WelcomeMsg struct {
	Type            string      `json:"type"`
	ProtocolVersion string      `json:"protocol_version"`
	SessionID       string      `json:"session_id"`
	WorldParams     WorldParams `json:"world_params"`
	MaxChunks       int         `json:"max_chunks"`
}

// TILE_REQ (client -> server). The chunk rectangle is inclusive.
type TileReqMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ReqID           string `json:"req_id"`
	CX0             int    `json:"cx0"`
	CZ0             int    `json:"cz0"`
	CX1             int    `json:"cx1"`
	CZ1             int    `json:"cz1"`
}

// TILE (server -> client). Each field is a base64 RLE of ChunkSize*ChunkSize
// values in z-major order (index = lz*ChunkSize + lx). Heights are offset
// by MinY, biomes index BiomePalette and surfaces index BlockPalette.
type TileMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ReqID           string `json:"req_id"`
	CX              int    `json:"cx"`
	CZ              int    `json:"cz"`
	Heights         string `json:"heights"`
	Biomes          string `json:"biomes"`
	Surfaces        string `json:"surfaces"`
	// Last is set on the final tile of a request.
	Last bool `json:"last,omitempty"`
}

// ERROR (server -> client)
type ErrorMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ReqID           string `json:"req_id,omitempty"`
	Code            string `json:"code"`
	Message         string `json:"message"`
}

func NewError(reqID, code, msg string) ErrorMsg {
	return ErrorMsg{
		Type:            TypeError,
		ProtocolVersion: Version,
		ReqID:           reqID,
		Code:            code,
		Message:         msg,
	}
}
