package previewproto

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
)

// EncodeRLE encodes values as base64 of (value, run) uvarint pairs.
func EncodeRLE(vals []uint16) string {
	var buf bytes.Buffer
	var tmp [binary.MaxVarintLen64]byte

	for i := 0; i < len(vals); {
		v := vals[i]
		run := 1
		for i+run < len(vals) && vals[i+run] == v {
			run++
		}
		n := binary.PutUvarint(tmp[:], uint64(v))
		buf.Write(tmp[:n])
		n = binary.PutUvarint(tmp[:], uint64(run))
		buf.Write(tmp[:n])
		i += run
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

// DecodeRLE reverses EncodeRLE. limit caps the decoded length; 0 means no
// cap.
func DecodeRLE(b64 string, limit int) ([]uint16, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, err
	}
	var out []uint16
	for i := 0; i < len(raw); {
		v, n := binary.Uvarint(raw[i:])
		if n <= 0 {
			return nil, fmt.Errorf("bad varint at %d", i)
		}
		i += n
		run, n := binary.Uvarint(raw[i:])
		if n <= 0 {
			return nil, fmt.Errorf("bad varint at %d", i)
		}
		i += n
		if v > 0xFFFF {
			return nil, fmt.Errorf("value too large: %d", v)
		}
		if run == 0 {
			return nil, fmt.Errorf("zero run at %d", i)
		}
		if limit > 0 && uint64(len(out))+run > uint64(limit) {
			return nil, fmt.Errorf("decoded length exceeds %d", limit)
		}
		for k := uint64(0); k < run; k++ {
			out = append(out, uint16(v))
		}
	}
	return out, nil
}

// EncodeHeights offsets heights by minY so they fit the unsigned encoding.
// Heights below minY are stored as 0.
func EncodeHeights(hs []int, minY int) string {
	vals := make([]uint16, len(hs))
	for i, h := range hs {
		d := h - minY
		switch {
		case d < 0:
			d = 0
		case d > 0xFFFF:
			d = 0xFFFF
		}
		vals[i] = uint16(d)
	}
	return EncodeRLE(vals)
}

func DecodeHeights(b64 string, minY, limit int) ([]int, error) {
	vals, err := DecodeRLE(b64, limit)
	if err != nil {
		return nil, err
	}
	hs := make([]int, len(vals))
	for i, v := range vals {
		hs[i] = int(v) + minY
	}
	return hs, nil
}
