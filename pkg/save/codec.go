package save

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// CompressedExt marks save names whose payload is zstd compressed.
const CompressedExt = ".zst"

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Codec converts snapshots to and from their stored form: indented JSON,
// optionally zstd compressed.
type Codec struct {
	Compress bool
}

// CodecFor returns the codec matching a save name.
func CodecFor(name string) Codec {
	return Codec{Compress: strings.HasSuffix(name, CompressedExt)}
}

func (c Codec) Encode(s *Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %v", err)
	}
	if !c.Compress {
		return data, nil
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %v", err)
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}

// Decode parses data whether or not it is compressed and normalizes the
// result. Malformed data is an error.
func (c Codec) Decode(data []byte) (*Snapshot, error) {
	if bytes.HasPrefix(data, zstdMagic) {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd decoder: %v", err)
		}
		defer dec.Close()
		data, err = dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress snapshot: %v", err)
		}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("failed to unmarshal snapshot: empty payload")
	}
	s := defaults()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %v", err)
	}
	s.Normalize()
	return s, nil
}
