package store

import (
	"fmt"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// CompressionLevel names a zstd speed/ratio trade-off.
type CompressionLevel string

const (
	CompressionFastest CompressionLevel = "fastest"
	CompressionDefault CompressionLevel = "default"
	CompressionBetter  CompressionLevel = "better"
	CompressionBest    CompressionLevel = "best"
)

// ParseCompressionLevel accepts the names above; empty means default.
func ParseCompressionLevel(s string) (CompressionLevel, error) {
	switch CompressionLevel(strings.ToLower(strings.TrimSpace(s))) {
	case "", CompressionDefault:
		return CompressionDefault, nil
	case CompressionFastest:
		return CompressionFastest, nil
	case CompressionBetter:
		return CompressionBetter, nil
	case CompressionBest:
		return CompressionBest, nil
	default:
		return "", fmt.Errorf("unknown compression level %q", s)
	}
}

func (l CompressionLevel) encoderLevel() zstd.EncoderLevel {
	switch l {
	case CompressionFastest:
		return zstd.SpeedFastest
	case CompressionBetter:
		return zstd.SpeedBetterCompression
	case CompressionBest:
		return zstd.SpeedBestCompression
	default:
		return zstd.SpeedDefault
	}
}

// codec compresses whole objects. The encoder and decoder are created once
// and used through EncodeAll/DecodeAll, which are safe for concurrent use.
type codec struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func newCodec(level CompressionLevel) (*codec, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(level.encoderLevel()))
	if err != nil {
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	return &codec{enc: enc, dec: dec}, nil
}

func (c *codec) compress(data []byte) []byte {
	return c.enc.EncodeAll(data, make([]byte, 0, len(data)/2+16))
}

func (c *codec) decompress(data []byte) ([]byte, error) {
	out, err := c.dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decompressing: %w", err)
	}
	return out, nil
}

func (c *codec) close() {
	c.enc.Close()
	c.dec.Close()
}
