package compression

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Model files are compressed offline, the encoder only builds test fixtures.

type Encoder interface {
	Encode(data []byte, outputBuffer *[]byte)
}

type ZStdEncoder struct {
	encoder *zstd.Encoder
}

func NewZStdEncoder() (*ZStdEncoder, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return nil, err
	}
	return &ZStdEncoder{encoder: enc}, nil
}

func (e *ZStdEncoder) Encode(data []byte, outputBuffer *[]byte) {
	*outputBuffer = e.encoder.EncodeAll(data, (*outputBuffer)[:0])
}

func GetEncoder(compressionType Type) (Encoder, error) {
	switch compressionType {
	case TypeZSTD:
		return NewZStdEncoder()
	default:
		return nil, fmt.Errorf("unsupported compression type: %d", compressionType)
	}
}
