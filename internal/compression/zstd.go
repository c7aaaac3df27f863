package compression

import (
	"sync"

	"github.com/klauspost/compress/zstd"
)

var (
	decoder *ZStdDecoder

	mut sync.Mutex
)

type ZStdDecoder struct {
	decoder *zstd.Decoder
}

func NewZStdDecoder() (*ZStdDecoder, error) {
	mut.Lock()
	defer mut.Unlock()
	if decoder != nil {
		return decoder, nil
	}
	// model files are decoded once at startup, a single goroutine is enough
	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(false),
		zstd.WithDecoderMaxMemory(8<<30))
	if err != nil {
		return nil, err
	}
	decoder = &ZStdDecoder{
		decoder: dec,
	}
	return decoder, nil
}

func (d *ZStdDecoder) Decode(cdata []byte) ([]byte, error) {
	return d.decoder.DecodeAll(cdata, make([]byte, 0, len(cdata)*3))
}
