package compression

import (
	"bytes"
	"fmt"
)

type Type uint8

const (
	TypeNone Type = iota
	TypeZSTD
)

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

type Decoder interface {
	Decode(compressedData []byte) ([]byte, error)
}

func (t Type) String() string {
	switch t {
	case TypeNone:
		return "none"
	case TypeZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

func GetDecoder(compressionType Type) (Decoder, error) {
	switch compressionType {
	case TypeZSTD:
		return NewZStdDecoder()
	default:
		return nil, fmt.Errorf("unsupported compression type: %d", compressionType)
	}
}

// Detect identifies the compression of data from its leading magic bytes
func Detect(data []byte) Type {
	if bytes.HasPrefix(data, zstdMagic) {
		return TypeZSTD
	}
	return TypeNone
}

// Decompress returns data unchanged when it is not compressed
func Decompress(data []byte) ([]byte, Type, error) {
	t := Detect(data)
	if t == TypeNone {
		return data, t, nil
	}
	dec, err := GetDecoder(t)
	if err != nil {
		return nil, t, err
	}
	out, err := dec.Decode(data)
	if err != nil {
		return nil, t, fmt.Errorf("failed to decompress %s data: %w", t, err)
	}
	return out, t, nil
}
