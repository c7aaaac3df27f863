package utils

import (
	"encoding/binary"
	"math"
)

var ByteOrder *CustomByteOrder

func init() {
	ByteOrder = &CustomByteOrder{ByteOrder: binary.LittleEndian}
}

type CustomByteOrder struct {
	binary.ByteOrder
}

func (c *CustomByteOrder) PutInt32(b []byte, v int32) {
	c.PutUint32(b, uint32(v))
}

func (c *CustomByteOrder) PutInt64(b []byte, v int64) {
	c.PutUint64(b, uint64(v))
}

func (c *CustomByteOrder) Int32(b []byte) int32 {
	return int32(c.Uint32(b))
}

func (c *CustomByteOrder) Int64(b []byte) int64 {
	return int64(c.Uint64(b))
}

func (c *CustomByteOrder) Bool(b []byte) bool {
	if len(b) < 1 {
		return false
	}
	return b[0] != 0
}

func (c *CustomByteOrder) PutFloat32(b []byte, v float32) {
	c.PutUint32(b, math.Float32bits(v))
}

func (c *CustomByteOrder) PutFloat64(b []byte, v float64) {
	c.PutUint64(b, math.Float64bits(v))
}

func (c *CustomByteOrder) Float32(b []byte) float32 {
	return math.Float32frombits(c.Uint32(b))
}

func (c *CustomByteOrder) Float64(b []byte) float64 {
	return math.Float64frombits(c.Uint64(b))
}

func (c *CustomByteOrder) FP32Vector(b []byte) []float32 {
	if len(b)%4 != 0 {
		panic("invalid byte slice length: must be a multiple of 4")
	}
	n := len(b) / 4
	result := make([]float32, n)
	for i := 0; i < n; i++ {
		offset := i * 4
		result[i] = math.Float32frombits(c.Uint32(b[offset : offset+4]))
	}
	return result
}

func (c *CustomByteOrder) PutFP32Vector(b []byte, v []float32) {
	for i, f := range v {
		c.PutUint32(b[i*4:i*4+4], math.Float32bits(f))
	}
}
