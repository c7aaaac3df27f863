package utils

import (
	"bytes"
	"errors"
	"fmt"
)

var ErrUnexpectedEOF = errors.New("unexpected end of data")

// Reader decodes fixed-width little-endian values from an in-memory buffer.
// The first failed read is sticky: every later read returns zero values and Err reports it.
type Reader struct {
	buf []byte
	off int
	err error
}

func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

func (r *Reader) Err() error {
	return r.err
}

// Offset returns the number of bytes consumed so far
func (r *Reader) Offset() int {
	return r.off
}

func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

func (r *Reader) next(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.off+n > len(r.buf) {
		r.err = fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrUnexpectedEOF, n, r.off, len(r.buf)-r.off)
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

func (r *Reader) Int8() int8 {
	b := r.next(1)
	if b == nil {
		return 0
	}
	return int8(b[0])
}

func (r *Reader) Bool() bool {
	return ByteOrder.Bool(r.next(1))
}

func (r *Reader) Int32() int32 {
	b := r.next(4)
	if b == nil {
		return 0
	}
	return ByteOrder.Int32(b)
}

func (r *Reader) Int64() int64 {
	b := r.next(8)
	if b == nil {
		return 0
	}
	return ByteOrder.Int64(b)
}

func (r *Reader) Float64() float64 {
	b := r.next(8)
	if b == nil {
		return 0
	}
	return ByteOrder.Float64(b)
}

func (r *Reader) Bytes(n int) []byte {
	return r.next(n)
}

func (r *Reader) FP32Vector(n int) []float32 {
	if n < 0 || n > (len(r.buf)-r.off)/4 {
		r.next(len(r.buf) + 1)
		return nil
	}
	b := r.next(n * 4)
	if b == nil {
		return nil
	}
	return ByteOrder.FP32Vector(b)
}

// CString reads a NUL-terminated string and consumes the terminator
func (r *Reader) CString() string {
	if r.err != nil {
		return ""
	}
	idx := bytes.IndexByte(r.buf[r.off:], 0)
	if idx < 0 {
		r.err = fmt.Errorf("%w: unterminated string at offset %d", ErrUnexpectedEOF, r.off)
		return ""
	}
	s := string(r.buf[r.off : r.off+idx])
	r.off += idx + 1
	return s
}
