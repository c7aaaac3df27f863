package compression

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	m.Run()
}

func randomPayload(n int) []byte {
	r := rand.New(rand.NewSource(7))
	words := [][]byte{[]byte("__label__spam "), []byte("hello "), []byte("world "), {0, 0, 0, 0}}
	var buf bytes.Buffer
	for buf.Len() < n {
		buf.Write(words[r.Intn(len(words))])
	}
	return buf.Bytes()[:n]
}

func TestZStd_RoundTrip(t *testing.T) {
	data := randomPayload(4096)
	enc, err := NewZStdEncoder()
	require.NoError(t, err)
	var cdata []byte
	enc.Encode(data, &cdata)
	assert.NotEmpty(t, cdata)
	assert.Less(t, len(cdata), len(data))

	dec, err := NewZStdDecoder()
	require.NoError(t, err)
	out, err := dec.Decode(cdata)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestGetEncoder_Unsupported(t *testing.T) {
	enc, err := GetEncoder(TypeNone)
	assert.Error(t, err)
	assert.Nil(t, enc)
	assert.Contains(t, err.Error(), "unsupported compression type")
}

func TestGetDecoder_Unsupported(t *testing.T) {
	dec, err := GetDecoder(Type(99))
	assert.Error(t, err)
	assert.Nil(t, dec)
}

func TestDetect(t *testing.T) {
	enc, err := GetEncoder(TypeZSTD)
	require.NoError(t, err)
	var cdata []byte
	enc.Encode([]byte("model"), &cdata)

	assert.Equal(t, TypeZSTD, Detect(cdata))
	assert.Equal(t, TypeNone, Detect([]byte{0xba, 0x16, 0x4f, 0x2f}))
	assert.Equal(t, TypeNone, Detect(nil))
}

func TestDecompress(t *testing.T) {
	raw := randomPayload(512)
	out, typ, err := Decompress(raw)
	require.NoError(t, err)
	assert.Equal(t, TypeNone, typ)
	assert.Equal(t, raw, out)

	enc, _ := NewZStdEncoder()
	var cdata []byte
	enc.Encode(raw, &cdata)
	out, typ, err = Decompress(cdata)
	require.NoError(t, err)
	assert.Equal(t, TypeZSTD, typ)
	assert.Equal(t, raw, out)
}

func TestDecompress_Corrupt(t *testing.T) {
	_, typ, err := Decompress(append([]byte{0x28, 0xb5, 0x2f, 0xfd}, 1, 2, 3))
	assert.Equal(t, TypeZSTD, typ)
	assert.Error(t, err)
}

func TestType_String(t *testing.T) {
	assert.Equal(t, "zstd", TypeZSTD.String())
	assert.Equal(t, "none", TypeNone.String())
	assert.Equal(t, "unknown(9)", Type(9).String())
}
