package fasttext

import (
	"bytes"
	"encoding/binary"
)

type testEntry struct {
	word  string
	count int64
	kind  entryType
}

type testQuant struct {
	nsubq    int32
	dsub     int32
	lastdsub int32
	// centroids[c] is the full vector of centroid c; only the first few are set
	centroids [][]float32
	codes     []byte
}

// testModel serializes a model in the fastText binary layout
type testModel struct {
	magic      int32
	version    int32
	dim        int32
	wordNgrams int32
	loss       lossName
	kind       modelName
	bucket     int32
	minn       int32
	maxn       int32
	entries    []testEntry
	pruneidx   map[int32]int32
	input      [][]float32
	quantInput *testQuant
	output     [][]float32
}

func newSupervisedModel(loss lossName) *testModel {
	return &testModel{
		magic:      fileMagic,
		version:    maxVersion,
		dim:        2,
		wordNgrams: 1,
		loss:       loss,
		kind:       modelSup,
		entries: []testEntry{
			{eos, 20, entryWord},
			{"good", 10, entryWord},
			{"bad", 8, entryWord},
			{"__label__pos", 10, entryLabel},
			{"__label__neg", 5, entryLabel},
		},
		input: [][]float32{
			{0, 0},
			{2, 0},
			{0, 2},
		},
		output: [][]float32{
			{1, -1},
			{-1, 1},
		},
	}
}

func (m *testModel) bytes() []byte {
	var buf bytes.Buffer
	w := func(v any) { _ = binary.Write(&buf, binary.LittleEndian, v) }

	w(m.magic)
	w(m.version)
	// dim ws epoch minCount neg wordNgrams loss model bucket minn maxn lrUpdateRate t
	w([]int32{m.dim, 5, 5, 1, 5, m.wordNgrams, int32(m.loss), int32(m.kind), m.bucket, m.minn, m.maxn, 100})
	w(float64(1e-4))

	nwords, nlabels := int32(0), int32(0)
	for _, e := range m.entries {
		if e.kind == entryWord {
			nwords++
		} else {
			nlabels++
		}
	}
	w(int32(len(m.entries)))
	w(nwords)
	w(nlabels)
	w(int64(100))
	if m.pruneidx == nil {
		w(int64(-1))
	} else {
		w(int64(len(m.pruneidx)))
	}
	for _, e := range m.entries {
		buf.WriteString(e.word)
		buf.WriteByte(0)
		w(e.count)
		w(int8(e.kind))
	}
	for k, v := range m.pruneidx {
		w(k)
		w(v)
	}

	if m.quantInput != nil {
		w(true)
		m.writeQuant(&buf, w)
	} else {
		w(false)
		writeDense(w, m.input, m.dim)
	}
	w(false)
	writeDense(w, m.output, m.dim)
	return buf.Bytes()
}

func (m *testModel) writeQuant(buf *bytes.Buffer, w func(any)) {
	q := m.quantInput
	w(false)
	w(int64(len(q.codes)) / int64(q.nsubq))
	w(int64(m.dim))
	w(int32(len(q.codes)))
	buf.Write(q.codes)
	w(m.dim)
	w(q.nsubq)
	w(q.dsub)
	w(q.lastdsub)
	centroids := make([]float32, int(m.dim)*ksub)
	// only single sub-quantizer layouts are built by the tests
	for c, vec := range q.centroids {
		copy(centroids[c*int(q.lastdsub):], vec)
	}
	w(centroids)
}

func writeDense(w func(any), rows [][]float32, dim int32) {
	w(int64(len(rows)))
	w(int64(dim))
	for _, r := range rows {
		w(r)
	}
}
