package fasttext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestDictionary(a *args, entries ...testEntry) *dictionary {
	d := &dictionary{
		args:         a,
		word2int:     make(map[string]int32),
		pruneidxSize: -1,
		pruneidx:     map[int32]int32{},
	}
	for i, e := range entries {
		d.words = append(d.words, entry{word: e.word, count: e.count, kind: e.kind})
		d.word2int[e.word] = int32(i)
		if e.kind == entryWord {
			d.nwords++
		} else {
			d.nlabels++
		}
	}
	d.initNgrams()
	return d
}

func TestHash(t *testing.T) {
	assert.Equal(t, uint32(3826002220), hash("a"))
	assert.Equal(t, uint32(3617362777), hash("</s>"))
	// bytes above 0x7f are sign extended before mixing
	assert.Equal(t, uint32(1023043777), hash("é"))
}

func TestTokenizer(t *testing.T) {
	collect := func(text string) []string {
		tok := tokenizer{text: text}
		var out []string
		for {
			w, ok := tok.next()
			if !ok {
				return out
			}
			out = append(out, w)
		}
	}
	assert.Equal(t, []string{"a", "b", eos, "c"}, collect("  a\tb\r\n c"))
	assert.Equal(t, []string{"x", eos}, collect("x\n"))
	assert.Equal(t, []string{eos, eos}, collect("\n\n"))
	assert.Equal(t, []string{"x", "y"}, collect("x\x00y\v"))
	assert.Nil(t, collect(""))
}

func TestComputeSubwords(t *testing.T) {
	d := newTestDictionary(&args{minn: 2, maxn: 3, bucket: 100},
		testEntry{eos, 1, entryWord},
		testEntry{"ab", 1, entryWord},
	)
	// <a, <ab, ab, ab>, b>
	assert.Equal(t, []int32{52, 10, 48, 58, 63}, d.computeSubwords("<ab>", nil))
	assert.Equal(t, []int32{1, 52, 10, 48, 58, 63}, d.words[1].subwords)
	assert.Equal(t, []int32{0}, d.words[0].subwords)
}

func TestComputeSubwords_MultiByteCharacters(t *testing.T) {
	d := newTestDictionary(&args{minn: 1, maxn: 1, bucket: 1000})
	// n-grams of a single character skip the boundary markers, so only é itself remains
	assert.Len(t, d.computeSubwords("<é>", nil), 1)
}

func TestGetLine_WordNgrams(t *testing.T) {
	d := newTestDictionary(&args{wordNgrams: 2, bucket: 10},
		testEntry{eos, 3, entryWord},
		testEntry{"good", 2, entryWord},
		testEntry{"bad", 1, entryWord},
		testEntry{"__label__pos", 1, entryLabel},
	)

	words, labels := d.getLine("good bad\n")
	assert.Equal(t, []int32{1, 2, 0, 3, 8}, words)
	assert.Empty(t, labels)

	words, labels = d.getLine("__label__pos good bad\n")
	assert.Equal(t, []int32{1, 2, 0, 3, 8}, words)
	assert.Equal(t, []int32{0}, labels)
}

func TestGetLine_PrunedBuckets(t *testing.T) {
	d := newTestDictionary(&args{wordNgrams: 2, bucket: 10},
		testEntry{eos, 3, entryWord},
		testEntry{"good", 2, entryWord},
		testEntry{"bad", 1, entryWord},
	)
	d.pruneidxSize = 1
	d.pruneidx = map[int32]int32{5: 0}

	words, _ := d.getLine("good bad\n")
	assert.Equal(t, []int32{1, 2, 0, 3}, words)

	d.pruneidxSize = 0
	d.pruneidx = map[int32]int32{}
	words, _ = d.getLine("good bad\n")
	assert.Equal(t, []int32{1, 2, 0}, words)
}

func TestGetLine_UnknownLabelSkipped(t *testing.T) {
	d := newTestDictionary(&args{wordNgrams: 1},
		testEntry{eos, 1, entryWord},
		testEntry{"good", 1, entryWord},
	)
	words, labels := d.getLine("__label__other good\n")
	assert.Equal(t, []int32{1, 0}, words)
	assert.Empty(t, labels)
}

func TestSubwordsOf(t *testing.T) {
	d := newTestDictionary(&args{minn: 2, maxn: 3, bucket: 100},
		testEntry{eos, 1, entryWord},
		testEntry{"zz", 1, entryWord},
	)
	assert.Nil(t, d.subwordsOf(eos))
	assert.Equal(t, []int32{52, 10, 48, 58, 63}, d.subwordsOf("ab"))
	assert.Equal(t, d.words[1].subwords, d.subwordsOf("zz"))
}

func TestKBest(t *testing.T) {
	b := newKBest(2)
	b.push(-1, 0)
	b.push(-0.5, 1)
	assert.True(t, b.full())
	b.push(-0.5, 2)
	b.push(-3, 3)
	assert.Equal(t, []scored{{-0.5, 1}, {-0.5, 2}}, b.items)
	assert.Equal(t, float32(-0.5), b.min())
}

func TestSigmoidTable(t *testing.T) {
	assert.Equal(t, float32(0), sigmoid(-9))
	assert.Equal(t, float32(1), sigmoid(9))
	assert.InDelta(t, 0.5, sigmoid(0), 1e-6)
	assert.InDelta(t, 0.7311, sigmoid(1), 1e-4)
}
