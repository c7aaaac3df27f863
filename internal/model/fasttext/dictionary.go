package fasttext

import (
	"fmt"
	"strings"

	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/constants"
	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/utils"
)

const (
	eos = "</s>"
	bow = "<"
	eow = ">"

	ngramMultiplier = 116049371
)

type entryType int8

const (
	entryWord  entryType = 0
	entryLabel entryType = 1
)

type entry struct {
	word     string
	count    int64
	kind     entryType
	subwords []int32
}

type dictionary struct {
	args         *args
	words        []entry
	word2int     map[string]int32
	nwords       int32
	nlabels      int32
	ntokens      int64
	pruneidxSize int64
	pruneidx     map[int32]int32
}

func readDictionary(r *utils.Reader, a *args) (*dictionary, error) {
	size := r.Int32()
	d := &dictionary{
		args:         a,
		nwords:       r.Int32(),
		nlabels:      r.Int32(),
		ntokens:      r.Int64(),
		pruneidxSize: r.Int64(),
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dictionary header: %w", err)
	}
	if size < 0 || d.nwords < 0 || d.nlabels < 0 || d.nwords+d.nlabels != size {
		return nil, fmt.Errorf("%w: dictionary size %d, words %d, labels %d", ErrInvalidModel, size, d.nwords, d.nlabels)
	}

	d.words = make([]entry, size)
	d.word2int = make(map[string]int32, size)
	for i := int32(0); i < size; i++ {
		e := entry{
			word:  r.CString(),
			count: r.Int64(),
			kind:  entryType(r.Int8()),
		}
		if err := r.Err(); err != nil {
			return nil, fmt.Errorf("failed to read dictionary entry %d: %w", i, err)
		}
		d.words[i] = e
		d.word2int[e.word] = i
	}

	d.pruneidx = make(map[int32]int32)
	for i := int64(0); i < d.pruneidxSize; i++ {
		first := r.Int32()
		second := r.Int32()
		d.pruneidx[first] = second
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("failed to read prune index: %w", err)
	}

	d.initNgrams()
	return d, nil
}

func (d *dictionary) isPruned() bool {
	return d.pruneidxSize >= 0
}

func (d *dictionary) initNgrams() {
	for i := range d.words {
		w := &d.words[i]
		w.subwords = []int32{int32(i)}
		if w.word != eos {
			w.subwords = d.computeSubwords(bow+w.word+eow, w.subwords)
		}
	}
}

// hash is 32-bit FNV-1a over the bytes taken as signed chars
func hash(s string) uint32 {
	h := uint32(2166136261)
	for i := 0; i < len(s); i++ {
		h ^= uint32(int8(s[i]))
		h *= 16777619
	}
	return h
}

func (d *dictionary) getID(w string) int32 {
	if id, ok := d.word2int[w]; ok {
		return id
	}
	return -1
}

func (d *dictionary) typeOf(w string) entryType {
	if strings.HasPrefix(w, constants.LabelPrefix) {
		return entryLabel
	}
	return entryWord
}

func (d *dictionary) label(lid int32) string {
	return d.words[lid+d.nwords].word
}

func (d *dictionary) labelCounts() []int64 {
	counts := make([]int64, 0, d.nlabels)
	for _, w := range d.words {
		if w.kind == entryLabel {
			counts = append(counts, w.count)
		}
	}
	return counts
}

// computeSubwords appends the bucket ids of the character n-grams of word, which is
// already wrapped in "<" and ">". Lengths count UTF-8 characters, not bytes.
func (d *dictionary) computeSubwords(word string, ngrams []int32) []int32 {
	if d.args.bucket <= 0 {
		return ngrams
	}
	for i := 0; i < len(word); i++ {
		if word[i]&0xC0 == 0x80 {
			continue
		}
		j := i
		for n := int32(1); j < len(word) && n <= d.args.maxn; n++ {
			j++
			for j < len(word) && word[j]&0xC0 == 0x80 {
				j++
			}
			if n >= d.args.minn && !(n == 1 && (i == 0 || j == len(word))) {
				h := int32(hash(word[i:j]) % uint32(d.args.bucket))
				ngrams = d.pushHash(ngrams, h)
			}
		}
	}
	return ngrams
}

func (d *dictionary) pushHash(hashes []int32, id int32) []int32 {
	if d.pruneidxSize == 0 || id < 0 {
		return hashes
	}
	if d.pruneidxSize > 0 {
		mapped, ok := d.pruneidx[id]
		if !ok {
			return hashes
		}
		id = mapped
	}
	return append(hashes, d.nwords+id)
}

// subwordsOf returns the input rows making up a single word vector
func (d *dictionary) subwordsOf(w string) []int32 {
	if id := d.getID(w); id >= 0 {
		return d.words[id].subwords
	}
	if w == eos {
		return nil
	}
	return d.computeSubwords(bow+w+eow, nil)
}

func (d *dictionary) addSubwords(line []int32, token string, wid int32) []int32 {
	if wid < 0 {
		if token != eos {
			line = d.computeSubwords(bow+token+eow, line)
		}
		return line
	}
	if d.args.maxn <= 0 {
		return append(line, wid)
	}
	return append(line, d.words[wid].subwords...)
}

func (d *dictionary) addWordNgrams(line []int32, hashes []int32, n int32) []int32 {
	if d.args.bucket <= 0 {
		return line
	}
	for i := 0; i < len(hashes); i++ {
		h := uint64(int64(hashes[i]))
		for j := i + 1; j < len(hashes) && j < i+int(n); j++ {
			h = h*ngramMultiplier + uint64(int64(hashes[j]))
			line = d.pushHash(line, int32(h%uint64(d.args.bucket)))
		}
	}
	return line
}

// getLine tokenizes the first line of text into input rows and label ids
func (d *dictionary) getLine(text string) (words []int32, labels []int32) {
	var wordHashes []int32
	tok := tokenizer{text: text}
	for {
		token, ok := tok.next()
		if !ok {
			break
		}
		h := hash(token)
		wid := d.getID(token)
		kind := d.typeOf(token)
		if wid >= 0 {
			kind = d.words[wid].kind
		}
		switch {
		case kind == entryWord:
			words = d.addSubwords(words, token, wid)
			wordHashes = append(wordHashes, int32(h))
		case kind == entryLabel && wid >= 0:
			labels = append(labels, wid-d.nwords)
		}
		if token == eos {
			break
		}
	}
	words = d.addWordNgrams(words, wordHashes, d.args.wordNgrams)
	return words, labels
}

// tokenizer splits text the way the fastText command line does: a newline seen
// before any other character of a token becomes the end-of-sentence token.
type tokenizer struct {
	text string
	pos  int
}

func isSeparator(c byte) bool {
	switch c {
	case ' ', '\n', '\r', '\t', '\v', '\f', 0:
		return true
	}
	return false
}

func (t *tokenizer) next() (string, bool) {
	start := -1
	for t.pos < len(t.text) {
		c := t.text[t.pos]
		if isSeparator(c) {
			if start < 0 {
				t.pos++
				if c == '\n' {
					return eos, true
				}
				continue
			}
			word := t.text[start:t.pos]
			if c != '\n' {
				t.pos++
			}
			return word, true
		}
		if start < 0 {
			start = t.pos
		}
		t.pos++
	}
	if start >= 0 {
		return t.text[start:], true
	}
	return "", false
}
