package fasttext

import (
	"math"
	"sort"
)

const (
	sigmoidTableSize = 512
	maxSigmoid       = 8
)

var sigmoidTable = func() []float32 {
	t := make([]float32, sigmoidTableSize+1)
	for i := range t {
		x := float64(i*2*maxSigmoid)/sigmoidTableSize - maxSigmoid
		t[i] = float32(1.0 / (1.0 + math.Exp(-x)))
	}
	return t
}()

func sigmoid(x float32) float32 {
	if x < -maxSigmoid {
		return 0
	}
	if x > maxSigmoid {
		return 1
	}
	return sigmoidTable[int((x+maxSigmoid)*sigmoidTableSize/maxSigmoid/2)]
}

func stdLog(x float32) float32 {
	return float32(math.Log(float64(x) + 1e-5))
}

type scored struct {
	score float32
	index int32
}

// kbest keeps the k highest scores seen so far in descending order.
// Ties keep insertion order.
type kbest struct {
	k     int
	items []scored
}

func newKBest(k int) *kbest {
	return &kbest{k: k, items: make([]scored, 0, k+1)}
}

func (b *kbest) full() bool {
	return len(b.items) == b.k
}

func (b *kbest) min() float32 {
	return b.items[len(b.items)-1].score
}

func (b *kbest) push(score float32, index int32) {
	pos := sort.Search(len(b.items), func(i int) bool { return b.items[i].score < score })
	b.items = append(b.items, scored{})
	copy(b.items[pos+1:], b.items[pos:])
	b.items[pos] = scored{score: score, index: index}
	if len(b.items) > b.k {
		b.items = b.items[:b.k]
	}
}

// loss scores the output layer for a hidden vector
type loss interface {
	predict(k int, threshold float32, hidden []float32) []scored
}

// linearLoss covers softmax and the sigmoid based losses, which all score every label
type linearLoss struct {
	wo      matrix
	softmax bool
}

func (l *linearLoss) computeOutput(hidden []float32) []float32 {
	osz := int32(l.wo.rows())
	output := make([]float32, osz)
	for i := int32(0); i < osz; i++ {
		output[i] = l.wo.dotRow(hidden, i)
	}
	if !l.softmax {
		for i, v := range output {
			output[i] = sigmoid(v)
		}
		return output
	}
	maxv := output[0]
	for _, v := range output {
		if v > maxv {
			maxv = v
		}
	}
	var z float32
	for i, v := range output {
		output[i] = float32(math.Exp(float64(v - maxv)))
		z += output[i]
	}
	for i := range output {
		output[i] /= z
	}
	return output
}

func (l *linearLoss) predict(k int, threshold float32, hidden []float32) []scored {
	if l.wo.rows() == 0 {
		return nil
	}
	output := l.computeOutput(hidden)
	best := newKBest(k)
	for i, p := range output {
		if p < threshold {
			continue
		}
		s := stdLog(p)
		if best.full() && s < best.min() {
			continue
		}
		best.push(s, int32(i))
	}
	return best.items
}

type node struct {
	parent int32
	left   int32
	right  int32
	count  int64
	binary bool
}

// hierarchicalSoftmax walks the Huffman tree built over label frequencies
type hierarchicalSoftmax struct {
	wo   matrix
	osz  int32
	tree []node
}

func newHierarchicalSoftmax(wo matrix, counts []int64) *hierarchicalSoftmax {
	osz := int32(len(counts))
	hs := &hierarchicalSoftmax{wo: wo, osz: osz}
	if osz == 0 {
		return hs
	}
	tree := make([]node, 2*osz-1)
	for i := range tree {
		tree[i] = node{parent: -1, left: -1, right: -1, count: 1e15}
	}
	for i := int32(0); i < osz; i++ {
		tree[i].count = counts[i]
	}
	leaf := osz - 1
	next := osz
	for i := osz; i < 2*osz-1; i++ {
		var mini [2]int32
		for j := 0; j < 2; j++ {
			if leaf >= 0 && tree[leaf].count < tree[next].count {
				mini[j] = leaf
				leaf--
			} else {
				mini[j] = next
				next++
			}
		}
		tree[i].left = mini[0]
		tree[i].right = mini[1]
		tree[i].count = tree[mini[0]].count + tree[mini[1]].count
		tree[mini[0]].parent = i
		tree[mini[1]].parent = i
		tree[mini[1]].binary = true
	}
	hs.tree = tree
	return hs
}

func (hs *hierarchicalSoftmax) predict(k int, threshold float32, hidden []float32) []scored {
	if hs.osz == 0 {
		return nil
	}
	best := newKBest(k)
	hs.dfs(best, stdLog(threshold), 2*hs.osz-2, 0, hidden)
	return best.items
}

func (hs *hierarchicalSoftmax) dfs(best *kbest, minScore float32, n int32, score float32, hidden []float32) {
	if score < minScore {
		return
	}
	if best.full() && score < best.min() {
		return
	}
	cur := hs.tree[n]
	if cur.left == -1 && cur.right == -1 {
		best.push(score, n)
		return
	}
	f := sigmoidExact(hs.wo.dotRow(hidden, n-hs.osz))
	hs.dfs(best, minScore, cur.left, score+stdLog(1-f), hidden)
	hs.dfs(best, minScore, cur.right, score+stdLog(f), hidden)
}

func sigmoidExact(x float32) float32 {
	return float32(1.0 / (1.0 + math.Exp(-float64(x))))
}
