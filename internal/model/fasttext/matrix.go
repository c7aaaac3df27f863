package fasttext

import (
	"fmt"
	"math"

	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/utils"
)

// matrix is the read-only view of an embedding table used at inference time.
type matrix interface {
	rows() int64
	cols() int64
	// addRowToVector adds alpha times row i to x
	addRowToVector(x []float32, i int32, alpha float32)
	// dotRow returns the dot product of row i with vec
	dotRow(vec []float32, i int32) float32
}

type denseMatrix struct {
	m, n int64
	data []float32
}

func readDenseMatrix(r *utils.Reader) (*denseMatrix, error) {
	m := r.Int64()
	n := r.Int64()
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("failed to read matrix shape: %w", err)
	}
	if m < 0 || n < 0 || (n > 0 && m > math.MaxInt32/n) {
		return nil, fmt.Errorf("%w: matrix shape %dx%d", ErrInvalidModel, m, n)
	}
	data := r.FP32Vector(int(m * n))
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %dx%d matrix: %w", m, n, err)
	}
	return &denseMatrix{m: m, n: n, data: data}, nil
}

func (d *denseMatrix) rows() int64 { return d.m }

func (d *denseMatrix) cols() int64 { return d.n }

func (d *denseMatrix) row(i int32) []float32 {
	start := int64(i) * d.n
	return d.data[start : start+d.n]
}

func (d *denseMatrix) addRowToVector(x []float32, i int32, alpha float32) {
	for j, v := range d.row(i) {
		x[j] += alpha * v
	}
}

func (d *denseMatrix) dotRow(vec []float32, i int32) float32 {
	var sum float32
	for j, v := range d.row(i) {
		sum += v * vec[j]
	}
	return sum
}

// quantMatrix stores rows as product-quantizer codes, optionally with a separately
// quantized per-row norm.
type quantMatrix struct {
	qnorm     bool
	m, n      int64
	codes     []byte
	normCodes []byte
	pq        *productQuantizer
	npq       *productQuantizer
}

func readQuantMatrix(r *utils.Reader) (*quantMatrix, error) {
	q := &quantMatrix{
		qnorm: r.Bool(),
		m:     r.Int64(),
		n:     r.Int64(),
	}
	codesize := r.Int32()
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("failed to read quantized matrix header: %w", err)
	}
	if q.m < 0 || q.n < 0 || codesize < 0 {
		return nil, fmt.Errorf("%w: quantized matrix %dx%d with %d codes", ErrInvalidModel, q.m, q.n, codesize)
	}
	q.codes = r.Bytes(int(codesize))
	pq, err := readProductQuantizer(r)
	if err != nil {
		return nil, err
	}
	q.pq = pq
	if int64(len(q.codes)) < q.m*int64(pq.nsubq) {
		return nil, fmt.Errorf("%w: %d codes for %d rows of %d sub-quantizers", ErrInvalidModel, len(q.codes), q.m, pq.nsubq)
	}
	if q.qnorm {
		q.normCodes = r.Bytes(int(q.m))
		if q.npq, err = readProductQuantizer(r); err != nil {
			return nil, err
		}
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("failed to read quantized matrix: %w", err)
	}
	return q, nil
}

func (q *quantMatrix) rows() int64 { return q.m }

func (q *quantMatrix) cols() int64 { return q.n }

func (q *quantMatrix) norm(i int32) float32 {
	if !q.qnorm {
		return 1
	}
	return q.npq.centroids(0, q.normCodes[i])[0]
}

func (q *quantMatrix) addRowToVector(x []float32, i int32, alpha float32) {
	q.pq.addCode(x, q.codes, i, alpha*q.norm(i))
}

func (q *quantMatrix) dotRow(vec []float32, i int32) float32 {
	return q.pq.mulCode(vec, q.codes, i, q.norm(i))
}

const ksub = 256

type productQuantizer struct {
	dim       int32
	nsubq     int32
	dsub      int32
	lastdsub  int32
	centroidv []float32
}

func readProductQuantizer(r *utils.Reader) (*productQuantizer, error) {
	pq := &productQuantizer{
		dim:      r.Int32(),
		nsubq:    r.Int32(),
		dsub:     r.Int32(),
		lastdsub: r.Int32(),
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("failed to read product quantizer: %w", err)
	}
	if pq.dim <= 0 || pq.nsubq <= 0 || pq.dsub <= 0 || pq.lastdsub <= 0 ||
		(pq.nsubq-1)*pq.dsub+pq.lastdsub != pq.dim {
		return nil, fmt.Errorf("%w: product quantizer dim %d nsubq %d dsub %d lastdsub %d",
			ErrInvalidModel, pq.dim, pq.nsubq, pq.dsub, pq.lastdsub)
	}
	pq.centroidv = r.FP32Vector(int(pq.dim) * ksub)
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("failed to read centroids: %w", err)
	}
	return pq, nil
}

func (pq *productQuantizer) centroids(m int32, i byte) []float32 {
	if m == pq.nsubq-1 {
		start := m*ksub*pq.dsub + int32(i)*pq.lastdsub
		return pq.centroidv[start : start+pq.lastdsub]
	}
	start := (m*ksub + int32(i)) * pq.dsub
	return pq.centroidv[start : start+pq.dsub]
}

func (pq *productQuantizer) addCode(x []float32, codes []byte, t int32, alpha float32) {
	code := codes[pq.nsubq*t : pq.nsubq*(t+1)]
	for m := int32(0); m < pq.nsubq; m++ {
		c := pq.centroids(m, code[m])
		offset := m * pq.dsub
		for n, v := range c {
			x[offset+int32(n)] += alpha * v
		}
	}
}

func (pq *productQuantizer) mulCode(x []float32, codes []byte, t int32, alpha float32) float32 {
	var res float32
	code := codes[pq.nsubq*t : pq.nsubq*(t+1)]
	for m := int32(0); m < pq.nsubq; m++ {
		c := pq.centroids(m, code[m])
		offset := m * pq.dsub
		for n, v := range c {
			res += x[offset+int32(n)] * v
		}
	}
	return res * alpha
}
