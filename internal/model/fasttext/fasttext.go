// Package fasttext loads fastText binary models (.bin and .ftz) and runs inference
// on them without the C++ library.
package fasttext

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/compression"
	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/model"
	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/utils"
	"github.com/Meesho/BharatMLStack/fasttext-serving/pkg/metric"
	"github.com/rs/zerolog/log"
)

const (
	fileMagic = 793712314
	// version 11 models predate character n-grams for supervised training
	versionNoSubwords = 11
	maxVersion        = 12
)

var (
	ErrInvalidModel       = errors.New("invalid fasttext model")
	ErrBadMagic           = errors.New("file is not a fasttext model")
	ErrUnsupportedVersion = errors.New("unsupported fasttext model version")
	ErrPrunedDense        = errors.New("pruned dictionary requires a quantized input matrix")
)

// FastText is an immutable loaded model. All methods are safe for concurrent use.
type FastText struct {
	version int32
	args    *args
	dict    *dictionary
	input   matrix
	output  matrix
	quant   bool
	loss    loss
}

var _ model.Model = (*FastText)(nil)

// LoadModel reads a model from disk. zstd compressed files are detected and decompressed.
func LoadModel(path string) (*FastText, error) {
	startTime := time.Now()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model %s: %w", path, err)
	}
	data, ctype, err := compression.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("failed to read model %s: %w", path, err)
	}
	ft, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load model %s: %w", path, err)
	}
	metric.Timing(metric.ModelLoadLatency, time.Since(startTime), nil)
	log.Info().Msgf("Loaded %s model %s (compression %s, dim %d, words %d, labels %d, loss %s) in %v",
		ft.args.model, path, ctype, ft.args.dim, ft.dict.nwords, ft.dict.nlabels, ft.args.loss, time.Since(startTime))
	return ft, nil
}

// Load parses an uncompressed model image
func Load(data []byte) (*FastText, error) {
	r := utils.NewReader(data)
	magic := r.Int32()
	version := r.Int32()
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadMagic, err)
	}
	if magic != fileMagic {
		return nil, ErrBadMagic
	}
	if version > maxVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	a, err := readArgs(r)
	if err != nil {
		return nil, err
	}
	if version == versionNoSubwords && a.model == modelSup {
		a.maxn = 0
	}

	dict, err := readDictionary(r, a)
	if err != nil {
		return nil, err
	}

	ft := &FastText{version: version, args: a, dict: dict}
	ft.quant = r.Bool()
	if ft.input, err = readMatrix(r, ft.quant); err != nil {
		return nil, fmt.Errorf("input matrix: %w", err)
	}
	if !ft.quant && dict.isPruned() {
		return nil, ErrPrunedDense
	}
	a.qout = r.Bool()
	if ft.output, err = readMatrix(r, ft.quant && a.qout); err != nil {
		return nil, fmt.Errorf("output matrix: %w", err)
	}
	if err := ft.checkShapes(); err != nil {
		return nil, err
	}

	if a.loss == lossHS {
		ft.loss = newHierarchicalSoftmax(ft.output, dict.labelCounts())
	} else {
		ft.loss = &linearLoss{wo: ft.output, softmax: a.loss == lossSoftmax}
	}
	return ft, nil
}

func readMatrix(r *utils.Reader, quant bool) (matrix, error) {
	if quant {
		return readQuantMatrix(r)
	}
	return readDenseMatrix(r)
}

func (ft *FastText) checkShapes() error {
	dim := int64(ft.args.dim)
	if ft.input.cols() != dim || ft.output.cols() != dim {
		return fmt.Errorf("%w: matrix width %d/%d does not match dim %d", ErrInvalidModel, ft.input.cols(), ft.output.cols(), dim)
	}
	need := int64(ft.dict.nwords)
	if ft.dict.isPruned() {
		for _, id := range ft.dict.pruneidx {
			if int64(id)+int64(ft.dict.nwords) >= need {
				need = int64(id) + int64(ft.dict.nwords) + 1
			}
		}
	} else if ft.args.bucket > 0 {
		need += int64(ft.args.bucket)
	}
	if ft.input.rows() < need {
		return fmt.Errorf("%w: %d input rows, need %d", ErrInvalidModel, ft.input.rows(), need)
	}
	if ft.args.model == modelSup && ft.output.rows() < int64(ft.dict.nlabels) {
		return fmt.Errorf("%w: %d output rows for %d labels", ErrInvalidModel, ft.output.rows(), ft.dict.nlabels)
	}
	return nil
}

// Predict returns up to k labels of the first line of text, best first
func (ft *FastText) Predict(text string, k int32, threshold float32) ([]model.Prediction, error) {
	if ft.args.model != modelSup {
		return nil, model.ErrNotSupervised
	}
	if k <= 0 {
		return nil, model.ErrInvalidK
	}
	if int64(k) > int64(ft.dict.nlabels) {
		k = ft.dict.nlabels
	}
	if len(text) == 0 || k == 0 {
		return []model.Prediction{}, nil
	}
	words, _ := ft.dict.getLine(text)
	if len(words) == 0 {
		return []model.Prediction{}, nil
	}
	hidden := ft.average(words)
	best := ft.loss.predict(int(k), threshold, hidden)
	predictions := make([]model.Prediction, 0, len(best))
	for _, s := range best {
		predictions = append(predictions, model.Prediction{
			Label: ft.dict.label(s.index),
			Prob:  float32(math.Exp(float64(s.score))),
		})
	}
	return predictions, nil
}

// SentenceVector embeds the first line of text. Supervised models average the input rows
// of the line; unsupervised models average the normalized vectors of its words.
func (ft *FastText) SentenceVector(text string) ([]float32, error) {
	if ft.args.model == modelSup {
		words, _ := ft.dict.getLine(text)
		if len(words) == 0 {
			return make([]float32, ft.args.dim), nil
		}
		return ft.average(words), nil
	}

	svec := make([]float32, ft.args.dim)
	line := text
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	count := 0
	for _, word := range strings.FieldsFunc(line, isSpace) {
		vec := ft.average(ft.dict.subwordsOf(word))
		norm := l2Norm(vec)
		if norm <= 0 {
			continue
		}
		for i, v := range vec {
			svec[i] += v / norm
		}
		count++
	}
	if count > 0 {
		for i := range svec {
			svec[i] /= float32(count)
		}
	}
	return svec, nil
}

// WordVector returns the vector of a single word, built from its subwords for unknown words
func (ft *FastText) WordVector(word string) []float32 {
	return ft.average(ft.dict.subwordsOf(word))
}

func (ft *FastText) Info() model.Info {
	return model.Info{
		Dimension: int(ft.args.dim),
		Words:     int(ft.dict.nwords),
		Labels:    int(ft.dict.nlabels),
		Loss:      ft.args.loss.String(),
		Kind:      ft.args.model.String(),
		Quantized: ft.quant,
		Version:   int(ft.version),
	}
}

// Labels returns the model labels in dictionary order
func (ft *FastText) Labels() []string {
	labels := make([]string, ft.dict.nlabels)
	for i := range labels {
		labels[i] = ft.dict.label(int32(i))
	}
	return labels
}

func (ft *FastText) average(rows []int32) []float32 {
	vec := make([]float32, ft.args.dim)
	if len(rows) == 0 {
		return vec
	}
	for _, row := range rows {
		ft.input.addRowToVector(vec, row, 1)
	}
	scale := 1 / float32(len(rows))
	for i := range vec {
		vec[i] *= scale
	}
	return vec
}

func l2Norm(vec []float32) float32 {
	var sum float32
	for _, v := range vec {
		sum += v * v
	}
	return float32(math.Sqrt(float64(sum)))
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
