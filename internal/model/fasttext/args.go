package fasttext

import (
	"fmt"

	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/utils"
)

type lossName int32

const (
	lossHS      lossName = 1
	lossNS      lossName = 2
	lossSoftmax lossName = 3
	lossOVA     lossName = 4
)

func (l lossName) String() string {
	switch l {
	case lossHS:
		return "hs"
	case lossNS:
		return "ns"
	case lossSoftmax:
		return "softmax"
	case lossOVA:
		return "one-vs-all"
	default:
		return fmt.Sprintf("unknown(%d)", int32(l))
	}
}

type modelName int32

const (
	modelCBOW modelName = 1
	modelSG   modelName = 2
	modelSup  modelName = 3
)

func (m modelName) String() string {
	switch m {
	case modelCBOW:
		return "cbow"
	case modelSG:
		return "skipgram"
	case modelSup:
		return "supervised"
	default:
		return fmt.Sprintf("unknown(%d)", int32(m))
	}
}

// args holds the training hyper-parameters stored in the model header.
// Only dim, wordNgrams, loss, model, bucket, minn and maxn affect inference.
type args struct {
	dim          int32
	ws           int32
	epoch        int32
	minCount     int32
	neg          int32
	wordNgrams   int32
	loss         lossName
	model        modelName
	bucket       int32
	minn         int32
	maxn         int32
	lrUpdateRate int32
	t            float64
	qout         bool
}

func readArgs(r *utils.Reader) (*args, error) {
	a := &args{
		dim:          r.Int32(),
		ws:           r.Int32(),
		epoch:        r.Int32(),
		minCount:     r.Int32(),
		neg:          r.Int32(),
		wordNgrams:   r.Int32(),
		loss:         lossName(r.Int32()),
		model:        modelName(r.Int32()),
		bucket:       r.Int32(),
		minn:         r.Int32(),
		maxn:         r.Int32(),
		lrUpdateRate: r.Int32(),
		t:            r.Float64(),
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("failed to read args: %w", err)
	}
	if a.dim <= 0 {
		return nil, fmt.Errorf("%w: dim %d", ErrInvalidModel, a.dim)
	}
	switch a.loss {
	case lossHS, lossNS, lossSoftmax, lossOVA:
	default:
		return nil, fmt.Errorf("%w: loss %d", ErrInvalidModel, int32(a.loss))
	}
	switch a.model {
	case modelCBOW, modelSG, modelSup:
	default:
		return nil, fmt.Errorf("%w: model %d", ErrInvalidModel, int32(a.model))
	}
	return a, nil
}
