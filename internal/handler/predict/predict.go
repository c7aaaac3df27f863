package predict

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/constants"
	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/model"
)

// Options apply to every text of a batch
type Options struct {
	K         int32
	Threshold float32
}

func DefaultOptions() Options {
	return Options{K: constants.DefaultK, Threshold: constants.DefaultThreshold}
}

// Result is the ranked labels of one text. Labels[i] scored Probs[i].
type Result struct {
	Labels []string
	Probs  []float32
}

// MarshalJSON encodes a result as the pair [labels, probs]
func (r Result) MarshalJSON() ([]byte, error) {
	labels, probs := r.Labels, r.Probs
	if labels == nil {
		labels = []string{}
	}
	if probs == nil {
		probs = []float32{}
	}
	return json.Marshal([2]any{labels, probs})
}

// UnmarshalJSON accepts the [labels, probs] pair as well as {"labels": ..., "probs": ...}
func (r *Result) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) != 2 {
			return fmt.Errorf("prediction must be a [labels, probs] pair, got %d elements", len(pair))
		}
		var out Result
		if err := json.Unmarshal(pair[0], &out.Labels); err != nil {
			return fmt.Errorf("invalid labels: %w", err)
		}
		if err := json.Unmarshal(pair[1], &out.Probs); err != nil {
			return fmt.Errorf("invalid probs: %w", err)
		}
		*r = out
		return nil
	}
	var obj struct {
		Labels []string  `json:"labels"`
		Probs  []float32 `json:"probs"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	r.Labels, r.Probs = obj.Labels, obj.Probs
	return nil
}

// NormalizeText terminates text with a newline so the tokenizer sees end of sentence
func NormalizeText(text string) string {
	if strings.HasSuffix(text, "\n") {
		return text
	}
	return text + "\n"
}

// PredictOne classifies a single text. k below 1 is treated as 1.
func PredictOne(m model.Model, text string, k int32, threshold float32) (Result, error) {
	if k < 1 {
		k = 1
	}
	preds, err := m.Predict(NormalizeText(text), k, threshold)
	if err != nil {
		return Result{}, err
	}
	res := Result{
		Labels: make([]string, 0, len(preds)),
		Probs:  make([]float32, 0, len(preds)),
	}
	for _, p := range preds {
		res.Labels = append(res.Labels, strings.TrimPrefix(p.Label, constants.LabelPrefix))
		res.Probs = append(res.Probs, p.Prob)
	}
	return res, nil
}

// SentenceVector embeds a single text
func SentenceVector(m model.Model, text string) ([]float32, error) {
	return m.SentenceVector(NormalizeText(text))
}
