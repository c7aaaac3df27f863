// Package modeltest provides a deterministic in-memory model for tests.
package modeltest

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/model"
)

var ErrBoom = errors.New("model failure")

// FailText makes Fake fail for any text containing it
const FailText = "boom"

// Fake labels a text with its first word (score 0.9) followed by "other" (score 0.1).
// SentenceVector returns [byte length, word count].
type Fake struct {
	Delay time.Duration

	mu       sync.Mutex
	texts    []string
	calls    atomic.Int64
	inFlight atomic.Int64
	peak     atomic.Int64
}

var _ model.Model = (*Fake)(nil)

func (f *Fake) enter(text string) func() {
	f.calls.Add(1)
	f.mu.Lock()
	f.texts = append(f.texts, text)
	f.mu.Unlock()
	n := f.inFlight.Add(1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if f.Delay > 0 {
		time.Sleep(f.Delay)
	}
	return func() { f.inFlight.Add(-1) }
}

func (f *Fake) Predict(text string, k int32, threshold float32) ([]model.Prediction, error) {
	defer f.enter(text)()
	if strings.Contains(text, FailText) {
		return nil, ErrBoom
	}
	if k <= 0 {
		return nil, model.ErrInvalidK
	}
	first := "empty"
	if fields := strings.Fields(text); len(fields) > 0 {
		first = fields[0]
	}
	all := []model.Prediction{
		{Label: "__label__" + first, Prob: 0.9},
		{Label: "__label__other", Prob: 0.1},
	}
	out := make([]model.Prediction, 0, len(all))
	for _, p := range all {
		if int32(len(out)) == k {
			break
		}
		if p.Prob < threshold {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *Fake) SentenceVector(text string) ([]float32, error) {
	defer f.enter(text)()
	if strings.Contains(text, FailText) {
		return nil, ErrBoom
	}
	return []float32{float32(len(text)), float32(len(strings.Fields(text)))}, nil
}

func (f *Fake) Info() model.Info {
	return model.Info{Dimension: 2, Labels: 2, Loss: "softmax", Kind: "supervised"}
}

// Texts returns every text received, in call order
func (f *Fake) Texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.texts...)
}

func (f *Fake) Calls() int64 {
	return f.calls.Load()
}

// Peak is the highest number of concurrent calls observed
func (f *Fake) Peak() int64 {
	return f.peak.Load()
}
