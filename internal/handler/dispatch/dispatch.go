// Package dispatch spreads a batch of independent texts over a bounded worker pool
// shared by every request of the process.
package dispatch

import (
	"context"
	"time"

	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/handler/predict"
	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/model"
	"github.com/Meesho/BharatMLStack/fasttext-serving/pkg/metric"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

type Mode string

const (
	ModeEmpty      Mode = "empty"
	ModeSingle     Mode = "single"
	ModeParallel   Mode = "parallel"
	ModeSequential Mode = "sequential"
)

// Dispatcher runs batches in input order. Batches of 2..workers texts run in parallel;
// larger batches run sequentially on the caller's goroutine. Every model call holds a slot
// of one semaphore, so at most workers calls run at once across all requests.
type Dispatcher struct {
	workers int
	sem     *semaphore.Weighted
}

func New(workers int) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	return &Dispatcher{
		workers: workers,
		sem:     semaphore.NewWeighted(int64(workers)),
	}
}

func (d *Dispatcher) Workers() int {
	return d.workers
}

// ModeFor returns how a batch of n texts is executed
func (d *Dispatcher) ModeFor(n int) Mode {
	switch {
	case n == 0:
		return ModeEmpty
	case n == 1:
		return ModeSingle
	case n <= d.workers:
		return ModeParallel
	default:
		return ModeSequential
	}
}

// Predict classifies every text with the same options. The i-th result belongs to texts[i].
func (d *Dispatcher) Predict(ctx context.Context, m model.Model, texts []string, opts predict.Options) ([]predict.Result, error) {
	return run(ctx, d, "predict", texts, func(text string) (predict.Result, error) {
		return predict.PredictOne(m, text, opts.K, opts.Threshold)
	})
}

// SentenceVectors embeds every text. The i-th vector belongs to texts[i].
func (d *Dispatcher) SentenceVectors(ctx context.Context, m model.Model, texts []string) ([][]float32, error) {
	return run(ctx, d, "sentence_vector", texts, func(text string) ([]float32, error) {
		return predict.SentenceVector(m, text)
	})
}

// PredictOne classifies a single text on one slot of the pool
func (d *Dispatcher) PredictOne(ctx context.Context, m model.Model, text string, opts predict.Options) (predict.Result, error) {
	return withSlot(ctx, d.sem, text, func(text string) (predict.Result, error) {
		return predict.PredictOne(m, text, opts.K, opts.Threshold)
	})
}

// SentenceVector embeds a single text on one slot of the pool
func (d *Dispatcher) SentenceVector(ctx context.Context, m model.Model, text string) ([]float32, error) {
	return withSlot(ctx, d.sem, text, func(text string) ([]float32, error) {
		return predict.SentenceVector(m, text)
	})
}

func run[T any](ctx context.Context, d *Dispatcher, operation string, texts []string, fn func(string) (T, error)) ([]T, error) {
	startTime := time.Now()
	mode := d.ModeFor(len(texts))
	defer trackMetrics(operation, mode, len(texts), startTime)

	switch mode {
	case ModeEmpty:
		return []T{}, nil
	case ModeSingle:
		res, err := withSlot(ctx, d.sem, texts[0], fn)
		if err != nil {
			return nil, err
		}
		return []T{res}, nil
	case ModeParallel:
		return parallel(ctx, d.sem, texts, fn)
	default:
		return sequential(ctx, d.sem, texts, fn)
	}
}

func withSlot[T any](ctx context.Context, sem *semaphore.Weighted, text string, fn func(string) (T, error)) (T, error) {
	if err := sem.Acquire(ctx, 1); err != nil {
		var zero T
		return zero, err
	}
	defer sem.Release(1)
	return fn(text)
}

func parallel[T any](ctx context.Context, sem *semaphore.Weighted, texts []string, fn func(string) (T, error)) ([]T, error) {
	results := make([]T, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	for i, text := range texts {
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			res, err := fn(text)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// sequential holds one slot per text, releasing it between texts
func sequential[T any](ctx context.Context, sem *semaphore.Weighted, texts []string, fn func(string) (T, error)) ([]T, error) {
	results := make([]T, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := withSlot(ctx, sem, text, fn)
		if err != nil {
			return nil, err
		}
		results[i] = res
	}
	return results, nil
}

func trackMetrics(operation string, mode Mode, size int, startTime time.Time) {
	tags := metric.BuildTag(
		metric.NewTag(metric.TagOperation, operation),
		metric.NewTag(metric.TagDispatchMode, string(mode)),
	)
	metric.Incr(metric.PredictionDispatchMode, tags)
	metric.Gauge(metric.PredictionBatchSize, float64(size), tags)
	log.Debug().Msgf("%s batch of %d texts ran %s in %v", operation, size, mode, time.Since(startTime))
}
