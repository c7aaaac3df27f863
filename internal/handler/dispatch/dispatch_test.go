package dispatch

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/handler/predict"
	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/model/modeltest"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	m.Run()
}

func texts(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("t%d words", i)
	}
	return out
}

func TestModeFor(t *testing.T) {
	d := New(4)
	assert.Equal(t, ModeEmpty, d.ModeFor(0))
	assert.Equal(t, ModeSingle, d.ModeFor(1))
	assert.Equal(t, ModeParallel, d.ModeFor(2))
	assert.Equal(t, ModeParallel, d.ModeFor(4))
	assert.Equal(t, ModeSequential, d.ModeFor(5))
}

func TestNew_FloorsWorkers(t *testing.T) {
	assert.Equal(t, 1, New(0).Workers())
	assert.Equal(t, 1, New(-2).Workers())
}

func TestPredict_Empty(t *testing.T) {
	m := &modeltest.Fake{}
	res, err := New(4).Predict(context.Background(), m, []string{}, predict.DefaultOptions())
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Empty(t, res)
	assert.Equal(t, int64(0), m.Calls())
}

func TestPredict_Single(t *testing.T) {
	m := &modeltest.Fake{}
	res, err := New(4).Predict(context.Background(), m, []string{"hello"}, predict.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, []string{"hello"}, res[0].Labels)
}

func assertOrdered(t *testing.T, in []string, res []predict.Result) {
	t.Helper()
	require.Len(t, res, len(in))
	for i, r := range res {
		assert.Equal(t, fmt.Sprintf("t%d", i), r.Labels[0])
	}
}

func TestPredict_ParallelPreservesOrder(t *testing.T) {
	m := &modeltest.Fake{Delay: 10 * time.Millisecond}
	in := texts(4)
	res, err := New(4).Predict(context.Background(), m, in, predict.Options{K: 2})
	require.NoError(t, err)
	assertOrdered(t, in, res)
	assert.LessOrEqual(t, m.Peak(), int64(4))
	assert.GreaterOrEqual(t, m.Peak(), int64(2))
}

func TestPredict_SequentialAboveWorkerBound(t *testing.T) {
	m := &modeltest.Fake{Delay: time.Millisecond}
	in := texts(9)
	res, err := New(4).Predict(context.Background(), m, in, predict.DefaultOptions())
	require.NoError(t, err)
	assertOrdered(t, in, res)
	assert.Equal(t, int64(1), m.Peak())
	assert.Equal(t, int64(9), m.Calls())
}

func TestPredict_PoolSharedAcrossRequests(t *testing.T) {
	m := &modeltest.Fake{Delay: 5 * time.Millisecond}
	d := New(2)

	var wg sync.WaitGroup
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			in := texts(2)
			res, err := d.Predict(context.Background(), m, in, predict.DefaultOptions())
			assert.NoError(t, err)
			assertOrdered(t, in, res)
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, m.Peak(), int64(2))
}

func TestPredict_WorkerBoundAcrossModes(t *testing.T) {
	m := &modeltest.Fake{Delay: 20 * time.Millisecond}
	d := New(2)

	var wg sync.WaitGroup
	for r := 0; r < 8; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			in := texts(1)
			if r%2 == 1 {
				in = texts(3)
			}
			res, err := d.Predict(context.Background(), m, in, predict.DefaultOptions())
			assert.NoError(t, err)
			assertOrdered(t, in, res)
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(16), m.Calls())
	assert.LessOrEqual(t, m.Peak(), int64(2))
}

func TestPredictOne_SharesPool(t *testing.T) {
	m := &modeltest.Fake{Delay: 10 * time.Millisecond}
	d := New(3)

	var wg sync.WaitGroup
	for r := 0; r < 6; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := d.PredictOne(context.Background(), m, "spam offer", predict.Options{K: 2})
			assert.NoError(t, err)
			assert.Equal(t, []string{"spam", "other"}, res.Labels)
			_, err = d.SentenceVector(context.Background(), m, "a b")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(12), m.Calls())
	assert.LessOrEqual(t, m.Peak(), int64(3))
}

func TestPredictOne_WaitsForSlot(t *testing.T) {
	d := New(1)
	require.NoError(t, d.sem.Acquire(context.Background(), 1))
	defer d.sem.Release(1)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	m := &modeltest.Fake{}
	_, err := d.PredictOne(ctx, m, "hello", predict.DefaultOptions())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	_, err = d.Predict(ctx, m, []string{"hello"}, predict.DefaultOptions())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int64(0), m.Calls())
}

func TestPredict_ErrorFailsBatch(t *testing.T) {
	m := &modeltest.Fake{}
	in := []string{"a", modeltest.FailText, "c"}

	_, err := New(4).Predict(context.Background(), m, in, predict.DefaultOptions())
	assert.ErrorIs(t, err, modeltest.ErrBoom)

	_, err = New(1).Predict(context.Background(), m, in, predict.DefaultOptions())
	assert.ErrorIs(t, err, modeltest.ErrBoom)

	_, err = New(1).Predict(context.Background(), m, []string{modeltest.FailText}, predict.DefaultOptions())
	assert.ErrorIs(t, err, modeltest.ErrBoom)
}

func TestPredict_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(4).Predict(ctx, &modeltest.Fake{}, texts(3), predict.DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)

	_, err = New(2).Predict(ctx, &modeltest.Fake{}, texts(3), predict.DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSentenceVectors_Order(t *testing.T) {
	m := &modeltest.Fake{Delay: time.Millisecond}
	in := []string{"a", "bb cc", "ddd"}

	for _, workers := range []int{1, 3} {
		vecs, err := New(workers).SentenceVectors(context.Background(), m, in)
		require.NoError(t, err)
		assert.Equal(t, [][]float32{{2, 1}, {6, 2}, {4, 1}}, vecs)
	}

	vecs, err := New(3).SentenceVectors(context.Background(), m, nil)
	require.NoError(t, err)
	assert.Empty(t, vecs)
}
