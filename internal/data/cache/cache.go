// Package cache memoizes model outputs in an off-heap freecache keyed by the request inputs.
package cache

import (
	"errors"
	"math"
	"time"

	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/model"
	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/utils"
	"github.com/Meesho/BharatMLStack/fasttext-serving/pkg/metric"
	"github.com/cespare/xxhash/v2"
	"github.com/coocood/freecache"
	"github.com/rs/zerolog/log"
)

const (
	metricUpdateInterval = 1 * time.Minute
	infiniteExpiry       = -1

	opPredict        = "predict"
	opSentenceVector = "sentence_vector"
)

var ErrCorruptEntry = errors.New("corrupt cache entry")

// Cache wraps a model. The model is deterministic, so a cached output is identical to a recomputed one.
type Cache struct {
	model.Model
	inMemCache *freecache.Cache
}

var _ model.Model = (*Cache)(nil)

// Wrap returns m unchanged when sizeInBytes is not positive
func Wrap(m model.Model, sizeInBytes int) model.Model {
	if sizeInBytes <= 0 {
		return m
	}
	c := New(m, sizeInBytes)
	go c.publishMetric()
	return c
}

func New(m model.Model, sizeInBytes int) *Cache {
	log.Info().Msgf("Prediction cache enabled with %d bytes", sizeInBytes)
	return &Cache{
		Model:      m,
		inMemCache: freecache.NewCache(sizeInBytes),
	}
}

func (c *Cache) Predict(text string, k int32, threshold float32) ([]model.Prediction, error) {
	key := cacheKey(opPredict, text, k, threshold)
	if body, ok := c.get(key, text); ok {
		preds, err := decodePredictions(body)
		if err == nil {
			metric.Incr(metric.PredictionCacheHit, opTags(opPredict))
			return preds, nil
		}
		log.Warn().Err(err).Msg("Dropping unreadable prediction cache entry")
		c.inMemCache.Del(key)
	}
	metric.Incr(metric.PredictionCacheMiss, opTags(opPredict))

	preds, err := c.Model.Predict(text, k, threshold)
	if err != nil {
		return nil, err
	}
	c.set(key, text, encodePredictions(preds))
	return preds, nil
}

func (c *Cache) SentenceVector(text string) ([]float32, error) {
	key := cacheKey(opSentenceVector, text, 0, 0)
	if body, ok := c.get(key, text); ok && len(body)%4 == 0 {
		metric.Incr(metric.PredictionCacheHit, opTags(opSentenceVector))
		return utils.ByteOrder.FP32Vector(body), nil
	}
	metric.Incr(metric.PredictionCacheMiss, opTags(opSentenceVector))

	vec, err := c.Model.SentenceVector(text)
	if err != nil {
		return nil, err
	}
	value := make([]byte, 4*len(vec))
	utils.ByteOrder.PutFP32Vector(value, vec)
	c.set(key, text, value)
	return vec, nil
}

func (c *Cache) EntryCount() int64 {
	return c.inMemCache.EntryCount()
}

// get returns the entry body only when the stored text matches, so colliding keys read as a miss
func (c *Cache) get(key []byte, text string) ([]byte, bool) {
	value, err := c.inMemCache.Get(key)
	if err != nil {
		return nil, false
	}
	if len(value) < len(text) || string(value[:len(text)]) != text {
		metric.Incr(metric.PredictionCacheCollision, nil)
		return nil, false
	}
	return value[len(text):], true
}

// set stores the text ahead of the body, the key already carries its length
func (c *Cache) set(key []byte, text string, body []byte) {
	value := make([]byte, 0, len(text)+len(body))
	value = append(value, text...)
	value = append(value, body...)
	// entries larger than 1/1024 of the cache are rejected by freecache
	if err := c.inMemCache.Set(key, value, infiniteExpiry); err != nil {
		log.Debug().Err(err).Msgf("Skipping cache set for %d byte entry", len(value))
	}
}

// publishMetric publishes the cache metrics every metricUpdateInterval
func (c *Cache) publishMetric() {
	ticker := time.NewTicker(metricUpdateInterval)
	defer ticker.Stop()
	for range ticker.C {
		metric.Gauge(metric.PredictionCacheHitRate, c.inMemCache.HitRate(), nil)
		metric.Gauge(metric.PredictionCacheEntries, float64(c.inMemCache.EntryCount()), nil)
	}
}

func opTags(op string) []string {
	return metric.BuildTag(metric.NewTag(metric.TagOperation, op))
}

// cacheKey is the xxhash of the inputs followed by the text length
func cacheKey(op, text string, k int32, threshold float32) []byte {
	h := xxhash.New()
	_, _ = h.WriteString(op)
	buf := make([]byte, 8)
	utils.ByteOrder.PutInt32(buf[:4], k)
	utils.ByteOrder.PutUint32(buf[4:], math.Float32bits(threshold))
	_, _ = h.Write(buf)
	_, _ = h.WriteString(text)

	key := make([]byte, 12)
	utils.ByteOrder.PutUint64(key[:8], h.Sum64())
	utils.ByteOrder.PutUint32(key[8:], uint32(len(text)))
	return key
}

// encodePredictions lays out count, then (length, bytes) per label, then the probabilities
func encodePredictions(preds []model.Prediction) []byte {
	size := 4 + 8*len(preds)
	for _, p := range preds {
		size += len(p.Label)
	}
	out := make([]byte, size)
	utils.ByteOrder.PutInt32(out, int32(len(preds)))
	offset := 4
	for _, p := range preds {
		utils.ByteOrder.PutInt32(out[offset:], int32(len(p.Label)))
		offset += 4
		offset += copy(out[offset:], p.Label)
	}
	for _, p := range preds {
		utils.ByteOrder.PutFloat32(out[offset:], p.Prob)
		offset += 4
	}
	return out
}

func decodePredictions(value []byte) ([]model.Prediction, error) {
	r := utils.NewReader(value)
	n := r.Int32()
	if n < 0 || int(n) > r.Remaining()/8 {
		return nil, ErrCorruptEntry
	}
	preds := make([]model.Prediction, n)
	for i := range preds {
		size := r.Int32()
		if size < 0 {
			return nil, ErrCorruptEntry
		}
		preds[i].Label = string(r.Bytes(int(size)))
	}
	probs := r.FP32Vector(int(n))
	if r.Err() != nil || r.Remaining() != 0 {
		return nil, ErrCorruptEntry
	}
	for i := range preds {
		preds[i].Prob = probs[i]
	}
	return preds, nil
}
