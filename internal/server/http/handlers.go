package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/handler/dispatch"
	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/handler/predict"
	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrBodyTooLarge = errors.New("request body too large")
	ErrNullBody     = errors.New("request body must be a JSON array of strings")
)

type Handler struct {
	model           model.Model
	dispatcher      *dispatch.Dispatcher
	maxRequestBytes int64
}

func NewHandler(m model.Model, dispatcher *dispatch.Dispatcher, maxRequestBytes int64) *Handler {
	return &Handler{
		model:           m,
		dispatcher:      dispatcher,
		maxRequestBytes: maxRequestBytes,
	}
}

func RegisterRoutes(router gin.IRoutes, h *Handler) {
	router.POST("/predict", h.handlePredict)
	router.POST("/sentence-vector", h.handleSentenceVector)
	router.GET("/model", h.handleModelInfo)
}

func (h *Handler) handlePredict(c *gin.Context) {
	opts, err := parsePredictOptions(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}
	texts, ok := h.readTexts(c)
	if !ok {
		return
	}
	results, err := h.dispatcher.Predict(c.Request.Context(), h.model, texts, opts)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (h *Handler) handleSentenceVector(c *gin.Context) {
	texts, ok := h.readTexts(c)
	if !ok {
		return
	}
	vectors, err := h.dispatcher.SentenceVectors(c.Request.Context(), h.model, texts)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, vectors)
}

func (h *Handler) handleModelInfo(c *gin.Context) {
	c.JSON(http.StatusOK, h.model.Info())
}

// readTexts decodes the body as a JSON array of strings whatever its declared content type.
// It writes the error response itself and reports whether decoding succeeded.
func (h *Handler) readTexts(c *gin.Context) ([]string, bool) {
	data, err := readBody(c, h.maxRequestBytes)
	if errors.Is(err, ErrBodyTooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return nil, false
	}
	var texts []string
	if err := json.Unmarshal(data, &texts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return nil, false
	}
	if texts == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrNullBody.Error()})
		return nil, false
	}
	return texts, true
}

func readBody(c *gin.Context, limit int64) ([]byte, error) {
	if limit > 0 {
		if c.Request.ContentLength > limit {
			return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrBodyTooLarge, c.Request.ContentLength, limit)
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	}
	data, err := io.ReadAll(c.Request.Body)
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, maxBytesErr.Limit)
	}
	return data, err
}

func parsePredictOptions(c *gin.Context) (predict.Options, error) {
	opts := predict.DefaultOptions()
	if raw, ok := c.GetQuery("k"); ok {
		k, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return opts, fmt.Errorf("k: %w", err)
		}
		opts.K = int32(k)
	}
	if raw, ok := c.GetQuery("threshold"); ok {
		threshold, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return opts, fmt.Errorf("threshold: %w", err)
		}
		opts.Threshold = float32(threshold)
	}
	return opts, nil
}

// handleError converts errors to HTTP responses through their gRPC code
func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		log.Debug().Err(err).Msg("Request aborted by client")
		err = status.FromContextError(err).Err()
	}

	st, ok := status.FromError(err)
	if !ok {
		log.Error().Err(err).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	httpStatus := grpcToHTTPStatus(st.Code())
	c.JSON(httpStatus, gin.H{
		"error": st.Message(),
		"code":  st.Code().String(),
	})
}

func grpcToHTTPStatus(code codes.Code) int {
	switch code {
	case codes.OK:
		return http.StatusOK
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.NotFound:
		return http.StatusNotFound
	case codes.AlreadyExists:
		return http.StatusConflict
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests
	case codes.FailedPrecondition:
		return http.StatusPreconditionFailed
	case codes.Aborted:
		return http.StatusConflict
	case codes.OutOfRange:
		return http.StatusBadRequest
	case codes.Unimplemented:
		return http.StatusNotImplemented
	case codes.Internal:
		return http.StatusInternalServerError
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	case codes.Canceled:
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}
