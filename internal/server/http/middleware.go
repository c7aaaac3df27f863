package http

import (
	"fmt"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/constants"
	"github.com/Meesho/BharatMLStack/fasttext-serving/pkg/metric"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const requestIdKey = "request_id"

// RequestIdMiddleware propagates the caller's request id or assigns a new one
func RequestIdMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestId := c.GetHeader(constants.RequestIdHeader)
		if requestId == "" {
			requestId = uuid.New().String()
		}
		c.Set(requestIdKey, requestId)
		c.Header(constants.RequestIdHeader, requestId)
		c.Next()
	}
}

// HTTPLogger logs the request
func HTTPLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()
		latency := time.Since(startTime)

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		clientIP := c.ClientIP()
		method := c.Request.Method
		statusCode := c.Writer.Status()

		metricTags := metric.BuildTag(
			metric.NewTag(metric.TagPath, route),
			metric.NewTag(metric.TagMethod, method),
			metric.NewTag(metric.TagHttpStatusCode, strconv.Itoa(statusCode)),
			metric.NewTag(metric.TagCommunicationProtocol, metric.TagValueCommunicationProtocolHttp),
		)
		metric.Incr(metric.ApiRequestCount, metricTags)
		metric.Timing(metric.ApiRequestLatency, latency, metricTags)
		log.Info().Str(requestIdKey, c.GetString(requestIdKey)).
			Msgf("[access] [%s] %s %s %d %v", clientIP, method, route, statusCode, latency)
	}
}

// HTTPRecovery turns a panic into a 500 response
func HTTPRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Msgf("Panic occurred: %v\n%s", err, debug.Stack())
				c.JSON(500, gin.H{"error": fmt.Sprintf("%v", err)})
				c.Abort()
			}
		}()
		c.Next()
	}
}
