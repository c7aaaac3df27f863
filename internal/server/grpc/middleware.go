package grpc

import (
	"context"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/Meesho/BharatMLStack/fasttext-serving/pkg/metric"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func ServerInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
	startTime := time.Now()
	resp, err = handler(ctx, req)
	logAndTrack(info.FullMethod, startTime, err)
	return resp, err
}

func StreamServerInterceptor(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	startTime := time.Now()
	err := handler(srv, ss)
	logAndTrack(info.FullMethod, startTime, err)
	return err
}

func RecoveryInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			// Recover from panic and create a gRPC error
			log.Error().Msgf("Panic occurred in method %s: %v\n%s", info.FullMethod, r, debug.Stack())
			err = status.Errorf(codes.Internal, "panic recovered: %v", r)
		}
	}()
	resp, err = handler(ctx, req)

	return resp, err
}

func StreamRecoveryInterceptor(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Msgf("Panic occurred in stream %s: %v\n%s", info.FullMethod, r, debug.Stack())
			err = status.Errorf(codes.Internal, "panic recovered: %v", r)
		}
	}()
	return handler(srv, ss)
}

func logAndTrack(method string, startTime time.Time, err error) {
	statusCode := status.Code(err)
	latency := time.Since(startTime)
	logMessage := strings.Join([]string{method, statusCode.String(), latency.String()}, " | ")
	switch statusCode {
	case codes.OK:
		log.Info().Msg(logMessage)
	case codes.Canceled, codes.DeadlineExceeded:
		log.Debug().Err(err).Msg(logMessage)
	default:
		log.Error().Err(err).Msg(logMessage)
	}
	trackGenericMetrics(method, latency, statusCode)
}

func trackGenericMetrics(method string, latency time.Duration, statusCode codes.Code) {
	metricTags := metric.BuildTag(
		metric.NewTag(metric.TagPath, method),
		metric.NewTag(metric.TagGrpcStatusCode, strconv.Itoa(int(statusCode))),
		metric.NewTag(metric.TagCommunicationProtocol, metric.TagValueCommunicationProtocolGrpc),
	)
	metric.Incr(metric.ApiRequestCount, metricTags)
	metric.Timing(metric.ApiRequestLatency, latency, metricTags)
}
