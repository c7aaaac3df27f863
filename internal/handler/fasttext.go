package handler

import (
	"errors"
	"io"
	"math"
	"time"

	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/constants"
	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/handler/dispatch"
	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/handler/predict"
	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/model"
	"github.com/Meesho/BharatMLStack/fasttext-serving/pkg/metric"
	pb "github.com/Meesho/BharatMLStack/fasttext-serving/pkg/proto/fasttextserving"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FasttextHandler serves the client-streaming RPCs. Every inbound message is answered
// as it arrives and the accumulated results are sent once the client half-closes.
// Model calls share the dispatcher's worker pool with the HTTP API.
type FasttextHandler struct {
	pb.UnimplementedFasttextServingServer
	model      model.Model
	dispatcher *dispatch.Dispatcher
}

func NewFasttextHandler(m model.Model, dispatcher *dispatch.Dispatcher) *FasttextHandler {
	return &FasttextHandler{model: m, dispatcher: dispatcher}
}

func (h *FasttextHandler) Predict(stream grpc.ClientStreamingServer[pb.PredictRequest, pb.PredictResponse]) error {
	startTime := time.Now()
	predictions := make([]*pb.Prediction, 0)
	for {
		req, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			trackStream("predict", len(predictions), startTime)
			return stream.SendAndClose(&pb.PredictResponse{Predictions: predictions})
		}
		if err != nil {
			return recvError("predict", stream, err)
		}

		k, threshold := constants.DefaultK, constants.DefaultThreshold
		if req.K != nil {
			k = clampK(req.GetK())
		}
		if req.Threshold != nil {
			threshold = req.GetThreshold()
		}
		res, err := h.dispatcher.PredictOne(stream.Context(), h.model, req.GetText(), predict.Options{K: k, Threshold: threshold})
		if err != nil {
			if ctxErr := stream.Context().Err(); ctxErr != nil {
				return status.FromContextError(ctxErr).Err()
			}
			log.Error().Err(err).Msg("Prediction failed")
			return status.Errorf(codes.Internal, "prediction failed: %v", err)
		}
		predictions = append(predictions, &pb.Prediction{Labels: res.Labels, Probs: res.Probs})
	}
}

func (h *FasttextHandler) SentenceVector(stream grpc.ClientStreamingServer[pb.SentenceVectorRequest, pb.SentenceVectorResponse]) error {
	startTime := time.Now()
	vectors := make([]*pb.Vector, 0)
	for {
		req, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			trackStream("sentence_vector", len(vectors), startTime)
			return stream.SendAndClose(&pb.SentenceVectorResponse{Vectors: vectors})
		}
		if err != nil {
			return recvError("sentence_vector", stream, err)
		}

		vec, err := h.dispatcher.SentenceVector(stream.Context(), h.model, req.GetText())
		if err != nil {
			if ctxErr := stream.Context().Err(); ctxErr != nil {
				return status.FromContextError(ctxErr).Err()
			}
			log.Error().Err(err).Msg("Sentence vector failed")
			return status.Errorf(codes.Internal, "sentence vector failed: %v", err)
		}
		vectors = append(vectors, &pb.Vector{Values: vec})
	}
}

// recvError aborts silently when the peer went away and surfaces every other fault
func recvError(method string, stream grpc.ServerStream, err error) error {
	code := status.Code(err)
	if code == codes.Canceled || code == codes.DeadlineExceeded || stream.Context().Err() != nil {
		log.Debug().Err(err).Msgf("%s stream aborted by peer", method)
		return err
	}
	log.Error().Err(err).Msgf("%s stream receive failed", method)
	return err
}

func clampK(k uint32) int32 {
	if k > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(k)
}

func trackStream(method string, messages int, startTime time.Time) {
	metric.Count(metric.StreamMessageCount, int64(messages), metric.BuildTag(metric.NewTag(metric.TagMethod, method)))
	log.Debug().Msgf("%s stream of %d messages completed in %v", method, messages, time.Since(startTime))
}
