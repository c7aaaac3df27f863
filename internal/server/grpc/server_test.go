package grpc

import (
	"context"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/config"
	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/constants"
	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/handler"
	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/handler/dispatch"
	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/model/modeltest"
	pb "github.com/Meesho/BharatMLStack/fasttext-serving/pkg/proto/fasttextserving"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/proto"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	m.Run()
}

type panickingServer struct {
	pb.UnimplementedFasttextServingServer
}

func (panickingServer) Predict(grpc.ClientStreamingServer[pb.PredictRequest, pb.PredictResponse]) error {
	panic("kaboom")
}

func testConfig() config.Configs {
	return config.Configs{
		GrpcMaxRecvBytes: constants.GrpcMaxRecvBytes,
		GrpcMaxSendBytes: constants.GrpcMaxSendBytes,
	}
}

func dial(t *testing.T, lis *bufconn.Listener) *grpc.ClientConn {
	t.Helper()
	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestRun_ServesUntilFlagFlips(t *testing.T) {
	srv := NewServer(testConfig(), handler.NewFasttextHandler(&modeltest.Fake{}, dispatch.New(2)))
	lis := bufconn.Listen(1 << 20)
	var running atomic.Bool
	running.Store(true)

	done := make(chan error, 1)
	go func() { done <- srv.Run(lis, &running) }()

	conn := dial(t, lis)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	hc, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: pb.FasttextServing_ServiceDesc.ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, hc.GetStatus())

	stream, err := pb.NewFasttextServingClient(conn).Predict(ctx)
	require.NoError(t, err)
	require.NoError(t, stream.Send(&pb.PredictRequest{Text: "hello", K: proto.Uint32(1)}))
	resp, err := stream.CloseAndRecv()
	require.NoError(t, err)
	require.Len(t, resp.GetPredictions(), 1)
	assert.Equal(t, []string{"hello"}, resp.GetPredictions()[0].GetLabels())

	running.Store(false)
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestStreamRecovery(t *testing.T) {
	srv := NewServer(testConfig(), panickingServer{})
	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.GRPCServer.Stop)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	stream, err := pb.NewFasttextServingClient(dial(t, lis)).Predict(ctx)
	require.NoError(t, err)
	_, err = stream.CloseAndRecv()
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestRecoveryInterceptor(t *testing.T) {
	info := &grpc.UnaryServerInfo{FullMethod: "/test/Panic"}
	_, err := RecoveryInterceptor(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
		panic("kaboom")
	})
	assert.Equal(t, codes.Internal, status.Code(err))

	resp, err := ServerInterceptor(context.Background(), "req", info, func(ctx context.Context, req any) (any, error) {
		return req, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "req", resp)
}

func TestStop_ForcesAfterTimeout(t *testing.T) {
	cfg := testConfig()
	cfg.ShutdownTimeout = 50 * time.Millisecond
	fake := &modeltest.Fake{}
	srv := NewServer(cfg, handler.NewFasttextHandler(fake, dispatch.New(2)))
	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.Serve(lis) }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	// an open stream that never half-closes keeps GracefulStop waiting
	stream, err := pb.NewFasttextServingClient(dial(t, lis)).Predict(ctx)
	require.NoError(t, err)
	require.NoError(t, stream.Send(&pb.PredictRequest{Text: "a"}))
	require.Eventually(t, func() bool { return fake.Calls() == 1 }, 5*time.Second, 10*time.Millisecond)

	start := time.Now()
	srv.Stop()
	assert.Less(t, time.Since(start), 5*time.Second)
}
