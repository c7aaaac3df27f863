package constants

const (
	// LabelPrefix is stripped from every label the model returns.
	LabelPrefix = "__label__"

	DefaultK         int32   = 1
	DefaultThreshold float32 = 0.0

	DefaultAddress = "127.0.0.1"
	DefaultPort    = 8000
	DefaultAppName = "fasttext-serving"

	// UnixAddressPrefix marks an address as a filesystem socket path.
	UnixAddressPrefix = "unix:"

	MaxRequestBytes  = 20 * 1024 * 1024
	GrpcMaxRecvBytes = 20 * 1024 * 1024
	GrpcMaxSendBytes = 10 * 1024 * 1024

	ProtocolHTTP = "http"
	ProtocolGRPC = "grpc"
	ProtocolMux  = "mux"

	RequestIdHeader = "X-Request-Id"
)
