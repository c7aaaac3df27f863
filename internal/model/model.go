package model

import "errors"

var (
	ErrNotSupervised = errors.New("model needs to be supervised for prediction")
	ErrInvalidK      = errors.New("k needs to be 1 or higher")
)

// Prediction is one ranked label as produced by the model, prefix included.
type Prediction struct {
	Label string
	Prob  float32
}

// Model is a loaded, read-only classifier shared by every request.
// Implementations must be safe for concurrent use.
type Model interface {
	Predict(text string, k int32, threshold float32) ([]Prediction, error)
	SentenceVector(text string) ([]float32, error)
	Info() Info
}

// Info describes a loaded model.
type Info struct {
	Dimension int    `json:"dimension"`
	Words     int    `json:"words"`
	Labels    int    `json:"labels"`
	Loss      string `json:"loss"`
	Kind      string `json:"model"`
	Quantized bool   `json:"quantized"`
	Version   int    `json:"version"`
}
