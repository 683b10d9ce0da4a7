// Package inference provides ONNX Runtime integration for tagger inference.
package inference

import (
	"context"
	"fmt"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

var (
	ortEnvOnce sync.Once
	ortEnvErr  error
)

// initORT initializes ONNX Runtime environment once.
func initORT() error {
	ortEnvOnce.Do(func() {
		ortEnvErr = ort.InitializeEnvironment()
	})
	return ortEnvErr
}

// IO names the model's input and output tensors.
type IO struct {
	Input  string
	Output string
}

// DefaultIO matches the exported BiLSTM tagger: int64 token ids in, one
// score per tag per token out.
var DefaultIO = IO{Input: "input_ids", Output: "emissions"}

// Session wraps an ONNX Runtime session for tagger inference.
type Session struct {
	session *ort.DynamicAdvancedSession
	mu      sync.Mutex
	closed  bool
}

// NewSession creates a new ONNX session from a model file.
func NewSession(modelPath string, io IO) (*Session, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file: %w", err)
	}

	if err := initORT(); err != nil {
		return nil, fmt.Errorf("initializing ONNX runtime: %w", err)
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("creating session options: %w", err)
	}
	defer func() { _ = options.Destroy() }() // Cleanup error doesn't affect success

	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		[]string{io.Input},
		[]string{io.Output},
		options,
	)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	return &Session{session: session}, nil
}

// Infer runs the model on a batch of token ids laid out row by row and
// returns the raw output scores, batchSize*seqLen*numTags values.
func (s *Session) Infer(ctx context.Context, inputIDs []int64, batchSize, seqLen int) ([]float32, error) {
	// Check context before expensive operation
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if batchSize <= 0 || seqLen <= 0 || len(inputIDs) != batchSize*seqLen {
		return nil, fmt.Errorf("%w: %d ids for %dx%d", ErrShape, len(inputIDs), batchSize, seqLen)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSessionClosed
	}

	inputTensor, err := ort.NewTensor(
		ort.NewShape(int64(batchSize), int64(seqLen)),
		inputIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("creating input tensor: %w", err)
	}
	defer func() { _ = inputTensor.Destroy() }()

	// nil entries are allocated by Run
	outputs := []ort.Value{nil}

	if err := s.session.Run([]ort.Value{inputTensor}, outputs); err != nil {
		return nil, fmt.Errorf("running inference: %w", err)
	}

	if outputs[0] == nil {
		return nil, fmt.Errorf("no output produced")
	}
	defer func() { _ = outputs[0].Destroy() }()

	scoresTensor, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected output tensor type %T", outputs[0])
	}

	data := scoresTensor.GetData()
	scores := make([]float32, len(data))
	copy(scores, data)

	return scores, nil
}

// Close releases ONNX resources.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	if s.session != nil {
		return s.session.Destroy()
	}
	return nil
}
