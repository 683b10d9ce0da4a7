package inference

import "errors"

var (
	// ErrPoolClosed is returned by Acquire after Close.
	ErrPoolClosed = errors.New("inference: pool closed")

	// ErrSessionClosed is returned by Infer after Close.
	ErrSessionClosed = errors.New("inference: session closed")

	// ErrShape indicates input ids that do not fill a batchSize x seqLen grid.
	ErrShape = errors.New("inference: input shape mismatch")
)
