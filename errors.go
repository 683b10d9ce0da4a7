package ner

import "errors"

// Sentinel errors for conditions callers may need to handle differently.
var (
	// ErrModelNotFound indicates the model file does not exist.
	ErrModelNotFound = errors.New("ner: model file not found")

	// ErrInvalidModel indicates the model file exists but could not be loaded.
	ErrInvalidModel = errors.New("ner: invalid model format")

	// ErrScoreShape indicates predictor output that does not hold one score
	// vector of tagset.Size entries per token.
	ErrScoreShape = errors.New("ner: unexpected score shape")

	// ErrBatchShape indicates a batch whose rows differ in length or whose
	// labels do not line up with its input ids.
	ErrBatchShape = errors.New("ner: malformed batch")
)
