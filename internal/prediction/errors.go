package prediction

import "errors"

// ErrModelNotReady means the classifier or its vocabulary failed to load at
// startup. It is permanent for the life of the process.
var ErrModelNotReady = errors.New("model not loaded")

// InferenceError wraps any failure while preprocessing or classifying.
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string {
	return "prediction failed: " + e.Err.Error()
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}
