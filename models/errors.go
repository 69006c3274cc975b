package models

import (
	"errors"
	"fmt"
)

// ErrRecordNotFound is returned when a lookup matches nothing.
var ErrRecordNotFound = errors.New("record not found")

// ErrInvalidURL is returned when an injected URL fails validation.
var ErrInvalidURL = errors.New("invalid url")

// Transform error taxonomy. Callers outside the transform engine only ever
// see these codes, never upstream detail or stack traces.
const (
	CodeParseFailure           = "PARSE_FAILURE"
	CodeMarketTransformFailure = "MARKET_TRANSFORM_FAILURE"
	CodeEventTransformFailure  = "EVENT_TRANSFORM_FAILURE"
	CodeBatchFailure           = "BATCH_FAILURE"
)

// TransformError is a typed failure from the transformation pipeline.
type TransformError struct {
	Code    string
	Message string
	Cause   error
}

func (e *TransformError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *TransformError) Unwrap() error {
	return e.Cause
}

// NewTransformError builds a TransformError with the given taxonomy code.
func NewTransformError(code, message string, cause error) *TransformError {
	return &TransformError{Code: code, Message: message, Cause: cause}
}

// IsTransformCode reports whether err is a TransformError carrying code.
func IsTransformCode(err error, code string) bool {
	var te *TransformError
	if errors.As(err, &te) {
		return te.Code == code
	}
	return false
}
