package usecase

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every way a forecast request can fail.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindMissingInput
	KindNonNumericInput
	KindInsufficientHistory
	KindModelUnavailable
	KindInferenceFailure
)

func (k ErrorKind) String() string {
	switch k {
	case KindMissingInput:
		return "missing_input"
	case KindNonNumericInput:
		return "non_numeric_input"
	case KindInsufficientHistory:
		return "insufficient_history"
	case KindModelUnavailable:
		return "model_unavailable"
	case KindInferenceFailure:
		return "inference_failure"
	default:
		return "unknown"
	}
}

// Error is a forecast failure with a client-facing message.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Kind != KindInferenceFailure {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func ErrMissingInput() *Error {
	return &Error{Kind: KindMissingInput, Message: "Missing model type or input data"}
}

func ErrNonNumericInput(cause error) *Error {
	return &Error{Kind: KindNonNumericInput, Message: "Input data must contain only comma-separated numbers", Err: cause}
}

func ErrInsufficientHistory() *Error {
	return &Error{Kind: KindInsufficientHistory, Message: fmt.Sprintf("Please enter at least %d past prices.", WindowSize)}
}

func ErrModelUnavailable(model string) *Error {
	return &Error{Kind: KindModelUnavailable, Message: "Model \"" + model + "\" is not available or failed to load."}
}

// ErrInferenceFailure embeds the cause text in the message.
func ErrInferenceFailure(cause error) *Error {
	return &Error{Kind: KindInferenceFailure, Message: "Internal server error: " + cause.Error(), Err: cause}
}

// KindOf returns the kind of err, or KindUnknown when err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
