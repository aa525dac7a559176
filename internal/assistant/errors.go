package assistant

import "errors"

var (
	// ErrUnavailable indicates the completion endpoint is unreachable.
	ErrUnavailable = errors.New("assistant endpoint unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("assistant request timed out")

	// ErrInvalidOutput indicates the endpoint responded with a body
	// that carried no usable completion.
	ErrInvalidOutput = errors.New("invalid assistant output")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("assistant retry attempts exhausted")
)
