package domain

import (
	"errors"
	"fmt"
)

// ErrorCode is the closed set of failure classes the pipeline can surface.
// Callers switch on the code instead of matching error strings.
type ErrorCode string

const (
	CodeInvalidArgument    ErrorCode = "invalid_argument"
	CodeNotFound           ErrorCode = "not_found"
	CodeFailedPrecondition ErrorCode = "failed_precondition"
	CodeResourceExhausted  ErrorCode = "resource_exhausted"
	CodeUpstreamError      ErrorCode = "upstream_error"
	CodeProcessingFailed   ErrorCode = "processing_failed"
	CodeTimeout            ErrorCode = "timeout"
	CodeInternal           ErrorCode = "internal"
)

// Error carries a taxonomy code plus structured context about the failure.
// UpstreamStatus/UpstreamBody are set for CodeUpstreamError, JobStatus for
// CodeProcessingFailed.
type Error struct {
	Code           ErrorCode
	Message        string
	UpstreamStatus int
	UpstreamBody   string
	JobStatus      string
	cause          error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Errorf(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WrapError classifies an arbitrary error as Internal unless it already
// carries a taxonomy code, in which case it passes through unchanged.
func WrapError(err error, message string) *Error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	return &Error{Code: CodeInternal, Message: message, cause: err}
}

// UpstreamError records a non-2xx answer (or malformed success body) from the
// external generation service.
func UpstreamError(status int, body string) *Error {
	return &Error{
		Code:           CodeUpstreamError,
		Message:        fmt.Sprintf("upstream returned status %d", status),
		UpstreamStatus: status,
		UpstreamBody:   body,
	}
}

// ProcessingFailed records a terminal failure or moderation verdict from the
// external service. It is definitive and never retried.
func ProcessingFailed(jobStatus string) *Error {
	return &Error{
		Code:      CodeProcessingFailed,
		Message:   fmt.Sprintf("processing failed: %s", jobStatus),
		JobStatus: jobStatus,
	}
}

// CodeOf extracts the taxonomy code from err, defaulting to CodeInternal for
// unclassified errors.
func CodeOf(err error) ErrorCode {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// Retryable reports whether the caller-side wrapper may re-run the whole
// pipeline for this failure. Validation, lookup, precondition, quota and
// moderation outcomes are final; only transient classes are worth another
// attempt.
func Retryable(err error) bool {
	switch CodeOf(err) {
	case CodeUpstreamError, CodeTimeout, CodeInternal:
		return true
	default:
		return false
	}
}
