// Package protocol defines the SRP-6a handshake messages exchanged with a
// server and the error codes reported for failed exchanges.
package protocol

import (
	"errors"
	"fmt"

	"github.com/fzdarsky/srp6a/pkg/srp"
)

// ErrorCode represents a standardized error code for an SRP-6a exchange.
type ErrorCode string

// Error codes.
const (
	// ErrCodeMaliciousPublicValue indicates the peer sent a public value congruent to 0 mod N.
	ErrCodeMaliciousPublicValue ErrorCode = "MALICIOUS_PUBLIC_VALUE"
	// ErrCodeServerAuthenticationFailed indicates the server proof did not match.
	ErrCodeServerAuthenticationFailed ErrorCode = "SERVER_AUTHENTICATION_FAILED"
	// ErrCodeRandomSourceFailure indicates the random source failed.
	ErrCodeRandomSourceFailure ErrorCode = "RANDOM_SOURCE_FAILURE"
	// ErrCodeSessionConsumed indicates a single-use session or verifier was reused.
	ErrCodeSessionConsumed ErrorCode = "SESSION_CONSUMED"

	// ErrCodeInvalidRequest indicates a message payload is invalid.
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	// ErrCodeInvalidParameters indicates unusable domain parameters.
	ErrCodeInvalidParameters ErrorCode = "INVALID_PARAMETERS"
	// ErrCodeConfigurationError indicates a configuration error.
	ErrCodeConfigurationError ErrorCode = "CONFIGURATION_ERROR"
	// ErrCodeSystemError indicates any other failure.
	ErrCodeSystemError ErrorCode = "SYSTEM_ERROR"
)

// ErrorResponse represents a standardized error report.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *ErrorResponse) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError creates a new ErrorResponse.
func NewError(code ErrorCode, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// NewErrorWithDetails creates a new ErrorResponse with details.
func NewErrorWithDetails(code ErrorCode, message, details string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewMaliciousPublicValueError creates a malicious public value error.
func NewMaliciousPublicValueError() *ErrorResponse {
	return NewError(ErrCodeMaliciousPublicValue, "Public ephemeral value is 0 mod N")
}

// NewServerAuthenticationFailedError creates a server authentication failed error.
func NewServerAuthenticationFailedError() *ErrorResponse {
	return NewError(ErrCodeServerAuthenticationFailed, "Server proof does not match")
}

// NewRandomSourceFailureError creates a random source failure error.
func NewRandomSourceFailureError(details string) *ErrorResponse {
	return NewErrorWithDetails(ErrCodeRandomSourceFailure, "Random source failure", details)
}

// NewSessionConsumedError creates a session consumed error.
func NewSessionConsumedError() *ErrorResponse {
	return NewError(ErrCodeSessionConsumed, "Session already used")
}

// NewInvalidRequestError creates an invalid request error.
func NewInvalidRequestError(details string) *ErrorResponse {
	return NewErrorWithDetails(ErrCodeInvalidRequest, "Invalid request", details)
}

// NewInvalidParametersError creates an invalid parameters error.
func NewInvalidParametersError(details string) *ErrorResponse {
	return NewErrorWithDetails(ErrCodeInvalidParameters, "Invalid domain parameters", details)
}

// NewConfigurationError creates a configuration error.
func NewConfigurationError(details string) *ErrorResponse {
	return NewErrorWithDetails(ErrCodeConfigurationError, "Configuration error", details)
}

// NewSystemError creates a system error.
func NewSystemError(details string) *ErrorResponse {
	return NewErrorWithDetails(ErrCodeSystemError, "System error", details)
}

// FromError maps an error from package srp onto an ErrorResponse. Errors that
// already are an *ErrorResponse are returned unchanged.
func FromError(err error) *ErrorResponse {
	if err == nil {
		return nil
	}

	var resp *ErrorResponse
	if errors.As(err, &resp) {
		return resp
	}

	switch {
	case errors.Is(err, srp.ErrMaliciousPublicValue):
		return NewMaliciousPublicValueError()
	case errors.Is(err, srp.ErrServerAuthenticationFailed):
		return NewServerAuthenticationFailedError()
	case errors.Is(err, srp.ErrRandomSource):
		return NewRandomSourceFailureError(err.Error())
	case errors.Is(err, srp.ErrSessionConsumed), errors.Is(err, srp.ErrVerifierConsumed):
		return NewSessionConsumedError()
	case errors.Is(err, srp.ErrInvalidParams):
		return NewInvalidParametersError(err.Error())
	default:
		return NewSystemError(err.Error())
	}
}
