package srp

import "errors"

var (
	// ErrMaliciousPublicValue is returned when the server's public ephemeral
	// value B is congruent to zero modulo N.
	ErrMaliciousPublicValue = errors.New("srp: malicious public value: B mod N == 0")

	// ErrServerAuthenticationFailed is returned when the server proof does not
	// match the expected M2. Mismatched domain parameters also end up here.
	ErrServerAuthenticationFailed = errors.New("srp: server authentication failed: M2 mismatch")

	// ErrRandomSource wraps a failure of the random source during session creation.
	ErrRandomSource = errors.New("srp: random source failure")

	// ErrSessionConsumed is returned when a session is used for a second reply.
	ErrSessionConsumed = errors.New("srp: session already consumed")

	// ErrVerifierConsumed is returned when a verifier releases its key twice.
	ErrVerifierConsumed = errors.New("srp: verifier already consumed")

	// ErrInvalidParams is returned by NewParams for unusable domain parameters.
	ErrInvalidParams = errors.New("srp: invalid domain parameters")
)
