package entity

import "errors"

// Error taxonomy of the gateway protocol layer. Errors returned by the
// package are wrapped with fmt.Errorf("...: %w", ...) so callers can
// test with errors.Is.
var (
	// ErrInvalidCredentials reports a malformed merchant ID, secret key
	// or shop ID. Raised at construction time, or at signing time when
	// the key does not decode to 32 raw bytes.
	ErrInvalidCredentials = errors.New("invalid merchant credentials")

	// ErrConnectivity reports a transport failure reaching the gateway
	// server. The call is not retried internally.
	ErrConnectivity = errors.New("gateway unreachable")

	// ErrProtocol reports a gateway response of unexpected shape,
	// e.g. non-JSON where a JSON array was expected.
	ErrProtocol = errors.New("unexpected gateway response")

	// ErrValidation reports a payment request with a missing required
	// field. The request must not be submitted.
	ErrValidation = errors.New("invalid payment request")
)
