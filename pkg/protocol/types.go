package protocol

import (
	"encoding/base64"
	"fmt"
)

// HandshakeRequest opens an SRP-6a handshake.
type HandshakeRequest struct {
	Username string `json:"username"`
	A        string `json:"A"` // Base64-encoded client ephemeral public key (little-endian)
}

// HandshakeResponse is the server's reply to a HandshakeRequest.
type HandshakeResponse struct {
	Salt string `json:"salt"` // Base64-encoded salt
	B    string `json:"B"`    // Base64-encoded server ephemeral public key (little-endian)
}

// ProofRequest carries the client proof.
type ProofRequest struct {
	M1 string `json:"M1"` // Base64-encoded client proof
}

// ProofResponse carries the server proof.
type ProofResponse struct {
	M2 string `json:"M2"` // Base64-encoded server proof
}

// RegistrationRequest carries the verifier for one-time registration. It must
// only travel over an integrity and confidentiality protected channel.
type RegistrationRequest struct {
	Username string `json:"username"`
	Salt     string `json:"salt"`     // Base64-encoded salt
	Verifier string `json:"verifier"` // Base64-encoded password verifier (little-endian)
}

// NewHandshakeRequest builds a HandshakeRequest from raw bytes.
//
//nolint:gocritic // A is capitalized per RFC 5054 SRP-6a specification
func NewHandshakeRequest(username string, A []byte) HandshakeRequest {
	return HandshakeRequest{Username: username, A: encode(A)}
}

// NewHandshakeResponse builds a HandshakeResponse from raw bytes.
//
//nolint:gocritic // B is capitalized per RFC 5054 SRP-6a specification
func NewHandshakeResponse(salt, B []byte) HandshakeResponse {
	return HandshakeResponse{Salt: encode(salt), B: encode(B)}
}

// NewProofRequest builds a ProofRequest from raw bytes.
//
//nolint:gocritic // M1 is capitalized per RFC 5054 SRP-6a specification
func NewProofRequest(M1 []byte) ProofRequest {
	return ProofRequest{M1: encode(M1)}
}

// NewProofResponse builds a ProofResponse from raw bytes.
//
//nolint:gocritic // M2 is capitalized per RFC 5054 SRP-6a specification
func NewProofResponse(M2 []byte) ProofResponse {
	return ProofResponse{M2: encode(M2)}
}

// NewRegistrationRequest builds a RegistrationRequest from raw bytes.
func NewRegistrationRequest(username string, salt, verifier []byte) RegistrationRequest {
	return RegistrationRequest{Username: username, Salt: encode(salt), Verifier: encode(verifier)}
}

// Values decodes the request into raw bytes.
func (r HandshakeRequest) Values() (username string, A []byte, err error) { //nolint:gocritic // RFC 5054 naming
	if r.Username == "" {
		return "", nil, NewInvalidRequestError("username is required")
	}
	A, err = decode("A", r.A)
	if err != nil {
		return "", nil, err
	}
	return r.Username, A, nil
}

// Values decodes the response into raw bytes.
func (r HandshakeResponse) Values() (salt, B []byte, err error) { //nolint:gocritic // RFC 5054 naming
	if salt, err = decode("salt", r.Salt); err != nil {
		return nil, nil, err
	}
	if B, err = decode("B", r.B); err != nil {
		return nil, nil, err
	}
	return salt, B, nil
}

// Value decodes the client proof.
func (r ProofRequest) Value() ([]byte, error) {
	return decode("M1", r.M1)
}

// Value decodes the server proof.
func (r ProofResponse) Value() ([]byte, error) {
	return decode("M2", r.M2)
}

// Values decodes the registration payload into raw bytes.
func (r RegistrationRequest) Values() (username string, salt, verifier []byte, err error) {
	if r.Username == "" {
		return "", nil, nil, NewInvalidRequestError("username is required")
	}
	if salt, err = decode("salt", r.Salt); err != nil {
		return "", nil, nil, err
	}
	if verifier, err = decode("verifier", r.Verifier); err != nil {
		return "", nil, nil, err
	}
	return r.Username, salt, verifier, nil
}

func encode(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// decode rejects missing and malformed base64 fields.
func decode(field, value string) ([]byte, error) {
	if value == "" {
		return nil, NewInvalidRequestError(fmt.Sprintf("%s is required", field))
	}
	b, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, NewInvalidRequestError(fmt.Sprintf("invalid %s encoding: %v", field, err))
	}
	return b, nil
}
