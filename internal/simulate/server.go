// Package simulate implements the server side of the SRP-6a exchange in the
// same wire variant as package srp, so that a complete handshake can be run
// inside one process for self-tests.
package simulate

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/fzdarsky/srp6a/pkg/srp"
)

// ErrClientAuthenticationFailed is returned when the client proof M1 is wrong.
var ErrClientAuthenticationFailed = errors.New("authentication failed: invalid proof M1")

// Server represents the server-side state for one SRP-6a authentication session.
type Server struct {
	Username string
	Salt     []byte

	params   *srp.Params
	hash     srp.Hash
	verifier *big.Int
	b        *big.Int // Server ephemeral private value
	A        []byte   // Client ephemeral public value (received during init)
	B        []byte   // Server ephemeral public value
	K        []byte   // Session key
}

// NewServer creates a server session for a registered user. verifier is the
// little-endian value produced by srp.PasswordVerifier.
func NewServer(params *srp.Params, h srp.Hash, username string, salt, verifier []byte) *Server {
	return &Server{
		Username: username,
		Salt:     salt,
		params:   params,
		hash:     h,
		verifier: srp.DecodeInt(verifier),
	}
}

// Init handles the first phase: it records A, draws b from random and returns
// the salt and B = (k*v + g^b) mod N.
//
//nolint:gocritic // A is capitalized per RFC 5054 SRP-6a specification
func (s *Server) Init(A []byte, random io.Reader) (salt, B []byte, err error) {
	N := s.params.N()

	// Validate A (must not be 0 mod N)
	if new(big.Int).Mod(srp.DecodeInt(A), N).Sign() == 0 {
		return nil, nil, fmt.Errorf("invalid A: A mod N == 0")
	}
	s.A = append([]byte(nil), A...)

	bBytes := make([]byte, s.params.ByteLen())
	if _, err := io.ReadFull(random, bBytes); err != nil {
		return nil, nil, fmt.Errorf("failed to generate random b: %w", err)
	}
	s.b = srp.DecodeInt(bBytes)
	clear(bBytes)

	// B = (k*v + g^b) % N
	kv := new(big.Int).Mul(s.params.K(), s.verifier)
	kv.Add(kv, s.params.Exp(s.b))
	kv.Mod(kv, N)

	if kv.Sign() == 0 {
		return nil, nil, fmt.Errorf("invalid B: B mod N == 0 (regenerate b)")
	}
	s.B = srp.EncodeInt(kv)

	return s.Salt, s.B, nil
}

// Verify handles the second phase: it checks the client proof M1 and returns
// the server proof M2 = H(A | M1 | K).
//
//nolint:gocritic // M1 is capitalized per RFC 5054 SRP-6a specification
func (s *Server) Verify(M1 []byte) ([]byte, error) {
	if s.A == nil || s.B == nil {
		return nil, fmt.Errorf("init must be called before verify")
	}

	s.computeSessionKey()

	// M1 = H(A | B | K)
	expected := digest(s.hash, s.A, s.B, s.K)
	if subtle.ConstantTimeCompare(M1, expected) != 1 {
		return nil, ErrClientAuthenticationFailed
	}

	return digest(s.hash, s.A, M1, s.K), nil
}

// computeSessionKey computes the session key K = H(S) with
// S = (A * v^u)^b % N and u = H(A | B).
func (s *Server) computeSessionKey() {
	N := s.params.N()
	u := srp.DecodeInt(digest(s.hash, s.A, s.B))

	avu := srp.PowMod(s.verifier, u, N)
	avu.Mul(avu, srp.DecodeInt(s.A))
	avu.Mod(avu, N)

	S := srp.PowMod(avu, s.b, N)
	s.K = digest(s.hash, srp.EncodeInt(S))
	S.SetInt64(0)
}

// SessionKey returns the computed session key K.
// Should only be called after a successful Verify.
func (s *Server) SessionKey() []byte {
	return s.K
}

// ClearSecrets clears sensitive values from memory.
func (s *Server) ClearSecrets() {
	if s.b != nil {
		s.b.SetInt64(0)
		s.b = nil
	}
	clear(s.K)
	s.K = nil
}

func digest(h srp.Hash, parts ...[]byte) []byte {
	d := h.New()
	for _, p := range parts {
		d.Write(p)
	}
	return d.Sum(nil)
}
