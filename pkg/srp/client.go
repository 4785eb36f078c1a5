package srp

import (
	"fmt"
	"io"
	"math/big"
)

// Session is the client state before the server's reply has been processed.
// It owns the ephemeral secret a and is good for exactly one ProcessReply.
type Session struct {
	params *Params
	hash   Hash
	a      *big.Int // Client ephemeral private value
	aPub   []byte   // Client ephemeral public value A, little-endian
}

// NewSession draws bitlen(N)/8 bytes from random, interprets them as the
// little-endian secret a and computes A = g^a mod N.
// A failing random source yields an error wrapping ErrRandomSource.
func NewSession(params *Params, h Hash, random io.Reader) (*Session, error) {
	buf := make([]byte, params.ByteLen())
	defer clear(buf)

	if _, err := io.ReadFull(random, buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRandomSource, err)
	}

	a := fromLE(buf)
	return &Session{
		params: params,
		hash:   h,
		a:      a,
		aPub:   toLE(params.Exp(a)),
	}, nil
}

// PublicEphemeral returns A for the handshake request.
func (s *Session) PublicEphemeral() []byte {
	return append([]byte(nil), s.aPub...)
}

// ProcessReply consumes the session: it derives the session key from the
// server's public value B (raw wire bytes) and the private key x, and returns
// the verifier holding M1, the expected M2 and K. The ephemeral secret is
// wiped on return whatever the outcome, so a second call fails with
// ErrSessionConsumed.
func (s *Session) ProcessReply(privateKey, serverPublic []byte) (*Verifier, error) {
	if s.a == nil {
		return nil, ErrSessionConsumed
	}
	defer s.clearSecrets()

	// u = H(A | B) over B exactly as received
	u := fromLE(digest(s.hash, s.aPub, serverPublic))

	B := fromLE(serverPublic)
	if new(big.Int).Mod(B, s.params.n).Sign() == 0 {
		return nil, ErrMaliciousPublicValue
	}

	x := fromLE(privateKey)
	key := s.sessionKey(B, x, u)

	// M1 = H(A | B | K)
	proof := digest(s.hash, s.aPub, toLE(B), key)
	// M2 = H(A | M1 | K)
	serverProof := digest(s.hash, s.aPub, proof, key)

	return &Verifier{
		proof:       proof,
		serverProof: serverProof,
		key:         key,
	}, nil
}

// sessionKey computes K = H(S) with S = (B - k*g^x)^(a + u*x mod N) mod N.
//
//nolint:gocritic // B is capitalized per RFC 5054 SRP-6a specification
func (s *Session) sessionKey(B, x, u *big.Int) []byte {
	n := s.params.n

	interm := new(big.Int).Mul(s.params.k, s.params.Exp(x))
	interm.Mod(interm, n)

	// B = kv + g^b is reduced mod N by the server, so B may be below kv
	base := new(big.Int)
	if B.Cmp(interm) > 0 {
		base.Sub(B, interm)
	} else {
		base.Add(n, B)
		base.Sub(base, interm)
	}
	base.Mod(base, n)

	// Only u*x is reduced; reducing the whole exponent would change S.
	exponent := new(big.Int).Mul(u, x)
	exponent.Mod(exponent, n)
	exponent.Add(exponent, s.a)

	S := PowMod(base, exponent, n)
	defer S.SetInt64(0)

	return digest(s.hash, toLE(S))
}

// clearSecrets drops the ephemeral secret.
func (s *Session) clearSecrets() {
	if s.a != nil {
		s.a.SetInt64(0)
		s.a = nil
	}
}
