// Package srp provides the client side of the SRP-6a (Secure Remote Password)
// key exchange.
//
// Both peers MUST use identical domain parameters and digest. All big integers
// cross the wire as unsigned little-endian byte strings.
//
// A typical exchange:
//
//	params, _ := group.Params(crypto.SHA256)
//	session, err := srp.NewSession(params, crypto.SHA256, rand.Reader)
//	// send username, session.PublicEphemeral(); receive salt, B
//	x := srp.DerivePrivateKey(crypto.SHA256, username, password, salt)
//	verifier, err := session.ProcessReply(x, B)
//	// send verifier.Proof(); receive M2
//	key, err := verifier.VerifyServer(M2)
package srp

import (
	"fmt"
	"math/big"
)

// Params holds the shared domain parameters N, g and k. A Params value is
// never modified after construction and is safe for concurrent use.
type Params struct {
	n *big.Int
	g *big.Int
	k *big.Int
}

// NewParams validates and copies the given modulus, generator and multiplier.
//
//nolint:gocritic // N is capitalized per RFC 5054 SRP-6a specification
func NewParams(N, g, k *big.Int) (*Params, error) {
	if err := checkGroup(N, g); err != nil {
		return nil, err
	}
	if k == nil || k.Sign() <= 0 {
		return nil, fmt.Errorf("%w: k must be positive", ErrInvalidParams)
	}

	return &Params{
		n: new(big.Int).Set(N),
		g: new(big.Int).Set(g),
		k: new(big.Int).Set(k),
	}, nil
}

// DeriveParams validates N and g and derives the multiplier k = H(N | PAD(g)).
//
//nolint:gocritic // N is capitalized per RFC 5054 SRP-6a specification
func DeriveParams(h Hash, N, g *big.Int) (*Params, error) {
	if err := checkGroup(N, g); err != nil {
		return nil, err
	}
	return NewParams(N, g, ComputeMultiplier(h, N, g))
}

//nolint:gocritic // N is capitalized per RFC 5054 SRP-6a specification
func checkGroup(N, g *big.Int) error {
	if N == nil || g == nil {
		return fmt.Errorf("%w: N and g are required", ErrInvalidParams)
	}
	if N.Cmp(bigOne) <= 0 || N.Bit(0) != 1 {
		return fmt.Errorf("%w: N must be an odd integer greater than 1", ErrInvalidParams)
	}
	if g.Cmp(bigOne) <= 0 || g.Cmp(N) >= 0 {
		return fmt.Errorf("%w: g must satisfy 1 < g < N", ErrInvalidParams)
	}
	return nil
}

// N returns a copy of the modulus.
func (p *Params) N() *big.Int { return new(big.Int).Set(p.n) }

// G returns a copy of the generator.
func (p *Params) G() *big.Int { return new(big.Int).Set(p.g) }

// K returns a copy of the multiplier.
func (p *Params) K() *big.Int { return new(big.Int).Set(p.k) }

// Exp computes g^x mod N.
func (p *Params) Exp(x *big.Int) *big.Int {
	return PowMod(p.g, x, p.n)
}

// ByteLen is the number of random bytes drawn for a client secret, bitlen(N)/8.
func (p *Params) ByteLen() int {
	return p.n.BitLen() / 8
}

// ComputeMultiplier computes the SRP-6a multiplier k = H(N | PAD(g)), where
// PAD left-pads g with zeros to the byte length of N. Both inputs and the
// result are big-endian, as in RFC 5054. The padding assumes g < N, which
// DeriveParams checks; a longer g is hashed unpadded.
//
//nolint:gocritic // N is capitalized per RFC 5054 SRP-6a specification
func ComputeMultiplier(h Hash, N, g *big.Int) *big.Int {
	nBytes := N.Bytes()
	gRaw := g.Bytes()
	gBytes := make([]byte, max(len(nBytes), len(gRaw)))
	copy(gBytes[len(gBytes)-len(gRaw):], gRaw)

	return new(big.Int).SetBytes(digest(h, nBytes, gBytes))
}
