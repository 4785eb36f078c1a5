package srp

import (
	"crypto/subtle"
	"slices"
)

// Verifier is the client state after ProcessReply. It holds the client proof
// M1, the expected server proof M2 and the session key K, and releases K at
// most once.
type Verifier struct {
	proof       []byte // M1
	serverProof []byte // M2
	key         []byte // K
}

// Proof returns the client proof M1 to send to the server. It may be called
// any number of times.
func (v *Verifier) Proof() []byte {
	return slices.Clone(v.proof)
}

// VerifyServer consumes the verifier and compares the server's reply with the
// expected M2. K is returned only on an exact match; otherwise the key is
// wiped and ErrServerAuthenticationFailed is returned.
func (v *Verifier) VerifyServer(reply []byte) ([]byte, error) {
	if v.key == nil {
		return nil, ErrVerifierConsumed
	}

	if subtle.ConstantTimeCompare(reply, v.serverProof) != 1 {
		v.clearSecrets()
		return nil, ErrServerAuthenticationFailed
	}

	return v.release(), nil
}

// InsecureKey consumes the verifier and returns K WITHOUT authenticating the
// server. Only use it when the peer is authenticated by other means, e.g. an
// authenticated cipher keyed with K.
func (v *Verifier) InsecureKey() ([]byte, error) {
	if v.key == nil {
		return nil, ErrVerifierConsumed
	}
	return v.release(), nil
}

// release hands ownership of K to the caller.
func (v *Verifier) release() []byte {
	key := v.key
	v.key = nil
	clear(v.serverProof)
	v.serverProof = nil
	return key
}

// clearSecrets wipes K and M2.
func (v *Verifier) clearSecrets() {
	clear(v.key)
	v.key = nil
	clear(v.serverProof)
	v.serverProof = nil
}
