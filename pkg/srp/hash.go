package srp

import "hash"

// Hash is the digest capability the protocol is generic over. crypto.Hash
// values (crypto.SHA256, crypto.BLAKE2b_256, ...) satisfy it directly.
type Hash interface {
	New() hash.Hash
	Size() int
}

// digest returns H(parts[0] | parts[1] | ...).
func digest(h Hash, parts ...[]byte) []byte {
	d := h.New()
	for _, p := range parts {
		d.Write(p)
	}
	return d.Sum(make([]byte, 0, h.Size()))
}
