package config

import (
	"crypto"
	_ "crypto/sha1" //nolint:gosec // G505: SHA-1 kept for RFC 5054 interoperability
	_ "crypto/sha256"
	_ "crypto/sha512"
	"fmt"
	"maps"
	"slices"
	"strings"

	_ "golang.org/x/crypto/blake2b"
	_ "golang.org/x/crypto/sha3"
)

var hashes = map[string]crypto.Hash{
	"sha1":        crypto.SHA1,
	"sha256":      crypto.SHA256,
	"sha384":      crypto.SHA384,
	"sha512":      crypto.SHA512,
	"sha3-256":    crypto.SHA3_256,
	"sha3-512":    crypto.SHA3_512,
	"blake2b-256": crypto.BLAKE2b_256,
	"blake2b-512": crypto.BLAKE2b_512,
}

// ParseHash maps a digest name onto a registered crypto.Hash.
func ParseHash(name string) (crypto.Hash, error) {
	h, ok := hashes[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("unknown hash %q (valid: %s)", name, strings.Join(HashNames(), ", "))
	}
	if !h.Available() {
		return 0, fmt.Errorf("hash %q is not linked into this binary", name)
	}
	return h, nil
}

// HashNames lists the supported digest names.
func HashNames() []string {
	return slices.Sorted(maps.Keys(hashes))
}
