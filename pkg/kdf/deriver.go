package kdf

import (
	"crypto"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"

	"github.com/fzdarsky/srp6a/pkg/srp"
)

// Deriver turns credentials into the private key consumed by srp.
type Deriver interface {
	PrivateKey(username, password, salt []byte) ([]byte, error)
}

// Default hardening parameters.
const (
	DefaultPBKDF2Iterations = 600000
	DefaultArgon2Time       = 3
	DefaultArgon2MemoryKiB  = 64 * 1024
	DefaultArgon2Threads    = 4
	DefaultScryptN          = 1 << 15
	DefaultScryptR          = 8
	DefaultScryptP          = 1
	DefaultKeyLen           = 32
)

// SRP6a is the reference derivation x = H(salt | H(username | ":" | password)).
type SRP6a struct {
	Hash srp.Hash
}

// PrivateKey implements Deriver.
func (d SRP6a) PrivateKey(username, password, salt []byte) ([]byte, error) {
	if d.Hash == nil {
		return nil, fmt.Errorf("srp6a: hash is required")
	}
	return srp.DerivePrivateKey(d.Hash, username, password, salt), nil
}

// PBKDF2 derives the key with PBKDF2-HMAC over identity(username, password).
type PBKDF2 struct {
	Hash       crypto.Hash
	Iterations int
	KeyLen     int
}

// PrivateKey implements Deriver.
func (d PBKDF2) PrivateKey(username, password, salt []byte) ([]byte, error) {
	if !d.Hash.Available() {
		return nil, fmt.Errorf("pbkdf2: hash %v is not available", d.Hash)
	}
	if d.Iterations < 1 {
		return nil, fmt.Errorf("pbkdf2: iterations must be positive, got %d", d.Iterations)
	}

	in := identity(username, password)
	defer clear(in)
	return pbkdf2.Key(in, salt, d.Iterations, keyLen(d.KeyLen), d.Hash.New), nil
}

// Argon2id derives the key with Argon2id (RFC 9106).
type Argon2id struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
	KeyLen    int
}

// PrivateKey implements Deriver.
func (d Argon2id) PrivateKey(username, password, salt []byte) ([]byte, error) {
	if d.Time < 1 || d.Threads < 1 {
		return nil, fmt.Errorf("argon2id: time and threads must be positive")
	}
	if d.MemoryKiB < 8*uint32(d.Threads) {
		return nil, fmt.Errorf("argon2id: memory must be at least %d KiB", 8*uint32(d.Threads))
	}

	in := identity(username, password)
	defer clear(in)
	//nolint:gosec // G115: keyLen is bounded by configuration validation
	return argon2.IDKey(in, salt, d.Time, d.MemoryKiB, d.Threads, uint32(keyLen(d.KeyLen))), nil
}

// Scrypt derives the key with scrypt (RFC 7914).
type Scrypt struct {
	N, R, P int
	KeyLen  int
}

// PrivateKey implements Deriver.
func (d Scrypt) PrivateKey(username, password, salt []byte) ([]byte, error) {
	in := identity(username, password)
	defer clear(in)

	key, err := scrypt.Key(in, salt, d.N, d.R, d.P, keyLen(d.KeyLen))
	if err != nil {
		return nil, fmt.Errorf("scrypt: %w", err)
	}
	return key, nil
}

// identity binds the username into the hardened input as username ":" password.
func identity(username, password []byte) []byte {
	in := make([]byte, 0, len(username)+1+len(password))
	in = append(in, username...)
	in = append(in, ':')
	return append(in, password...)
}

func keyLen(n int) int {
	if n <= 0 {
		return DefaultKeyLen
	}
	return n
}
