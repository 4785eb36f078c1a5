// Package kdf derives SRP private keys from a username, password and salt.
//
// SRP6a is the protocol's reference derivation. PBKDF2, Argon2id and Scrypt
// harden the password against offline guessing and should be preferred when
// the server side is configured for the same scheme.
package kdf

//go:generate go tool mockgen -destination=mock_deriver.go -package=kdf github.com/fzdarsky/srp6a/pkg/kdf Deriver
