package srp

// DerivePrivateKey computes the SRP-6a private key
// x = H(salt | H(username | ":" | password)).
// Prefer a password-hardening function (see package kdf) where both peers allow it.
func DerivePrivateKey(h Hash, username, password, salt []byte) []byte {
	identity := digest(h, username, []byte(":"), password)
	return digest(h, salt, identity)
}

// PasswordVerifier computes v = g^x mod N for registration, with x the
// little-endian private key. The verifier is returned little-endian.
func PasswordVerifier(privateKey []byte, params *Params) []byte {
	return toLE(params.Exp(fromLE(privateKey)))
}
