package srp

import (
	"math/big"
	"slices"
)

var bigOne = big.NewInt(1)

// PowMod returns base^exp mod m using left-to-right square-and-multiply.
// m must be greater than zero. The running time depends on the bits of exp,
// so it is not constant-time.
func PowMod(base, exp, m *big.Int) *big.Int {
	b := new(big.Int).Mod(base, m)
	result := new(big.Int).Set(bigOne)

	for i := exp.BitLen() - 1; i >= 0; i-- {
		result.Mul(result, result)
		result.Mod(result, m)
		if exp.Bit(i) == 1 {
			result.Mul(result, b)
			result.Mod(result, m)
		}
	}

	// exp == 0 with m == 1 must still yield 0
	return result.Mod(result, m)
}

// fromLE interprets b as an unsigned little-endian integer.
func fromLE(b []byte) *big.Int {
	be := slices.Clone(b)
	slices.Reverse(be)
	return new(big.Int).SetBytes(be)
}

// toLE serializes x as unsigned little-endian bytes. Zero encodes as a
// single zero byte, matching what peers put on the wire.
func toLE(x *big.Int) []byte {
	b := x.Bytes()
	if len(b) == 0 {
		return []byte{0}
	}
	slices.Reverse(b)
	return b
}

// DecodeInt decodes a little-endian wire integer.
func DecodeInt(b []byte) *big.Int { return fromLE(b) }

// EncodeInt encodes x as a little-endian wire integer.
func EncodeInt(x *big.Int) []byte { return toLE(x) }
