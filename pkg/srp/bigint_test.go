package srp

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPowMod_MatchesExp(t *testing.T) {
	m := new(big.Int).SetUint64(0x8000000000000a77)

	tests := []struct {
		name string
		base int64
		exp  int64
	}{
		{"zero exponent", 5, 0},
		{"one exponent", 5, 1},
		{"small", 2, 10},
		{"base above modulus", 1 << 62, 12345},
		{"large exponent", 7, 0x7fffffffffffffff},
		{"zero base", 0, 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := big.NewInt(tt.base)
			exp := big.NewInt(tt.exp)

			got := PowMod(base, exp, m)
			want := new(big.Int).Exp(base, exp, m)
			assert.Equal(t, 0, want.Cmp(got), "got %v want %v", got, want)
		})
	}
}

func TestPowMod_ZeroExponentIsOne(t *testing.T) {
	got := PowMod(big.NewInt(123456789), big.NewInt(0), big.NewInt(1000003))
	assert.Equal(t, int64(1), got.Int64())
}

func TestPowMod_ModulusOne(t *testing.T) {
	got := PowMod(big.NewInt(9), big.NewInt(0), big.NewInt(1))
	assert.Equal(t, 0, got.Sign())
}

func TestLittleEndianCodec(t *testing.T) {
	x := new(big.Int).SetUint64(0x0102030405060708)

	encoded := toLE(x)
	assert.Equal(t, []byte{8, 7, 6, 5, 4, 3, 2, 1}, encoded)
	assert.Equal(t, 0, fromLE(encoded).Cmp(x))

	// trailing zero bytes are the most significant ones
	assert.Equal(t, 0, fromLE([]byte{8, 7, 6, 5, 4, 3, 2, 1, 0, 0}).Cmp(x))
}

func TestLittleEndianCodec_Zero(t *testing.T) {
	assert.Equal(t, []byte{0}, toLE(new(big.Int)))
	assert.Equal(t, 0, fromLE(nil).Sign())
	assert.Equal(t, 0, fromLE([]byte{}).Sign())
}

func TestFromLE_DoesNotMutateInput(t *testing.T) {
	in := []byte{1, 2, 3}
	_ = fromLE(in)
	assert.Equal(t, []byte{1, 2, 3}, in)
}
