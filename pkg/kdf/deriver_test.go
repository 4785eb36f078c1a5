package kdf_test

import (
	"crypto"
	_ "crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fzdarsky/srp6a/pkg/kdf"
	"github.com/fzdarsky/srp6a/pkg/srp"
)

var (
	username = []byte("alice")
	password = []byte("password123")
	salt     = []byte("salt")
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestSRP6a_MatchesCore(t *testing.T) {
	key, err := kdf.SRP6a{Hash: crypto.SHA256}.PrivateKey(username, password, salt)
	require.NoError(t, err)
	assert.Equal(t, srp.DerivePrivateKey(crypto.SHA256, username, password, salt), key)
}

func TestSRP6a_RequiresHash(t *testing.T) {
	_, err := kdf.SRP6a{}.PrivateKey(username, password, salt)
	assert.Error(t, err)
}

func TestPBKDF2(t *testing.T) {
	d := kdf.PBKDF2{Hash: crypto.SHA256, Iterations: 1000}

	key, err := d.PrivateKey(username, password, salt)
	require.NoError(t, err)
	assert.Equal(t, mustHex(t, "274d4eb88363384db115e6bf0c304b689f7f7a7d4fdda567cbdb29c98105cffb"), key)
}

func TestPBKDF2_Invalid(t *testing.T) {
	tests := []struct {
		name string
		d    kdf.PBKDF2
	}{
		{"zero iterations", kdf.PBKDF2{Hash: crypto.SHA256}},
		{"missing hash", kdf.PBKDF2{Iterations: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.d.PrivateKey(username, password, salt)
			assert.Error(t, err)
		})
	}
}

func TestScrypt(t *testing.T) {
	d := kdf.Scrypt{N: 1024, R: 8, P: 1}

	key, err := d.PrivateKey(username, password, salt)
	require.NoError(t, err)
	assert.Equal(t, mustHex(t, "078d6674a0e0a6a25e97f4c7d4698ad3194bc2cd81aaa500fdb2da02b86b6f4e"), key)
}

func TestScrypt_InvalidCost(t *testing.T) {
	_, err := kdf.Scrypt{N: 1000, R: 8, P: 1}.PrivateKey(username, password, salt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scrypt")
}

func TestArgon2id(t *testing.T) {
	d := kdf.Argon2id{Time: 1, MemoryKiB: 64, Threads: 1, KeyLen: 48}

	k1, err := d.PrivateKey(username, password, salt)
	require.NoError(t, err)
	k2, err := d.PrivateKey(username, password, salt)
	require.NoError(t, err)

	assert.Len(t, k1, 48)
	assert.Equal(t, k1, k2)

	other, err := d.PrivateKey([]byte("bob"), password, salt)
	require.NoError(t, err)
	assert.NotEqual(t, k1, other)
}

func TestArgon2id_Invalid(t *testing.T) {
	tests := []struct {
		name string
		d    kdf.Argon2id
	}{
		{"zero time", kdf.Argon2id{MemoryKiB: 64, Threads: 1}},
		{"zero threads", kdf.Argon2id{Time: 1, MemoryKiB: 64}},
		{"too little memory", kdf.Argon2id{Time: 1, MemoryKiB: 8, Threads: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.d.PrivateKey(username, password, salt)
			assert.Error(t, err)
		})
	}
}

func TestDerivers_FeedHandshake(t *testing.T) {
	group, err := srp.LookupGroup("rfc5054-1024")
	require.NoError(t, err)
	params, err := group.Params(crypto.SHA256)
	require.NoError(t, err)

	derivers := map[string]kdf.Deriver{
		"srp6a":    kdf.SRP6a{Hash: crypto.SHA256},
		"pbkdf2":   kdf.PBKDF2{Hash: crypto.SHA256, Iterations: 10},
		"argon2id": kdf.Argon2id{Time: 1, MemoryKiB: 64, Threads: 1},
		"scrypt":   kdf.Scrypt{N: 16, R: 1, P: 1},
	}

	for name, d := range derivers {
		t.Run(name, func(t *testing.T) {
			x, err := d.PrivateKey(username, password, salt)
			require.NoError(t, err)
			assert.NotEmpty(t, srp.PasswordVerifier(x, params))
		})
	}
}
