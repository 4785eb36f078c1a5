package srp_test

import (
	"bytes"
	"crypto"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"math/big"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fzdarsky/srp6a/internal/simulate"
	"github.com/fzdarsky/srp6a/pkg/srp"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

// toyParams is a 64-bit safe-prime group, small enough that u*x exceeds N.
func toyParams(t *testing.T) *srp.Params {
	t.Helper()
	N := new(big.Int).SetUint64(0x8000000000000a77)
	params, err := srp.NewParams(N, big.NewInt(5), big.NewInt(3))
	require.NoError(t, err)
	return params
}

func patternBytes(n, mul, add int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte((i*mul + add) % 256)
	}
	return b
}

func TestNewSession_DeterministicForFixedSecret(t *testing.T) {
	params := toyParams(t)
	secret := []byte{1, 2, 3, 4, 5, 6, 7, 8}

	s1, err := srp.NewSession(params, crypto.SHA256, bytes.NewReader(secret))
	require.NoError(t, err)
	s2, err := srp.NewSession(params, crypto.SHA256, bytes.NewReader(secret))
	require.NoError(t, err)

	assert.Equal(t, mustHex(t, "cf8d92646523b307"), s1.PublicEphemeral())
	assert.Equal(t, s1.PublicEphemeral(), s2.PublicEphemeral())
}

func TestNewSession_Uniqueness(t *testing.T) {
	group, err := srp.LookupGroup("rfc5054-2048")
	require.NoError(t, err)
	params, err := group.Params(crypto.SHA256)
	require.NoError(t, err)

	s1, err := srp.NewSession(params, crypto.SHA256, rand.Reader)
	require.NoError(t, err)
	s2, err := srp.NewSession(params, crypto.SHA256, rand.Reader)
	require.NoError(t, err)

	assert.NotEqual(t, s1.PublicEphemeral(), s2.PublicEphemeral(),
		"different sessions should generate different ephemeral values")
}

func TestNewSession_RandomSourceFailure(t *testing.T) {
	params := toyParams(t)
	readErr := errors.New("entropy pool exhausted")

	_, err := srp.NewSession(params, crypto.SHA256, iotest.ErrReader(readErr))
	require.Error(t, err)
	assert.ErrorIs(t, err, srp.ErrRandomSource)
	assert.ErrorIs(t, err, readErr)
}

func TestNewSession_ShortRandomSource(t *testing.T) {
	params := toyParams(t)

	_, err := srp.NewSession(params, crypto.SHA256, bytes.NewReader([]byte{1, 2, 3}))
	assert.ErrorIs(t, err, srp.ErrRandomSource)
}

func TestPublicEphemeral_ReturnsCopy(t *testing.T) {
	params := toyParams(t)
	session, err := srp.NewSession(params, crypto.SHA256, bytes.NewReader(make([]byte, 8)))
	require.NoError(t, err)

	A := session.PublicEphemeral()
	A[0] ^= 0xff
	assert.NotEqual(t, A, session.PublicEphemeral())
}

func TestProcessReply_ToyVector(t *testing.T) {
	params := toyParams(t)
	session, err := srp.NewSession(params, crypto.SHA256, bytes.NewReader([]byte{1, 2, 3, 4, 5, 6, 7, 8}))
	require.NoError(t, err)

	verifier, err := session.ProcessReply(
		mustHex(t, "0102030405060708090a"),
		mustHex(t, "8f06b48f28646d6a"),
	)
	require.NoError(t, err)

	assert.Equal(t, mustHex(t, "91c0746ecf69754234e938b9447804612f88d077059fc130e78807d410358389"), verifier.Proof())

	key, err := verifier.VerifyServer(mustHex(t, "e4d10cb1918d0d40cd45ac7abaa829d1bd83dcd33613fd5f05195275d0b79ec2"))
	require.NoError(t, err)
	assert.Equal(t, mustHex(t, "7ac14c0d90786c384af7fe6d71b1955e2bd1c839678c326ed67204b6c8208736"), key)
}

func TestProcessReply_RFC5054GroupVectors(t *testing.T) {
	group, err := srp.LookupGroup("rfc5054-1024")
	require.NoError(t, err)

	tests := []struct {
		name string
		hash crypto.Hash
		B    string
		K    string
		M1   string
		M2   string
	}{
		{
			name: "sha1",
			hash: crypto.SHA1,
			B: "ed6f23bf734b7693a822681de95516a5665658e1369a9b074a529c98eb56efa0e559acf42236e899f72dddd3c5c8dde8" +
				"017049c81378c953e9865bdd723c128bf4b0a542f00df0dc2c93bc753be052c7775d67ec5ae29c1f4cfa320b38a42f0c" +
				"0c93afcc5977819f061621e92dcd5cdedbaac9e2fc796bc5feed92d8561931eb",
			K:  "fdd4eadc4785f870959707efa8c0b67e5ec3444f",
			M1: "65ccdaf1a120e29e4e493284cf76bd08175e7995",
			M2: "39cc73e9b4b1f76d099ca3fce3a0a3ff6cd508b1",
		},
		{
			name: "sha256",
			hash: crypto.SHA256,
			B: "bd5aceb796dc027f70c497dec7e15b4eed7a7e922b1ee7e8b7ffa363e905a262c642708a3effdbc6a0438a1ba2183434" +
				"940c1c6c4ceeede8320959b60de8afe7cb4297be6f1b0a6ba16761ae4cfae66732ad957487af7d06bf4e270be1c9daea" +
				"2e264537ef1e35e7b2e5c7fe98aaea2492d6088467a11fb17e56ccb84ac28fd1",
			K:  "68857de5f9f873f79694cba484be7210f3e3ad7314e42dcefe15b6ba76ed360e",
			M1: "7a2e1c2fe20704faea7b9ac8566ffc5975b56ed0664bff67aa1fd00d2a0a1b04",
			M2: "bd343c699a97141749939441b88d7f3d0ed7122d46ea0a332617bc23036cf3d0",
		},
	}

	wantA := mustHex(t, "fd1ad96aa9c3de329e051386754efedc27c7cfd577308ddbbb9565b1c01bf0aa3cf92e605cd7a8d22ab2c563b866b1cd"+
		"b51193027116364efbdf53b99408dcaf002aff8fcd6d06a10527d0a050a3d16f906ea35028f969a34eb073b8bdaadc12"+
		"c6a67d947b4878835a2513264c38377a16a9315a14e5488ca9f28bb3aa1889e9")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := group.Params(tt.hash)
			require.NoError(t, err)

			session, err := srp.NewSession(params, tt.hash, bytes.NewReader(patternBytes(128, 7, 3)))
			require.NoError(t, err)
			assert.Equal(t, wantA, session.PublicEphemeral())

			x := srp.DerivePrivateKey(tt.hash, []byte("alice"), []byte("password123"), mustHex(t, "beb25379d1a8581eb5a727673a2441ee"))

			verifier, err := session.ProcessReply(x, mustHex(t, tt.B))
			require.NoError(t, err)
			assert.Equal(t, mustHex(t, tt.M1), verifier.Proof())

			key, err := verifier.VerifyServer(mustHex(t, tt.M2))
			require.NoError(t, err)
			assert.Equal(t, mustHex(t, tt.K), key)
		})
	}
}

func TestProcessReply_RejectsMaliciousB(t *testing.T) {
	params := toyParams(t)
	N := params.N()

	tests := []struct {
		name string
		B    []byte
	}{
		{"empty", []byte{}},
		{"zero", []byte{0}},
		{"zero padded", make([]byte, 8)},
		{"N", srp.EncodeInt(N)},
		{"2N", srp.EncodeInt(new(big.Int).Lsh(N, 1))},
		{"N with trailing zeros", append(srp.EncodeInt(N), 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := srp.NewSession(params, crypto.SHA256, rand.Reader)
			require.NoError(t, err)

			verifier, err := session.ProcessReply([]byte{1, 2, 3}, tt.B)
			assert.ErrorIs(t, err, srp.ErrMaliciousPublicValue)
			assert.Nil(t, verifier)
		})
	}
}

func TestProcessReply_ConsumesSession(t *testing.T) {
	params := toyParams(t)
	session, err := srp.NewSession(params, crypto.SHA256, rand.Reader)
	require.NoError(t, err)

	_, err = session.ProcessReply([]byte{1}, []byte{42})
	require.NoError(t, err)

	_, err = session.ProcessReply([]byte{1}, []byte{42})
	assert.ErrorIs(t, err, srp.ErrSessionConsumed)
}

func TestProcessReply_MaliciousBStillConsumesSession(t *testing.T) {
	params := toyParams(t)
	session, err := srp.NewSession(params, crypto.SHA256, rand.Reader)
	require.NoError(t, err)

	_, err = session.ProcessReply([]byte{1}, []byte{0})
	require.ErrorIs(t, err, srp.ErrMaliciousPublicValue)

	_, err = session.ProcessReply([]byte{1}, []byte{42})
	assert.ErrorIs(t, err, srp.ErrSessionConsumed)
}

func TestProcessReply_BAboveInterm(t *testing.T) {
	// B = 1 is below k*g^x for almost every x, B = N-1 above it; both must
	// produce a verifier without error.
	params := toyParams(t)
	N := params.N()

	for _, B := range []*big.Int{big.NewInt(1), new(big.Int).Sub(N, big.NewInt(1))} {
		session, err := srp.NewSession(params, crypto.SHA256, rand.Reader)
		require.NoError(t, err)

		verifier, err := session.ProcessReply([]byte{9, 9, 9}, srp.EncodeInt(B))
		require.NoError(t, err)
		assert.Len(t, verifier.Proof(), crypto.SHA256.Size())
	}
}

func TestFullHandshake_RoundTrip(t *testing.T) {
	tests := []struct {
		group string
		hash  crypto.Hash
	}{
		{"rfc5054-1024", crypto.SHA1},
		{"rfc5054-2048", crypto.SHA256},
		{"rfc5054-3072", crypto.SHA512},
	}

	for _, tt := range tests {
		t.Run(tt.group, func(t *testing.T) {
			group, err := srp.LookupGroup(tt.group)
			require.NoError(t, err)
			params, err := group.Params(tt.hash)
			require.NoError(t, err)

			username := []byte("testuser")
			salt := patternBytes(32, 11, 1)

			// Registration
			x := srp.DerivePrivateKey(tt.hash, username, []byte("testpass"), salt)
			v := srp.PasswordVerifier(x, params)
			server := simulate.NewServer(params, tt.hash, string(username), salt, v)
			defer server.ClearSecrets()

			// Handshake
			session, err := srp.NewSession(params, tt.hash, rand.Reader)
			require.NoError(t, err)

			gotSalt, B, err := server.Init(session.PublicEphemeral(), rand.Reader)
			require.NoError(t, err)
			assert.Equal(t, salt, gotSalt)

			verifier, err := session.ProcessReply(x, B)
			require.NoError(t, err)

			M2, err := server.Verify(verifier.Proof())
			require.NoError(t, err)

			key, err := verifier.VerifyServer(M2)
			require.NoError(t, err)
			assert.Len(t, key, tt.hash.Size())
			assert.Equal(t, server.SessionKey(), key)
		})
	}
}

func TestFullHandshake_WrongPassword(t *testing.T) {
	group, err := srp.LookupGroup("rfc5054-2048")
	require.NoError(t, err)
	params, err := group.Params(crypto.SHA256)
	require.NoError(t, err)

	salt := []byte("server-salt-123456")
	v := srp.PasswordVerifier(srp.DerivePrivateKey(crypto.SHA256, []byte("u"), []byte("right"), salt), params)
	server := simulate.NewServer(params, crypto.SHA256, "u", salt, v)

	session, err := srp.NewSession(params, crypto.SHA256, rand.Reader)
	require.NoError(t, err)
	_, B, err := server.Init(session.PublicEphemeral(), rand.Reader)
	require.NoError(t, err)

	wrong := srp.DerivePrivateKey(crypto.SHA256, []byte("u"), []byte("wrong"), salt)
	verifier, err := session.ProcessReply(wrong, B)
	require.NoError(t, err)

	_, err = server.Verify(verifier.Proof())
	assert.ErrorIs(t, err, simulate.ErrClientAuthenticationFailed)
}

func TestFullHandshake_MismatchedParams(t *testing.T) {
	group, err := srp.LookupGroup("rfc5054-2048")
	require.NoError(t, err)
	serverParams, err := group.Params(crypto.SHA256)
	require.NoError(t, err)
	clientParams, err := srp.NewParams(group.N, group.G, big.NewInt(3))
	require.NoError(t, err)

	salt := []byte("salt")
	x := srp.DerivePrivateKey(crypto.SHA256, []byte("u"), []byte("p"), salt)
	server := simulate.NewServer(serverParams, crypto.SHA256, "u", salt, srp.PasswordVerifier(x, serverParams))

	session, err := srp.NewSession(clientParams, crypto.SHA256, rand.Reader)
	require.NoError(t, err)
	_, B, err := server.Init(session.PublicEphemeral(), rand.Reader)
	require.NoError(t, err)

	verifier, err := session.ProcessReply(x, B)
	require.NoError(t, err)

	// The server rejects M1, so the best a client can get back is a bogus M2.
	_, err = server.Verify(verifier.Proof())
	require.Error(t, err)

	_, err = verifier.VerifyServer(make([]byte, crypto.SHA256.Size()))
	assert.ErrorIs(t, err, srp.ErrServerAuthenticationFailed)
}
