package commands

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/fatih/color"

	"github.com/fzdarsky/srp6a/internal/cli/clicontext"
	"github.com/fzdarsky/srp6a/internal/config"
	"github.com/fzdarsky/srp6a/internal/logging"
	"github.com/fzdarsky/srp6a/internal/simulate"
	"github.com/fzdarsky/srp6a/pkg/kdf"
	"github.com/fzdarsky/srp6a/pkg/protocol"
	"github.com/fzdarsky/srp6a/pkg/srp"
)

// ErrSelftestFailed is returned when at least one self-test check fails.
var ErrSelftestFailed = errors.New("self-test failed")

// SelftestCommand implements the 'selftest' command, which runs a complete
// handshake against an in-process server using the configured parameters.
type SelftestCommand struct {
	stdout io.Writer
	random io.Reader
}

// NewSelftestCommand creates a new selftest command instance.
func NewSelftestCommand() *SelftestCommand {
	return &SelftestCommand{stdout: os.Stdout, random: rand.Reader}
}

// Execute runs the selftest command with the provided arguments.
func (c *SelftestCommand) Execute(args []string) {
	fs := flag.NewFlagSet("selftest", flag.ExitOnError)

	// Define flags
	username := fs.String("username", "selftest", "Username used for the simulated registration")
	password := fs.String("password", "", "Password used for the simulated registration (random if not provided)")
	group := fs.String("group", "", "Named group or 'custom' (overrides config)")
	hash := fs.String("hash", "", "Digest algorithm (overrides config)")
	scheme := fs.String("kdf", "", "Private-key derivation scheme (overrides config)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: srp6a selftest [flags]

Register a user with an in-process server, run a complete SRP-6a handshake
against it and check that both sides agree on the session key. Also checks
that a malicious server value is rejected.

Flags:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Check the configured parameters
  srp6a --config srp6a.yaml selftest

  # Check a specific group and digest
  srp6a selftest --group rfc5054-3072 --hash sha512
`)
	}

	if err := fs.Parse(args); err != nil {
		exitWithError("failed to parse flags: %v", err)
	}

	cfg, err := loadConfig(*group, *hash, *scheme)
	if err != nil {
		exitWithError("%v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		exitWithError("%v", err)
	}

	pass := *password
	if pass == "" {
		buf := make([]byte, 16)
		if _, err := io.ReadFull(c.random, buf); err != nil {
			exitWithError("failed to generate password: %v", err)
		}
		pass = hex.EncodeToString(buf)
	}

	color.NoColor = color.NoColor || clicontext.NoColor()

	deriver, err := cfg.Deriver()
	if err != nil {
		exitWithError("%v", err)
	}

	if err := c.run(cfg, deriver, logger, *username, pass); err != nil {
		exitWithError("%v", err)
	}
}

// reporter prints one status line per check.
type reporter struct {
	w      io.Writer
	pass   *color.Color
	fail   *color.Color
	failed bool
}

func newReporter(w io.Writer) *reporter {
	return &reporter{
		w:    w,
		pass: color.New(color.FgGreen, color.Bold),
		fail: color.New(color.FgRed, color.Bold),
	}
}

// check reports err for the named step and returns whether it passed.
func (r *reporter) check(name string, err error) bool {
	if err != nil {
		r.failed = true
		_, _ = r.fail.Fprint(r.w, "FAIL")
		_, _ = fmt.Fprintf(r.w, "  %s: %v [%s]\n", name, err, protocol.FromError(err).Code)
		return false
	}
	_, _ = r.pass.Fprint(r.w, "PASS")
	_, _ = fmt.Fprintf(r.w, "  %s\n", name)
	return true
}

// run performs the self-test and writes the report to stdout.
func (c *SelftestCommand) run(cfg *config.Config, deriver kdf.Deriver, logger *logging.Logger, username, password string) error {
	r := newReporter(c.stdout)

	params, err := cfg.Params()
	if !r.check("domain parameters", err) {
		return ErrSelftestFailed
	}
	h, err := cfg.Digest()
	if err != nil {
		return err
	}

	log := logger.WithFields(map[string]any{
		"group":    cfg.Group,
		"hash":     cfg.Hash,
		"kdf":      cfg.KDF.Scheme,
		"username": username,
	})
	log.Debug("self-test started")

	// Registration
	salt, err := newSalt("", defaultSaltLen, c.random)
	if err != nil {
		return err
	}
	x, err := deriver.PrivateKey([]byte(username), []byte(password), salt)
	if !r.check("private key derivation", err) {
		return ErrSelftestFailed
	}
	defer clear(x)

	server := simulate.NewServer(params, h, username, salt, srp.PasswordVerifier(x, params))
	defer server.ClearSecrets()

	// Handshake, with every leg encoded as it would travel between peers
	session, err := srp.NewSession(params, h, c.random)
	if !r.check("client ephemeral", err) {
		return ErrSelftestFailed
	}
	log.Debug("client ephemeral generated", map[string]any{"public_a": session.PublicEphemeral()})

	hello, err := transmit(protocol.NewHandshakeRequest(username, session.PublicEphemeral()))
	if err != nil {
		return err
	}
	user, A, err := hello.Values()
	if err == nil && user != server.Username {
		err = fmt.Errorf("unknown user %q", user)
	}
	if !r.check("handshake request", err) {
		return ErrSelftestFailed
	}

	salt, B, err := server.Init(A, c.random)
	if !r.check("server challenge", err) {
		return ErrSelftestFailed
	}

	challenge, err := transmit(protocol.NewHandshakeResponse(salt, B))
	if err != nil {
		return err
	}
	salt, B, err = challenge.Values()
	if !r.check("handshake response", err) {
		return ErrSelftestFailed
	}
	log.Debug("server challenge received", map[string]any{"public_b": B})

	// the client only learns the salt from the challenge
	loginKey, err := deriver.PrivateKey([]byte(username), []byte(password), salt)
	if !r.check("client private key", err) {
		return ErrSelftestFailed
	}
	defer clear(loginKey)

	verifier, err := session.ProcessReply(loginKey, B)
	if !r.check("client proof", err) {
		return ErrSelftestFailed
	}

	M2, err := exchangeProof(server, verifier.Proof())
	if !r.check("server accepts client proof", err) {
		return ErrSelftestFailed
	}

	key, err := verifier.VerifyServer(M2)
	if !r.check("client accepts server proof", err) {
		return ErrSelftestFailed
	}
	defer clear(key)

	var mismatch error
	if !slices.Equal(key, server.SessionKey()) {
		mismatch = errors.New("client and server derived different keys")
	}
	r.check("session keys match", mismatch)

	_, err = session.ProcessReply(loginKey, B)
	r.check("session is single-use", expect(err, srp.ErrSessionConsumed))

	// A server sending B = N would force S = 0 if it were accepted.
	rogue, err := srp.NewSession(params, h, c.random)
	if r.check("second ephemeral", err) {
		_, err = rogue.ProcessReply(loginKey, srp.EncodeInt(params.N()))
		r.check("malicious B rejected", expect(err, srp.ErrMaliciousPublicValue))
	}

	if r.failed {
		log.Error("self-test failed")
		return ErrSelftestFailed
	}

	log.Info("self-test passed")
	return nil
}

// exchangeProof delivers M1 to the server and returns its M2 as received.
//
//nolint:gocritic // M1 is capitalized per RFC 5054 SRP-6a specification
func exchangeProof(server *simulate.Server, M1 []byte) ([]byte, error) {
	request, err := transmit(protocol.NewProofRequest(M1))
	if err != nil {
		return nil, err
	}
	proof, err := request.Value()
	if err != nil {
		return nil, err
	}

	M2, err := server.Verify(proof)
	if err != nil {
		return nil, err
	}

	reply, err := transmit(protocol.NewProofResponse(M2))
	if err != nil {
		return nil, err
	}
	return reply.Value()
}

// transmit passes msg through its JSON wire encoding.
func transmit[T any](msg T) (T, error) {
	var out T
	data, err := json.Marshal(msg)
	if err != nil {
		return out, fmt.Errorf("failed to encode message: %w", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("failed to decode message: %w", err)
	}
	return out, nil
}

// expect turns an error that matches target into success.
func expect(err, target error) error {
	switch {
	case errors.Is(err, target):
		return nil
	case err == nil:
		return fmt.Errorf("expected %v, got success", target)
	default:
		return fmt.Errorf("expected %v, got %w", target, err)
	}
}
