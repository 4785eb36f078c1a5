package commands

import (
	"crypto/rand"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fzdarsky/srp6a/internal/cli/output"
	"github.com/fzdarsky/srp6a/pkg/kdf"
	"github.com/fzdarsky/srp6a/pkg/protocol"
	"github.com/fzdarsky/srp6a/pkg/srp"
)

// VerifierCommand implements the 'verifier' command, which computes the
// registration payload a server stores for a user.
type VerifierCommand struct {
	stdout io.Writer
	random io.Reader
}

// NewVerifierCommand creates a new verifier command instance.
func NewVerifierCommand() *VerifierCommand {
	return &VerifierCommand{stdout: os.Stdout, random: rand.Reader}
}

// Execute runs the verifier command with the provided arguments.
func (c *VerifierCommand) Execute(args []string) {
	fs := flag.NewFlagSet("verifier", flag.ExitOnError)

	// Define flags
	username := fs.String("username", "", "Username to register (prompts if not provided)")
	password := fs.String("password", "", "Password to register (prompts if not provided)")
	saltHex := fs.String("salt", "", "Hex-encoded salt (random if not provided)")
	saltLen := fs.Int("salt-len", defaultSaltLen, "Length in bytes of a generated salt")
	group := fs.String("group", "", "Named group or 'custom' (overrides config)")
	hash := fs.String("hash", "", "Digest algorithm (overrides config)")
	scheme := fs.String("kdf", "", "Private-key derivation scheme (overrides config)")
	outputFormat := fs.String("output", "json", "Output format: json or yaml")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: srp6a verifier [flags]

Compute the SRP-6a password verifier for a user and print the registration
payload (username, salt and verifier, base64 encoded). The password itself
never leaves this process.

Flags:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Interactive (prompts for username and password)
  srp6a verifier

  # Non-interactive with a fixed salt, YAML output
  srp6a verifier --username alice --password secret --salt beb25379d1a8581eb5a727673a2441ee --output yaml

  # Hardened private key with a 4096-bit group
  srp6a verifier --group rfc5054-4096 --kdf argon2id --username alice
`)
	}

	if err := fs.Parse(args); err != nil {
		exitWithError("failed to parse flags: %v", err)
	}

	format, err := output.ParseFormat(*outputFormat)
	if err != nil {
		exitWithError("%v", err)
	}

	cfg, err := loadConfig(*group, *hash, *scheme)
	if err != nil {
		exitWithError("%v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		exitWithError("%v", err)
	}

	params, err := cfg.Params()
	if err != nil {
		exitWithError("%v", err)
	}

	deriver, err := cfg.Deriver()
	if err != nil {
		exitWithError("%v", err)
	}

	salt, err := newSalt(*saltHex, *saltLen, c.random)
	if err != nil {
		exitWithError("%v", err)
	}

	user := *username
	if user == "" {
		user = promptUsername()
	}

	pass := *password
	if pass == "" {
		pass = promptPassword()
	}

	logger.Debug("computing verifier", map[string]any{
		"username": user,
		"group":    cfg.Group,
		"hash":     cfg.Hash,
		"kdf":      cfg.KDF.Scheme,
	})

	reg, err := buildRegistration(deriver, params, user, pass, salt)
	if err != nil {
		exitWithError("%v", err)
	}

	if err := output.Write(c.stdout, reg, format); err != nil {
		exitWithError("%v", err)
	}
}

// buildRegistration derives the private key and computes the verifier
// v = g^x mod N for the registration payload.
func buildRegistration(d kdf.Deriver, params *srp.Params, username, password string, salt []byte) (protocol.RegistrationRequest, error) {
	if username == "" {
		return protocol.RegistrationRequest{}, fmt.Errorf("username is required")
	}

	x, err := d.PrivateKey([]byte(username), []byte(password), salt)
	if err != nil {
		return protocol.RegistrationRequest{}, fmt.Errorf("failed to derive private key: %w", err)
	}
	defer clear(x)

	return protocol.NewRegistrationRequest(username, salt, srp.PasswordVerifier(x, params)), nil
}
