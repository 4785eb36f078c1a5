// Package commands provides CLI command implementations for the srp6a tool.
package commands

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/fzdarsky/srp6a/internal/cli/clicontext"
	"github.com/fzdarsky/srp6a/internal/config"
	"github.com/fzdarsky/srp6a/internal/logging"
)

// defaultSaltLen is the salt size used when no salt is given.
const defaultSaltLen = 16

// loadConfig loads the configuration file named by the global --config flag
// and applies the command's flag overrides on top.
func loadConfig(group, hash, scheme string) (*config.Config, error) {
	cfg, err := config.Load(clicontext.ConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Apply command-line flags (highest priority)
	cfg.ApplyFlags(group, hash, scheme)

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	return cfg, nil
}

// newLogger creates the configured logger. All log output goes to stderr so
// that stdout carries only command results.
func newLogger(cfg *config.Config) (*logging.Logger, error) {
	logger, err := cfg.Logger()
	if err != nil {
		return nil, err
	}
	logger.SetOutput(os.Stderr, os.Stderr)
	return logger, nil
}

// newSalt returns the hex-decoded salt, or n fresh random bytes when saltHex is empty.
func newSalt(saltHex string, n int, random io.Reader) ([]byte, error) {
	if saltHex != "" {
		salt, err := hex.DecodeString(saltHex)
		if err != nil {
			return nil, fmt.Errorf("salt must be hex encoded: %w", err)
		}
		return salt, nil
	}

	if n < 1 {
		return nil, fmt.Errorf("salt length must be positive, got %d", n)
	}
	salt := make([]byte, n)
	if _, err := io.ReadFull(random, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// exitWithError prints an error message to stderr and exits with status 1.
func exitWithError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// promptUsername prompts the user to enter their username.
func promptUsername() string {
	fmt.Fprintf(os.Stderr, "Username: ")
	reader := bufio.NewReader(os.Stdin)
	username, _ := reader.ReadString('\n')
	return strings.TrimSpace(username)
}

// promptPassword prompts the user to enter their password (hidden input).
func promptPassword() string {
	fmt.Fprintf(os.Stderr, "Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd())) //nolint:gosec // G115: fd fits in int
	fmt.Fprintf(os.Stderr, "\n")
	if err != nil {
		exitWithError("failed to read password: %v", err)
	}
	return string(password)
}
