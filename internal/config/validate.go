package config

import (
	"fmt"
	"slices"

	"github.com/fzdarsky/srp6a/internal/logging"
	"github.com/fzdarsky/srp6a/pkg/srp"
)

// Validate performs comprehensive validation on the configuration.
func Validate(cfg *Config) error {
	if _, err := cfg.Digest(); err != nil {
		return fmt.Errorf("hash validation failed: %w", err)
	}

	if err := validateGroup(cfg); err != nil {
		return fmt.Errorf("group validation failed: %w", err)
	}

	if err := validateKDF(cfg.KDF); err != nil {
		return fmt.Errorf("kdf validation failed: %w", err)
	}

	if err := validateKeyWidth(cfg); err != nil {
		return fmt.Errorf("kdf validation failed: %w", err)
	}

	if err := validateLogging(cfg.Logging); err != nil {
		return fmt.Errorf("logging validation failed: %w", err)
	}

	return nil
}

func validateGroup(cfg *Config) error {
	if cfg.Group != GroupCustom && !slices.Contains(srp.GroupNames(), cfg.Group) {
		return fmt.Errorf("unknown group %q (valid: %v or %q)", cfg.Group, srp.GroupNames(), GroupCustom)
	}

	// custom parameters are only checked by actually building them
	if _, err := cfg.Params(); err != nil {
		return err
	}

	return nil
}

func validateKDF(s KDFSettings) error {
	switch s.Scheme {
	case SchemeSRP6a, SchemePBKDF2, SchemeArgon2id, SchemeScrypt:
	default:
		return fmt.Errorf("unknown scheme %q (valid: %s, %s, %s, %s)",
			s.Scheme, SchemeSRP6a, SchemePBKDF2, SchemeArgon2id, SchemeScrypt)
	}

	if s.Iterations < 0 || s.ScryptN < 0 || s.ScryptR < 0 || s.ScryptP < 0 || s.KeyLen < 0 {
		return fmt.Errorf("cost parameters must not be negative")
	}

	// scrypt requires N to be a power of two greater than 1
	if s.ScryptN != 0 && (s.ScryptN < 2 || s.ScryptN&(s.ScryptN-1) != 0) {
		return fmt.Errorf("scrypt_n must be a power of two greater than 1, got %d", s.ScryptN)
	}

	if s.MemoryKiB != 0 && s.Threads != 0 && s.MemoryKiB < 8*uint32(s.Threads) {
		return fmt.Errorf("memory_kib must be at least 8 KiB per thread")
	}

	return nil
}

// validateKeyWidth rejects combinations where u*x can reach N. The client
// reduces u*x mod N, so the server's S only matches while u*x < N.
func validateKeyWidth(cfg *Config) error {
	h, err := cfg.Digest()
	if err != nil {
		return err
	}
	params, err := cfg.Params()
	if err != nil {
		return err
	}

	bits := 8 * (h.Size() + cfg.privateKeyLen(h))
	if nBits := params.N().BitLen(); bits >= nBits {
		return fmt.Errorf("private key too wide for group: u*x spans %d bits, N has %d", bits, nBits)
	}
	return nil
}

func validateLogging(s LoggingSettings) error {
	if _, err := logging.ParseLevel(s.Level); err != nil {
		return err
	}
	if _, err := logging.ParseFormat(s.Format); err != nil {
		return err
	}
	return nil
}
