// Package config provides configuration loading and validation for the srp6a
// tools: which group, digest and private-key derivation both peers agreed on.
package config

import (
	"crypto"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/fzdarsky/srp6a/internal/logging"
	"github.com/fzdarsky/srp6a/pkg/kdf"
	"github.com/fzdarsky/srp6a/pkg/srp"
)

const (
	// GroupCustom selects the hex parameters under "custom".
	GroupCustom = "custom"

	defaultGroup = "rfc5054-2048"
	defaultHash  = "sha256"

	envGroup      = "SRP6A_GROUP"
	envHash       = "SRP6A_HASH"
	envKDF        = "SRP6A_KDF"
	envIterations = "SRP6A_KDF_ITERATIONS"
	envLogLevel   = "SRP6A_LOG_LEVEL"
	envLogFormat  = "SRP6A_LOG_FORMAT"
)

// KDF scheme names.
const (
	SchemeSRP6a    = "srp6a"
	SchemePBKDF2   = "pbkdf2"
	SchemeArgon2id = "argon2id"
	SchemeScrypt   = "scrypt"
)

// Config holds the protocol configuration shared with the server.
type Config struct {
	Group   string          `yaml:"group"`
	Hash    string          `yaml:"hash"`
	Custom  CustomGroup     `yaml:"custom,omitempty"`
	KDF     KDFSettings     `yaml:"kdf"`
	Logging LoggingSettings `yaml:"logging"`
}

// CustomGroup carries out-of-band domain parameters as hex strings.
type CustomGroup struct {
	N string `yaml:"n"`
	G string `yaml:"g"`
	K string `yaml:"k,omitempty"` // Empty derives k = H(N | PAD(g))
}

// KDFSettings selects the private-key derivation and its cost parameters.
type KDFSettings struct {
	Scheme     string `yaml:"scheme"`
	Iterations int    `yaml:"iterations,omitempty"`
	Time       uint32 `yaml:"time,omitempty"`
	MemoryKiB  uint32 `yaml:"memory_kib,omitempty"`
	Threads    uint8  `yaml:"threads,omitempty"`
	ScryptN    int    `yaml:"scrypt_n,omitempty"`
	ScryptR    int    `yaml:"scrypt_r,omitempty"`
	ScryptP    int    `yaml:"scrypt_p,omitempty"`
	KeyLen     int    `yaml:"key_len,omitempty"`
}

// LoggingSettings contains logging configuration.
type LoggingSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Group: defaultGroup,
		Hash:  defaultHash,
		KDF:   KDFSettings{Scheme: SchemeSRP6a},
		Logging: LoggingSettings{
			Level:  string(logging.LevelInfo),
			Format: string(logging.FormatHuman),
		},
	}
}

// Load builds the configuration. Precedence order (highest to lowest):
// 1. Environment variables
// 2. Config file at path (skipped when path is empty)
// 3. Defaults
//
// Command-line flags are applied by individual commands after calling Load().
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFromFile(path); err != nil {
			return nil, err
		}
	}

	cfg.loadFromEnv()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile merges the YAML file over the current values.
//
//nolint:gosec // G304: Config path is from command-line argument
func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// loadFromEnv loads configuration from environment variables.
func (c *Config) loadFromEnv() {
	if group := os.Getenv(envGroup); group != "" {
		c.Group = group
	}
	if hash := os.Getenv(envHash); hash != "" {
		c.Hash = hash
	}
	if scheme := os.Getenv(envKDF); scheme != "" {
		c.KDF.Scheme = scheme
	}
	if s := os.Getenv(envIterations); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			c.KDF.Iterations = n
		}
	}
	if level := os.Getenv(envLogLevel); level != "" {
		c.Logging.Level = level
	}
	if format := os.Getenv(envLogFormat); format != "" {
		c.Logging.Format = format
	}
}

// ApplyFlags applies command-line flag values to the configuration.
// This should be called after Load() to apply the highest priority values.
func (c *Config) ApplyFlags(group, hash, scheme string) {
	if group != "" {
		c.Group = group
	}
	if hash != "" {
		c.Hash = hash
	}
	if scheme != "" {
		c.KDF.Scheme = scheme
	}
}

// Digest returns the configured hash function.
func (c *Config) Digest() (crypto.Hash, error) {
	return ParseHash(c.Hash)
}

// Params builds the domain parameters for the configured group and digest.
func (c *Config) Params() (*srp.Params, error) {
	h, err := c.Digest()
	if err != nil {
		return nil, err
	}

	if c.Group != GroupCustom {
		group, err := srp.LookupGroup(c.Group)
		if err != nil {
			return nil, err
		}
		return group.Params(h)
	}

	n, err := parseHex("custom.n", c.Custom.N)
	if err != nil {
		return nil, err
	}
	g, err := parseHex("custom.g", c.Custom.G)
	if err != nil {
		return nil, err
	}

	if c.Custom.K == "" {
		return srp.DeriveParams(h, n, g)
	}

	k, err := parseHex("custom.k", c.Custom.K)
	if err != nil {
		return nil, err
	}
	return srp.NewParams(n, g, k)
}

// Deriver builds the configured private-key derivation, filling in default
// cost parameters for anything left unset.
func (c *Config) Deriver() (kdf.Deriver, error) {
	h, err := c.Digest()
	if err != nil {
		return nil, err
	}

	s := c.KDF
	switch s.Scheme {
	case SchemeSRP6a, "":
		return kdf.SRP6a{Hash: h}, nil
	case SchemePBKDF2:
		return kdf.PBKDF2{
			Hash:       h,
			Iterations: orDefault(s.Iterations, kdf.DefaultPBKDF2Iterations),
			KeyLen:     s.KeyLen,
		}, nil
	case SchemeArgon2id:
		return kdf.Argon2id{
			Time:      orDefault(s.Time, kdf.DefaultArgon2Time),
			MemoryKiB: orDefault(s.MemoryKiB, kdf.DefaultArgon2MemoryKiB),
			Threads:   orDefault(s.Threads, kdf.DefaultArgon2Threads),
			KeyLen:    s.KeyLen,
		}, nil
	case SchemeScrypt:
		return kdf.Scrypt{
			N:      orDefault(s.ScryptN, kdf.DefaultScryptN),
			R:      orDefault(s.ScryptR, kdf.DefaultScryptR),
			P:      orDefault(s.ScryptP, kdf.DefaultScryptP),
			KeyLen: s.KeyLen,
		}, nil
	default:
		return nil, fmt.Errorf("unknown kdf scheme %q", s.Scheme)
	}
}

// privateKeyLen is the byte length of x produced by the configured scheme.
func (c *Config) privateKeyLen(h crypto.Hash) int {
	if c.KDF.Scheme == SchemeSRP6a || c.KDF.Scheme == "" {
		return h.Size()
	}
	return orDefault(c.KDF.KeyLen, kdf.DefaultKeyLen)
}

// Logger creates the logger described by the logging settings.
func (c *Config) Logger() (*logging.Logger, error) {
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(c.Logging.Format)
	if err != nil {
		return nil, err
	}
	return logging.New(level, format), nil
}

func parseHex(field, s string) (*big.Int, error) {
	if s == "" {
		return nil, fmt.Errorf("%s is required for group %q", field, GroupCustom)
	}
	n, ok := new(big.Int).SetString(s, 16)
	if !ok || n.Sign() < 0 {
		return nil, errors.New(field + " must be a hex integer")
	}
	return n, nil
}

func orDefault[T int | uint8 | uint32](v, def T) T {
	if v == 0 {
		return def
	}
	return v
}
