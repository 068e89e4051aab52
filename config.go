package ecengine

import (
	"crypto/rand"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// HMAC keys longer than the largest supported hash block (SHA-512, 128 bytes)
// are hashed down first and add nothing.
const (
	minMACKeyLength = 16
	maxMACKeyLength = 128
)

// Config selects the primitives an Engine is built from. It is copied by New
// and never modified afterwards.
type Config struct {
	// Curve used for all keys handled by the engine.
	Curve EllipticCurve `yaml:"curve" json:"curve"`
	// Hash used for shared secrets, the KDF, HMAC and message digests.
	Hash HashFunc `yaml:"hash" json:"hash"`
	// Cipher used for the ECIES payload.
	Cipher SymmetricCipher `yaml:"cipher" json:"cipher"`
	// MACKeyLength is the number of KDF bytes used as the HMAC key.
	MACKeyLength int `yaml:"mac_key_length" json:"mac_key_length"`
	// GenericSignatures forces crypto/ecdsa even on secp256k1.
	GenericSignatures bool `yaml:"generic_signatures" json:"generic_signatures"`

	// Rand is the source of randomness. It must be safe for concurrent use.
	// Defaults to crypto/rand.Reader.
	Rand io.Reader `yaml:"-" json:"-"`
}

// DefaultConfig returns secp256k1 with SHA-256, AES-256-CBC and a 32 byte MAC key.
func DefaultConfig() Config {
	return Config{
		Curve:        SECP256K1,
		Hash:         SHA256,
		Cipher:       AES256CBC,
		MACKeyLength: 32,
		Rand:         rand.Reader,
	}
}

// Validate checks that every field names a supported primitive.
func (c *Config) Validate() error {
	if getCurve(c.Curve) == nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, ErrUnsupportedCurve)
	}
	if !c.Hash.Available() {
		return fmt.Errorf("%w: unknown hash %d", ErrInvalidConfig, int(c.Hash))
	}
	if c.Cipher.KeyLength() < 0 {
		return fmt.Errorf("%w: unknown cipher %d", ErrInvalidConfig, int(c.Cipher))
	}
	if c.MACKeyLength < minMACKeyLength || c.MACKeyLength > maxMACKeyLength {
		return fmt.Errorf("%w: MAC key length %d is outside [%d, %d]", ErrInvalidConfig,
			c.MACKeyLength, minMACKeyLength, maxMACKeyLength)
	}
	return nil
}

// ParseConfig reads a YAML configuration. Missing fields take their values
// from DefaultConfig.
//
//	curve: P-256
//	hash: SHA-512
//	cipher: AES-128-CBC
//	mac_key_length: 32
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) random() io.Reader {
	if c.Rand == nil {
		return rand.Reader
	}
	return c.Rand
}
