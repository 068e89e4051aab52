package ecengine

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/ripemd160"
)

// HashFunc identifies the hash function used for shared secrets, the KDF,
// HMAC and message digests.
type HashFunc int

const (
	INVALID_HASH HashFunc = -1
	SHA256       HashFunc = 1
	SHA384       HashFunc = 2
	SHA512       HashFunc = 3
	KECCAK256    HashFunc = 4
)

// String returns the hash function name.
func (h HashFunc) String() string {
	switch h {
	case SHA256:
		return "SHA-256"
	case SHA384:
		return "SHA-384"
	case SHA512:
		return "SHA-512"
	case KECCAK256:
		return "Keccak-256"
	}
	return "Invalid"
}

// StringToHashFunc converts the hash name to HashFunc.
// If the name is not recognized, INVALID_HASH is returned.
func StringToHashFunc(s string) HashFunc {
	switch strings.ToUpper(strings.ReplaceAll(s, "-", "")) {
	case "SHA256":
		return SHA256
	case "SHA384":
		return SHA384
	case "SHA512":
		return SHA512
	case "KECCAK256":
		return KECCAK256
	}
	return INVALID_HASH
}

// MarshalText implements encoding.TextMarshaler.
func (h HashFunc) MarshalText() ([]byte, error) {
	if !h.Available() {
		return nil, fmt.Errorf("%w: unknown hash %d", ErrInvalidConfig, int(h))
	}
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *HashFunc) UnmarshalText(text []byte) error {
	v := StringToHashFunc(string(text))
	if v == INVALID_HASH {
		return fmt.Errorf("%w: unknown hash %q", ErrInvalidConfig, string(text))
	}
	*h = v
	return nil
}

// Available reports whether h names a known hash function.
func (h HashFunc) Available() bool {
	return h.constructor() != nil
}

func (h HashFunc) constructor() func() hash.Hash {
	switch h {
	case SHA256:
		return sha256.New
	case SHA384:
		return sha512.New384
	case SHA512:
		return sha512.New
	case KECCAK256:
		return func() hash.Hash { return crypto.NewKeccakState() }
	}
	return nil
}

// New returns a fresh hash.Hash. It panics if h is not available; configurations
// are validated before any hashing happens.
func (h HashFunc) New() hash.Hash {
	f := h.constructor()
	if f == nil {
		panic(fmt.Sprintf("ecengine: unavailable hash function %d", int(h)))
	}
	return f()
}

// Size returns the digest length in bytes.
func (h HashFunc) Size() int {
	return h.New().Size()
}

// Sum returns the digest of data.
func (h HashFunc) Sum(data []byte) []byte {
	return calcHash(data, h.New())
}

// Hash256 does two rounds of SHA256 hashing.
func Hash256(data []byte) []byte {
	h := sha256.Sum256(data)
	h1 := sha256.Sum256(h[:])
	return h1[:]
}

// Calculate the hash of hasher over buf.
func calcHash(buf []byte, hasher hash.Hash) []byte {
	hasher.Write(buf)
	return hasher.Sum(nil)
}

// Hash160 calculates the hash ripemd160(sha256(b)).
func Hash160(buf []byte) []byte {
	return calcHash(calcHash(buf, sha256.New()), ripemd160.New())
}
