package ecengine

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"
	"fmt"
	"strings"
)

// SymmetricCipher identifies the block cipher used by Encrypt. Both choices
// run in CBC mode with PKCS#7 padding.
type SymmetricCipher int

const (
	INVALID_CIPHER SymmetricCipher = -1
	AES128CBC      SymmetricCipher = 1
	AES256CBC      SymmetricCipher = 2
)

// String returns the cipher name.
func (c SymmetricCipher) String() string {
	switch c {
	case AES128CBC:
		return "AES-128-CBC"
	case AES256CBC:
		return "AES-256-CBC"
	}
	return "Invalid"
}

// StringToSymmetricCipher converts the cipher name to SymmetricCipher.
// If the name is not recognized, INVALID_CIPHER is returned.
func StringToSymmetricCipher(s string) SymmetricCipher {
	switch strings.ToUpper(s) {
	case "AES-128-CBC":
		return AES128CBC
	case "AES-256-CBC":
		return AES256CBC
	}
	return INVALID_CIPHER
}

// MarshalText implements encoding.TextMarshaler.
func (c SymmetricCipher) MarshalText() ([]byte, error) {
	if c.KeyLength() < 0 {
		return nil, fmt.Errorf("%w: unknown cipher %d", ErrInvalidConfig, int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *SymmetricCipher) UnmarshalText(text []byte) error {
	v := StringToSymmetricCipher(string(text))
	if v == INVALID_CIPHER {
		return fmt.Errorf("%w: unknown cipher %q", ErrInvalidConfig, string(text))
	}
	*c = v
	return nil
}

// KeyLength returns the key length in bytes, or -1 for an invalid cipher.
func (c SymmetricCipher) KeyLength() int {
	switch c {
	case AES128CBC:
		return 16
	case AES256CBC:
		return 32
	}
	return -1
}

// BlockSize returns the cipher block size, which is also the IV length.
func (c SymmetricCipher) BlockSize() int {
	return aes.BlockSize
}

// encryptCBC pads plaintext with PKCS#7 and encrypts it in CBC mode.
func encryptCBC(key, iv, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	if len(iv) != block.BlockSize() {
		return nil, fmt.Errorf("invalid IV size: got %d, want %d", len(iv), block.BlockSize())
	}

	padded := pkcs7Pad(plaintext, block.BlockSize())
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)
	return ciphertext, nil
}

// decryptCBC decrypts ciphertext in CBC mode and strips the padding. All
// failures are ErrAuthentication.
func decryptCBC(key, iv, ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, ErrAuthentication
	}
	bs := block.BlockSize()
	if len(iv) != bs || len(ciphertext) == 0 || len(ciphertext)%bs != 0 {
		return nil, ErrAuthentication
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)
	return pkcs7Unpad(plaintext, bs)
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

// pkcs7Unpad checks the padding without branching on the padding bytes.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, ErrAuthentication
	}
	n := int(data[len(data)-1])
	good := subtle.ConstantTimeLessOrEq(1, n) & subtle.ConstantTimeLessOrEq(n, blockSize)

	// Inspect the whole last block so the work done does not depend on n.
	for i := 1; i <= blockSize; i++ {
		b := int(data[len(data)-i])
		inPad := subtle.ConstantTimeLessOrEq(i, n)
		good &= subtle.ConstantTimeSelect(inPad, subtle.ConstantTimeByteEq(byte(b), byte(n)), 1)
	}
	if good != 1 {
		return nil, ErrAuthentication
	}
	return data[:len(data)-n], nil
}
