package ecengine

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-jose/go-jose/v3"
	"golang.org/x/crypto/scrypt"
)

const (
	// Key derivation parameters.
	deriveKey_N      = 16384
	deriveKey_r      = 8
	deriveKey_p      = 1
	deriveKey_keyLen = 32

	saltField = "x-salt"
)

var errInvalidJWE = fmt.Errorf("invalid content")

// makeSalt creates random 32 bytes salt.
func makeSalt() ([]byte, error) {
	salt := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// deriveKey creates a 32 bytes symmetric encryption key from password and salt.
// Key derivation algorithm is described in https://www.tarsnap.com/scrypt/scrypt.pdf.
func deriveKey(password, salt []byte) ([]byte, error) {
	return scrypt.Key(password, salt, deriveKey_N, deriveKey_r, deriveKey_p, deriveKey_keyLen)
}

func encryptJWE(key []byte, content []byte) (string, error) {
	encrypter, err := jose.NewEncrypter(jose.A256GCM,
		jose.Recipient{Algorithm: jose.DIRECT, Key: key}, nil)
	if err != nil {
		return "", err
	}
	object, err := encrypter.Encrypt(content)
	if err != nil {
		return "", err
	}
	return object.FullSerialize(), nil
}

func decryptJWE(key []byte, content string) ([]byte, error) {
	object, err := jose.ParseEncrypted(content)
	if err != nil {
		return nil, err
	}
	return object.Decrypt(key)
}

func addJSONField(content string, name string, value interface{}) (string, error) {
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(content), &m); err != nil {
		return "", err
	}
	if m == nil {
		return "", errInvalidJWE
	}
	m[name] = value
	b, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func encryptWithPassphraseJWE(passphrase string, content []byte) (string, error) {
	salt, err := makeSalt()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}
	key, err := deriveKey([]byte(passphrase), salt)
	if err != nil {
		return "", err
	}
	s, err := encryptJWE(key, content)
	if err != nil {
		return "", err
	}
	return addJSONField(s, saltField, base64urlEncode(salt))
}

func decryptWithPassphraseJWE(passphrase string, content string) ([]byte, error) {
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(content), &m); err != nil {
		return nil, err
	}
	saltStr, ok := m[saltField].(string)
	if !ok {
		return nil, errInvalidJWE
	}
	salt, err := base64urlDecode(saltStr)
	if err != nil {
		return nil, errInvalidJWE
	}
	key, err := deriveKey([]byte(passphrase), salt)
	if err != nil {
		return nil, err
	}
	return decryptJWE(key, content)
}
