package ecengine

import (
	"crypto/hmac"
	"fmt"
	"io"
)

// Encrypt encrypts plaintext for the owner of recipient:
//  1. Generate an ephemeral key pair.
//  2. ECDH between the ephemeral private key and recipient.
//  3. KDF the shared secret into an encryption key and a MAC key.
//  4. Encrypt the plaintext in CBC mode under a fresh random IV.
//  5. Tag the ciphertext with HMAC.
//  6. MAC ephemeral public key || IV || ciphertext || tag with the same key.
func (e *Engine) Encrypt(plaintext []byte, recipient *PublicKey) (*Envelope, error) {
	if recipient == nil {
		return nil, fmt.Errorf("%w: missing recipient public key", ErrInvalidKey)
	}
	if recipient.Curve() != e.config.Curve {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, ErrDifferentCurves)
	}

	ephemeral, err := generatePrivateKey(e.config.Curve, e.config.random())
	if err != nil {
		return nil, err
	}

	encKey, macKey, err := e.deriveKeys(ephemeral, recipient)
	if err != nil {
		return nil, err
	}
	defer zero(encKey)
	defer zero(macKey)

	iv := make([]byte, e.config.Cipher.BlockSize())
	if _, err := io.ReadFull(e.config.random(), iv); err != nil {
		return nil, fmt.Errorf("%w: failed to populate IV: %v", ErrKeyGeneration, err)
	}
	ciphertext, err := encryptCBC(encKey, iv, plaintext)
	if err != nil {
		return nil, err
	}

	ephemeralPublicKey := ephemeral.PublicKey().Bytes()
	innerAuthTag := e.mac(macKey, ciphertext)
	outerMAC := e.mac(macKey, ephemeralPublicKey, iv, ciphertext, innerAuthTag)

	return &Envelope{
		EphemeralPublicKey: ephemeralPublicKey,
		IV:                 iv,
		Ciphertext:         ciphertext,
		InnerAuthTag:       innerAuthTag,
		OuterMAC:           outerMAC,
	}, nil
}

// Decrypt authenticates and decrypts an envelope produced by Encrypt. Nothing is
// decrypted before the outer MAC checks out, and every authentication or
// decryption failure is the same ErrAuthentication.
func (e *Engine) Decrypt(envelope *Envelope, key *PrivateKey) ([]byte, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: missing private key", ErrInvalidKey)
	}
	if key.Curve() != e.config.Curve {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, ErrDifferentCurves)
	}
	if !e.wellFormed(envelope) {
		return nil, ErrAuthentication
	}
	ephemeral, err := NewPublicKeyFromBytes(key.Curve(), envelope.EphemeralPublicKey)
	if err != nil {
		return nil, ErrAuthentication
	}

	encKey, macKey, err := e.deriveKeys(key, ephemeral)
	if err != nil {
		return nil, ErrAuthentication
	}
	defer zero(encKey)
	defer zero(macKey)

	expectedOuterMAC := e.mac(macKey, envelope.EphemeralPublicKey, envelope.IV,
		envelope.Ciphertext, envelope.InnerAuthTag)
	if !hmac.Equal(expectedOuterMAC, envelope.OuterMAC) {
		return nil, ErrAuthentication
	}

	plaintext, err := decryptCBC(encKey, envelope.IV, envelope.Ciphertext)
	if err != nil {
		return nil, ErrAuthentication
	}

	expectedInnerAuthTag := e.mac(macKey, envelope.Ciphertext)
	if !hmac.Equal(expectedInnerAuthTag, envelope.InnerAuthTag) {
		zero(plaintext)
		return nil, ErrAuthentication
	}
	return plaintext, nil
}

// wellFormed checks field lengths only; it never looks at secret data.
func (e *Engine) wellFormed(envelope *Envelope) bool {
	if envelope == nil {
		return false
	}
	bs := e.config.Cipher.BlockSize()
	tagLen := e.config.Hash.Size()
	return len(envelope.EphemeralPublicKey) > 0 &&
		len(envelope.IV) == bs &&
		len(envelope.Ciphertext) > 0 && len(envelope.Ciphertext)%bs == 0 &&
		len(envelope.InnerAuthTag) == tagLen &&
		len(envelope.OuterMAC) == tagLen
}

// deriveKeys runs ECDH and the KDF and splits the output into the encryption
// key and the MAC key, in that order.
func (e *Engine) deriveKeys(privateKey *PrivateKey, publicKey *PublicKey) ([]byte, []byte, error) {
	secret, err := DeriveSharedSecret(privateKey, publicKey, e.config.Hash)
	if err != nil {
		return nil, nil, err
	}
	defer zero(secret)

	encKeyLen := e.config.Cipher.KeyLength()
	keyMaterial, err := KDF(e.config.Hash, secret, encKeyLen+e.config.MACKeyLength)
	if err != nil {
		return nil, nil, err
	}
	return keyMaterial[:encKeyLen:encKeyLen], keyMaterial[encKeyLen:], nil
}

func (e *Engine) mac(key []byte, parts ...[]byte) []byte {
	m := hmac.New(e.config.Hash.New, key)
	for _, p := range parts {
		m.Write(p)
	}
	return m.Sum(nil)
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
