package ecengine

import (
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"io"
	"math/big"

	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/pbkdf2"
)

const (
	PBKDF2_ITER = 16384
	PBKDF2_SIZE = 32
)

// PrivateKey represents elliptic cryptography private key. Together with the
// public key derived from it, it forms a key pair. It is immutable.
type PrivateKey struct {
	privateKey *ecdsa.PrivateKey
}

// privateKeyJSON struct is used when serializing keys to JWK format.
type privateKeyJSON struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	X   string `json:"x"`
	Y   string `json:"y"`
	D   string `json:"d"`
}

// NewPrivateKey creates a new random private key,
// given a curve.
func NewPrivateKey(curve EllipticCurve) (*PrivateKey, error) {
	return generatePrivateKey(curve, rand.Reader)
}

// generatePrivateKey draws a scalar uniformly from [1, N-1] as in FIPS 186-4
// B.4.1: read 64 extra bits, reduce modulo N-1 and add one.
func generatePrivateKey(curve EllipticCurve, random io.Reader) (*PrivateKey, error) {
	n := getOrder(curve)
	if n == nil {
		return nil, ErrUnsupportedCurve
	}
	b := make([]byte, getKeyLength(curve)+8)
	if _, err := io.ReadFull(random, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}
	return NewPrivateKeyFromSecret(curve, reduceScalar(new(big.Int).SetBytes(b), n))
}

// reduceScalar maps k into [1, n-1].
func reduceScalar(k, n *big.Int) *big.Int {
	nMinus1 := new(big.Int).Sub(n, big.NewInt(1))
	k.Mod(k, nMinus1)
	return k.Add(k, big.NewInt(1))
}

// NewPrivateKeyFromSecret creates a private key on the given curve from secret.
// The secret must be in [1, N-1].
func NewPrivateKeyFromSecret(curve EllipticCurve, secret *big.Int) (*PrivateKey, error) {
	c := getCurve(curve)
	if c == nil {
		return nil, ErrUnsupportedCurve
	}
	if secret == nil || secret.Sign() <= 0 || secret.Cmp(c.Params().N) >= 0 {
		return nil, fmt.Errorf("%w: secret is out of range for %v", ErrInvalidKey, curve)
	}
	d := new(big.Int).Set(secret)
	privateKey := &ecdsa.PrivateKey{D: d}
	privateKey.PublicKey.Curve = c
	privateKey.PublicKey.X, privateKey.PublicKey.Y = c.ScalarBaseMult(padWithZeros(d.Bytes(), getKeyLength(curve)))
	return &PrivateKey{privateKey: privateKey}, nil
}

// NewPrivateKeyFromBytes creates a private key from its fixed-width big-endian
// encoding, as returned by Bytes. Shorter encodings are accepted and treated as
// left-padded with zeros.
func NewPrivateKeyFromBytes(curve EllipticCurve, b []byte) (*PrivateKey, error) {
	keyLen := getKeyLength(curve)
	if keyLen < 0 {
		return nil, ErrUnsupportedCurve
	}
	if len(b) == 0 || len(b) > keyLen {
		return nil, fmt.Errorf("%w: got %d bytes, want at most %d", ErrInvalidKey, len(b), keyLen)
	}
	return NewPrivateKeyFromSecret(curve, new(big.Int).SetBytes(b))
}

// NewPrivateKeyFromPassword creates a private key on the given curve from password using
// PBKDF2 algorithm.
// See https://en.wikipedia.org/wiki/PBKDF2.
func NewPrivateKeyFromPassword(curve EllipticCurve, password, salt []byte) (*PrivateKey, error) {
	n := getOrder(curve)
	if n == nil {
		return nil, ErrUnsupportedCurve
	}
	secret := pbkdf2.Key(password, salt, PBKDF2_ITER, PBKDF2_SIZE, sha256.New)
	return NewPrivateKeyFromSecret(curve, reduceScalar(new(big.Int).SetBytes(secret), n))
}

// NewPrivateKeyFromMnemonic creates private key on given curve from a mnemonic phrase.
// Only SECP256K1 and P256 keys can be created from mnemonic.
func NewPrivateKeyFromMnemonic(curve EllipticCurve, mnemonic string) (*PrivateKey, error) {
	if curve != SECP256K1 && curve != P256 {
		return nil, ErrUnsupportedCurve
	}
	b, err := bip39.EntropyFromMnemonic(mnemonic)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return NewPrivateKeyFromSecret(curve, new(big.Int).SetBytes(b))
}

// NewPrivateKeyFromJSON creates private key from JWK-encoded
// representation.
// See https://www.rfc-editor.org/rfc/rfc7517.
func NewPrivateKeyFromJSON(data string) (*PrivateKey, error) {
	var pkJSON privateKeyJSON
	err := json.Unmarshal([]byte(data), &pkJSON)
	if err != nil {
		return nil, err
	}
	if pkJSON.Kty != "EC" {
		return nil, ErrUnsupportedKeyType
	}
	curve := StringToEllipticCurve(pkJSON.Crv)
	if curve == INVALID_CURVE {
		return nil, ErrUnsupportedCurve
	}
	// JWK uses Base64url encoding, which is Base64 encoding without padding.
	dBytes, err := base64urlDecode(pkJSON.D)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	pk, err := NewPrivateKeyFromSecret(curve, new(big.Int).SetBytes(dBytes))
	if err != nil {
		return nil, err
	}
	// The public part is redundant, but if present it has to agree with d.
	if pkJSON.X != "" || pkJSON.Y != "" {
		x, errX := base64urlDecode(pkJSON.X)
		y, errY := base64urlDecode(pkJSON.Y)
		if errX != nil || errY != nil ||
			new(big.Int).SetBytes(x).Cmp(pk.PublicKey().X()) != 0 ||
			new(big.Int).SetBytes(y).Cmp(pk.PublicKey().Y()) != 0 {
			return nil, fmt.Errorf("%w: public key does not match d", ErrInvalidKey)
		}
	}
	return pk, nil
}

// NewPrivateKeyFromEncryptedWithPassphrase decrypts a key produced by
// EncryptKeyWithPassphrase.
func NewPrivateKeyFromEncryptedWithPassphrase(content string, passphrase string) (*PrivateKey, error) {
	jsonBytes, err := decryptWithPassphraseJWE(passphrase, content)
	if err != nil {
		return nil, err
	}
	return NewPrivateKeyFromJSON(string(jsonBytes))
}

// Secret returns the private key's secret.
func (pk *PrivateKey) Secret() *big.Int {
	return new(big.Int).Set(pk.privateKey.D)
}

// Bytes returns the secret as a fixed-width big-endian byte slice.
func (pk *PrivateKey) Bytes() []byte {
	return padWithZeros(pk.privateKey.D.Bytes(), getKeyLength(pk.Curve()))
}

// PublicKey returns the public key derived from this private key.
func (pk *PrivateKey) PublicKey() *PublicKey {
	return &PublicKey{publicKey: &pk.privateKey.PublicKey}
}

// Curve returns the elliptic curve for this private key.
func (pk *PrivateKey) Curve() EllipticCurve {
	return curveFromElliptic(pk.privateKey.Curve)
}

// Sign hashes the message with SHA-256 and signs it with the default signer for
// the key's curve.
func (pk *PrivateKey) Sign(message []byte) (*Signature, error) {
	return NewSigner(pk.Curve(), SHA256, rand.Reader).Sign(message, pk)
}

// SharedSecret returns a secret shared with the owner of publicKey, using
// Elliptic Curve Diffie-Hellman. For Alice and Bob, the secret is guaranteed to be
// the same when it's derived from Alice's private key and Bob's public key or
// Alice's public key and Bob's private key.
//
// See https://en.wikipedia.org/wiki/Elliptic-curve_Diffie%E2%80%93Hellman.
func (pk *PrivateKey) SharedSecret(publicKey *PublicKey, h HashFunc) ([]byte, error) {
	return DeriveSharedSecret(pk, publicKey, h)
}

// Mnemonic returns a mnemonic phrase which can be used to recover this private key.
func (pk *PrivateKey) Mnemonic() (string, error) {
	if pk.Curve() != SECP256K1 && pk.Curve() != P256 {
		return "", ErrUnsupportedCurve
	}
	return bip39.NewMnemonic(padWithZeros(pk.privateKey.D.Bytes(), 32))
}

// Equal returns true if this key is equal to the other key.
func (pk *PrivateKey) Equal(other *PrivateKey) bool {
	if other == nil || pk.Curve() != other.Curve() {
		return false
	}
	return subtle.ConstantTimeCompare(pk.Bytes(), other.Bytes()) == 1
}

// ToECDSA returns a copy of this key as crypto/ecdsa private key.
func (pk *PrivateKey) ToECDSA() *ecdsa.PrivateKey {
	k := *pk.privateKey
	k.D = new(big.Int).Set(pk.privateKey.D)
	k.PublicKey.X = new(big.Int).Set(pk.privateKey.X)
	k.PublicKey.Y = new(big.Int).Set(pk.privateKey.Y)
	return &k
}

// MarshalToJSON returns the key JWK representation,
// see https://www.rfc-editor.org/rfc/rfc7517.
func (pk *PrivateKey) MarshalToJSON() (string, error) {
	keyLen := getKeyLength(pk.Curve())
	xEncoded := base64urlEncode(padWithZeros(pk.PublicKey().X().Bytes(), keyLen))
	yEncoded := base64urlEncode(padWithZeros(pk.PublicKey().Y().Bytes(), keyLen))
	dEncoded := base64urlEncode(pk.Bytes())

	b, err := json.Marshal(privateKeyJSON{
		Kty: "EC",
		Crv: pk.Curve().String(),
		X:   xEncoded,
		Y:   yEncoded,
		D:   dEncoded,
	})
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// EncryptKeyWithPassphrase returns the key JWK representation encrypted as JWE,
// with the content key derived from passphrase by scrypt.
func (pk *PrivateKey) EncryptKeyWithPassphrase(passphrase string) (string, error) {
	keyJWK, err := pk.MarshalToJSON()
	if err != nil {
		return "", err
	}
	return encryptWithPassphraseJWE(passphrase, []byte(keyJWK))
}
