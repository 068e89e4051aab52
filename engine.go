package ecengine

import (
	"fmt"
)

// Engine binds the key, exchange, encryption and signature operations to one
// immutable Config. It holds no other state and is safe for concurrent use.
type Engine struct {
	config Config
	signer Signer
}

// New validates config and creates an Engine. A nil Rand means crypto/rand.Reader.
func New(config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	config.Rand = config.random()

	var signer Signer
	if config.GenericSignatures {
		signer = NewGenericSigner(config.Curve, config.Hash, config.Rand)
	} else {
		signer = NewSigner(config.Curve, config.Hash, config.Rand)
	}
	return &Engine{config: config, signer: signer}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Signer returns the signature backend selected for the engine's curve.
func (e *Engine) Signer() Signer {
	return e.signer
}

// GenerateKeyPair creates a new random key pair.
func (e *Engine) GenerateKeyPair() (*PrivateKey, error) {
	return generatePrivateKey(e.config.Curve, e.config.Rand)
}

// KeyPairFromPrivate imports a private key from its big-endian encoding and
// re-derives the public key.
func (e *Engine) KeyPairFromPrivate(privateKey []byte) (*PrivateKey, error) {
	return NewPrivateKeyFromBytes(e.config.Curve, privateKey)
}

// ParsePublicKey parses a SEC1 public key on the engine's curve.
func (e *Engine) ParsePublicKey(publicKey []byte) (*PublicKey, error) {
	return NewPublicKeyFromBytes(e.config.Curve, publicKey)
}

// DeriveSharedSecret returns the shared secret of a private key and a peer's
// SEC1 public key. Any failure is ErrKeyExchange.
func (e *Engine) DeriveSharedSecret(privateKey, publicKey []byte) ([]byte, error) {
	priv, err := e.KeyPairFromPrivate(privateKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyExchange, err)
	}
	pub, err := e.ParsePublicKey(publicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyExchange, err)
	}
	return DeriveSharedSecret(priv, pub, e.config.Hash)
}

// EncryptFor encrypts plaintext for a SEC1 encoded recipient public key.
func (e *Engine) EncryptFor(plaintext []byte, recipientPublicKey []byte) (*Envelope, error) {
	pub, err := e.ParsePublicKey(recipientPublicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKey, err)
	}
	return e.Encrypt(plaintext, pub)
}

// DecryptWith decrypts an envelope with an encoded private key.
func (e *Engine) DecryptWith(envelope *Envelope, privateKey []byte) ([]byte, error) {
	priv, err := e.KeyPairFromPrivate(privateKey)
	if err != nil {
		return nil, err
	}
	return e.Decrypt(envelope, priv)
}

// Sign hashes and signs message.
func (e *Engine) Sign(message []byte, key *PrivateKey) (*Signature, error) {
	return e.signer.Sign(message, key)
}

// Verify reports whether signature is valid for message under key. It never
// fails for malformed input; it returns false.
func (e *Engine) Verify(message []byte, signature *Signature, key *PublicKey) bool {
	return e.signer.Verify(message, signature, key)
}

// VerifyWith is Verify for a SEC1 encoded public key.
func (e *Engine) VerifyWith(message []byte, signature *Signature, publicKey []byte) bool {
	pub, err := e.ParsePublicKey(publicKey)
	if err != nil {
		return false
	}
	return e.Verify(message, signature, pub)
}

// RecoverPublicKey recovers the signing key from a recoverable signature.
// Only the secp256k1 signer supports recovery. Other curves return
// ErrUnsupportedCurve; secp256k1 with GenericSignatures returns
// ErrUnsupportedKeyType.
func (e *Engine) RecoverPublicKey(message []byte, signature *Signature) (*PublicKey, error) {
	r, ok := e.signer.(Recoverer)
	if !ok {
		if e.config.Curve != SECP256K1 {
			return nil, ErrUnsupportedCurve
		}
		return nil, fmt.Errorf("%w: signer does not support recovery", ErrUnsupportedKeyType)
	}
	return r.RecoverPublicKey(message, signature)
}

// CompressPublicKey converts a SEC1 public key to the compressed format.
func (e *Engine) CompressPublicKey(publicKey []byte) ([]byte, error) {
	return CompressPublicKey(e.config.Curve, publicKey)
}

// DecompressPublicKey converts a SEC1 public key to the uncompressed format.
func (e *Engine) DecompressPublicKey(publicKey []byte) ([]byte, error) {
	return DecompressPublicKey(e.config.Curve, publicKey)
}

// IsValidPublicKey reports whether publicKey is a point on the engine's curve.
func (e *Engine) IsValidPublicKey(publicKey []byte) bool {
	return IsValidPublicKey(e.config.Curve, publicKey)
}

// IsValidPrivateKey reports whether privateKey is a valid scalar for the engine's curve.
func (e *Engine) IsValidPrivateKey(privateKey []byte) bool {
	return IsValidPrivateKey(e.config.Curve, privateKey)
}
