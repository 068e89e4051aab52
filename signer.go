package ecengine

import (
	"crypto/ecdsa"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/btcsuite/btcd/btcec"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

const (
	// compactSigMagicOffset is the header byte offset of a compact signature,
	// compactSigCompPubKey marks a signature made for a compressed key.
	compactSigMagicOffset = 27
	compactSigCompPubKey  = 4
)

// Signer signs and verifies messages. Messages are hashed by the signer.
type Signer interface {
	Sign(message []byte, key *PrivateKey) (*Signature, error)
	Verify(message []byte, signature *Signature, key *PublicKey) bool
}

// Recoverer is implemented by signers whose signatures carry enough information
// to recover the signing public key.
type Recoverer interface {
	RecoverPublicKey(message []byte, signature *Signature) (*PublicKey, error)
}

// NewSigner returns the fastest available signer for curve: the secp256k1
// specific implementation for SECP256K1 and crypto/ecdsa for the rest.
// Signatures from both are interchangeable on secp256k1.
func NewSigner(curve EllipticCurve, h HashFunc, random io.Reader) Signer {
	if curve == SECP256K1 {
		return NewSecp256k1Signer(h)
	}
	return NewGenericSigner(curve, h, random)
}

// GenericSigner implements ECDSA over any supported curve with crypto/ecdsa.
type GenericSigner struct {
	curve  EllipticCurve
	hash   HashFunc
	random io.Reader
}

// NewGenericSigner creates a GenericSigner. Nonces are drawn from random.
func NewGenericSigner(curve EllipticCurve, h HashFunc, random io.Reader) *GenericSigner {
	if random == nil {
		random = rand.Reader
	}
	return &GenericSigner{curve: curve, hash: h, random: random}
}

// Sign hashes the message and signs the digest with a random nonce.
func (gs *GenericSigner) Sign(message []byte, key *PrivateKey) (*Signature, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: missing private key", ErrInvalidKey)
	}
	if key.Curve() != gs.curve {
		return nil, ErrDifferentCurves
	}
	r, s, err := ecdsa.Sign(gs.random, key.privateKey, gs.hash.Sum(message))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyGeneration, err)
	}
	return &Signature{R: r, S: s}, nil
}

// Verify reports whether signature is valid for message and key.
func (gs *GenericSigner) Verify(message []byte, signature *Signature, key *PublicKey) bool {
	if key == nil || key.Curve() != gs.curve || !signature.inRange(gs.curve) {
		return false
	}
	return ecdsa.Verify(key.publicKey, gs.hash.Sum(message), signature.R, signature.S)
}

// Secp256k1Signer implements ECDSA on secp256k1 with the optimized secp256k1
// package. Nonces are derived deterministically (RFC6979), signatures are
// canonical (low S) and carry a recovery id.
type Secp256k1Signer struct {
	hash HashFunc
}

// NewSecp256k1Signer creates a Secp256k1Signer.
func NewSecp256k1Signer(h HashFunc) *Secp256k1Signer {
	return &Secp256k1Signer{hash: h}
}

// Sign hashes the message and signs the digest.
func (ss *Secp256k1Signer) Sign(message []byte, key *PrivateKey) (*Signature, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: missing private key", ErrInvalidKey)
	}
	if key.Curve() != SECP256K1 {
		return nil, ErrDifferentCurves
	}
	priv := secp256k1.PrivKeyFromBytes(key.Bytes())
	compact := secpecdsa.SignCompact(priv, ss.digest(message), true)

	return &Signature{
		R:           new(big.Int).SetBytes(compact[1:33]),
		S:           new(big.Int).SetBytes(compact[33:65]),
		Recoverable: true,
		RecoveryID:  compact[0] - compactSigMagicOffset - compactSigCompPubKey,
	}, nil
}

// Verify reports whether signature is valid for message and key.
func (ss *Secp256k1Signer) Verify(message []byte, signature *Signature, key *PublicKey) bool {
	if key == nil || key.Curve() != SECP256K1 || !signature.inRange(SECP256K1) {
		return false
	}
	pub, err := key.toSECP256K1()
	if err != nil {
		return false
	}
	var r, s secp256k1.ModNScalar
	r.SetByteSlice(signature.R.Bytes())
	s.SetByteSlice(signature.S.Bytes())
	return secpecdsa.NewSignature(&r, &s).Verify(ss.digest(message), pub)
}

// RecoverPublicKey returns the public key that produced signature over message.
func (ss *Secp256k1Signer) RecoverPublicKey(message []byte, signature *Signature) (*PublicKey, error) {
	if !signature.inRange(SECP256K1) || !signature.Recoverable || signature.RecoveryID > 3 {
		return nil, fmt.Errorf("%w: signature is not recoverable", ErrInvalidKey)
	}
	compact := make([]byte, 65)
	compact[0] = compactSigMagicOffset + compactSigCompPubKey + signature.RecoveryID
	signature.R.FillBytes(compact[1:33])
	signature.S.FillBytes(compact[33:65])

	pub, _, err := secpecdsa.RecoverCompact(compact, ss.digest(message))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return &PublicKey{publicKey: &ecdsa.PublicKey{
		Curve: btcec.S256(),
		X:     pub.X(),
		Y:     pub.Y()}}, nil
}

// digest hashes message and keeps the leftmost 32 bytes, as ECDSA does for
// digests longer than the group order.
func (ss *Secp256k1Signer) digest(message []byte) []byte {
	d := ss.hash.Sum(message)
	if len(d) > 32 {
		d = d[:32]
	}
	return d
}
