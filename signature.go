package ecengine

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Signature represents a cryptographic signature (ECDSA).
// See https://en.wikipedia.org/wiki/Elliptic_Curve_Digital_Signature_Algorithm
//
// Signers that support public key recovery set Recoverable and RecoveryID.
type Signature struct {
	R *big.Int
	S *big.Int

	Recoverable bool
	RecoveryID  byte
}

// Verify hashes message with SHA-256 and verifies the signature with the default
// signer for the key's curve.
func (sig *Signature) Verify(key *PublicKey, message []byte) bool {
	if key == nil {
		return false
	}
	return NewSigner(key.Curve(), SHA256, rand.Reader).Verify(message, sig, key)
}

// Bytes returns R || S, each padded to the curve's width. A recoverable signature
// has the recovery id appended.
func (sig *Signature) Bytes(curve EllipticCurve) ([]byte, error) {
	keyLen := getKeyLength(curve)
	if keyLen < 0 {
		return nil, ErrUnsupportedCurve
	}
	if !sig.inRange(curve) {
		return nil, fmt.Errorf("%w: signature is out of range", ErrInvalidKey)
	}
	size := 2 * keyLen
	if sig.Recoverable {
		size++
	}
	b := make([]byte, size)
	sig.R.FillBytes(b[:keyLen])
	sig.S.FillBytes(b[keyLen : 2*keyLen])
	if sig.Recoverable {
		b[2*keyLen] = sig.RecoveryID
	}
	return b, nil
}

// ParseSignature parses the output of Signature.Bytes.
func ParseSignature(curve EllipticCurve, b []byte) (*Signature, error) {
	keyLen := getKeyLength(curve)
	if keyLen < 0 {
		return nil, ErrUnsupportedCurve
	}
	if len(b) != 2*keyLen && len(b) != 2*keyLen+1 {
		return nil, fmt.Errorf("invalid signature length %d", len(b))
	}
	sig := &Signature{
		R: new(big.Int).SetBytes(b[:keyLen]),
		S: new(big.Int).SetBytes(b[keyLen : 2*keyLen]),
	}
	if len(b) == 2*keyLen+1 {
		sig.Recoverable = true
		sig.RecoveryID = b[2*keyLen]
	}
	if !sig.inRange(curve) {
		return nil, fmt.Errorf("invalid signature: R or S out of range")
	}
	return sig, nil
}

// inRange reports whether R and S are both in [1, N-1].
func (sig *Signature) inRange(curve EllipticCurve) bool {
	n := getOrder(curve)
	if sig == nil || n == nil || sig.R == nil || sig.S == nil {
		return false
	}
	return sig.R.Sign() > 0 && sig.R.Cmp(n) < 0 &&
		sig.S.Sign() > 0 && sig.S.Cmp(n) < 0
}
