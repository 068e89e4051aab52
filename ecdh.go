package ecengine

import (
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// DeriveSharedSecret computes privateKey * publicKey and returns the configured
// hash of the product's X coordinate, encoded big-endian at the curve's width.
// Degenerate input (nil keys, different curves, a product at infinity) is
// reported as ErrKeyExchange.
func DeriveSharedSecret(privateKey *PrivateKey, publicKey *PublicKey, h HashFunc) ([]byte, error) {
	x, err := sharedX(privateKey, publicKey)
	if err != nil {
		return nil, err
	}
	if !h.Available() {
		return nil, fmt.Errorf("%w: unknown hash %d", ErrKeyExchange, int(h))
	}
	return h.Sum(x), nil
}

// sharedX returns the raw X coordinate of privateKey * publicKey.
func sharedX(privateKey *PrivateKey, publicKey *PublicKey) ([]byte, error) {
	if privateKey == nil || publicKey == nil {
		return nil, fmt.Errorf("%w: missing key", ErrKeyExchange)
	}
	curve := privateKey.Curve()
	if curve != publicKey.Curve() {
		return nil, fmt.Errorf("%w: %v", ErrKeyExchange, ErrDifferentCurves)
	}

	if curve == SECP256K1 {
		// crypto/ecdh does not support this curve, so we have to handle
		// it as a special case.
		return sharedXSecp256k1(privateKey, publicKey)
	}

	ecdhCurve := getECDHCurve(curve)
	if ecdhCurve == nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyExchange, ErrUnsupportedCurve)
	}
	priv, err := ecdhCurve.NewPrivateKey(privateKey.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyExchange, err)
	}
	pub, err := ecdhCurve.NewPublicKey(publicKey.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyExchange, err)
	}
	// crypto/ecdh rejects a product at infinity.
	x, err := priv.ECDH(pub)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyExchange, err)
	}
	return x, nil
}

func sharedXSecp256k1(privateKey *PrivateKey, publicKey *PublicKey) ([]byte, error) {
	pub, err := publicKey.toSECP256K1()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyExchange, err)
	}
	if !pub.IsOnCurve() {
		return nil, fmt.Errorf("%w: point is not on curve", ErrKeyExchange)
	}
	priv := secp256k1.PrivKeyFromBytes(privateKey.Bytes())

	var point, result secp256k1.JacobianPoint
	pub.AsJacobian(&point)
	// secp256k1/v4 has no constant-time variable-base multiplication.
	secp256k1.ScalarMultNonConst(&priv.Key, &point, &result)
	if result.Z.Normalize().IsZero() ||
		(result.X.Normalize().IsZero() && result.Y.Normalize().IsZero()) {
		return nil, fmt.Errorf("%w: shared point is at infinity", ErrKeyExchange)
	}
	result.ToAffine()
	x := result.X.Bytes()
	return x[:], nil
}
