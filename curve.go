package ecengine

import (
	"crypto/ecdh"
	"crypto/elliptic"
	"fmt"
	"math/big"
	"strings"

	"github.com/btcsuite/btcd/btcec"
)

type EllipticCurve int

const (
	INVALID_CURVE EllipticCurve = -1
	SECP256K1     EllipticCurve = 1
	P256          EllipticCurve = 2
	P384          EllipticCurve = 3
	P521          EllipticCurve = 4
)

// String returns the elliptic curve name as a string.
func (ec EllipticCurve) String() string {
	switch ec {
	case SECP256K1:
		return "secp256k1"
	case P256:
		return "P-256"
	case P384:
		return "P-384"
	case P521:
		return "P-521"
	}
	return "Invalid"
}

// StringToEllipticCurve converts the elliptic curve name to EllipticCurve.
// If the name is not recognized, INVALID_CURVE is returned.
func StringToEllipticCurve(s string) EllipticCurve {
	switch strings.ToUpper(s) {
	case "SECP256K1":
		return SECP256K1
	case "P-256", "P256":
		return P256
	case "P-384", "P384":
		return P384
	case "P-521", "P521":
		return P521
	}

	return INVALID_CURVE
}

// MarshalText implements encoding.TextMarshaler.
func (ec EllipticCurve) MarshalText() ([]byte, error) {
	if getCurve(ec) == nil {
		return nil, fmt.Errorf("%w: curve %d", ErrUnsupportedCurve, int(ec))
	}
	return []byte(ec.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (ec *EllipticCurve) UnmarshalText(text []byte) error {
	curve := StringToEllipticCurve(string(text))
	if curve == INVALID_CURVE {
		return fmt.Errorf("%w: %q", ErrUnsupportedCurve, string(text))
	}
	*ec = curve
	return nil
}

// getCurve returns elliptic.Curve interface for the given curve.
// If the curve is invalid, the function returns nil.
func getCurve(curve EllipticCurve) elliptic.Curve {
	switch curve {
	case SECP256K1:
		return btcec.S256()
	case P256:
		return elliptic.P256()
	case P384:
		return elliptic.P384()
	case P521:
		return elliptic.P521()
	}
	return nil
}

// getECDHCurve returns the crypto/ecdh curve for the NIST curves, nil otherwise.
func getECDHCurve(curve EllipticCurve) ecdh.Curve {
	switch curve {
	case P256:
		return ecdh.P256()
	case P384:
		return ecdh.P384()
	case P521:
		return ecdh.P521()
	}
	return nil
}

// curveFromElliptic maps an elliptic.Curve back to EllipticCurve.
func curveFromElliptic(c elliptic.Curve) EllipticCurve {
	switch c {
	case btcec.S256():
		return SECP256K1
	case elliptic.P256():
		return P256
	case elliptic.P384():
		return P384
	case elliptic.P521():
		return P521
	}
	return INVALID_CURVE
}

// getKeyLength returns the key length for the given curve,
// or -1 if invalid curve was passed in.
func getKeyLength(curve EllipticCurve) int {
	switch curve {
	case SECP256K1:
		return 32
	case P256:
		return 32
	case P384:
		return 48
	case P521:
		return 66
	}
	return -1
}

// getOrder returns the order of the curve's base point.
func getOrder(curve EllipticCurve) *big.Int {
	c := getCurve(curve)
	if c == nil {
		return nil
	}
	return c.Params().N
}
