package ecengine

import (
	"errors"
	"fmt"
)

var ErrUnsupportedCurve = fmt.Errorf("the operation is not supported on this curve")
var ErrDifferentCurves = fmt.Errorf("the keys must use the same curve")
var ErrUnsupportedKeyType = fmt.Errorf("unsupported key type")

var (
	// ErrKeyGeneration is returned when the random source fails while generating
	// a key or a nonce. It is not worth retrying.
	ErrKeyGeneration = errors.New("key generation failed")

	// ErrInvalidKey is returned for malformed or out of range key material.
	ErrInvalidKey = errors.New("invalid key")

	// ErrInvalidPoint is returned when a public key encoding has the wrong length
	// or does not describe a point on the curve.
	ErrInvalidPoint = errors.New("invalid curve point")

	// ErrKeyExchange is returned when ECDH cannot produce a secret, e.g. the peer
	// key is invalid or the product is the point at infinity.
	ErrKeyExchange = errors.New("key exchange failed")

	// ErrAuthentication is returned by Decrypt for any envelope that fails to
	// authenticate or decrypt. The cause is deliberately not reported.
	ErrAuthentication = errors.New("message authentication failed")

	// ErrKeyDerivation is returned when the KDF is asked for an impossible length.
	ErrKeyDerivation = errors.New("key derivation failed")

	// ErrInvalidConfig is returned by New and ParseConfig.
	ErrInvalidConfig = errors.New("invalid configuration")
)
