package ecengine

// CompressPublicKey converts a SEC1 public key to the compressed format.
// Compressed input is validated and returned re-encoded.
func CompressPublicKey(curve EllipticCurve, b []byte) ([]byte, error) {
	pub, err := NewPublicKeyFromBytes(curve, b)
	if err != nil {
		return nil, err
	}
	return pub.CompressedBytes(), nil
}

// DecompressPublicKey converts a SEC1 public key to the uncompressed format.
func DecompressPublicKey(curve EllipticCurve, b []byte) ([]byte, error) {
	pub, err := NewPublicKeyFromBytes(curve, b)
	if err != nil {
		return nil, err
	}
	return pub.Bytes(), nil
}

// IsValidPublicKey reports whether b is a SEC1 encoding of a point on curve.
func IsValidPublicKey(curve EllipticCurve, b []byte) bool {
	_, err := NewPublicKeyFromBytes(curve, b)
	return err == nil
}

// IsValidPrivateKey reports whether b encodes a scalar in [1, N-1] for curve.
func IsValidPrivateKey(curve EllipticCurve, b []byte) bool {
	_, err := NewPrivateKeyFromBytes(curve, b)
	return err == nil
}
