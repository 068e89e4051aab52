package ecengine

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec"
	"github.com/btcsuite/btcutil/base58"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	compressedEvenTag = 0x02
	compressedOddTag  = 0x03
	uncompressedTag   = 0x04
)

// PublicKey represents elliptic curve cryptography public key.
type PublicKey struct {
	publicKey *ecdsa.PublicKey
}

// NewPublicKeyFromBytes parses a SEC1 encoded public key, either uncompressed
// (0x04 || X || Y) or compressed (0x02/0x03 || X). ErrInvalidPoint is returned
// if the encoding has the wrong length or the point is not on the curve.
func NewPublicKeyFromBytes(curve EllipticCurve, b []byte) (*PublicKey, error) {
	keyLen := getKeyLength(curve)
	if keyLen < 0 {
		return nil, ErrUnsupportedCurve
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty encoding", ErrInvalidPoint)
	}
	switch b[0] {
	case uncompressedTag:
		if len(b) != 1+2*keyLen {
			return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidPoint, len(b), 1+2*keyLen)
		}
	case compressedEvenTag, compressedOddTag:
		if len(b) != 1+keyLen {
			return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidPoint, len(b), 1+keyLen)
		}
	default:
		return nil, fmt.Errorf("%w: unknown format 0x%02x", ErrInvalidPoint, b[0])
	}

	if curve == SECP256K1 {
		// elliptic.UnmarshalCompressed assumes a = -3, which is wrong for this curve.
		return unmarshalSECP256K1(b)
	}

	c := getCurve(curve)
	var x, y *big.Int
	if b[0] == uncompressedTag {
		x, y = elliptic.Unmarshal(c, b)
	} else {
		x, y = elliptic.UnmarshalCompressed(c, b)
	}
	if x == nil {
		return nil, fmt.Errorf("%w: point is not on %v", ErrInvalidPoint, curve)
	}
	return &PublicKey{publicKey: &ecdsa.PublicKey{Curve: c, X: x, Y: y}}, nil
}

// NewPublicKeyFromCompressedBytes parses a SEC1 compressed public key.
func NewPublicKeyFromCompressedBytes(curve EllipticCurve, b []byte) (*PublicKey, error) {
	if len(b) == 0 || (b[0] != compressedEvenTag && b[0] != compressedOddTag) {
		return nil, fmt.Errorf("%w: not a compressed point", ErrInvalidPoint)
	}
	return NewPublicKeyFromBytes(curve, b)
}

func unmarshalSECP256K1(b []byte) (*PublicKey, error) {
	pub, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}
	return &PublicKey{publicKey: &ecdsa.PublicKey{
		Curve: btcec.S256(),
		X:     pub.X(),
		Y:     pub.Y()}}, nil
}

// Bytes returns the public key in SEC1 uncompressed format: 0x04 || X || Y,
// with each coordinate padded to the curve's width.
func (pbk *PublicKey) Bytes() []byte {
	keyLen := getKeyLength(pbk.Curve())
	b := make([]byte, 1+2*keyLen)
	b[0] = uncompressedTag
	pbk.publicKey.X.FillBytes(b[1 : 1+keyLen])
	pbk.publicKey.Y.FillBytes(b[1+keyLen:])
	return b
}

// CompressedBytes returns the public key in SEC1 compressed format: the parity
// of Y in the tag byte followed by X. For 256 bit curves the result is 33 bytes long.
func (pbk *PublicKey) CompressedBytes() []byte {
	keyLen := getKeyLength(pbk.Curve())
	b := make([]byte, 1+keyLen)
	b[0] = compressedEvenTag | byte(pbk.publicKey.Y.Bit(0))
	pbk.publicKey.X.FillBytes(b[1:])
	return b
}

// Curve returns the elliptic curve for this public key.
func (pbk *PublicKey) Curve() EllipticCurve {
	return curveFromElliptic(pbk.publicKey.Curve)
}

// X returns X component of the public key.
func (pbk *PublicKey) X() *big.Int {
	return new(big.Int).Set(pbk.publicKey.X)
}

// Y returns Y component of the public key.
func (pbk *PublicKey) Y() *big.Int {
	return new(big.Int).Set(pbk.publicKey.Y)
}

// BitcoinAddress returns the Bitcoin address for this public key.
// Unless the public key is on SECP256K1 curve, ErrUnsupportedCurve is returned.
func (pbk *PublicKey) BitcoinAddress() (string, error) {
	if pbk.Curve() != SECP256K1 {
		return "", ErrUnsupportedCurve
	}
	prefix := []byte{0x00}
	s := pbk.CompressedBytes()
	hash := Hash160(s)
	s1 := bytes.Join([][]byte{prefix, hash}, nil)
	checkSum := Hash256(s1)[0:4]
	addr := bytes.Join([][]byte{s1, checkSum}, nil)
	return base58.Encode(addr), nil
}

// EthereumAddress returns an Ethereum address for this public key.
// Unless the public key is on SECP256K1 curve, ErrUnsupportedCurve is returned.
func (pbk *PublicKey) EthereumAddress() (string, error) {
	if pbk.Curve() != SECP256K1 {
		return "", ErrUnsupportedCurve
	}
	return crypto.PubkeyToAddress(*pbk.publicKey).Hex(), nil
}

// Equal returns true if this key is equal to the other key.
func (pbk *PublicKey) Equal(other *PublicKey) bool {
	if other == nil {
		return false
	}
	return pbk.Curve() == other.Curve() &&
		pbk.publicKey.X.Cmp(other.publicKey.X) == 0 &&
		pbk.publicKey.Y.Cmp(other.publicKey.Y) == 0
}

// EqualSerializedCompressed returns true if this key is equal to the other,
// given as serialized compressed representation.
func (pbk *PublicKey) EqualSerializedCompressed(other []byte) bool {
	return bytes.Equal(pbk.CompressedBytes(), other)
}

// ToECDSA returns this key as crypto/ecdsa public key.
func (pbk *PublicKey) ToECDSA() *ecdsa.PublicKey {
	return &ecdsa.PublicKey{Curve: pbk.publicKey.Curve, X: pbk.X(), Y: pbk.Y()}
}

// toSECP256K1 converts the key for use with the secp256k1 package.
func (pbk *PublicKey) toSECP256K1() (*secp256k1.PublicKey, error) {
	if pbk.Curve() != SECP256K1 {
		return nil, ErrUnsupportedCurve
	}
	var x, y secp256k1.FieldVal
	if x.SetByteSlice(pbk.publicKey.X.Bytes()) || y.SetByteSlice(pbk.publicKey.Y.Bytes()) {
		return nil, ErrInvalidPoint
	}
	return secp256k1.NewPublicKey(&x, &y), nil
}
