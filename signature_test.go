package ecengine

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

var hashes = []HashFunc{SHA256, SHA384, SHA512, KECCAK256}

func Test_SignAndVerify(t *testing.T) {
	assert := assert.New(t)

	data := []byte("hello there")
	for _, curve := range curves {
		for _, h := range hashes {
			signer := NewSigner(curve, h, rand.Reader)
			for i := 0; i < 10; i++ {
				pkey, err := NewPrivateKey(curve)
				assert.NoError(err)
				sig, err := signer.Sign(data, pkey)
				assert.NoError(err)
				assert.True(signer.Verify(data, sig, pkey.PublicKey()), "%v %v", curve, h)
			}
		}
	}
}

func Test_Signature_Tampering(t *testing.T) {
	assert := assert.New(t)

	message := []byte("the quick brown fox")
	for _, curve := range curves {
		signer := NewSigner(curve, SHA256, rand.Reader)
		key, err := NewPrivateKey(curve)
		assert.NoError(err)
		sig, err := signer.Sign(message, key)
		assert.NoError(err)

		flipped := append([]byte{}, message...)
		flipped[3] ^= 0x01
		assert.False(signer.Verify(flipped, sig, key.PublicKey()))

		badR := *sig
		badR.R = new(big.Int).Xor(sig.R, big.NewInt(1))
		assert.False(signer.Verify(message, &badR, key.PublicKey()))

		badS := *sig
		badS.S = new(big.Int).Xor(sig.S, big.NewInt(1))
		assert.False(signer.Verify(message, &badS, key.PublicKey()))

		other, err := NewPrivateKey(curve)
		assert.NoError(err)
		assert.False(signer.Verify(message, sig, other.PublicKey()))
	}
}

func Test_Signature_Malformed(t *testing.T) {
	assert := assert.New(t)

	message := []byte("malformed")
	for _, curve := range curves {
		for _, signer := range []Signer{NewSigner(curve, SHA256, nil), NewGenericSigner(curve, SHA256, nil)} {
			key, err := NewPrivateKey(curve)
			assert.NoError(err)
			pub := key.PublicKey()
			n := getOrder(curve)

			assert.False(signer.Verify(message, nil, pub))
			assert.False(signer.Verify(message, &Signature{}, pub))
			assert.False(signer.Verify(message, &Signature{R: big.NewInt(0), S: big.NewInt(1)}, pub))
			assert.False(signer.Verify(message, &Signature{R: big.NewInt(-1), S: big.NewInt(1)}, pub))
			assert.False(signer.Verify(message, &Signature{R: n, S: big.NewInt(1)}, pub))
			assert.False(signer.Verify(message, &Signature{R: big.NewInt(1), S: new(big.Int).Lsh(n, 8)}, pub))
			assert.False(signer.Verify(message, &Signature{R: big.NewInt(1), S: big.NewInt(1)}, nil))

			_, err = signer.Sign(message, nil)
			assert.ErrorIs(err, ErrInvalidKey)
		}
	}
}

func Test_Signature_CurveMismatch(t *testing.T) {
	assert := assert.New(t)

	key, err := NewPrivateKey(P384)
	assert.NoError(err)
	signer := NewSigner(P256, SHA256, rand.Reader)
	_, err = signer.Sign([]byte("x"), key)
	assert.ErrorIs(err, ErrDifferentCurves)

	sig, err := NewSigner(P384, SHA256, rand.Reader).Sign([]byte("x"), key)
	assert.NoError(err)
	assert.False(signer.Verify([]byte("x"), sig, key.PublicKey()))
	assert.False(NewSecp256k1Signer(SHA256).Verify([]byte("x"), sig, key.PublicKey()))
}

func Test_Signature_CrossCompatibility(t *testing.T) {
	assert := assert.New(t)

	message := []byte("both backends agree")
	for _, h := range hashes {
		fast := NewSecp256k1Signer(h)
		generic := NewGenericSigner(SECP256K1, h, rand.Reader)
		for i := 0; i < 10; i++ {
			key, err := NewPrivateKey(SECP256K1)
			assert.NoError(err)

			sig, err := fast.Sign(message, key)
			assert.NoError(err)
			assert.True(generic.Verify(message, sig, key.PublicKey()), "fast -> generic %v", h)

			sig, err = generic.Sign(message, key)
			assert.NoError(err)
			assert.False(sig.Recoverable)
			assert.True(fast.Verify(message, sig, key.PublicKey()), "generic -> fast %v", h)
		}
	}
}

func Test_Signature_Deterministic(t *testing.T) {
	assert := assert.New(t)

	key := mustPrivateKey(t, SECP256K1, 12345)
	signer := NewSecp256k1Signer(SHA256)
	sig1, err := signer.Sign([]byte("same message"), key)
	assert.NoError(err)
	sig2, err := signer.Sign([]byte("same message"), key)
	assert.NoError(err)
	assert.Equal(0, sig1.R.Cmp(sig2.R))
	assert.Equal(0, sig1.S.Cmp(sig2.S))

	// Canonical signatures have S in the lower half of the order.
	halfOrder := new(big.Int).Rsh(getOrder(SECP256K1), 1)
	assert.True(sig1.S.Cmp(halfOrder) <= 0)
}

func Test_Signature_Recover(t *testing.T) {
	assert := assert.New(t)

	message := []byte("who signed this?")
	signer := NewSecp256k1Signer(KECCAK256)
	for i := 0; i < 20; i++ {
		key, err := NewPrivateKey(SECP256K1)
		assert.NoError(err)
		sig, err := signer.Sign(message, key)
		assert.NoError(err)
		assert.True(sig.Recoverable)
		assert.LessOrEqual(sig.RecoveryID, byte(3))

		pub, err := signer.RecoverPublicKey(message, sig)
		assert.NoError(err)
		assert.True(pub.Equal(key.PublicKey()))

		other, err := signer.RecoverPublicKey([]byte("someone else"), sig)
		if err == nil {
			assert.False(other.Equal(key.PublicKey()))
		}
	}

	key := mustPrivateKey(t, SECP256K1, 77)
	sig, err := NewGenericSigner(SECP256K1, KECCAK256, rand.Reader).Sign(message, key)
	assert.NoError(err)
	_, err = signer.RecoverPublicKey(message, sig)
	assert.ErrorIs(err, ErrInvalidKey)

	_, err = signer.RecoverPublicKey(message, nil)
	assert.ErrorIs(err, ErrInvalidKey)
}

func Test_Signature_Bytes(t *testing.T) {
	assert := assert.New(t)

	message := []byte("serialize me")
	for _, curve := range curves {
		signer := NewSigner(curve, SHA256, rand.Reader)
		key, err := NewPrivateKey(curve)
		assert.NoError(err)
		sig, err := signer.Sign(message, key)
		assert.NoError(err)

		b, err := sig.Bytes(curve)
		assert.NoError(err)
		expectedLen := 2 * getKeyLength(curve)
		if sig.Recoverable {
			expectedLen++
		}
		assert.Len(b, expectedLen)

		parsed, err := ParseSignature(curve, b)
		assert.NoError(err)
		assert.Equal(sig.Recoverable, parsed.Recoverable)
		assert.Equal(sig.RecoveryID, parsed.RecoveryID)
		assert.True(signer.Verify(message, parsed, key.PublicKey()))

		_, err = ParseSignature(curve, b[1:])
		assert.Error(err)
		_, err = ParseSignature(curve, make([]byte, 2*getKeyLength(curve)))
		assert.Error(err)
	}
}

func Test_Signature_KeyConvenience(t *testing.T) {
	assert := assert.New(t)

	for _, curve := range curves {
		key, err := NewPrivateKey(curve)
		assert.NoError(err)
		sig, err := key.Sign([]byte("hello"))
		assert.NoError(err)
		assert.True(sig.Verify(key.PublicKey(), []byte("hello")))
		assert.False(sig.Verify(key.PublicKey(), []byte("hellO")))
		assert.False(sig.Verify(nil, []byte("hello")))
	}
}
