package ecengine

import (
	"crypto/sha256"
	"crypto/sha512"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_KDF_Length(t *testing.T) {
	assert := assert.New(t)

	secret := []byte("test secret key for derivation")
	for _, h := range hashes {
		for _, n := range []int{0, 1, 16, 31, 32, 33, 64, 65, 100, 1000} {
			out, err := KDF(h, secret, n)
			assert.NoError(err)
			assert.Len(out, n, "%v %d", h, n)
		}
	}
}

func Test_KDF_Deterministic(t *testing.T) {
	assert := assert.New(t)

	secret := []byte("test secret key for derivation")
	for _, h := range hashes {
		out1, err := KDF(h, secret, 96)
		assert.NoError(err)
		out2, err := KDF(h, secret, 96)
		assert.NoError(err)
		assert.Equal(out1, out2)

		other, err := KDF(h, []byte("another secret"), 96)
		assert.NoError(err)
		assert.NotEqual(out1, other)
	}
}

func Test_KDF_Prefix(t *testing.T) {
	assert := assert.New(t)

	secret := []byte{0x01, 0x02, 0x03}
	for _, h := range hashes {
		long, err := KDF(h, secret, 300)
		assert.NoError(err)
		for n := 0; n < 300; n += 7 {
			short, err := KDF(h, secret, n)
			assert.NoError(err)
			assert.Equal(long[:n], short)
		}
	}
}

func Test_KDF_KnownRounds(t *testing.T) {
	assert := assert.New(t)

	secret := []byte("shared")
	out, err := KDF(SHA256, secret, 64)
	assert.NoError(err)

	round1 := sha256.Sum256(append(append([]byte{}, secret...), 0, 0, 0, 1))
	round2 := sha256.Sum256(append(append([]byte{}, secret...), 0, 0, 0, 2))
	assert.Equal(round1[:], out[:32])
	assert.Equal(round2[:], out[32:])

	out, err = KDF(SHA512, secret, 10)
	assert.NoError(err)
	round1x := sha512.Sum512(append(append([]byte{}, secret...), 0, 0, 0, 1))
	assert.Equal(round1x[:10], out)
}

func Test_KDF_BeyondSingleByteCounter(t *testing.T) {
	assert := assert.New(t)

	// 300 rounds of SHA-256: a one byte counter would wrap and repeat blocks.
	out, err := KDF(SHA256, []byte("long"), 300*32)
	assert.NoError(err)
	seen := map[string]bool{}
	for i := 0; i < 300; i++ {
		block := string(out[i*32 : (i+1)*32])
		assert.False(seen[block], "block %d repeats", i)
		seen[block] = true
	}
}

func Test_KDF_Errors(t *testing.T) {
	assert := assert.New(t)

	_, err := KDF(SHA256, []byte("x"), -1)
	assert.ErrorIs(err, ErrKeyDerivation)

	_, err = KDF(INVALID_HASH, []byte("x"), 32)
	assert.ErrorIs(err, ErrKeyDerivation)
}
