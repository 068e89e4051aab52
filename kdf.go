package ecengine

import (
	"encoding/binary"
	"fmt"
	"math"
)

// KDF expands secret into length bytes of key material. Round i (starting at 1)
// contributes hash(secret || uint32_be(i)); rounds are concatenated and the
// result is truncated to length. The output for a shorter length is always a
// prefix of the output for a longer one.
func KDF(h HashFunc, secret []byte, length int) ([]byte, error) {
	if !h.Available() {
		return nil, fmt.Errorf("%w: unknown hash %d", ErrKeyDerivation, int(h))
	}
	if length < 0 {
		return nil, fmt.Errorf("%w: negative length %d", ErrKeyDerivation, length)
	}
	hasher := h.New()
	size := hasher.Size()
	rounds := (length + size - 1) / size
	if uint64(rounds) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: length %d needs more than 2^32-1 rounds", ErrKeyDerivation, length)
	}

	var counter [4]byte
	out := make([]byte, 0, rounds*size)
	for i := 1; i <= rounds; i++ {
		binary.BigEndian.PutUint32(counter[:], uint32(i))
		hasher.Reset()
		hasher.Write(secret)
		hasher.Write(counter[:])
		out = hasher.Sum(out)
	}
	return out[:length], nil
}
