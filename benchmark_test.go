package ecengine

import (
	"fmt"
	"testing"
)

func BenchmarkEncrypt(b *testing.B) {
	for _, curve := range curves {
		for _, size := range []int{64, 1024, 16 * 1024} {
			b.Run(fmt.Sprintf("%v/%d", curve, size), func(b *testing.B) {
				cfg := DefaultConfig()
				cfg.Curve = curve
				e, err := New(cfg)
				if err != nil {
					b.Fatal(err)
				}
				key, err := e.GenerateKeyPair()
				if err != nil {
					b.Fatal(err)
				}
				msg := make([]byte, size)
				b.SetBytes(int64(size))
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					if _, err := e.Encrypt(msg, key.PublicKey()); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkDecrypt(b *testing.B) {
	for _, curve := range curves {
		b.Run(curve.String(), func(b *testing.B) {
			cfg := DefaultConfig()
			cfg.Curve = curve
			e, err := New(cfg)
			if err != nil {
				b.Fatal(err)
			}
			key, err := e.GenerateKeyPair()
			if err != nil {
				b.Fatal(err)
			}
			envelope, err := e.Encrypt(make([]byte, 1024), key.PublicKey())
			if err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := e.Decrypt(envelope, key); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkSign(b *testing.B) {
	msg := []byte("benchmark message")
	for _, curve := range curves {
		for _, generic := range []bool{false, true} {
			if curve != SECP256K1 && !generic {
				continue
			}
			name := curve.String()
			if generic {
				name += "/generic"
			}
			b.Run(name, func(b *testing.B) {
				signer := NewSigner(curve, SHA256, nil)
				if generic {
					signer = NewGenericSigner(curve, SHA256, nil)
				}
				key, err := NewPrivateKey(curve)
				if err != nil {
					b.Fatal(err)
				}
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					if _, err := signer.Sign(msg, key); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkVerify(b *testing.B) {
	msg := []byte("benchmark message")
	for _, curve := range curves {
		b.Run(curve.String(), func(b *testing.B) {
			signer := NewSigner(curve, SHA256, nil)
			key, err := NewPrivateKey(curve)
			if err != nil {
				b.Fatal(err)
			}
			sig, err := signer.Sign(msg, key)
			if err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if !signer.Verify(msg, sig, key.PublicKey()) {
					b.Fatal("verification failed")
				}
			}
		})
	}
}

func BenchmarkSharedSecret(b *testing.B) {
	for _, curve := range curves {
		b.Run(curve.String(), func(b *testing.B) {
			alice, err := NewPrivateKey(curve)
			if err != nil {
				b.Fatal(err)
			}
			bob, err := NewPrivateKey(curve)
			if err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := DeriveSharedSecret(alice, bob.PublicKey(), SHA256); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
