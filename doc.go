/*
Package ecengine ties together several common packages into a small elliptic curve
cryptography engine (secp256k1, P-256, P-384 and P-521).

The engine covers:

-- Creating key pairs, either fresh or imported from a secret, a password, a mnemonic or JWK

-- Deriving a shared secret from one party's private key and another party's public key (ECDH)

-- Encrypting data for a public key with an authenticated hybrid scheme (ECIES)
built from ECDH, a counter-mode KDF, AES-CBC and HMAC

-- Signing data and verifying signatures (ECDSA), with a secp256k1 fast path that
also supports public key recovery

-- Compressing and decompressing public keys

All operations are stateless. An Engine holds only its immutable configuration and
may be shared between goroutines.

See the examples for more information.
*/
package ecengine
