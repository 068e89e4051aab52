package ecengine

import (
	"fmt"
	"log"
	"math/big"
)

func ExamplePrivateKey_Sign() {
	privateKey, err := NewPrivateKeyFromSecret(SECP256K1, big.NewInt(12345))
	if err != nil {
		log.Fatal(err)
	}
	data := "super secret message"
	signature, err := privateKey.Sign([]byte(data))
	if err != nil {
		log.Fatal(err)
	}
	publicKey := privateKey.PublicKey()
	success := signature.Verify(publicKey, []byte(data))
	fmt.Printf("Signature verified: %v\n", success)
	// Output: Signature verified: true
}

func ExampleEngine_Encrypt() {
	engine, err := New(DefaultConfig())
	if err != nil {
		log.Fatal(err)
	}
	bobKey, err := engine.GenerateKeyPair()
	if err != nil {
		log.Fatal(err)
	}
	data := "super secret message"
	envelope, err := engine.Encrypt([]byte(data), bobKey.PublicKey())
	if err != nil {
		log.Fatal(err)
	}
	decrypted, err := engine.Decrypt(envelope, bobKey)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s\n", string(decrypted))
	// Output: super secret message
}

func ExampleEngine_RecoverPublicKey() {
	engine, err := New(DefaultConfig())
	if err != nil {
		log.Fatal(err)
	}
	privateKey, err := engine.KeyPairFromPrivate(big.NewInt(1).Bytes())
	if err != nil {
		log.Fatal(err)
	}
	signature, err := engine.Sign([]byte("who am I?"), privateKey)
	if err != nil {
		log.Fatal(err)
	}
	publicKey, err := engine.RecoverPublicKey([]byte("who am I?"), signature)
	if err != nil {
		log.Fatal(err)
	}
	address, err := publicKey.EthereumAddress()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(address)
	// Output: 0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf
}

func ExamplePrivateKey_EncryptKeyWithPassphrase() {
	privateKey, err := NewPrivateKeyFromSecret(P256, big.NewInt(12345))
	if err != nil {
		log.Fatal(err)
	}
	encryptedKey, err := privateKey.EncryptKeyWithPassphrase("my passphrase")
	if err != nil {
		log.Fatal(err)
	}
	decryptedKey, err := NewPrivateKeyFromEncryptedWithPassphrase(encryptedKey, "my passphrase")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%d\n", decryptedKey.Secret())
	// Output: 12345
}
