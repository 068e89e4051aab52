package ecengine

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
)

// Envelope is the output of Encrypt. All five fields must reach Decrypt
// together and unmodified.
type Envelope struct {
	EphemeralPublicKey []byte
	IV                 []byte
	Ciphertext         []byte
	InnerAuthTag       []byte
	OuterMAC           []byte
}

// envelopeJSON is the transport form of Envelope, with every field hex encoded.
type envelopeJSON struct {
	EphemeralPublicKey *string `json:"ephemeral_public_key"`
	IV                 *string `json:"iv"`
	Ciphertext         *string `json:"ciphertext"`
	InnerAuthTag       *string `json:"inner_auth_tag"`
	OuterMAC           *string `json:"outer_mac"`
}

// MarshalJSON implements json.Marshaler.
func (env *Envelope) MarshalJSON() ([]byte, error) {
	enc := func(b []byte) *string {
		s := hex.EncodeToString(b)
		return &s
	}
	return json.Marshal(envelopeJSON{
		EphemeralPublicKey: enc(env.EphemeralPublicKey),
		IV:                 enc(env.IV),
		Ciphertext:         enc(env.Ciphertext),
		InnerAuthTag:       enc(env.InnerAuthTag),
		OuterMAC:           enc(env.OuterMAC),
	})
}

// UnmarshalJSON implements json.Unmarshaler. An envelope with a missing or
// malformed field is rejected with ErrAuthentication, as Decrypt would.
func (env *Envelope) UnmarshalJSON(data []byte) error {
	var ej envelopeJSON
	if err := json.Unmarshal(data, &ej); err != nil {
		return ErrAuthentication
	}
	fields := []*string{ej.EphemeralPublicKey, ej.IV, ej.Ciphertext, ej.InnerAuthTag, ej.OuterMAC}
	decoded := make([][]byte, len(fields))
	for i, f := range fields {
		if f == nil {
			return ErrAuthentication
		}
		b, err := hex.DecodeString(*f)
		if err != nil {
			return ErrAuthentication
		}
		decoded[i] = b
	}
	*env = Envelope{
		EphemeralPublicKey: decoded[0],
		IV:                 decoded[1],
		Ciphertext:         decoded[2],
		InnerAuthTag:       decoded[3],
		OuterMAC:           decoded[4],
	}
	return nil
}

// Equal returns true if both envelopes carry identical fields.
func (env *Envelope) Equal(other *Envelope) bool {
	if env == nil || other == nil {
		return env == other
	}
	return bytes.Equal(env.EphemeralPublicKey, other.EphemeralPublicKey) &&
		bytes.Equal(env.IV, other.IV) &&
		bytes.Equal(env.Ciphertext, other.Ciphertext) &&
		bytes.Equal(env.InnerAuthTag, other.InnerAuthTag) &&
		bytes.Equal(env.OuterMAC, other.OuterMAC)
}
