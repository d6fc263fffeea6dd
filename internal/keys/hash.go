package keys

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// Public key algorithm tags, the first byte of the hex-encoded key.
const (
	tagEd25519   = 0x01
	tagSecp256k1 = 0x02

	ed25519KeyLen   = 32
	secp256k1KeyLen = 33
)

// AccountHashFromHex derives the account hash for a tagged hex public key.
// The hash is blake2b-256 over the lowercase algorithm name, a zero
// separator byte, and the raw key bytes, rendered as
// "account-hash-<64 hex>".
func AccountHashFromHex(pub string) (string, error) {
	raw, err := hex.DecodeString(pub)
	if err != nil {
		return "", fmt.Errorf("invalid public key hex: %w", err)
	}
	if len(raw) < 1 {
		return "", fmt.Errorf("empty public key")
	}

	var algo string
	var keyLen int
	switch raw[0] {
	case tagEd25519:
		algo, keyLen = "ed25519", ed25519KeyLen
	case tagSecp256k1:
		algo, keyLen = "secp256k1", secp256k1KeyLen
	default:
		return "", fmt.Errorf("unknown public key algorithm tag 0x%02x", raw[0])
	}

	key := raw[1:]
	if len(key) != keyLen {
		return "", fmt.Errorf("%s public key must be %d bytes, got %d", algo, keyLen, len(key))
	}

	preimage := make([]byte, 0, len(algo)+1+len(key))
	preimage = append(preimage, []byte(algo)...)
	preimage = append(preimage, 0x00)
	preimage = append(preimage, key...)

	sum := blake2b.Sum256(preimage)
	return "account-hash-" + hex.EncodeToString(sum[:]), nil
}
