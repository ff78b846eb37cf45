// Package signature provides the canonical encodings used for hashing and
// signing, plus the secp256k1 helpers built on top of them. Every participant
// must produce byte identical encodings or hashes and signatures will not be
// reproducible across nodes.
package signature

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/omoto202/MyCoin/foundation/ledger/money"
)

// ZeroHash is the previous hash sentinel carried by the genesis block.
const ZeroHash = "0"

// signatureLength is the length of a raw R||S signature in bytes.
const signatureLength = 64

// pointLength is the length of an uncompressed curve point without the
// 0x04 marker byte.
const pointLength = 64

// =============================================================================

// Hash returns the lowercase hex SHA-256 digest of the value's JSON encoding.
// Callers pass maps so the encoder sorts the field names, which keeps the
// encoding independent of struct declaration order.
func Hash(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return ZeroHash
	}

	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// SignMessage builds the canonical byte sequence a sender signs for a
// transfer. Only the sender, recipient, and the 8 decimal amount participate.
func SignMessage(sender string, recipient string, amount money.Amount) []byte {
	return []byte(sender + "->" + recipient + ":" + amount.String())
}

// Sign produces the hex encoded signature for a transfer using the specified
// private key.
func Sign(sender string, recipient string, amount money.Amount, privateKey *ecdsa.PrivateKey) (string, error) {
	digest := sha256.Sum256(SignMessage(sender, recipient, amount))

	sig, err := crypto.Sign(digest[:], privateKey)
	if err != nil {
		return "", err
	}

	// Drop the recovery id. The sender field carries the full public key so
	// verification never needs to recover it.
	return hex.EncodeToString(sig[:signatureLength]), nil
}

// Verify checks the hex encoded signature against the sender's public key
// over the canonical signing message.
func Verify(sender string, recipient string, amount money.Amount, sigHex string) error {
	publicKey, err := DecodePublicKey(sender)
	if err != nil {
		return err
	}

	sig, err := hex.DecodeString(sigHex)
	if err != nil {
		return fmt.Errorf("decoding signature: %w", err)
	}
	if len(sig) != signatureLength {
		return fmt.Errorf("signature must be %d bytes, got %d", signatureLength, len(sig))
	}

	digest := sha256.Sum256(SignMessage(sender, recipient, amount))

	if !crypto.VerifySignature(publicKey, digest[:], sig) {
		return errors.New("signature does not verify")
	}

	return nil
}

// DecodePublicKey converts a hex encoded sender address into the uncompressed
// public key bytes expected by the curve implementation. Both raw X||Y and
// 0x04 prefixed point encodings are accepted.
func DecodePublicKey(address string) ([]byte, error) {
	point, err := hex.DecodeString(address)
	if err != nil {
		return nil, fmt.Errorf("decoding address: %w", err)
	}

	switch len(point) {
	case pointLength:
		return append([]byte{0x04}, point...), nil
	case pointLength + 1:
		if point[0] != 0x04 {
			return nil, fmt.Errorf("unknown point marker 0x%02x", point[0])
		}
		return point, nil
	}

	return nil, fmt.Errorf("address must decode to %d or %d bytes, got %d", pointLength, pointLength+1, len(point))
}

// PublicKeyAddress derives the hex address for a public key. The address is
// the raw uncompressed point without the 0x04 marker.
func PublicKeyAddress(publicKey *ecdsa.PublicKey) string {
	return hex.EncodeToString(crypto.FromECDSAPub(publicKey)[1:])
}
