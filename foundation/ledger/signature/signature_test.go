package signature_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/omoto202/MyCoin/foundation/ledger/money"
	"github.com/omoto202/MyCoin/foundation/ledger/signature"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

const testKey = "fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959"

func Test_SignVerify(t *testing.T) {
	t.Log("Given the need to sign and verify a transfer.")
	{
		privateKey, err := crypto.HexToECDSA(testKey)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the private key: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to load the private key.", success)

		sender := signature.PublicKeyAddress(&privateKey.PublicKey)
		recipient := "beef"
		amount := money.MustParse("5.00000000")

		sig, err := signature.Sign(sender, recipient, amount, privateKey)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to sign the transfer: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to sign the transfer.", success)

		if err := signature.Verify(sender, recipient, amount, sig); err != nil {
			t.Fatalf("\t%s\tShould be able to verify the signature: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to verify the signature.", success)

		if err := signature.Verify("04"+sender, recipient, amount, sig); err != nil {
			t.Fatalf("\t%s\tShould accept a 0x04 prefixed sender: %v", failed, err)
		}
		t.Logf("\t%s\tShould accept a 0x04 prefixed sender.", success)

		// Flip the last hex character of the signature.
		corrupted := sig[:len(sig)-1] + flipHex(sig[len(sig)-1])
		if err := signature.Verify(sender, recipient, amount, corrupted); err == nil {
			t.Fatalf("\t%s\tShould reject a corrupted signature.", failed)
		}
		t.Logf("\t%s\tShould reject a corrupted signature.", success)

		if err := signature.Verify(sender, recipient, money.MustParse("5.00000001"), sig); err == nil {
			t.Fatalf("\t%s\tShould reject a changed amount.", failed)
		}
		t.Logf("\t%s\tShould reject a changed amount.", success)
	}
}

func Test_SigningMessage(t *testing.T) {
	t.Log("Given the need for a fixed signing message format.")
	{
		msg := signature.SignMessage("a", "b", money.MustParse("5"))
		if string(msg) != "a->b:5.00000000" {
			t.Fatalf("\t%s\tShould build the canonical message, got %q.", failed, msg)
		}
		t.Logf("\t%s\tShould build the canonical message.", success)
	}
}

func Test_HashDeterminism(t *testing.T) {
	t.Log("Given the need for deterministic hashing.")
	{
		value := map[string]any{"b": 2, "a": "one", "c": []int{3}}

		h1 := signature.Hash(value)
		h2 := signature.Hash(value)

		if h1 != h2 {
			t.Fatalf("\t%s\tShould produce identical hashes, got %s and %s.", failed, h1, h2)
		}
		t.Logf("\t%s\tShould produce identical hashes.", success)

		if len(h1) != 64 {
			t.Fatalf("\t%s\tShould produce a 64 hex character digest, got %d.", failed, len(h1))
		}
		t.Logf("\t%s\tShould produce a 64 hex character digest.", success)
	}
}

// flipHex swaps a hex character for a different valid one.
func flipHex(c byte) string {
	if c == '0' {
		return "1"
	}
	return "0"
}
