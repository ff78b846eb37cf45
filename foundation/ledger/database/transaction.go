package database

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/omoto202/MyCoin/foundation/ledger/money"
	"github.com/omoto202/MyCoin/foundation/ledger/signature"
)

// SystemAccount is the reserved sender used by the ledger itself to mint the
// mining reward. Transactions with this sender carry no signature and must
// never be accepted from an external caller.
const SystemAccount = "system"

// =============================================================================

// Tx is the transactional information between two parties. The sender and
// recipient are hex encoded public keys acting as addresses.
type Tx struct {
	Sender    string       `json:"sender"`
	Recipient string       `json:"recipient"`
	Amount    money.Amount `json:"amount"`
	Signature string       `json:"signature,omitempty"`
}

// NewTx constructs an unsigned transaction.
func NewTx(sender string, recipient string, amount money.Amount) Tx {
	return Tx{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
	}
}

// Sign attaches a signature over the transaction's canonical signing message
// using the specified private key. The sender field must match the key.
func (tx Tx) Sign(privateKey *ecdsa.PrivateKey) (Tx, error) {
	sig, err := signature.Sign(tx.Sender, tx.Recipient, tx.Amount, privateKey)
	if err != nil {
		return Tx{}, err
	}

	tx.Signature = sig
	return tx, nil
}

// VerifySignature checks the transaction carries a valid signature from the
// sender. System transactions never carry a signature and always pass.
func (tx Tx) VerifySignature() error {
	if tx.Sender == SystemAccount {
		return nil
	}

	if tx.Signature == "" {
		return fmt.Errorf("missing signature: %w", ErrInvalidSignature)
	}

	if err := signature.Verify(tx.Sender, tx.Recipient, tx.Amount, tx.Signature); err != nil {
		return fmt.Errorf("%s: %w", err, ErrInvalidSignature)
	}

	return nil
}

// FromAccount reports whether the transaction debits the specified address.
// Address comparison is case insensitive.
func (tx Tx) FromAccount(address string) bool {
	return strings.EqualFold(tx.Sender, address)
}

// ToAccount reports whether the transaction credits the specified address.
func (tx Tx) ToAccount(address string) bool {
	return strings.EqualFold(tx.Recipient, address)
}

// hashInput returns the canonical hashing representation for the transaction.
// The signature is excluded so the hash identity is the same before and after
// signing. Maps are used so the JSON encoder sorts the field names.
func (tx Tx) hashInput() map[string]any {
	return map[string]any{
		"sender":    tx.Sender,
		"recipient": tx.Recipient,
		"amount":    tx.Amount.String(),
	}
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%.8s->%.8s:%s", tx.Sender, tx.Recipient, tx.Amount)
}
