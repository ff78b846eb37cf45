package state

import (
	"errors"
	"fmt"

	"github.com/omoto202/MyCoin/foundation/ledger/database"
)

// ErrReservedSender is returned when an external caller submits a transaction
// using the reserved system sender. Only the ledger itself mints reward
// transactions.
var ErrReservedSender = errors.New("sender is reserved for the ledger")

// =============================================================================

// SubmitTransaction validates a transaction from a wallet or a peer and, on
// success, appends it to the pending pool and signals the gossip layer. On
// failure neither the chain nor the pending pool is mutated.
func (s *State) SubmitTransaction(tx database.Tx) error {
	s.evHandler("state: SubmitTransaction: started: tx[%s]", tx)

	if tx.Sender == database.SystemAccount {
		return ErrReservedSender
	}

	s.mu.Lock()
	{
		if err := s.validateTransaction(tx); err != nil {
			s.mu.Unlock()
			s.evHandler("state: SubmitTransaction: rejected: %s", err)
			return err
		}

		s.mempool.Append(tx)
	}
	s.mu.Unlock()

	s.evHandler("state: SubmitTransaction: accepted: pending[%d]", s.mempool.Count())

	if s.Gossip != nil {
		s.Gossip.SignalShareTx(tx)
	}

	return nil
}

// validateTransaction checks the transaction's signature, amount, and the
// sender's solvency against settled chain state. Pending transactions do not
// reduce the spendable balance; only committed blocks do.
func (s *State) validateTransaction(tx database.Tx) error {
	if !tx.Amount.IsValid() {
		return fmt.Errorf("amount %s: %w", tx.Amount, database.ErrInvalidAmount)
	}

	if err := tx.VerifySignature(); err != nil {
		return err
	}

	if balance := s.db.BalanceOf(tx.Sender); balance < tx.Amount {
		return fmt.Errorf("balance %s below amount %s: %w", balance, tx.Amount, database.ErrInsufficientBalance)
	}

	return nil
}
