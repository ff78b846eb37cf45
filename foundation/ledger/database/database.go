// Package database maintains the in memory chain of blocks and derives
// account balances by replaying the settled transactions.
package database

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/omoto202/MyCoin/foundation/ledger/money"
)

// Set of errors surfaced by transaction validation and chain maintenance.
var (
	ErrInvalidSignature    = errors.New("invalid signature")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrChainCorrupt indicates a structural invariant of the chain does not
	// hold. This is unrecoverable and must never be silently repaired.
	ErrChainCorrupt = errors.New("chain corrupt")
)

// =============================================================================

// Database manages the chain of blocks and a cache of balances derived from
// it. The chain always starts with a genesis block.
type Database struct {
	mu       sync.RWMutex
	chain    []Block
	balances map[string]money.Amount
}

// New constructs a database with a fresh genesis block.
func New() *Database {
	return &Database{
		chain:    []Block{genesisBlock()},
		balances: make(map[string]money.Amount),
	}
}

// LatestBlock returns the current chain tip.
func (db *Database) LatestBlock() Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.chain[len(db.chain)-1]
}

// Height returns the number of blocks in the chain.
func (db *Database) Height() int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return len(db.chain)
}

// Write appends a block to the chain after validating it against the current
// tip: the stored hash must match a recomputation, must solve the difficulty
// target, and must link to the tip. A failure means the caller constructed
// the block against a stale tip or the chain is corrupt; either way the block
// is refused. Every append invalidates all cached balances since a single
// block can touch arbitrarily many addresses.
func (db *Database) Write(block Block, difficulty uint, evHandler func(v string, args ...any)) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	tip := db.chain[len(db.chain)-1]

	if err := block.ValidateBlock(tip, difficulty, evHandler); err != nil {
		return err
	}

	db.chain = append(db.chain, block)
	db.balances = make(map[string]money.Amount)

	return nil
}

// BalanceOf derives the balance for an address by replaying every settled
// transaction in chain order. The result is cached until the next append.
// An empty address yields a zero balance.
func (db *Database) BalanceOf(address string) money.Amount {
	if address == "" {
		return 0
	}

	key := strings.ToLower(address)

	db.mu.RLock()
	if balance, exists := db.balances[key]; exists {
		db.mu.RUnlock()
		return balance
	}
	db.mu.RUnlock()

	db.mu.Lock()
	defer db.mu.Unlock()

	var balance money.Amount
	for _, block := range db.chain {
		for _, tx := range block.Trans {
			if tx.FromAccount(address) {
				balance -= tx.Amount
			}
			if tx.ToAccount(address) {
				balance += tx.Amount
			}
		}
	}

	db.balances[key] = balance
	return balance
}

// Chain returns a copy of the full chain in order.
func (db *Database) Chain() []Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	chain := make([]Block, len(db.chain))
	copy(chain, db.chain)

	return chain
}

// Audit walks the chain and confirms every block links to its predecessor
// and hashes to its stored value. A failure is a fatal invariant violation.
func (db *Database) Audit() error {
	db.mu.RLock()
	defer db.mu.RUnlock()

	for i := 1; i < len(db.chain); i++ {
		if db.chain[i].PrevBlockHash != db.chain[i-1].BlockHash {
			return fmt.Errorf("block %d does not link to block %d: %w", i, i-1, ErrChainCorrupt)
		}
		if db.chain[i].BlockHash != db.chain[i].Hash() {
			return fmt.Errorf("block %d hash does not match its fields: %w", i, ErrChainCorrupt)
		}
	}

	return nil
}
