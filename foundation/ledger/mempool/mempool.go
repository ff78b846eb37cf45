// Package mempool maintains the pool of transactions accepted but not yet
// included in a mined block. Insertion order is inclusion order.
package mempool

import (
	"sync"

	"github.com/omoto202/MyCoin/foundation/ledger/database"
)

// Mempool represents the ordered pool of pending transactions.
type Mempool struct {
	mu   sync.RWMutex
	pool []database.Tx
}

// New constructs an empty mempool.
func New() *Mempool {
	return &Mempool{}
}

// Count returns the current number of transactions in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Append adds a transaction to the end of the pool.
func (mp *Mempool) Append(tx database.Tx) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = append(mp.pool, tx)
}

// Copy returns a snapshot of the pool in insertion order.
func (mp *Mempool) Copy() []database.Tx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	pool := make([]database.Tx, len(mp.pool))
	copy(pool, mp.pool)

	return pool
}

// Drop removes the first count transactions from the pool. It is used after
// mining to retire exactly the snapshot that was sealed into the block, so
// transactions that arrived during the search remain pending.
func (mp *Mempool) Drop(count int) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if count > len(mp.pool) {
		count = len(mp.pool)
	}

	mp.pool = append([]database.Tx{}, mp.pool[count:]...)
}
