package state

import (
	"github.com/omoto202/MyCoin/foundation/ledger/database"
	"github.com/omoto202/MyCoin/foundation/ledger/money"
	"github.com/omoto202/MyCoin/foundation/ledger/peer"
)

// BalanceOf derives the balance for an address by replaying the settled
// transactions in the chain.
func (s *State) BalanceOf(address string) money.Amount {
	return s.db.BalanceOf(address)
}

// RetrieveLatestBlock returns the current chain tip.
func (s *State) RetrieveLatestBlock() database.Block {
	return s.db.LatestBlock()
}

// RetrieveChain returns a copy of the full chain in order.
func (s *State) RetrieveChain() []database.Block {
	return s.db.Chain()
}

// RetrieveMempool returns a snapshot of the pending transactions.
func (s *State) RetrieveMempool() []database.Tx {
	return s.mempool.Copy()
}

// QueryMempoolLength returns the current number of pending transactions.
func (s *State) QueryMempoolLength() int {
	return s.mempool.Count()
}

// RetrieveKnownPeers returns the set of peers gossip messages are sent to.
func (s *State) RetrieveKnownPeers() []peer.Peer {
	return s.knownPeers.Copy("")
}

// RetrieveDifficulty returns the node's fixed proof of work difficulty.
func (s *State) RetrieveDifficulty() uint {
	return s.difficulty
}

// RetrieveMiningReward returns the reward paid for sealing a block.
func (s *State) RetrieveMiningReward() money.Amount {
	return s.miningReward
}
