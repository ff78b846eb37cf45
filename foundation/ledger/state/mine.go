package state

import (
	"context"

	"github.com/omoto202/MyCoin/foundation/ledger/database"
)

// MineNewBlock seals the pending transactions plus a reward transaction into
// a new block and appends it to the chain. The reward pays the specified
// miner address, or the node's configured beneficiary when empty, and is
// spendable as soon as the block is the chain tip.
//
// Concurrent mine calls are serialized; the ledger lock is held only to
// snapshot the pending pool and to append the result, so transaction
// submission stays responsive during the proof of work search. Transactions
// that arrive during the search remain pending for the next block.
func (s *State) MineNewBlock(ctx context.Context, miner string) (database.Block, error) {
	s.mineMu.Lock()
	defer s.mineMu.Unlock()

	if miner == "" {
		miner = s.beneficiary
	}

	s.evHandler("state: MineNewBlock: MINING: started: miner[%.8s]", miner)
	defer s.evHandler("state: MineNewBlock: MINING: completed")

	// Snapshot the pending pool and the chain tip. Only mining appends
	// blocks and mining is serialized, so the tip cannot move while the
	// search runs.
	var trans []database.Tx
	var prevBlockHash string
	s.mu.Lock()
	{
		trans = s.mempool.Copy()
		prevBlockHash = s.db.LatestBlock().BlockHash
	}
	s.mu.Unlock()

	pending := len(trans)
	reward := database.NewTx(database.SystemAccount, miner, s.miningReward)
	trans = append(trans, reward)

	block, err := database.POW(ctx, s.difficulty, prevBlockHash, trans, s.evHandler)
	if err != nil {
		return database.Block{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Write(block, s.difficulty, s.evHandler); err != nil {
		return database.Block{}, err
	}
	s.mempool.Drop(pending)

	s.evHandler("state: MineNewBlock: MINING: block[%s] txs[%d] height[%d]", block.BlockHash, len(block.Trans), s.db.Height())

	if s.Gossip != nil {
		s.Gossip.SignalShareBlock(block)
	}

	return block, nil
}
