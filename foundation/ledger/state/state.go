// Package state is the core API for the ledger and implements all the
// business rules for accepting transactions and sealing blocks.
package state

import (
	"sync"

	"github.com/omoto202/MyCoin/foundation/ledger/database"
	"github.com/omoto202/MyCoin/foundation/ledger/mempool"
	"github.com/omoto202/MyCoin/foundation/ledger/money"
	"github.com/omoto202/MyCoin/foundation/ledger/peer"
)

// EventHandler defines a function that is called when events occur in the
// processing of transactions and blocks.
type EventHandler func(v string, args ...any)

// Gossiper interface represents the behavior required to be implemented by
// any package providing best effort dissemination of ledger events to peers.
// Delivery failures are never surfaced back to the ledger.
type Gossiper interface {
	Shutdown()
	SignalShareTx(tx database.Tx)
	SignalShareBlock(block database.Block)
}

// =============================================================================

// Config represents the configuration required to start the ledger.
type Config struct {
	Beneficiary  string
	Difficulty   uint
	MiningReward money.Amount
	KnownPeers   *peer.PeerSet
	EvHandler    EventHandler
}

// State manages the ledger: the chain of blocks and the pool of pending
// transactions. All mutations are serialized by mu so a chain append and the
// retirement of the mined transactions are atomic with respect to each other.
type State struct {
	mu     sync.Mutex
	mineMu sync.Mutex

	beneficiary  string
	difficulty   uint
	miningReward money.Amount
	evHandler    EventHandler

	knownPeers *peer.PeerSet
	db         *database.Database
	mempool    *mempool.Mempool

	// Gossip is registered by the gossip package on startup. It stays nil in
	// tests that don't exercise the network.
	Gossip Gossiper
}

// New constructs a new ledger for transaction and block management.
func New(cfg Config) (*State, error) {
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	knownPeers := cfg.KnownPeers
	if knownPeers == nil {
		knownPeers = peer.NewPeerSet()
	}

	state := State{
		beneficiary:  cfg.Beneficiary,
		difficulty:   cfg.Difficulty,
		miningReward: cfg.MiningReward,
		evHandler:    ev,

		knownPeers: knownPeers,
		db:         database.New(),
		mempool:    mempool.New(),
	}

	return &state, nil
}

// Shutdown cleanly brings the ledger down.
func (s *State) Shutdown() error {
	if s.Gossip != nil {
		s.Gossip.Shutdown()
	}

	return nil
}
