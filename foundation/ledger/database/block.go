package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/omoto202/MyCoin/foundation/ledger/signature"
)

// Block represents a group of transactions batched together and sealed with
// a proof of work hash.
type Block struct {
	TimeStamp     int64  `json:"timestamp"`
	Trans         []Tx   `json:"transactions"`
	PrevBlockHash string `json:"prev_hash"`
	Nonce         uint64 `json:"nonce"`
	BlockHash     string `json:"hash"`
}

// genesisBlock constructs the first block of a chain. It carries no
// transactions and links to the zero hash sentinel.
func genesisBlock() Block {
	b := Block{
		TimeStamp:     time.Now().UTC().Unix(),
		Trans:         []Tx{},
		PrevBlockHash: signature.ZeroHash,
	}
	b.BlockHash = b.Hash()

	return b
}

// Hash computes the digest of the block's canonical hashing representation.
// The stored BlockHash field does not participate, so the result always
// reflects the current field values.
func (b Block) Hash() string {
	trans := make([]map[string]any, len(b.Trans))
	for i, tx := range b.Trans {
		trans[i] = tx.hashInput()
	}

	return signature.Hash(map[string]any{
		"timestamp":    b.TimeStamp,
		"transactions": trans,
		"prev_hash":    b.PrevBlockHash,
		"nonce":        b.Nonce,
	})
}

// ValidateBlock checks the block can extend the specified previous block.
// The hash must match a recomputation of the block's fields, must satisfy
// the difficulty target, and must link to the previous block's hash.
func (b Block) ValidateBlock(prevBlock Block, difficulty uint, evHandler func(v string, args ...any)) error {
	evHandler("database: ValidateBlock: check: stored hash matches recomputed hash")

	hash := b.Hash()
	if b.BlockHash != hash {
		return fmt.Errorf("stored hash %s does not match recomputed hash %s: %w", b.BlockHash, hash, ErrChainCorrupt)
	}

	evHandler("database: ValidateBlock: check: hash solves the difficulty target")

	if !isHashSolved(difficulty, hash) {
		return fmt.Errorf("hash %s does not satisfy difficulty %d: %w", hash, difficulty, ErrChainCorrupt)
	}

	evHandler("database: ValidateBlock: check: previous hash links to the chain tip")

	if b.PrevBlockHash != prevBlock.BlockHash {
		return fmt.Errorf("previous hash %s does not link to tip %s: %w", b.PrevBlockHash, prevBlock.BlockHash, ErrChainCorrupt)
	}

	return nil
}

// =============================================================================

// POW constructs a new block from the specified transactions and performs the
// proof of work search to find a nonce that solves the difficulty target. The
// search is sequential, starting at nonce zero, and runs at an expected cost
// of O(16^difficulty) hash computations.
func POW(ctx context.Context, difficulty uint, prevBlockHash string, trans []Tx, evHandler func(v string, args ...any)) (Block, error) {
	evHandler("database: POW: mining started: txs[%d] difficulty[%d]", len(trans), difficulty)
	defer evHandler("database: POW: mining completed")

	nb := Block{
		TimeStamp:     time.Now().UTC().Unix(),
		Trans:         trans,
		PrevBlockHash: prevBlockHash,
	}

	var attempts uint64
	for {
		attempts++
		if attempts%1_000_000 == 0 {
			evHandler("database: POW: mining attempts[%d]", attempts)
		}

		if ctx.Err() != nil {
			evHandler("database: POW: mining cancelled")
			return Block{}, ctx.Err()
		}

		hash := nb.Hash()
		if !isHashSolved(difficulty, hash) {
			nb.Nonce++
			continue
		}

		evHandler("database: POW: mining solved: attempts[%d] hash[%s]", attempts, hash)

		nb.BlockHash = hash
		return nb, nil
	}
}

// isHashSolved checks the hash has the required run of leading zero hex
// characters.
func isHashSolved(difficulty uint, hash string) bool {
	if uint(len(hash)) < difficulty {
		return false
	}

	return strings.HasPrefix(hash, strings.Repeat("0", int(difficulty)))
}
