package nodegrp

import (
	"github.com/omoto202/MyCoin/foundation/ledger/database"
	"github.com/omoto202/MyCoin/foundation/ledger/money"
)

// submitTx is what clients post to submit a new transaction.
type submitTx struct {
	Sender    string `json:"sender" validate:"required"`
	Recipient string `json:"recipient" validate:"required"`
	Amount    string `json:"amount" validate:"required"`
	Signature string `json:"signature"`
}

// balance is the response for a balance query.
type balance struct {
	Account string       `json:"account"`
	Balance money.Amount `json:"balance"`
}

// mined is the response for a successful mine call.
type mined struct {
	BlockHash string `json:"hash"`
	TimeStamp int64  `json:"timestamp"`
}

// chainInfo is the response for a chain dump.
type chainInfo struct {
	Length int              `json:"length"`
	Chain  []database.Block `json:"chain"`
}

// mempoolInfo is the response for a pending pool query.
type mempoolInfo struct {
	Length       int           `json:"length"`
	Transactions []database.Tx `json:"transactions"`
}

// status is the response for a node status query.
type status struct {
	Difficulty   uint         `json:"difficulty"`
	MiningReward money.Amount `json:"mining_reward"`
	LatestHash   string       `json:"latest_hash"`
}
