// Package nodegrp maintains the group of handlers for ledger access.
package nodegrp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/omoto202/MyCoin/business/sys/metrics"
	"github.com/omoto202/MyCoin/business/web/errs"
	"github.com/omoto202/MyCoin/foundation/events"
	"github.com/omoto202/MyCoin/foundation/ledger/database"
	"github.com/omoto202/MyCoin/foundation/ledger/money"
	"github.com/omoto202/MyCoin/foundation/ledger/state"
	"github.com/omoto202/MyCoin/foundation/web"
)

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	Evts  *events.Events
	WS    websocket.Upgrader
}

// SubmitTransaction adds a new transaction to the pending pool.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var newTx submitTx
	if err := web.Decode(r, &newTx); err != nil {
		return err
	}

	// The reserved sender never enters the ledger from the outside. The
	// ledger rejects it as well, but refusing it here keeps reward minting
	// structurally out of reach of the API.
	if newTx.Sender == database.SystemAccount {
		metrics.Transactions.WithLabelValues("rejected").Inc()
		return errs.NewTrusted(state.ErrReservedSender, http.StatusBadRequest)
	}

	amount, err := money.Parse(newTx.Amount)
	if err != nil {
		metrics.Transactions.WithLabelValues("rejected").Inc()
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	tx := database.Tx{
		Sender:    newTx.Sender,
		Recipient: newTx.Recipient,
		Amount:    amount,
		Signature: newTx.Signature,
	}

	h.Log.Infow("submit tran", "traceid", v.TraceID, "tx", tx)

	if err := h.State.SubmitTransaction(tx); err != nil {
		metrics.Transactions.WithLabelValues("rejected").Inc()

		switch {
		case errors.Is(err, database.ErrInvalidSignature),
			errors.Is(err, database.ErrInvalidAmount),
			errors.Is(err, database.ErrInsufficientBalance),
			errors.Is(err, state.ErrReservedSender):
			return errs.NewTrusted(err, http.StatusBadRequest)
		default:
			return err
		}
	}

	metrics.Transactions.WithLabelValues("accepted").Inc()

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "transaction added to pending pool",
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// Mine seals the pending transactions plus the reward into a new block.
func (h Handlers) Mine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	miner := r.URL.Query().Get("miner")

	block, err := h.State.MineNewBlock(ctx, miner)
	if err != nil {
		return err
	}

	metrics.BlocksMined.Inc()

	resp := mined{
		BlockHash: block.BlockHash,
		TimeStamp: block.TimeStamp,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Balance returns the derived balance for an account.
func (h Handlers) Balance(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	account := web.Param(r, "account")

	resp := balance{
		Account: account,
		Balance: h.State.BalanceOf(account),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Mempool returns the transactions waiting to be mined, in inclusion order.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	txs := h.State.RetrieveMempool()

	resp := mempoolInfo{
		Length:       len(txs),
		Transactions: txs,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Status returns the node's mining configuration and the current chain tip.
func (h Handlers) Status(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := status{
		Difficulty:   h.State.RetrieveDifficulty(),
		MiningReward: h.State.RetrieveMiningReward(),
		LatestHash:   h.State.RetrieveLatestBlock().BlockHash,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Chain returns the full chain in order.
func (h Handlers) Chain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	chain := h.State.RetrieveChain()

	resp := chainInfo{
		Length: len(chain),
		Chain:  chain,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Events handles a web socket to provide node events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}
