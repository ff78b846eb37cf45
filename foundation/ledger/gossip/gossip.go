// Package gossip implements best effort dissemination of ledger events to
// the known peers and applies inbound peer events to the local ledger. One
// JSON envelope is sent per message over a websocket connection. Deliveries
// are fire and forget: a failure is logged and the event is not retried.
package gossip

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/omoto202/MyCoin/foundation/ledger/database"
	"github.com/omoto202/MyCoin/foundation/ledger/peer"
	"github.com/omoto202/MyCoin/foundation/ledger/state"
)

// maxShareRequests represents the max number of outbound events that can be
// waiting for dispatch before new events are dropped.
const maxShareRequests = 100

// deliverTimeout bounds the dial plus write for a single peer delivery.
const deliverTimeout = 5 * time.Second

// Set of envelope types carried on the wire.
const (
	TypeNewTx    = "new_tx"
	TypeNewBlock = "new_block"
)

// Envelope is the wire format for a gossip message.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// BlockAnnounce is the payload shared for a newly mined block. Peers learn a
// block exists; they do not receive enough to adopt it.
type BlockAnnounce struct {
	TimeStamp int64  `json:"timestamp"`
	Hash      string `json:"hash"`
}

// =============================================================================

// Gossip manages the outbound broadcast of ledger events and the inbound
// listener for peer events.
type Gossip struct {
	state     *state.State
	evHandler state.EventHandler
	outbox    chan Envelope
	shut      chan struct{}
	wg        sync.WaitGroup
}

// Run creates a gossip layer, registers it with the state package, and
// starts the dispatch goroutine.
func Run(st *state.State, evHandler state.EventHandler) *Gossip {
	g := Gossip{
		state:     st,
		evHandler: evHandler,
		outbox:    make(chan Envelope, maxShareRequests),
		shut:      make(chan struct{}),
	}

	st.Gossip = &g

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		g.dispatchOperations()
	}()

	return &g
}

// Shutdown terminates the dispatch goroutine. In flight deliveries are given
// until their timeout to finish.
func (g *Gossip) Shutdown() {
	g.evHandler("gossip: shutdown: started")
	defer g.evHandler("gossip: shutdown: completed")

	close(g.shut)
	g.wg.Wait()
}

// SignalShareTx queues a new transaction event for broadcast. If the outbox
// is full the event is dropped, consistent with best effort delivery.
func (g *Gossip) SignalShareTx(tx database.Tx) {
	g.enqueue(TypeNewTx, tx)
}

// SignalShareBlock queues a new block announcement for broadcast.
func (g *Gossip) SignalShareBlock(block database.Block) {
	g.enqueue(TypeNewBlock, BlockAnnounce{TimeStamp: block.TimeStamp, Hash: block.BlockHash})
}

// enqueue wraps the payload in an envelope and queues it without blocking
// the originating caller.
func (g *Gossip) enqueue(typ string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		g.evHandler("gossip: enqueue: ERROR: encoding %s payload: %s", typ, err)
		return
	}

	select {
	case g.outbox <- Envelope{Type: typ, Data: data}:
		g.evHandler("gossip: enqueue: %s event queued", typ)
	default:
		g.evHandler("gossip: enqueue: outbox full, %s event dropped", typ)
	}
}

// =============================================================================

// dispatchOperations drains the outbox and fans each event out to the known
// peers, one goroutine per peer so a slow peer never delays the others.
func (g *Gossip) dispatchOperations() {
	g.evHandler("gossip: dispatchOperations: G started")
	defer g.evHandler("gossip: dispatchOperations: G completed")

	for {
		select {
		case env := <-g.outbox:
			g.broadcast(env)
		case <-g.shut:
			g.evHandler("gossip: dispatchOperations: received shut signal")
			return
		}
	}
}

// broadcast attempts delivery of the envelope to every known peer
// independently. Failures are logged and ignored.
func (g *Gossip) broadcast(env Envelope) {
	var wg sync.WaitGroup
	for _, pr := range g.state.RetrieveKnownPeers() {
		wg.Add(1)
		go func(pr peer.Peer) {
			defer wg.Done()

			if err := g.deliver(pr, env); err != nil {
				g.evHandler("gossip: broadcast: WARNING: peer[%s]: %s", pr, err)
				return
			}
			g.evHandler("gossip: broadcast: %s sent to peer[%s]", env.Type, pr)
		}(pr)
	}
	wg.Wait()
}

// deliver dials the peer's gossip endpoint and writes one envelope.
func (g *Gossip) deliver(pr peer.Peer, env Envelope) error {
	ctx, cancel := context.WithTimeout(context.Background(), deliverTimeout)
	defer cancel()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, pr.GossipURL(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	data, err := json.Marshal(env)
	if err != nil {
		return err
	}

	conn.SetWriteDeadline(time.Now().Add(deliverTimeout))
	return conn.WriteMessage(websocket.TextMessage, data)
}
