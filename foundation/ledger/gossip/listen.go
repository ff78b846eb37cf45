package gossip

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/omoto202/MyCoin/foundation/ledger/database"
)

// ServeHTTP upgrades an inbound peer connection and applies each gossip
// message to the local ledger. Malformed messages are logged and dropped;
// the connection stays open.
func (g *Gossip) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var upgrader websocket.Upgrader
	upgrader.CheckOrigin = func(r *http.Request) bool { return true }

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.evHandler("gossip: listen: upgrade failed: %s", err)
		return
	}
	defer conn.Close()

	g.evHandler("gossip: listen: peer connected: %s", r.RemoteAddr)
	defer g.evHandler("gossip: listen: peer disconnected: %s", r.RemoteAddr)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}

		g.applyMessage(msg)
	}
}

// applyMessage decodes one envelope and applies it to the ledger.
func (g *Gossip) applyMessage(msg []byte) {
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		g.evHandler("gossip: applyMessage: malformed envelope dropped: %s", err)
		return
	}

	switch env.Type {
	case TypeNewTx:
		var tx database.Tx
		if err := json.Unmarshal(env.Data, &tx); err != nil {
			g.evHandler("gossip: applyMessage: malformed new_tx dropped: %s", err)
			return
		}

		if err := g.state.SubmitTransaction(tx); err != nil {
			g.evHandler("gossip: applyMessage: new_tx rejected: %s", err)
			return
		}
		g.evHandler("gossip: applyMessage: new_tx accepted: tx[%s]", tx)

	case TypeNewBlock:
		// A block announcement carries only a timestamp and a hash, which is
		// not enough to validate proof of work or linkage. Announcements are
		// observed and surfaced to event subscribers, never appended.
		var ba BlockAnnounce
		if err := json.Unmarshal(env.Data, &ba); err != nil {
			g.evHandler("gossip: applyMessage: malformed new_block dropped: %s", err)
			return
		}

		g.evHandler("gossip: applyMessage: peer announced block[%s]", ba.Hash)

	default:
		g.evHandler("gossip: applyMessage: unknown type %q dropped", env.Type)
	}
}
