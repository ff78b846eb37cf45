package gossip_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gorilla/websocket"

	"github.com/omoto202/MyCoin/foundation/ledger/database"
	"github.com/omoto202/MyCoin/foundation/ledger/gossip"
	"github.com/omoto202/MyCoin/foundation/ledger/money"
	"github.com/omoto202/MyCoin/foundation/ledger/peer"
	"github.com/omoto202/MyCoin/foundation/ledger/signature"
	"github.com/omoto202/MyCoin/foundation/ledger/state"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

const testKey = "fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959"

func Test_InboundGossip(t *testing.T) {
	t.Log("Given the need to apply inbound peer messages to the local ledger.")
	{
		st, err := state.New(state.Config{
			Beneficiary:  "default-miner",
			Difficulty:   1,
			MiningReward: money.MustParse("10"),
		})
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the ledger: %v", failed, err)
		}

		g := gossip.Run(st, func(v string, args ...any) {})
		defer g.Shutdown()

		srv := httptest.NewServer(g)
		defer srv.Close()

		url := "ws" + strings.TrimPrefix(srv.URL, "http")
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to dial the gossip endpoint: %v", failed, err)
		}
		defer conn.Close()
		t.Logf("\t%s\tShould be able to dial the gossip endpoint.", success)

		// Fund the sender so the gossiped transfer clears the solvency check.
		privateKey, err := crypto.HexToECDSA(testKey)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the private key: %v", failed, err)
		}
		addr := signature.PublicKeyAddress(&privateKey.PublicKey)

		if _, err := st.MineNewBlock(context.Background(), addr); err != nil {
			t.Fatalf("\t%s\tShould be able to mine the funding block: %v", failed, err)
		}
		tip := st.RetrieveLatestBlock()

		// A malformed message must be dropped without closing the connection.
		if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
			t.Fatalf("\t%s\tShould be able to write the malformed message: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to write a malformed message.", success)

		// A block announcement is observed but never appended.
		announce, _ := json.Marshal(gossip.BlockAnnounce{TimeStamp: time.Now().Unix(), Hash: "00abc"})
		env, _ := json.Marshal(gossip.Envelope{Type: gossip.TypeNewBlock, Data: announce})
		if err := conn.WriteMessage(websocket.TextMessage, env); err != nil {
			t.Fatalf("\t%s\tShould be able to write the block announcement: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to write a block announcement.", success)

		// A valid transaction over the same connection proves it survived the
		// earlier malformed message.
		tx, err := database.NewTx(addr, "beef", money.MustParse("5")).Sign(privateKey)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to sign the transfer: %v", failed, err)
		}

		data, _ := json.Marshal(tx)
		env, _ = json.Marshal(gossip.Envelope{Type: gossip.TypeNewTx, Data: data})
		if err := conn.WriteMessage(websocket.TextMessage, env); err != nil {
			t.Fatalf("\t%s\tShould be able to write the transaction: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to write the transaction.", success)

		// The read loop applies messages asynchronously.
		deadline := time.Now().Add(2 * time.Second)
		for st.QueryMempoolLength() == 0 {
			if time.Now().After(deadline) {
				t.Fatalf("\t%s\tShould see the gossiped transaction in the pool.", failed)
			}
			time.Sleep(10 * time.Millisecond)
		}
		t.Logf("\t%s\tShould see the gossiped transaction in the pool.", success)

		if latest := st.RetrieveLatestBlock(); latest.BlockHash != tip.BlockHash {
			t.Fatalf("\t%s\tShould not append blocks from announcements.", failed)
		}
		t.Logf("\t%s\tShould not append blocks from announcements.", success)
	}
}

func Test_OutboundGossip(t *testing.T) {
	t.Log("Given the need to broadcast ledger events to the known peers.")
	{
		// A peer that records every envelope it is delivered.
		received := make(chan gossip.Envelope, 10)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var upgrader websocket.Upgrader
			conn, err := upgrader.Upgrade(w, r, nil)
			if err != nil {
				return
			}
			defer conn.Close()

			for {
				_, msg, err := conn.ReadMessage()
				if err != nil {
					return
				}

				var env gossip.Envelope
				if err := json.Unmarshal(msg, &env); err == nil {
					received <- env
				}
			}
		}))
		defer srv.Close()

		// One reachable peer and one that refuses connections.
		peerSet := peer.NewPeerSet()
		peerSet.Add(peer.New(strings.TrimPrefix(srv.URL, "http://")))
		peerSet.Add(peer.New("localhost:1"))

		st, err := state.New(state.Config{
			Beneficiary:  "default-miner",
			Difficulty:   1,
			MiningReward: money.MustParse("10"),
			KnownPeers:   peerSet,
		})
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the ledger: %v", failed, err)
		}

		g := gossip.Run(st, func(v string, args ...any) {})
		defer g.Shutdown()

		privateKey, err := crypto.HexToECDSA(testKey)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the private key: %v", failed, err)
		}
		addr := signature.PublicKeyAddress(&privateKey.PublicKey)

		if _, err := st.MineNewBlock(context.Background(), addr); err != nil {
			t.Fatalf("\t%s\tShould be able to mine the funding block: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to mine the funding block.", success)

		tx, err := database.NewTx(addr, "beef", money.MustParse("5")).Sign(privateKey)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to sign the transfer: %v", failed, err)
		}

		// Delivery is best effort, so submitting must never wait on a peer.
		started := time.Now()
		if err := st.SubmitTransaction(tx); err != nil {
			t.Fatalf("\t%s\tShould accept the transfer: %v", failed, err)
		}
		if elapsed := time.Since(started); elapsed > time.Second {
			t.Fatalf("\t%s\tShould return without waiting on delivery, took %s.", failed, elapsed)
		}
		t.Logf("\t%s\tShould return without waiting on delivery.", success)

		// The reachable peer gets both events even though the other peer is
		// unreachable.
		var gotBlock, gotTx bool
		timeout := time.After(5 * time.Second)
		for !gotBlock || !gotTx {
			select {
			case env := <-received:
				switch env.Type {
				case gossip.TypeNewBlock:
					var ba gossip.BlockAnnounce
					if err := json.Unmarshal(env.Data, &ba); err != nil || ba.Hash == "" {
						t.Fatalf("\t%s\tShould deliver a decodable block announcement: %v", failed, err)
					}
					gotBlock = true

				case gossip.TypeNewTx:
					var rtx database.Tx
					if err := json.Unmarshal(env.Data, &rtx); err != nil || rtx.Recipient != "beef" {
						t.Fatalf("\t%s\tShould deliver the submitted transaction: %v", failed, err)
					}
					gotTx = true
				}

			case <-timeout:
				t.Fatalf("\t%s\tShould deliver both events to the reachable peer: block[%v] tx[%v].", failed, gotBlock, gotTx)
			}
		}
		t.Logf("\t%s\tShould deliver both events to the reachable peer.", success)
	}
}
