package nodegrp_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/omoto202/MyCoin/app/services/node/handlers"
	"github.com/omoto202/MyCoin/foundation/events"
	"github.com/omoto202/MyCoin/foundation/ledger/database"
	"github.com/omoto202/MyCoin/foundation/ledger/money"
	"github.com/omoto202/MyCoin/foundation/ledger/signature"
	"github.com/omoto202/MyCoin/foundation/ledger/state"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

const testKey = "fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959"

func Test_StatusAndMempool(t *testing.T) {
	t.Log("Given the need to query the node status and pending pool over the API.")
	{
		st, err := state.New(state.Config{
			Beneficiary:  "default-miner",
			Difficulty:   1,
			MiningReward: money.MustParse("10"),
		})
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct the ledger: %v", failed, err)
		}

		evts := events.New()
		defer evts.Shutdown()

		mux := handlers.PublicMux(handlers.MuxConfig{
			Shutdown: make(chan os.Signal, 1),
			Log:      zap.NewNop().Sugar(),
			State:    st,
			Evts:     evts,
		})

		srv := httptest.NewServer(mux)
		defer srv.Close()

		privateKey, err := crypto.HexToECDSA(testKey)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to load the private key: %v", failed, err)
		}
		addr := signature.PublicKeyAddress(&privateKey.PublicKey)

		block, err := st.MineNewBlock(context.Background(), addr)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to mine the funding block: %v", failed, err)
		}

		tx, err := database.NewTx(addr, "beef", money.MustParse("5")).Sign(privateKey)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to sign the transfer: %v", failed, err)
		}
		if err := st.SubmitTransaction(tx); err != nil {
			t.Fatalf("\t%s\tShould accept the transfer: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to seed the ledger.", success)

		var gotStatus struct {
			Difficulty   uint   `json:"difficulty"`
			MiningReward string `json:"mining_reward"`
			LatestHash   string `json:"latest_hash"`
		}
		statusResp, err := http.Get(srv.URL + "/v1/status")
		if err != nil {
			t.Fatalf("\t%s\tShould be able to call the status endpoint: %v", failed, err)
		}
		defer statusResp.Body.Close()

		if statusResp.StatusCode != http.StatusOK {
			t.Fatalf("\t%s\tShould get a 200 from the status endpoint, got %d.", failed, statusResp.StatusCode)
		}
		if err := json.NewDecoder(statusResp.Body).Decode(&gotStatus); err != nil {
			t.Fatalf("\t%s\tShould be able to decode the status response: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to call the status endpoint.", success)

		if gotStatus.Difficulty != 1 || gotStatus.MiningReward != "10.00000000" {
			t.Fatalf("\t%s\tShould report the mining configuration, got difficulty[%d] reward[%s].", failed, gotStatus.Difficulty, gotStatus.MiningReward)
		}
		if gotStatus.LatestHash != block.BlockHash {
			t.Fatalf("\t%s\tShould report the chain tip, got %s.", failed, gotStatus.LatestHash)
		}
		t.Logf("\t%s\tShould report the mining configuration and the chain tip.", success)

		var gotPool struct {
			Length       int           `json:"length"`
			Transactions []database.Tx `json:"transactions"`
		}
		poolResp, err := http.Get(srv.URL + "/v1/mempool")
		if err != nil {
			t.Fatalf("\t%s\tShould be able to call the mempool endpoint: %v", failed, err)
		}
		defer poolResp.Body.Close()

		if err := json.NewDecoder(poolResp.Body).Decode(&gotPool); err != nil {
			t.Fatalf("\t%s\tShould be able to decode the mempool response: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to call the mempool endpoint.", success)

		if gotPool.Length != 1 || len(gotPool.Transactions) != 1 || gotPool.Transactions[0].Recipient != "beef" {
			t.Fatalf("\t%s\tShould list the pending transaction, got %d.", failed, gotPool.Length)
		}
		t.Logf("\t%s\tShould list the pending transaction.", success)
	}
}
