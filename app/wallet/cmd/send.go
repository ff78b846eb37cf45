package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"

	"github.com/omoto202/MyCoin/foundation/ledger/database"
	"github.com/omoto202/MyCoin/foundation/ledger/money"
	"github.com/omoto202/MyCoin/foundation/ledger/signature"
)

var (
	url    string
	to     string
	amount string
)

// sendCmd represents the send command.
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Sign and submit a transaction",
	Run: func(cmd *cobra.Command, args []string) {
		privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
		if err != nil {
			log.Fatal(err)
		}

		amt, err := money.Parse(amount)
		if err != nil {
			log.Fatal(err)
		}

		sender := signature.PublicKeyAddress(&privateKey.PublicKey)

		tx, err := database.NewTx(sender, to, amt).Sign(privateKey)
		if err != nil {
			log.Fatal(err)
		}

		data, err := json.Marshal(tx)
		if err != nil {
			log.Fatal(err)
		}

		resp, err := http.Post(fmt.Sprintf("%s/v1/tx/submit", url), "application/json", bytes.NewBuffer(data))
		if err != nil {
			log.Fatal(err)
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		fmt.Println(resp.Status, string(body))
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&url, "url", "u", "http://localhost:8080", "Url of the node.")
	sendCmd.Flags().StringVarP(&to, "to", "t", "", "Address receiving the amount.")
	sendCmd.Flags().StringVarP(&amount, "amount", "v", "0.00000000", "Amount to send.")
}
