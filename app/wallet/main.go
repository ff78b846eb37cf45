// This program provides a simple wallet for signing and submitting
// transactions to a node.
package main

import "github.com/omoto202/MyCoin/app/wallet/cmd"

func main() {
	cmd.Execute()
}
