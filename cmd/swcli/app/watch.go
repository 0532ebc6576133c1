// Copyright 2020 The stellarwallet Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/9900offline/stellarwallet/horizon"
	"github.com/9900offline/stellarwallet/log"
	"github.com/9900offline/stellarwallet/stream"
)

// txPrinter is the history processor of the watch command, it just
// summarizes the record for display.
type txPrinter struct{}

func (txPrinter) ProcessTx(tx *horizon.Transaction, address string) interface{} {
	return fmt.Sprintf("%s ledger %d memo %q", tx.Hash, tx.Ledger, tx.Memo)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the account for pushed balance changes",
	Long: `Watch the account for pushed balance changes. Notifications fire only
when the observable balance state or the reserve actually changed,
identical pushes from the node are absorbed. Stop with Ctrl-C.`,
	Run: func(cmd *cobra.Command, args []string) {
		v, err := loadConfig()
		if err != nil {
			log.Fatal(err)
		}
		s, err := newSession(v, false)
		if err != nil {
			log.Fatal(err)
		}
		client, err := newClient(v)
		if err != nil {
			log.Fatal(err)
		}

		r := stream.NewReconciler(s.Address(), client, txPrinter{})
		r.OnBalanceChange(func(snap stream.Snapshot) {
			fmt.Printf("balance: %s %s\n", snap.Native, v.GetString("native_code"))
			for code, byIssuer := range snap.Lines {
				for _, line := range byIssuer {
					fmt.Printf("balance: %s %s (issuer %s)\n", line.Balance, code, line.Issuer)
				}
			}
		})
		r.OnReserveChange(func(reserve decimal.Decimal) {
			fmt.Printf("reserve: %s\n", reserve)
		})
		r.Start()
		defer r.Stop()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
