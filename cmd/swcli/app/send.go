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
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/9900offline/stellarwallet/federation"
	"github.com/9900offline/stellarwallet/log"
	"github.com/9900offline/stellarwallet/result"
	"github.com/9900offline/stellarwallet/wallet"
)

var (
	sendAsset     string
	sendIssuer    string
	sendMemoType  string
	sendMemoValue string
)

var sendCmd = &cobra.Command{
	Use:   "send <target> <amount>",
	Short: "Pay an amount to the target account",
	Long: `Pay an amount to the target account. Paying the native asset to an
account that does not exist yet funds it instead. The target is an
account address or a name*domain federation name.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		v, err := loadConfig()
		if err != nil {
			log.Fatal(err)
		}
		s, err := newSession(v, true)
		if err != nil {
			log.Fatal(err)
		}
		if err := memoFromFlags(sendMemoType, sendMemoValue); err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		target := args[0]
		if strings.Contains(target, "*") {
			target, err = federation.NewResolver().Resolve(ctx, target)
			if err != nil {
				log.Fatalf("resolve %s failed: %v", args[0], err)
			}
			log.Infof("%s resolved to %s", args[0], target)
		}
		if !wallet.IsValidAddress(target) {
			log.Fatalf("invalid target address %s", target)
		}

		code := sendAsset
		if code == "" {
			code = v.GetString("native_code")
		}
		hash, err := s.Send(ctx, target, code, sendIssuer, args[1], sendMemoType, sendMemoValue)
		if err != nil {
			log.Fatalf("send failed: %s", result.Describe(err))
		}
		fmt.Printf("Sent: %s\n", hash)
	},
}

var trustLimit string

var trustCmd = &cobra.Command{
	Use:   "trust <code> <issuer>",
	Short: "Create or adjust a trustline",
	Long: `Create or adjust the trustline for an asset. A zero limit removes the
trustline.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		v, err := loadConfig()
		if err != nil {
			log.Fatal(err)
		}
		s, err := newSession(v, true)
		if err != nil {
			log.Fatal(err)
		}

		hash, err := s.ChangeTrust(context.Background(), args[0], args[1], trustLimit)
		if err != nil {
			log.Fatalf("change trust failed: %s", result.Describe(err))
		}
		fmt.Printf("Trustline updated: %s\n", hash)
	},
}

var mergeCmd = &cobra.Command{
	Use:   "merge <destination>",
	Short: "Merge the account into the destination account",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		v, err := loadConfig()
		if err != nil {
			log.Fatal(err)
		}
		s, err := newSession(v, true)
		if err != nil {
			log.Fatal(err)
		}

		hash, err := s.Merge(context.Background(), args[0])
		if err != nil {
			log.Fatalf("merge failed: %s", result.Describe(err))
		}
		fmt.Printf("Merged: %s\n", hash)
	},
}

func init() {
	sendCmd.Flags().StringVar(&sendAsset, "asset", "", "asset code to pay with, the native asset by default")
	sendCmd.Flags().StringVar(&sendIssuer, "issuer", "", "issuer of the asset")
	sendCmd.Flags().StringVar(&sendMemoType, "memo-type", "", "memo type: text, id, hash or return")
	sendCmd.Flags().StringVar(&sendMemoValue, "memo", "", "memo value")
	trustCmd.Flags().StringVar(&trustLimit, "limit", "922337203685.4775807", "trust limit, zero removes the trustline")
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(trustCmd)
	rootCmd.AddCommand(mergeCmd)
}
