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

	"github.com/spf13/cobra"

	"github.com/9900offline/stellarwallet/crypto"
	"github.com/9900offline/stellarwallet/log"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a random keypair for an account",
	Long: `Generate a random keypair for an account. The address identifies the
account on the network, the seed signs its transactions and must be
kept secret.`,
	Run: func(cmd *cobra.Command, args []string) {
		kp, err := crypto.NewKeypair()
		if err != nil {
			log.Fatalf("generate account keypair failed: %v", err)
		}
		fmt.Printf("Address: %s\nSeed: %s\n", kp.Address(), kp.Seed())
	},
}

func init() {
	rootCmd.AddCommand(keygenCmd)
}
