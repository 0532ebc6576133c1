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
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/9900offline/stellarwallet/horizon"
	"github.com/9900offline/stellarwallet/log"
	"github.com/9900offline/stellarwallet/wallet"
)

var cfgFile string
var debug bool

var rootCmd = &cobra.Command{
	Use:   "swcli",
	Short: "Wallet client for Horizon-style ledger networks",
	Long: `swcli drives a wallet account against a remote ledger node: it pays,
funds, converts, trusts, places offers and watches the account for
pushed balance changes.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug {
			log.OpenDebug()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug log")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file into viper.
func loadConfig() (*viper.Viper, error) {
	if cfgFile == "" {
		return nil, errors.New("config file not provided")
	}
	v := viper.New()
	v.SetConfigFile(cfgFile)
	v.SetDefault("native_code", "XLM")
	v.SetDefault("timeout", wallet.DefaultTimeout)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	return v, nil
}

// newClient builds the node client from the config.
func newClient(v *viper.Viper) (*horizon.Client, error) {
	var opts []horizon.Option
	if v.GetBool("allow_http") {
		opts = append(opts, horizon.AllowHTTP())
	}
	return horizon.New(v.GetString("endpoint"), opts...)
}

// newSession builds a wallet session from the config. Commands
// that submit transactions need the seed in the config, read-only
// commands work with the address alone.
func newSession(v *viper.Viper, needSigner bool) (*wallet.Session, error) {
	client, err := newClient(v)
	if err != nil {
		return nil, err
	}

	cfg := wallet.Config{
		NetworkPassphrase: v.GetString("network_passphrase"),
		NativeCode:        v.GetString("native_code"),
		Timeout:           v.GetInt64("timeout"),
		MaxFee:            v.GetFloat64("max_fee"),
	}

	address := v.GetString("address")
	var signer wallet.Signer
	if needSigner {
		seed := v.GetString("seed")
		if seed == "" {
			return nil, errors.New("seed is missing in config")
		}
		local, err := wallet.NewLocalSigner(seed)
		if err != nil {
			return nil, err
		}
		if address == "" {
			address = local.Address()
		}
		signer = local
	}
	if address == "" {
		return nil, errors.New("address is missing in config")
	}

	return wallet.NewSession(cfg, address, client, signer)
}

// memoFromFlags validates the memo flags before any network call.
func memoFromFlags(memoType, memoValue string) error {
	if memoType == "" {
		return nil
	}
	if msg := wallet.ValidateMemo(memoType, memoValue); msg != "" {
		return fmt.Errorf("invalid memo: %s", msg)
	}
	return nil
}
