package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/9900offline/stellarwallet/log"
	"github.com/9900offline/stellarwallet/result"
)

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Show the balances of an account",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		v, err := loadConfig()
		if err != nil {
			log.Fatal(err)
		}
		s, err := newSession(v, false)
		if err != nil {
			log.Fatal(err)
		}

		address := ""
		if len(args) == 1 {
			address = args[0]
		}
		acc, err := s.AccountInfo(context.Background(), address)
		if err != nil {
			log.Fatalf("load account failed: %s", result.Describe(err))
		}

		fmt.Printf("Account:  %s\n", acc.AccountID)
		fmt.Printf("Sequence: %s\n", acc.Sequence)
		fmt.Printf("Subentries: %d\n", acc.SubentryCount)
		for _, b := range acc.Balances {
			if b.IsNative() {
				fmt.Printf("  %s %s\n", b.Balance, v.GetString("native_code"))
				continue
			}
			fmt.Printf("  %s %s (issuer %s, limit %s)\n", b.Balance, b.AssetCode, b.AssetIssuer, b.Limit)
		}
	},
}

var claimsCmd = &cobra.Command{
	Use:   "claims",
	Short: "List the balances claimable by the account",
	Run: func(cmd *cobra.Command, args []string) {
		v, err := loadConfig()
		if err != nil {
			log.Fatal(err)
		}
		s, err := newSession(v, false)
		if err != nil {
			log.Fatal(err)
		}

		balances, err := s.ClaimableBalances(context.Background())
		if err != nil {
			log.Fatalf("list claimable balances failed: %s", result.Describe(err))
		}
		for _, cb := range balances {
			fmt.Printf("%s  %s %s\n", cb.ID, cb.Amount, cb.Asset)
		}
	},
}

var claimCmd = &cobra.Command{
	Use:   "claim <balance-id>",
	Short: "Claim a claimable balance",
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

		hash, err := s.Claim(context.Background(), args[0])
		if err != nil {
			log.Fatalf("claim failed: %s", result.Describe(err))
		}
		fmt.Printf("Claimed: %s\n", hash)
	},
}

func init() {
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(claimsCmd)
	rootCmd.AddCommand(claimCmd)
}
