package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/9900offline/stellarwallet/log"
	"github.com/9900offline/stellarwallet/result"
	"github.com/9900offline/stellarwallet/wallet"
)

var (
	convSourceIssuer string
	convDestIssuer   string
	convMaxRate      float64
)

var convertCmd = &cobra.Command{
	Use:   "convert <source-code> <source-amount> <dest-code> <dest-amount>",
	Short: "Convert between two assets held by the account",
	Long: `Convert between two assets held by the account through a strict
receive path payment. The destination amount is received exactly, the
source amount bounds the spend. With --max-rate the bound becomes
max-rate times the source amount instead.`,
	Args: cobra.ExactArgs(4),
	Run: func(cmd *cobra.Command, args []string) {
		v, err := loadConfig()
		if err != nil {
			log.Fatal(err)
		}
		s, err := newSession(v, true)
		if err != nil {
			log.Fatal(err)
		}

		hash, err := s.Convert(context.Background(), wallet.Conversion{
			SourceCode:   args[0],
			SourceIssuer: convSourceIssuer,
			SourceAmount: args[1],
			DestCode:     args[2],
			DestIssuer:   convDestIssuer,
			DestAmount:   args[3],
			MaxRate:      convMaxRate,
		})
		if err != nil {
			log.Fatalf("convert failed: %s", result.Describe(err))
		}
		fmt.Printf("Converted: %s\n", hash)
	},
}

func init() {
	convertCmd.Flags().StringVar(&convSourceIssuer, "source-issuer", "", "issuer of the source asset")
	convertCmd.Flags().StringVar(&convDestIssuer, "dest-issuer", "", "issuer of the destination asset")
	convertCmd.Flags().Float64Var(&convMaxRate, "max-rate", 0, "worst acceptable source per destination rate")
	rootCmd.AddCommand(convertCmd)
}
