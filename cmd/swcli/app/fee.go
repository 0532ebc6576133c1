package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/9900offline/stellarwallet/fee"
	"github.com/9900offline/stellarwallet/log"
)

var feeCmd = &cobra.Command{
	Use:   "fee",
	Short: "Quote the current network fee",
	Run: func(cmd *cobra.Command, args []string) {
		v, err := loadConfig()
		if err != nil {
			log.Fatal(err)
		}
		client, err := newClient(v)
		if err != nil {
			log.Fatal(err)
		}

		quote, err := fee.NewEstimator(client).Estimate(context.Background())
		if err != nil {
			log.Fatalf("fee quote failed: %v", err)
		}
		fmt.Printf("Fee quote: %d\n", quote)
	},
}

func init() {
	rootCmd.AddCommand(feeCmd)
}
