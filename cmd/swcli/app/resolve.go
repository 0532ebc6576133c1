package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/9900offline/stellarwallet/federation"
	"github.com/9900offline/stellarwallet/log"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <name*domain>",
	Short: "Resolve a federation name to an account address",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := federation.NewResolver().Resolve(context.Background(), args[0])
		if err != nil {
			log.Fatalf("resolve %s failed: %v", args[0], err)
		}
		fmt.Printf("%s\n", id)
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
