package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/9900offline/stellarwallet/exchange"
	"github.com/9900offline/stellarwallet/log"
	"github.com/9900offline/stellarwallet/result"
)

var offerCmd = &cobra.Command{
	Use:   "offer",
	Short: "Place, list and cancel standing offers",
}

var (
	offerIssuer        string
	offerCounterIssuer string
)

var offerPlaceCmd = &cobra.Command{
	Use:   "place <buy|sell> <code> <amount> <counter-code> <price>",
	Short: "Place an offer on the exchange",
	Args:  cobra.ExactArgs(5),
	Run: func(cmd *cobra.Command, args []string) {
		if args[0] != string(exchange.Buy) && args[0] != string(exchange.Sell) {
			log.Fatalf("order type must be buy or sell, got %s", args[0])
		}
		v, err := loadConfig()
		if err != nil {
			log.Fatal(err)
		}
		s, err := newSession(v, true)
		if err != nil {
			log.Fatal(err)
		}

		hash, err := exchange.NewCoordinator(s).Place(context.Background(), exchange.Order{
			Type:          exchange.OrderType(args[0]),
			Code:          args[1],
			Issuer:        offerIssuer,
			Amount:        args[2],
			CounterCode:   args[3],
			CounterIssuer: offerCounterIssuer,
			Price:         args[4],
		})
		if err != nil {
			log.Fatalf("place offer failed: %s", result.Describe(err))
		}
		fmt.Printf("Offer placed: %s\n", hash)
	},
}

var offerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the standing offers of the account",
	Run: func(cmd *cobra.Command, args []string) {
		v, err := loadConfig()
		if err != nil {
			log.Fatal(err)
		}
		s, err := newSession(v, false)
		if err != nil {
			log.Fatal(err)
		}

		offers, err := exchange.NewCoordinator(s).List(context.Background())
		if err != nil {
			log.Fatalf("list offers failed: %s", result.Describe(err))
		}
		for _, o := range offers {
			selling := o.Selling.AssetCode
			if selling == "" {
				selling = v.GetString("native_code")
			}
			buying := o.Buying.AssetCode
			if buying == "" {
				buying = v.GetString("native_code")
			}
			fmt.Printf("%s  sell %s %s for %s at %s\n", o.ID, o.Amount, selling, buying, o.Price)
		}
	},
}

var offerCancelCmd = &cobra.Command{
	Use:   "cancel <offer-id>",
	Short: "Cancel a standing offer by id",
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

		hash, err := exchange.NewCoordinator(s).Cancel(context.Background(), args[0])
		if err != nil {
			log.Fatalf("cancel offer failed: %s", result.Describe(err))
		}
		fmt.Printf("Offer cancelled: %s\n", hash)
	},
}

func init() {
	offerPlaceCmd.Flags().StringVar(&offerIssuer, "issuer", "", "issuer of the traded asset")
	offerPlaceCmd.Flags().StringVar(&offerCounterIssuer, "counter-issuer", "", "issuer of the counter asset")
	offerCmd.AddCommand(offerPlaceCmd)
	offerCmd.AddCommand(offerListCmd)
	offerCmd.AddCommand(offerCancelCmd)
	rootCmd.AddCommand(offerCmd)
}
