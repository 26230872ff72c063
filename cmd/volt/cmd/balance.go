package cmd

import (
	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show your account balance",
	Run: func(cmd *cobra.Command, args []string) {
		c, err := newClient()
		if err != nil {
			cmd.Println(err)
			return
		}

		balance, err := c.Balance(cmd.Context())
		if err != nil {
			cmd.Printf("Failed to fetch balance: %v\n", err)
			return
		}
		currency := balance.Currency
		if currency == "" {
			currency = "USD"
		}
		cmd.Printf("Balance: %.2f %s\n", balance.Balance, currency)
	},
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}
