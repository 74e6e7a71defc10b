package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verichain/verichain/model/product"
)

func init() {
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "stream the calls applied to the registry contract, one JSON object per line",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if conf.Ledger.Contract == "" {
			return fmt.Errorf("no registry contract configured")
		}
		c, err := ledgerClient()
		if err != nil {
			return err
		}
		sub, err := c.Subscribe(cmd.Context(), product.Address(conf.Ledger.Contract))
		if err != nil {
			return err
		}

		encoder := json.NewEncoder(cmd.OutOrStdout())
		for event := range sub.Events() {
			if err := encoder.Encode(event); err != nil {
				return fmt.Errorf("could not write event: %w", err)
			}
		}
		return sub.Err()
	},
}
