package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verichain/verichain/engine/access/rest/models"
	"github.com/verichain/verichain/model/product"
)

var (
	flagStatusProductID uint64
	flagTxHash          string
)

func init() {
	rootCmd.AddCommand(stateCmd, statusCmd, transactionCmd)

	statusCmd.Flags().Uint64Var(&flagStatusProductID, "product-id", 0, "the identifier of the product")
	_ = statusCmd.MarkFlagRequired("product-id")

	transactionCmd.Flags().StringVar(&flagTxHash, "hash", "", "the hash of the transaction")
	_ = transactionCmd.MarkFlagRequired("hash")
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "print the public state of the registry contract",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := connect(cmd.Context(), conf.Ledger.Contract)
		if err != nil {
			return err
		}
		state, err := s.State(cmd.Context())
		if err != nil {
			return err
		}
		var out models.ContractState
		out.Build(s.Address(), state)
		return printJSON(cmd.OutOrStdout(), out)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "print the lifecycle stage of a product",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := connect(cmd.Context(), conf.Ledger.Contract)
		if err != nil {
			return err
		}
		id := product.ID(flagStatusProductID)
		stage, err := s.Stage(cmd.Context(), id)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "product %s: %s\n", id, stage)
		return nil
	},
}

var transactionCmd = &cobra.Command{
	Use:   "transaction",
	Short: "print an applied transaction",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ledgerClient()
		if err != nil {
			return err
		}
		tx, err := c.Transaction(cmd.Context(), flagTxHash)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), tx)
	},
}
