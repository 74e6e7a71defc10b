package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/verichain/verichain/model/product"
	"github.com/verichain/verichain/module/commitment"
	"github.com/verichain/verichain/witness"
)

var (
	flagProductID  uint64
	flagOwnerID    uint64
	flagCommitment string
	flagMetadata   string
	flagProof      string
)

func init() {
	rootCmd.AddCommand(registerCmd, mintCmd, verifyCmd, discloseCmd, commitCmd)

	for _, cmd := range []*cobra.Command{registerCmd, mintCmd, verifyCmd, discloseCmd} {
		cmd.Flags().Uint64Var(&flagProductID, "product-id", 0, "the identifier of the product")
		_ = cmd.MarkFlagRequired("product-id")
	}

	registerCmd.Flags().Uint64Var(&flagOwnerID, "owner-id", 0, "the identifier of the product owner")
	registerCmd.Flags().StringVar(&flagCommitment, "commitment", "", "hex encoded 32-byte commitment of the product metadata")
	registerCmd.Flags().StringVar(&flagMetadata, "metadata", "", "product metadata to commit to, instead of --commitment")
	registerCmd.MarkFlagsMutuallyExclusive("commitment", "metadata")

	verifyCmd.Flags().StringVar(&flagProof, "proof", "", "hex encoded 32-byte authenticity proof")
	discloseCmd.Flags().StringVar(&flagProof, "proof", "", "hex encoded 64-byte ESG proof")

	commitCmd.Flags().StringVar(&flagMetadata, "metadata", "", "product metadata, read from stdin when empty")
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "register a product under the commitment of its metadata",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var c []byte
		switch {
		case flagMetadata != "":
			c = commitment.CommitString(commitment.NewSHA3Committer(), flagMetadata).Bytes()
			fmt.Fprintf(cmd.OutOrStdout(), "commitment %x\n", c)
		case flagCommitment != "":
			var err error
			c, err = product.DecodeHex(flagCommitment)
			if err != nil {
				return fmt.Errorf("invalid commitment: %w", err)
			}
		default:
			return errors.New("one of --commitment or --metadata is required")
		}

		s, err := connect(cmd.Context(), conf.Ledger.Contract)
		if err != nil {
			return err
		}
		return execute(cmd.Context(), cmd.OutOrStdout(), s, witness.RegisterProduct{
			ProductID:  product.ID(flagProductID),
			OwnerID:    flagOwnerID,
			Commitment: c,
		})
	},
}

var mintCmd = &cobra.Command{
	Use:   "mint",
	Short: "mint the NFT of a registered product",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := connect(cmd.Context(), conf.Ledger.Contract)
		if err != nil {
			return err
		}
		return execute(cmd.Context(), cmd.OutOrStdout(), s, witness.MintNFT{ProductID: product.ID(flagProductID)})
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "submit an authenticity proof for a minted product",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		proof, err := parseProof(flagProof)
		if err != nil {
			return err
		}
		s, err := connect(cmd.Context(), conf.Ledger.Contract)
		if err != nil {
			return err
		}
		return execute(cmd.Context(), cmd.OutOrStdout(), s, witness.VerifyAuthenticity{
			ProductID: product.ID(flagProductID),
			Proof:     proof,
		})
	},
}

var discloseCmd = &cobra.Command{
	Use:   "disclose-esg",
	Short: "submit an ESG disclosure proof for a registered product",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		proof, err := parseProof(flagProof)
		if err != nil {
			return err
		}
		s, err := connect(cmd.Context(), conf.Ledger.Contract)
		if err != nil {
			return err
		}
		return execute(cmd.Context(), cmd.OutOrStdout(), s, witness.DiscloseESG{
			ProductID: product.ID(flagProductID),
			Proof:     proof,
		})
	},
}

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "print the commitment of product metadata",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data := []byte(flagMetadata)
		if flagMetadata == "" {
			var err error
			data, err = io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("could not read metadata: %w", err)
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), commitment.NewSHA3Committer().Commit(data))
		return nil
	},
}

