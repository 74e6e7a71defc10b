package cmd

import (
	"github.com/spf13/cobra"

	"github.com/verichain/verichain/emulator/server"
)

var (
	flagListen  string
	flagDatadir string
)

func init() {
	rootCmd.AddCommand(emulatorCmd)
	emulatorCmd.AddCommand(emulatorServeCmd)

	emulatorServeCmd.Flags().StringVar(&flagListen, "listen", "127.0.0.1:8088", "address the REST API listens on")
	emulatorServeCmd.Flags().StringVar(&flagDatadir, "datadir", "", "badger database directory, state is kept in memory when empty")
}

var emulatorCmd = &cobra.Command{
	Use:   "emulator",
	Short: "run a local emulated ledger",
}

var emulatorServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve an emulated ledger over the REST API until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := server.NewEmulatorServer(log, server.Config{
			DataDir:          conf.Emulator.DataDir,
			ReceiptCacheSize: conf.Emulator.ReceiptCacheSize,
			EventBufferSize:  conf.Emulator.EventBufferSize,
			Rest:             conf.RestConfig(),
		})
		if err != nil {
			return err
		}
		return s.Start(cmd.Context())
	},
}
