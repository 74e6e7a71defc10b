package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/verichain/verichain/config"
	"github.com/verichain/verichain/utils/logging"
)

var (
	flagConfig      string
	flagLedgerURL   string
	flagContract    string
	flagLogLevel    string
	flagTimeout     time.Duration
	flagMaxAttempts uint
	flagMetrics     string
	flagJSONLogs    bool
)

var (
	conf *config.Config
	log  = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "verichain",
	Short: "Register, mint and verify products on a VeriChain registry contract",
	// errors are reported by Execute
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(flagConfig, cmd.Flags())
		if err != nil {
			return err
		}
		conf = c
		log = logging.New(cmd.ErrOrStderr(), conf.Level(), !flagJSONLogs)
		return startMetrics()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		stopMetrics()
		return nil
	},
}

// Execute runs the command line until it completes or the process receives
// an interrupt.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, describeError(err))
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagConfig, "config", "", "path to a YAML configuration file")
	flags.StringVar(&flagLedgerURL, "ledger-url", "http://127.0.0.1:8088", "base URL of the ledger REST API")
	flags.StringVar(&flagContract, "contract", "", "address of the registry contract")
	flags.StringVar(&flagLogLevel, "log-level", "info", "log level: trace, debug, info, warn or error")
	flags.DurationVar(&flagTimeout, "timeout", 2*time.Minute, "bound on a single ledger request")
	flags.UintVar(&flagMaxAttempts, "max-attempts", 3, "attempts per operation, the first one included")
	flags.StringVar(&flagMetrics, "metrics", "", "serve prometheus metrics on this address")
	flags.BoolVar(&flagJSONLogs, "json-logs", false, "write logs as JSON instead of console output")
}
