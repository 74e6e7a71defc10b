package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/verichain/verichain/engine/access/rest/models"
	"github.com/verichain/verichain/model/product"
	"github.com/verichain/verichain/module/commitment"
	"github.com/verichain/verichain/session"
	"github.com/verichain/verichain/witness"
)

var flagHistoryFile string

func init() {
	rootCmd.AddCommand(shellCmd)
	shellCmd.Flags().StringVar(&flagHistoryFile, "history-file", "", "file keeping the command history")
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "operate the registry interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rl, err := readline.NewEx(&readline.Config{
			Prompt:          "verichain> ",
			HistoryFile:     flagHistoryFile,
			InterruptPrompt: "^C",
			EOFPrompt:       "exit",
			Stdin:           io.NopCloser(cmd.InOrStdin()),
			Stdout:          cmd.OutOrStdout(),
			Stderr:          cmd.ErrOrStderr(),
			AutoComplete:    shellCompleter,
		})
		if err != nil {
			return fmt.Errorf("could not start shell: %w", err)
		}
		defer rl.Close()

		sh := &shell{
			out:     rl.Stdout(),
			connect: connect,
			deploy:  deploy,
		}
		if conf.Ledger.Contract != "" {
			if err := sh.runCommand(cmd.Context(), "connect "+conf.Ledger.Contract); err != nil {
				fmt.Fprintln(sh.out, describeError(err))
			}
		}
		sh.help()

		for {
			line, err := rl.Readline()
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if err != nil {
				return nil
			}
			err = sh.runCommand(cmd.Context(), line)
			if errors.Is(err, errExit) {
				return nil
			}
			if err != nil {
				fmt.Fprintln(sh.out, describeError(err))
			}
		}
	},
}

var errExit = errors.New("exit")

var shellCompleter = readline.NewPrefixCompleter(
	readline.PcItem("deploy"),
	readline.PcItem("connect"),
	readline.PcItem("register"),
	readline.PcItem("mint"),
	readline.PcItem("verify"),
	readline.PcItem("disclose"),
	readline.PcItem("state"),
	readline.PcItem("status"),
	readline.PcItem("commit"),
	readline.PcItem("help"),
	readline.PcItem("exit"),
)

// shell interprets the commands of the interactive shell. It keeps the
// session of the contract it is connected to.
type shell struct {
	out     io.Writer
	connect func(ctx context.Context, address string) (*session.Session, error)
	deploy  func(ctx context.Context) (*session.Session, error)
	session *session.Session
}

// runCommand runs one line in its own context. An interrupt cancels the
// running command and leaves the shell open.
func (sh *shell) runCommand(parent context.Context, line string) error {
	ctx, stop := signal.NotifyContext(context.WithoutCancel(parent), os.Interrupt)
	defer stop()
	return sh.run(ctx, line)
}

func (sh *shell) help() {
	fmt.Fprint(sh.out, `commands:
  deploy                               deploy a new registry contract and connect to it
  connect <address>                    connect to an existing registry contract
  register <product-id> <owner-id> <metadata...>
  mint <product-id>
  verify <product-id> <proof-hex>
  disclose <product-id> <proof-hex>
  state                                print the contract state
  status <product-id>                  print the lifecycle stage of a product
  commit <metadata...>                 print the commitment of product metadata
  help
  exit
`)
}

// run executes one line. It returns errExit when the shell should terminate.
func (sh *shell) run(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	command, args := fields[0], fields[1:]

	switch command {
	case "exit", "quit":
		return errExit
	case "help":
		sh.help()
		return nil
	case "commit":
		if len(args) == 0 {
			return errors.New("usage: commit <metadata...>")
		}
		fmt.Fprintln(sh.out, commitment.CommitString(commitment.NewSHA3Committer(), strings.Join(args, " ")))
		return nil
	case "deploy":
		s, err := sh.deploy(ctx)
		if err != nil {
			return err
		}
		sh.session = s
		fmt.Fprintf(sh.out, "deployed and connected to %s\n", s.Address())
		return nil
	case "connect":
		if len(args) != 1 {
			return errors.New("usage: connect <address>")
		}
		s, err := sh.connect(ctx, args[0])
		if err != nil {
			return err
		}
		sh.session = s
		fmt.Fprintf(sh.out, "connected to %s\n", s.Address())
		return nil
	}

	if sh.session == nil {
		return errors.New("not connected, use deploy or connect first")
	}

	switch command {
	case "state":
		state, err := sh.session.State(ctx)
		if err != nil {
			return err
		}
		var out models.ContractState
		out.Build(sh.session.Address(), state)
		return printJSON(sh.out, out)
	case "status":
		id, err := parseArgs(args, 1, "status <product-id>")
		if err != nil {
			return err
		}
		stage, err := sh.session.Stage(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(sh.out, "product %s: %s\n", id, stage)
		return nil
	case "register":
		if len(args) < 3 {
			return errors.New("usage: register <product-id> <owner-id> <metadata...>")
		}
		id, err := product.ParseID(args[0])
		if err != nil {
			return err
		}
		owner, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid owner id %q: %w", args[1], err)
		}
		c := commitment.CommitString(commitment.NewSHA3Committer(), strings.Join(args[2:], " "))
		fmt.Fprintf(sh.out, "commitment %s\n", c)
		return execute(ctx, sh.out, sh.session, witness.RegisterProduct{ProductID: id, OwnerID: owner, Commitment: c.Bytes()})
	case "mint":
		id, err := parseArgs(args, 1, "mint <product-id>")
		if err != nil {
			return err
		}
		return execute(ctx, sh.out, sh.session, witness.MintNFT{ProductID: id})
	case "verify", "disclose":
		id, err := parseArgs(args, 2, command+" <product-id> <proof-hex>")
		if err != nil {
			return err
		}
		proof, err := parseProof(args[1])
		if err != nil {
			return err
		}
		if command == "verify" {
			return execute(ctx, sh.out, sh.session, witness.VerifyAuthenticity{ProductID: id, Proof: proof})
		}
		return execute(ctx, sh.out, sh.session, witness.DiscloseESG{ProductID: id, Proof: proof})
	default:
		return fmt.Errorf("unknown command %q, type help for the list of commands", command)
	}
}

// parseArgs checks the argument count and parses the leading product id.
func parseArgs(args []string, n int, usage string) (product.ID, error) {
	if len(args) != n {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	return product.ParseID(args[0])
}
