package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"payments-ledger/internal/config"
	"payments-ledger/internal/gateway"
	"payments-ledger/internal/logging"
	"payments-ledger/internal/usecase"

	"github.com/google/subcommands"
)

// validateCmd holds the flags for the 'validate' subcommand.
type validateCmd struct {
	runFlags
	stdout io.Writer
	stderr io.Writer
}

func newValidateCmd(cfg config.Config) *validateCmd {
	return &validateCmd{runFlags: runFlags{cfg: cfg}, stdout: os.Stdout, stderr: os.Stderr}
}

func (*validateCmd) Name() string     { return "validate" }
func (*validateCmd) Synopsis() string { return "check that a transaction file parses" }
func (*validateCmd) Usage() string {
	return `ledger validate <transactions.csv>

  Parses the file without applying it and reports every malformed row.
`
}

func (c *validateCmd) SetFlags(f *flag.FlagSet) { c.runFlags.set(f) }

func (c *validateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(c.stderr, "Please provide a path to the CSV file with transactions")
		return subcommands.ExitUsageError
	}
	cfg, _, err := c.resolve()
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	logger := logging.New(cfg.LogLevel, c.stderr)
	defer logger.Sync()

	uc := usecase.NewLedgerUseCase(gateway.NewCSVTransactionRepository(), nil, usecase.NewProcessor(), logger)
	n, err := uc.Validate(ctx, f.Arg(0))
	if err != nil {
		printBatchError(c.stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(c.stdout, "%d transactions OK\n", n)
	return subcommands.ExitSuccess
}
