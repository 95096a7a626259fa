package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"payments-ledger/internal/config"
	"payments-ledger/internal/domain"
	"payments-ledger/internal/gateway"
	"payments-ledger/internal/logging"
	"payments-ledger/internal/usecase"

	"github.com/google/subcommands"
)

// runFlags are shared by the subcommands and override the environment.
type runFlags struct {
	cfg config.Config
}

func (r *runFlags) set(f *flag.FlagSet) {
	f.StringVar(&r.cfg.LogLevel, "log-level", r.cfg.LogLevel, "Log level (debug, info, warn, error).")
	f.StringVar(&r.cfg.DisputePolicy, "dispute-policy", r.cfg.DisputePolicy, "What a dispute of already spent funds does: reject or allow.")
}

// resolve validates the merged configuration and parses the dispute policy.
func (r *runFlags) resolve() (config.Config, usecase.DisputePolicy, error) {
	if err := r.cfg.Validate(); err != nil {
		return config.Config{}, "", err
	}
	policy, err := usecase.ParseDisputePolicy(r.cfg.DisputePolicy)
	if err != nil {
		return config.Config{}, "", err
	}
	return r.cfg, policy, nil
}

// processCmd holds the flags for the 'process' subcommand.
type processCmd struct {
	runFlags
	format string
	stdout io.Writer
	stderr io.Writer
}

func newProcessCmd(cfg config.Config) *processCmd {
	return &processCmd{runFlags: runFlags{cfg: cfg}, stdout: os.Stdout, stderr: os.Stderr}
}

func (*processCmd) Name() string     { return "process" }
func (*processCmd) Synopsis() string { return "apply a transaction file and print the final accounts" }
func (*processCmd) Usage() string {
	return `ledger process [-log-level <level>] [-dispute-policy reject|allow] [-format csv|json] <transactions.csv>

  Applies every transaction in order and writes one record per account to
  stdout. Rejected transactions are listed on stderr and make the command
  exit with status 1.
`
}

func (c *processCmd) SetFlags(f *flag.FlagSet) {
	c.runFlags.set(f)
	f.StringVar(&c.format, "format", "csv", "Output format for the accounts: csv or json.")
}

func (c *processCmd) accountWriter() (usecase.AccountWriter, error) {
	switch c.format {
	case "csv":
		return gateway.NewCSVAccountWriter(c.stdout), nil
	case "json":
		return gateway.NewJSONAccountWriter(c.stdout), nil
	}
	return nil, fmt.Errorf("unknown output format %q", c.format)
}

func (c *processCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(c.stderr, "Please provide a path to the CSV file with transactions")
		return subcommands.ExitUsageError
	}
	cfg, policy, err := c.resolve()
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	writer, err := c.accountWriter()
	if err != nil {
		fmt.Fprintf(c.stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	logger := logging.New(cfg.LogLevel, c.stderr)
	defer logger.Sync()

	uc := usecase.NewLedgerUseCase(
		gateway.NewCSVTransactionRepository(),
		writer,
		usecase.NewProcessor(usecase.WithDisputePolicy(policy)),
		logger,
	)

	report, err := uc.Run(ctx, f.Arg(0))
	if err != nil {
		printBatchError(c.stderr, err)
		return subcommands.ExitFailure
	}

	if report.HasRejections() {
		fmt.Fprintln(c.stderr, "Some transactions could not be handled. See output below:")
		for _, txErr := range report.Rejected {
			fmt.Fprintf(c.stderr, "- %v\n", txErr)
		}
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func printBatchError(w io.Writer, err error) {
	var parseErrs domain.ParseErrors
	if errors.As(err, &parseErrs) {
		fmt.Fprintln(w, "Failed to parse CSV input")
		for _, rowErr := range parseErrs {
			fmt.Fprintf(w, "- %v\n", rowErr)
		}
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
