package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"payments-ledger/internal/config"

	"github.com/google/subcommands"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(int(subcommands.ExitUsageError))
	}

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(newProcessCmd(cfg), "")
	subcommands.Register(newValidateCmd(cfg), "")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
