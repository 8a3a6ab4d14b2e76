package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vpctree/internal/cli"
	"github.com/matzehuels/vpctree/pkg/errors"
)

// Exit statuses.
const (
	exitError       = 1
	exitInvalid     = 2
	exitNotFound    = 3
	exitInterrupted = 130
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := run(ctx)
	if err == nil {
		return
	}
	if ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", errors.UserMessage(err))
	}
	os.Exit(exitCode(ctx, err))
}

func exitCode(ctx context.Context, err error) int {
	if ctx.Err() != nil {
		return exitInterrupted
	}
	switch errors.KindOf(err) {
	case errors.KindInvalid:
		return exitInvalid
	case errors.KindNotFound:
		return exitNotFound
	}
	return exitError
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true

	// -v is taken by --version.
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "enable verbose logging")

	setup := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := cli.LogInfo
		if verbose {
			level = cli.LogDebug
		}
		c.SetLogLevel(level)
		return setup(cmd, args)
	}

	return root.ExecuteContext(ctx)
}
