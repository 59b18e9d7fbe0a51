package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

// exitErr carries a specific process exit code out of a command.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string {
	return e.msg
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, ee.msg)
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootFlags{}

	root := &cobra.Command{
		Use:           "rankingctl",
		Short:         "Operate the vendor ranking engine from the command line",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.format, "format", formatJSON, "Output format: json or yaml")
	pf.DurationVar(&opts.timeout, "timeout", defaultTimeout, "Deadline for the whole command")

	root.AddCommand(
		newRecomputeCmd(opts),
		newStatsCmd(opts),
		newTopCmd(opts),
		newPositionCmd(opts),
		newInsightsCmd(opts),
	)

	return root
}
