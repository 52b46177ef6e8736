// Command colkit runs colkit kernels from the command line.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/hupe1980/colkit/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(cli.GetExitCode(err))
	}
}
