package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"micrometa/internal/cli"
	"micrometa/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand().ExecuteContext(ctx); err != nil {
		logging.Error("%v", err)
		stop()
		os.Exit(1)
	}
}
