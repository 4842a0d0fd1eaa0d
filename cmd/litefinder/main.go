package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rafabd1/LiteFinder/cmd"
)

func main() {
	// Cancel the in-flight fetch and lock wait on Ctrl+C
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Execute(ctx)
}
