// ./main.go
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/Cabbache/meshtransform/cmd"
	"github.com/Cabbache/meshtransform/internal/observability"
)

// osExit allows mocking os.Exit in tests.
var osExit = os.Exit

// main is the entry point for the meshtransform CLI.
func main() {
	// Set up a context that listens for interrupt signals (SIGINT, SIGTERM)
	// so an in-flight host render can be aborted gracefully.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := cmd.Execute(ctx)
	observability.Sync()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Graceful shutdown (Ctrl+C mid-render) is not a failure.
			osExit(0)
		}
		osExit(1)
	}
}
