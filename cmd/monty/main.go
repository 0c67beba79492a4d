package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"monty/internal/runner"
)

// Main entry point for the monty interpreter.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, runner.Diagnostic(err))
	}
	os.Exit(runner.ExitCode(err))
}
