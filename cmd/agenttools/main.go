// Package main provides a command-line front end for the agent workspace tools.
// Every tool can be run directly, or dispatched by name with JSON arguments the
// way a model would call it.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		var exitErr *exitCodeError
		if errors.As(err, &exitErr) {
			stop()
			os.Exit(exitErr.code)
		}
		fmt.Fprintln(os.Stderr, newStyles(os.Stderr).err.Render("Error: "+err.Error()))
		stop()
		os.Exit(1)
	}
}
